package main

import (
	"fmt"
	"strings"
	"time"

	"tick/accent"
	"tick/metronome"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type beatMsg struct {
	Index    int
	Accented bool
}
type frameMsg time.Time

const flashFrames = 5

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	beatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

type tuiModel struct {
	ctrl   *metronome.Controller
	spec   metronome.BeatSpec
	config accent.Config
	limit  time.Duration

	running  bool
	tick     int  // last tick index received
	flash    int  // frames the current beat stays lit
	accented bool // last beat was a downbeat
	started  time.Time
}

func tuiFrame() tea.Cmd {
	return tea.Tick(40*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiFrame()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Stop()
			return m, tea.Quit
		case " ":
			if m.running {
				m.ctrl.Stop()
				m.running = false
			} else {
				if err := m.ctrl.Start(m.spec, m.config, m.limit); err == nil {
					m.running = true
					m.tick = 0
					m.started = time.Now()
				}
			}
		}

	case beatMsg:
		m.tick = msg.Index
		m.accented = msg.Accented
		m.flash = flashFrames

	case frameMsg:
		if m.flash > 0 {
			m.flash--
		}
		if m.running && !m.ctrl.IsRunning() {
			m.running = false // duration limit expired
		}
		return m, tuiFrame()
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%.0f bpm", m.spec.BPM)
	if m.spec.BeatsPerMeasure > 0 {
		header += fmt.Sprintf("  ·  %d beats/measure", m.spec.BeatsPerMeasure)
	}
	if m.spec.Subdivision > 1 {
		header += fmt.Sprintf("  ·  %dx subdivision", m.spec.Subdivision)
	}
	b.WriteString(labelStyle.Render(header))
	b.WriteString("\n\n")

	beats := m.spec.BeatsPerMeasure
	if beats < 1 {
		beats = 1
	}
	logical := (m.tick / max(m.spec.Subdivision, 1)) % beats
	for i := 0; i < beats; i++ {
		dot := "○"
		style := idleStyle
		if m.running && i == logical && m.flash > 0 {
			dot = "●"
			if m.accented {
				style = accentStyle
			} else {
				style = beatStyle
			}
		}
		b.WriteString(style.Render(dot))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if m.running {
		b.WriteString(labelStyle.Render(fmt.Sprintf("playing  %s", time.Since(m.started).Round(time.Second))))
	} else {
		b.WriteString(idleStyle.Render("stopped"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space start/stop · q quit"))
	b.WriteString("\n")
	return b.String()
}

// runTUI drives the controller from a terminal beat display. Beats arrive
// through the controller's tick observer.
func runTUI(ctrl *metronome.Controller, spec metronome.BeatSpec, config accent.Config, limit time.Duration) error {
	m := tuiModel{
		ctrl:    ctrl,
		spec:    spec,
		config:  config,
		limit:   limit,
		running: true,
		started: time.Now(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	ctrl.SetTickObserver(func(index int, accented bool) {
		p.Send(beatMsg{Index: index, Accented: accented})
	})

	if err := ctrl.Start(spec, config, limit); err != nil {
		return err
	}

	_, err := p.Run()
	ctrl.Stop()
	return err
}
