package metronome

import "time"

// runSchedule fires onTick at the given interval against an absolute
// deadline grid: each slot is the previous slot plus interval, never "now
// plus interval", so per-tick processing time does not accumulate into
// drift over a long session.
//
// stop and expiry are checked before a tick fires; a cancelled session never
// plays a partial or extra tick. An onTick error aborts the loop and is
// returned to the caller.
func runSchedule(interval time.Duration, onTick func(index int) error, stop <-chan struct{}, expiry time.Time) error {
	next := time.Now()
	for i := 0; ; i++ {
		select {
		case <-stop:
			return nil
		default:
		}
		if !expiry.IsZero() && !time.Now().Before(expiry) {
			return nil
		}

		if err := onTick(i); err != nil {
			return err
		}

		next = next.Add(interval)
		wait := time.Until(next)
		if !expiry.IsZero() {
			// Wake at expiry when it lands inside the wait; the loop top
			// then terminates without firing another tick.
			if untilExpiry := time.Until(expiry); untilExpiry < wait {
				wait = untilExpiry
			}
		}
		if wait > 0 {
			select {
			case <-stop:
				return nil
			case <-time.After(wait):
			}
		}
	}
}
