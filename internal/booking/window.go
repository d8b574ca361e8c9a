package booking

import "time"

// ValidateWindow checks a proposed [start, end) interval against itself and now.
// Checks run in a fixed order and the first failure is returned.
func ValidateWindow(start, end *time.Time, now time.Time) error {
	switch {
	case end == nil:
		return ErrEndRequired
	case start == nil:
		return ErrStartRequired
	case end.Before(now):
		return ErrEndInPast
	case end.Before(*start):
		return ErrEndBeforeStart
	case end.Equal(*start):
		return ErrEndEqualsStart
	case start.Before(now):
		return ErrStartInPast
	}
	return nil
}
