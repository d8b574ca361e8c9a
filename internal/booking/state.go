package booking

import (
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

// State is a query-time classification of bookings. It is never persisted.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState converts the raw state query value. Matching is case-sensitive and
// an empty value means ALL. Anything else is an unsupported status error.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	s := State(raw)
	if _, ok := knownStates[s]; !ok {
		return "", apperror.UnsupportedStatus(raw)
	}
	return s, nil
}

// Matches reports whether b falls into the state bucket at instant now.
// PAST, CURRENT and FUTURE use strict comparisons, so a booking that starts or
// ends exactly at now belongs to none of them.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
