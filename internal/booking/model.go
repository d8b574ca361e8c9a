package booking

import (
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrNoAccess         = apperror.NotFound("booking is visible only to its booker and the item owner")
	ErrOwnItem          = apperror.NotFound("cannot book your own item")
	ErrOwnBooking       = apperror.NotFound("cannot approve your own booking")
	ErrItemUnavailable  = apperror.Validation("item is not available for booking")
	ErrAlreadyFinalized = apperror.Validation("status already finalized")
	ErrEndRequired      = apperror.Validation("end cannot be empty")
	ErrStartRequired    = apperror.Validation("start cannot be empty")
	ErrEndInPast        = apperror.Validation("end cannot be in the past")
	ErrEndBeforeStart   = apperror.Validation("end cannot be before start")
	ErrEndEqualsStart   = apperror.Validation("end cannot equal start")
	ErrStartInPast      = apperror.Validation("start cannot be in the past")
	ErrApprovedRequired = apperror.Validation("approved parameter is required")
	ErrItemIDRequired   = apperror.Validation("itemId is required")
	ErrUnknownViewpoint = apperror.Validation("unknown booking viewpoint")
)

// Status is the persisted lifecycle state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// transitions is the booking state machine. Approved and rejected are terminal.
var transitions = map[Status][]Status{
	StatusWaiting:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the state machine allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Decision maps the approved flag of a status change to its target status.
func Decision(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Viewpoint selects whose bookings a query returns.
type Viewpoint int

const (
	AsBooker Viewpoint = iota
	AsOwner
)

// Filter defines parameters for fetching candidate bookings from storage.
// Zero-valued fields are ignored.
type Filter struct {
	BookerID      int64
	OwnerID       int64
	ItemID        int64
	Status        Status
	ExcludeStatus Status
}
