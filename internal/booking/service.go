package booking

import (
	"context"
	"sort"
	"time"

	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/paging"
	"github.com/shareit/shareit-backend/internal/user"
)

// UserLookup resolves users by id. It fails with a NotFound error if absent.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// ItemLookup resolves items by id. It fails with a NotFound error if absent.
type ItemLookup interface {
	GetByID(ctx context.Context, id int64) (*item.Item, error)
}

type CreateRequest struct {
	BookerID int64
	ItemID   int64
	Start    *time.Time
	End      *time.Time
}

// Query selects a page of a user's bookings.
type Query struct {
	Viewpoint Viewpoint
	UserID    int64
	State     string
	From      int
	Size      int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	ChangeStatus(ctx context.Context, actorID, id int64, approved bool) (*Booking, error)
	Get(ctx context.Context, actorID, id int64) (*Booking, error)
	List(ctx context.Context, q Query) ([]*Booking, error)

	LastAndNext(ctx context.Context, itemID, observerID int64, asOf time.Time) (last, next *item.BookingSummary, err error)
	HasApprovedBefore(ctx context.Context, bookerID, itemID int64, t time.Time) (bool, error)
}

type service struct {
	repo  Repository
	items ItemLookup
	users UserLookup
	now   func() time.Time
}

func NewService(repo Repository, items ItemLookup, users UserLookup) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		now:   time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := ValidateWindow(req.Start, req.End, s.now()); err != nil {
		return nil, err
	}
	booker, err := s.users.GetByID(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}
	if it.OwnerID == booker.ID {
		return nil, ErrOwnItem
	}

	b := &Booking{
		ItemID:      it.ID,
		ItemName:    it.Name,
		ItemOwnerID: it.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       *req.Start,
		End:         *req.End,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ChangeStatus approves or rejects a waiting booking. The only actor check is
// that the booker cannot decide on their own booking.
func (s *service) ChangeStatus(ctx context.Context, actorID, id int64, approved bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	target := Decision(approved)
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrAlreadyFinalized
	}
	if b.BookerID == actorID {
		return nil, ErrOwnBooking
	}

	// The write only applies while the stored status is still the one read
	// above, so a concurrent decision makes this call fail instead of overwriting.
	if err := s.repo.UpdateStatus(ctx, id, b.Status, target); err != nil {
		return nil, err
	}
	b.Status = target
	return b, nil
}

func (s *service) Get(ctx context.Context, actorID, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	if b.BookerID != actorID && b.ItemOwnerID != actorID {
		return nil, ErrNoAccess
	}
	return b, nil
}

// List filters the caller's bookings by state, sorts them by end descending
// and then cuts the requested page out of the filtered result.
func (s *service) List(ctx context.Context, q Query) ([]*Booking, error) {
	if err := paging.Validate(q.From, q.Size); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, q.UserID); err != nil {
		return nil, err
	}
	state, err := ParseState(q.State)
	if err != nil {
		return nil, err
	}

	var filter Filter
	switch q.Viewpoint {
	case AsBooker:
		filter.BookerID = q.UserID
	case AsOwner:
		filter.OwnerID = q.UserID
	default:
		return nil, ErrUnknownViewpoint
	}
	// WAITING and REJECTED depend on status alone and can be narrowed in storage.
	switch state {
	case StateWaiting:
		filter.Status = StatusWaiting
	case StateRejected:
		filter.Status = StatusRejected
	}

	candidates, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	matched := make([]*Booking, 0, len(candidates))
	for _, b := range candidates {
		if state.Matches(b, now) {
			matched = append(matched, b)
		}
	}
	sortByEndDesc(matched)
	return paging.Slice(matched, q.From, q.Size), nil
}

// LastAndNext projects the item's nearest past and future bookings. Only the
// item owner sees them. Anyone else gets two nils.
func (s *service) LastAndNext(ctx context.Context, itemID, observerID int64, asOf time.Time) (*item.BookingSummary, *item.BookingSummary, error) {
	bookings, err := s.repo.List(ctx, Filter{
		ItemID:        itemID,
		OwnerID:       observerID,
		ExcludeStatus: StatusRejected,
	})
	if err != nil {
		return nil, nil, err
	}
	last, next := Project(bookings, asOf)
	return summarize(last), summarize(next), nil
}

func (s *service) HasApprovedBefore(ctx context.Context, bookerID, itemID int64, t time.Time) (bool, error) {
	return s.repo.ExistsApprovedBefore(ctx, bookerID, itemID, t)
}

func sortByEndDesc(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].End.Equal(bookings[j].End) {
			return bookings[i].End.After(bookings[j].End)
		}
		return bookings[i].ID > bookings[j].ID
	})
}

func summarize(b *Booking) *item.BookingSummary {
	if b == nil {
		return nil
	}
	return &item.BookingSummary{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
