package item

import (
	"context"
	"strings"
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/paging"
	"github.com/shareit/shareit-backend/internal/user"
)

// BookingInfo is what items need to know about bookings.
// It is implemented by the booking service.
type BookingInfo interface {
	// LastAndNext returns the nearest past and future non-rejected bookings of
	// the item as seen by observerID. Either may be nil.
	LastAndNext(ctx context.Context, itemID, observerID int64, asOf time.Time) (last, next *BookingSummary, err error)
	// HasApprovedBefore reports whether bookerID has an approved booking of the
	// item that started before t.
	HasApprovedBefore(ctx context.Context, bookerID, itemID int64, t time.Time) (bool, error)
}

// RequestLookup checks item requests. It is implemented by the request service.
type RequestLookup interface {
	// Exists fails with a NotFound error if there is no request id.
	Exists(ctx context.Context, id int64) error
}

type CreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	Get(ctx context.Context, viewerID, id int64) (*View, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*View, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	Update(ctx context.Context, actorID, id int64, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, actorID, id int64) error
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	userService user.Service
	bookings    BookingInfo
	requests    RequestLookup
	now         func() time.Time
}

func NewService(repo Repository, userService user.Service, bookings BookingInfo, requests RequestLookup) Service {
	return &service{
		repo:        repo,
		userService: userService,
		bookings:    bookings,
		requests:    requests,
		now:         time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}
	if _, err := s.userService.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if err := s.requests.Exists(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Get(ctx context.Context, viewerID, id int64) (*View, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, viewerID, it, s.now())
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*View, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, Filter{OwnerID: ownerID, From: from, Size: size})
	if err != nil {
		return nil, err
	}

	// One instant for the whole page so neighbouring items are projected consistently.
	now := s.now()
	views := make([]*View, 0, len(items))
	for _, it := range items {
		v, err := s.view(ctx, ownerID, it, now)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return s.repo.List(ctx, Filter{Text: text, From: from, Size: size})
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdateRequest) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = strings.TrimSpace(*req.Description)
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerID != actorID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentEmpty
	}
	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.bookings.HasApprovedBefore(ctx, authorID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoCompletedBooking
	}

	c := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) view(ctx context.Context, viewerID int64, it *Item, now time.Time) (*View, error) {
	last, next, err := s.bookings.LastAndNext(ctx, it.ID, viewerID, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	return &View{
		Item:        it,
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}, nil
}
