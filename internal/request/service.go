package request

import (
	"context"
	"strings"

	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/paging"
	"github.com/shareit/shareit-backend/internal/user"
)

// ItemLister finds the items offered in answer to requests.
// It is implemented by the item repository.
type ItemLister interface {
	List(ctx context.Context, filter item.Filter) ([]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*View, error)
	// ListOwn returns every request made by userID, newest first.
	ListOwn(ctx context.Context, userID int64) ([]*View, error)
	// ListOthers returns one page of the requests made by everyone but userID, newest first.
	ListOthers(ctx context.Context, userID int64, from, size int) ([]*View, error)
	Get(ctx context.Context, userID, id int64) (*View, error)
	// Exists fails with ErrNotFound if there is no request id.
	Exists(ctx context.Context, id int64) error
}

type service struct {
	repo        Repository
	userService user.Service
	items       ItemLister
}

func NewService(repo Repository, userService user.Service, items ItemLister) Service {
	return &service{
		repo:        repo,
		userService: userService,
		items:       items,
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*View, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	r := &Request{RequesterID: requesterID, Description: description}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return &View{Request: r, Items: []*item.Item{}}, nil
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]*View, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.List(ctx, Filter{RequesterID: userID})
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, userID int64, from, size int) ([]*View, error) {
	if err := paging.Validate(from, size); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.List(ctx, Filter{ExcludeRequesterID: userID, From: from, Size: size})
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *service) Get(ctx context.Context, userID, id int64) (*View, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.withItems(ctx, []*Request{r})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

// withItems attaches the answering items to each request with a single item lookup.
func (s *service) withItems(ctx context.Context, requests []*Request) ([]*View, error) {
	views := make([]*View, len(requests))
	if len(requests) == 0 {
		return views, nil
	}

	ids := make([]int64, len(requests))
	byID := make(map[int64]*View, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
		views[i] = &View{Request: r, Items: []*item.Item{}}
		byID[r.ID] = views[i]
	}

	answers, err := s.items.List(ctx, item.Filter{RequestIDs: ids})
	if err != nil {
		return nil, err
	}
	for _, it := range answers {
		if it.RequestID == nil {
			continue
		}
		if v, ok := byID[*it.RequestID]; ok {
			v.Items = append(v.Items, it)
		}
	}
	return views, nil
}
