package item

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/paging"
)

// MemoryRepository keeps items and comments in process memory.
type MemoryRepository struct {
	mu            sync.RWMutex
	nextID        int64
	nextCommentID int64
	items         map[int64]Item
	comments      []Comment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]Item)}
}

func (r *MemoryRepository) Create(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	it.ID = r.nextID
	it.CreatedAt = time.Now().UTC()
	r.items[it.ID] = *it
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (r *MemoryRepository) List(_ context.Context, filter Filter) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := strings.ToLower(filter.Text)
	var items []*Item
	for _, it := range r.items {
		if filter.OwnerID != 0 && it.OwnerID != filter.OwnerID {
			continue
		}
		if len(filter.RequestIDs) > 0 && (it.RequestID == nil || !slices.Contains(filter.RequestIDs, *it.RequestID)) {
			continue
		}
		if text != "" {
			if !it.Available {
				continue
			}
			if !strings.Contains(strings.ToLower(it.Name), text) &&
				!strings.Contains(strings.ToLower(it.Description), text) {
				continue
			}
		}
		it := it
		items = append(items, &it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	if filter.Size > 0 {
		items = paging.Slice(items, filter.From, filter.Size)
	}
	return items, nil
}

func (r *MemoryRepository) Update(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	r.items[it.ID] = *it
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)

	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ItemID != id {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

func (r *MemoryRepository) CreateComment(_ context.Context, c *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ItemID]; !ok {
		return ErrNotFound
	}
	r.nextCommentID++
	c.ID = r.nextCommentID
	c.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *MemoryRepository) ListComments(_ context.Context, itemID int64) ([]*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Comment
	for _, c := range r.comments {
		if c.ItemID == itemID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}
