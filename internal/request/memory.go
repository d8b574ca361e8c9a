package request

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/paging"
)

// MemoryRepository keeps item requests in process memory. It backs STORAGE=memory and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	requests map[int64]Request
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{requests: make(map[int64]Request)}
}

func (m *MemoryRepository) Create(_ context.Context, r *Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now().UTC()
	m.requests[r.ID] = *r
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int64) (*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryRepository) List(_ context.Context, filter Filter) ([]*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Request
	for _, r := range m.requests {
		if filter.RequesterID != 0 && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.ExcludeRequesterID != 0 && r.RequesterID == filter.ExcludeRequesterID {
			continue
		}
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Size > 0 {
		out = paging.Slice(out, filter.From, filter.Size)
	}
	return out, nil
}
