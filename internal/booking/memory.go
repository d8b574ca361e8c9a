package booking

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps bookings in process memory. Item and booker names are
// resolved through items and users on every read, so renames show up the same
// way they do through the postgres join. The names captured at create time are
// kept when a lookup fails.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]Booking

	items ItemLookup
	users UserLookup
}

func NewMemoryRepository(items ItemLookup, users UserLookup) *MemoryRepository {
	return &MemoryRepository{
		bookings: make(map[int64]Booking),
		items:    items,
		users:    users,
	}
}

func (r *MemoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = *b
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	r.mu.RLock()
	b, ok := r.bookings[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	r.hydrate(ctx, &b)
	return &b, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	out := r.filter(filter)
	for _, b := range out {
		r.hydrate(ctx, b)
	}
	sortByEndDesc(out)
	return out, nil
}

func (r *MemoryRepository) filter(filter Filter) []*Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Booking
	for _, b := range r.bookings {
		if filter.BookerID != 0 && b.BookerID != filter.BookerID {
			continue
		}
		if filter.OwnerID != 0 && b.ItemOwnerID != filter.OwnerID {
			continue
		}
		if filter.ItemID != 0 && b.ItemID != filter.ItemID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.ExcludeStatus != "" && b.Status == filter.ExcludeStatus {
			continue
		}
		b := b
		out = append(out, &b)
	}
	return out
}

// hydrate refreshes the item and booker names of b from their current records.
func (r *MemoryRepository) hydrate(ctx context.Context, b *Booking) {
	if r.items != nil {
		if it, err := r.items.GetByID(ctx, b.ItemID); err == nil {
			b.ItemName = it.Name
		}
	}
	if r.users != nil {
		if u, err := r.users.GetByID(ctx, b.BookerID); err == nil {
			b.BookerName = u.Name
		}
	}
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id int64, from, to Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != from {
		return ErrAlreadyFinalized
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return nil
}

func (r *MemoryRepository) ExistsApprovedBefore(_ context.Context, bookerID, itemID int64, t time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID && b.Status == StatusApproved && b.Start.Before(t) {
			return true, nil
		}
	}
	return false, nil
}
