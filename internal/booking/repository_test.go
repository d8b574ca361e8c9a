package booking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-backend/internal/db"
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/user"
)

// TestPgxRepository runs against a real database when TEST_DB_DSN is set.
func TestPgxRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.Migrate(ctx, pool))

	users := user.NewPgxRepository(pool)
	suffix := time.Now().Format("150405.000000")
	owner := &user.User{Name: "Owner", Email: "owner" + suffix + "@example.com"}
	require.NoError(t, users.Create(ctx, owner))
	booker := &user.User{Name: "Booker", Email: "booker" + suffix + "@example.com"}
	require.NoError(t, users.Create(ctx, booker))
	t.Cleanup(func() {
		_ = users.Delete(ctx, owner.ID)
		_ = users.Delete(ctx, booker.ID)
	})

	it := &item.Item{OwnerID: owner.ID, Name: "Drill", Description: "Cordless", Available: true}
	require.NoError(t, item.NewPgxRepository(pool).Create(ctx, it))

	repo := NewPgxRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	b := &Booking{ItemID: it.ID, BookerID: booker.ID, Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour), Status: StatusWaiting}
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.ItemName)
	assert.Equal(t, owner.ID, got.ItemOwnerID)
	assert.Equal(t, "Booker", got.BookerName)
	assert.True(t, b.Start.Equal(got.Start))

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, StatusWaiting, StatusApproved))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, b.ID, StatusWaiting, StatusRejected), ErrAlreadyFinalized)

	ok, err := repo.ExistsApprovedBefore(ctx, booker.ID, it.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	owned, err := repo.List(ctx, Filter{OwnerID: owner.ID, ExcludeStatus: StatusRejected})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, StatusApproved, owned[0].Status)

	_, err = repo.GetByID(ctx, -1)
	assert.ErrorIs(t, err, ErrNotFound)

	ghost := &Booking{ItemID: it.ID, BookerID: -1, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusWaiting}
	assert.ErrorIs(t, repo.Create(ctx, ghost), user.ErrNotFound)
	ghost = &Booking{ItemID: -1, BookerID: booker.ID, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusWaiting}
	assert.ErrorIs(t, repo.Create(ctx, ghost), item.ErrNotFound)
}

func TestMapInsertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "missing booker",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "bookings_booker_id_fkey"},
			want: user.ErrNotFound,
		},
		{
			name: "missing item",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "bookings_item_id_fkey"},
			want: item.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapInsertError(tt.err), tt.want)
		})
	}

	other := mapInsertError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "bookings_window_check"})
	assert.NotErrorIs(t, other, item.ErrNotFound)
	assert.NotErrorIs(t, other, user.ErrNotFound)
}
