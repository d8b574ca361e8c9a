package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	mk := func(id int64, startOffset time.Duration, status Status) *Booking {
		return &Booking{ID: id, Start: now.Add(startOffset), End: now.Add(startOffset + time.Hour), Status: status}
	}

	older := mk(1, -48*time.Hour, StatusApproved)
	recent := mk(2, -24*time.Hour, StatusWaiting)
	rejectedRecent := mk(3, -time.Hour, StatusRejected)
	soon := mk(4, 24*time.Hour, StatusApproved)
	later := mk(5, 48*time.Hour, StatusWaiting)
	rejectedSoon := mk(6, time.Hour, StatusRejected)
	atNow := mk(7, 0, StatusApproved)

	last, next := Project([]*Booking{later, older, rejectedRecent, soon, recent, rejectedSoon, atNow}, now)
	assert.Equal(t, recent, last)
	assert.Equal(t, soon, next)

	last, next = Project([]*Booking{rejectedRecent, rejectedSoon}, now)
	assert.Nil(t, last)
	assert.Nil(t, next)

	last, next = Project(nil, now)
	assert.Nil(t, last)
	assert.Nil(t, next)
}
