package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

func TestParseState(t *testing.T) {
	for _, raw := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		s, err := ParseState(raw)
		require.NoError(t, err)
		assert.Equal(t, State(raw), s)
	}

	s, err := ParseState("")
	require.NoError(t, err)
	assert.Equal(t, StateAll, s)

	for _, raw := range []string{"BOGUS", "past", "UNSUPPORTED_STATUS", "APPROVED"} {
		_, err := ParseState(raw)
		require.Error(t, err, raw)
		assert.Equal(t, apperror.KindUnsupportedStatus, apperror.KindOf(err))
		assert.Equal(t, "Unknown state: "+raw, err.Error())
	}
}

func TestStateMatchesPartitionsByTime(t *testing.T) {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	past := &Booking{Start: now.Add(-3 * time.Hour), End: now.Add(-time.Hour), Status: StatusApproved}
	current := &Booking{Start: now.Add(-time.Hour), End: now.Add(time.Hour), Status: StatusWaiting}
	future := &Booking{Start: now.Add(time.Hour), End: now.Add(3 * time.Hour), Status: StatusRejected}
	edge := &Booking{Start: now, End: now.Add(time.Hour), Status: StatusWaiting}

	for _, b := range []*Booking{past, current, future} {
		hits := 0
		for _, s := range []State{StatePast, StateCurrent, StateFuture} {
			if s.Matches(b, now) {
				hits++
			}
		}
		assert.Equal(t, 1, hits)
		assert.True(t, StateAll.Matches(b, now))
	}

	assert.True(t, StatePast.Matches(past, now))
	assert.True(t, StateCurrent.Matches(current, now))
	assert.True(t, StateFuture.Matches(future, now))

	// A booking starting exactly now is in no temporal bucket.
	assert.False(t, StatePast.Matches(edge, now))
	assert.False(t, StateCurrent.Matches(edge, now))
	assert.False(t, StateFuture.Matches(edge, now))

	assert.True(t, StateWaiting.Matches(current, now))
	assert.False(t, StateWaiting.Matches(past, now))
	assert.True(t, StateRejected.Matches(future, now))
	assert.False(t, StateRejected.Matches(current, now))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusWaiting.CanTransitionTo(StatusApproved))
	assert.True(t, StatusWaiting.CanTransitionTo(StatusRejected))
	assert.False(t, StatusApproved.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusApproved))
	assert.False(t, StatusApproved.CanTransitionTo(StatusApproved))
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusWaiting.IsTerminal())
	assert.False(t, Status("CANCELED").IsValid())
	assert.Equal(t, StatusApproved, Decision(true))
	assert.Equal(t, StatusRejected, Decision(false))
}
