package paging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(0, 1))
	assert.True(t, errors.Is(Validate(-1, 10), ErrNegativeFrom))
	assert.True(t, errors.Is(Validate(0, 0), ErrNonPositiveSize))
	assert.True(t, errors.Is(Validate(3, -2), ErrNonPositiveSize))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, 0, 2))
	assert.Equal(t, []int{4, 5}, Slice(items, 3, 10))
	assert.Empty(t, Slice(items, 5, 1))
	assert.Empty(t, Slice(items, 42, 1))
	assert.Empty(t, Slice([]int(nil), 0, 10))
}
