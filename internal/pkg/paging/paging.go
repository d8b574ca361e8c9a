package paging

import "github.com/shareit/shareit-backend/internal/pkg/apperror"

var (
	ErrNegativeFrom    = apperror.Validation("from must not be negative")
	ErrNonPositiveSize = apperror.Validation("size must be greater than zero")
)

// Validate checks offset pagination parameters.
func Validate(from, size int) error {
	if from < 0 {
		return ErrNegativeFrom
	}
	if size <= 0 {
		return ErrNonPositiveSize
	}
	return nil
}

// Slice skips from elements and keeps at most size of the rest.
// It assumes the parameters already passed Validate.
func Slice[T any](items []T, from, size int) []T {
	if from >= len(items) {
		return nil
	}
	end := from + size
	if end > len(items) || end < from {
		end = len(items)
	}
	return items[from:end]
}
