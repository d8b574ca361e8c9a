package request

import (
	"time"

	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item request not found")
	ErrDescriptionRequired = apperror.Validation("description cannot be empty")
)

// Request is a user's ask for an item that nobody offers yet. Owners answer it
// by creating items that carry its id.
type Request struct {
	ID          int64
	RequesterID int64
	Description string
	CreatedAt   time.Time
}

// View is a request together with the items offered in answer to it.
type View struct {
	*Request
	Items []*item.Item
}

// Filter defines parameters for listing requests. Results are ordered newest
// first. Size 0 returns every match.
type Filter struct {
	RequesterID        int64
	ExcludeRequesterID int64
	From               int
	Size               int
}
