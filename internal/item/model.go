package item

import (
	"time"

	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNotOwner            = apperror.NotFound("only the owner can modify an item")
	ErrNameRequired        = apperror.Validation("name cannot be empty")
	ErrDescriptionRequired = apperror.Validation("description cannot be empty")
	ErrAvailableRequired   = apperror.Validation("available flag is required")
	ErrCommentEmpty        = apperror.Validation("comment text cannot be empty")
	ErrNoCompletedBooking  = apperror.Validation("comments require an approved booking of the item that has started")
	ErrRequestNotFound     = apperror.NotFound("item request not found")
)

// Item is a thing a user offers for rent.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
	CreatedAt   time.Time
}

// Comment is feedback left by a user who has rented the item.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// BookingSummary is the reduced booking shape attached to item listings.
type BookingSummary struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// View is an item as presented to a particular viewer.
type View struct {
	*Item
	LastBooking *BookingSummary
	NextBooking *BookingSummary
	Comments    []*Comment
}

// Filter defines parameters for listing items.
// Size 0 returns every match.
type Filter struct {
	OwnerID    int64
	Text       string  // case-insensitive match on name or description, available items only
	RequestIDs []int64 // items answering any of these requests
	From       int
	Size       int
}
