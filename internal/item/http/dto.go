package http

import (
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/datetime"
	"github.com/shareit/shareit-backend/internal/pkg/request"
)

// Field names follow the camelCase JSON of the existing ShareIt clients.

type ListItemsRequest struct {
	request.PageParams
}

type SearchItemsRequest struct {
	request.PageParams
	Text string `form:"text"`
}

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingSummaryResponse struct {
	ID       int64             `json:"id"`
	BookerID int64             `json:"bookerId"`
	Start    datetime.DateTime `json:"start"`
	End      datetime.DateTime `json:"end"`
}

type CommentResponse struct {
	ID         int64             `json:"id"`
	Text       string            `json:"text"`
	AuthorName string            `json:"authorName"`
	Created    datetime.DateTime `json:"created"`
}

type ItemResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Available   bool                    `json:"available"`
	OwnerID     int64                   `json:"ownerId"`
	RequestID   *int64                  `json:"requestId,omitempty"`
	LastBooking *BookingSummaryResponse `json:"lastBooking"`
	NextBooking *BookingSummaryResponse `json:"nextBooking"`
	Comments    []CommentResponse       `json:"comments"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
		Comments:    []CommentResponse{},
	}
}

func NewViewResponse(v *item.View) ItemResponse {
	resp := NewItemResponse(v.Item)
	resp.LastBooking = newSummary(v.LastBooking)
	resp.NextBooking = newSummary(v.NextBooking)
	for _, c := range v.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(c))
	}
	return resp
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    datetime.From(c.CreatedAt),
	}
}

func newSummary(s *item.BookingSummary) *BookingSummaryResponse {
	if s == nil {
		return nil
	}
	return &BookingSummaryResponse{
		ID:       s.ID,
		BookerID: s.BookerID,
		Start:    datetime.From(s.Start),
		End:      datetime.From(s.End),
	}
}

// CreateItemRequest is the payload of POST /items. Presence of fields is
// checked by the service so that the error messages match updates.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,min=1"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
