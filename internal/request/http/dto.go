package http

import (
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/pkg/datetime"
	common "github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/request"
)

type ListOthersRequest struct {
	common.PageParams
}

// CreateRequestBody is the payload of POST /requests. Blank descriptions are
// rejected by the service.
type CreateRequestBody struct {
	Description string `json:"description"`
}

// AnswerResponse is an item offered in answer to a request.
type AnswerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

type RequestResponse struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	RequestorID int64             `json:"requestorId"`
	Created     datetime.DateTime `json:"created"`
	Items       []AnswerResponse  `json:"items"`
}

func NewRequestResponse(v *request.View) RequestResponse {
	resp := RequestResponse{
		ID:          v.ID,
		Description: v.Description,
		RequestorID: v.RequesterID,
		Created:     datetime.From(v.CreatedAt),
		Items:       make([]AnswerResponse, 0, len(v.Items)),
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, newAnswer(it, v.ID))
	}
	return resp
}

func newAnswer(it *item.Item, requestID int64) AnswerResponse {
	return AnswerResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   requestID,
	}
}
