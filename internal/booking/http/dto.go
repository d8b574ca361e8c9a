package http

import (
	"github.com/shareit/shareit-backend/internal/booking"
	"github.com/shareit/shareit-backend/internal/pkg/datetime"
	"github.com/shareit/shareit-backend/internal/pkg/request"
)

type CreateBookingRequest struct {
	ItemID *int64             `json:"itemId"`
	Start  *datetime.DateTime `json:"start"`
	End    *datetime.DateTime `json:"end"`
}

type ChangeStatusRequest struct {
	Approved *bool `form:"approved"`
}

type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state,default=ALL"`
}

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64             `json:"id"`
	Start  datetime.DateTime `json:"start"`
	End    datetime.DateTime `json:"end"`
	Status booking.Status    `json:"status"`
	Item   Ref               `json:"item"`
	Booker Ref               `json:"booker"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  datetime.From(b.Start),
		End:    datetime.From(b.End),
		Status: b.Status,
		Item:   Ref{ID: b.ItemID, Name: b.ItemName},
		Booker: Ref{ID: b.BookerID, Name: b.BookerName},
	}
}
