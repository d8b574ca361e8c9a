package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/booking"
	"github.com/shareit/shareit-backend/internal/metrics"
	"github.com/shareit/shareit-backend/internal/pkg/request"
	"github.com/shareit/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}
	if body.ItemID == nil {
		response.Error(c, booking.ErrItemIDRequired)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID: auth.GetUserID(c),
		ItemID:   *body.ItemID,
		Start:    body.Start.Ptr(),
		End:      body.End.Ptr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.IncBookingCreated()
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ChangeStatus handles PATCH /bookings/:id?approved=true|false.
func (h *Handler) ChangeStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var query ChangeStatusRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	if query.Approved == nil {
		response.Error(c, booking.ErrApprovedRequired)
		return
	}

	b, err := h.service.ChangeStatus(c.Request.Context(), auth.GetUserID(c), uri.ID, *query.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.IncBookingTransition(string(b.Status))
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.Get(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns the caller's bookings as booker.
func (h *Handler) List(c *gin.Context) {
	h.list(c, booking.AsBooker)
}

// ListOwner returns bookings of items the caller owns.
func (h *Handler) ListOwner(c *gin.Context) {
	h.list(c, booking.AsOwner)
}

func (h *Handler) list(c *gin.Context, viewpoint booking.Viewpoint) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	bookings, err := h.service.List(c.Request.Context(), booking.Query{
		Viewpoint: viewpoint,
		UserID:    auth.GetUserID(c),
		State:     req.State,
		From:      req.From,
		Size:      req.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.List(items))
}
