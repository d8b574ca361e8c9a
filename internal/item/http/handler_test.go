package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/request"
	requestHttp "github.com/shareit/shareit-backend/internal/request/http"
	"github.com/shareit/shareit-backend/internal/user"
)

// noBookings is a BookingInfo with an empty booking history.
type noBookings struct{}

func (noBookings) LastAndNext(context.Context, int64, int64, time.Time) (*item.BookingSummary, *item.BookingSummary, error) {
	return nil, nil, nil
}

func (noBookings) HasApprovedBefore(context.Context, int64, int64, time.Time) (bool, error) {
	return false, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *user.User, *user.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	users := user.NewService(user.NewMemoryRepository())
	owner, err := users.Create(ctx, user.CreateRequest{Name: "Owner", Email: "owner@example.com"})
	require.NoError(t, err)
	other, err := users.Create(ctx, user.CreateRequest{Name: "Other", Email: "other@example.com"})
	require.NoError(t, err)

	items := item.NewMemoryRepository()
	requests := request.NewService(request.NewMemoryRepository(), users, items)
	svc := item.NewService(items, users, noBookings{}, requests)
	r := gin.New()
	requestHttp.RegisterRoutes(r.Group("", auth.HeaderRequired()), requestHttp.NewHandler(requests))
	RegisterRoutes(r.Group(""), r.Group("", auth.HeaderRequired()), NewHandler(svc))
	return r, owner, other
}

func do(r *gin.Engine, method, path string, caller int64, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != 0 {
		req.Header.Set(auth.HeaderUserID, strconv.FormatInt(caller, 10))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestItemEndpoints(t *testing.T) {
	r, owner, other := setupRouter(t)

	w := do(r, http.MethodPost, "/items", owner.ID, map[string]any{"name": "Drill", "description": "Cordless"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"available flag is required"}`, w.Body.String())

	w = do(r, http.MethodPost, "/items", owner.ID, map[string]any{"name": "Drill", "description": "Cordless", "available": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Drill", created.Name)
	assert.Equal(t, owner.ID, created.OwnerID)
	path := fmt.Sprintf("/items/%d", created.ID)

	w = do(r, http.MethodPatch, path, other.ID, map[string]any{"name": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPatch, path, owner.ID, map[string]any{"available": false})
	require.Equal(t, http.StatusOK, w.Code)
	var updated ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.Available)
	assert.Equal(t, "Drill", updated.Name)

	w = do(r, http.MethodGet, path, other.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"lastBooking":null`)
	assert.Contains(t, w.Body.String(), `"comments":[]`)

	w = do(r, http.MethodGet, "/items", owner.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(r, http.MethodGet, "/items/search?text=drill", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, http.MethodPost, path+"/comment", other.ID, map[string]any{"text": "nice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, path, other.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, path, owner.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, path, owner.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateItemForRequest(t *testing.T) {
	r, owner, other := setupRouter(t)

	w := do(r, http.MethodPost, "/items", owner.ID, map[string]any{"name": "Ladder", "description": "Tall", "available": true, "requestId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"item request not found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/requests", other.ID, map[string]any{"description": "Need a ladder"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var asked struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asked))

	w = do(r, http.MethodPost, "/items", owner.ID, map[string]any{"name": "Ladder", "description": "Tall", "available": true, "requestId": asked.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.RequestID)
	assert.Equal(t, asked.ID, *created.RequestID)
}
