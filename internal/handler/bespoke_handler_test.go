package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBespokeService is a mock implementation of service.BespokeService.
type MockBespokeService struct {
	mock.Mock
}

func (m *MockBespokeService) Create(ctx context.Context, req *model.BespokeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBespokeService) ListAll(ctx context.Context) ([]model.BespokeRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BespokeRequest), args.Error(1)
}

func (m *MockBespokeService) ListByUser(ctx context.Context, userID string) ([]model.BespokeRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BespokeRequest), args.Error(1)
}

func (m *MockBespokeService) Advance(ctx context.Context, id uuid.UUID, status model.BespokeStatus, actorID, actorName string) error {
	args := m.Called(ctx, id, status, actorID, actorName)
	return args.Error(0)
}

func TestBespokeHandler_Create_CustomerFilesAsThemselves(t *testing.T) {
	svc := new(MockBespokeService)
	h := NewBespokeHandler(svc, zerolog.Nop())

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *model.BespokeRequest) bool {
		return req.UserID == "u1" && req.UserName == "Customer"
	})).Return(nil)

	body, _ := json.Marshal(model.BespokeRequest{
		UserID:    "u2",
		UserName:  "Somebody Else",
		ProductID: "1",
	})
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/api/bespoke", bytes.NewReader(body)), "u1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestBespokeHandler_Create_MissingProduct(t *testing.T) {
	svc := new(MockBespokeService)
	h := NewBespokeHandler(svc, zerolog.Nop())

	body, _ := json.Marshal(model.BespokeRequest{})
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/api/bespoke", bytes.NewReader(body)), "u1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestBespokeHandler_Advance_RequiresAdmin(t *testing.T) {
	svc := new(MockBespokeService)
	h := NewBespokeHandler(svc, zerolog.Nop())

	body, _ := json.Marshal(map[string]string{"status": "Consulted"})
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/api/bespoke/x/status", bytes.NewReader(body)), "u1")
	w := httptest.NewRecorder()

	h.Advance(w, req, uuid.NewString())

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Advance")
}
