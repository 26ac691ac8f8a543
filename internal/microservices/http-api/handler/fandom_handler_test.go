package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSubscriptionService mocks service.SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, userID string, fandomID int64) error {
	args := m.Called(ctx, userID, fandomID)
	return args.Error(0)
}

func (m *MockSubscriptionService) Unsubscribe(ctx context.Context, userID string, fandomID int64) error {
	args := m.Called(ctx, userID, fandomID)
	return args.Error(0)
}

func (m *MockSubscriptionService) Members(ctx context.Context, fandomID int64) (*dto.MembersResponse, error) {
	args := m.Called(ctx, fandomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MembersResponse), args.Error(1)
}

func (m *MockSubscriptionService) ListMine(ctx context.Context, userID string) ([]dto.SubscriptionResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SubscriptionResponse), args.Error(1)
}

func TestCreateFandom(t *testing.T) {
	req := dto.CreateFandomDTO{GameID: 3, Name: "Hallownest"}

	t.Run("created", func(t *testing.T) {
		fandoms := new(MockFandomService)
		fandoms.On("Create", mock.Anything, "u1", req).
			Return(&dto.FandomResponse{ID: 7, GameID: 3, Name: "Hallownest", CreatorID: "u1"}, nil)
		r, api := newRouter("u1")
		NewFandomHandler(fandoms, new(MockSubscriptionService)).RegisterRoutes(api)

		w := doJSON(r, http.MethodPost, "/api/fandoms", req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"creator_id":"u1"`)
	})

	t.Run("unknown game", func(t *testing.T) {
		fandoms := new(MockFandomService)
		fandoms.On("Create", mock.Anything, "u1", req).Return(nil, fmt.Errorf("game 3: %w", service.ErrNotFound))
		r, api := newRouter("u1")
		NewFandomHandler(fandoms, new(MockSubscriptionService)).RegisterRoutes(api)

		assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPost, "/api/fandoms", req).Code)
	})

	t.Run("missing game id", func(t *testing.T) {
		r, api := newRouter("u1")
		NewFandomHandler(new(MockFandomService), new(MockSubscriptionService)).RegisterRoutes(api)

		w := doJSON(r, http.MethodPost, "/api/fandoms", map[string]any{"name": "Hallownest"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r, api := newRouter("")
		NewFandomHandler(new(MockFandomService), new(MockSubscriptionService)).RegisterRoutes(api)

		assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/api/fandoms", req).Code)
	})
}

func TestDeleteFandom(t *testing.T) {
	t.Run("passes role through", func(t *testing.T) {
		fandoms := new(MockFandomService)
		fandoms.On("Delete", mock.Anything, int64(7), "admin-1", models.RoleAdmin).Return(nil)
		r, api := newRouterWithRole("admin-1", models.RoleAdmin)
		NewFandomHandler(fandoms, new(MockSubscriptionService)).RegisterRoutes(api)

		assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/api/fandoms/7", nil).Code)
		fandoms.AssertExpectations(t)
	})

	t.Run("not the creator", func(t *testing.T) {
		fandoms := new(MockFandomService)
		fandoms.On("Delete", mock.Anything, int64(7), "u2", models.RoleUser).Return(service.ErrForbidden)
		r, api := newRouterWithRole("u2", models.RoleUser)
		NewFandomHandler(fandoms, new(MockSubscriptionService)).RegisterRoutes(api)

		assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodDelete, "/api/fandoms/7", nil).Code)
	})
}

func TestSubscribeUnsubscribe(t *testing.T) {
	subs := new(MockSubscriptionService)
	subs.On("Subscribe", mock.Anything, "u1", int64(7)).Return(nil)
	subs.On("Subscribe", mock.Anything, "u1", int64(8)).Return(service.ErrNotFound)
	subs.On("Unsubscribe", mock.Anything, "u1", int64(7)).Return(nil)
	r, api := newRouter("u1")
	NewFandomHandler(new(MockFandomService), subs).RegisterRoutes(api)

	w := doJSON(r, http.MethodPost, "/api/fandoms/7/subscribe", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fandom_id":7`)

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPost, "/api/fandoms/8/subscribe", nil).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/api/fandoms/7/subscribe", nil).Code)
	subs.AssertExpectations(t)
}

func TestMembersAndListMine(t *testing.T) {
	subs := new(MockSubscriptionService)
	subs.On("Members", mock.Anything, int64(7)).
		Return(&dto.MembersResponse{FandomID: 7, UserIDs: []string{"u1", "u2"}, Count: 2}, nil)
	subs.On("ListMine", mock.Anything, "u1").
		Return([]dto.SubscriptionResponse{{FandomID: 7, FandomName: "Hallownest"}}, nil)
	r, api := newRouter("u1")
	NewFandomHandler(new(MockFandomService), subs).RegisterRoutes(api)

	w := doJSON(r, http.MethodGet, "/api/fandoms/7/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members dto.MembersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	assert.Equal(t, 2, members.Count)

	w = doJSON(r, http.MethodGet, "/api/subscriptions/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Subscriptions []dto.SubscriptionResponse `json:"subscriptions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine.Subscriptions, 1)
	assert.Equal(t, "Hallownest", mine.Subscriptions[0].FandomName)
}
