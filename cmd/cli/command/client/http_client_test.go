package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fandomhub/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		_ = json.NewEncoder(w).Encode(dto.AuthResponse{TokenPair: dto.NewTokenPair("a", "r", 15*time.Minute), UserID: "u-1"})
	}))
	defer srv.Close()

	resp, err := NewHTTPClient(srv.URL).Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "nope"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestListNotificationsFilterAndToken(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]dto.NotificationWithViewedDto{
			{NotificationDto: dto.NotificationDto{ID: 3}, IsViewed: true, IsHidden: true},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/")
	c.SetToken("tok")
	hidden := true

	items, err := c.ListNotifications(context.Background(), &hidden)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsHidden)
	assert.Equal(t, "is_hidden=true", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)

	_, err = c.ListNotifications(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestApplyStateAcceptsMultiStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications/hidden", r.URL.Path)

		var req dto.BatchStateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int64{1, 2}, req.NotificationIDs)

		w.WriteHeader(http.StatusMultiStatus)
		_ = json.NewEncoder(w).Encode(dto.BatchResult{
			Succeeded: []int64{1},
			Failed:    []dto.BatchFailure{{ID: 2, Reason: "notification not found"}},
		})
	}))
	defer srv.Close()

	result, err := NewHTTPClient(srv.URL).ApplyState(context.Background(), "hidden", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "notification not found", result.Failed[0].Reason)
}

func TestSubscribeAcceptsNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/fandoms/7/subscribe", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, NewHTTPClient(srv.URL).Unsubscribe(context.Background(), 7))
}
