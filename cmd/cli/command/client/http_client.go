package client

// http_client.go wraps the fandomhub REST API for the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
)

// APIError carries the status and the server's {"error": ...} message
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends body as JSON and decodes the response into out when the status is one of ok
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, ok ...int) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if !statusIn(resp.StatusCode, ok) {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func statusIn(status int, ok []int) bool {
	for _, s := range ok {
		if s == status {
			return true
		}
	}
	return false
}

// Auth

func (c *HTTPClient) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var result dto.RegisterResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &result, http.StatusCreated); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	var result dto.TokenPair
	body := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) RevokeToken(ctx context.Context, refreshToken string) error {
	body := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/revoke", body, nil, http.StatusOK)
	return err
}

// Fandoms

func (c *HTTPClient) ListFandoms(ctx context.Context, gameID int64) ([]dto.FandomResponse, error) {
	var result struct {
		Fandoms []dto.FandomResponse `json:"fandoms"`
	}
	path := fmt.Sprintf("/api/games/%d/fandoms", gameID)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Fandoms, nil
}

func (c *HTTPClient) Subscribe(ctx context.Context, fandomID int64) error {
	path := fmt.Sprintf("/api/fandoms/%d/subscribe", fandomID)
	_, err := c.do(ctx, http.MethodPost, path, nil, nil, http.StatusOK, http.StatusCreated, http.StatusNoContent)
	return err
}

func (c *HTTPClient) Unsubscribe(ctx context.Context, fandomID int64) error {
	path := fmt.Sprintf("/api/fandoms/%d/subscribe", fandomID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK, http.StatusNoContent)
	return err
}

func (c *HTTPClient) MySubscriptions(ctx context.Context) ([]dto.SubscriptionResponse, error) {
	var result []dto.SubscriptionResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/subscriptions/me", nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result, nil
}

// Notifications

// ListNotifications returns the caller's notifications; isHidden nil means all
func (c *HTTPClient) ListNotifications(ctx context.Context, isHidden *bool) ([]dto.NotificationWithViewedDto, error) {
	path := "/api/notifications"
	if isHidden != nil {
		path += "?" + url.Values{"is_hidden": {strconv.FormatBool(*isHidden)}}.Encode()
	}

	var result []dto.NotificationWithViewedDto
	if _, err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) UnviewedCount(ctx context.Context) (int64, error) {
	var result dto.UnviewedCountResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/notifications/unviewed-count", nil, &result, http.StatusOK); err != nil {
		return 0, err
	}
	return result.Count, nil
}

// ApplyState posts ids to /api/notifications/{op}; a 207 still returns the result
func (c *HTTPClient) ApplyState(ctx context.Context, op string, ids []int64) (*dto.BatchResult, error) {
	var result dto.BatchResult
	body := dto.BatchStateRequest{NotificationIDs: ids}
	path := "/api/notifications/" + url.PathEscape(op)
	if _, err := c.do(ctx, http.MethodPost, path, body, &result, http.StatusOK, http.StatusMultiStatus); err != nil {
		return nil, err
	}
	return &result, nil
}
