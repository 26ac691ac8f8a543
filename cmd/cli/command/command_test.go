package command

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fandomhub/cmd/cli/authentication"
	"fandomhub/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "1", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 3}, ids)

	_, err = parseIDs([]string{"1", "zero"})
	assert.Error(t, err)

	_, err = parseIDs([]string{"-4"})
	assert.Error(t, err)
}

func fakeAPI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.AuthResponse{
			TokenPair: dto.NewTokenPair("access", "refresh", 15*time.Minute),
			UserID:    "u-1",
			Username:  "alice",
		})
	})
	mux.HandleFunc("POST /api/auth/revoke", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"refresh token revoked"}`))
	})
	mux.HandleFunc("POST /api/notifications/hidden", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusMultiStatus)
		_ = json.NewEncoder(w).Encode(dto.BatchResult{
			Succeeded: []int64{1},
			Failed:    []dto.BatchFailure{{ID: 2, Reason: "notification not found"}},
		})
	})
	return httptest.NewServer(mux)
}

func TestLoginHideLogout(t *testing.T) {
	keyring.MockInit()
	srv := fakeAPI(t)
	defer srv.Close()

	rootCmd.SetArgs([]string{"auth", "login", "-u", "alice", "-p", "password123", "--api", srv.URL})
	require.NoError(t, rootCmd.Execute())

	creds, err := authentication.For(srv.URL).Load()
	require.NoError(t, err)
	assert.Equal(t, "access", creds.AccessToken)
	assert.Equal(t, "u-1", creds.UserID)
	assert.False(t, creds.Expired(time.Now()))

	rootCmd.SetArgs([]string{"notifications", "hide", "1", "2", "--api", srv.URL})
	err = rootCmd.Execute()
	assert.ErrorContains(t, err, "1 of 2")

	rootCmd.SetArgs([]string{"auth", "logout", "--api", srv.URL})
	require.NoError(t, rootCmd.Execute())

	_, err = authentication.For(srv.URL).Load()
	assert.ErrorIs(t, err, authentication.ErrNotLoggedIn)
}

func TestCommandsRequireLogin(t *testing.T) {
	keyring.MockInit()

	rootCmd.SetArgs([]string{"notifications", "count"})
	assert.ErrorIs(t, rootCmd.Execute(), authentication.ErrNotLoggedIn)
}
