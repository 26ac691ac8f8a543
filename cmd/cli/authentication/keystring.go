package authentication

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
)

const keyringService = "fandomhub-cli"

// ErrNotLoggedIn is returned when the keyring holds no session for the server.
var ErrNotLoggedIn = errors.New("not logged in, run `fandomhub auth login` first")

type StoredCredentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Expired reports whether the access token expires within the next minute.
func (c *StoredCredentials) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && now.Add(time.Minute).Unix() >= c.ExpiresAt
}

// Session is the keyring entry for one API server, so logins against
// different servers do not overwrite each other.
type Session struct {
	account string
}

func For(apiURL string) *Session {
	return &Session{account: strings.TrimRight(strings.ToLower(apiURL), "/")}
}

func (s *Session) Save(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := keyring.Set(keyringService, s.account, string(data)); err != nil {
		return fmt.Errorf("keyring: %w", err)
	}
	return nil
}

func (s *Session) Load() (*StoredCredentials, error) {
	raw, err := keyring.Get(keyringService, s.account)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return nil, ErrNotLoggedIn
	case err != nil:
		return nil, fmt.Errorf("keyring: %w", err)
	}

	creds := new(StoredCredentials)
	if err := json.Unmarshal([]byte(raw), creds); err != nil {
		return nil, fmt.Errorf("stored session is corrupt, log in again: %w", err)
	}
	return creds, nil
}

// Clear forgets the session; clearing an absent session succeeds.
func (s *Session) Clear() error {
	err := keyring.Delete(keyringService, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring: %w", err)
	}
	return nil
}
