package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Email    string `json:"email" binding:"required,email"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is returned by login and by every refresh; both tokens rotate together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

func NewTokenPair(access, refresh string, ttl time.Duration) TokenPair {
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(ttl / time.Second),
	}
}

// AuthResponse is the login payload: the token pair plus who it belongs to.
type AuthResponse struct {
	TokenPair
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// RefreshTokenRequest carries the opaque refresh token for /refresh and /revoke.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
