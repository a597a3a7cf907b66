package dto

import (
	"time"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// RegisterRequest payload for self-service sign-up. Any level sent by the client is ignored.
type RegisterRequest struct {
	FullName    string `json:"full_name"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// LoginRequest payload; Login matches either the email or the login name.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ElevateRequest payload for POST /auth/elevate. Level defaults to 3.
type ElevateRequest struct {
	UserID int64 `json:"user_id"`
	Level  *int  `json:"level"`
}

// TokenResponse is the body of every auth endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Level       int    `json:"level"`
	UserID      int64  `json:"user_id,omitempty"`
}

// NewTokenResponse renders a grant; the user id is included only when withUser is set.
func NewTokenResponse(grant *domain.TokenGrant, withUser bool) TokenResponse {
	resp := TokenResponse{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		Level:       grant.Level,
	}
	if withUser {
		resp.UserID = grant.UserID
	}
	return resp
}

// UserCreateRequest payload for administrator-created accounts.
type UserCreateRequest struct {
	FullName    string `json:"full_name"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	AccessLevel int    `json:"access_level"`
}

// UserUpdateRequest payload; omitted fields keep their value.
type UserUpdateRequest struct {
	FullName    *string `json:"full_name"`
	Login       *string `json:"login"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Password    *string `json:"password"`
	AccessLevel *int    `json:"access_level"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Login       string    `json:"login"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	AccessLevel int       `json:"access_level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Login:       u.Login,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		AccessLevel: u.AccessLevel,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
