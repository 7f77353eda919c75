package dto

import (
	"taskify/internal/models/user"
	"taskify/internal/service"
	"time"

	"github.com/google/uuid"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	UUID      uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromAuthResult(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		UUID:      res.User.UUID,
		Email:     res.User.Email,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}
}

type UserResponse struct {
	UUID      uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		UUID:      u.UUID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
