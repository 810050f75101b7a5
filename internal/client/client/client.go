package client

import (
	"context"

	"github.com/dmitrijs2005/soulara/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateLocation(ctx context.Context, loc models.Location) (*models.User, error)
	Deactivate(ctx context.Context) error
}

// TokenSource yields the access token for authenticated calls. An empty
// token means the Authorization header is omitted.
type TokenSource func(ctx context.Context) (string, error)

// UnauthorizedHandler is called when an authenticated call is answered
// with 401, before the error is returned to the caller.
type UnauthorizedHandler func(ctx context.Context)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// LoginResult is the data of a successful login. User enum values outside
// their closed sets are already dropped.
type LoginResult struct {
	User                models.User `json:"user"`
	AccessToken         string      `json:"accessToken"`
	ExpiresAt           string      `json:"expiresAt"`
	ProfileCompleteness int         `json:"profileCompleteness"`
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
