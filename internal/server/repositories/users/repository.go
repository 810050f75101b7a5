// Package users stores Auth API members.
package users

import (
	"context"

	"github.com/dmitrijs2005/soulara/internal/server/models"
)

// Repository persists members. Lookups of an unknown member return
// common.ErrorNotFound; Create of a taken email returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
