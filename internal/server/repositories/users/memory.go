package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/soulara/internal/common"
	"github.com/dmitrijs2005/soulara/internal/server/models"
)

// MemoryRepository keeps members in process memory. Callers always get
// copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    map[string]*models.User{},
		byEmail: map[string]string{},
	}
}

func clone(u *models.User) *models.User {
	c := *u
	c.Profile = *u.Profile.Clone()
	return &c
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return common.ErrorAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return common.ErrorAlreadyExists
	}

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	r.byID[user.ID] = clone(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if user.Email != old.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return common.ErrorAlreadyExists
		}
		delete(r.byEmail, old.Email)
		r.byEmail[user.Email] = user.ID
	}

	user.CreatedAt = old.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.byID[user.ID] = clone(user)
	return nil
}
