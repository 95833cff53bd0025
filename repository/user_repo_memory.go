package repository

import (
	"context"
	"sync"
	"time"

	"reliefsupply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepo keeps users in process memory, keyed by email.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.AppUser
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		users: make(map[string]models.AppUser),
	}
}

func (r *MemoryUserRepo) CreateUser(_ context.Context, user *models.AppUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrEmailExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryUserRepo) GetUserByEmail(_ context.Context, email string) (*models.AppUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[email]
	if !exists {
		return nil, nil
	}
	return &user, nil
}
