package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
	nextID  int
}

func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return errors.Conflict("Email already registered")
	}
	if user.ID == "" {
		user.ID = r.allocateID()
	}
	if _, exists := r.byID[user.ID]; exists {
		return errors.Conflict("User already exists")
	}

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *r.byID[id]
	return &copied, nil
}

func (r *memoryUserRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// allocateID skips ids taken by records created with an explicit id. Caller holds mu.
func (r *memoryUserRepository) allocateID() string {
	for {
		r.nextID++
		id := "u" + strconv.Itoa(r.nextID)
		if _, taken := r.byID[id]; !taken {
			return id
		}
	}
}
