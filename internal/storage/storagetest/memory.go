// Package storagetest provides an in-process storage.UserStore for tests.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hongminglow/platform-accounts/internal/models"
	"github.com/hongminglow/platform-accounts/internal/storage"
)

var _ storage.UserStore = (*MemoryStore)(nil)

// MemoryStore mimics the Postgres store: sequential ids, unique emails,
// partial platform updates and a non-decreasing setup timestamp.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User

	// BeforeCreate runs inside CreateUser before the uniqueness check.
	BeforeCreate func(user models.User)
	// Err, when set, is returned by every operation.
	Err error
	// Now stamps platform updates; defaults to time.Now.
	Now func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]models.User)}
}

func (m *MemoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	if hook := m.BeforeCreate; hook != nil {
		hook(user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.User{}, m.Err
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = m.now()
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.User{}, m.Err
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.User{}, m.Err
	}
	user, ok := m.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) UpdatePlatforms(_ context.Context, id int64, fields models.PlatformFields) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.User{}, m.Err
	}
	if len(fields) == 0 {
		return models.User{}, errors.New("no platform fields to update")
	}
	user, ok := m.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	user.ApplyPlatforms(fields)
	now := m.now()
	if user.PlatformsSetupAt == nil || now.After(*user.PlatformsSetupAt) {
		user.PlatformsSetupAt = &now
	}
	m.users[id] = user
	return user, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return m.Err
}

// Len returns the number of stored users.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *MemoryStore) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
