package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

// UserStore keeps registered accounts in process memory.
type UserStore struct {
	mu        sync.RWMutex
	accounts  map[string]*models.Account // id -> account
	usernames map[string]string          // username -> id
}

// NewUserStore creates an empty in-memory account store.
func NewUserStore() *UserStore {
	return &UserStore{
		accounts:  make(map[string]*models.Account),
		usernames: make(map[string]string),
	}
}

func (s *UserStore) CreateAccount(ctx context.Context, username, passwordHash string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[username]; taken {
		return nil, storage.ErrUsernameTaken
	}
	acct := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
	s.accounts[acct.ID] = acct
	s.usernames[username] = acct.ID

	cp := *acct
	return &cp, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *s.accounts[id]
	return &cp, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *acct
	return &cp, nil
}
