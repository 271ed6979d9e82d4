package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

// UserStore implements storage.UserStore on SQLite.
type UserStore struct {
	db *DB
}

// NewUserStore creates an account store over an open database.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateAccount(ctx context.Context, username, passwordHash string) (*models.Account, error) {
	acct := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		acct.ID, acct.Username, acct.PasswordHash, acct.CreatedAt,
	)
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, storage.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acct, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.get(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return s.get(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (s *UserStore) get(ctx context.Context, query, arg string) (*models.Account, error) {
	var acct models.Account
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&acct.ID, &acct.Username, &acct.PasswordHash, &acct.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acct, nil
}
