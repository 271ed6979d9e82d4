// Package storage defines the persistence boundary consumed by the
// API layer. Implementations live in the sibling backend packages
// (memory, sqlite, valkey) and are selected by configuration.
package storage

import (
	"context"
	"errors"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

var (
	// ErrNotFound distinguishes absence from failure on reads.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when registering a duplicate name.
	ErrUsernameTaken = errors.New("username already taken")
)

// ProjectStore persists full project documents, always scoped to the
// owning account.
type ProjectStore interface {
	// Save upserts the project for the given account. An empty
	// project id, or an id owned by another account, means create
	// under a fresh id; the returned project carries the assigned id.
	Save(ctx context.Context, userID string, p *models.Project) (*models.Project, error)
	// Get returns the account's project by id, or ErrNotFound.
	Get(ctx context.Context, userID, id string) (*models.Project, error)
	// List returns summaries of the account's projects, most
	// recently updated first.
	List(ctx context.Context, userID string) ([]models.ProjectSummary, error)
	// Delete removes the account's project by id. Deleting an
	// absent or non-owned project is a no-op, not an error.
	Delete(ctx context.Context, userID, id string) error
}

// UserStore persists registered accounts.
type UserStore interface {
	// CreateAccount stores a new account, or ErrUsernameTaken.
	CreateAccount(ctx context.Context, username, passwordHash string) (*models.Account, error)
	// GetByUsername returns the account, or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// GetByID returns the account, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
