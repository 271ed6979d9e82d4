package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

type storedProject struct {
	userID    string
	project   *models.Project
	createdAt int64
	updatedAt int64
}

// ProjectStore keeps projects in process memory. It backs development
// and tests; a restart drops everything.
type ProjectStore struct {
	mu        sync.RWMutex
	projects  map[string]*storedProject // projectID -> record
	userIndex map[string][]string       // userID -> []projectID
}

// NewProjectStore creates an empty in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects:  make(map[string]*storedProject),
		userIndex: make(map[string][]string),
	}
}

// Save upserts a project for the account. A missing id, or an id owned
// by another account, means create under a fresh id.
func (s *ProjectStore) Save(ctx context.Context, userID string, p *models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	cp := p.Clone()

	if cp.ID != "" {
		if rec, ok := s.projects[cp.ID]; ok {
			if rec.userID != userID {
				// The id belongs to another account; never adopt it.
				cp.ID = ""
			} else {
				rec.project = cp
				rec.updatedAt = now
				return cp.Clone(), nil
			}
		}
	}

	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	s.projects[cp.ID] = &storedProject{
		userID:    userID,
		project:   cp,
		createdAt: now,
		updatedAt: now,
	}
	s.userIndex[userID] = append(s.userIndex[userID], cp.ID)
	return cp.Clone(), nil
}

// Get returns the account's project by id.
func (s *ProjectStore) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.projects[id]
	if !ok || rec.userID != userID {
		return nil, storage.ErrNotFound
	}
	return rec.project.Clone(), nil
}

// List returns the account's project summaries, newest-updated first.
func (s *ProjectStore) List(ctx context.Context, userID string) ([]models.ProjectSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]models.ProjectSummary, 0, len(s.userIndex[userID]))
	for _, id := range s.userIndex[userID] {
		rec, ok := s.projects[id]
		if !ok {
			continue
		}
		summaries = append(summaries, models.ProjectSummary{
			ID:        rec.project.ID,
			Name:      rec.project.Name,
			Width:     rec.project.Width,
			Height:    rec.project.Height,
			CreatedAt: rec.createdAt,
			UpdatedAt: rec.updatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}

// Delete removes the account's project. Absent or non-owned ids are a
// silent no-op.
func (s *ProjectStore) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.projects[id]
	if !ok || rec.userID != userID {
		return nil
	}
	delete(s.projects, id)

	ids := s.userIndex[userID]
	for i, pid := range ids {
		if pid == id {
			s.userIndex[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
