// Package valkey is an alternate project store backed by a Valkey
// server, for deployments that want shared persistence without a SQL
// database. Projects are stored as JSON blobs keyed by id, with a
// per-account set as the listing index.
package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

const (
	projectKeyPrefix = "pixelart:project:"
	indexKeyPrefix   = "pixelart:user:"
)

// ProjectStore implements storage.ProjectStore on Valkey.
type ProjectStore struct {
	client valkey.Client
}

// NewProjectStore connects to the Valkey server at addr.
func NewProjectStore(addr string) (*ProjectStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}
	return &ProjectStore{client: client}, nil
}

// Close releases the underlying connection pool.
func (s *ProjectStore) Close() {
	s.client.Close()
}

// record is the stored blob: the project plus ownership and
// bookkeeping that Valkey has no columns for.
type record struct {
	UserID    string          `json:"userId"`
	Project   *models.Project `json:"project"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

func projectKey(id string) string { return projectKeyPrefix + id }

func indexKey(userID string) string { return indexKeyPrefix + userID + ":projects" }

func (s *ProjectStore) Save(ctx context.Context, userID string, p *models.Project) (*models.Project, error) {
	now := time.Now().Unix()
	saved := p.Clone()

	rec := record{UserID: userID, Project: saved, CreatedAt: now, UpdatedAt: now}
	if saved.ID != "" {
		existing, err := s.load(ctx, saved.ID)
		switch {
		case err == nil && existing.UserID == userID:
			rec.CreatedAt = existing.CreatedAt
		case err == nil:
			// The id belongs to another account; never adopt it.
			saved.ID = ""
		case err != storage.ErrNotFound:
			return nil, err
		}
	}
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode project record: %w", err)
	}
	if err := s.client.Do(ctx, s.client.B().Set().Key(projectKey(saved.ID)).Value(string(data)).Build()).Error(); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}
	if err := s.client.Do(ctx, s.client.B().Sadd().Key(indexKey(userID)).Member(saved.ID).Build()).Error(); err != nil {
		return nil, fmt.Errorf("index project: %w", err)
	}
	return saved, nil
}

func (s *ProjectStore) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return rec.Project, nil
}

func (s *ProjectStore) List(ctx context.Context, userID string) ([]models.ProjectSummary, error) {
	ids, err := s.client.Do(ctx, s.client.B().Smembers().Key(indexKey(userID)).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("list project ids: %w", err)
	}

	summaries := make([]models.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		rec, err := s.load(ctx, id)
		if err == storage.ErrNotFound {
			continue // stale index entry
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ProjectSummary{
			ID:        rec.Project.ID,
			Name:      rec.Project.Name,
			Width:     rec.Project.Width,
			Height:    rec.Project.Height,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}

func (s *ProjectStore) Delete(ctx context.Context, userID, id string) error {
	rec, err := s.load(ctx, id)
	if err == storage.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Del().Key(projectKey(id)).Build()).Error(); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := s.client.Do(ctx, s.client.B().Srem().Key(indexKey(userID)).Member(id).Build()).Error(); err != nil {
		return fmt.Errorf("unindex project: %w", err)
	}
	return nil
}

func (s *ProjectStore) load(ctx context.Context, id string) (*record, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(projectKey(id)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode project record: %w", err)
	}
	return &rec, nil
}
