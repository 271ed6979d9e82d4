package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

// ProjectStore implements storage.ProjectStore on SQLite.
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a project store over an open database.
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// projectDoc is the JSON document stored in the data column: the parts
// of a project that the relational columns don't carry.
type projectDoc struct {
	Frames            []models.Frame `json:"frames"`
	CurrentFrameIndex int            `json:"currentFrameIndex"`
	CurrentLayerIndex int            `json:"currentLayerIndex"`
}

func (s *ProjectStore) Save(ctx context.Context, userID string, p *models.Project) (*models.Project, error) {
	data, err := json.Marshal(projectDoc{
		Frames:            p.Frames,
		CurrentFrameIndex: p.CurrentFrameIndex,
		CurrentLayerIndex: p.CurrentLayerIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("encode project data: %w", err)
	}
	now := time.Now().Unix()

	if p.ID != "" {
		res, err := s.db.ExecContext(ctx,
			`UPDATE projects SET name = ?, width = ?, height = ?, data = ?, updated_at = ?
			 WHERE id = ? AND user_id = ?`,
			p.Name, p.Width, p.Height, string(data), now, p.ID, userID,
		)
		if err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
		if affected > 0 {
			return p.Clone(), nil
		}
		// Unknown or non-owned id: fall through and insert fresh.
	}

	saved := p.Clone()
	if saved.ID != "" {
		// The update matched nothing, so an existing row with this id
		// belongs to another account; never adopt the id.
		var taken int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM projects WHERE id = ?`, saved.ID,
		).Scan(&taken); err != nil {
			return nil, fmt.Errorf("check project id: %w", err)
		}
		if taken > 0 {
			saved.ID = ""
		}
	}
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (id, user_id, name, width, height, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, userID, saved.Name, saved.Width, saved.Height, string(data), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return saved, nil
}

func (s *ProjectStore) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	var (
		p    models.Project
		data string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, width, height, data FROM projects WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&p.ID, &p.Name, &p.Width, &p.Height, &data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var doc projectDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode project data: %w", err)
	}
	p.Frames = doc.Frames
	p.CurrentFrameIndex = doc.CurrentFrameIndex
	p.CurrentLayerIndex = doc.CurrentLayerIndex
	return &p, nil
}

func (s *ProjectStore) List(ctx context.Context, userID string) ([]models.ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, width, height, created_at, updated_at
		 FROM projects WHERE user_id = ? ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var summaries []models.ProjectSummary
	for rows.Next() {
		var sum models.ProjectSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Width, &sum.Height, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return summaries, nil
}

func (s *ProjectStore) Delete(ctx context.Context, userID, id string) error {
	// Deleting an absent or non-owned project is deliberately a no-op.
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
