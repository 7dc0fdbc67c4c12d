package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/domain/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	ListActive(ctx context.Context, userID string) ([]model.Project, error)
	ListTrashed(ctx context.Context, userID string) ([]model.Project, error)

	// SoftDelete stamps deleted_at on the row matching both id and owner.
	// Returns false when no row matched; not-found and not-owned are
	// indistinguishable on purpose.
	SoftDelete(ctx context.Context, projectID, userID string) (bool, error)

	// Restore clears deleted_at, but only on a row that is currently
	// trashed. An already-active project is a non-match.
	Restore(ctx context.Context, projectID, userID string) (bool, error)

	// DeleteReturningImage removes the row (trashed or not) and reports the
	// image URL it carried so the caller can clean up blob storage.
	DeleteReturningImage(ctx context.Context, projectID, userID string) (deleted bool, imageURL string, err error)

	// UpdatePartial overwrites only the non-empty fields, gated on ownership.
	UpdatePartial(ctx context.Context, projectID, userID string, patch ProjectPatch) (*model.Project, error)
}

// ProjectPatch carries a partial project update; empty strings mean
// "leave unchanged" (projects have no meaningful empty text fields).
type ProjectPatch struct {
	Title       string
	Description string
	ImageURL    string
	ProjectURL  string
	LiveDemoURL string
}

const projectColumns = `id, user_id, title, description,
	       COALESCE(image_url, ''), COALESCE(project_url, ''), COALESCE(live_demo_url, ''),
	       created_at, deleted_at`

type pgProjectRepository struct {
	db *sql.DB
}

func NewPgProjectRepository(db *sql.DB) ProjectRepository {
	return &pgProjectRepository{db: db}
}

func (r *pgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `INSERT INTO projects (id, user_id, title, description, image_url, project_url, live_demo_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.UserID, project.Title, project.Description,
		project.ImageURL, project.ProjectURL, project.LiveDemoURL, project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectRepository) ListActive(ctx context.Context, userID string) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE user_id = $1 AND deleted_at IS NULL
	          ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, userID)
}

func (r *pgProjectRepository) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE user_id = $1 AND deleted_at IS NOT NULL
	          ORDER BY deleted_at DESC`
	return r.queryProjects(ctx, query, userID)
}

func (r *pgProjectRepository) SoftDelete(ctx context.Context, projectID, userID string) (bool, error) {
	query := `UPDATE projects
	          SET deleted_at = NOW()
	          WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return false, fmt.Errorf("pgProjectRepository.SoftDelete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgProjectRepository.SoftDelete: %w", err)
	}
	return n > 0, nil
}

func (r *pgProjectRepository) Restore(ctx context.Context, projectID, userID string) (bool, error) {
	query := `UPDATE projects
	          SET deleted_at = NULL
	          WHERE id = $1 AND user_id = $2 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return false, fmt.Errorf("pgProjectRepository.Restore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgProjectRepository.Restore: %w", err)
	}
	return n > 0, nil
}

func (r *pgProjectRepository) DeleteReturningImage(ctx context.Context, projectID, userID string) (bool, string, error) {
	// Trash state does not gate a permanent delete; active rows go too.
	query := `DELETE FROM projects
	          WHERE id = $1 AND user_id = $2
	          RETURNING COALESCE(image_url, '')`
	var imageURL string
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("pgProjectRepository.DeleteReturningImage: %w", err)
	}
	return true, imageURL, nil
}

func (r *pgProjectRepository) UpdatePartial(ctx context.Context, projectID, userID string, patch ProjectPatch) (*model.Project, error) {
	// NULLIF folds empty patch fields back onto the stored column values.
	query := `UPDATE projects SET
	              title = COALESCE(NULLIF($3, ''), title),
	              description = COALESCE(NULLIF($4, ''), description),
	              image_url = COALESCE(NULLIF($5, ''), image_url),
	              project_url = COALESCE(NULLIF($6, ''), project_url),
	              live_demo_url = COALESCE(NULLIF($7, ''), live_demo_url)
	          WHERE id = $1 AND user_id = $2
	          RETURNING ` + projectColumns
	project, err := r.scanProject(r.db.QueryRowContext(ctx, query, projectID, userID,
		patch.Title, patch.Description, patch.ImageURL, patch.ProjectURL, patch.LiveDemoURL,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectRepository.UpdatePartial: %w", err)
	}
	return project, nil
}

func (r *pgProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProjectRepository query: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		project, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("pgProjectRepository scan: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProjectRepository rows: %w", err)
	}
	return projects, nil
}

func (r *pgProjectRepository) scanProject(row rowScanner) (*model.Project, error) {
	project := &model.Project{}
	err := row.Scan(
		&project.ID, &project.UserID, &project.Title, &project.Description,
		&project.ImageURL, &project.ProjectURL, &project.LiveDemoURL,
		&project.CreatedAt, &project.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}
