package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/internal/models"
)

// ProjectRepository issues project queries against an injected DB.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository binds a repository to db.
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `p.id, p.name, p.description, p.created_at, p.updated_at`

// Create inserts a project and returns its id.
func (r *ProjectRepository) Create(ctx context.Context, name, description string) (int64, error) {
	name = cleanText(name)
	if name == "" {
		return 0, fmt.Errorf("%w: project name must not be empty", ErrValidation)
	}

	id, err := r.db.insert(ctx, r.db.conn, `INSERT INTO projects (name, description) VALUES (?, ?)`,
		name, nullableString(cleanText(description)))
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return id, nil
}

// GetByID fetches a single project.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (models.Project, error) {
	row := r.db.queryRow(ctx, r.db.conn, `SELECT `+projectColumns+` FROM projects p WHERE p.id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List returns projects newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY p.created_at DESC, p.id DESC`)
}

// ListByName returns projects alphabetically, for selection dropdowns.
func (r *ProjectRepository) ListByName(ctx context.Context) ([]models.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY LOWER(p.name) ASC, p.id ASC`)
}

func (r *ProjectRepository) list(ctx context.Context, query string) ([]models.Project, error) {
	rows, err := r.db.query(ctx, r.db.conn, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListWithTaskCounts returns every project, including empty ones, with its task count.
func (r *ProjectRepository) ListWithTaskCounts(ctx context.Context) ([]models.ProjectSummary, error) {
	rows, err := r.db.query(ctx, r.db.conn, `SELECT `+projectColumns+`, COUNT(t.id) AS task_count
        FROM projects p
        LEFT JOIN tasks t ON t.project_id = p.id
        GROUP BY p.id, p.name, p.description, p.created_at, p.updated_at
        ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list project counts: %w", err)
	}
	defer rows.Close()

	summaries := []models.ProjectSummary{}
	for rows.Next() {
		var s models.ProjectSummary
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &desc, &s.CreatedAt, &s.UpdatedAt, &s.TaskCount); err != nil {
			return nil, fmt.Errorf("scan project count: %w", err)
		}
		s.Description = desc.String
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Count returns the number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.queryRow(ctx, r.db.conn, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// Update replaces name and description. It reports false when the project is absent.
func (r *ProjectRepository) Update(ctx context.Context, id int64, name, description string) (bool, error) {
	name = cleanText(name)
	if name == "" {
		return false, fmt.Errorf("%w: project name must not be empty", ErrValidation)
	}

	res, err := r.db.exec(ctx, r.db.conn, `UPDATE projects SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, nullableString(cleanText(description)), id)
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	return affected(res)
}

// Delete removes the project and all of its tasks in one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.db.exec(ctx, tx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		res, err := r.db.exec(ctx, tx, `DELETE FROM projects WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		deleted, err = affected(res)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var p models.Project
	var desc sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Project{}, err
	}
	p.Description = desc.String
	return p, nil
}
