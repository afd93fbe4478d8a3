package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/models"
)

// TaskRepository issues task queries against an injected DB.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository binds a repository to db.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelect = `SELECT t.id, t.title, t.description, t.status, t.priority, t.assigned_to,
        t.project_id, p.name, t.due_date, t.created_at, t.updated_at
    FROM tasks t
    LEFT JOIN projects p ON t.project_id = p.id`

const newestFirst = ` ORDER BY t.created_at DESC, t.id DESC`

// Create validates and inserts a task, returning its id.
func (r *TaskRepository) Create(ctx context.Context, in models.TaskInput) (int64, error) {
	in, err := normalizeTaskInput(in)
	if err != nil {
		return 0, err
	}

	id, err := r.db.insert(ctx, r.db.conn, `INSERT INTO tasks (title, description, status, priority, assigned_to, project_id, due_date)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Title, nullableString(in.Description), string(in.Status), string(in.Priority),
		nullableString(in.AssignedTo), nullableInt(in.ProjectID), nullableDate(in.DueDate))
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// GetByID fetches one task with its project name.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (models.Task, error) {
	row := r.db.queryRow(ctx, r.db.conn, taskSelect+` WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List returns all tasks newest first.
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, taskSelect+newestFirst)
}

// Recent returns the newest limit tasks.
func (r *TaskRepository) Recent(ctx context.Context, limit int) ([]models.Task, error) {
	if limit <= 0 {
		return []models.Task{}, nil
	}
	return r.list(ctx, taskSelect+newestFirst+` LIMIT ?`, limit)
}

// Update replaces every editable field. It reports false when the task is absent.
func (r *TaskRepository) Update(ctx context.Context, id int64, in models.TaskInput) (bool, error) {
	in, err := normalizeTaskInput(in)
	if err != nil {
		return false, err
	}

	res, err := r.db.exec(ctx, r.db.conn, `UPDATE tasks
        SET title = ?, description = ?, status = ?, priority = ?, assigned_to = ?, project_id = ?, due_date = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`,
		in.Title, nullableString(in.Description), string(in.Status), string(in.Priority),
		nullableString(in.AssignedTo), nullableInt(in.ProjectID), nullableDate(in.DueDate), id)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return affected(res)
}

// UpdateStatus moves a task to another column. Any status may follow any other.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	res, err := r.db.exec(ctx, r.db.conn, `UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(status), id)
	if err != nil {
		return false, fmt.Errorf("update task status: %w", err)
	}
	return affected(res)
}

// Delete removes a task by id.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.exec(ctx, r.db.conn, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected(res)
}

// Search matches keyword case-insensitively against title or description.
// A blank keyword matches nothing.
func (r *TaskRepository) Search(ctx context.Context, keyword string) ([]models.Task, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Task{}, nil
	}
	// Both sides fold through the database's LOWER so they agree on non-ASCII letters.
	pattern := "%" + escapeLike(keyword) + "%"
	return r.list(ctx, taskSelect+`
    WHERE LOWER(t.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(COALESCE(t.description, '')) LIKE LOWER(?) ESCAPE '\'`+newestFirst,
		pattern, pattern)
}

// Filter ANDs every non-empty criterion; an empty filter returns all tasks.
func (r *TaskRepository) Filter(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	query := taskSelect + ` WHERE 1=1`
	var args []any

	if f.Status != "" {
		query += ` AND t.status = ?`
		args = append(args, string(f.Status))
	}
	if f.Priority != "" {
		query += ` AND t.priority = ?`
		args = append(args, string(f.Priority))
	}
	if f.ProjectID != nil {
		query += ` AND t.project_id = ?`
		args = append(args, *f.ProjectID)
	}

	return r.list(ctx, query+newestFirst, args...)
}

// GroupedByStatus returns the kanban columns. Every status key is present; within a
// column tasks run from high to low priority, oldest first.
func (r *TaskRepository) GroupedByStatus(ctx context.Context) (map[models.Status][]models.Task, error) {
	tasks, err := r.list(ctx, taskSelect+`
    ORDER BY CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC,
        t.created_at ASC, t.id ASC`)
	if err != nil {
		return nil, err
	}

	board := make(map[models.Status][]models.Task, len(models.Statuses))
	for _, s := range models.Statuses {
		board[s] = []models.Task{}
	}
	for _, t := range tasks {
		board[t.Status] = append(board[t.Status], t)
	}
	return board, nil
}

// Stats counts tasks per status and priority. A task is overdue when its due date
// is before today and it is not done.
func (r *TaskRepository) Stats(ctx context.Context, today time.Time) (models.TaskStats, error) {
	var s models.TaskStats
	err := r.db.queryRow(ctx, r.db.conn, `SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date < ? AND status <> 'done' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN priority = 'medium' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN priority = 'low' THEN 1 ELSE 0 END), 0)
        FROM tasks`, today.Format(dateLayout)).
		Scan(&s.Total, &s.Todo, &s.InProgress, &s.Done, &s.Overdue, &s.High, &s.Medium, &s.Low)
	if err != nil {
		return models.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}
	return s, nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.query(ctx, r.db.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		status      string
		priority    string
		assignee    sql.NullString
		projectID   sql.NullInt64
		projectName sql.NullString
		due         sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &description, &status, &priority, &assignee,
		&projectID, &projectName, &due, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}

	t.Description = description.String
	t.Status = models.Status(status)
	t.Priority = models.Priority(priority)
	t.AssignedTo = assignee.String
	t.ProjectName = projectName.String
	if projectID.Valid {
		id := projectID.Int64
		t.ProjectID = &id
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return t, nil
}

func normalizeTaskInput(in models.TaskInput) (models.TaskInput, error) {
	in.Title = cleanText(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: task title must not be empty", ErrValidation)
	}
	in.Description = cleanText(in.Description)
	in.AssignedTo = cleanText(in.AssignedTo)

	if in.Status == "" {
		in.Status = models.StatusTodo
	}
	if !in.Status.Valid() {
		return in, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return in, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}
	return in, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
