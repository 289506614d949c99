// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/crewgrid/internal/dateutil"
	"github.com/javiermolinar/crewgrid/internal/task"
)

const taskColumns = `id, title, description, assignee, start_date, end_date,
	start_time, end_time, color, created_at, updated_at`

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, log: zerolog.Nop()}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SetLogger routes mutation logs to l.
func (s *SQLite) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("component", "store").Logger()
}

// CreateTask validates t, assigns it an ID and stores it.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	t.ID = uuid.NewString()
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Color == "" {
		t.Color = task.DefaultColor
	}

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Assignee,
		dateutil.FormatDate(t.StartDate),
		formatEndDate(t.EndDate),
		t.StartTime,
		t.EndTime,
		t.Color,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	s.log.Info().
		Str("task_id", t.ID).
		Str("assignee", t.Assignee).
		Str("date", dateutil.FormatDate(t.StartDate)).
		Msg("task created")
	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

// ListTasks returns every task ordered by start date and time.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY start_date, start_time, created_at`
	return s.queryTasks(ctx, query)
}

// ListTasksInRange returns tasks whose [start, end] dates intersect the
// inclusive range, so a multi-day task that began earlier is included.
func (s *SQLite) ListTasksInRange(ctx context.Context, start, end time.Time) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE start_date <= ? AND COALESCE(end_date, start_date) >= ?
		ORDER BY start_date, start_time, created_at
	`
	return s.queryTasks(ctx, query, dateutil.FormatDate(end), dateutil.FormatDate(start))
}

func (s *SQLite) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask applies a partial update inside a transaction. The merged task
// is validated before it is written.
func (s *SQLite) UpdateTask(ctx context.Context, u task.Update) (*task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	current, err := scanTask(tx.QueryRowContext(ctx, query, u.TaskID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, u.TaskID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}

	if u.IsEmpty() {
		return current, nil
	}

	next := u.Apply(current)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()

	update := `
		UPDATE tasks
		SET title = ?, description = ?, assignee = ?, start_date = ?, end_date = ?,
		    start_time = ?, end_time = ?, color = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, update,
		next.Title,
		next.Description,
		next.Assignee,
		dateutil.FormatDate(next.StartDate),
		formatEndDate(next.EndDate),
		next.StartTime,
		next.EndTime,
		next.Color,
		next.UpdatedAt.Format(time.RFC3339),
		next.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Info().
		Str("task_id", next.ID).
		Strs("fields", u.Fields()).
		Str("assignee", next.Assignee).
		Str("date", dateutil.FormatDate(next.StartDate)).
		Msg("task updated")
	return next, nil
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}

	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t         task.Task
		startDate string
		endDate   sql.NullString
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Assignee,
		&startDate,
		&endDate,
		&t.StartTime,
		&t.EndTime,
		&t.Color,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.StartDate, err = parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}

	if endDate.Valid && endDate.String != "" {
		end, err := parseDate(endDate.String)
		if err != nil {
			return nil, fmt.Errorf("parsing end date: %w", err)
		}
		t.EndDate = &end
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &t, nil
}

func formatEndDate(end *time.Time) any {
	if end == nil {
		return nil
	}
	return dateutil.FormatDate(*end)
}

// parseDate parses a date string in the formats SQLite might return.
// Dates are calendar dates and always come back as UTC midnight.
func parseDate(s string) (time.Time, error) {
	if len(s) >= len(dateutil.DateLayout) {
		if t, err := dateutil.ParseStrict(s[:len(dateutil.DateLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
