package db

import (
	"context"
	"fmt"
)

// seedMembers is the roster written to an empty database.
var seedMembers = []struct{ id, name string }{
	{"1", "Jeremie"},
	{"2", "Lizzie"},
	{"3", "Lamar"},
	{"4", "Jeff"},
}

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			assignee    TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT,
			start_time  TEXT NOT NULL DEFAULT '',
			end_time    TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT 'blue',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_start_date ON tasks(start_date);
		CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee);

		CREATE TABLE IF NOT EXISTS members (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			email    TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return s.seed(context.Background())
}

// seed fills an empty roster with the default team.
func (s *SQLite) seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return fmt.Errorf("counting members: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, m := range seedMembers {
		_, err := tx.ExecContext(ctx, `INSERT INTO members (id, name, position) VALUES (?, ?, ?)`, m.id, m.name, i)
		if err != nil {
			return fmt.Errorf("seeding member %q: %w", m.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
