package db

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/javiermolinar/crewgrid/internal/task"
)

// ListMembers returns the roster in display order.
func (s *SQLite) ListMembers(ctx context.Context) ([]task.Member, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, position FROM members ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []task.Member
	for rows.Next() {
		var m task.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Position); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}

	return members, nil
}

// AddMember appends a member at the end of the roster.
func (s *SQLite) AddMember(ctx context.Context, name, email string) (task.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return task.Member{}, task.ErrEmptyAssignee
	}

	m := task.Member{ID: uuid.NewString(), Name: name, Email: strings.TrimSpace(email)}
	query := `
		INSERT INTO members (id, name, email, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM members))
		RETURNING position
	`
	if err := s.db.QueryRowContext(ctx, query, m.ID, m.Name, m.Email).Scan(&m.Position); err != nil {
		return task.Member{}, fmt.Errorf("inserting member: %w", err)
	}

	s.log.Info().Str("member_id", m.ID).Str("name", m.Name).Msg("member added")
	return m, nil
}

// ReorderMember moves the member at index from to index to and renumbers
// the roster.
func (s *SQLite) ReorderMember(ctx context.Context, from, to int) error {
	members, err := s.ListMembers(ctx)
	if err != nil {
		return err
	}

	n := len(members)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d members", task.ErrOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}

	m := members[from]
	members = slices.Delete(members, from, from+1)
	members = slices.Insert(members, to, m)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE members SET position = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, m := range members {
		if _, err := stmt.ExecContext(ctx, i, m.ID); err != nil {
			return fmt.Errorf("updating member %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Info().Int("from", from).Int("to", to).Str("name", m.Name).Msg("member reordered")
	return nil
}
