package task

import (
	"context"
	"time"
)

// Member is a team roster entry.
type Member struct {
	ID       string
	Name     string
	Email    string
	Position int
}

// Repository defines the storage interface for tasks and the team roster.
type Repository interface {
	// ListTasks returns every task ordered by start date and start time.
	ListTasks(ctx context.Context) ([]*Task, error)

	// ListTasksInRange returns tasks whose [start, end] dates intersect the
	// inclusive range.
	ListTasksInRange(ctx context.Context, start, end time.Time) ([]*Task, error)

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if missing.
	GetTask(ctx context.Context, id string) (*Task, error)

	// CreateTask stores a new task, assigning its ID.
	CreateTask(ctx context.Context, t *Task) error

	// UpdateTask applies a partial update and returns the stored task.
	// The result is validated before it is written.
	UpdateTask(ctx context.Context, u Update) (*Task, error)

	// DeleteTask removes a task. Returns ErrTaskNotFound if missing.
	DeleteTask(ctx context.Context, id string) error

	// ListMembers returns the roster in display order.
	ListMembers(ctx context.Context) ([]Member, error)

	// AddMember appends a member to the roster.
	AddMember(ctx context.Context, name, email string) (Member, error)

	// ReorderMember moves the member at index from to index to.
	ReorderMember(ctx context.Context, from, to int) error

	// Close releases any resources held by the repository.
	Close() error
}
