package store

import (
	"context"
	"errors"

	"taskassign/models"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateTaskID = errors.New("task id already exists")
)

// TaskStore persists canonical task records. Every method is a single
// atomic operation against the backing store.
type TaskStore interface {
	All(ctx context.Context) ([]models.Task, error)

	// FindByID returns ErrTaskNotFound when no canonical task matches.
	FindByID(ctx context.Context, taskID string) (*models.Task, error)

	// Insert returns ErrDuplicateTaskID when a task with the same taskId
	// already exists.
	Insert(ctx context.Context, task models.Task) error

	// SetStatusPriority updates the status and priority of the canonical
	// task and returns the updated record.
	SetStatusPriority(ctx context.Context, taskID, status, priority string) (*models.Task, error)

	// Delete returns ErrTaskNotFound when no canonical task matches.
	Delete(ctx context.Context, taskID string) error

	// DeleteByAssignee removes every canonical task assigned to the email
	// and returns how many were removed.
	DeleteByAssignee(ctx context.Context, email string) (int64, error)
}

// UserStore persists user records and their embedded task snapshots.
type UserStore interface {
	Employees(ctx context.Context) ([]models.User, error)

	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Apply writes the non-empty fields of the update and returns the
	// updated user. Returns ErrUserNotFound when no user matches.
	Apply(ctx context.Context, email string, update models.UserUpdate) (*models.User, error)

	// Delete returns ErrUserNotFound when no user matches.
	Delete(ctx context.Context, email string) error

	// PushSnapshot appends a task snapshot to the user's embedded list.
	// Returns ErrUserNotFound when no user matches.
	PushSnapshot(ctx context.Context, email string, snap models.TaskSnapshot) error

	// UpdateSnapshot sets status and priority on the embedded snapshot
	// matching taskID. It reports whether a snapshot was actually updated;
	// a missing user or snapshot is not an error.
	UpdateSnapshot(ctx context.Context, email, taskID, status, priority string) (bool, error)

	// PullSnapshot removes the embedded snapshot matching taskID. A missing
	// user or snapshot is a no-op.
	PullSnapshot(ctx context.Context, email, taskID string) error
}

// Store bundles the two collections and the transaction runner used by the
// user cascade delete.
type Store interface {
	Tasks() TaskStore
	Users() UserStore

	// InTransaction runs fn as one multi-document transaction: every write
	// issued through the fn's context commits together or not at all.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
