package service

import (
	"context"
	"log"

	"taskassign/models"
	"taskassign/store"
)

// Coordinator performs the paired writes that keep a canonical task and the
// snapshot embedded in its assignee's user document in step.
//
// CreatePaired, UpdatePaired and DeletePaired issue two single-document
// writes, canonical side first. Each write is atomic on its own but the pair
// is not: a failure between the two leaves the canonical record ahead of the
// snapshot. CascadeDeleteForUser is the exception and runs as one
// multi-document transaction.
type Coordinator struct {
	store  store.Store
	logger *log.Logger
}

func NewCoordinator(st store.Store, logger *log.Logger) *Coordinator {
	return &Coordinator{store: st, logger: logger}
}

// CreatePaired inserts the canonical task and appends the snapshot to the
// assignee. The assignee is checked up front so a bad email fails before any
// write.
func (c *Coordinator) CreatePaired(ctx context.Context, task models.Task) (*models.Task, error) {
	if _, err := c.store.Users().FindByEmail(ctx, task.AssignedTo); err != nil {
		return nil, err
	}

	if err := c.store.Tasks().Insert(ctx, task); err != nil {
		return nil, err
	}

	if err := c.store.Users().PushSnapshot(ctx, task.AssignedTo, task.Snapshot()); err != nil {
		// The canonical task is already committed. Surface the error and
		// leave the record in place; there is no rollback here.
		c.logger.Printf("snapshot append failed for task %s, canonical record stands: %v", task.TaskID, err)
		return nil, err
	}
	return &task, nil
}

// UpdatePaired applies status and priority to the canonical task, then to the
// assignee's snapshot. A missing assignee or snapshot does not fail the
// update: the canonical write stands and the miss is only logged.
func (c *Coordinator) UpdatePaired(ctx context.Context, taskID, status, priority string) (*models.Task, error) {
	task, err := c.store.Tasks().SetStatusPriority(ctx, taskID, status, priority)
	if err != nil {
		return nil, err
	}

	updated, err := c.store.Users().UpdateSnapshot(ctx, task.AssignedTo, taskID, status, priority)
	if err != nil {
		c.logger.Printf("snapshot update failed for task %s: %v", taskID, err)
		return nil, err
	}
	if !updated {
		c.logger.Printf("no snapshot found for task %s under %s, canonical update stands", taskID, task.AssignedTo)
	}
	return task, nil
}

// DeletePaired removes the canonical task, then pulls the snapshot from the
// assignee. A missing assignee or snapshot is a no-op.
func (c *Coordinator) DeletePaired(ctx context.Context, taskID string) error {
	task, err := c.store.Tasks().FindByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := c.store.Tasks().Delete(ctx, taskID); err != nil {
		return err
	}

	if err := c.store.Users().PullSnapshot(ctx, task.AssignedTo, taskID); err != nil {
		c.logger.Printf("snapshot removal failed for task %s: %v", taskID, err)
		return err
	}
	return nil
}

// CascadeDeleteForUser removes the user and every canonical task assigned to
// that email inside one transaction: both deletes commit together or the
// whole operation rolls back.
func (c *Coordinator) CascadeDeleteForUser(ctx context.Context, email string) error {
	if _, err := c.store.Users().FindByEmail(ctx, email); err != nil {
		return err
	}

	return c.store.InTransaction(ctx, func(ctx context.Context) error {
		if err := c.store.Users().Delete(ctx, email); err != nil {
			return err
		}
		n, err := c.store.Tasks().DeleteByAssignee(ctx, email)
		if err != nil {
			return err
		}
		if n > 0 {
			c.logger.Printf("deleted user %s and %d assigned tasks", email, n)
		}
		return nil
	})
}
