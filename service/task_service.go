package service

import (
	"context"
	"time"

	"taskassign/events"
	"taskassign/models"
	"taskassign/store"
)

// TaskService orchestrates task reads and mutations: it validates input,
// consults the access policy and hands the paired writes to the coordinator.
type TaskService struct {
	store  store.Store
	coord  *Coordinator
	events *events.Publisher
}

func NewTaskService(st store.Store, coord *Coordinator, pub *events.Publisher) *TaskService {
	return &TaskService{store: st, coord: coord, events: pub}
}

// ListAll returns every canonical task.
func (s *TaskService) ListAll(ctx context.Context) ([]models.Task, error) {
	return s.store.Tasks().All(ctx)
}

// ListAssigned returns the snapshot collection embedded in the user with the
// given email.
func (s *TaskService) ListAssigned(ctx context.Context, email string) ([]models.TaskSnapshot, error) {
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Tasks == nil {
		return []models.TaskSnapshot{}, nil
	}
	return user.Tasks, nil
}

// Create validates the task and inserts it together with the assignee's
// snapshot. Admin only. New tasks always start pending.
func (s *TaskService) Create(ctx context.Context, task models.Task, callerRole string) (*models.Task, error) {
	if err := AuthorizeAdmin(callerRole); err != nil {
		return nil, err
	}

	task.Status = models.StatusPending
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := task.Validate(); err != nil {
		return nil, Validationf("%v", err)
	}
	if !task.DueDate.After(now) {
		return nil, Validationf("due date cannot be in the past")
	}

	created, err := s.coord.CreatePaired(ctx, task)
	if err != nil {
		return nil, err
	}
	s.events.TaskCreated(created)
	return created, nil
}

// UpdateStatusOrPriority applies the requested status and priority after the
// role/field policy allows it. Both fields arrive on every request; the
// policy only cares about which one differs from the stored value.
func (s *TaskService) UpdateStatusOrPriority(ctx context.Context, taskID, status, priority, callerRole string) (*models.Task, error) {
	if status != models.StatusPending && status != models.StatusCompleted {
		return nil, Validationf("invalid status %q", status)
	}
	if priority != models.PriorityHigh && priority != models.PriorityMedium && priority != models.PriorityLow {
		return nil, Validationf("invalid priority %q", priority)
	}

	task, err := s.store.Tasks().FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeUpdate(callerRole, task, status, priority); err != nil {
		return nil, err
	}

	updated, err := s.coord.UpdatePaired(ctx, taskID, status, priority)
	if err != nil {
		return nil, err
	}
	s.events.TaskUpdated(updated)
	return updated, nil
}

// Delete removes the task and its snapshot. Admin only.
func (s *TaskService) Delete(ctx context.Context, taskID, callerRole string) error {
	if err := AuthorizeAdmin(callerRole); err != nil {
		return err
	}
	if err := s.coord.DeletePaired(ctx, taskID); err != nil {
		return err
	}
	s.events.TaskDeleted(taskID)
	return nil
}
