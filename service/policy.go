package service

import (
	"fmt"

	"taskassign/models"
)

// Write access to a task is split by role and field: employees own the status
// field, admins own the priority field. The check is keyed on value change,
// not on field presence, so a request that repeats the stored value passes
// for either role.

// AuthorizeUpdate decides whether the caller may apply the requested status
// and priority to the task.
func AuthorizeUpdate(role string, task *models.Task, status, priority string) error {
	if role == models.RoleEmployee && task.Priority != priority {
		return fmt.Errorf("%w: employees may not change task priority", ErrForbidden)
	}
	if role == models.RoleAdmin && task.Status != status {
		return fmt.Errorf("%w: admins may not change task status", ErrForbidden)
	}
	return nil
}

// AuthorizeAdmin gates the admin-only operations: task create and task delete.
func AuthorizeAdmin(role string) error {
	if role != models.RoleAdmin {
		return fmt.Errorf("%w: admins only", ErrForbidden)
	}
	return nil
}
