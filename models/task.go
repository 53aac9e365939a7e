package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task is the canonical task record, keyed by the externally generated TaskID.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TaskID      string             `bson:"taskId" json:"taskId" validate:"required"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	DueDate     time.Time          `bson:"dueDate" json:"dueDate" validate:"required"`
	Priority    string             `bson:"priority" json:"priority" validate:"required,oneof=High Medium Low"`
	Status      string             `bson:"status" json:"status" validate:"omitempty,oneof=pending completed"`
	AssignedTo  string             `bson:"assignedTo" json:"assignedTo" validate:"required,email"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TaskSnapshot is the denormalized copy of a task embedded in the assignee's
// user document. It carries the display fields only.
type TaskSnapshot struct {
	TaskID      string    `bson:"taskId" json:"taskId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	DueDate     time.Time `bson:"dueDate" json:"dueDate"`
	Priority    string    `bson:"priority" json:"priority"`
	Status      string    `bson:"status" json:"status"`
}

// Snapshot returns the embedded copy of the task.
func (t Task) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
	}
}
