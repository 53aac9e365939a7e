package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the task's required fields, enum values and assignee email
// syntax. The future-due-date rule is enforced at create time by the task
// service, not here.
func (t Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	return nil
}

// Validate checks a full user record.
func (u User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return nil
}

// Validate checks only the fields present in the partial update.
func (u UserUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid user update: %w", err)
	}
	return nil
}
