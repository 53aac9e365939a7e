package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"taskassign/events"
	"taskassign/models"
	"taskassign/store"
)

// UserService orchestrates user reads and mutations, including the cascade
// delete of a user's tasks.
type UserService struct {
	store  store.Store
	coord  *Coordinator
	events *events.Publisher
}

func NewUserService(st store.Store, coord *Coordinator, pub *events.Publisher) *UserService {
	return &UserService{store: st, coord: coord, events: pub}
}

// ListEmployees returns every user with the employee role.
func (s *UserService) ListEmployees(ctx context.Context) ([]models.User, error) {
	return s.store.Users().Employees(ctx)
}

// GetByEmail returns the user with the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.Users().FindByEmail(ctx, email)
}

// Update applies a partial profile update. Field validation runs again on the
// supplied fields, and a supplied password is stored hashed.
func (s *UserService) Update(ctx context.Context, email string, update models.UserUpdate) (*models.User, error) {
	if err := update.Validate(); err != nil {
		return nil, Validationf("%v", err)
	}

	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update.Password = string(hashed)
	}

	return s.store.Users().Apply(ctx, email, update)
}

// Delete removes the user and all tasks assigned to that email as one
// transaction.
func (s *UserService) Delete(ctx context.Context, email string) error {
	if err := s.coord.CascadeDeleteForUser(ctx, email); err != nil {
		return err
	}
	s.events.UserDeleted(email)
	return nil
}
