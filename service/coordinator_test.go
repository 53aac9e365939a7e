package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"taskassign/models"
	"taskassign/store"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func employee(email string) models.User {
	return models.User{
		Name:     "Test Employee",
		Email:    email,
		Password: "secret",
		Role:     models.RoleEmployee,
		Tasks:    []models.TaskSnapshot{},
	}
}

func testTask(id, email string) models.Task {
	return models.Task{
		TaskID:      id,
		Title:       "Prepare report",
		Description: "Quarterly numbers",
		DueDate:     time.Now().Add(24 * time.Hour),
		Priority:    models.PriorityMedium,
		Status:      models.StatusPending,
		AssignedTo:  email,
	}
}

func TestCreatePaired(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	created, err := coord.CreatePaired(ctx, testTask("T1", "a@x.com"))
	if err != nil {
		t.Fatalf("CreatePaired: %v", err)
	}
	if created.TaskID != "T1" {
		t.Errorf("created task id = %q, want T1", created.TaskID)
	}

	user, err := mem.Users().FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if len(user.Tasks) != 1 {
		t.Fatalf("snapshot count = %d, want 1", len(user.Tasks))
	}
	snap := user.Tasks[0]
	if snap.TaskID != "T1" || snap.Priority != models.PriorityMedium || snap.Status != models.StatusPending {
		t.Errorf("snapshot mismatch: %+v", snap)
	}
}

func TestCreatePairedDuplicateID(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	if _, err := coord.CreatePaired(ctx, testTask("T1", "a@x.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := coord.CreatePaired(ctx, testTask("T1", "a@x.com"))
	if !errors.Is(err, store.ErrDuplicateTaskID) {
		t.Fatalf("expected ErrDuplicateTaskID, got %v", err)
	}

	// The failed call must leave the store unchanged.
	user, _ := mem.Users().FindByEmail(ctx, "a@x.com")
	if len(user.Tasks) != 1 {
		t.Errorf("snapshot count after failed create = %d, want 1", len(user.Tasks))
	}
	tasks, _ := mem.Tasks().All(ctx)
	if len(tasks) != 1 {
		t.Errorf("canonical count after failed create = %d, want 1", len(tasks))
	}
}

func TestCreatePairedUnknownAssignee(t *testing.T) {
	mem := store.NewMemory()
	coord := NewCoordinator(mem, testLogger())

	_, err := coord.CreatePaired(context.Background(), testTask("T1", "nobody@x.com"))
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	tasks, _ := mem.Tasks().All(context.Background())
	if len(tasks) != 0 {
		t.Errorf("no canonical task should be written, found %d", len(tasks))
	}
}

func TestCreatePairedSnapshotFailureLeavesCanonical(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	mem.FailPushSnapshot = errors.New("write conflict")
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	_, err := coord.CreatePaired(ctx, testTask("T1", "a@x.com"))
	if err == nil {
		t.Fatal("expected error from snapshot append")
	}

	// The canonical write committed first and stays committed.
	if _, err := mem.Tasks().FindByID(ctx, "T1"); err != nil {
		t.Errorf("canonical task should remain, got %v", err)
	}
}

func TestUpdatePaired(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	if _, err := coord.CreatePaired(ctx, testTask("T1", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := coord.UpdatePaired(ctx, "T1", models.StatusCompleted, models.PriorityMedium)
	if err != nil {
		t.Fatalf("UpdatePaired: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("canonical status = %q, want completed", updated.Status)
	}

	user, _ := mem.Users().FindByEmail(ctx, "a@x.com")
	if user.Tasks[0].Status != models.StatusCompleted {
		t.Errorf("snapshot status = %q, want completed", user.Tasks[0].Status)
	}
	if user.Tasks[0].Priority != models.PriorityMedium {
		t.Errorf("snapshot priority = %q, want Medium", user.Tasks[0].Priority)
	}
}

func TestUpdatePairedTaskNotFound(t *testing.T) {
	mem := store.NewMemory()
	coord := NewCoordinator(mem, testLogger())

	_, err := coord.UpdatePaired(context.Background(), "missing", models.StatusCompleted, models.PriorityLow)
	if !errors.Is(err, store.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdatePairedMissingSnapshotIsLenient(t *testing.T) {
	mem := store.NewMemory()
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	// Canonical task whose assignee record does not exist.
	if err := mem.Tasks().Insert(ctx, testTask("T1", "gone@x.com")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated, err := coord.UpdatePaired(ctx, "T1", models.StatusCompleted, models.PriorityMedium)
	if err != nil {
		t.Fatalf("update should stand without a snapshot: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("canonical status = %q, want completed", updated.Status)
	}
}

func TestDeletePaired(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	if _, err := coord.CreatePaired(ctx, testTask("T1", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := coord.DeletePaired(ctx, "T1"); err != nil {
		t.Fatalf("DeletePaired: %v", err)
	}

	if _, err := mem.Tasks().FindByID(ctx, "T1"); !errors.Is(err, store.ErrTaskNotFound) {
		t.Errorf("canonical task should be gone, got %v", err)
	}
	user, err := mem.Users().FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("the user must survive a task delete: %v", err)
	}
	if len(user.Tasks) != 0 {
		t.Errorf("snapshot count = %d, want 0", len(user.Tasks))
	}
}

func TestDeletePairedNotFound(t *testing.T) {
	mem := store.NewMemory()
	coord := NewCoordinator(mem, testLogger())

	err := coord.DeletePaired(context.Background(), "missing")
	if !errors.Is(err, store.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCascadeDeleteForUser(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	mem.AddUser(employee("b@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	for _, id := range []string{"T1", "T2", "T3"} {
		if _, err := coord.CreatePaired(ctx, testTask(id, "a@x.com")); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if _, err := coord.CreatePaired(ctx, testTask("T9", "b@x.com")); err != nil {
		t.Fatalf("create T9: %v", err)
	}

	if err := coord.CascadeDeleteForUser(ctx, "a@x.com"); err != nil {
		t.Fatalf("CascadeDeleteForUser: %v", err)
	}

	if _, err := mem.Users().FindByEmail(ctx, "a@x.com"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("user should be gone, got %v", err)
	}
	tasks, _ := mem.Tasks().All(ctx)
	if len(tasks) != 1 || tasks[0].TaskID != "T9" {
		t.Errorf("only the other user's task should remain, got %+v", tasks)
	}
}

func TestCascadeDeleteRollsBackOnFailure(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	for _, id := range []string{"T1", "T2"} {
		if _, err := coord.CreatePaired(ctx, testTask(id, "a@x.com")); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	// Fault after the user delete, before the tasks delete.
	mem.FailDeleteByAssignee = errors.New("connection reset")

	if err := coord.CascadeDeleteForUser(ctx, "a@x.com"); err == nil {
		t.Fatal("expected transaction failure")
	}

	// Everything rolls back: user present and both tasks present.
	user, err := mem.Users().FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("user should be restored, got %v", err)
	}
	if len(user.Tasks) != 2 {
		t.Errorf("snapshot count after rollback = %d, want 2", len(user.Tasks))
	}
	tasks, _ := mem.Tasks().All(ctx)
	if len(tasks) != 2 {
		t.Errorf("canonical count after rollback = %d, want 2", len(tasks))
	}
}

func TestCascadeDeleteUserNotFound(t *testing.T) {
	mem := store.NewMemory()
	coord := NewCoordinator(mem, testLogger())

	err := coord.CascadeDeleteForUser(context.Background(), "missing@x.com")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCascadeDeleteUserWithoutTasks(t *testing.T) {
	mem := store.NewMemory()
	mem.AddUser(employee("a@x.com"))
	coord := NewCoordinator(mem, testLogger())
	ctx := context.Background()

	if err := coord.CascadeDeleteForUser(ctx, "a@x.com"); err != nil {
		t.Fatalf("CascadeDeleteForUser with zero tasks: %v", err)
	}
	if _, err := mem.Users().FindByEmail(ctx, "a@x.com"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("user should be gone, got %v", err)
	}
}
