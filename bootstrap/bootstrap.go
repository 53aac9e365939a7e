package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskassign/models"
	"taskassign/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertInitialData seeds an admin, two employees and a few assigned tasks
// when ENABLE_BOOTSTRAP is set and the users collection is empty. Tasks go
// through the coordinator so the embedded snapshots are populated too.
func InsertInitialData(ctx context.Context, database *mongo.Database, coord *service.Coordinator) {
	if os.Getenv("ENABLE_BOOTSTRAP") != "true" {
		return
	}

	users := database.Collection("users")
	count, err := users.CountDocuments(ctx, bson.D{})
	if err != nil {
		fmt.Println("Error counting users:", err)
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	seedUsers := []interface{}{
		seedUser("Admin", "admin@taskassign.local", models.RoleAdmin, now),
		seedUser("Ana", "ana@taskassign.local", models.RoleEmployee, now),
		seedUser("Marko", "marko@taskassign.local", models.RoleEmployee, now),
	}
	if _, err := users.InsertMany(ctx, seedUsers); err != nil {
		fmt.Println("Error inserting initial users:", err)
		return
	}

	for i, email := range []string{"ana@taskassign.local", "marko@taskassign.local"} {
		task := models.Task{
			TaskID:      uuid.NewString(),
			Title:       fmt.Sprintf("Onboarding step %d", i+1),
			Description: "Work through the starter checklist",
			DueDate:     now.Add(7 * 24 * time.Hour),
			Priority:    models.PriorityMedium,
			Status:      models.StatusPending,
			AssignedTo:  email,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := coord.CreatePaired(ctx, task); err != nil {
			fmt.Println("Error inserting initial task:", err)
		}
	}
	fmt.Println("Inserted initial users and tasks")
}

func seedUser(name, email, role string, now time.Time) models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Changeme1!"), bcrypt.DefaultCost)
	return models.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		Tasks:     []models.TaskSnapshot{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
