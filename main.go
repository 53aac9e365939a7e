package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"taskassign/bootstrap"
	"taskassign/db"
	"taskassign/events"
	"taskassign/handlers"
	"taskassign/models"
	"taskassign/security"
	"taskassign/service"
)

func main() {
	err := db.ConnectToMongo()
	if err != nil {
		fmt.Println("Error connecting to MongoDB:", err)
		os.Exit(1)
	}
	defer db.DisconnectMongo()

	logger := log.New(os.Stdout, "[task-api] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		logger.Println("Error creating indexes:", err)
	}

	nc, err := events.Connect()
	if err != nil {
		logger.Println("NATS unavailable, task events disabled:", err)
	} else {
		defer nc.Close()
	}
	publisher := events.NewPublisher(nc, logger)

	mongoStore := db.NewMongoStore(db.Client)
	coordinator := service.NewCoordinator(mongoStore, logger)

	bootstrap.InsertInitialData(ctx, db.Database(), coordinator)

	taskService := service.NewTaskService(mongoStore, coordinator, publisher)
	userService := service.NewUserService(mongoStore, coordinator, publisher)

	taskHandler := handlers.NewTaskHandler(logger, taskService)
	userHandler := handlers.NewUserHandler(logger, userService)

	router := mux.NewRouter()
	router.HandleFunc("/tasks", security.RequireRole(taskHandler.GetTasks, models.RoleAdmin)).Methods("GET")
	router.HandleFunc("/tasks/assigned/{email}", security.RequireRole(taskHandler.GetAssignedTasks, models.RoleEmployee)).Methods("GET")
	router.HandleFunc("/tasks", security.RequireRole(taskHandler.CreateTask, models.RoleAdmin)).Methods("POST")
	router.HandleFunc("/tasks/{taskId}", security.RequireRole(taskHandler.UpdateTask, models.RoleEmployee, models.RoleAdmin)).Methods("PUT")
	router.HandleFunc("/tasks/{taskId}", security.RequireRole(taskHandler.DeleteTask, models.RoleAdmin)).Methods("DELETE")
	router.HandleFunc("/users", userHandler.GetUsers).Methods("GET")
	router.HandleFunc("/users/{email}", userHandler.GetUserByEmail).Methods("GET")
	router.HandleFunc("/users/{email}", userHandler.UpdateUser).Methods("PUT")
	router.HandleFunc("/users/{email}", userHandler.DeleteUser).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", security.RoleHeader},
		AllowCredentials: true,
	})

	handler := gorillahandlers.LoggingHandler(os.Stdout, security.ExtractRole(c.Handler(router)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Handler:      handler,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	fmt.Println("Task assignment service started on port " + port)
	if err := server.ListenAndServe(); err != nil {
		fmt.Println("Error starting task assignment service:", err)
		os.Exit(1)
	}
}
