package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"taskassign/models"
	"taskassign/security"
	"taskassign/service"
)

type TaskHandler struct {
	logger *log.Logger
	tasks  *service.TaskService
}

func NewTaskHandler(l *log.Logger, tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{logger: l, tasks: tasks}
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// GetAssignedTasks returns the snapshot collection embedded in the user, not
// the canonical records.
func (h *TaskHandler) GetAssignedTasks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := vars["email"]

	snapshots, err := h.tasks.ListAssigned(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshots)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.tasks.Create(r.Context(), task, security.RoleFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateTask applies a {status, priority} update. Which of the two fields the
// caller may actually change depends on the caller's role.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["taskId"]

	var requestBody struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.UpdateStatusOrPriority(r.Context(), taskID, requestBody.Status, requestBody.Priority, security.RoleFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["taskId"]

	if err := h.tasks.Delete(r.Context(), taskID, security.RoleFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
}
