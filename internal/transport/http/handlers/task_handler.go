package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/logger"
	"github.com/tasktrail/backend/internal/service"
	"github.com/tasktrail/backend/internal/transport/http/middleware"
	"github.com/tasktrail/backend/pkg/validator"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	var input service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTask(input.Description); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.taskService.Create(r.Context(), requester.ID, input)
	if err != nil {
		h.writeTaskError(w, r, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// CreateForUser creates a task for the user in the path. The path id wins
// over anything in the body.
func (h *TaskHandler) CreateForUser(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	userID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var input struct {
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTask(input.Description); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.taskService.CreateForUser(r.Context(), requester.ID, userID, input.Description, input.Completed)
	if err != nil {
		h.writeTaskError(w, r, "create task for user", err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	tasks, err := h.taskService.List(r.Context(), requester.ID)
	if err != nil {
		h.writeTaskError(w, r, "list tasks", err)
		return
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	userID, err := parseID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	tasks, err := h.taskService.ListByOwner(r.Context(), requester.ID, userID)
	if err != nil {
		h.writeTaskError(w, r, "list tasks for user", err)
		return
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(r.Context(), requester.ID, id)
	if err != nil {
		h.writeTaskError(w, r, "get task", err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	var input service.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTask(input.Description); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.taskService.Update(r.Context(), requester.ID, id, input)
	if err != nil {
		h.writeTaskError(w, r, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester := middleware.GetUser(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(r.Context(), requester.ID, id); err != nil {
		h.writeTaskError(w, r, "delete task", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You can only act on your own tasks")
	case errors.Is(err, service.ErrOwnerNotFound):
		writeError(w, http.StatusBadRequest, "UNKNOWN_OWNER", "Task owner does not exist")
	default:
		logger.Error(op+" failed", "error", err, "request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
