package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/miniapps-backend/internal/auth"
	"github.com/segyhp/miniapps-backend/internal/domain"
	apperrors "github.com/segyhp/miniapps-backend/pkg/errors"
	"github.com/segyhp/miniapps-backend/pkg/response"
)

type TaskHandler struct {
	service   TaskService
	validator *validator.Validate
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{
		service:   service,
		validator: newValidator(),
	}
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	var request domain.CreateTaskRequest
	if err := decodeBody(r, &request); err != nil {
		response.Error(w, apperrors.NewValidation("invalid request body"))
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.Error(w, apperrors.NewValidation(err.Error()))
		return
	}

	task, err := h.service.CreateTask(r.Context(), caller, &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, task, "Task created successfully")
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	tasks, err := h.service.ListTasks(r.Context(), caller)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, tasks, "Tasks fetched successfully")
}

// ViewTask handles GET /tasks/{taskId}
func (h *TaskHandler) ViewTask(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid task id"))
		return
	}

	task, err := h.service.ViewTask(r.Context(), caller, taskID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, task, "Task fetched successfully")
}

// EditTask handles PATCH /tasks/{taskId}
func (h *TaskHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid task id"))
		return
	}

	var patch domain.UpdateTaskRequest
	if err := decodeBody(r, &patch); err != nil {
		response.Error(w, apperrors.NewValidation("invalid request body"))
		return
	}

	if err := h.validator.Struct(&patch); err != nil {
		response.Error(w, apperrors.NewValidation(err.Error()))
		return
	}

	task, err := h.service.EditTask(r.Context(), caller, taskID, &patch)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, task, "Task updated successfully")
}

// MarkCompleted handles POST /tasks/{taskId}
func (h *TaskHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid task id"))
		return
	}

	task, err := h.service.MarkCompleted(r.Context(), caller, taskID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, task, "Task marked as completed")
}

// ListByCategory handles GET /tasks/category/{categoryId}
func (h *TaskHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())
	category := mux.Vars(r)["categoryId"]

	tasks, err := h.service.ListByCategory(r.Context(), caller, category)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, tasks, "Tasks fetched successfully")
}

// DeleteTask handles DELETE /tasks/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())

	taskID, err := pathUUID(r, "taskId")
	if err != nil {
		response.Error(w, apperrors.NewValidation("invalid task id"))
		return
	}

	if err := h.service.DeleteTask(r.Context(), caller, taskID); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, nil, "Task deleted successfully")
}
