package handlers

import (
	"net/http"
	"taskify/internal/handlers/dto"
	"taskify/internal/logger"
	"taskify/internal/models/task"
	"time"

	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := task.Filter{
		Status:   task.Status(query.Get("status")),
		Category: task.Category(query.Get("category")),
		Priority: task.Priority(query.Get("priority")),
		Search:   query.Get("search"),
	}

	tasks, err := s.TaskService.ListTasks(r.Context(), owner, filter)
	if err != nil {
		handleServiceError(w, r, err, "list_tasks")
		return
	}

	responseWithJSON(w, http.StatusOK, tasks)
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := caller(w, r)
	if !ok {
		return
	}

	var request dto.CreateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), owner, request.Draft())
	if err != nil {
		handleServiceError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.UUID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.TaskService.GetTaskByID(r.Context(), owner, id)
	if err != nil {
		handleServiceError(w, r, err, "get_task")
		return
	}

	responseWithJSON(w, http.StatusOK, found)
}

// UpdateTask обслуживает и PUT, и PATCH: применяются только присланные поля
func (s *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	updated, err := s.TaskService.UpdateTask(r.Context(), owner, id, request.Patch())
	if err != nil {
		handleServiceError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, updated)
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := s.TaskService.DeleteTask(r.Context(), owner, id); err != nil {
		handleServiceError(w, r, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена", zap.String("task_id", id.String()))

	responseWithJSON(w, http.StatusOK, dto.DeletedResponse{ID: id.String()})
}

func (s *TaskHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	report, err := s.TaskService.GetProgress(r.Context(), owner)
	if err != nil {
		handleServiceError(w, r, err, "get_progress")
		return
	}

	responseWithJSON(w, http.StatusOK, report)
}
