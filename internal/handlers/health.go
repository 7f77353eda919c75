package handlers

import (
	"net/http"
	"taskify/internal/logger"

	"go.uber.org/zap"
)

const ServiceName = "taskify"

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	repository := string(s.TaskService.Repository())

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Warn("HTTP: Health check не пройден", zap.Error(err))

		responseWithFields(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", ServiceName),
			toPayload("repository", repository),
		)
		return
	}

	responseWithFields(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", ServiceName),
		toPayload("repository", repository),
	)
}
