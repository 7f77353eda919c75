package handlers

import (
	"net/http"
	"taskify/internal/logger"
	"taskify/internal/service"

	"go.uber.org/zap"
)

const internalErrorCode = "internal server error"

func handleBusinessError(w http.ResponseWriter, err error) bool {
	businessErr, ok := service.AsBusinessError(err)
	if !ok {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	details := businessErr.Details
	if details == nil {
		details = map[string]any{}
	}
	responseWithFields(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", details),
	)
	return true
}

// handleServiceError отвечает на любую ошибку сервиса; причина внутренних ошибок только в логе
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithFields(w, http.StatusInternalServerError, toPayload("error", internalErrorCode))
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeNotAuthorized, service.CodeUnauthenticated:
		return http.StatusUnauthorized
	case service.CodeValidation, service.CodeInvalidCredentials, service.CodeUserExists, service.CodeInvalidSort:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
