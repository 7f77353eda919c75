package handlers

import (
	"net/http"
	"taskify/internal/handlers/dto"
	"taskify/internal/logger"

	"go.uber.org/zap"
)

type NotificationHandler struct {
	NotificationService NotificationService
}

func NewNotificationHandler(notificationService NotificationService) NotificationHandler {
	return NotificationHandler{NotificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	buckets, err := h.NotificationService.GetNotifications(r.Context(), owner)
	if err != nil {
		handleServiceError(w, r, err, "get_notifications")
		return
	}

	responseWithJSON(w, http.StatusOK, buckets)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	updated, err := h.NotificationService.MarkAllRead(r.Context(), owner)
	if err != nil {
		handleServiceError(w, r, err, "mark_notifications_read")
		return
	}

	logger.Info("HTTP_OUT: Уведомления прочитаны",
		zap.String("owner", owner.String()),
		zap.Int64("updated", updated))

	responseWithJSON(w, http.StatusOK, dto.MarkReadResponse{Success: true, Updated: updated})
}
