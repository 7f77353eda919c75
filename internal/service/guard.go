package service

import (
	"taskify/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// checkOwner - владелец записи должен совпадать с вызывающим.
// Несовпадение даёт NOT_AUTHORIZED, а не NOT_FOUND.
func checkOwner(resource Resource, id, owner, caller uuid.UUID) error {
	if owner == caller {
		return nil
	}
	logger.Warn("Service: Доступ к чужой записи",
		zap.String("resource", string(resource)),
		zap.String("target_id", id.String()),
		zap.String("caller_id", caller.String()))
	return NewNotAuthorized(resource, id.String())
}
