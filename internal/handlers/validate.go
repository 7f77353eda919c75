package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"taskify/internal/auth"
	"taskify/internal/logger"
	"taskify/internal/service"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeMultipart = "multipart/form-data"
)

func mediaType(r *http.Request) string {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return ""
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func checkContentType(r *http.Request, target string) bool {
	return mediaType(r) == target
}

// decodeJSON пишет ответ сам и возвращает false, если тело не принято
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !checkContentType(r, contentTypeJSON) {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", contentTypeJSON),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type должен быть application/json")
		return false
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responseWithError(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "тело запроса слишком большое")
			return false
		}
		responseWithError(w, http.StatusBadRequest, "INVALID_BODY", "не удалось прочитать тело запроса")
		return false
	}

	if err := sonic.ConfigStd.Unmarshal(body, dst); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "INVALID_JSON", "неверное тело запроса")
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, param)
	id, err := uuid.Parse(idParam)
	if err != nil || id == uuid.Nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("param", param),
			zap.String("value", idParam),
			zap.String("client_ip", r.RemoteAddr))

		handleBusinessError(w, service.NewValidationError(param, fmt.Sprintf("неверный id %q", idParam)))
		return uuid.Nil, false
	}
	return id, true
}

// caller достаёт сессию, положенную middleware аутентификации
func caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, service.CodeUnauthenticated, "требуется авторизация")
		return uuid.Nil, false
	}
	return session.UserID, true
}
