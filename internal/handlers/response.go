package handlers

import (
	"net/http"
	"taskify/internal/logger"

	"github.com/bytedance/sonic"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func responseWithJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := sonic.ConfigStd.NewEncoder(w).Encode(body); err != nil {
		logger.Error("HTTP: не удалось записать ответ", err)
	}
}

// responseWithFields собирает JSON объект из пар ключ-значение
func responseWithFields(w http.ResponseWriter, code int, payload ...Payload) {
	storage := make(map[string]any, len(payload))
	for _, pl := range payload {
		storage[pl.Key] = pl.Payload
	}
	responseWithJSON(w, code, storage)
}

func responseWithError(w http.ResponseWriter, code int, errorCode, message string) {
	responseWithFields(w, code,
		toPayload("error", errorCode),
		toPayload("message", message),
	)
}
