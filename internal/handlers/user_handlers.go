package handlers

import (
	"net/http"
	"taskify/internal/handlers/dto"
	"taskify/internal/logger"

	"go.uber.org/zap"
)

type UserHandler struct {
	UserService UserService
}

func NewUserHandler(userService UserService) UserHandler {
	return UserHandler{UserService: userService}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request dto.CredentialsRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	res, err := h.UserService.Register(r.Context(), request.Email, request.Password)
	if err != nil {
		handleServiceError(w, r, err, "register")
		return
	}

	logger.Info("HTTP_OUT: Пользователь зарегистрирован", zap.String("user_id", res.User.UUID.String()))

	responseWithJSON(w, http.StatusCreated, dto.FromAuthResult(res))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request dto.CredentialsRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	res, err := h.UserService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		handleServiceError(w, r, err, "login")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromAuthResult(res))
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	u, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_user")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromUser(u))
}
