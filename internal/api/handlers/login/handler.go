package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidCredentials = "Invalid credentials"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}
		h.logger.Error("POST /auth/login - Failed to log in: username=%s, error=%v", req.Username, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%d", token.UserID)
	handlers.RespondJSON(w, http.StatusOK, token)
}
