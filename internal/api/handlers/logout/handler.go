package logout

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
)

const msgMissingToken = "authorization token is required"

type AuthService interface {
	Logout(ctx context.Context, rawToken string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

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

// Handle POST /api/v1/auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		h.logger.Warn("POST /auth/logout - Missing token")
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.Error("POST /auth/logout - Failed to revoke token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("POST /auth/logout - User logged out: user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}
