package signup

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "all fields are required"
	msgInvalidEmail       = "enter a valid email address"
	msgPasswordTooShort   = "password must be at least 8 characters"
	msgUsernameTooLong    = "username is too long"
	msgPhoneTooLong       = "phone number is too long"
	msgUsernameTaken      = "a user with that username already exists"
	msgPhoneTaken         = "this phone number is already registered"
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

// Handle POST /api/v1/auth/signup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/signup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			handlers.RespondBadRequest(w, msgMissingFields)
		case errors.Is(err, auth.ErrInvalidEmail):
			handlers.RespondBadRequest(w, msgInvalidEmail)
		case errors.Is(err, auth.ErrPasswordTooShort):
			handlers.RespondBadRequest(w, msgPasswordTooShort)
		case errors.Is(err, auth.ErrUsernameTooLong):
			handlers.RespondBadRequest(w, msgUsernameTooLong)
		case errors.Is(err, auth.ErrPhoneTooLong):
			handlers.RespondBadRequest(w, msgPhoneTooLong)
		case errors.Is(err, auth.ErrUsernameTaken):
			h.logger.Warn("POST /auth/signup - Username taken: username=%s", req.Username)
			handlers.RespondConflict(w, msgUsernameTaken)
		case errors.Is(err, auth.ErrPhoneTaken):
			h.logger.Warn("POST /auth/signup - Phone taken: username=%s", req.Username)
			handlers.RespondConflict(w, msgPhoneTaken)
		default:
			h.logger.Error("POST /auth/signup - Failed to sign up: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/signup - User registered: user_id=%d", token.UserID)
	handlers.RespondJSON(w, http.StatusCreated, token)
}
