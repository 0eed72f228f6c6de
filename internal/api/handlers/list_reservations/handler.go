package list_reservations

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChargingService/internal/service/reservations/models"
)

const msgMissingUserID = "missing user id"

type ReservationService interface {
	ListForUser(ctx context.Context, userID int64) (*models.UserReservationsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Бронирования пользователя и бронирования попутчиков на тех же станциях
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resp, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Reservations listed: user_id=%d, own=%d, carpool=%d",
		userID, len(resp.Reservations), len(resp.CarpoolCandidates))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
