package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	cancelReservation "github.com/m04kA/SMC-ChargingService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgMissingUserID        = "missing user id"
	msgNotFound             = "reservation not found"
	msgNotificationFailed   = "reservation canceled, but the confirmation email could not be sent"
	msgCancelled            = "Your reservation has been canceled. A confirmation email has been sent."
)

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID int64  `json:"reservationId"`
	SlotID        int64  `json:"slotId"`
	SlotNumber    int    `json:"slotNumber"`
	StationName   string `json:"stationName"`
	Message       string `json:"message"`
}

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		UserID:        userID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrNotificationFailed):
			h.logger.Error("DELETE /reservations/{id} - Cancelled without email: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgNotificationFailed)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: reservation_id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, &CancelReservationResponse{
		ReservationID: result.ReservationID,
		SlotID:        result.SlotID,
		SlotNumber:    result.SlotNumber,
		StationName:   result.StationName,
		Message:       msgCancelled,
	})
}
