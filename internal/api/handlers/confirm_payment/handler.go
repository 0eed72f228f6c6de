package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	confirmPayment "github.com/m04kA/SMC-ChargingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgMissingUserID        = "missing user id"
	msgNotFound             = "reservation not found"
	msgPaid                 = "Payment Successful! Your slot is confirmed."
	msgAlreadyPaid          = "reservation is already paid"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		UserID:        userID,
		ReservationID: reservationID,
	})
	if err != nil {
		if errors.Is(err, confirmPayment.ErrReservationNotFound) {
			h.logger.Warn("POST /reservations/{id}/payment - Reservation not found: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /reservations/{id}/payment - Failed to confirm payment: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	message := msgPaid
	if result.AlreadyPaid {
		message = msgAlreadyPaid
	}

	h.logger.Info("POST /reservations/{id}/payment - Payment confirmed: reservation_id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, message))
}
