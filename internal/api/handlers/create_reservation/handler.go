package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user id"
	msgMissingFields      = "All fields are required!"
	msgInvalidTimeFormat  = "invalid date/time format, expected YYYY-MM-DDTHH:MM or RFC 3339"
	msgStartInPast        = "Start time must be in the future!"
	msgInvalidTimeRange   = "End time must be after start time!"
	msgSlotNotFound       = "slot not found"
	msgSlotNotAvailable   = "This slot is already booked for the selected time!"
	msgNotificationFailed = "reservation created, but the confirmation email could not be sent"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrMissingFields):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createReservation.ErrInvalidTimeFormat):
			handlers.RespondBadRequest(w, msgInvalidTimeFormat)

		case errors.Is(err, createReservation.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, slot_id=%d", userID, req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrNotificationFailed):
			h.logger.Error("POST /reservations - Reservation created without email: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgNotificationFailed)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, slot_id=%d, error=%v",
				userID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, slot_id=%d",
		result.ID, userID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
