package list_slots

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/stations/models"
)

type StationService interface {
	ListBookableSlots(ctx context.Context) (*models.BookableSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service StationService
	logger  Logger
}

func NewHandler(service StationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Слоты для формы бронирования: свободные или с уже завершившимся бронированием
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListBookableSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /slots - Failed to list bookable slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Bookable slots listed: total=%d", resp.Total)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
