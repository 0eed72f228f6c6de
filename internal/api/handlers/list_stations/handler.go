package list_stations

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/stations/models"
)

type StationService interface {
	ListStations(ctx context.Context) (*models.StationListResponse, error)
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

// Handle GET /api/v1/stations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListStations(r.Context())
	if err != nil {
		h.logger.Error("GET /stations - Failed to list stations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stations - Stations listed: total=%d", resp.Total)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
