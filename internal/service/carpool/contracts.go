package carpool

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListOverlappingAtStation(ctx context.Context, stationID int64, window domain.TimeWindow) ([]*domain.ReservationDetails, error)
}
