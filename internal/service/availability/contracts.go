package availability

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetOverlappingBySlot(ctx context.Context, slotID int64, window domain.TimeWindow) ([]*domain.Reservation, error)
}
