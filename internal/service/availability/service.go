package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// Service проверяет, свободен ли слот на запрошенный интервал
// Флаг слота is_available при проверке не учитывается
type Service struct {
	reservationRepo ReservationRepository
}

// NewService создает новый экземпляр сервиса доступности
func NewService(reservationRepo ReservationRepository) *Service {
	return &Service{reservationRepo: reservationRepo}
}

// Check возвращает true, если ни одно бронирование слота не пересекается с window
// Внутри транзакции найденные бронирования блокируются до её завершения
func (s *Service) Check(ctx context.Context, slotID int64, window domain.TimeWindow) (bool, error) {
	reservations, err := s.reservationRepo.GetOverlappingBySlot(ctx, slotID, window)
	if err != nil {
		return false, fmt.Errorf("%w: Check - get overlapping reservations: %w", ErrInternal, err)
	}

	return !HasConflict(window, reservations), nil
}

// HasConflict есть ли среди бронирований пересекающееся с window
func HasConflict(window domain.TimeWindow, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r.Window().Overlaps(window) {
			return true
		}
	}
	return false
}
