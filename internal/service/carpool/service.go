package carpool

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// Service подбирает попутчиков для бронирования
type Service struct {
	reservationRepo ReservationRepository
}

// NewService создает новый экземпляр сервиса карпулинга
func NewService(reservationRepo ReservationRepository) *Service {
	return &Service{reservationRepo: reservationRepo}
}

// FindMatches возвращает бронирования других пользователей на той же станции
// с пересекающимся интервалом и согласием на карпулинг
// Флаг карпулинга самого target не учитывается
func (s *Service) FindMatches(ctx context.Context, target *domain.ReservationDetails) ([]*domain.ReservationDetails, error) {
	candidates, err := s.reservationRepo.ListOverlappingAtStation(ctx, target.StationID, target.Window())
	if err != nil {
		return nil, fmt.Errorf("%w: FindMatches - list candidates: %v", ErrInternal, err)
	}

	return FilterMatches(target, candidates), nil
}

// FilterMatches оставляет кандидатов, подходящих target по всем четырём условиям
func FilterMatches(target *domain.ReservationDetails, candidates []*domain.ReservationDetails) []*domain.ReservationDetails {
	matches := make([]*domain.ReservationDetails, 0)
	window := target.Window()

	for _, c := range candidates {
		if c.StationID != target.StationID {
			continue
		}
		if !c.CarpoolOptIn {
			continue
		}
		if c.UserID == target.UserID {
			continue
		}
		if !c.Window().Overlaps(window) {
			continue
		}
		matches = append(matches, c)
	}

	return matches
}

// Usernames имена пользователей из списка совпадений
func Usernames(matches []*domain.ReservationDetails) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Username)
	}
	return names
}
