package stations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ChargingService/internal/service/stations/models"
)

// Service каталог станций и слотов
type Service struct {
	stationRepo  StationRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса станций
func NewService(stationRepo StationRepository, logger Logger) *Service {
	return &Service{
		stationRepo:  stationRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListStations возвращает все станции со слотами
func (s *Service) ListStations(ctx context.Context) (*models.StationListResponse, error) {
	stations, err := s.stationRepo.ListWithSlots(ctx)
	if err != nil {
		s.logger.Error("ListStations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStations - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStations(stations), nil
}

// ListBookableSlots возвращает слоты для формы бронирования:
// отмеченные доступными или с уже завершившимся бронированием
func (s *Service) ListBookableSlots(ctx context.Context) (*models.BookableSlotListResponse, error) {
	now := s.timeProvider.Now()

	slots, err := s.stationRepo.ListBookableSlots(ctx, now)
	if err != nil {
		s.logger.Error("ListBookableSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookableSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookableSlots: found %d slots", len(slots))
	return models.FromDomainSlots(slots), nil
}
