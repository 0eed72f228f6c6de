package stations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// StationRepository интерфейс репозитория станций и слотов
type StationRepository interface {
	ListWithSlots(ctx context.Context) ([]*domain.Station, error)
	ListBookableSlots(ctx context.Context, now time.Time) ([]*domain.SlotWithStation, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
