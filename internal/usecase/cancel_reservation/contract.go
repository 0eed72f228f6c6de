package cancel_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	SetSlotAvailability(ctx context.Context, slotID int64, available bool) error
}

// Notifier отправка письма об отмене
type Notifier interface {
	SendReservationCancelled(ctx context.Context, r *domain.ReservationDetails) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.ReservationEvent) error
}

// Metrics бизнес-метрики
type Metrics interface {
	ReservationCancelled()
	NotificationFailed(kind string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
