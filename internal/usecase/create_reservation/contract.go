package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
	"github.com/m04kA/SMC-ChargingService/internal/integrations/eventbus"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetSlotWithStation(ctx context.Context, slotID int64) (*domain.SlotWithStation, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	UpdateQRCode(ctx context.Context, id int64, qrCode string) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// AvailabilityChecker проверка пересечений по слоту
type AvailabilityChecker interface {
	Check(ctx context.Context, slotID int64, window domain.TimeWindow) (bool, error)
}

// CarpoolMatcher подбор попутчиков
type CarpoolMatcher interface {
	FindMatches(ctx context.Context, target *domain.ReservationDetails) ([]*domain.ReservationDetails, error)
}

// Notifier отправка письма о бронировании
type Notifier interface {
	SendReservationConfirmed(ctx context.Context, r *domain.ReservationDetails, matches []string) error
}

// QREncoder кодирует текст в PNG QR-код в base64
type QREncoder interface {
	EncodeBase64(text string) (string, error)
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.ReservationEvent) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	ReservationCreated(carpoolMatches int)
	ReservationRejected(reason string)
	NotificationFailed(kind string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
