package reservations

import (
	"context"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	ListDetailsByUser(ctx context.Context, userID int64) ([]*domain.ReservationDetails, error)
	ListCarpoolAtStations(ctx context.Context, stationIDs []int64, excludeUserID int64) ([]*domain.ReservationDetails, error)
}

// QREncoder кодирует текст в PNG QR-код в base64
type QREncoder interface {
	EncodeBase64(text string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
