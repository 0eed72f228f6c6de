package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается, когда вставка нарушила ограничение на пересечение интервалов слота
	ErrOverlap = errors.New("reservation.repository: overlapping reservation for slot")

	// ErrSerialization возвращается, когда PostgreSQL прервал запрос из-за конфликта сериализуемых транзакций
	ErrSerialization = errors.New("reservation.repository: serialization conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
