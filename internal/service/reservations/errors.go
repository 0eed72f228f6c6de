package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
