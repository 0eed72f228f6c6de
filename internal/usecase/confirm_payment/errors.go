package confirm_payment

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = errors.New("confirm_payment: reservation not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
