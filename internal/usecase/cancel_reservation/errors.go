package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrNotificationFailed возвращается, когда бронирование отменено, но письмо не отправлено
	ErrNotificationFailed = errors.New("cancel_reservation: cancellation email failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
