package create_reservation

import "errors"

var (
	// ErrMissingFields возвращается, когда не указан слот, начало или конец
	ErrMissingFields = errors.New("create_reservation: all fields are required")

	// ErrInvalidTimeFormat возвращается, когда время не удалось разобрать
	ErrInvalidTimeFormat = errors.New("create_reservation: invalid time format")

	// ErrStartInPast возвращается, когда начало не в будущем
	ErrStartInPast = errors.New("create_reservation: start time must be in the future")

	// ErrInvalidTimeRange возвращается, когда конец не позже начала
	ErrInvalidTimeRange = errors.New("create_reservation: end time must be after start time")

	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован на пересекающийся интервал
	ErrSlotNotAvailable = errors.New("create_reservation: slot is already booked for the selected time")

	// ErrNotificationFailed возвращается, когда бронирование создано, но письмо не отправлено
	ErrNotificationFailed = errors.New("create_reservation: confirmation email failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
