package domain

// Ограничения на входные данные
const (
	MinPasswordLength = 8
	MaxUsernameLength = 150
	MaxPhoneLength    = 15
)

// Форматы времени без смещения, которые принимает форма бронирования
// (значения интерпретируются в часовом поясе из [booking].time_zone)
var LocalDateTimeFormats = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Тексты писем
const (
	EmailSubjectReservationConfirmed = "EV Charging Reservation Confirmed"
	EmailSubjectReservationCancelled = "EV Charging Reservation Canceled"
)

// Типы доменных событий (routing key в RabbitMQ)
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationPaid      = "reservation.paid"
)
