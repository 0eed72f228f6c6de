package confirm_payment

import "time"

// Request модель запроса на подтверждение оплаты
type Request struct {
	UserID        int64
	ReservationID int64
}

// Response модель ответа о платеже
type Response struct {
	ReservationID int64
	PaymentID     int64
	Amount        float64
	Status        string
	IsPaid        bool
	AlreadyPaid   bool // повторное подтверждение, ничего не изменено
	UpdatedAt     time.Time
}
