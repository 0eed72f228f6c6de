package domain

import (
	"math"
	"time"
)

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Payment платёж за бронирование (один к одному)
// Единственный источник истины об оплате; Reservation.IsPaid обновляется в той же транзакции
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Status        PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted платёж проведён
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

// CalculateAmount сумма к оплате: часы × тариф, с округлением до копеек
func CalculateAmount(window TimeWindow, pricePerHour float64) float64 {
	if !window.IsValid() || pricePerHour <= 0 {
		return 0
	}
	amount := window.Duration().Hours() * pricePerHour
	return math.Round(amount*100) / 100
}
