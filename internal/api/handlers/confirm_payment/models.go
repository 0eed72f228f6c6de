package confirm_payment

import (
	"time"

	confirmPayment "github.com/m04kA/SMC-ChargingService/internal/usecase/confirm_payment"
)

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ReservationID int64   `json:"reservationId"`
	PaymentID     int64   `json:"paymentId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	IsPaid        bool    `json:"isPaid"`
	Message       string  `json:"message"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response, message string) *PaymentResponse {
	out := &PaymentResponse{
		ReservationID: resp.ReservationID,
		PaymentID:     resp.PaymentID,
		Amount:        resp.Amount,
		Status:        resp.Status,
		IsPaid:        resp.IsPaid,
		Message:       message,
	}
	if !resp.UpdatedAt.IsZero() {
		out.UpdatedAt = resp.UpdatedAt.Format(time.RFC3339)
	}
	return out
}
