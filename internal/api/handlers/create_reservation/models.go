package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SlotID       int64  `json:"slotId"`
	StartTime    string `json:"startTime"` // "2026-10-20T10:00" или RFC 3339
	EndTime      string `json:"endTime"`
	CarpoolOptIn bool   `json:"carpoolOptIn"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64    `json:"id"`
	UserID         int64    `json:"userId"`
	SlotID         int64    `json:"slotId"`
	SlotNumber     int      `json:"slotNumber"`
	StationID      int64    `json:"stationId"`
	StationName    string   `json:"stationName"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	IsPaid         bool     `json:"isPaid"`
	CarpoolOptIn   bool     `json:"carpoolOptIn"`
	QRCode         string   `json:"qrCode"`
	Amount         float64  `json:"amount"`
	CarpoolMatches []string `json:"carpoolMatches"`
	CreatedAt      string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) *createReservation.Request {
	return &createReservation.Request{
		UserID:       userID,
		SlotID:       r.SlotID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		CarpoolOptIn: r.CarpoolOptIn,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	matches := resp.CarpoolMatches
	if matches == nil {
		matches = []string{}
	}
	return &ReservationResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		SlotID:         resp.SlotID,
		SlotNumber:     resp.SlotNumber,
		StationID:      resp.StationID,
		StationName:    resp.StationName,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		IsPaid:         resp.IsPaid,
		CarpoolOptIn:   resp.CarpoolOptIn,
		QRCode:         resp.QRCode,
		Amount:         resp.Amount,
		CarpoolMatches: matches,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
