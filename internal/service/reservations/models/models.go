package models

import (
	"time"

	"github.com/m04kA/SMC-ChargingService/internal/domain"
)

// ReservationResponse бронирование со слотом и станцией
type ReservationResponse struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	SlotID          int64   `json:"slotId"`
	SlotNumber      int     `json:"slotNumber"`
	StationID       int64   `json:"stationId"`
	StationName     string  `json:"stationName"`
	StationLocation string  `json:"stationLocation"`
	StartTime       string  `json:"startTime"` // RFC 3339
	EndTime         string  `json:"endTime"`   // RFC 3339
	IsPaid          bool    `json:"isPaid"`
	CarpoolOptIn    bool    `json:"carpoolOptIn"`
	QRCode          *string `json:"qrCode,omitempty"` // base64 PNG
	CreatedAt       string  `json:"createdAt"`
}

// UserReservationsResponse бронирования пользователя и возможные попутчики
type UserReservationsResponse struct {
	Reservations      []*ReservationResponse `json:"reservations"`
	CarpoolCandidates []*ReservationResponse `json:"carpoolCandidates"`
}

// FromDomainDetails конвертирует бронирование в ответ, время переводится в loc
func FromDomainDetails(d *domain.ReservationDetails, loc *time.Location) *ReservationResponse {
	return &ReservationResponse{
		ID:              d.ID,
		Username:        d.Username,
		SlotID:          d.SlotID,
		SlotNumber:      d.SlotNumber,
		StationID:       d.StationID,
		StationName:     d.StationName,
		StationLocation: d.StationLocation,
		StartTime:       d.StartTime.In(loc).Format(time.RFC3339),
		EndTime:         d.EndTime.In(loc).Format(time.RFC3339),
		IsPaid:          d.IsPaid,
		CarpoolOptIn:    d.CarpoolOptIn,
		QRCode:          d.QRCode,
		CreatedAt:       d.CreatedAt.In(loc).Format(time.RFC3339),
	}
}

// FromDomainDetailsList конвертирует список бронирований
func FromDomainDetailsList(list []*domain.ReservationDetails, loc *time.Location) []*ReservationResponse {
	result := make([]*ReservationResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainDetails(d, loc))
	}
	return result
}
