package domain

import (
	"fmt"
	"time"
)

// QRTimeFormat формат времени в QR-коде страницы бронирования
const QRTimeFormat = "2006-01-02 15:04:05-07:00"

// ReservationQRPayload текст QR-кода, сохраняемого при создании бронирования
func ReservationQRPayload(reservationID int64, username, stationName string) string {
	return fmt.Sprintf("Reservation ID: %d\nUser: %s\nStation: %s", reservationID, username, stationName)
}

// SummaryQRPayload текст QR-кода, который отрисовывается при просмотре бронирования
func (d *ReservationDetails) SummaryQRPayload(loc *time.Location) string {
	return fmt.Sprintf(
		"Reservation ID: %d\nStation: %s\nSlot: %d\nStart: %s\nEnd: %s",
		d.ID,
		d.StationName,
		d.SlotNumber,
		d.StartTime.In(loc).Format(QRTimeFormat),
		d.EndTime.In(loc).Format(QRTimeFormat),
	)
}
