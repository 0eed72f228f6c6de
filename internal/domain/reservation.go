package domain

import "time"

// TimeWindow полуоткрытый интервал [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// IsValid интервал строго положительной длины
func (w TimeWindow) IsValid() bool {
	return w.End.After(w.Start)
}

// Duration длительность интервала
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps проверяет пересечение полуоткрытых интервалов:
// a.Start < b.End && a.End > b.Start
// Интервалы, которые только касаются границей (10:00-11:00 и 11:00-12:00), не пересекаются
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Reservation бронирование слота пользователем
type Reservation struct {
	ID           int64
	UserID       int64
	SlotID       int64
	StartTime    time.Time
	EndTime      time.Time
	IsPaid       bool
	CarpoolOptIn bool
	QRCode       *string // base64 PNG, производные данные

	CreatedAt time.Time
}

// Window интервал бронирования
func (r *Reservation) Window() TimeWindow {
	return TimeWindow{Start: r.StartTime, End: r.EndTime}
}

// IsOwnedBy проверяет, что бронирование принадлежит пользователю
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID == userID
}

// ReservationDetails бронирование вместе с пользователем, слотом и станцией
// Заполняется явным JOIN в репозитории, ленивой подгрузки нет
type ReservationDetails struct {
	Reservation

	Username   string
	UserEmail  string
	SlotNumber int
	StationID  int64

	StationName     string
	StationLocation string
}
