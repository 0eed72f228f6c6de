package eventbus

import "time"

// ReservationEvent тело события о бронировании
type ReservationEvent struct {
	Type           string    `json:"type"`
	ReservationID  int64     `json:"reservation_id"`
	UserID         int64     `json:"user_id"`
	SlotID         int64     `json:"slot_id"`
	StationID      int64     `json:"station_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CarpoolOptIn   bool      `json:"carpool_opt_in"`
	CarpoolMatches int       `json:"carpool_matches,omitempty"`
	Amount         float64   `json:"amount,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
