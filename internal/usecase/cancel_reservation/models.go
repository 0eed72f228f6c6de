package cancel_reservation

// Request модель запроса на отмену бронирования
type Request struct {
	UserID        int64 // ID пользователя из токена
	ReservationID int64 // ID бронирования
}

// Response модель ответа об отменённом бронировании
type Response struct {
	ReservationID int64
	SlotID        int64
	SlotNumber    int
	StationName   string
}
