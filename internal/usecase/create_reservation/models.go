package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64  // ID пользователя из токена
	SlotID       int64  // ID слота
	StartTime    string // RFC 3339 или YYYY-MM-DDTHH:MM[:SS] в часовом поясе сервиса
	EndTime      string // формат как у StartTime
	CarpoolOptIn bool   // согласие на карпулинг
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	UserID       int64
	SlotID       int64
	SlotNumber   int
	StationID    int64
	StationName  string
	StartTime    time.Time
	EndTime      time.Time
	IsPaid       bool
	CarpoolOptIn bool
	QRCode       string  // base64 PNG
	Amount       float64 // сумма к оплате

	CarpoolMatches []string // имена пользователей-попутчиков

	CreatedAt time.Time
}
