package mailer

import "errors"

var (
	// ErrInvalidMessage возвращается, когда адрес или тема содержат перевод строки или пусты
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSend возвращается, когда SMTP сервер не принял письмо
	ErrSend = errors.New("mailer: failed to send")
)
