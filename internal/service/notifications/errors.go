package notifications

import "errors"

var (
	// ErrRender возвращается, если шаблон письма не удалось отрисовать
	ErrRender = errors.New("notifications: failed to render template")

	// ErrSend возвращается, если письмо не удалось отправить
	ErrSend = errors.New("notifications: failed to send email")
)
