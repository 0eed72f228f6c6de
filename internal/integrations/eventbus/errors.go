package eventbus

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру или объявить exchange
	ErrConnect = errors.New("eventbus: failed to connect")

	// ErrPublish возвращается, если событие не удалось опубликовать
	ErrPublish = errors.New("eventbus: failed to publish")
)
