package eventbus

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к NATS
	ErrConnect = errors.New("eventbus: failed to connect")

	// ErrPublish возвращается, если сообщение не удалось отправить
	ErrPublish = errors.New("eventbus: failed to publish")
)
