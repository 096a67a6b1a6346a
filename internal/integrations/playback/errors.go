package playback

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("playback client: internal error")

	// ErrRejected возвращается, когда устройство не приняло команду
	ErrRejected = errors.New("playback client: command rejected")
)
