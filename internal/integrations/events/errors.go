package events

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("events client: internal error")

	// ErrInvalidResponse возвращается, когда сток событий ответил ошибкой
	ErrInvalidResponse = errors.New("events client: invalid response")
)
