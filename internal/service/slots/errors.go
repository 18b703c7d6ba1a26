package slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("slots.service: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("slots.service: internal error")
)
