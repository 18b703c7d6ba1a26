package availability

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда интервал пуст или вывернут
	ErrInvalidTimeRange = errors.New("availability.service: invalid time range")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
