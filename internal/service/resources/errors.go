package resources

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resources.service: resource not found")

	// ErrInvalidPolicy возвращается, когда итоговая политика ресурса некорректна
	ErrInvalidPolicy = errors.New("resources.service: invalid resource policy")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("resources.service: internal error")
)
