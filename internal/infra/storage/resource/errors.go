package resource

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrResourceTypeNotFound возвращается, когда тип ресурса не найден
	ErrResourceTypeNotFound = errors.New("resource.repository: resource type not found")

	// ErrTimetableNotFound возвращается, когда расписание не найдено
	ErrTimetableNotFound = errors.New("resource.repository: timetable not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
