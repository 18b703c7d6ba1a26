package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrSlotNotAvailable возвращается, когда запрошенный интервал занят
	// или не попадает в расписание ресурса
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда бронирование нарушает min_advance_time_minutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrAlreadyParticipating возвращается при повторном присоединении к групповому бронированию
	ErrAlreadyParticipating = errors.New("create_booking: participant already holds a seat")

	// ErrConflict возвращается, когда конкурирующее бронирование помешало завершить транзакцию
	ErrConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
