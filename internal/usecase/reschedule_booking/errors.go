package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrResourceNotFound возвращается, когда ресурс бронирования не найден
	ErrResourceNotFound = errors.New("reschedule_booking: resource not found")

	// ErrInvalidTransition возвращается при попытке перенести завершённое бронирование
	ErrInvalidTransition = errors.New("reschedule_booking: booking is terminal")

	// ErrGroupRescheduleForbidden возвращается, когда клиент пытается перенести групповое бронирование
	ErrGroupRescheduleForbidden = errors.New("reschedule_booking: group bookings can be rescheduled only by admin")

	// ErrForbidden возвращается, когда клиент переносит чужое бронирование
	ErrForbidden = errors.New("reschedule_booking: participant does not hold this booking")

	// ErrRescheduleWindowExpired возвращается, когда окно переноса для клиента закрыто
	ErrRescheduleWindowExpired = errors.New("reschedule_booking: reschedule window expired")

	// ErrSlotNotAvailable возвращается, когда новый интервал занят или вне расписания
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrTooLateToBook возвращается, когда новый интервал нарушает min_advance_time_minutes
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this slot")

	// ErrConflict возвращается, когда конкурирующая операция помешала завершить транзакцию
	ErrConflict = errors.New("reschedule_booking: concurrent booking conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
