package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrResourceNotFound возвращается, когда ресурс бронирования не найден
	ErrResourceNotFound = errors.New("bookings.service: resource not found")

	// ErrParticipationNotFound возвращается, когда участие в групповом бронировании не найдено
	ErrParticipationNotFound = errors.New("bookings.service: participation not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("bookings.service: invalid status transition")

	// ErrCancellationWindowExpired возвращается, когда окно отмены для клиента закрыто
	ErrCancellationWindowExpired = errors.New("bookings.service: cancellation window expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrConflict возвращается, когда конкурирующая операция помешала завершить транзакцию
	ErrConflict = errors.New("bookings.service: concurrent modification conflict")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
