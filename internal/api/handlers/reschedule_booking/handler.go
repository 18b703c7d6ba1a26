package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidNewStart    = "некорректный формат нового интервала, ожидается RFC 3339"
	msgNotFound           = "бронирование не найдено"
	msgResourceNotFound   = "ресурс не найден"
	msgForbidden          = "доступ запрещен"
	msgGroupForbidden     = "групповое бронирование может перенести только администратор"
	msgCannotReschedule   = "бронирование не может быть перенесено"
	msgWindowExpired      = "окно переноса бронирования истекло"
	msgSlotNotAvailable   = "новый временной слот недоступен"
	msgTooLateToBook      = "слишком поздно для переноса на этот слот"
	msgConflict           = "перенос не удался из-за конкурирующей операции, повторите попытку"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не удалось определить вызывающего")
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, identity)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse new start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNewStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrResourceNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Resource not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, rescheduleBooking.ErrGroupRescheduleForbidden):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Group reschedule forbidden: booking_id=%d, user_id=%d",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgGroupForbidden)

		case errors.Is(err, rescheduleBooking.ErrForbidden):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d",
				bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrRescheduleWindowExpired):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Reschedule window expired: booking_id=%d, user_id=%d",
				bookingID, identity.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgWindowExpired)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot not available: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Too late to book: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Concurrent conflict: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, user_id=%d",
		bookingID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
