package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStart         = "некорректный формат временного интервала, ожидается RFC 3339"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgResourceNotFound     = "ресурс не найден"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
	msgAlreadyParticipating = "участник уже записан на этот слот"
	msgConflict             = "бронирование не удалось из-за конкурирующей операции, повторите попытку"
	msgInvalidPolicy        = "некорректная политика бронирования ресурса"
	msgInvalidInput         = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не удалось определить вызывающего")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: resource_id=%d, user_id=%d", req.ResourceID, identity.UserID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: resource_id=%d, user_id=%d", req.ResourceID, identity.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrAlreadyParticipating):
			h.logger.Warn("POST /bookings - Already participating: resource_id=%d, user_id=%d", req.ResourceID, identity.UserID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyParticipating)

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Concurrent conflict: resource_id=%d, user_id=%d", req.ResourceID, identity.UserID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, resourcesService.ErrInvalidPolicy):
			h.logger.Error("POST /bookings - Invalid resource policy: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidPolicy)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource_id=%d, user_id=%d, error=%v",
				req.ResourceID, identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, participation_status=%s, user_id=%d",
		result.BookingID, result.ParticipationStatus, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
