package get_participant_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

const (
	msgInvalidParticipantID = "некорректный ID участника"
	msgInvalidStatus        = "некорректный статус бронирования"
	msgForbidden            = "просмотр чужих бронирований запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/participants/{participantId}/bookings
// Query params: status (опционально)
// Клиент видит только собственную историю, администратор - любую
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	participantID, err := strconv.ParseInt(vars["participantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /participants/{id}/bookings - Invalid participant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipantID)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "не удалось определить вызывающего")
		return
	}

	if !identity.IsAdmin() && identity.UserID != participantID {
		h.logger.Warn("GET /participants/{id}/bookings - Access denied: participant_id=%d, user_id=%d",
			participantID, identity.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetParticipantBookingsRequest{
		Participant: domain.ParticipantRef{ID: participantID, Kind: domain.ParticipantKindClient},
		Status:      statusPtr,
	}

	result, err := h.service.GetParticipantBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /participants/{id}/bookings - Invalid status filter: participant_id=%d, status=%s",
				participantID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /participants/{id}/bookings - Failed to get bookings: participant_id=%d, error=%v",
				participantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /participants/{id}/bookings - Bookings retrieved successfully: participant_id=%d, count=%d",
		participantID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
