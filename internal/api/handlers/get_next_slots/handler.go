package get_next_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	getNextSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_next_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidQuery      = "некорректные параметры запроса"
	msgResourceNotFound  = "ресурс не найден"
	msgInvalidPolicy     = "некорректная политика бронирования ресурса"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	useCase GetNextSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetNextSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/next-slots
// Query params: from (RFC 3339, default: сейчас), count (default: 5), onlyToday (default: false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/next-slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(resourceID, query.Get("from"), query.Get("count"), query.Get("onlyToday"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/next-slots - Invalid query params: resource_id=%d, error=%v", resourceID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getNextSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/next-slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, resourcesService.ErrInvalidPolicy):
			h.logger.Error("GET /resources/{id}/next-slots - Invalid resource policy: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidPolicy)

		case errors.Is(err, getNextSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/next-slots - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{id}/next-slots - Failed to get slots: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /resources/{id}/next-slots - Slots retrieved successfully: resource_id=%d, slots_count=%d",
		resourceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
