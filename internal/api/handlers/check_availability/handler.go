package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	resourcesService "github.com/m04kA/SMC-ScheduleService/internal/service/resources"
	checkAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/check_availability"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingRange      = "параметры start и end обязательны"
	msgInvalidRange      = "некорректный формат интервала, ожидается RFC 3339"
	msgResourceNotFound  = "ресурс не найден"
	msgInvalidPolicy     = "некорректная политика бронирования ресурса"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/availability
// Query params: start (required, RFC 3339), end (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	query := r.URL.Query()
	startStr := query.Get("start")
	endStr := query.Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /resources/{id}/availability - Missing range: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(resourceID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability - Invalid range format: resource_id=%d, error=%v", resourceID, err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/availability - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, resourcesService.ErrInvalidPolicy):
			h.logger.Error("GET /resources/{id}/availability - Invalid resource policy: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidPolicy)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/availability - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{id}/availability - Failed to check availability: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /resources/{id}/availability - Availability checked: resource_id=%d, available=%t",
		resourceID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}
