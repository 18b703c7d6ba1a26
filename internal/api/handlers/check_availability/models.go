package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID int64  `json:"resourceId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Available  bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(resourceID int64, startStr, endStr string) (*checkAvailability.Request, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		ResourceID: resourceID,
		Start:      start,
		End:        end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ResourceID: resp.ResourceID,
		Start:      resp.Start.Format(time.RFC3339),
		End:        resp.End.Format(time.RFC3339),
		Available:  resp.Available,
	}
}
