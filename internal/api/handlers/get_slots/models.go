package get_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ResourceID      int64  `json:"resourceId"`
	Date            string `json:"date"`
	Strategy        string `json:"strategy"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель свободного временного слота
type Slot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(resourceID int64, dateStr string) (*getSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlots.Request{
		ResourceID: resourceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Start:           slot.Start.Format(time.RFC3339),
			End:             slot.End.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &SlotsResponse{
		ResourceID:      resp.ResourceID,
		Date:            resp.Date.Format(domain.DateFormat),
		Strategy:        string(resp.Strategy),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
