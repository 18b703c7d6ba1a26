package get_next_slots

import (
	"strconv"
	"time"

	getNextSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_next_slots"
)

// NextSlotsResponse HTTP response model
type NextSlotsResponse struct {
	ResourceID      int64  `json:"resourceId"`
	From            string `json:"from"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель свободного временного слота
type Slot struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query.
// Пустые from и count получают значения по умолчанию внутри use case.
func ToUseCaseRequest(resourceID int64, fromStr, countStr, onlyTodayStr string) (*getNextSlots.Request, error) {
	req := &getNextSlots.Request{ResourceID: resourceID}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, err
		}
		req.Count = count
	}

	if onlyTodayStr != "" {
		onlyToday, err := strconv.ParseBool(onlyTodayStr)
		if err != nil {
			return nil, err
		}
		req.OnlyToday = onlyToday
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getNextSlots.Response) *NextSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Start:           slot.Start.Format(time.RFC3339),
			End:             slot.End.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &NextSlotsResponse{
		ResourceID:      resp.ResourceID,
		From:            resp.From.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
