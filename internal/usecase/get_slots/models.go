package get_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модель запроса на получение слотов на дату
type Request struct {
	ResourceID int64     // ID ресурса
	Date       time.Time // Календарная дата (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	ResourceID      int64               // ID ресурса
	TenantID        int64               // ID владельца ресурса
	Date            time.Time           // Дата, на которую запрашивались слоты
	Strategy        domain.SlotStrategy // Стратегия генерации слотов
	DurationMinutes int                 // Длительность слота по эффективной политике
	Slots           []domain.Slot       // Свободные слоты, отсортированы по началу
}
