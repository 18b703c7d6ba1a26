package get_next_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DefaultCount количество слотов по умолчанию, если клиент не указал свое
const DefaultCount = 5

// Request модель запроса на получение ближайших свободных слотов
type Request struct {
	ResourceID int64     // ID ресурса
	From       time.Time // Нижняя граница поиска; нулевое значение означает "сейчас"
	Count      int       // Сколько слотов вернуть; 0 означает DefaultCount
	OnlyToday  bool      // Ограничить поиск датой From
}

// Response модель ответа со списком ближайших слотов
type Response struct {
	ResourceID      int64         // ID ресурса
	TenantID        int64         // ID владельца ресурса
	From            time.Time     // Фактическая нижняя граница поиска
	DurationMinutes int           // Длительность слота по эффективной политике
	Slots           []domain.Slot // Ближайшие свободные слоты, отсортированы по началу
}
