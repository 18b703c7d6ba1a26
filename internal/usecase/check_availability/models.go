package check_availability

import "time"

// Request модель запроса на проверку доступности интервала
type Request struct {
	ResourceID int64     // ID ресурса
	Start      time.Time // Начало интервала (включительно)
	End        time.Time // Конец интервала (исключительно)
}

// Response модель ответа проверки доступности
type Response struct {
	ResourceID int64     // ID ресурса
	Start      time.Time // Начало проверенного интервала
	End        time.Time // Конец проверенного интервала
	Available  bool      // true, если интервал внутри рабочего окна и свободен
}
