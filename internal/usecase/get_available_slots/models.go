package get_available_slots

import "time"

// Request модель запроса на получение слотов поста
type Request struct {
	PostID int64     // ID поста
	Date   time.Time // Дата, на которую генерируются слоты (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	PostID int64     // ID поста
	Date   time.Time // Дата, на которую запрашивались слоты
	Slots  []Slot    // Слоты в хронологическом порядке
}

// Slot модель временного слота
type Slot struct {
	Time     time.Time // Момент начала слота (UTC)
	IsClosed bool      // true, если слот недоступен для бронирования
}
