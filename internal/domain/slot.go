package domain

import "time"

// Slot вычисляемый временной слот поста на конкретную дату
// Слоты никогда не сохраняются - список генерируется по запросу
type Slot struct {
	// Time момент начала слота (UTC)
	Time time.Time

	// IsClosed true, если слот нельзя забронировать:
	// пост выключен, время закрыто вручную, слот занят или уже прошёл
	IsClosed bool
}
