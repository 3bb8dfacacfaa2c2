package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64     // ID клиента
	ServiceID  int64     // ID услуги из каталога
	PostID     *int64    // ID поста; nil - используется пост по умолчанию
	EmployeeID *int64    // ID сотрудника (опционально)
	DateTime   time.Time // Момент начала слота (UTC)
	Notes      *string   // Комментарий клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	UserID     int64
	ServiceID  int64
	PostID     int64
	EmployeeID *int64
	DateTime   time.Time
	Status     string

	// Денормализованный снимок
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	UserName        string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
