package domain

import "time"

// BookingStatus статус жизненного цикла бронирования
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// ControlStatus административный статус прозвона клиента
// Независим от BookingStatus - это отметка менеджера, а не состояние заказа
type ControlStatus string

const (
	ControlNone         ControlStatus = "none"
	ControlAwaitingCall ControlStatus = "awaiting_call"
	ControlContacted    ControlStatus = "contacted"
	ControlIssue        ControlStatus = "issue"
)

// statusTransitions матрица допустимых переходов статусов
// completed и cancelled - терминальные состояния
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValid возвращает true, если статус - один из пяти известных
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal возвращает true для терминальных статусов
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo проверяет допустимость перехода s -> next по матрице
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid возвращает true для известного контрольного статуса
func (c ControlStatus) IsValid() bool {
	switch c {
	case ControlNone, ControlAwaitingCall, ControlContacted, ControlIssue:
		return true
	}
	return false
}

// Booking запись о бронировании поста на временной слот
type Booking struct {
	ID         int64
	UserID     int64
	ServiceID  int64
	PostID     int64
	EmployeeID *int64

	// DateTime момент начала слота (UTC)
	DateTime time.Time

	Status BookingStatus

	ControlStatus  ControlStatus
	ControlComment *string

	// Денормализованный снимок на момент создания, никогда не пересинхронизируется:
	// история должна показывать условия, действовавшие при бронировании
	ServiceName     string
	ServicePrice    float64
	DurationMinutes int
	UserName        string

	Notes *string

	// InProgressStartedAt проставляется при переходе в in_progress
	InProgressStartedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает слот
// Отменённые бронирования слот освобождают; completed по-прежнему занимает свой исторический слот
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled возвращает true для отменённого бронирования
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	PostID          *int64         // Фильтр по посту (опционально)
	Date            *time.Time     // Бронирования на конкретную дату (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
