package domain

// NotificationEvent событие жизненного цикла, отправляемое в сервис уведомлений
type NotificationEvent string

const (
	EventNewBooking NotificationEvent = "new_booking"
	EventConfirmed  NotificationEvent = "confirmed"
	EventCancelled  NotificationEvent = "cancelled"
	EventInProgress NotificationEvent = "in_progress"
	EventCompleted  NotificationEvent = "completed"
)

// EventForStatus возвращает событие уведомления для целевого статуса перехода
func EventForStatus(status BookingStatus) (NotificationEvent, bool) {
	switch status {
	case StatusConfirmed:
		return EventConfirmed, true
	case StatusCancelled:
		return EventCancelled, true
	case StatusInProgress:
		return EventInProgress, true
	case StatusCompleted:
		return EventCompleted, true
	}
	return "", false
}
