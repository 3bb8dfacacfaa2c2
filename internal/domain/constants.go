package domain

// DefaultPostID зарезервированный пост по умолчанию ("пост 1")
// Используется, когда бронирование создается без указания поста;
// создается автоматически при первом таком бронировании
const DefaultPostID = 1

// DefaultPostName имя поста по умолчанию
const DefaultPostName = "Post 1"

// Дефолтные значения глобальной политики рабочих часов
const (
	DefaultStartHour           = 9
	DefaultEndHour             = 18
	DefaultSlotDurationMinutes = 30
)

// AllowedIntervals допустимые шаги сетки слотов в минутах
var AllowedIntervals = []int{30, 60, 90, 120}

// IsAllowedInterval проверяет, что интервал - один из четырёх допустимых
func IsAllowedInterval(minutes int) bool {
	for _, v := range AllowedIntervals {
		if v == minutes {
			return true
		}
	}
	return false
}

// Ограничения валидации
const (
	MinHour        = 0
	MaxHour        = 24
	MaxNotesLength = 500
)

// Форматы даты и времени
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)
