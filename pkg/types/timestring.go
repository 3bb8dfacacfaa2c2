package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString время суток в формате "HH:MM" (время стены, без даты и без таймзоны)
// Используется для рабочих часов постов и закрытых слотов
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
// Часы без ведущего нуля ("9:00") нормализуются к каноничному виду "09:00",
// иначе сохранённое значение никогда не совпадёт со сгенерированным слотом
func NewTimeStringFromString(s string) (TimeString, error) {
	m, err := TimeString(s).Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m)
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m > 24*60 {
		return "", fmt.Errorf("invalid time string format: %d minutes out of range", m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
// Допускается диапазон от "00:00" до "24:00" включительно ("24:00" - граница конца суток)
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}

	return hour*60 + minute, nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// AddMinutes возвращает новый TimeString, сдвинутый на m минут вперед
// Возвращает ошибку при выходе за границу суток
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	cur, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(cur + m)
}

// OnDate возвращает абсолютный момент времени: дата + время суток (UTC)
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	m, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(m) * time.Minute), nil
}

// Value реализует driver.Valuer для сохранения в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(normalizeDBTime(v))
	case []byte:
		*t = TimeString(normalizeDBTime(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	return t.Validate()
}

// normalizeDBTime обрезает секунды, если колонка имеет тип TIME ("10:00:00" -> "10:00")
func normalizeDBTime(s string) string {
	if len(s) >= 5 && strings.Count(s, ":") == 2 {
		return s[:5]
	}
	return s
}
