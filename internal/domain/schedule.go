package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WorkingHours глобальная политика рабочих часов
// Используется каждым постом без собственного расписания; хранится одной записью
type WorkingHours struct {
	StartHour           int // 0-23
	EndHour             int // 1-24, строго больше StartHour
	SlotDurationMinutes int

	UpdatedAt time.Time
}

// StartTimeString возвращает час открытия как время суток ("9:00" -> "09:00")
func (w WorkingHours) StartTimeString() types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:00", w.StartHour))
}

// EndTimeString возвращает час закрытия как время суток
func (w WorkingHours) EndTimeString() types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:00", w.EndHour))
}

// WorkingHoursPatch частичное обновление политики; незаданные поля сохраняют значение
type WorkingHoursPatch struct {
	StartHour           *int
	EndHour             *int
	SlotDurationMinutes *int
}
