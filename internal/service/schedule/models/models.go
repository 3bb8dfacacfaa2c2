package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UpdateScheduleRequest частичное обновление политики рабочих часов
// Незаданные поля сохраняют текущее значение
type UpdateScheduleRequest struct {
	StartHour           *int `json:"startHour,omitempty"`
	EndHour             *int `json:"endHour,omitempty"`
	SlotDurationMinutes *int `json:"slotDurationMinutes,omitempty"`
}

// ScheduleResponse ответ с политикой рабочих часов
type ScheduleResponse struct {
	StartHour           int       `json:"startHour"`
	EndHour             int       `json:"endHour"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) *ScheduleResponse {
	if wh == nil {
		return nil
	}
	return &ScheduleResponse{
		StartHour:           wh.StartHour,
		EndHour:             wh.EndHour,
		SlotDurationMinutes: wh.SlotDurationMinutes,
		UpdatedAt:           wh.UpdatedAt,
	}
}
