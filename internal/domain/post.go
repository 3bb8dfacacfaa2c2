package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Post физический пост обслуживания (бокс мойки)
// На один слот поста допускается не более одного активного бронирования
type Post struct {
	ID   int64
	Name string

	// IsEnabled выключенный пост не принимает бронирования и не отдает открытых слотов
	IsEnabled bool

	// UseCustomHours пост работает по собственному расписанию вместо глобального
	// StartTime/EndTime заполнены только при UseCustomHours = true
	UseCustomHours bool
	StartTime      *types.TimeString
	EndTime        *types.TimeString

	// IntervalMinutes шаг сетки слотов поста: 30, 60, 90 или 120
	IntervalMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveHours возвращает рабочие часы поста с учётом глобальной политики
func (p *Post) EffectiveHours(policy WorkingHours) (start, end types.TimeString) {
	if p.UseCustomHours && p.StartTime != nil && p.EndTime != nil {
		return *p.StartTime, *p.EndTime
	}
	return policy.StartTimeString(), policy.EndTimeString()
}

// PostPatch частичное обновление поста; обновляются только непустые поля
type PostPatch struct {
	Name            *string
	IsEnabled       *bool
	UseCustomHours  *bool
	StartTime       *types.TimeString
	EndTime         *types.TimeString
	IntervalMinutes *int
}
