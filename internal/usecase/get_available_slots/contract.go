package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// PostRepository интерфейс репозитория постов
type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	ListClosedSlots(ctx context.Context, postID int64) ([]types.TimeString, error)
}

// ScheduleRepository интерфейс репозитория глобальной политики рабочих часов
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.WorkingHours, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListWithFilter получает бронирования поста на конкретную дату
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
