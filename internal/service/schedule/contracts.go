package schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория глобальной политики рабочих часов
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.WorkingHours, error)
	Save(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
