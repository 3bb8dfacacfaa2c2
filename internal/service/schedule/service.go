package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

// Service сервис глобальной политики рабочих часов
// Политика хранится одной записью и применяется всеми постами без
// собственного расписания
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Get возвращает текущую политику; при отсутствии записи - дефолты
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching working hours")

	wh, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: no working hours record, returning defaults")
			return models.FromDomainWorkingHours(&domain.WorkingHours{
				StartHour:           domain.DefaultStartHour,
				EndHour:             domain.DefaultEndHour,
				SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			}), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(wh), nil
}

// Update частично обновляет политику
// Изменение действует на все последующие вычисления слотов немедленно
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating working hours, start=%v, end=%v, duration=%v",
		req.StartHour, req.EndHour, req.SlotDurationMinutes)

	current, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("Update: repository error: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		current = &domain.WorkingHours{
			StartHour:           domain.DefaultStartHour,
			EndHour:             domain.DefaultEndHour,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		}
	}

	if req.StartHour != nil {
		current.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		current.EndHour = *req.EndHour
	}
	if req.SlotDurationMinutes != nil {
		current.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	if err := validateWorkingHours(current); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.scheduleRepo.Save(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: working hours set to %d-%d, slot duration %d minutes",
		saved.StartHour, saved.EndHour, saved.SlotDurationMinutes)
	return models.FromDomainWorkingHours(saved), nil
}

// validateWorkingHours проверяет границы политики: 0 <= start < end <= 24
func validateWorkingHours(wh *domain.WorkingHours) error {
	if wh.StartHour < domain.MinHour || wh.StartHour > domain.MaxHour {
		return fmt.Errorf("%w: startHour %d out of range [%d, %d]",
			ErrInvalidHours, wh.StartHour, domain.MinHour, domain.MaxHour)
	}
	if wh.EndHour < domain.MinHour || wh.EndHour > domain.MaxHour {
		return fmt.Errorf("%w: endHour %d out of range [%d, %d]",
			ErrInvalidHours, wh.EndHour, domain.MinHour, domain.MaxHour)
	}
	if wh.StartHour >= wh.EndHour {
		return fmt.Errorf("%w: startHour %d must be before endHour %d",
			ErrInvalidHours, wh.StartHour, wh.EndHour)
	}
	if wh.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSlotDuration, wh.SlotDurationMinutes)
	}
	return nil
}
