package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	postRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/post"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case вычисления слотов поста на дату
// Слоты не хранятся - список всегда отражает актуальную политику,
// закрытые времена и занятость без проблем инвалидации кеша
type UseCase struct {
	postRepo     PostRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	postRepo PostRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		postRepo:     postRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute вычисляет слоты поста на дату
// Неизвестный пост - не ошибка: возвращается пустой список ("ничего не доступно")
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: post=%d, date=%s", req.PostID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 1. Получаем пост; неизвестный пост отдаёт пустой список слотов
	post, err := uc.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			uc.logger.Warn("GetAvailableSlots: post id=%d not found, returning empty slot list", req.PostID)
			return &Response{
				PostID: req.PostID,
				Date:   req.Date,
				Slots:  []Slot{},
			}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get post id=%d: %v", req.PostID, err)
		return nil, fmt.Errorf("%w: failed to get post: %v", ErrInternal, err)
	}

	// 2. Глобальная политика рабочих часов; при отсутствии записи - дефолты
	policy, err := uc.scheduleRepo.Get(ctx)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	if policy == nil {
		policy = &domain.WorkingHours{
			StartHour:           domain.DefaultStartHour,
			EndHour:             domain.DefaultEndHour,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		}
	}

	// 3. Закрытые вручную времена поста (один набор на пост, без привязки к дате)
	closedTimes, err := uc.postRepo.ListClosedSlots(ctx, req.PostID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get closed slots for post id=%d: %v", req.PostID, err)
		return nil, fmt.Errorf("%w: failed to get closed slots: %v", ErrInternal, err)
	}

	// 4. Активные бронирования поста на эту дату
	bookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		PostID: ptr.Ptr(req.PostID),
		Date:   ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	slots, err := generateSlots(post, *policy, closedTimes, bookings, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for post=%d, date=%s",
		len(slots), req.PostID, req.Date.Format(domain.DateFormat))

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{Time: s.Time, IsClosed: s.IsClosed}
	}

	return &Response{
		PostID: req.PostID,
		Date:   req.Date,
		Slots:  result,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PostID <= 0 {
		return fmt.Errorf("%w: postID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
