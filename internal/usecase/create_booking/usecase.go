package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	postRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/post"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case создания бронирования
// Проверка слота и вставка выполняются в одной serializable транзакции:
// выборка бронирований дня берёт блокировку, а частичный уникальный индекс
// в БД страхует от двойного бронирования при конкурентных запросах
type UseCase struct {
	postRepo      PostRepository
	scheduleRepo  ScheduleRepository
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	notifier      Notifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	postRepo PostRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		postRepo:      postRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute создает бронирование в статусе pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, datetime=%s",
		req.UserID, req.ServiceID, req.DateTime.Format(domain.DateTimeFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 1. Данные услуги и клиента из каталога - до транзакции,
	// внешние HTTP вызовы внутри serializable транзакции недопустимы
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	user, err := uc.catalogClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, fmt.Errorf("%w: id=%d", ErrUserNotFound, req.UserID)
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	instant := req.DateTime.UTC()

	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2. Пост: явный из запроса либо пост по умолчанию
		post, err := uc.resolvePost(ctx, req.PostID)
		if err != nil {
			return err
		}

		if !post.IsEnabled {
			return fmt.Errorf("%w: id=%d", ErrPostDisabled, post.ID)
		}

		// 3. Политика рабочих часов; при отсутствии записи - дефолты
		policy, err := uc.scheduleRepo.Get(ctx)
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}
		if policy == nil {
			policy = &domain.WorkingHours{
				StartHour:           domain.DefaultStartHour,
				EndHour:             domain.DefaultEndHour,
				SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			}
		}

		closedTimes, err := uc.postRepo.ListClosedSlots(ctx, post.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get closed slots: %v", ErrInternal, err)
		}

		// 4. Бронирования поста на день; внутри транзакции выборка
		// блокирует строки (FOR UPDATE)
		dayBookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
			PostID: ptr.Ptr(post.ID),
			Date:   ptr.Ptr(instant),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if err := validateSlot(post, *policy, closedTimes, dayBookings, instant, now); err != nil {
			return err
		}

		// 5. Вставка с денормализованным снимком услуги и клиента
		booking := &domain.Booking{
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			PostID:          post.ID,
			EmployeeID:      req.EmployeeID,
			DateTime:        instant,
			Status:          domain.StatusPending,
			ControlStatus:   domain.ControlNone,
			ServiceName:     service.Name,
			ServicePrice:    ptr.Deref(service.Price, 0),
			DurationMinutes: service.DurationMinutes,
			UserName:        user.Name,
			Notes:           req.Notes,
		}

		created, err = uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return fmt.Errorf("%w: %s", ErrSlotTaken, instant.Format(domain.DateTimeFormat))
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d, post=%d, datetime=%s",
		created.ID, created.UserID, created.PostID, created.DateTime.Format(domain.DateTimeFormat))

	// 6. Уведомление администратора о новой заявке, fire-and-forget
	uc.notifier.Notify(ctx, domain.EventNewBooking, created)

	return toResponse(created), nil
}

// resolvePost возвращает пост из запроса или пост по умолчанию.
// Пост по умолчанию создаётся лениво, если его ещё нет
func (uc *UseCase) resolvePost(ctx context.Context, postID *int64) (*domain.Post, error) {
	if postID == nil {
		post, err := uc.postRepo.EnsureDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to ensure default post: %v", ErrInternal, err)
		}
		return post, nil
	}

	post, err := uc.postRepo.GetByID(ctx, *postID)
	if err != nil {
		if errors.Is(err, postRepo.ErrPostNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrPostNotFound, *postID)
		}
		return nil, fmt.Errorf("%w: failed to get post: %v", ErrInternal, err)
	}

	return post, nil
}

// toResponse конвертирует доменную модель в ответ
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		UserID:          b.UserID,
		ServiceID:       b.ServiceID,
		PostID:          b.PostID,
		EmployeeID:      b.EmployeeID,
		DateTime:        b.DateTime,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		DurationMinutes: b.DurationMinutes,
		UserName:        b.UserName,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
