package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	postRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/post"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakePostRepo struct {
	posts       map[int64]*domain.Post
	closedSlots map[int64][]types.TimeString
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, postRepo.ErrPostNotFound
	}
	return post, nil
}

func (f *fakePostRepo) EnsureDefault(_ context.Context) (*domain.Post, error) {
	if post, ok := f.posts[domain.DefaultPostID]; ok {
		return post, nil
	}
	post := &domain.Post{
		ID:              domain.DefaultPostID,
		Name:            domain.DefaultPostName,
		IsEnabled:       true,
		IntervalMinutes: domain.DefaultSlotDurationMinutes,
	}
	f.posts[domain.DefaultPostID] = post
	return post, nil
}

func (f *fakePostRepo) ListClosedSlots(_ context.Context, postID int64) ([]types.TimeString, error) {
	return f.closedSlots[postID], nil
}

type fakeScheduleRepo struct {
	policy *domain.WorkingHours
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.WorkingHours, error) {
	if f.policy == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.policy, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	// Частичный уникальный индекс (post_id, date_time) для активных бронирований
	for _, existing := range f.bookings {
		if existing.IsActive() && existing.PostID == b.PostID && existing.DateTime.Equal(b.DateTime) {
			return nil, bookingRepo.ErrSlotTaken
		}
	}
	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if filter.PostID != nil && b.PostID != *filter.PostID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeCatalog struct {
	services map[int64]*catalogservice.Service
	users    map[int64]*catalogservice.User
}

func (f *fakeCatalog) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
}

func (f *fakeCatalog) GetUser(_ context.Context, userID int64) (*catalogservice.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, catalogservice.ErrUserNotFound
	}
	return user, nil
}

type fakeNotifier struct {
	events []domain.NotificationEvent
}

func (f *fakeNotifier) Notify(_ context.Context, event domain.NotificationEvent, _ *domain.Booking) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	posts    *fakePostRepo
	schedule *fakeScheduleRepo
	bookings *fakeBookingRepo
	catalog  *fakeCatalog
	notifier *fakeNotifier
	uc       *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		posts: &fakePostRepo{
			posts: map[int64]*domain.Post{
				1: {ID: 1, Name: "Post 1", IsEnabled: true, IntervalMinutes: 30},
			},
			closedSlots: map[int64][]types.TimeString{},
		},
		schedule: &fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		bookings: &fakeBookingRepo{},
		catalog: &fakeCatalog{
			services: map[int64]*catalogservice.Service{
				10: {ID: 10, Name: "Комплексная мойка", Price: ptr.Ptr(1500.0), DurationMinutes: 60},
			},
			users: map[int64]*catalogservice.User{
				100: {ID: 100, Name: "Иван Петров"},
			},
		},
		notifier: &fakeNotifier{},
	}

	f.uc = NewUseCase(f.posts, f.schedule, f.bookings, f.catalog, f.notifier, fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTime{now: now}
	return f
}

func TestExecute_CreatesPendingBookingWithSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  slot,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(1), resp.PostID)
	assert.Equal(t, slot, resp.DateTime)

	// Денормализованный снимок услуги и клиента
	assert.Equal(t, "Комплексная мойка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Иван Петров", resp.UserName)

	// Уведомление о новой заявке
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventNewBooking, f.notifier.events[0])
}

func TestExecute_DefaultsToReservedPost(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(now)

	// Реестр пуст - пост по умолчанию создается лениво
	delete(f.posts.posts, 1)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		DateTime:  slot,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(domain.DefaultPostID), resp.PostID)
	assert.Contains(t, f.posts.posts, int64(domain.DefaultPostID))
}

func TestExecute_RejectsUnknownPost(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(99)),
		DateTime:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Empty(t, f.notifier.events)
}

func TestExecute_RejectsDisabledPost(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.posts.posts[1].IsEnabled = false

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrPostDisabled)
}

func TestExecute_RejectsUnknownServiceAndUser(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 77,
		DateTime:  slot,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:    777,
		ServiceID: 10,
		DateTime:  slot,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_RejectsOffGridTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	offGrid := []time.Time{
		time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC),  // не кратно интервалу
		time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),  // до открытия
		time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),  // после закрытия
		time.Date(2026, 3, 1, 17, 45, 0, 0, time.UTC), // хвост за закрытие
		time.Date(2026, 3, 1, 9, 0, 30, 0, time.UTC),  // секунды
	}

	for _, dt := range offGrid {
		_, err := f.uc.Execute(context.Background(), &Request{
			UserID:    100,
			ServiceID: 10,
			PostID:    ptr.Ptr(int64(1)),
			DateTime:  dt,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeSlot, "time %s should be off grid", dt)
	}
}

func TestExecute_RejectsPastSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_RejectsOverlayClosedSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	f.posts.closedSlots[1] = []types.TimeString{"13:00"}

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestExecute_RejectsTakenSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  slot,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  slot,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	f := newFixture(now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  slot,
	})
	require.NoError(t, err)

	// Отменяем - слот снова доступен
	for _, b := range f.bookings.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelled
		}
	}

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		PostID:    ptr.Ptr(int64(1)),
		DateTime:  slot,
	})
	assert.NoError(t, err)
}

func TestExecute_ValidatesInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)
	slot := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	cases := []*Request{
		{UserID: 0, ServiceID: 10, DateTime: slot},
		{UserID: 100, ServiceID: 0, DateTime: slot},
		{UserID: 100, ServiceID: 10},
		{UserID: 100, ServiceID: 10, PostID: ptr.Ptr(int64(-1)), DateTime: slot},
	}
	for _, req := range cases {
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}
	notes := string(longNotes)
	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    100,
		ServiceID: 10,
		DateTime:  slot,
		Notes:     &notes,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
