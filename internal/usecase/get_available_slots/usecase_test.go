package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
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

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(posts *fakePostRepo, schedule *fakeScheduleRepo, bookings *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(posts, schedule, bookings, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func defaultPost(id int64) *domain.Post {
	return &domain.Post{
		ID:              id,
		Name:            "Post 1",
		IsEnabled:       true,
		IntervalMinutes: 30,
	}
}

func TestExecute_DefaultHoursYield18Slots(t *testing.T) {
	// Политика 9-18 с шагом 30 минут даёт ровно 18 слотов: 09:00 .. 17:30
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: defaultPost(1)}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)

	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), resp.Slots[0].Time)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC), resp.Slots[17].Time)

	// Хронологический порядок и все слоты открыты
	for i, slot := range resp.Slots {
		assert.False(t, slot.IsClosed, "slot %d should be open", i)
		if i > 0 {
			assert.True(t, slot.Time.After(resp.Slots[i-1].Time))
		}
	}
}

func TestExecute_OverlayClosesTimeOnAnyDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakePostRepo{
			posts:       map[int64]*domain.Post{1: defaultPost(1)},
			closedSlots: map[int64][]types.TimeString{1: {"13:00"}},
		},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	// Оверлей не привязан к дате - время закрыто в любой день
	for _, date := range []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	} {
		resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
		require.NoError(t, err)

		for _, slot := range resp.Slots {
			if slot.Time.Hour() == 13 && slot.Time.Minute() == 0 {
				assert.True(t, slot.IsClosed, "13:00 should be closed on %s", date.Format(domain.DateFormat))
			} else {
				assert.False(t, slot.IsClosed)
			}
		}
	}
}

func TestExecute_DisabledPostClosesEverySlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	post := defaultPost(1)
	post.IsEnabled = false

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: post}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)

	for _, slot := range resp.Slots {
		assert.True(t, slot.IsClosed)
	}
}

func TestExecute_ActiveBookingOccupiesSlot(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	slotInstant := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, PostID: 1, DateTime: slotInstant, Status: domain.StatusPending},
	}}

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: defaultPost(1)}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		bookings,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	assert.True(t, resp.Slots[0].IsClosed, "booked slot should be closed")
	assert.False(t, resp.Slots[1].IsClosed)

	// Отмена бронирования освобождает слот
	bookings.bookings[0].Status = domain.StatusCancelled

	resp, err = uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	assert.False(t, resp.Slots[0].IsClosed, "cancelled booking should free its slot")
}

func TestExecute_PolicyChangeMovesFirstSlot(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	schedule := &fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}}
	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: defaultPost(1)}},
		schedule,
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Slots[0].Time.Hour())

	// Сдвиг часа открытия немедленно влияет на генерацию
	schedule.policy.StartHour = 10

	resp, err = uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Slots[0].Time.Hour())
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_CustomHoursOverridePolicy(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	post := &domain.Post{
		ID:              1,
		IsEnabled:       true,
		UseCustomHours:  true,
		StartTime:       ptr.Ptr(types.TimeString("08:00")),
		EndTime:         ptr.Ptr(types.TimeString("12:00")),
		IntervalMinutes: 60,
	}

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: post}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	expected := []int{8, 9, 10, 11}
	for i, slot := range resp.Slots {
		assert.Equal(t, expected[i], slot.Time.Hour())
		assert.Equal(t, 0, slot.Time.Minute())
	}
}

func TestExecute_PastDateAllSlotsClosed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: defaultPost(1)}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)

	// Прошедшая дата - не ошибка, но все слоты закрыты
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsClosed)
	}
}

func TestExecute_ElapsedSlotsOfTodayClosed(t *testing.T) {
	// Сегодня в 12:10: слоты до 12:00 включительно уже прошли
	now := time.Date(2026, 3, 2, 12, 10, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: defaultPost(1)}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		if slot.Time.Before(now) {
			assert.True(t, slot.IsClosed, "elapsed slot %s should be closed", slot.Time)
		} else {
			assert.False(t, slot.IsClosed, "future slot %s should be open", slot.Time)
		}
	}
}

func TestExecute_UnknownPostReturnsEmptyList(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{}},
		&fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 99, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MissingPolicyFallsBackToDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakePostRepo{posts: map[int64]*domain.Post{1: defaultPost(1)}},
		&fakeScheduleRepo{policy: nil},
		&fakeBookingRepo{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{PostID: 1, Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 18)
	assert.Equal(t, 9, resp.Slots[0].Time.Hour())
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakePostRepo{}, &fakeScheduleRepo{}, &fakeBookingRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{PostID: 0, Date: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PostID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
