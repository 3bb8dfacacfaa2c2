package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if filter.PostID != nil && b.PostID != *filter.PostID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, inProgressStartedAt *time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.InProgressStartedAt = inProgressStartedAt
	return nil
}

func (f *fakeBookingRepo) UpdateControl(_ context.Context, id int64, status domain.ControlStatus, comment *string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.ControlStatus = status
	b.ControlComment = comment
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

type fakeNotifier struct {
	events []domain.NotificationEvent
}

func (f *fakeNotifier) Notify(_ context.Context, event domain.NotificationEvent, _ *domain.Booking) {
	f.events = append(f.events, event)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo, notifier *fakeNotifier, now time.Time) *Service {
	svc := NewService(repo, notifier, nopLogger{})
	svc.timeProvider = &fixedTime{now: now}
	return svc
}

func pendingBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		UserID:        100,
		ServiceID:     10,
		PostID:        1,
		DateTime:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
		ControlStatus: domain.ControlNone,
	}
}

func TestService_GetByID(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), &fakeNotifier{}, now)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus_ValidTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), notifier, now)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	// Переход порождает событие уведомления
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventConfirmed, notifier.events[0])
}

func TestService_UpdateStatus_InProgressStampsStartTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC)
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), &fakeNotifier{}, now)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	require.NotNil(t, resp.InProgressStartedAt)
	assert.Equal(t, now, *resp.InProgressStartedAt)
}

func TestService_UpdateStatus_RejectsInvalidTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	completed := pendingBooking(1)
	completed.Status = domain.StatusCompleted
	cancelled := pendingBooking(2)
	cancelled.Status = domain.StatusCancelled

	notifier := &fakeNotifier{}
	svc := newTestService(newFakeBookingRepo(completed, cancelled), notifier, now)

	// Терминальные статусы не допускают переходов
	for _, id := range []int64{1, 2} {
		for _, target := range []string{"pending", "confirmed", "in_progress", "completed", "cancelled"} {
			_, err := svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: target})
			assert.ErrorIs(t, err, ErrInvalidTransition, "booking %d -> %s", id, target)
		}
	}
	assert.Empty(t, notifier.events)
}

func TestService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), &fakeNotifier{}, now)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Cancel(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	notifier := &fakeNotifier{}
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), notifier, now)

	resp, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventCancelled, notifier.events[0])

	// Повторная отмена запрещена
	_, err = svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestService_Cancel_CompletedRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	completed := pendingBooking(1)
	completed.Status = domain.StatusCompleted
	svc := newTestService(newFakeBookingRepo(completed), &fakeNotifier{}, now)

	_, err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_UpdateControl(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeBookingRepo(pendingBooking(1)), &fakeNotifier{}, now)

	comment := "клиент не берет трубку"
	resp, err := svc.UpdateControl(context.Background(), 1, &models.UpdateControlRequest{
		ControlStatus:  "issue",
		ControlComment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, "issue", resp.ControlStatus)
	require.NotNil(t, resp.ControlComment)
	assert.Equal(t, comment, *resp.ControlComment)

	_, err = svc.UpdateControl(context.Background(), 1, &models.UpdateControlRequest{ControlStatus: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidControlStatus)
}

func TestService_UpdateControl_IndependentOfLifecycle(t *testing.T) {
	// Контрольный статус меняется даже у терминального бронирования
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	completed := pendingBooking(1)
	completed.Status = domain.StatusCompleted
	svc := newTestService(newFakeBookingRepo(completed), &fakeNotifier{}, now)

	resp, err := svc.UpdateControl(context.Background(), 1, &models.UpdateControlRequest{ControlStatus: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, "contacted", resp.ControlStatus)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestService_GetUserBookings(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	b1 := pendingBooking(1)
	b2 := pendingBooking(2)
	b2.Status = domain.StatusConfirmed
	other := pendingBooking(3)
	other.UserID = 200

	svc := newTestService(newFakeBookingRepo(b1, b2, other), &fakeNotifier{}, now)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_List_ExcludesCancelledByDefault(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	active := pendingBooking(1)
	cancelled := pendingBooking(2)
	cancelled.Status = domain.StatusCancelled

	svc := newTestService(newFakeBookingRepo(active, cancelled), &fakeNotifier{}, now)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestService_Delete(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(pendingBooking(1))
	svc := newTestService(repo, &fakeNotifier{}, now)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.bookings)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrBookingNotFound)
}
