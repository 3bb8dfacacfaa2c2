package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeScheduleRepo struct {
	policy *domain.WorkingHours
}

func (f *fakeScheduleRepo) Get(_ context.Context) (*domain.WorkingHours, error) {
	if f.policy == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	copied := *f.policy
	return &copied, nil
}

func (f *fakeScheduleRepo) Save(_ context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	saved := *wh
	saved.UpdatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.policy = &saved
	return &saved, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_Get(t *testing.T) {
	repo := &fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 10, EndHour: 20, SlotDurationMinutes: 60}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, resp.StartHour)
	assert.Equal(t, 20, resp.EndHour)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
}

func TestService_Get_DefaultsWhenMissing(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, nopLogger{})

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStartHour, resp.StartHour)
	assert.Equal(t, domain.DefaultEndHour, resp.EndHour)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
}

func TestService_Update_Partial(t *testing.T) {
	repo := &fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}}
	svc := NewService(repo, nopLogger{})

	// Меняется только час открытия, остальное сохраняется
	resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		StartHour: ptr.Ptr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.StartHour)
	assert.Equal(t, 18, resp.EndHour)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
}

func TestService_Update_FromEmptyUsesDefaultsAsBase(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		EndHour: ptr.Ptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStartHour, resp.StartHour)
	assert.Equal(t, 20, resp.EndHour)
}

func TestService_Update_Validation(t *testing.T) {
	repo := &fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}}
	svc := NewService(repo, nopLogger{})

	cases := []*models.UpdateScheduleRequest{
		{StartHour: ptr.Ptr(-1)},
		{EndHour: ptr.Ptr(25)},
		{StartHour: ptr.Ptr(18), EndHour: ptr.Ptr(9)},
		{StartHour: ptr.Ptr(12), EndHour: ptr.Ptr(12)},
	}
	for _, req := range cases {
		_, err := svc.Update(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidHours)
	}

	_, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		SlotDurationMinutes: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	// Политика не изменилась после отклонённых запросов
	assert.Equal(t, 9, repo.policy.StartHour)
	assert.Equal(t, 18, repo.policy.EndHour)
}

func TestService_Update_BoundaryHours(t *testing.T) {
	repo := &fakeScheduleRepo{policy: &domain.WorkingHours{StartHour: 9, EndHour: 18, SlotDurationMinutes: 30}}
	svc := NewService(repo, nopLogger{})

	// Границы 0 и 24 допустимы
	resp, err := svc.Update(context.Background(), &models.UpdateScheduleRequest{
		StartHour: ptr.Ptr(0),
		EndHour:   ptr.Ptr(24),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StartHour)
	assert.Equal(t, 24, resp.EndHour)
}
