package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.PostID != nil && *req.PostID <= 0 {
		return fmt.Errorf("%w: postID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.DateTime.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlot проверяет, что запрошенный момент - валидный открытый слот поста.
// Порядок проверок фиксирован: сетка/часы, прошлое, ручное закрытие, занятость
func validateSlot(
	post *domain.Post,
	policy domain.WorkingHours,
	closedTimes []types.TimeString,
	dayBookings []*domain.Booking,
	instant time.Time,
	now time.Time,
) error {
	startTime, endTime := post.EffectiveHours(policy)

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid post start time: %v", ErrInternal, err)
	}
	endMinutes, err := endTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid post end time: %v", ErrInternal, err)
	}

	interval := post.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultSlotDurationMinutes
	}

	instant = instant.UTC()
	slotMinutes := instant.Hour()*60 + instant.Minute()

	// Момент должен лежать на сетке: начинаться в рабочие часы,
	// быть кратным интервалу от открытия и целиком помещаться до закрытия
	if instant.Second() != 0 || instant.Nanosecond() != 0 {
		return fmt.Errorf("%w: time must be aligned to slot grid", ErrInvalidTimeSlot)
	}
	if slotMinutes < startMinutes || slotMinutes+interval > endMinutes {
		return fmt.Errorf("%w: time %02d:%02d is outside working hours %s-%s",
			ErrInvalidTimeSlot, instant.Hour(), instant.Minute(), startTime, endTime)
	}
	if (slotMinutes-startMinutes)%interval != 0 {
		return fmt.Errorf("%w: time %02d:%02d is not aligned to %d minute grid",
			ErrInvalidTimeSlot, instant.Hour(), instant.Minute(), interval)
	}

	if instant.Before(now) {
		return fmt.Errorf("%w: %s", ErrSlotInPast, instant.Format(time.RFC3339))
	}

	timeOfDay := types.NewTimeString(instant)
	for _, closed := range closedTimes {
		if closed == timeOfDay {
			return fmt.Errorf("%w: %s", ErrSlotClosed, timeOfDay)
		}
	}

	for _, b := range dayBookings {
		if b.IsActive() && b.DateTime.UTC().Equal(instant) {
			return fmt.Errorf("%w: %s", ErrSlotTaken, instant.Format(time.RFC3339))
		}
	}

	return nil
}
