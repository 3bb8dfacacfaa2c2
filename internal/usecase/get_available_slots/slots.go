package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// generateSlots генерирует слоты поста на день
// Шаги сетки идут от начала рабочих часов с фиксированным шагом интервала поста;
// слот, конец которого выходит за время закрытия, не эмитится.
// Каждый кандидат помечается is_closed по четырём независимым причинам:
// пост выключен, время закрыто вручную, слот занят активным бронированием,
// момент начала уже в прошлом
func generateSlots(
	post *domain.Post,
	policy domain.WorkingHours,
	closedTimes []types.TimeString,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
) ([]domain.Slot, error) {
	startTime, endTime := post.EffectiveHours(policy)

	interval := post.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultSlotDurationMinutes
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return nil, err
	}
	endMinutes, err := endTime.Minutes()
	if err != nil {
		return nil, err
	}

	closedSet := make(map[types.TimeString]struct{}, len(closedTimes))
	for _, t := range closedTimes {
		closedSet[t] = struct{}{}
	}

	occupied := occupiedInstants(bookings)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	slots := make([]domain.Slot, 0)
	for cur := startMinutes; cur+interval <= endMinutes; cur += interval {
		timeOfDay, err := types.NewTimeStringFromMinutes(cur)
		if err != nil {
			return nil, err
		}

		instant := day.Add(time.Duration(cur) * time.Minute)

		closed := false
		switch {
		case !post.IsEnabled:
			closed = true
		case isManuallyClosed(closedSet, timeOfDay):
			closed = true
		case isOccupied(occupied, instant):
			closed = true
		case instant.Before(now):
			closed = true
		}

		slots = append(slots, domain.Slot{
			Time:     instant,
			IsClosed: closed,
		})
	}

	return slots, nil
}

// occupiedInstants собирает моменты начала активных бронирований
// Отменённые бронирования слот не занимают
func occupiedInstants(bookings []*domain.Booking) map[time.Time]struct{} {
	occupied := make(map[time.Time]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		occupied[b.DateTime.UTC()] = struct{}{}
	}
	return occupied
}

func isManuallyClosed(closedSet map[types.TimeString]struct{}, timeOfDay types.TimeString) bool {
	_, ok := closedSet[timeOfDay]
	return ok
}

func isOccupied(occupied map[time.Time]struct{}, instant time.Time) bool {
	_, ok := occupied[instant.UTC()]
	return ok
}
