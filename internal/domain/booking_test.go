package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending -> confirmed", StatusPending, StatusConfirmed, true},
		{"pending -> in_progress", StatusPending, StatusInProgress, true},
		{"pending -> completed", StatusPending, StatusCompleted, true},
		{"pending -> cancelled", StatusPending, StatusCancelled, true},
		{"pending -> pending", StatusPending, StatusPending, false},

		{"confirmed -> in_progress", StatusConfirmed, StatusInProgress, true},
		{"confirmed -> completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed -> cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed -> pending", StatusConfirmed, StatusPending, false},

		{"in_progress -> completed", StatusInProgress, StatusCompleted, true},
		{"in_progress -> cancelled", StatusInProgress, StatusCancelled, true},
		{"in_progress -> confirmed", StatusInProgress, StatusConfirmed, false},
		{"in_progress -> pending", StatusInProgress, StatusPending, false},

		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed -> pending", StatusCompleted, StatusPending, false},
		{"completed -> in_progress", StatusCompleted, StatusInProgress, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled -> confirmed", StatusCancelled, StatusConfirmed, false},
		{"cancelled -> completed", StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}
	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestControlStatus_IsValid(t *testing.T) {
	for _, s := range []ControlStatus{ControlNone, ControlAwaitingCall, ControlContacted, ControlIssue} {
		assert.True(t, s.IsValid(), "control status %s should be valid", s)
	}
	assert.False(t, ControlStatus("done").IsValid())
}

func TestBooking_IsActive(t *testing.T) {
	// Отменённое бронирование освобождает слот, все остальные статусы занимают
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted} {
		b := &Booking{Status: s}
		assert.True(t, b.IsActive(), "status %s should occupy its slot", s)
	}
	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsCancelled())
}

func TestEventForStatus(t *testing.T) {
	event, ok := EventForStatus(StatusConfirmed)
	assert.True(t, ok)
	assert.Equal(t, EventConfirmed, event)

	event, ok = EventForStatus(StatusCancelled)
	assert.True(t, ok)
	assert.Equal(t, EventCancelled, event)

	_, ok = EventForStatus(StatusPending)
	assert.False(t, ok)
}

func TestIsAllowedInterval(t *testing.T) {
	for _, v := range []int{30, 60, 90, 120} {
		assert.True(t, IsAllowedInterval(v))
	}
	for _, v := range []int{0, 15, 45, 100, -30} {
		assert.False(t, IsAllowedInterval(v))
	}
}
