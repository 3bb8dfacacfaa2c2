package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidControlStatus возвращается при некорректном контрольном статусе
	ErrInvalidControlStatus = errors.New("invalid control status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос на получение бронирований с фильтрацией
type ListBookingsRequest struct {
	PostID          *int64     `json:"postId,omitempty"`          // Фильтр по посту (опционально)
	Date            *time.Time `json:"date,omitempty"`            // Бронирования на дату (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateControlRequest запрос на смену контрольного статуса
type UpdateControlRequest struct {
	ControlStatus  string  `json:"controlStatus"`
	ControlComment *string `json:"controlComment,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		PostID:          r.PostID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	ServiceID  int64     `json:"serviceId"`
	PostID     int64     `json:"postId"`
	EmployeeID *int64    `json:"employeeId,omitempty"`
	DateTime   time.Time `json:"dateTime"` // UTC, ISO 8601
	Status     string    `json:"status"`

	ControlStatus  string  `json:"controlStatus"`
	ControlComment *string `json:"controlComment,omitempty"`

	// Денормализованные данные
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	UserName        string  `json:"userName"`

	Notes *string `json:"notes,omitempty"`

	InProgressStartedAt *time.Time `json:"inProgressStartedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		ServiceID:           b.ServiceID,
		PostID:              b.PostID,
		EmployeeID:          b.EmployeeID,
		DateTime:            b.DateTime,
		Status:              string(b.Status),
		ControlStatus:       string(b.ControlStatus),
		ControlComment:      b.ControlComment,
		ServiceName:         b.ServiceName,
		ServicePrice:        b.ServicePrice,
		DurationMinutes:     b.DurationMinutes,
		UserName:            b.UserName,
		Notes:               b.Notes,
		InProgressStartedAt: b.InProgressStartedAt,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ToDomainControlStatus конвертирует строку в контрольный статус
func ToDomainControlStatus(s string) (domain.ControlStatus, error) {
	status := domain.ControlStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidControlStatus
	}
	return status, nil
}
