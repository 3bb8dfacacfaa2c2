package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID  int64   `json:"serviceId"`
	PostID     *int64  `json:"postId,omitempty"`     // nil - пост по умолчанию
	EmployeeID *int64  `json:"employeeId,omitempty"` // опционально
	DateTime   string  `json:"dateTime"`             // ISO 8601, UTC
	Notes      *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	ServiceID  int64  `json:"serviceId"`
	PostID     int64  `json:"postId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	DateTime   string `json:"dateTime"`
	Status     string `json:"status"`

	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	UserName        string  `json:"userName"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	dateTime, err := time.Parse(time.RFC3339, r.DateTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:     userID,
		ServiceID:  r.ServiceID,
		PostID:     r.PostID,
		EmployeeID: r.EmployeeID,
		DateTime:   dateTime.UTC(),
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ServiceID:       resp.ServiceID,
		PostID:          resp.PostID,
		EmployeeID:      resp.EmployeeID,
		DateTime:        resp.DateTime.Format(time.RFC3339),
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		DurationMinutes: resp.DurationMinutes,
		UserName:        resp.UserName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
