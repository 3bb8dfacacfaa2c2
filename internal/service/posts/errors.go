package posts

import "errors"

var (
	// ErrPostNotFound возвращается, когда пост не найден
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidInterval возвращается при недопустимом шаге сетки слотов
	ErrInvalidInterval = errors.New("invalid slot interval")

	// ErrInvalidTimeRange возвращается, когда время открытия не раньше закрытия
	ErrInvalidTimeRange = errors.New("invalid working hours range")

	// ErrPostHasBookings возвращается при удалении поста, на который есть бронирования
	ErrPostHasBookings = errors.New("post has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("posts service: internal error")
)
