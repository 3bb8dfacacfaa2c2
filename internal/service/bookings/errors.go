package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus возвращается при неизвестном статусе из запроса
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidControlStatus возвращается при неизвестном контрольном статусе
	ErrInvalidControlStatus = errors.New("invalid control status")

	// ErrInvalidTransition возвращается при переходе, запрещённом матрицей статусов
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
