package schedule

import "errors"

var (
	// ErrInvalidHours возвращается при выходе часов за границы 0-24
	// или когда час открытия не раньше часа закрытия
	ErrInvalidHours = errors.New("invalid working hours")

	// ErrInvalidSlotDuration возвращается при неположительной длительности слота
	ErrInvalidSlotDuration = errors.New("invalid slot duration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
