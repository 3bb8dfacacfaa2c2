package create_booking

import "errors"

var (
	// ErrPostNotFound возвращается, когда явно указанный пост не найден
	ErrPostNotFound = errors.New("create_booking: post not found")

	// ErrPostDisabled возвращается, когда пост выключен
	ErrPostDisabled = errors.New("create_booking: post is disabled")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrUserNotFound возвращается, когда клиент не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не лежит
	// на сетке слотов поста (вне рабочих часов или не кратно интервалу)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotClosed возвращается, когда время закрыто вручную
	ErrSlotClosed = errors.New("create_booking: slot is closed")

	// ErrSlotInPast возвращается, когда запрошенный момент уже прошёл
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrSlotTaken возвращается, когда слот занят другим активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
