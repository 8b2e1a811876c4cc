package create_booking

import "errors"

var (
	// ErrTurfNotFound возвращается, когда турф не найден
	ErrTurfNotFound = errors.New("create_booking: turf not found")

	// ErrSportNotOffered возвращается, когда турф не предлагает указанный вид спорта
	ErrSportNotOffered = errors.New("create_booking: sport is not offered at this turf")

	// ErrSportUnavailable возвращается, когда вид спорта закрыт для бронирования
	ErrSportUnavailable = errors.New("create_booking: sport is not available for booking")

	// ErrInvalidDate возвращается при некорректной дате бронирования (в прошлом)
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidSlot возвращается, когда метка слота не входит в актуальную
	// сетку слотов турфа - например, владелец изменил часы работы после того,
	// как клиент получил список слотов
	ErrInvalidSlot = errors.New("create_booking: invalid slot for current turf configuration")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot already booked")

	// ErrPriceMismatch возвращается, когда цена клиента расходится с тарифной сеткой
	ErrPriceMismatch = errors.New("create_booking: price does not match current pricing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
