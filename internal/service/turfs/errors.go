package turfs

import "errors"

var (
	// ErrTurfNotFound возвращается, когда турф не найден
	ErrTurfNotFound = errors.New("turf not found")

	// ErrSportNotFound возвращается, когда вид спорта не найден у турфа
	ErrSportNotFound = errors.New("sport not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidPricing возвращается при некорректной тарифной сетке
	ErrInvalidPricing = errors.New("invalid pricing configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
