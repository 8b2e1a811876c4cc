package get_available_slots

import "errors"

var (
	// ErrTurfNotFound возвращается, когда турф не найден
	ErrTurfNotFound = errors.New("turf not found")

	// ErrSportNotOffered возвращается, когда турф не предлагает указанный вид спорта
	ErrSportNotOffered = errors.New("sport is not offered at this turf")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
