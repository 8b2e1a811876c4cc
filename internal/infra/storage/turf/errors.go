package turf

import "errors"

var (
	// ErrTurfNotFound возвращается, когда турф не найден
	ErrTurfNotFound = errors.New("turf.repository: turf not found")

	// ErrSportNotFound возвращается, когда вид спорта не найден у турфа
	ErrSportNotFound = errors.New("turf.repository: sport not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("turf.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("turf.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("turf.repository: failed to scan row")
)
