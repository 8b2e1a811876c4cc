package create_booking

import (
	"fmt"
	"math"
	"strings"
)

// priceTolerance допуск при сверке цены клиента с серверной
const priceTolerance = 0.01

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.UserName) == "" {
		return fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}

	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(string(req.SlotLabel)) == "" {
		return fmt.Errorf("%w: slot label is required", ErrInvalidInput)
	}

	if _, err := req.SlotLabel.StartTime(); err != nil {
		return fmt.Errorf("%w: malformed slot label: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.SportName) == "" {
		return fmt.Errorf("%w: sport name is required", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}

// verifyClientPrice сверяет цену, которую видел клиент, с ценой, разрешённой
// сервером по текущей тарифной сетке. Цена клиента опциональна; если она
// передана и расходится с серверной, бронирование отклоняется, чтобы клиент
// не заплатил не ту сумму после смены тарифов
func verifyClientPrice(clientPrice, resolvedPrice *float64) error {
	if clientPrice == nil {
		return nil
	}

	if resolvedPrice == nil {
		return fmt.Errorf("%w: client sent %.2f but slot has no price", ErrPriceMismatch, *clientPrice)
	}

	if math.Abs(*clientPrice-*resolvedPrice) > priceTolerance {
		return fmt.Errorf("%w: client sent %.2f, current price is %.2f", ErrPriceMismatch, *clientPrice, *resolvedPrice)
	}

	return nil
}
