package create_booking

import (
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	createBooking "github.com/m04kA/Turf-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserName string   `json:"userName"`
	TurfID   int64    `json:"turfId"`
	Date     string   `json:"date"` // "2026-09-15"
	Slot     string   `json:"slot"` // "10:00 - 11:00"
	Sport    string   `json:"sport"`
	Price    *float64 `json:"price,omitempty"` // Цена, которую видел клиент (для сверки)
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64    `json:"id"`
	Reference string   `json:"reference"`
	UserID    int64    `json:"userId"`
	UserName  string   `json:"userName"`
	TurfID    int64    `json:"turfId"`
	Date      string   `json:"date"`
	Slot      string   `json:"slot"`
	Sport     string   `json:"sport"`
	Price     *float64 `json:"price"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// ID пользователя берется из контекста аутентификации, не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		UserName:  r.UserName,
		TurfID:    r.TurfID,
		Date:      bookingDate,
		SlotLabel: domain.SlotLabel(r.Slot),
		SportName: r.Sport,
		Price:     r.Price,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Reference: resp.Reference.String(),
		UserID:    resp.UserID,
		UserName:  resp.UserName,
		TurfID:    resp.TurfID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slot:      resp.SlotLabel.String(),
		Sport:     resp.SportName,
		Price:     resp.Price,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
