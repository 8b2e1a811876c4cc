package models

import (
	"errors"
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetOwnerBookingsRequest запрос на получение бронирований всех турфов владельца
type GetOwnerBookingsRequest struct {
	OwnerID          int64      `json:"ownerId"`
	TurfID           *int64     `json:"turfId,omitempty"`           // Фильтр по конкретному турфу (опционально)
	Date             *time.Time `json:"date,omitempty"`             // Фильтр по дате (опционально)
	SportName        *string    `json:"sportName,omitempty"`        // Фильтр по виду спорта (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64    `json:"id"`
	Reference   string   `json:"reference"`
	UserID      int64    `json:"userId"`
	UserName    string   `json:"userName"`
	TurfID      int64    `json:"turfId"`
	BookingDate string   `json:"bookingDate"` // "2026-09-15"
	SlotLabel   string   `json:"slotLabel"`   // "10:00 - 11:00"
	SportName   string   `json:"sportName"`
	Price       *float64 `json:"price,omitempty"`
	Status      string   `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Статус в ответе производный: активное бронирование с прошедшим слотом
// отдаётся как completed, в хранилище статус не меняется
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference.String(),
		UserID:             b.UserID,
		UserName:           b.UserName,
		TurfID:             b.TurfID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		SlotLabel:          b.SlotLabel.Trimmed().String(),
		SportName:          b.SportName,
		Price:              b.Price,
		Status:             string(b.DisplayStatus(now)),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByOwner,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
