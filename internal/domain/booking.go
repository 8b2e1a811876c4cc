package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByOwner BookingStatus = "cancelled_by_owner"

	// StatusCompleted is derived at read time for bookings whose slot has
	// fully passed. It is never persisted; the stored status stays pending.
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a reserved slot on a turf. Date, slot label, sport
// and price are immutable once booked; only the status can change.
type Booking struct {
	ID          int64
	Reference   uuid.UUID
	UserID      int64
	UserName    string
	TurfID      int64
	BookingDate time.Time
	SlotLabel   SlotLabel
	SportName   string
	Price       *float64
	Status      BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByOwner
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return !b.IsCancelled()
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// DisplayStatus returns the status as presented to callers: an active
// booking whose slot has fully passed reads as completed.
func (b *Booking) DisplayStatus(now time.Time) BookingStatus {
	if b.IsCancelled() {
		return b.Status
	}

	end, err := b.SlotLabel.EndTime()
	if err != nil {
		return b.Status
	}

	endMinutes, err := end.Minutes()
	if err != nil {
		return b.Status
	}

	slotEnd := time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		endMinutes/60, endMinutes%60, 0, 0, now.Location(),
	)

	if !slotEnd.After(now) {
		return StatusCompleted
	}
	return b.Status
}

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	TurfID           *int64         // Конкретный турф (опционально)
	TurfIDs          []int64        // Несколько турфов (для владельца)
	Date             *time.Time     // Конкретная дата (опционально)
	SportName        *string        // Фильтр по виду спорта (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
