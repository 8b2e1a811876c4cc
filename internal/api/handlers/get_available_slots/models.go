package get_available_slots

import (
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/Turf-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TurfID         int64           `json:"turfId"`
	Sport          string          `json:"sport"`
	Date           string          `json:"date"`
	AvailableSlots []AvailableSlot `json:"availableSlots"`
	BookedSlots    []string        `json:"bookedSlots"`
}

// AvailableSlot модель временного слота с ценой
type AvailableSlot struct {
	Time  string   `json:"time"` // "10:00 - 11:00"
	Price *float64 `json:"price"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(turfID int64, sport, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TurfID:    turfID,
		SportName: sport,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = AvailableSlot{
			Time:  slot.Time.String(),
			Price: slot.Price,
		}
	}

	booked := make([]string, len(resp.BookedSlots))
	for i, label := range resp.BookedSlots {
		booked[i] = label.String()
	}

	return &AvailableSlotsResponse{
		TurfID:         resp.TurfID,
		Sport:          resp.SportName,
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
		BookedSlots:    booked,
	}
}
