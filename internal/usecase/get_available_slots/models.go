package get_available_slots

import (
	"time"

	"github.com/m04kA/Turf-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TurfID    int64     // ID турфа
	SportName string    // Название вида спорта
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа с картиной доступности на день
type Response struct {
	TurfID         int64              // ID турфа
	SportName      string             // Название вида спорта
	Date           time.Time          // Дата, на которую запрашивались слоты
	AvailableSlots []Slot             // Свободные слоты с ценой
	BookedSlots    []domain.SlotLabel // Занятые слоты (только метки)
}

// Slot свободный временной слот с разрешённой ценой
type Slot struct {
	Time  domain.SlotLabel // Метка слота, например "10:00 - 11:00"
	Price *float64         // Цена по тарифной сетке, nil если тариф не задан
}
