package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Turf-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	UserName  string           // Имя пользователя (денормализуется в запись)
	TurfID    int64            // ID турфа
	Date      time.Time        // Дата бронирования (без времени)
	SlotLabel domain.SlotLabel // Метка слота, например "10:00 - 11:00"
	SportName string           // Название вида спорта
	Price     *float64         // Цена, которую видел клиент (опционально, только для сверки)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	Reference uuid.UUID        // Внешний идентификатор бронирования
	UserID    int64            // ID пользователя
	UserName  string           // Имя пользователя
	TurfID    int64            // ID турфа
	Date      time.Time        // Дата бронирования
	SlotLabel domain.SlotLabel // Метка слота
	SportName string           // Название вида спорта
	Price     *float64         // Цена, разрешённая сервером по тарифной сетке
	Status    string           // Статус бронирования (pending)
	CreatedAt time.Time        // Время создания
	UpdatedAt time.Time        // Время обновления
}
