package create_appointment

import (
	"time"

	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID        int64            // ID клиента
	SalonID         int64            // ID салона
	ServiceID       int64            // ID основной услуги
	ExtraServiceIDs []int64          // ID дополнительных услуг (опционально)
	StaffID         int64            // ID мастера
	Date            time.Time        // Дата записи (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	SalonID         int64            // ID салона
	ClientID        int64            // ID клиента
	StaffID         int64            // ID мастера
	ServiceID       int64            // ID основной услуги
	ExtraServiceIDs []int64          // ID дополнительных услуг
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Суммарная длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные услуг
	ServiceName string  // Название основной услуги
	PriceTotal  float64 // Суммарная цена (основная + дополнительные)
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
