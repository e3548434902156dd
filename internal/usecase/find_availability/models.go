package find_availability

import (
	"time"

	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// Request модель запроса на поиск доступных слотов
type Request struct {
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги
	Date      time.Time // Дата начала поиска (без времени)
	StaffID   *int64    // Опциональный фильтр по конкретному мастеру
}

// Response модель ответа резолвера доступности
type Response struct {
	SalonID   int64          // ID салона
	ServiceID int64          // ID услуги
	Staff     []StaffSummary // Мастера, встречающиеся в найденных днях
	Days      []DaySchedule  // Дни с хотя бы одним свободным слотом, по порядку
}

// StaffSummary сводка мастера для отображения
type StaffSummary struct {
	ID        int64  // ID мастера
	FirstName string // Первое слово отображаемого имени
	Photo     string // URL фотографии
}

// DaySchedule доступность одного дня
type DaySchedule struct {
	Date         time.Time                    // Дата
	SlotsByStaff map[int64][]types.TimeString // Свободные слоты по мастерам
}

// Config параметры движка расписания
type Config struct {
	SlotDurationMinutes int // Шаг сетки слотов
	MaxLookaheadDays    int // Максимальная глубина перебора дней
	MaxQualifyingDays   int // Сколько дней с доступностью нужно набрать
}
