package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if len(req.ExtraServiceIDs) > domain.MaxExtraServices {
		return fmt.Errorf("%w: too many extra services (max %d)", ErrInvalidInput, domain.MaxExtraServices)
	}

	seen := make(map[int64]struct{}, len(req.ExtraServiceIDs))
	for _, id := range req.ExtraServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: extraServiceID must be positive", ErrInvalidInput)
		}
		if id == req.ServiceID {
			return fmt.Errorf("%w: extra service duplicates the primary service", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate extra service id=%d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStartNotInPast отклоняет записи на уже прошедшее время.
// Запись ровно на текущую минуту допускается - отклоняется только строго прошедшее.
func validateStartNotInPast(date time.Time, startTime types.TimeString, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return fmt.Errorf("%w: requested start %s is before current time %s", ErrPastStartTime, startTime, currentTime)
	}

	return nil
}

// hasOverlap проверяет пересечение нового интервала с активными записями мастера.
// Симметричная интервальная проверка: конфликт есть при existing.start < new.end
// и existing.end > new.start - ловится и запись, начавшаяся раньше нового
// интервала, но заканчивающаяся внутри него. Строгие неравенства: записи
// впритык (конец одной равен началу другой) не конфликтуют.
func hasOverlap(
	newStart types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
) (bool, error) {
	newEnd, err := newStart.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, appt := range appointments {
		// Пропускаем неактивные записи
		if !appt.IsActive() {
			continue
		}

		existingEnd, err := appt.EndTime()
		if err != nil {
			return false, err
		}

		if appt.StartTime.IsBefore(newEnd) && existingEnd.IsAfter(newStart) {
			return true, nil
		}
	}

	return false, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
