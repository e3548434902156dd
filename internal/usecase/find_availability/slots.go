package find_availability

import (
	"sort"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// generateWindowSlots генерирует слоты окна рабочих часов на указанную дату
// с фиксированным шагом slotDuration.
//
// Слот попадает в результат, только если он целиком помещается до закрытия:
// последний слот начинается строго раньше closeTime и заканчивается не позже.
//
// suppressPast управляет фильтрацией прошедшего времени:
// - true при генерации слотов-кандидатов для клиента (прошедшие не предлагаем);
// - false при разворачивании занятости существующих записей - уже созданная
//   запись продолжает блокировать свой слот, даже если он в прошлом.
func generateWindowSlots(
	openTime, closeTime types.TimeString,
	slotDuration int,
	date time.Time,
	now time.Time,
	suppressPast bool,
) ([]types.TimeString, error) {
	// Защита от некорректного окна (инвариант open < close проверяется при создании)
	if !openTime.IsBefore(closeTime) {
		return []types.TimeString{}, nil
	}

	allSlots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		slotEnd, err := currentSlot.AddMinutes(slotDuration)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot = slotEnd
	}

	if !suppressPast {
		return allSlots, nil
	}

	// Для прошедших дат кандидатов нет
	if isDateInPast(date, now) {
		return []types.TimeString{}, nil
	}

	// Для будущих дат фильтрация не нужна
	if !isSameDay(date, now) {
		return allSlots, nil
	}

	// Сегодня: оставляем только слоты строго позже текущего времени
	currentTime := types.NewTimeString(now)
	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if slot.IsAfter(currentTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// mergeSlots объединяет вклады нескольких окон в один список кандидатов.
// Пересекающиеся окна одного мастера могут дать одинаковые слоты - дубликаты
// убираются, результат отсортирован по времени.
func mergeSlots(existing, extra []types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(existing)+len(extra))
	merged := make([]types.TimeString, 0, len(existing)+len(extra))

	for _, slots := range [][]types.TimeString{existing, extra} {
		for _, slot := range slots {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			merged = append(merged, slot)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].IsBefore(merged[j])
	})

	return merged
}

// groupByStaff группирует записи по мастерам.
// Мастера без записей в результате отсутствуют - для вызывающего это ноль занятости.
func groupByStaff(appointments []*domain.Appointment) map[int64][]*domain.Appointment {
	grouped := make(map[int64][]*domain.Appointment)
	for _, appt := range appointments {
		grouped[appt.StaffID] = append(grouped[appt.StaffID], appt)
	}
	return grouped
}

// subtractOccupied убирает из кандидатов слоты, пересекающиеся с активными
// записями мастера. Проверка интервальная: слот [t, t+slotDuration)
// блокируется записью [start, start+duration) при реальном наложении, а не
// только при точном совпадении начала - запись с длительностью, не кратной
// шагу сетки, блокирует все задетые слоты.
func subtractOccupied(
	candidates []types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
) []types.TimeString {
	if len(appointments) == 0 {
		return candidates
	}

	free := make([]types.TimeString, 0, len(candidates))

	for _, slot := range candidates {
		slotEnd, err := slot.AddMinutes(slotDuration)
		if err != nil {
			continue
		}

		blocked := false
		for _, appt := range appointments {
			if !appt.IsActive() {
				continue
			}

			apptEnd, err := appt.EndTime()
			if err != nil {
				continue
			}

			// Строгие неравенства: граничащие интервалы не конфликтуют
			if appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(slot) {
				blocked = true
				break
			}
		}

		if !blocked {
			free = append(free, slot)
		}
	}

	return free
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
