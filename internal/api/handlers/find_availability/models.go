package find_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	findAvailability "github.com/m04kA/SBS-SalonService/internal/usecase/find_availability"
)

// StaffSummaryResponse сводка мастера в HTTP ответе
type StaffSummaryResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	Photo     string `json:"photo,omitempty"`
}

// DayScheduleResponse доступность одного дня в HTTP ответе.
// Ключи slotsByStaff - ID мастеров (JSON не умеет числовые ключи объектов).
type DayScheduleResponse struct {
	Date         string              `json:"date"` // "2025-10-15"
	SlotsByStaff map[string][]string `json:"slotsByStaff"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID   int64                  `json:"salonId"`
	ServiceID int64                  `json:"serviceId"`
	Staff     []StaffSummaryResponse `json:"staff"`
	Days      []DayScheduleResponse  `json:"days"`
}

// ToUseCaseRequest парсит параметры запроса в модель use case
func ToUseCaseRequest(salonID, serviceID int64, dateStr string, staffID *int64) (*findAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &findAvailability.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
		StaffID:   staffID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailability.Response) *AvailabilityResponse {
	staff := make([]StaffSummaryResponse, len(resp.Staff))
	for i, s := range resp.Staff {
		staff[i] = StaffSummaryResponse{
			ID:        s.ID,
			FirstName: s.FirstName,
			Photo:     s.Photo,
		}
	}

	days := make([]DayScheduleResponse, len(resp.Days))
	for i, day := range resp.Days {
		slots := make(map[string][]string, len(day.SlotsByStaff))
		for staffID, staffSlots := range day.SlotsByStaff {
			strs := make([]string, len(staffSlots))
			for j, slot := range staffSlots {
				strs[j] = slot.String()
			}
			slots[strconv.FormatInt(staffID, 10)] = strs
		}

		days[i] = DayScheduleResponse{
			Date:         day.Date.Format(domain.DateFormat),
			SlotsByStaff: slots,
		}
	}

	return &AvailabilityResponse{
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		Staff:     staff,
		Days:      days,
	}
}
