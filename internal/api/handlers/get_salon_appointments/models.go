package get_salon_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/internal/service/appointments/models"
)

// ToServiceRequest парсит query параметры в модель сервиса
func ToServiceRequest(salonID, userID int64, staffIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{
		UserID:          userID,
		SalonID:         salonID,
		IncludeInactive: includeInactiveStr == "true",
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}
