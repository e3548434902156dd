package create_schedule_window

import (
	"github.com/m04kA/SBS-SalonService/internal/service/schedule/models"
)

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	Weekdays   []int   `json:"weekdays"`   // 0-6, воскресенье = 0
	ServiceIDs []int64 `json:"serviceIds"` // специализации, которые покрывает окно
	StaffIDs   []int64 `json:"staffIds"`   // мастера, допущенные к работе в окне
	OpenTime   string  `json:"openTime"`   // "09:00"
	CloseTime  string  `json:"closeTime"`  // "18:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса.
// UserID приходит из контекста аутентификации, salonID - из URL.
func (r *CreateWindowRequest) ToServiceRequest(salonID, userID int64) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		UserID:     userID,
		SalonID:    salonID,
		Weekdays:   r.Weekdays,
		ServiceIDs: r.ServiceIDs,
		StaffIDs:   r.StaffIDs,
		OpenTime:   r.OpenTime,
		CloseTime:  r.CloseTime,
	}
}
