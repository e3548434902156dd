package create_appointment

import (
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	createAppointment "github.com/m04kA/SBS-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID         int64   `json:"salonId"`
	ServiceID       int64   `json:"serviceId"`
	ExtraServiceIDs []int64 `json:"extraServiceIds,omitempty"`
	StaffID         int64   `json:"staffId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	ClientID        int64   `json:"clientId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	ExtraServiceIDs []int64 `json:"extraServiceIds,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	PriceTotal      float64 `json:"priceTotal"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// ClientID приходит из контекста аутентификации, не из тела запроса.
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:        clientID,
		SalonID:         r.SalonID,
		ServiceID:       r.ServiceID,
		ExtraServiceIDs: r.ExtraServiceIDs,
		StaffID:         r.StaffID,
		Date:            date,
		StartTime:       startTime,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		SalonID:         resp.SalonID,
		ClientID:        resp.ClientID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		ExtraServiceIDs: resp.ExtraServiceIDs,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		PriceTotal:      resp.PriceTotal,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
