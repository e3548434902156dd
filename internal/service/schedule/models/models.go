package models

import (
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна рабочих часов
type CreateWindowRequest struct {
	UserID     int64   `json:"userId"`
	SalonID    int64   `json:"salonId"`
	Weekdays   []int   `json:"weekdays"`   // 0-6, воскресенье = 0
	ServiceIDs []int64 `json:"serviceIds"` // специализации, которые покрывает окно
	StaffIDs   []int64 `json:"staffIds"`   // мастера, допущенные к работе в окне
	OpenTime   string  `json:"openTime"`   // "09:00"
	CloseTime  string  `json:"closeTime"`  // "18:00"
}

// ToDomainWindow конвертирует request в domain модель
func (r *CreateWindowRequest) ToDomainWindow() *domain.WorkingHourWindow {
	return &domain.WorkingHourWindow{
		SalonID:    r.SalonID,
		Weekdays:   r.Weekdays,
		ServiceIDs: r.ServiceIDs,
		StaffIDs:   r.StaffIDs,
		OpenTime:   types.TimeString(r.OpenTime),
		CloseTime:  types.TimeString(r.CloseTime),
	}
}

// Response модели

// WindowResponse ответ с данными окна рабочих часов
type WindowResponse struct {
	ID         int64   `json:"id"`
	SalonID    int64   `json:"salonId"`
	Weekdays   []int   `json:"weekdays"`
	ServiceIDs []int64 `json:"serviceIds"`
	StaffIDs   []int64 `json:"staffIds"`
	OpenTime   string  `json:"openTime"`
	CloseTime  string  `json:"closeTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон рабочих часов
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.WorkingHourWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:         w.ID,
		SalonID:    w.SalonID,
		Weekdays:   w.Weekdays,
		ServiceIDs: w.ServiceIDs,
		StaffIDs:   w.StaffIDs,
		OpenTime:   w.OpenTime.String(),
		CloseTime:  w.CloseTime.String(),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.WorkingHourWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}
