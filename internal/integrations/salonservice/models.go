package salonservice

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// ServiceStatus статус услуги в каталоге салона
type ServiceStatus string

const (
	ServiceAvailable   ServiceStatus = "available"
	ServiceUnavailable ServiceStatus = "unavailable"
	ServiceDeleted     ServiceStatus = "deleted"
)

// Salon модель салона из справочного сервиса
type Salon struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// Service модель услуги из справочного сервиса.
// Справочник до сих пор отдаёт длительность в легаси-формате "HH:MM"
// (время-как-длительность); при декодировании она сразу переводится
// в минуты, внутри сервиса легаси-формат не используется.
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	Price           float64
	DurationMinutes int
	Status          ServiceStatus
}

// IsBookable returns true if the service can be offered for booking
func (s *Service) IsBookable() bool {
	return s.Status == ServiceAvailable
}

type serviceDTO struct {
	ID       int64         `json:"id"`
	SalonID  int64         `json:"salon_id"`
	Name     string        `json:"name"`
	Price    float64       `json:"price"`
	Duration string        `json:"duration"` // "HH:MM"
	Status   ServiceStatus `json:"status"`
}

// UnmarshalJSON декодирует услугу, переводя легаси-длительность в минуты
func (s *Service) UnmarshalJSON(data []byte) error {
	var dto serviceDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	minutes, err := types.TimeString(dto.Duration).Minutes()
	if err != nil {
		return fmt.Errorf("invalid service duration %q: %w", dto.Duration, err)
	}

	s.ID = dto.ID
	s.SalonID = dto.SalonID
	s.Name = dto.Name
	s.Price = dto.Price
	s.DurationMinutes = minutes
	s.Status = dto.Status

	return nil
}

// MarshalJSON кодирует услугу обратно в формат справочника (для кэша)
func (s Service) MarshalJSON() ([]byte, error) {
	ts, err := types.TimeString("00:00").AddMinutes(s.DurationMinutes)
	if err != nil {
		return nil, err
	}

	return json.Marshal(serviceDTO{
		ID:       s.ID,
		SalonID:  s.SalonID,
		Name:     s.Name,
		Price:    s.Price,
		Duration: ts.String(),
		Status:   s.Status,
	})
}

// StaffMember модель мастера из справочного сервиса
type StaffMember struct {
	ID          int64  `json:"id"`
	SalonID     int64  `json:"salon_id"`
	DisplayName string `json:"display_name"`
	Photo       string `json:"photo"`
}

// ErrorResponse модель ошибки от справочного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
