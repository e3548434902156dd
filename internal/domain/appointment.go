package domain

import (
	"time"

	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusActive   AppointmentStatus = "active"
	StatusInactive AppointmentStatus = "inactive"
)

// Appointment represents a committed salon appointment.
// DurationMinutes and PriceTotal are snapshots computed at commit time from
// the primary service plus the extra services, so later catalog edits do not
// change booked history or break the overlap invariant.
//
// Invariant: for one staff member, the [StartTime, StartTime+Duration)
// intervals of any two active appointments on the same date must not overlap.
type Appointment struct {
	ID              int64
	SalonID         int64
	ClientID        int64
	StaffID         int64
	ServiceID       int64
	ExtraServiceIDs []int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized snapshots for history
	ServiceName string
	PriceTotal  float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}

// CanBeCancelled returns true if the appointment can be soft-cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusActive
}

// EndTime returns the exclusive end of the occupied interval
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	SalonID         *int64           // Фильтр по салону
	ClientID        *int64           // Фильтр по клиенту
	StaffIDs        []int64          // Фильтр по мастерам (batched, один запрос на всех)
	StartDate       *time.Time       // Начало периода (включительно)
	EndDate         *time.Time       // Конец периода (включительно)
	Status          *AppointmentStatus // Фильтр по статусу
	IncludeInactive bool             // Включать ли отменённые записи
}
