package domain

import (
	"time"

	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// WorkingHourWindow represents a recurring weekly availability window of a salon.
// A window names the weekdays it applies to, the services it covers and the
// staff members eligible to work it. Windows are created and deleted by salon
// administrators; the scheduling engine only reads them.
//
// Invariant: OpenTime < CloseTime.
type WorkingHourWindow struct {
	ID         int64
	SalonID    int64
	Weekdays   []int   // 0-6, воскресенье = 0
	ServiceIDs []int64 // специализации, которые покрывает окно
	StaffIDs   []int64 // мастера, допущенные к работе в окне
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppliesToWeekday returns true if the window covers the given weekday (0-6, Sunday = 0)
func (w *WorkingHourWindow) AppliesToWeekday(weekday int) bool {
	for _, d := range w.Weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}

// CoversService returns true if the window covers the given service specialty
func (w *WorkingHourWindow) CoversService(serviceID int64) bool {
	for _, id := range w.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// HasStaff returns true if the staff member is eligible to work this window
func (w *WorkingHourWindow) HasStaff(staffID int64) bool {
	for _, id := range w.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// WeekdayToDate maps a weekday index (0-6, Sunday = 0) onto a concrete date
// within the week starting at weekStart. Pure function of its inputs: no
// shared calendar state.
func WeekdayToDate(weekStart time.Time, weekday int) time.Time {
	offset := (weekday - int(weekStart.Weekday()) + 7) % 7
	return weekStart.AddDate(0, 0, offset)
}
