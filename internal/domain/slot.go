package domain

import (
	"time"

	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// DaySchedule represents one qualifying day of the availability lookup:
// the date plus the open slot start times per eligible staff member.
type DaySchedule struct {
	Date         time.Time
	SlotsByStaff map[int64][]types.TimeString
}

// HasAvailability returns true if at least one staff member has an open slot
func (d *DaySchedule) HasAvailability() bool {
	for _, slots := range d.SlotsByStaff {
		if len(slots) > 0 {
			return true
		}
	}
	return false
}

// StaffSummary is the display projection of a staff member appearing in the
// availability response: first name token plus photo.
type StaffSummary struct {
	ID        int64
	FirstName string
	Photo     string
}
