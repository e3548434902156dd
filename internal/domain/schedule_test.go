package domain

import (
	"testing"
	"time"
)

func TestWeekdayToDate(t *testing.T) {
	// Понедельник
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		weekday  int
		expected string
	}{
		{weekday: 1, expected: "2026-03-02"}, // тот же понедельник
		{weekday: 3, expected: "2026-03-04"},
		{weekday: 6, expected: "2026-03-07"},
		{weekday: 0, expected: "2026-03-08"}, // воскресенье уходит в конец недели
	}

	for _, c := range cases {
		got := WeekdayToDate(weekStart, c.weekday)
		if got.Format(DateFormat) != c.expected {
			t.Errorf("WeekdayToDate(%s, %d) = %s, want %s",
				weekStart.Format(DateFormat), c.weekday, got.Format(DateFormat), c.expected)
		}
	}
}

func TestWorkingHourWindow_Predicates(t *testing.T) {
	w := WorkingHourWindow{
		Weekdays:   []int{1, 3, 5},
		ServiceIDs: []int64{10, 20},
		StaffIDs:   []int64{7},
		OpenTime:   "09:00",
		CloseTime:  "12:00",
	}

	if !w.AppliesToWeekday(3) || w.AppliesToWeekday(0) {
		t.Error("AppliesToWeekday mismatch")
	}
	if !w.CoversService(20) || w.CoversService(30) {
		t.Error("CoversService mismatch")
	}
	if !w.HasStaff(7) || w.HasStaff(8) {
		t.Error("HasStaff mismatch")
	}
}

func TestAppointment_EndTime(t *testing.T) {
	a := Appointment{StartTime: "10:00", DurationMinutes: 90}
	end, err := a.EndTime()
	if err != nil {
		t.Fatalf("EndTime error: %v", err)
	}
	if end.String() != "11:30" {
		t.Errorf("EndTime = %s, want 11:30", end)
	}
}
