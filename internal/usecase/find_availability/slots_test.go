package find_availability

import (
	"testing"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func equalSlots(got []types.TimeString, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].String() != want[i] {
			return false
		}
	}
	return true
}

func TestGenerateWindowSlots(t *testing.T) {
	// Понедельник в будущем относительно now
	futureDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		open     types.TimeString
		close    types.TimeString
		duration int
		expected []string
	}{
		{
			name:     "morning window, 30 min grid",
			open:     "09:00",
			close:    "12:00",
			duration: 30,
			expected: []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:     "partial trailing slot is not emitted",
			open:     "09:00",
			close:    "10:15",
			duration: 30,
			expected: []string{"09:00", "09:30"},
		},
		{
			name:     "window shorter than one slot",
			open:     "09:00",
			close:    "09:20",
			duration: 30,
			expected: []string{},
		},
		{
			name:     "degenerate window open >= close",
			open:     "12:00",
			close:    "09:00",
			duration: 30,
			expected: []string{},
		},
		{
			name:     "evening window up to midnight boundary",
			open:     "22:00",
			close:    "23:30",
			duration: 45,
			expected: []string{"22:00", "22:45"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := generateWindowSlots(c.open, c.close, c.duration, futureDate, now, true)
			if err != nil {
				t.Fatalf("generateWindowSlots error: %v", err)
			}
			if !equalSlots(got, c.expected) {
				t.Errorf("got %v, want %v", slotStrings(got), c.expected)
			}
		})
	}
}

func TestGenerateWindowSlots_SuppressPast(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	// Сейчас 10:00 этого же дня
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	// suppressPast=true: слот ровно в текущее время тоже исключается
	got, err := generateWindowSlots("09:00", "12:00", 30, today, now, true)
	if err != nil {
		t.Fatalf("generateWindowSlots error: %v", err)
	}
	if !equalSlots(got, []string{"10:30", "11:00", "11:30"}) {
		t.Errorf("suppressPast=true: got %v, want [10:30 11:00 11:30]", slotStrings(got))
	}

	// suppressPast=false: прошедшие слоты сохраняются - занятость уже
	// созданных записей должна учитываться и для прошедшего времени
	got, err = generateWindowSlots("09:00", "12:00", 30, today, now, false)
	if err != nil {
		t.Fatalf("generateWindowSlots error: %v", err)
	}
	if !equalSlots(got, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}) {
		t.Errorf("suppressPast=false: got %v", slotStrings(got))
	}

	// Прошедшая дата с suppressPast=true не дает кандидатов
	yesterday := today.AddDate(0, 0, -1)
	got, err = generateWindowSlots("09:00", "12:00", 30, yesterday, now, true)
	if err != nil {
		t.Fatalf("generateWindowSlots error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("past date: got %v, want empty", slotStrings(got))
	}
}

func TestMergeSlots(t *testing.T) {
	merged := mergeSlots(
		[]types.TimeString{"10:00", "10:30", "11:00"},
		[]types.TimeString{"09:30", "10:30", "11:30"},
	)

	// Дубликаты из пересекающихся окон убраны, порядок по времени
	if !equalSlots(merged, []string{"09:30", "10:00", "10:30", "11:00", "11:30"}) {
		t.Errorf("mergeSlots = %v", slotStrings(merged))
	}
}

func TestSubtractOccupied(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}

	cases := []struct {
		name         string
		appointments []*domain.Appointment
		expected     []string
	}{
		{
			name:         "no appointments",
			appointments: nil,
			expected:     []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "single 30 min appointment removes exactly its slot",
			appointments: []*domain.Appointment{
				{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusActive},
			},
			expected: []string{"09:00", "09:30", "10:30", "11:00", "11:30"},
		},
		{
			name: "appointment not aligned to grid blocks both touched slots",
			appointments: []*domain.Appointment{
				{StartTime: "10:15", DurationMinutes: 30, Status: domain.StatusActive},
			},
			expected: []string{"09:00", "09:30", "11:00", "11:30"},
		},
		{
			name: "long appointment blocks its whole span",
			appointments: []*domain.Appointment{
				{StartTime: "09:30", DurationMinutes: 90, Status: domain.StatusActive},
			},
			expected: []string{"09:00", "11:00", "11:30"},
		},
		{
			name: "inactive appointment frees its slot",
			appointments: []*domain.Appointment{
				{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusInactive},
			},
			expected: []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "adjacent appointment does not block the neighbouring slot",
			appointments: []*domain.Appointment{
				{StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusActive},
			},
			expected: []string{"09:30", "10:00", "10:30", "11:00", "11:30"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := subtractOccupied(candidates, 30, c.appointments)
			if !equalSlots(got, c.expected) {
				t.Errorf("got %v, want %v", slotStrings(got), c.expected)
			}
		})
	}
}

func TestGroupByStaff(t *testing.T) {
	appointments := []*domain.Appointment{
		{ID: 1, StaffID: 7},
		{ID: 2, StaffID: 8},
		{ID: 3, StaffID: 7},
	}

	grouped := groupByStaff(appointments)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 staff groups, got %d", len(grouped))
	}
	if len(grouped[7]) != 2 || len(grouped[8]) != 1 {
		t.Errorf("unexpected grouping: staff7=%d, staff8=%d", len(grouped[7]), len(grouped[8]))
	}
	if _, ok := grouped[9]; ok {
		t.Error("staff without appointments must be absent from the map")
	}
}
