package types

import (
	"testing"
	"time"
)

func TestTimeString_Validate(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{value: "00:00", valid: true},
		{value: "09:30", valid: true},
		{value: "23:59", valid: true},
		{value: "24:00", valid: false},
		{value: "9:30", valid: false},
		{value: "09:60", valid: false},
		{value: "09-30", valid: false},
		{value: "", valid: false},
		{value: "abcde", valid: false},
	}

	for _, c := range cases {
		err := TimeString(c.value).Validate()
		if c.valid && err != nil {
			t.Errorf("Validate(%q) = %v, want nil", c.value, err)
		}
		if !c.valid && err == nil {
			t.Errorf("Validate(%q) = nil, want error", c.value)
		}
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	cases := []struct {
		start    string
		minutes  int
		expected string
	}{
		{start: "09:00", minutes: 30, expected: "09:30"},
		{start: "09:45", minutes: 30, expected: "10:15"},
		{start: "23:30", minutes: 60, expected: "24:30"},
		{start: "10:00", minutes: 0, expected: "10:00"},
		{start: "10:00", minutes: -30, expected: "09:30"},
	}

	for _, c := range cases {
		got, err := TimeString(c.start).AddMinutes(c.minutes)
		if err != nil {
			t.Fatalf("AddMinutes(%q, %d) error: %v", c.start, c.minutes, err)
		}
		if got.String() != c.expected {
			t.Errorf("AddMinutes(%q, %d) = %q, want %q", c.start, c.minutes, got, c.expected)
		}
	}

	if _, err := TimeString("00:10").AddMinutes(-30); err == nil {
		t.Error("AddMinutes below midnight: expected error, got nil")
	}
}

func TestTimeString_Ordering(t *testing.T) {
	if !TimeString("09:00").IsBefore("10:00") {
		t.Error("09:00 should be before 10:00")
	}
	if !TimeString("23:30").IsBefore("24:00") {
		t.Error("23:30 should be before computed end 24:00")
	}
	if TimeString("10:00").IsAfter("10:00") {
		t.Error("IsAfter must be strict")
	}
}

func TestTimeString_Minutes(t *testing.T) {
	// Легаси-формат длительности: "01:30" означает 90 минут
	got, err := TimeString("01:30").Minutes()
	if err != nil {
		t.Fatalf("Minutes error: %v", err)
	}
	if got != 90 {
		t.Errorf("Minutes(01:30) = %d, want 90", got)
	}
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	if err := ts.Scan("10:30:00"); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if ts != "10:30" {
		t.Errorf("Scan(10:30:00) = %q, want 10:30", ts)
	}

	if err := ts.Scan(time.Date(2026, 3, 2, 14, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if ts != "14:45" {
		t.Errorf("Scan(time.Time) = %q, want 14:45", ts)
	}
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got, err := TimeString("09:30").OnDate(date)
	if err != nil {
		t.Fatalf("OnDate error: %v", err)
	}
	want := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("OnDate = %s, want %s", got, want)
	}
}
