package model

import (
	"testing"
	"time"
)

func TestWeekdayOrdinalAndNames(t *testing.T) {
	names := []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

	for i, name := range names {
		d := Weekday(i)
		if d.String() != name {
			t.Errorf("Weekday(%d): want %s, got %s", i, name, d)
		}

		parsed, err := ParseWeekday(name)
		if err != nil {
			t.Errorf("ParseWeekday(%s): %v", name, err)
		}
		if parsed != d {
			t.Errorf("ParseWeekday(%s): want %d, got %d", name, d, parsed)
		}
	}

	if _, err := ParseWeekday("Monday"); err == nil {
		t.Error("English day names are not canonical")
	}
	if _, err := ParseWeekday("lunes"); err == nil {
		t.Error("day names are case sensitive")
	}
}

func TestWeekdayOf(t *testing.T) {
	cases := []struct {
		date string
		want Weekday
	}{
		{"2026-08-24", Lunes},
		{"2026-08-26", Miercoles},
		{"2026-08-29", Sabado},
		{"2026-08-30", Domingo}, // time.Weekday would call this day 0
	}

	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.date, err)
		}
		if got := WeekdayOf(d); got != tc.want {
			t.Errorf("WeekdayOf(%s): want %s, got %s", tc.date, tc.want, got)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:5", "09:05", false},
		{"00:00", "00:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"-1:00", "", true},
		{"nueve", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): want error, got %s", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("ParseTimeOfDay(%q): want %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestTimeOfDayAt(t *testing.T) {
	start, err := ParseTimeOfDay("18:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	got := start.At(date)
	want := time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("At: want %s, got %s", want, got)
	}
}
