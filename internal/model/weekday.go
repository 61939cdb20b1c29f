package model

import (
	"fmt"
	"time"
)

// Weekday is the canonical day-of-week for the booking grid.
// The ordinal is the display and sort order: the week starts on Monday.
type Weekday int

const (
	Lunes Weekday = iota
	Martes
	Miercoles
	Jueves
	Viernes
	Sabado
	Domingo
)

var weekdayNames = [7]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

func (d Weekday) String() string {
	if d < Lunes || d > Domingo {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

func (d Weekday) Valid() bool {
	return d >= Lunes && d <= Domingo
}

// ParseWeekday accepts a canonical Spanish day name.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if s == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

// WeekdayOf maps a calendar date to the Monday-first ordinal.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday counts from Sunday
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// TimeOfDay is a wall-clock start time stored as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats as "HH:MM", the only representation shown to users.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At combines the time of day with a calendar date in date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
