package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// ClassifyPeriod maps a "HH:MM" start time to a day or night period.
// Shifts starting at 20:00 or later, or before 08:00, count as night.
func ClassifyPeriod(startTime string) domain.ShiftPeriod {
	hour, err := parseHour(startTime)
	if err != nil {
		return domain.PeriodDay
	}
	if hour >= 20 || hour < 8 {
		return domain.PeriodNight
	}
	return domain.PeriodDay
}

// WeekdayKey returns the lowercase weekday name used as an availability key.
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// ShiftStart combines a shift date with its "HH:MM" start time in the given
// location. Invalid times fall back to midnight of the shift date.
func ShiftStart(date time.Time, startTime string, loc *time.Location) time.Time {
	hour, minute, err := parseHourMinute(startTime)
	if err != nil {
		hour, minute = 0, 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}

// HoursBetween returns the elapsed hours between two instants, rounded to two
// decimal places.
func HoursBetween(from, to time.Time) decimal.Decimal {
	seconds := to.Sub(from).Seconds()
	return decimal.NewFromFloat(seconds / 3600).Round(2)
}

// RoundToHalfHour rounds an instant to the nearest half hour and formats it as
// "HH:MM". Used to auto-populate actual start/end times from GPS timestamps.
func RoundToHalfHour(t time.Time) string {
	hour := t.Hour()
	minute := t.Minute()
	switch {
	case minute < 15:
		minute = 0
	case minute < 45:
		minute = 30
	default:
		minute = 0
		hour = (hour + 1) % 24
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ValidHHMM reports whether s is a well-formed 24h "HH:MM" time.
func ValidHHMM(s string) bool {
	_, _, err := parseHourMinute(s)
	return err == nil
}

func parseHour(s string) (int, error) {
	hour, _, err := parseHourMinute(s)
	return hour, err
}

func parseHourMinute(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
