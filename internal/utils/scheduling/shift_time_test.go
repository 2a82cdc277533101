package scheduling_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/utils/scheduling"
)

func TestClassifyPeriod(t *testing.T) {
	tests := []struct {
		startTime string
		expected  domain.ShiftPeriod
	}{
		{"08:00", domain.PeriodDay},
		{"07:59", domain.PeriodNight},
		{"12:00", domain.PeriodDay},
		{"19:59", domain.PeriodDay},
		{"20:00", domain.PeriodNight},
		{"23:00", domain.PeriodNight},
		{"00:00", domain.PeriodNight},
		{"garbage", domain.PeriodDay},
	}

	for _, tt := range tests {
		t.Run(tt.startTime, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheduling.ClassifyPeriod(tt.startTime))
		})
	}
}

func TestWeekdayKey(t *testing.T) {
	// 2025-06-10 is a Tuesday.
	assert.Equal(t, "tuesday", scheduling.WeekdayKey(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sunday", scheduling.WeekdayKey(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestShiftStart(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	start := scheduling.ShiftStart(date, "09:30", time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC), start)

	// Invalid times fall back to midnight rather than failing the caller.
	fallback := scheduling.ShiftStart(date, "not-a-time", time.UTC)
	assert.Equal(t, date, fallback)
}

func TestHoursBetween(t *testing.T) {
	from := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	assert.True(t, scheduling.HoursBetween(from, from.Add(12*time.Hour)).Equal(decimal.NewFromInt(12)))
	assert.True(t, scheduling.HoursBetween(from, from.Add(90*time.Minute)).Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, scheduling.HoursBetween(from, from.Add(10*time.Minute)).Equal(decimal.NewFromFloat(0.17)))
}

func TestRoundToHalfHour(t *testing.T) {
	tests := []struct {
		minute   int
		hour     int
		expected string
	}{
		{0, 9, "09:00"},
		{14, 9, "09:00"},
		{15, 9, "09:30"},
		{44, 9, "09:30"},
		{45, 9, "10:00"},
		{50, 23, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			instant := time.Date(2025, 6, 10, tt.hour, tt.minute, 0, 0, time.UTC)
			assert.Equal(t, tt.expected, scheduling.RoundToHalfHour(instant))
		})
	}
}

func TestValidHHMM(t *testing.T) {
	valid := []string{"00:00", "08:00", "23:59"}
	for _, s := range valid {
		assert.True(t, scheduling.ValidHHMM(s), s)
	}

	invalid := []string{"24:00", "08:60", "8", "", "ab:cd", "-1:30"}
	for _, s := range invalid {
		assert.False(t, scheduling.ValidHHMM(s), s)
	}
}
