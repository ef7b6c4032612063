package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-03-10 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestBusinessHours_OpenWithinWindow(t *testing.T) {
	hours := BusinessHours{
		"monday": {Open: "09:00", Close: "17:00"},
	}

	assert.True(t, hours.IsOpenAt(mondayAt(10, 0)))
}

func TestBusinessHours_ClosedAfterHours(t *testing.T) {
	hours := BusinessHours{
		"monday": {Open: "09:00", Close: "17:00"},
	}

	assert.False(t, hours.IsOpenAt(mondayAt(18, 0)))
}

func TestBusinessHours_CloseBoundaryIsExclusive(t *testing.T) {
	hours := BusinessHours{
		"monday": {Open: "09:00", Close: "17:00"},
	}

	assert.True(t, hours.IsOpenAt(mondayAt(9, 0)))
	assert.False(t, hours.IsOpenAt(mondayAt(17, 0)))
}

func TestBusinessHours_DayMissingFromScheduleIsClosed(t *testing.T) {
	hours := BusinessHours{
		"tuesday": {Open: "09:00", Close: "17:00"},
	}

	assert.False(t, hours.IsOpenAt(mondayAt(10, 0)))
}

func TestBusinessHours_ClosedFlagWins(t *testing.T) {
	hours := BusinessHours{
		"monday": {Open: "09:00", Close: "17:00", Closed: true},
	}

	assert.False(t, hours.IsOpenAt(mondayAt(10, 0)))
}

// No configured hours at all means always open. Permissive by intent: an
// unconfigured listing should not disappear from open-now filters.
func TestBusinessHours_NoHoursConfiguredIsOpen(t *testing.T) {
	assert.True(t, BusinessHours(nil).IsOpenAt(mondayAt(3, 0)))
	assert.True(t, BusinessHours{}.IsOpenAt(mondayAt(3, 0)))
}
