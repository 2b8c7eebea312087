package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2026, 8, 30, 17, 45, 12, 999, loc)

	got := StartOfDay(in)

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 30, got.Day())
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
	assert.Equal(t, loc, got.Location())
}

func TestDateRules_DayGranularity(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	// Same calendar day counts as "today" regardless of the clock.
	assert.Error(t, DateInPast(now))
	assert.NoError(t, DateInPast(yesterday))
	assert.Error(t, DateInPast(tomorrow))

	assert.NoError(t, DateNotInFuture(now))
	assert.NoError(t, DateNotInFuture(yesterday))
	assert.Error(t, DateNotInFuture(tomorrow))

	assert.NoError(t, DateNotInPast(now))
	assert.Error(t, DateNotInPast(yesterday))
	assert.NoError(t, DateNotInPast(tomorrow))
}

func TestDateRules_NilAndZeroPass(t *testing.T) {
	assert.NoError(t, DateInPast(nil))
	assert.NoError(t, DateInPast((*time.Time)(nil)))
	assert.NoError(t, DateInPast(time.Time{}))

	past := time.Now().AddDate(-1, 0, 0)
	assert.NoError(t, DateInPast(&past))
}
