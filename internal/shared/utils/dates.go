package utils

import (
	"errors"
	"time"
)

// The original data model uses calendar dates, not instants. All date rules
// therefore compare at day granularity in the value's own location.

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func asTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	default:
		return time.Time{}, false
	}
}

// DateInPast is an ozzo validation.By rule: the date must be strictly
// before today. Nil/absent values pass; pair with validation.Required when
// the field is mandatory.
func DateInPast(value interface{}) error {
	t, ok := asTime(value)
	if !ok || t.IsZero() {
		return nil
	}
	if !StartOfDay(t).Before(StartOfDay(time.Now())) {
		return errors.New("must be a date in the past")
	}
	return nil
}

// DateNotInFuture: today or earlier.
func DateNotInFuture(value interface{}) error {
	t, ok := asTime(value)
	if !ok || t.IsZero() {
		return nil
	}
	if StartOfDay(t).After(StartOfDay(time.Now())) {
		return errors.New("must not be a date in the future")
	}
	return nil
}

// DateNotInPast: today or later.
func DateNotInPast(value interface{}) error {
	t, ok := asTime(value)
	if !ok || t.IsZero() {
		return nil
	}
	if StartOfDay(t).Before(StartOfDay(time.Now())) {
		return errors.New("must not be a date in the past")
	}
	return nil
}
