package model

import "timepick/internal/numeric"

// TimeStruct is the plain hour/minute/second shape that crosses the adapter
// boundary. Second may be NaN when seconds are not in use.
type TimeStruct struct {
	Hour   numeric.Int `json:"hour"`
	Minute numeric.Int `json:"minute"`
	Second numeric.Int `json:"second"`
}

// Time is the mutable value edited by a time picker.
//
// Hour is kept on a 24h clock; 12h display is derived from it. Present fields
// always stay in range: changes wrap around instead of overflowing.
type Time struct {
	Hour   numeric.Int
	Minute numeric.Int
	Second numeric.Int
}

// ZeroTime returns 00:00:00.
func ZeroTime() *Time {
	return &Time{Hour: numeric.Of(0), Minute: numeric.Of(0), Second: numeric.Of(0)}
}

// NewTime builds a Time, normalizing each present field into range.
func NewTime(hour, minute, second numeric.Int) *Time {
	t := &Time{}
	t.UpdateHour(hour)
	t.UpdateMinute(minute)
	t.UpdateSecond(second)
	return t
}

// ChangeHour adds step hours. A NaN hour counts as 0.
func (t *Time) ChangeHour(step int) {
	t.UpdateHour(numeric.Of(t.Hour.Or(0) + step))
}

func (t *Time) ChangeMinute(step int) {
	t.UpdateMinute(numeric.Of(t.Minute.Or(0) + step))
}

func (t *Time) ChangeSecond(step int) {
	t.UpdateSecond(numeric.Of(t.Second.Or(0) + step))
}

func (t *Time) UpdateHour(v numeric.Int) {
	t.Hour = wrap(v, 24)
}

func (t *Time) UpdateMinute(v numeric.Int) {
	t.Minute = wrap(v, 60)
}

func (t *Time) UpdateSecond(v numeric.Int) {
	t.Second = wrap(v, 60)
}

func wrap(v numeric.Int, n int) numeric.Int {
	x, ok := v.Value()
	if !ok {
		return numeric.NaN
	}
	return numeric.Of(numeric.Mod(x, n))
}

// IsValid reports whether hour and minute are numbers, and, when
// requireSeconds is set, the second as well.
func (t *Time) IsValid(requireSeconds bool) bool {
	if t.Hour.IsNaN() || t.Minute.IsNaN() {
		return false
	}
	return !requireSeconds || !t.Second.IsNaN()
}

// IsPM reports whether the hour falls in the second half of the day. A NaN
// hour is treated as AM.
func (t *Time) IsPM() bool {
	h, ok := t.Hour.Value()
	return ok && h >= 12
}

// Struct returns a detached copy of the fields.
func (t *Time) Struct() *TimeStruct {
	return &TimeStruct{Hour: t.Hour, Minute: t.Minute, Second: t.Second}
}
