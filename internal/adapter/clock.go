package adapter

import (
	"time"

	"timepick/internal/model"
	"timepick/internal/numeric"
)

// ClockAdapter binds a picker to time.Time. Only the clock part is edited;
// ToModel places the picked clock on Base's date and location (today in the
// local zone when Base is zero). The zero time.Time is the null value.
type ClockAdapter struct {
	Base time.Time
}

var _ Adapter[time.Time] = ClockAdapter{}

func (ClockAdapter) FromModel(v time.Time) *model.TimeStruct {
	if v.IsZero() {
		return nil
	}
	return &model.TimeStruct{
		Hour:   numeric.Of(v.Hour()),
		Minute: numeric.Of(v.Minute()),
		Second: numeric.Of(v.Second()),
	}
}

func (a ClockAdapter) ToModel(t *model.TimeStruct) time.Time {
	t = sanitize(t)
	if t == nil {
		return time.Time{}
	}
	base := a.Base
	if base.IsZero() {
		base = time.Now()
	}
	h, _ := t.Hour.Value()
	m, _ := t.Minute.Value()
	return time.Date(base.Year(), base.Month(), base.Day(), h, m, t.Second.Or(0), 0, base.Location())
}
