package adapter

import (
	"strings"

	"timepick/internal/model"
	"timepick/internal/numeric"
)

// StringAdapter binds a picker to "HH:MM" or "HH:MM:SS" strings. The empty
// string is the null value. Fields out of clock range ("24:00", "10:60") do
// not describe a time.
type StringAdapter struct{}

var _ Adapter[string] = StringAdapter{}

var fieldLimits = [3]int{24, 60, 60}

func (StringAdapter) FromModel(v string) *model.TimeStruct {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil
	}
	fields := make([]numeric.Int, 3)
	for i, p := range parts {
		if p == "" || numeric.FilterDigits(p) != p {
			return nil
		}
		fields[i] = numeric.ToInteger(p)
		if n, _ := fields[i].Value(); n >= fieldLimits[i] {
			return nil
		}
	}
	if len(parts) == 2 {
		fields[2] = numeric.NaN
	}
	return sanitize(&model.TimeStruct{Hour: fields[0], Minute: fields[1], Second: fields[2]})
}

func (StringAdapter) ToModel(t *model.TimeStruct) string {
	t = sanitize(t)
	if t == nil {
		return ""
	}
	out := numeric.PadNumber(t.Hour) + ":" + numeric.PadNumber(t.Minute)
	if !t.Second.IsNaN() {
		out += ":" + numeric.PadNumber(t.Second)
	}
	return out
}
