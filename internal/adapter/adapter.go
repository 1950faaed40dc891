// Package adapter converts between the picker's internal TimeStruct and the
// value type a host binds the picker to.
//
// Adapters are only used at the binding edge: when a host writes a value into
// a picker and when the picker reports a change back. Both directions are
// total. Missing or malformed input yields nil (or the host type's empty
// value), never an error.
package adapter

import (
	"timepick/internal/model"
	"timepick/internal/numeric"
)

// Adapter converts a host value of type T to and from a TimeStruct.
type Adapter[T any] interface {
	// FromModel returns nil when v does not describe a time.
	FromModel(v T) *model.TimeStruct
	// ToModel returns the host's empty value for a nil TimeStruct.
	ToModel(t *model.TimeStruct) T
}

// StructAdapter is the default adapter: hosts bind directly to *TimeStruct.
type StructAdapter struct{}

var _ Adapter[*model.TimeStruct] = StructAdapter{}

func (StructAdapter) FromModel(v *model.TimeStruct) *model.TimeStruct {
	return sanitize(v)
}

func (StructAdapter) ToModel(t *model.TimeStruct) *model.TimeStruct {
	return sanitize(t)
}

// sanitize copies t if hour and minute are integers. The second is carried
// only when it is an integer itself.
func sanitize(t *model.TimeStruct) *model.TimeStruct {
	if t == nil || !numeric.IsInteger(t.Hour) || !numeric.IsInteger(t.Minute) {
		return nil
	}
	out := &model.TimeStruct{Hour: t.Hour, Minute: t.Minute, Second: numeric.NaN}
	if numeric.IsInteger(t.Second) {
		out.Second = t.Second
	}
	return out
}
