// Package timepick implements the behaviour of an hour/minute/second picker
// bound to a form value: it owns the edited model.Time, applies step and text
// edits to it, and reports every accepted edit back through the adapter.
//
// Rendering lives elsewhere (see internal/tui and internal/prompt). A host
// writes values in with WriteValue, forwards user input to the Change*/Update*
// methods and reads the display strings from FormatHour/FormatMinSec.
//
// A Controller is not safe for concurrent use.
package timepick

import (
	"timepick/internal/adapter"
	"timepick/internal/model"
	"timepick/internal/numeric"
)

type Controller[T any] struct {
	cfg     Config
	adapter adapter.Adapter[T]

	model *model.Time

	meridian       bool
	spinners       bool
	seconds        bool
	hourStep       int
	minuteStep     int
	secondStep     int
	disabled       bool
	readonlyInputs bool
	size           Size

	touched bool

	onChange  func(T)
	onTouched func()
	onRefresh func()
}

// New returns a Controller that starts from cfg and converts values with a.
// No model is bound until the first WriteValue.
func New[T any](cfg Config, a adapter.Adapter[T]) *Controller[T] {
	c := &Controller[T]{cfg: cfg, adapter: a}
	c.meridian = cfg.Meridian
	c.spinners = cfg.Spinners
	c.seconds = cfg.Seconds
	c.SetHourStep(numeric.Of(cfg.HourStep))
	c.SetMinuteStep(numeric.Of(cfg.MinuteStep))
	c.SetSecondStep(numeric.Of(cfg.SecondStep))
	c.disabled = cfg.Disabled
	c.readonlyInputs = cfg.ReadonlyInputs
	c.size = cfg.Size
	if c.size == "" {
		c.size = SizeMedium
	}
	return c
}

func (c *Controller[T]) RegisterOnChange(fn func(T)) { c.onChange = fn }

func (c *Controller[T]) RegisterOnTouched(fn func()) { c.onTouched = fn }

// RegisterOnRefresh sets a hook called when an inbound value replaced the
// model and the host should redraw.
func (c *Controller[T]) RegisterOnRefresh(fn func()) { c.onRefresh = fn }

// WriteValue binds a new host value. It never emits a change.
func (c *Controller[T]) WriteValue(v T) {
	st := c.adapter.FromModel(v)
	if st != nil {
		c.model = model.NewTime(st.Hour, st.Minute, st.Second)
	} else {
		c.model = model.ZeroTime()
	}
	if !c.seconds && (st == nil || !numeric.IsNumber(st.Second)) {
		c.model.Second = numeric.Of(0)
	}
	if c.onRefresh != nil {
		c.onRefresh()
	}
}

func (c *Controller[T]) SetDisabledState(disabled bool) { c.disabled = disabled }

func (c *Controller[T]) ChangeHour(step int) {
	if c.model != nil {
		c.model.ChangeHour(step)
	}
	c.propagate(true)
}

func (c *Controller[T]) ChangeMinute(step int) {
	if c.model != nil {
		c.model.ChangeMinute(step)
	}
	c.propagate(true)
}

func (c *Controller[T]) ChangeSecond(step int) {
	if c.model != nil {
		c.model.ChangeSecond(step)
	}
	c.propagate(true)
}

// UpdateHour applies a typed hour. In meridian mode the entry is read as a
// 12h hour in the current half of the day: while PM an entry below 12 moves
// to the afternoon, while AM an entry of 12 means midnight.
func (c *Controller[T]) UpdateHour(text string) {
	entered := numeric.ToInteger(text)
	if c.model != nil {
		h, ok := entered.Value()
		isPM := c.model.IsPM()
		if c.meridian && ok && ((isPM && h < 12) || (!isPM && h == 12)) {
			entered = numeric.Of(h + 12)
		}
		c.model.UpdateHour(entered)
	}
	c.propagate(true)
}

func (c *Controller[T]) UpdateMinute(text string) {
	if c.model != nil {
		c.model.UpdateMinute(numeric.ToInteger(text))
	}
	c.propagate(true)
}

func (c *Controller[T]) UpdateSecond(text string) {
	if c.model != nil {
		c.model.UpdateSecond(numeric.ToInteger(text))
	}
	c.propagate(true)
}

// ToggleMeridian flips AM/PM by shifting the hour 12 hours. It does nothing
// outside meridian mode.
func (c *Controller[T]) ToggleMeridian() {
	if c.meridian {
		c.ChangeHour(12)
	}
}

// HandleBlur reports that the user left the picker.
func (c *Controller[T]) HandleBlur() {
	c.markTouched()
}

// FormatHour renders an hour for display: 12h ("12", "01".."11") in meridian
// mode, 24h otherwise. NaN renders as "NaN".
func (c *Controller[T]) FormatHour(v numeric.Int) string {
	h, ok := v.Value()
	if !ok {
		return numeric.PadNumber(numeric.NaN)
	}
	if c.meridian {
		h = numeric.Mod(h, 12)
		if h == 0 {
			h = 12
		}
		return numeric.PadNumber(numeric.Of(h))
	}
	return numeric.PadNumber(numeric.Of(numeric.Mod(h, 24)))
}

func (c *Controller[T]) FormatMinSec(v numeric.Int) string {
	return numeric.PadNumber(v)
}

// MeridianLabel returns "AM" or "PM" for the bound hour.
func (c *Controller[T]) MeridianLabel() string {
	if c.model != nil && c.model.IsPM() {
		return "PM"
	}
	return "AM"
}

// Step setters fall back to the configured default when v is NaN. Any other
// integer is taken as is, zero and negatives included.

func (c *Controller[T]) SetHourStep(v numeric.Int) {
	c.hourStep = StepOrDefault(v, c.cfg.HourStep)
}

func (c *Controller[T]) SetMinuteStep(v numeric.Int) {
	c.minuteStep = StepOrDefault(v, c.cfg.MinuteStep)
}

func (c *Controller[T]) SetSecondStep(v numeric.Int) {
	c.secondStep = StepOrDefault(v, c.cfg.SecondStep)
}

func (c *Controller[T]) SetMeridian(on bool)       { c.meridian = on }
func (c *Controller[T]) SetSpinners(on bool)       { c.spinners = on }
func (c *Controller[T]) SetReadonlyInputs(on bool) { c.readonlyInputs = on }

func (c *Controller[T]) SetSize(s Size) {
	if s == "" {
		s = c.cfg.Size
	}
	c.size = s
}

// SetSeconds changes seconds visibility. Hiding seconds while the bound
// second is absent zeroes it and reports the change without marking the
// picker touched.
func (c *Controller[T]) SetSeconds(on bool) {
	if c.seconds == on {
		return
	}
	c.seconds = on
	if !on && c.model != nil && !numeric.IsNumber(c.model.Second) {
		c.model.Second = numeric.Of(0)
		c.propagate(false)
	}
}

// ApplyConfig replaces every setting with cfg's values, in the order a host
// would set them one by one. The step fallback still refers to the Config
// passed to New.
func (c *Controller[T]) ApplyConfig(cfg Config) {
	c.SetMeridian(cfg.Meridian)
	c.SetSpinners(cfg.Spinners)
	c.SetHourStep(numeric.Of(cfg.HourStep))
	c.SetMinuteStep(numeric.Of(cfg.MinuteStep))
	c.SetSecondStep(numeric.Of(cfg.SecondStep))
	c.SetDisabledState(cfg.Disabled)
	c.SetReadonlyInputs(cfg.ReadonlyInputs)
	c.SetSize(cfg.Size)
	c.SetSeconds(cfg.Seconds)
}

// Config returns the settings currently in effect.
func (c *Controller[T]) Config() Config {
	return Config{
		Meridian:       c.meridian,
		Spinners:       c.spinners,
		Seconds:        c.seconds,
		HourStep:       c.hourStep,
		MinuteStep:     c.minuteStep,
		SecondStep:     c.secondStep,
		Disabled:       c.disabled,
		ReadonlyInputs: c.readonlyInputs,
		Size:           c.size,
	}
}

// Model returns the bound time, or nil before the first WriteValue.
func (c *Controller[T]) Model() *model.Time { return c.model }

func (c *Controller[T]) Disabled() bool    { return c.disabled }
func (c *Controller[T]) Touched() bool     { return c.touched }
func (c *Controller[T]) IsSmallSize() bool { return c.size == SizeSmall }
func (c *Controller[T]) IsLargeSize() bool { return c.size == SizeLarge }

// Valid reports whether the bound time would be emitted as a value.
func (c *Controller[T]) Valid() bool {
	return c.model != nil && c.model.IsValid(c.seconds)
}

// Value returns what the next emission would carry.
func (c *Controller[T]) Value() T {
	if c.Valid() {
		return c.adapter.ToModel(c.model.Struct())
	}
	return c.adapter.ToModel(nil)
}

func (c *Controller[T]) markTouched() {
	c.touched = true
	if c.onTouched != nil {
		c.onTouched()
	}
}

// propagate always emits: the adapted time when valid, the adapter's null
// value otherwise.
func (c *Controller[T]) propagate(touched bool) {
	if touched {
		c.markTouched()
	}
	v := c.Value()
	if c.onChange != nil {
		c.onChange(v)
	}
}
