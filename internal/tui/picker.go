package tui

import (
	"strings"

	"timepick/internal/docs"
	"timepick/internal/numeric"
	"timepick/internal/timepick"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldHour field = iota
	fieldMinute
	fieldSecond
	fieldMeridian
)

// Options configures a Picker beyond what the controller holds.
type Options[T any] struct {
	// OnChange and OnTouched observe the controller's emissions after the
	// picker has recorded them.
	OnChange  func(T)
	OnTouched func()
	// Theme is the configured tui.theme ("light", "dark", "auto").
	Theme string
	// Title is shown above the fields.
	Title string
}

// Picker is a bubbletea model that renders a timepick.Controller as a row of
// spinner fields and forwards keys to it.
type Picker[T any] struct {
	ctl  *timepick.Controller[T]
	opts Options[T]

	inputs [3]textinput.Model
	// editing marks fields holding typed digits not yet applied.
	editing [3]bool
	focus   field

	keys     keyMap
	help     help.Model
	showHelp bool
	width    int

	emissions int
	done      bool
	cancelled bool
}

// NewPicker wires the picker to ctl. If no value was written yet, the
// controller is bound to T's zero value, which adapters read as "no time".
func NewPicker[T any](ctl *timepick.Controller[T], opts Options[T]) *Picker[T] {
	p := &Picker[T]{
		ctl:  ctl,
		opts: opts,
		keys: defaultKeyMap(),
		help: help.New(),
	}
	for i := range p.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 2
		in.Width = 2
		p.inputs[i] = in
	}

	ctl.RegisterOnChange(func(v T) {
		p.emissions++
		if p.opts.OnChange != nil {
			p.opts.OnChange(v)
		}
	})
	ctl.RegisterOnTouched(func() {
		if p.opts.OnTouched != nil {
			p.opts.OnTouched()
		}
	})
	ctl.RegisterOnRefresh(p.syncInputs)

	if ctl.Model() == nil {
		var zero T
		ctl.WriteValue(zero)
	}
	p.syncInputs()
	p.applyFocus()
	return p
}

func (p *Picker[T]) Init() tea.Cmd {
	return nil
}

// Result returns the value to hand back to the host and whether the user
// accepted it.
func (p *Picker[T]) Result() (T, bool) {
	return p.ctl.Value(), p.done && !p.cancelled
}

func (p *Picker[T]) Emissions() int { return p.emissions }

func (p *Picker[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.help.Width = msg.Width
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *Picker[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cfg := p.ctl.Config()
	p.keys.setMeridian(cfg.Meridian)

	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.cancelled = true
		return p, tea.Quit
	case key.Matches(msg, p.keys.Help):
		p.showHelp = !p.showHelp
		return p, nil
	case key.Matches(msg, p.keys.Accept):
		if !p.ctl.Disabled() {
			p.commit()
		}
		p.ctl.HandleBlur()
		p.done = true
		return p, tea.Quit
	}

	if p.ctl.Disabled() {
		return p, nil
	}

	switch {
	case key.Matches(msg, p.keys.Next):
		p.commit()
		p.move(1)
	case key.Matches(msg, p.keys.Prev):
		p.commit()
		p.move(-1)
	case key.Matches(msg, p.keys.Up):
		p.commit()
		p.step(1)
	case key.Matches(msg, p.keys.Down):
		p.commit()
		p.step(-1)
	case key.Matches(msg, p.keys.Toggle):
		if p.focus == fieldMeridian {
			p.ctl.ToggleMeridian()
			p.syncInputs()
		}
	case key.Matches(msg, p.keys.AM):
		p.commit()
		if p.ctl.MeridianLabel() == "PM" {
			p.ctl.ToggleMeridian()
			p.syncInputs()
		}
	case key.Matches(msg, p.keys.PM):
		p.commit()
		if p.ctl.MeridianLabel() == "AM" {
			p.ctl.ToggleMeridian()
			p.syncInputs()
		}
	default:
		return p, p.edit(msg)
	}
	return p, nil
}

// edit feeds digits and deletions to the focused field's input.
func (p *Picker[T]) edit(msg tea.KeyMsg) tea.Cmd {
	if p.focus == fieldMeridian || p.ctl.Config().ReadonlyInputs {
		return nil
	}
	switch msg.Type {
	case tea.KeyRunes:
		if numeric.FilterDigits(string(msg.Runes)) == "" {
			return nil
		}
	case tea.KeyBackspace, tea.KeyDelete:
	default:
		return nil
	}

	i := int(p.focus)
	if !p.editing[i] {
		// The first keystroke replaces the displayed value.
		p.inputs[i].SetValue("")
		p.editing[i] = true
	}
	var cmd tea.Cmd
	p.inputs[i], cmd = p.inputs[i].Update(msg)
	if v := p.inputs[i].Value(); numeric.FilterDigits(v) != v {
		p.inputs[i].SetValue(numeric.FilterDigits(v))
		p.inputs[i].CursorEnd()
	}
	return cmd
}

// commit applies typed digits in the focused field, if any.
func (p *Picker[T]) commit() {
	if p.focus == fieldMeridian || !p.editing[p.focus] {
		return
	}
	text := p.inputs[p.focus].Value()
	p.editing[p.focus] = false
	switch p.focus {
	case fieldHour:
		p.ctl.UpdateHour(text)
	case fieldMinute:
		p.ctl.UpdateMinute(text)
	case fieldSecond:
		p.ctl.UpdateSecond(text)
	}
	p.syncInputs()
}

func (p *Picker[T]) step(dir int) {
	cfg := p.ctl.Config()
	switch p.focus {
	case fieldHour:
		p.ctl.ChangeHour(dir * cfg.HourStep)
	case fieldMinute:
		p.ctl.ChangeMinute(dir * cfg.MinuteStep)
	case fieldSecond:
		p.ctl.ChangeSecond(dir * cfg.SecondStep)
	case fieldMeridian:
		p.ctl.ToggleMeridian()
	}
	p.syncInputs()
}

func (p *Picker[T]) visibleFields() []field {
	cfg := p.ctl.Config()
	out := []field{fieldHour, fieldMinute}
	if cfg.Seconds {
		out = append(out, fieldSecond)
	}
	if cfg.Meridian {
		out = append(out, fieldMeridian)
	}
	return out
}

func (p *Picker[T]) move(delta int) {
	fields := p.visibleFields()
	idx := 0
	for i, f := range fields {
		if f == p.focus {
			idx = i
		}
	}
	idx = numeric.Mod(idx+delta, len(fields))
	p.focus = fields[idx]
	p.applyFocus()
}

func (p *Picker[T]) applyFocus() {
	for i := range p.inputs {
		if field(i) == p.focus {
			p.inputs[i].Focus()
		} else {
			p.inputs[i].Blur()
		}
	}
}

// syncInputs drops pending edits so every field shows the controller's
// formatted value again.
func (p *Picker[T]) syncInputs() {
	p.editing = [3]bool{}
}

func (p *Picker[T]) formatted(f field) string {
	m := p.ctl.Model()
	switch f {
	case fieldHour:
		return p.ctl.FormatHour(m.Hour)
	case fieldMinute:
		return p.ctl.FormatMinSec(m.Minute)
	default:
		return p.ctl.FormatMinSec(m.Second)
	}
}

func (p *Picker[T]) padX() int {
	switch {
	case p.ctl.IsSmallSize():
		return 0
	case p.ctl.IsLargeSize():
		return 2
	default:
		return 1
	}
}

func (p *Picker[T]) View() string {
	cfg := p.ctl.Config()
	disabled := p.ctl.Disabled()
	padX := p.padX()

	var cols []string
	sep := lipgloss.NewStyle().Padding(0, 1).Render(":")
	for i, f := range p.visibleFields() {
		if f == fieldMeridian {
			cols = append(cols, " ", p.renderColumn(f, p.ctl.MeridianLabel(), cfg.Spinners, disabled, padX))
			continue
		}
		if i > 0 {
			cols = append(cols, p.renderColumn(-1, sep, cfg.Spinners, disabled, 0))
		}
		cols = append(cols, p.renderColumn(f, p.fieldText(f), cfg.Spinners, disabled, padX))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, cols...)

	var b strings.Builder
	if title := strings.TrimSpace(p.opts.Title); title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
		b.WriteString("\n\n")
	}
	b.WriteString(row)
	b.WriteString("\n")

	switch {
	case disabled:
		b.WriteString(styleMuted().Render("disabled"))
	case !p.ctl.Valid():
		b.WriteString(styleError().Render("invalid time"))
	default:
		b.WriteString(styleMuted().Render(p.summary()))
	}
	b.WriteString("\n\n")

	if p.showHelp {
		body, _ := docs.Get("keys")
		w := p.width
		if w <= 0 {
			w = 60
		}
		b.WriteString(RenderMarkdown(body, w))
	} else {
		b.WriteString(p.help.View(p.keys))
	}
	return lipgloss.NewStyle().Background(colorSurface).Padding(0, 1).Render(b.String())
}

// fieldText is what a field box shows: the raw input while typing, the
// formatted value otherwise ("NaN" included).
func (p *Picker[T]) fieldText(f field) string {
	if p.editing[f] && f == p.focus {
		return renderInputLine(2, p.inputs[f].View())
	}
	return p.formatted(f)
}

func (p *Picker[T]) renderColumn(f field, text string, spinners, disabled bool, padX int) string {
	if f < 0 {
		if !spinners {
			return text
		}
		return lipgloss.JoinVertical(lipgloss.Center, " ", text, " ")
	}
	box := styleField(f == p.focus, disabled, padX).Render(text)
	if !spinners {
		return box
	}
	arrow := styleMuted()
	if f == p.focus && !disabled {
		arrow = lipgloss.NewStyle().Foreground(colorAccent)
	}
	return lipgloss.JoinVertical(lipgloss.Center, arrow.Render("▲"), box, arrow.Render("▼"))
}

// summary shows the 24h value under the fields.
func (p *Picker[T]) summary() string {
	m := p.ctl.Model()
	out := numeric.PadNumber(m.Hour) + ":" + numeric.PadNumber(m.Minute)
	if p.ctl.Config().Seconds {
		out += ":" + numeric.PadNumber(m.Second)
	}
	return out
}
