package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette for the picker. Every color is adaptive so the picker stays
// readable on light and dark terminals; faint text is only used on dark
// backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorSurface lipgloss.TerminalColor = ac("255", "235")
	colorInputBg lipgloss.TerminalColor = ac("254", "234")
	colorInputFg lipgloss.TerminalColor = ac("235", "252")
	colorBorder  lipgloss.TerminalColor = ac("250", "243")
	colorAccent  lipgloss.TerminalColor = ac("27", "62")
	colorError   lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true)
}

func styleField(focused, disabled bool, padX int) lipgloss.Style {
	st := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Foreground(colorInputFg).
		Background(colorInputBg).
		Padding(0, padX)
	if focused && !disabled {
		st = st.BorderForeground(colorAccent).Bold(true)
	}
	if disabled {
		st = faintIfDark(st.Foreground(colorMuted))
	}
	return st
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts TERM /
// COLORTERM over termenv's probe when they advertise more colors.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference fixes lipgloss's background detection.
//
// Priority:
// 1) TIMEPICK_TUI_THEME=light|dark|auto
// 2) pref (tui.theme from the config file)
// 3) COLORFGBG heuristic ("fg;bg")
func applyThemePreference(pref string) {
	for _, v := range []string{os.Getenv("TIMEPICK_TUI_THEME"), pref} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
