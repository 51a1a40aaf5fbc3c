// Package ui holds the color themes of the command-line interface. The
// active theme is process-wide and guarded by a mutex, so the progress
// spinner and the result printers can read it from different goroutines.
package ui

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Theme is a set of ANSI escape codes, one per role.
type Theme struct {
	Name string
	// Primary highlights values such as fractions and indices.
	Primary string
	// Secondary is used for labels and defaults.
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme has every code empty.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// ThemeByName returns the theme called name ("dark", "light" or "none") and
// whether it exists.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	case "none":
		return NoColorTheme, true
	}
	return DarkTheme, false
}

// SetTheme activates a theme by name. Unknown names select the dark theme.
func SetTheme(name string) {
	t, _ := ThemeByName(name)
	SetCurrentTheme(t)
}

// IsTerminal reports whether w is a terminal. Only *os.File values can be.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// InitTheme selects the theme for a run writing to out. Colors are disabled
// when noColor is set, when NO_COLOR is present in the environment
// (https://no-color.org/), or when out is not a terminal. Otherwise the theme
// called name is used.
func InitTheme(name string, noColor bool, out io.Writer) {
	if noColor || !IsTerminal(out) {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}
