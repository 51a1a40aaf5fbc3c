package ui

// Shorthands reading the current theme.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ThemeColors exposes the current theme through the method set expected by
// apperrors.ColorProvider.
type ThemeColors struct{}

func (ThemeColors) Yellow() string { return ColorYellow() }
func (ThemeColors) Red() string    { return ColorRed() }
func (ThemeColors) Reset() string  { return ColorReset() }
