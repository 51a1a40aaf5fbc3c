package ui

import (
	"bytes"
	"os"
	"testing"
)

// Tests in this file mutate the process-wide theme and do not run in
// parallel.

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"dark", "dark", true},
		{"light", "light", true},
		{"none", "none", true},
		{"solarized", "dark", false},
	}
	for _, tt := range tests {
		got, ok := ThemeByName(tt.name)
		if got.Name != tt.want || ok != tt.wantOK {
			t.Errorf("ThemeByName(%q) = %q, %v; want %q, %v", tt.name, got.Name, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetTheme("light")
	if ColorBlue() != LightTheme.Primary {
		t.Errorf("ColorBlue() = %q, want light primary", ColorBlue())
	}
	SetTheme("unknown")
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("unknown theme selected %q, want dark", GetCurrentTheme().Name)
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme("dark", true, os.Stdout)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("-no-color should select the none theme, got %q", GetCurrentTheme().Name)
	}

	SetCurrentTheme(DarkTheme)
	InitTheme("dark", false, &bytes.Buffer{})
	if GetCurrentTheme().Name != "none" {
		t.Errorf("non-terminal output should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestThemeColors(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	var c ThemeColors
	if c.Yellow() != DarkTheme.Warning || c.Red() != DarkTheme.Error || c.Reset() != DarkTheme.Reset {
		t.Error("ThemeColors should mirror the current theme")
	}
	SetCurrentTheme(NoColorTheme)
	if c.Yellow()+c.Red()+c.Reset() != "" {
		t.Error("ThemeColors should be empty under the none theme")
	}
}
