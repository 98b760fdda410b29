// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/fable"
)

// Compile-time interface verification.
var _ fable.Theme = (*Theme)(nil)

// Theme implements fable.Theme with Lipgloss-compatible colors.
type Theme struct {
	name    string
	palette fable.Palette
}

// Name returns the theme's name.
func (t *Theme) Name() string {
	return t.name
}

// Palette returns the color palette for this theme.
func (t *Theme) Palette() fable.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		name: "dark",
		palette: fable.Palette{
			// Catppuccin Mocha
			Background: "#1e1e2e",
			Text:       "#cdd6f4",
			Marker:     "#f9e2af", // Yellow
			Muted:      "#6c7086",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		name: "light",
		palette: fable.Palette{
			// Catppuccin Latte
			Background: "#eff1f5",
			Text:       "#4c4f69",
			Marker:     "#df8e1d", // Yellow
			Muted:      "#9ca0b0",
		},
	}
}

// AutoTheme picks the dark or light theme from the terminal's background.
func AutoTheme() *Theme {
	if lipgloss.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeByName returns the theme called name: "dark", "light" or "auto".
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	case "auto":
		return AutoTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}
