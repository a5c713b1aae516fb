// theme.go - Adaptive color palette and shared styles for the TUI
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme carries the renderer-bound palette every view draws with. All
// colors are adaptive so the same theme works on light and dark
// terminals. Styles that repeat on every row (selection, drop target)
// are prebuilt here rather than per frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Core palette
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// Node roles
	Branch lipgloss.AdaptiveColor
	Leaf   lipgloss.AdaptiveColor

	// Drag feedback
	Drag lipgloss.AdaptiveColor
	Drop lipgloss.AdaptiveColor

	// Row styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	DropOver lipgloss.Style
}

// IsZero reports whether the theme was never initialized.
func (t Theme) IsZero() bool {
	return t.Renderer == nil
}

// RoleGlyph returns the fallback glyph and color for a node that carries
// no icon of its own.
func (t Theme) RoleGlyph(branch bool) (string, lipgloss.AdaptiveColor) {
	if branch {
		return "▪", t.Branch
	}
	return "·", t.Leaf
}

// DefaultTheme returns the standard adaptive palette bound to r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"},
		Secondary: lipgloss.AdaptiveColor{Light: "#B0459E", Dark: "#F25D94"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#5C5C5C", Dark: "#A8A8A8"},
		Muted:     lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"},
		Border:    lipgloss.AdaptiveColor{Light: "#D9D9D9", Dark: "#383838"},
		Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#AD8CFF"},
		Branch:    lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"},
		Leaf:      lipgloss.AdaptiveColor{Light: "#3A3A3A", Dark: "#C6C6C6"},
		Drag:      lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD75F"},
		Drop:      lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FFF87"},
	}

	t.Base = r.NewStyle().
		Foreground(t.Leaf)
	t.Selected = r.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#E9E4FF", Dark: "#3A3362"}).
		Bold(true)
	t.DropOver = r.NewStyle().
		Foreground(t.Drop).
		Bold(true).
		Underline(true)

	return t
}

// MonoTheme returns a colorless theme for terminals where the adaptive
// palette washes out. Selection falls back to reverse video.
func MonoTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
	}

	t.Base = r.NewStyle()
	t.Selected = r.NewStyle().Reverse(true)
	t.DropOver = r.NewStyle().Bold(true).Underline(true)

	return t
}

// ThemeByName resolves a --theme flag value.
func ThemeByName(name string, r *lipgloss.Renderer) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(r), nil
	case "mono":
		return MonoTheme(r), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (have: default, mono)", name)
	}
}
