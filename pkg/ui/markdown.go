package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer wraps a glamour terminal renderer and rebuilds it
// lazily when the wrap width changes.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	useTheme bool
	theme    *Theme
}

// NewMarkdownRenderer builds a renderer with glamour's automatic
// light/dark style at the given wrap width.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	return &MarkdownRenderer{
		renderer: newGlamourRenderer(width),
		width:    width,
	}
}

// NewMarkdownRendererWithTheme builds a renderer whose glamour style is
// derived from the application theme instead of the stock palettes.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	return &MarkdownRenderer{
		renderer: newThemedGlamourRenderer(width, theme),
		width:    width,
		useTheme: true,
		theme:    &theme,
	}
}

func newGlamourRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func newThemedGlamourRenderer(width int, theme Theme) *glamour.TermRenderer {
	style := buildStyleFromTheme(theme, lipgloss.HasDarkBackground())
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Render converts markdown to styled terminal text. Without a usable
// renderer the raw markdown comes back unchanged so the caller always
// has something to display.
func (m *MarkdownRenderer) Render(markdown string) (string, error) {
	if m.renderer == nil {
		return markdown, nil
	}
	out, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown, err
	}
	return out, nil
}

// SetWidth rebuilds the renderer for a new wrap width. The current width
// and non-positive widths are ignored.
func (m *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || width == m.width {
		return
	}
	m.width = width
	if m.useTheme && m.theme != nil {
		m.renderer = newThemedGlamourRenderer(width, *m.theme)
	} else {
		m.renderer = newGlamourRenderer(width)
	}
}

// SetWidthWithTheme rebuilds the renderer at a new width with a theme
// derived style, upgrading a plain renderer to themed output.
func (m *MarkdownRenderer) SetWidthWithTheme(width int, theme Theme) {
	if width <= 0 {
		return
	}
	m.width = width
	m.useTheme = true
	m.theme = &theme
	m.renderer = newThemedGlamourRenderer(width, theme)
}

// IsDarkMode reports whether the terminal background reads as dark.
func (m *MarkdownRenderer) IsDarkMode() bool {
	return lipgloss.HasDarkBackground()
}

// extractHex picks the hex value for the active background from an
// adaptive color.
func extractHex(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}

// buildStyleFromTheme derives a glamour style config from the theme
// palette, keeping glamour's stock config for everything the palette
// does not cover.
func buildStyleFromTheme(theme Theme, dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	doc := "#000000"
	if dark {
		cfg = styles.DarkStyleConfig
		doc = "#f8f8f2"
	}

	cfg.Document.Color = stringPtr(doc)
	cfg.H1.Color = stringPtr(extractHex(theme.Primary, dark))
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = stringPtr(extractHex(theme.Primary, dark))
	cfg.H3.Color = stringPtr(extractHex(theme.Secondary, dark))
	cfg.Link.Color = stringPtr(extractHex(theme.Highlight, dark))
	cfg.LinkText.Color = stringPtr(extractHex(theme.Secondary, dark))
	cfg.Code.Color = stringPtr(extractHex(theme.Highlight, dark))
	cfg.BlockQuote.Color = stringPtr(extractHex(theme.Subtext, dark))
	cfg.HorizontalRule.Color = stringPtr(extractHex(theme.Border, dark))

	return cfg
}

func stringPtr(s string) *string { return &s }
