package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/arbor/pkg/sample"
)

// SamplePickerModel provides a quick built-in-sample selection modal.
type SamplePickerModel struct {
	samples       []sample.Sample
	currentName   string // Sample currently loaded in the host
	selectedIndex int
	width         int
	height        int
	theme         Theme
}

// NewSamplePickerModel creates a picker over the built-in samples,
// highlighting the one currently loaded.
func NewSamplePickerModel(currentName string, theme Theme) SamplePickerModel {
	samples := sample.BuiltinSamples()

	selectedIdx := 0
	for i, s := range samples {
		if strings.EqualFold(s.Name, currentName) {
			selectedIdx = i
			break
		}
	}

	return SamplePickerModel{
		samples:       samples,
		currentName:   currentName,
		selectedIndex: selectedIdx,
		theme:         theme,
	}
}

// SetSize updates the picker dimensions.
func (m *SamplePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up.
func (m *SamplePickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down.
func (m *SamplePickerModel) MoveDown() {
	if m.selectedIndex < len(m.samples)-1 {
		m.selectedIndex++
	}
}

// SelectedSample returns the highlighted sample.
func (m *SamplePickerModel) SelectedSample() *sample.Sample {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.samples) {
		return &m.samples[m.selectedIndex]
	}
	return nil
}

// View renders the sample picker overlay.
func (m *SamplePickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 48
	if m.width < 58 {
		boxWidth = m.width - 10
	}
	if boxWidth < 28 {
		boxWidth = 28
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("Load Sample"))
	lines = append(lines, "")

	descWidth := boxWidth - 10
	if descWidth < 12 {
		descWidth = 12
	}

	for i, s := range m.samples {
		isSelected := i == m.selectedIndex
		isCurrent := strings.EqualFold(s.Name, m.currentName)

		itemStyle := t.Renderer.NewStyle()
		if isSelected {
			itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
		} else {
			itemStyle = itemStyle.Foreground(t.Base.GetForeground())
		}

		prefix := "  "
		if isSelected {
			prefix = "> "
		}

		suffix := ""
		if isCurrent {
			checkStyle := t.Renderer.NewStyle().Foreground(t.Secondary)
			suffix = " " + checkStyle.Render("✓")
		}

		lines = append(lines, itemStyle.Render(prefix+s.Name)+suffix)

		descStyle := t.Renderer.NewStyle().Foreground(t.Muted)
		desc := s.Description
		if len([]rune(desc)) > descWidth {
			desc = string([]rune(desc)[:descWidth-1]) + "…"
		}
		lines = append(lines, descStyle.Render("    "+desc))
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate | enter: load | esc: cancel"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	box := boxStyle.Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
