// insights.go - Shape metrics overlay for the demo shell
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/arbor/pkg/analysis"
)

const insightsBarWidth = 24

// renderInsightsOverlay draws the shape metrics modal centered in the
// given area.
func renderInsightsOverlay(shape *analysis.Shape, theme Theme, width, height int) string {
	r := theme.Renderer

	boxWidth := 54
	if boxWidth > width-6 {
		boxWidth = width - 6
	}
	if boxWidth < 32 {
		boxWidth = 32
	}

	titleStyle := r.NewStyle().Foreground(theme.Primary).Bold(true)
	labelStyle := r.NewStyle().Foreground(theme.Secondary).Bold(true)
	detailStyle := r.NewStyle().Foreground(theme.Subtext)
	mutedStyle := r.NewStyle().Foreground(theme.Muted)
	barStyle := r.NewStyle().Foreground(theme.Highlight)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Shape Insights"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", boxWidth-6)))
	b.WriteString("\n\n")

	if shape == nil || shape.NodeCount == 0 {
		b.WriteString(mutedStyle.Render("The forest is empty, nothing to measure."))
	} else {
		for _, insight := range shape.Insights() {
			b.WriteString(labelStyle.Render(insight.Label))
			b.WriteString("\n")
			b.WriteString(detailStyle.Render("  " + insight.Detail))
			b.WriteString("\n")
		}

		if len(shape.DepthHistogram) > 0 {
			b.WriteString("\n")
			b.WriteString(labelStyle.Render("nodes per depth"))
			b.WriteString("\n")
			b.WriteString(renderDepthBars(shape.DepthHistogram, barStyle, mutedStyle))
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Italic(true).Render("i or Esc to close"))

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderDepthBars scales the histogram to a fixed bar width so deep
// forests stay inside the modal.
func renderDepthBars(histogram []int, barStyle, countStyle lipgloss.Style) string {
	maxCount := 0
	for _, count := range histogram {
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount == 0 {
		return ""
	}

	var b strings.Builder
	for depth, count := range histogram {
		cells := count * insightsBarWidth / maxCount
		if count > 0 && cells == 0 {
			cells = 1
		}
		b.WriteString(fmt.Sprintf("  %2d ", depth))
		b.WriteString(barStyle.Render(strings.Repeat("█", cells)))
		b.WriteString(countStyle.Render(fmt.Sprintf(" %d", count)))
		b.WriteString("\n")
	}
	return b.String()
}
