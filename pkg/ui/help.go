package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Context identifies which part of the host UI is active, so help and
// the tutorial can show the relevant page.
type Context string

const (
	ContextTree     Context = "tree"
	ContextColumns  Context = "columns"
	ContextFilter   Context = "filter"
	ContextPicker   Context = "picker"
	ContextEditor   Context = "editor"
	ContextInsights Context = "insights"
)

// ContextHelpContent contains compact help content for each context.
// Content should fit on one screen (~20 lines) without scrolling.
var ContextHelpContent = map[Context]string{
	ContextTree:     contextHelpTree,
	ContextColumns:  contextHelpColumns,
	ContextFilter:   contextHelpFilter,
	ContextPicker:   contextHelpPicker,
	ContextEditor:   contextHelpEditor,
	ContextInsights: contextHelpInsights,
}

// GetContextHelp returns the help content for a given context.
// Falls back to generic help if the context has no specific content.
func GetContextHelp(ctx Context) string {
	if content, ok := ContextHelpContent[ctx]; ok {
		return content
	}
	return contextHelpGeneric
}

// RenderContextHelp renders the context-specific help modal, a compact
// quick-reference box.
func RenderContextHelp(ctx Context, theme Theme, width, height int) string {
	content := GetContextHelp(ctx)

	r := theme.Renderer

	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Press ` for full tutorial │ Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return modalStyle.Render(b.String())
}

const contextHelpTree = `## Tree View

**Navigation**
  j/k       Move up/down
  l/Right   Expand, then first child
  h/Left    Collapse, then parent
  Space     Toggle expansion
  g/G       Jump to top/bottom
  Esc       Clear selection

**Mouse**
  Click     Select
  Drag      Move draggable items
  Drop low  Move to top level

**Actions**
  e         Edit selected item
  y         Copy selected id
  x         Export tree
  i         Shape insights`

const contextHelpColumns = `## Columns View

**Navigation**
  h/l       Move between columns
  j/k       Move within column
  Enter     Drill into branch
  Backspace Step back out

**Each column shows one level**
• Left: parent level
• Right: children of the
  highlighted branch

Press 1 to return to Tree view`

const contextHelpFilter = `## Filter Mode

**Typing** narrows the tree to
matching names and ids. Ancestors
of matches stay visible so the
paths remain readable.

**Keys**
  Enter     Keep filter, back to tree
  Esc       Clear filter and restore

Matching is case-insensitive;
characters may be non-adjacent.`

const contextHelpPicker = `## Sample Picker

**Navigation**
  j/k       Move selection
  Enter     Load sample
  Esc       Cancel

**Samples**
Built-in forests for exploring:
• filesystem: drag & drop demo
• org: icons and roles
• menu: empty sections
• deep: stress nesting`

const contextHelpEditor = `## Item Editor

Edits the selected item's name
and icon in the demo's copy of
the data, then rebuilds the tree.

**Keys**
  Tab       Next field
  Enter     Apply (on last field)
  Esc       Cancel

The item keeps its id, children,
and expansion state.`

const contextHelpInsights = `## Shape Insights

**Metrics shown**
• Node, branch, leaf counts
• Depth histogram and spread
• Branching factor
• Drag-enabled surface

**Keys**
  i/Esc     Close panel

Metrics recompute on every
reload and edit.`

const contextHelpGeneric = `## Quick Reference

**Global Keys**
  ?         Help overlay
  ` + "`" + `         Full tutorial
  Esc       Close/back
  q         Quit

**Navigation**
  j/k       Move up/down
  h/l       Collapse/expand
  Enter     Select/toggle

**Views**
  1/2       Tree / columns
  s         Samples  e: edit`
