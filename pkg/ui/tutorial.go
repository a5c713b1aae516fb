package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TutorialPage represents a single page of tutorial content.
type TutorialPage struct {
	ID      string // Unique identifier (e.g., "welcome", "drag-drop")
	Title   string // Page title displayed in header
	Content string // Markdown content
	Section string // Parent section for TOC grouping
}

type tutorialFocus int

const (
	focusTutorialContent tutorialFocus = iota
	focusTutorialTOC
)

// TutorialModel manages the tutorial overlay state.
type TutorialModel struct {
	pages        []TutorialPage
	currentPage  int
	scrollOffset int
	tocVisible   bool
	progress     map[string]bool // Tracks which pages have been viewed
	width        int
	height       int
	theme        Theme

	markdownRenderer *MarkdownRenderer

	focus       tutorialFocus
	shouldClose bool // Signal to parent to close the tutorial
	tocCursor   int  // Cursor position in TOC when focused
}

// NewTutorialModel creates a new tutorial model with default pages.
func NewTutorialModel(theme Theme) TutorialModel {
	contentWidth := 80 - 6
	if contentWidth < 40 {
		contentWidth = 40
	}

	return TutorialModel{
		pages:            defaultTutorialPages(),
		progress:         make(map[string]bool),
		width:            80,
		height:           24,
		theme:            theme,
		markdownRenderer: NewMarkdownRendererWithTheme(contentWidth, theme),
		focus:            focusTutorialContent,
	}
}

// Init initializes the tutorial model.
func (m TutorialModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input for the tutorial with focus management.
func (m TutorialModel) Update(msg tea.Msg) (TutorialModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			if m.currentPage >= 0 && m.currentPage < len(m.pages) {
				m.progress[m.pages[m.currentPage].ID] = true
			}
			m.shouldClose = true
			return m, nil

		case "t":
			m.tocVisible = !m.tocVisible
			if m.tocVisible {
				m.focus = focusTutorialTOC
				m.tocCursor = m.currentPage
			} else {
				m.focus = focusTutorialContent
			}
			return m, nil

		case "tab":
			if m.tocVisible {
				if m.focus == focusTutorialContent {
					m.focus = focusTutorialTOC
					m.tocCursor = m.currentPage
				} else {
					m.focus = focusTutorialContent
				}
			} else {
				m.NextPage()
			}
			return m, nil
		}

		if m.focus == focusTutorialTOC && m.tocVisible {
			return m.handleTOCKeys(msg), nil
		}
		return m.handleContentKeys(msg), nil
	}
	return m, nil
}

func (m TutorialModel) handleContentKeys(msg tea.KeyMsg) TutorialModel {
	switch msg.String() {
	case "right", "l", "n", " ":
		m.NextPage()
	case "left", "h", "p", "shift+tab":
		m.PrevPage()

	case "j", "down":
		m.scrollOffset++
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}

	case "ctrl+d":
		m.scrollOffset += m.contentHeight() / 2
	case "ctrl+u":
		m.scrollOffset -= m.contentHeight() / 2
		if m.scrollOffset < 0 {
			m.scrollOffset = 0
		}

	case "g", "home":
		m.scrollOffset = 0
	case "G", "end":
		m.scrollOffset = 9999 // Clamped in View

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		pageNum := int(msg.String()[0] - '0')
		if pageNum > 0 && pageNum <= len(m.pages) {
			m.JumpToPage(pageNum - 1)
		}
	}
	return m
}

func (m TutorialModel) handleTOCKeys(msg tea.KeyMsg) TutorialModel {
	switch msg.String() {
	case "j", "down":
		if m.tocCursor < len(m.pages)-1 {
			m.tocCursor++
		}
	case "k", "up":
		if m.tocCursor > 0 {
			m.tocCursor--
		}
	case "g", "home":
		m.tocCursor = 0
	case "G", "end":
		m.tocCursor = len(m.pages) - 1
	case "enter", " ":
		m.JumpToPage(m.tocCursor)
		m.focus = focusTutorialContent
	case "h", "left":
		m.focus = focusTutorialContent
	}
	return m
}

// View renders the tutorial overlay.
func (m TutorialModel) View() string {
	if len(m.pages) == 0 {
		return m.renderEmptyState()
	}

	if m.currentPage >= len(m.pages) {
		m.currentPage = len(m.pages) - 1
	}
	if m.currentPage < 0 {
		m.currentPage = 0
	}

	currentPage := m.pages[m.currentPage]
	m.progress[currentPage.ID] = true

	r := m.theme.Renderer

	contentWidth := m.width - 6
	if m.tocVisible {
		contentWidth -= 24
	}
	if contentWidth < 40 {
		contentWidth = 40
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(len(m.pages)))
	b.WriteString("\n")

	sepStyle := r.NewStyle().Foreground(m.theme.Border)
	b.WriteString(sepStyle.Render(strings.Repeat("─", contentWidth+4)))
	b.WriteString("\n")

	pageTitleStyle := r.NewStyle().Bold(true).Foreground(m.theme.Primary)
	sectionStyle := r.NewStyle().Foreground(m.theme.Subtext).Italic(true)
	pageTitle := pageTitleStyle.Render(currentPage.Title)
	if currentPage.Section != "" {
		pageTitle += sectionStyle.Render(" - " + currentPage.Section)
	}
	b.WriteString(pageTitle)
	b.WriteString("\n\n")

	if m.tocVisible {
		toc := m.renderTOC()
		content := m.renderContent(currentPage)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, toc, "  ", content))
	} else {
		b.WriteString(m.renderContent(currentPage))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Width(m.width).
		MaxHeight(m.height)

	return modalStyle.Render(b.String())
}

// renderHeader renders the tutorial title with a page progress bar.
func (m TutorialModel) renderHeader(totalPages int) string {
	r := m.theme.Renderer

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)

	pageNum := m.currentPage + 1
	progressText := r.NewStyle().
		Foreground(m.theme.Subtext).
		Render(fmt.Sprintf("[%d/%d]", pageNum, totalPages))

	barWidth := 10
	filledWidth := 0
	if totalPages > 0 {
		filledWidth = (pageNum * barWidth) / totalPages
		if filledWidth < 1 && pageNum > 0 {
			filledWidth = 1
		}
	}
	if filledWidth > barWidth {
		filledWidth = barWidth
	}
	progressBar := r.NewStyle().
		Foreground(m.theme.Drop).
		Render(strings.Repeat("█", filledWidth)) +
		r.NewStyle().
			Foreground(m.theme.Muted).
			Render(strings.Repeat("░", barWidth-filledWidth))

	title := titleStyle.Render("🌲 arbor Tutorial")

	return title + "  " + progressText + " " + progressBar
}

// renderContent renders the page content with Glamour markdown and
// scroll handling.
func (m TutorialModel) renderContent(page TutorialPage) string {
	r := m.theme.Renderer

	renderedContent := page.Content
	if m.markdownRenderer != nil {
		if rendered, err := m.markdownRenderer.Render(page.Content); err == nil {
			renderedContent = strings.TrimSpace(rendered)
		}
	}

	lines := strings.Split(renderedContent, "\n")

	visibleHeight := m.contentHeight()

	maxScroll := len(lines) - visibleHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}

	endLine := m.scrollOffset + visibleHeight
	if endLine > len(lines) {
		endLine = len(lines)
	}
	visibleLines := lines[m.scrollOffset:endLine]

	content := strings.Join(visibleLines, "\n")

	if m.scrollOffset > 0 {
		scrollUpHint := r.NewStyle().Foreground(m.theme.Muted).Render("↑ more above")
		content = scrollUpHint + "\n" + content
	}
	if endLine < len(lines) {
		scrollDownHint := r.NewStyle().Foreground(m.theme.Muted).Render("↓ more below")
		content = content + "\n" + scrollDownHint
	}

	return content
}

func (m TutorialModel) contentHeight() int {
	visibleHeight := m.height - 10 // header, footer, padding
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	return visibleHeight
}

// renderTOC renders the table of contents sidebar with focus indication.
func (m TutorialModel) renderTOC() string {
	r := m.theme.Renderer

	borderColor := m.theme.Border
	if m.focus == focusTutorialTOC {
		borderColor = m.theme.Primary
	}

	tocStyle := r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(22)

	headerStyle := r.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)

	sectionStyle := r.NewStyle().
		Foreground(m.theme.Secondary).
		Bold(true)

	itemStyle := r.NewStyle().
		Foreground(m.theme.Subtext)

	selectedStyle := r.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)

	cursorStyle := r.NewStyle().
		Bold(true).
		Foreground(m.theme.Drag)

	viewedStyle := r.NewStyle().
		Foreground(m.theme.Drop)

	var b strings.Builder
	b.WriteString(headerStyle.Render("Contents"))
	if m.focus == focusTutorialTOC {
		b.WriteString(r.NewStyle().Foreground(m.theme.Primary).Render(" ●"))
	}
	b.WriteString("\n")

	currentSection := ""
	for i, page := range m.pages {
		if page.Section != currentSection && page.Section != "" {
			currentSection = page.Section
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("▸ " + currentSection))
			b.WriteString("\n")
		}

		prefix := "   "
		style := itemStyle

		if m.focus == focusTutorialTOC && i == m.tocCursor {
			prefix = " → "
			style = cursorStyle
		} else if i == m.currentPage {
			prefix = " ▶ "
			style = selectedStyle
		}

		title := page.Title
		if len(title) > 14 {
			title = title[:12] + "…"
		}

		viewed := ""
		if m.progress[page.ID] {
			viewed = viewedStyle.Render(" ✓")
		}

		b.WriteString(style.Render(prefix+title) + viewed)
		b.WriteString("\n")
	}

	return tocStyle.Render(b.String())
}

// renderFooter renders context-sensitive navigation hints.
func (m TutorialModel) renderFooter() string {
	r := m.theme.Renderer

	keyStyle := r.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)

	descStyle := r.NewStyle().
		Foreground(m.theme.Subtext)

	sepStyle := r.NewStyle().
		Foreground(m.theme.Muted)

	var hints []string

	if m.focus == focusTutorialTOC && m.tocVisible {
		hints = []string{
			keyStyle.Render("j/k") + descStyle.Render(" select"),
			keyStyle.Render("Enter") + descStyle.Render(" go to page"),
			keyStyle.Render("Tab") + descStyle.Render(" back to content"),
			keyStyle.Render("t") + descStyle.Render(" hide TOC"),
			keyStyle.Render("q") + descStyle.Render(" close"),
		}
	} else {
		hints = []string{
			keyStyle.Render("←/→/Space") + descStyle.Render(" pages"),
			keyStyle.Render("j/k") + descStyle.Render(" scroll"),
			keyStyle.Render("t") + descStyle.Render(" TOC"),
			keyStyle.Render("q") + descStyle.Render(" close"),
		}
	}

	sep := sepStyle.Render(" │ ")
	return strings.Join(hints, sep)
}

// renderEmptyState renders a message when no pages are available.
func (m TutorialModel) renderEmptyState() string {
	r := m.theme.Renderer

	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(2, 4)

	return style.Render("No tutorial pages available.\n\nPress Esc to close.")
}

// NextPage advances to the next page, resetting scroll.
func (m *TutorialModel) NextPage() {
	if m.currentPage < len(m.pages)-1 {
		m.progress[m.pages[m.currentPage].ID] = true
		m.currentPage++
		m.scrollOffset = 0
	}
}

// PrevPage goes back one page, resetting scroll.
func (m *TutorialModel) PrevPage() {
	if m.currentPage > 0 {
		m.progress[m.pages[m.currentPage].ID] = true
		m.currentPage--
		m.scrollOffset = 0
	}
}

// JumpToPage jumps directly to a page by index.
func (m *TutorialModel) JumpToPage(index int) {
	if index >= 0 && index < len(m.pages) {
		m.progress[m.pages[m.currentPage].ID] = true
		m.currentPage = index
		m.scrollOffset = 0
	}
}

// SetSize updates the tutorial dimensions and the markdown wrap width.
func (m *TutorialModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - 6
	if m.tocVisible {
		contentWidth -= 24
	}
	if contentWidth < 40 {
		contentWidth = 40
	}
	if m.markdownRenderer != nil {
		m.markdownRenderer.SetWidthWithTheme(contentWidth, m.theme)
	}
}

// MarkViewed marks a page as viewed.
func (m *TutorialModel) MarkViewed(pageID string) {
	m.progress[pageID] = true
}

// Progress returns the viewed-page map.
func (m TutorialModel) Progress() map[string]bool {
	return m.progress
}

// CurrentPageID returns the id of the page being shown.
func (m TutorialModel) CurrentPageID() string {
	if m.currentPage >= 0 && m.currentPage < len(m.pages) {
		return m.pages[m.currentPage].ID
	}
	return ""
}

// IsComplete reports whether every page has been viewed.
func (m TutorialModel) IsComplete() bool {
	for _, page := range m.pages {
		if !m.progress[page.ID] {
			return false
		}
	}
	return len(m.pages) > 0
}

// ShouldClose reports whether the user asked to leave the tutorial.
func (m TutorialModel) ShouldClose() bool {
	return m.shouldClose
}

// ResetClose clears the close signal after the parent handled it.
func (m *TutorialModel) ResetClose() {
	m.shouldClose = false
}

// PageCount returns the number of tutorial pages.
func (m TutorialModel) PageCount() int {
	return len(m.pages)
}

// CenterTutorial places the rendered tutorial in the middle of the
// terminal.
func (m TutorialModel) CenterTutorial(termWidth, termHeight int) string {
	return lipgloss.Place(
		termWidth,
		termHeight,
		lipgloss.Center,
		lipgloss.Center,
		m.View(),
	)
}

func defaultTutorialPages() []TutorialPage {
	return []TutorialPage{
		{
			ID:      "welcome",
			Title:   "Welcome",
			Section: "Intro",
			Content: tutorialWelcomeContent,
		},
		{
			ID:      "navigation",
			Title:   "Navigation",
			Section: "Basics",
			Content: tutorialNavigationContent,
		},
		{
			ID:      "drag-drop",
			Title:   "Drag & Drop",
			Section: "Basics",
			Content: tutorialDragDropContent,
		},
		{
			ID:      "data",
			Title:   "Data & Reload",
			Section: "Data",
			Content: tutorialDataContent,
		},
		{
			ID:      "tools",
			Title:   "Views & Tools",
			Section: "Tools",
			Content: tutorialToolsContent,
		},
		{
			ID:      "keys",
			Title:   "Key Reference",
			Section: "Reference",
			Content: tutorialKeysContent,
		},
	}
}

const tutorialWelcomeContent = `## Welcome to arbor

arbor is a collapsible tree view for the terminal: keyboard-first
navigation, mouse drag and drop, and per-item icons and actions.

This demo wraps the tree widget with everything a host application
typically adds around it:

- a markdown detail pane for the selected item
- filtering, editing, exporting
- live reload when the data file changes

**Getting around this tutorial**

- Space or → for the next page
- t for the table of contents
- q or Esc to leave

The tree on every page of this tutorial is the same one you were
just looking at; nothing is modified while the tutorial is open.`

const tutorialNavigationContent = `## Navigation

All movement happens over the *visible* rows: children of a
collapsed branch are skipped.

**Vertical**

- j/k or ↓/↑ move one row; the edges are quiet (no wrap)
- g/G jump to the first/last visible row
- PgUp/PgDn move by half a screen

**Horizontal, the two-phase rule**

- → on a collapsed branch *expands it* and stays put
- → again moves to the first child
- ← on an expanded branch *collapses it* and stays put
- ← again jumps to the parent

**Expansion**

- Space or Enter toggles the branch under the cursor
- E expands every branch, C collapses them all

Keyboard navigation needs a selection to act on: click a row or
press j to select the first row, then navigate from there.`

const tutorialDragDropContent = `## Drag & Drop

Items marked *draggable* can be picked up with the left mouse
button. Drag a row a little and the widget lifts it:

- the dragged row dims and gains a ⇕ marker
- rows that will accept the drop highlight as you pass over them
- items that refuse drops (and the item you are dragging) never
  highlight

**Dropping**

Release over a highlighted row to hand the pair to the host. This
demo *moves* the dragged subtree under the target and rebuilds the
tree, so you can reorganize the sample freely.

Release over the empty space below the tree to move an item to the
top level.

Release anywhere else and nothing happens; the drag simply ends.

In the filesystem sample, files are draggable and ` + "`go.sum`" + `
refuses drops, so you can watch both behaviors.`

const tutorialDataContent = `## Data & Reload

The demo ships with built-in samples (press **s** to switch), and
can load your own forest from JSON or YAML:

    arbor --data team.yaml

Each item needs an ` + "`id`" + ` and a ` + "`name`" + `; ` + "`children`" + ` nests further
items. A *present but empty* children list makes an expandable
empty branch, while an absent one makes a leaf.

**Live reload**

While a data file is loaded, arbor watches it. Save the file and
the tree rebuilds in place:

- selection and expansion survive by id
- a toast summarizes the change ("2 added, 1 removed")
- broken intermediate saves are reported and skipped, and the
  last good tree stays up

Reloading happens off the UI thread; identical rewrites are
detected by content hash and skipped.`

const tutorialToolsContent = `## Views & Tools

**Filter** (/) narrows the tree to matches on name or id, keeping
ancestors visible. Enter keeps the filter, Esc restores the full
tree.

**Columns view** (2) shows the same tree as Miller columns: each
column is one level, Enter drills in, Backspace steps out. 1
returns to the tree.

**Editor** (e) opens a small form over the selected item to rename
it or change its icon; the tree rebuilds with your edit applied.

**Insights** (i) summarizes the tree shape: counts, depth
histogram, branching factor.

**Exports** (x) write the current tree as markdown, HTML, SVG,
PNG, or a plain-text outline, into the export directory with a
timestamped name.

**Clipboard** (y) copies the selected id. **Back** (b) returns to
the previously selected item.`

const tutorialKeysContent = `## Key Reference

**Tree**

    j/k ↓/↑     move        g/G    top/bottom
    h/l ←/→     collapse/expand (two-phase)
    Space/Enter toggle      E/C    expand/collapse all
    PgUp/PgDn   half screen Esc    deselect

**Views**

    1    tree view          2      columns view
    i    insights           ?      quick help
    ` + "`" + `    this tutorial

**Tools**

    /    filter             s      samples
    e    edit item          y      copy id
    x    export             b      back in history

**Session**

    q / Ctrl+C  quit

Every key is also shown in the footer of the screen it applies
to.`
