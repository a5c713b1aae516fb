package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// EditResult carries submitted edits back to the host.
type EditResult struct {
	ID   string
	Name string
	Icon string
}

// EditorModel wraps a huh form that edits the selected item's display
// fields. The bound values live behind pointers so the model stays safe
// to copy while the form is running.
type EditorModel struct {
	form   *huh.Form
	itemID string
	name   *string
	icon   *string
	theme  Theme
	width  int
	height int
}

// NewEditorModel builds an editor seeded from the given item. A colored
// glyph is edited as its bare text and rewritten as a plain glyph on
// submit.
func NewEditorModel(item *model.Item, theme Theme) EditorModel {
	name := item.Name
	icon := glyphText(item.Icon)

	m := EditorModel{
		itemID: item.ID,
		name:   &name,
		icon:   &icon,
		theme:  theme,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Display name shown in the tree").
				Value(m.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Icon").
				Description("Optional glyph; leave empty for the role default").
				Value(m.icon),
		),
	).
		WithWidth(46).
		WithShowHelp(true)

	return m
}

// Init starts the embedded form.
func (m EditorModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update feeds a message to the form.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m, cmd
}

// Completed returns true once the form was submitted.
func (m EditorModel) Completed() bool {
	return m.form != nil && m.form.State == huh.StateCompleted
}

// Aborted returns true once the form was cancelled.
func (m EditorModel) Aborted() bool {
	return m.form != nil && m.form.State == huh.StateAborted
}

// Result returns the edited values. Only meaningful to apply once
// Completed reports true.
func (m EditorModel) Result() EditResult {
	r := EditResult{ID: m.itemID}
	if m.name != nil {
		r.Name = strings.TrimSpace(*m.name)
	}
	if m.icon != nil {
		r.Icon = strings.TrimSpace(*m.icon)
	}
	return r
}

// SetSize updates the dimensions used for centering.
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the form in a centered modal.
func (m EditorModel) View() string {
	if m.form == nil {
		return ""
	}
	t := m.theme

	title := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Render("Edit Item")
	id := t.Renderer.NewStyle().
		Foreground(t.Muted).
		Render("id: " + m.itemID)

	content := strings.Join([]string{title, id, "", m.form.View()}, "\n")

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(1, 2).
		Render(content)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// glyphText returns the editable text of a glyph, or "" when there is
// nothing textual to edit.
func glyphText(g model.Glyph) string {
	switch v := g.(type) {
	case model.TextGlyph:
		return string(v)
	case model.ColorGlyph:
		return v.Text
	default:
		return ""
	}
}

// ApplyEdit returns a copy of the forest with the edit applied to the
// matching item. An empty name keeps the old one; an empty icon clears
// back to the role default. Reports false when the id is absent.
func ApplyEdit(items []model.Item, r EditResult) ([]model.Item, bool) {
	forest := make([]model.Item, len(items))
	for i := range items {
		forest[i] = items[i].Clone()
	}
	if !applyEditTo(forest, r) {
		return nil, false
	}
	return forest, true
}

func applyEditTo(items []model.Item, r EditResult) bool {
	for i := range items {
		if items[i].ID == r.ID {
			if r.Name != "" {
				items[i].Name = r.Name
			}
			if r.Icon == "" {
				items[i].Icon = nil
			} else {
				items[i].Icon = model.TextGlyph(r.Icon)
			}
			return true
		}
		if applyEditTo(items[i].Children, r) {
			return true
		}
	}
	return false
}
