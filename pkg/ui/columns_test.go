package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/arbor/pkg/model"
	"github.com/Dicklesworthstone/arbor/pkg/tree"
)

func columnsFixture() *tree.Model {
	items := []model.Item{
		{
			ID:   "src",
			Name: "src",
			Children: []model.Item{
				{ID: "main", Name: "main.go"},
				{
					ID:   "lib",
					Name: "lib",
					Children: []model.Item{
						{ID: "parser", Name: "parser.go"},
						{ID: "lexer", Name: "lexer.go"},
					},
				},
			},
		},
		{
			ID:       "docs",
			Name:     "docs",
			Children: []model.Item{{ID: "readme", Name: "README.md"}},
		},
		{ID: "standalone", Name: "standalone.txt"},
	}
	return tree.Build(items)
}

func newTestColumns(t *testing.T) ColumnsModel {
	t.Helper()
	theme := DefaultTheme(lipgloss.NewRenderer(nil))
	return NewColumnsModel(columnsFixture(), theme)
}

func TestColumnsInitialState(t *testing.T) {
	c := newTestColumns(t)

	if got := c.SelectedID(); got != "src" {
		t.Errorf("expected first root highlighted, got %q", got)
	}
	if c.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", c.Depth())
	}
}

func TestColumnsMoveClamps(t *testing.T) {
	c := newTestColumns(t)

	c.MoveDown()
	if got := c.SelectedID(); got != "docs" {
		t.Errorf("expected docs after MoveDown, got %q", got)
	}
	c.MoveDown()
	c.MoveDown() // already at bottom
	if got := c.SelectedID(); got != "standalone" {
		t.Errorf("expected standalone at bottom, got %q", got)
	}

	c.MoveUp()
	c.MoveUp()
	c.MoveUp() // already at top
	if got := c.SelectedID(); got != "src" {
		t.Errorf("expected src at top, got %q", got)
	}
}

func TestColumnsDrillAndStepOut(t *testing.T) {
	c := newTestColumns(t)

	c.MoveRight()
	if got := c.SelectedID(); got != "main" {
		t.Errorf("expected first child after drill, got %q", got)
	}

	c.MoveDown()
	if got := c.SelectedID(); got != "lib" {
		t.Errorf("expected lib, got %q", got)
	}

	c.MoveRight()
	if got := c.SelectedID(); got != "parser" {
		t.Errorf("expected parser after drilling into lib, got %q", got)
	}
	if c.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", c.Depth())
	}

	// Stepping out keeps the deeper highlight for a later MoveRight.
	c.MoveLeft()
	if got := c.SelectedID(); got != "lib" {
		t.Errorf("expected focus back on lib, got %q", got)
	}
	if c.Depth() != 3 {
		t.Errorf("expected path retained after MoveLeft, depth %d", c.Depth())
	}
	c.MoveRight()
	if got := c.SelectedID(); got != "parser" {
		t.Errorf("expected remembered highlight, got %q", got)
	}
}

func TestColumnsMoveTruncatesDeeperPath(t *testing.T) {
	c := newTestColumns(t)

	c.MoveRight() // main
	c.MoveDown()  // lib
	c.MoveRight() // parser

	c.JumpToFirstColumn()
	c.MoveDown() // src -> docs invalidates the lib/parser trail
	if got := c.SelectedID(); got != "docs" {
		t.Errorf("expected docs, got %q", got)
	}
	if c.Depth() != 1 {
		t.Errorf("expected truncated path, depth %d", c.Depth())
	}
}

func TestColumnsDrillIntoLeafIsNoop(t *testing.T) {
	c := newTestColumns(t)

	c.MoveDown()
	c.MoveDown() // standalone
	c.MoveRight()
	if got := c.SelectedID(); got != "standalone" {
		t.Errorf("expected drill into leaf to do nothing, got %q", got)
	}
	if c.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", c.Depth())
	}
}

func TestColumnsFocusID(t *testing.T) {
	c := newTestColumns(t)

	if !c.FocusID("parser") {
		t.Fatal("expected FocusID to resolve parser")
	}
	if got := c.SelectedID(); got != "parser" {
		t.Errorf("expected parser focused, got %q", got)
	}
	if c.Depth() != 3 {
		t.Errorf("expected ancestors drilled, depth %d", c.Depth())
	}

	if c.FocusID("missing") {
		t.Error("expected FocusID to reject unknown id")
	}
	if got := c.SelectedID(); got != "parser" {
		t.Errorf("expected failed FocusID to leave state alone, got %q", got)
	}
}

func TestColumnsJumpToLastColumn(t *testing.T) {
	c := newTestColumns(t)

	c.FocusID("lexer")
	c.JumpToFirstColumn()
	if got := c.SelectedID(); got != "src" {
		t.Errorf("expected src in first column, got %q", got)
	}
	c.JumpToLastColumn()
	if got := c.SelectedID(); got != "lexer" {
		t.Errorf("expected lexer in last column, got %q", got)
	}
}

func TestColumnsMoveToTopBottom(t *testing.T) {
	c := newTestColumns(t)

	c.MoveToBottom()
	if got := c.SelectedID(); got != "standalone" {
		t.Errorf("expected standalone after MoveToBottom, got %q", got)
	}
	c.MoveToTop()
	if got := c.SelectedID(); got != "src" {
		t.Errorf("expected src after MoveToTop, got %q", got)
	}
}

func TestColumnsSetModelRevalidatesPath(t *testing.T) {
	c := newTestColumns(t)
	c.FocusID("parser")

	// Rebuild without lib: the trail past src no longer resolves.
	rebuilt := tree.Build([]model.Item{
		{
			ID:       "src",
			Name:     "src",
			Children: []model.Item{{ID: "main", Name: "main.go"}},
		},
	})
	c.SetModel(rebuilt)

	if got := c.SelectedID(); got != "src" {
		t.Errorf("expected path truncated to src, got %q", got)
	}
	if c.Depth() != 1 {
		t.Errorf("expected depth 1 after revalidation, got %d", c.Depth())
	}
}

func TestColumnsSetModelEmptyForest(t *testing.T) {
	c := newTestColumns(t)
	c.SetModel(tree.Build(nil))

	if got := c.SelectedID(); got != "" {
		t.Errorf("expected no selection for empty forest, got %q", got)
	}
	if c.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", c.Depth())
	}
}

func TestColumnsView(t *testing.T) {
	c := newTestColumns(t)
	c.MoveRight()

	view := c.View(100, 20)
	for _, want := range []string{"Top Level", "src", "docs", "main.go", "lib"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if !strings.Contains(view, ">") {
		t.Error("expected highlight marker in view")
	}
}

func TestColumnsViewEmpty(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))
	c := NewColumnsModel(tree.Build(nil), theme)

	view := c.View(80, 20)
	if !strings.Contains(view, "No items") {
		t.Errorf("expected empty-state message, got %q", view)
	}
}
