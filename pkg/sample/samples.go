package sample

import (
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/arbor/pkg/model"
)

// Sample is a named built-in forest used to demo the tree widget without
// any external data file.
type Sample struct {
	Name        string
	Description string
	Items       []model.Item
}

// DefaultSample returns the sample shown when no data source is given.
func DefaultSample() Sample {
	return FilesystemSample()
}

// FilesystemSample returns a small project directory. Folders carry a
// distinct open icon and accept drops; files are draggable.
func FilesystemSample() Sample {
	locked := false
	return Sample{
		Name:        "filesystem",
		Description: "Project directory with draggable files and droppable folders",
		Items: []model.Item{
			{
				ID: "root", Name: "acme-app",
				Icon: model.TextGlyph("📁"), OpenIcon: model.TextGlyph("📂"),
				Children: []model.Item{
					{
						ID: "src", Name: "src",
						Icon: model.TextGlyph("📁"), OpenIcon: model.TextGlyph("📂"),
						Children: []model.Item{
							{ID: "main", Name: "main.go", Icon: model.TextGlyph("🐹"), Draggable: true,
								Actions: []model.Action{{Label: "open"}, {Label: "rename"}}},
							{
								ID: "lib", Name: "lib",
								Icon: model.TextGlyph("📁"), OpenIcon: model.TextGlyph("📂"),
								Children: []model.Item{
									{ID: "parser", Name: "parser.go", Icon: model.TextGlyph("🐹"), Draggable: true},
									{ID: "lexer", Name: "lexer.go", Icon: model.TextGlyph("🐹"), Draggable: true},
								},
							},
						},
					},
					{
						ID: "docs", Name: "docs",
						Icon: model.TextGlyph("📁"), OpenIcon: model.TextGlyph("📂"),
						Children: []model.Item{
							{ID: "readme", Name: "README.md", Icon: model.TextGlyph("📄"), Draggable: true,
								Actions: []model.Action{{Label: "preview"}}},
							{ID: "changelog", Name: "CHANGELOG.md", Icon: model.TextGlyph("📄"), Draggable: true},
						},
					},
					{
						ID: "vendor", Name: "vendor",
						Icon: model.TextGlyph("📁"), OpenIcon: model.TextGlyph("📂"),
						Children: []model.Item{},
					},
					{ID: "lockfile", Name: "go.sum", Icon: model.TextGlyph("🔒"), Droppable: &locked},
					{ID: "license", Name: "LICENSE"},
				},
			},
		},
	}
}

// OrgChartSample returns a company hierarchy. Nothing here is draggable;
// the selected icon shows the glyph priority rules instead.
func OrgChartSample() Sample {
	star := model.TextGlyph("⭐")
	return Sample{
		Name:        "org",
		Description: "Org chart with colored role markers and selection icons",
		Items: []model.Item{
			{
				ID: "ceo", Name: "Robin Vale (CEO)",
				Icon: model.ColorGlyph{Text: "◆", Color: "#E06C75"}, SelectedIcon: star,
				Children: []model.Item{
					{
						ID: "vp-eng", Name: "Sam Aoki (VP Engineering)",
						Icon: model.ColorGlyph{Text: "◆", Color: "#61AFEF"}, SelectedIcon: star,
						Children: []model.Item{
							{
								ID: "team-core", Name: "Core Platform",
								Icon: model.ColorGlyph{Text: "▣", Color: "#98C379"},
								Children: []model.Item{
									{ID: "dev-1", Name: "Priya Natarajan"},
									{ID: "dev-2", Name: "Ola Bergström"},
								},
							},
							{
								ID: "team-ui", Name: "Interfaces",
								Icon: model.ColorGlyph{Text: "▣", Color: "#98C379"},
								Children: []model.Item{
									{ID: "dev-3", Name: "Marta Kowalczyk"},
								},
							},
						},
					},
					{
						ID: "vp-sales", Name: "Dana Whitfield (VP Sales)",
						Icon: model.ColorGlyph{Text: "◆", Color: "#61AFEF"}, SelectedIcon: star,
						Children: []model.Item{
							{ID: "ae-1", Name: "Jonas Meier"},
							{ID: "ae-2", Name: "Yuki Tanaka"},
						},
					},
				},
			},
		},
	}
}

// MenuSample returns a restaurant menu as a forest of sections. The
// specials section is present but empty, so it renders as an expandable
// branch with nothing inside.
func MenuSample() Sample {
	fixed := false
	return Sample{
		Name:        "menu",
		Description: "Menu forest with an empty section and immovable entries",
		Items: []model.Item{
			{
				ID: "starters", Name: "Starters", OpenIcon: model.TextGlyph("🍽"),
				Children: []model.Item{
					{ID: "soup", Name: "Roast tomato soup", Draggable: true},
					{ID: "bread", Name: "Sourdough and butter", Draggable: true},
				},
			},
			{
				ID: "mains", Name: "Mains", OpenIcon: model.TextGlyph("🍽"),
				Children: []model.Item{
					{ID: "risotto", Name: "Mushroom risotto", Draggable: true},
					{ID: "catch", Name: "Catch of the day", Draggable: true, Droppable: &fixed},
					{ID: "pie", Name: "Shepherd's pie", Draggable: true},
				},
			},
			{
				ID: "specials", Name: "Specials", OpenIcon: model.TextGlyph("🍽"),
				Children: []model.Item{},
			},
			{
				ID: "desserts", Name: "Desserts", OpenIcon: model.TextGlyph("🍽"),
				Children: []model.Item{
					{ID: "tart", Name: "Lemon tart", Draggable: true},
				},
			},
		},
	}
}

// DeepSample returns a narrow twelve-level chain next to a wide fan,
// which exercises scrolling, prefixes, and the ancestor walk.
func DeepSample() Sample {
	chain := model.Item{ID: "d12", Name: "bottom"}
	for i := 11; i >= 1; i-- {
		chain = model.Item{
			ID:       "d" + strconv.Itoa(i),
			Name:     "level " + strconv.Itoa(i),
			Children: []model.Item{chain},
		}
	}

	fan := model.Item{ID: "fan", Name: "fan", Children: make([]model.Item, 0, 24)}
	for i := 1; i <= 24; i++ {
		fan.Children = append(fan.Children, model.Item{
			ID:   "f" + strconv.Itoa(i),
			Name: "entry " + strconv.Itoa(i),
		})
	}

	return Sample{
		Name:        "deep",
		Description: "A deep chain and a wide fan for scroll and depth checks",
		Items:       []model.Item{chain, fan},
	}
}

// BuiltinSamples returns all built-in samples.
func BuiltinSamples() []Sample {
	return []Sample{
		FilesystemSample(),
		OrgChartSample(),
		MenuSample(),
		DeepSample(),
	}
}

// ByName looks up a built-in sample case-insensitively.
func ByName(name string) (Sample, bool) {
	for _, s := range BuiltinSamples() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Sample{}, false
}

// Names returns the registry names in display order.
func Names() []string {
	builtin := BuiltinSamples()
	names := make([]string, len(builtin))
	for i, s := range builtin {
		names[i] = s.Name
	}
	return names
}
