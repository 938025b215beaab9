package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/router"
	"github.com/abhisek/dojocards/internal/screen"
	"github.com/abhisek/dojocards/internal/screens/cardstats"
	"github.com/abhisek/dojocards/internal/screens/drill"
	"github.com/abhisek/dojocards/internal/ui/components"
	"github.com/abhisek/dojocards/internal/ui/layout"
	"github.com/abhisek/dojocards/internal/ui/theme"
)

// ProgressReader reports how far into a saved session a deck is.
type ProgressReader interface {
	Percent(ctx context.Context, beltID string, category deck.Category) float64
}

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Catalog  *deck.Catalog
	Loader   drill.DeckLoader
	Progress ProgressReader
	Stats    cardstats.StatsSource
	Logger   *slog.Logger
}

// HomeScreen picks a belt and a category to drill.
type HomeScreen struct {
	deps    Deps
	belts   []deck.Belt
	beltIdx int
	menu    components.Menu
	percent map[deck.Category]float64
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.BeltProvider = (*HomeScreen)(nil)

// New creates a HomeScreen starting on beltID. An unknown or disabled belt
// falls back to the first enabled one.
func New(deps Deps, beltID string) *HomeScreen {
	h := &HomeScreen{deps: deps}
	for _, b := range deps.Catalog.Belts() {
		if b.Enabled {
			h.belts = append(h.belts, b)
		}
	}
	for i, b := range h.belts {
		if b.ID == beltID {
			h.beltIdx = i
		}
	}
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads deck progress after returning from a drill.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) HeaderBelt() layout.HeaderBelt {
	b, ok := h.belt()
	if !ok {
		return layout.HeaderBelt{}
	}
	return layout.HeaderBelt{Name: b.Name, Color: theme.BeltColor(b.Theme.Primary)}
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if len(h.belts) > 1 {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Belt"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) belt() (deck.Belt, bool) {
	if len(h.belts) == 0 {
		return deck.Belt{}, false
	}
	return h.belts[h.beltIdx], true
}

// refresh rebuilds the menu with current progress for the selected belt.
func (h *HomeScreen) refresh() {
	selected := h.menu.Selected
	b, ok := h.belt()

	h.percent = make(map[deck.Category]float64, len(deck.Categories))
	var items []components.MenuItem
	for _, c := range deck.Categories {
		item := components.MenuItem{Label: c.DisplayName(), Disabled: !ok}
		if ok {
			pct := h.deps.Progress.Percent(context.Background(), b.ID, c)
			h.percent[c] = pct
			if pct > 0 {
				item.Detail = fmt.Sprintf("%d%%", int(pct*100))
			}
			item.Action = h.openDrill(b, c)
		}
		items = append(items, item)
	}
	items = append(items,
		components.MenuItem{Label: "Card Stats", Action: func() tea.Cmd {
			return router.PushCmd(cardstats.New(h.deps.Stats))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) openDrill(b deck.Belt, c deck.Category) func() tea.Cmd {
	return func() tea.Cmd {
		return router.PushCmd(drill.New(h.deps.Loader, b, c, h.deps.Logger))
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && len(h.belts) > 1 {
		switch kmsg.String() {
		case "left", "h":
			h.beltIdx = (h.beltIdx + len(h.belts) - 1) % len(h.belts)
			h.refresh()
			return h, nil
		case "right", "l":
			h.beltIdx = (h.beltIdx + 1) % len(h.belts)
			h.refresh()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := min(max(width-6, 20), 48)

	var sections []string
	sections = append(sections, renderBanner(width, compact))

	b, ok := h.belt()
	if !ok {
		sections = append(sections, lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No belts have decks yet."))
	} else {
		beltLine := lipgloss.NewStyle().Foreground(theme.BeltColor(b.Theme.Primary)).Bold(true).
			Render(fmt.Sprintf("%s belt (%s)", b.Name, b.Color))
		if len(h.belts) > 1 {
			beltLine = theme.Hint.Render("◀  ") + beltLine + theme.Hint.Render("  ▶")
		}
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, beltLine))

		bar := components.NewProgressBar("Progress", h.percent[deck.CategoryAll], true, cw).
			WithFill(theme.BeltColor(b.Theme.Primary))
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	}

	menu := lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(strings.TrimRight(h.menu.View(), "\n"))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return strings.Join(sections, "\n\n")
}
