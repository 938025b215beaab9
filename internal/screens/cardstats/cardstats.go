package cardstats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojocards/internal/history"
	"github.com/abhisek/dojocards/internal/router"
	"github.com/abhisek/dojocards/internal/screen"
	"github.com/abhisek/dojocards/internal/ui/layout"
	"github.com/abhisek/dojocards/internal/ui/theme"
)

// StatsSource reads recorded answer history.
type StatsSource interface {
	All(ctx context.Context) map[string]history.Stats
	History(ctx context.Context, front string) []bool
}

type statsLoadedMsg struct {
	Entries []history.Entry
}

// CardStatsScreen lists every answered card, weakest first. Enter expands a
// row to show its recent outcomes.
type CardStatsScreen struct {
	source   StatsSource
	entries  []history.Entry
	recent   map[string][]bool
	selected int
	offset   int
	expanded map[int]bool
	loaded   bool
}

var _ screen.Screen = (*CardStatsScreen)(nil)
var _ screen.KeyHintProvider = (*CardStatsScreen)(nil)

// New creates a new CardStatsScreen.
func New(source StatsSource) *CardStatsScreen {
	return &CardStatsScreen{
		source:   source,
		recent:   make(map[string][]bool),
		expanded: make(map[int]bool),
	}
}

func (s *CardStatsScreen) Init() tea.Cmd {
	source := s.source
	return func() tea.Msg {
		return statsLoadedMsg{Entries: history.Ranked(source.All(context.Background()))}
	}
}

func (s *CardStatsScreen) Title() string {
	return "Card Stats"
}

func (s *CardStatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Recent answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CardStatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.entries = msg.Entries
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.PopCmd()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.entries) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			front := s.entries[s.selected].Front
			if _, ok := s.recent[front]; !ok {
				s.recent[front] = s.source.History(context.Background(), front)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *CardStatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Start a drill!")
	}

	// Keep the selection in view; expanded rows take an extra line.
	rows := max(1, (height-2)/2)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")

	end := min(len(s.entries), s.offset+rows)
	for i := s.offset; i < end; i++ {
		e := s.entries[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-36s %3d correct  %3d wrong  %+3d", prefix, truncate(e.Front, 36), e.Correct, e.Wrong, e.Score())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Score() > 0 {
			style = style.Foreground(theme.Error)
		}
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				renderRecent(s.recent[e.Front])))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderRecent draws recent outcomes oldest first, or notes that the card only
// has imported totals.
func renderRecent(outcomes []bool) string {
	if len(outcomes) == 0 {
		return theme.Hint.Render("    No recent answers (totals only)")
	}
	var marks []string
	for _, ok := range outcomes {
		if ok {
			marks = append(marks, theme.Correct.Render("✓"))
		} else {
			marks = append(marks, theme.Incorrect.Render("✗"))
		}
	}
	return "    " + theme.Hint.Render("recent: ") + strings.Join(marks, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
