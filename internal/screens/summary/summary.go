package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/router"
	"github.com/abhisek/dojocards/internal/screen"
	"github.com/abhisek/dojocards/internal/session"
	"github.com/abhisek/dojocards/internal/ui/layout"
	"github.com/abhisek/dojocards/internal/ui/theme"
)

// maxMissedShown caps the missed-card list.
const maxMissedShown = 8

// SummaryScreen displays the tallies of a finished drill run.
type SummaryScreen struct {
	summary  *session.Summary
	belt     deck.Belt
	category deck.Category
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BeltProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary, belt deck.Belt, category deck.Category) *SummaryScreen {
	return &SummaryScreen{summary: summary, belt: belt, category: category}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Drill Summary"
}

func (s *SummaryScreen) HeaderBelt() layout.HeaderBelt {
	return layout.HeaderBelt{Name: s.belt.Name, Color: theme.BeltColor(s.belt.Theme.Primary)}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.PopCmd()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		fmt.Sprintf("%s · %s complete", s.belt.Name, s.category.DisplayName())))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalAnswered, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	if len(sum.Missed) == 0 {
		if sum.TotalAnswered > 0 {
			b.WriteString(center(theme.Correct, "No misses. Ippon!"))
		}
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review these")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, front := range sum.Missed {
		if i == maxMissedShown {
			b.WriteString(center(theme.Hint, fmt.Sprintf("and %d more", len(sum.Missed)-maxMissedShown)))
			b.WriteString("\n")
			break
		}
		b.WriteString(center(theme.Incorrect, front))
		b.WriteString("\n")
	}

	return b.String()
}
