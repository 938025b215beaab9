package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, dojo tatami and belt tones
var (
	Primary   = lipgloss.Color("#C8102E") // Hinomaru red
	Secondary = lipgloss.Color("#2E7D6B") // Tatami green
	Accent    = lipgloss.Color("#FFD700") // Gokyu yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F5F0E6") // Gi white
	TextDim   = lipgloss.Color("#9CA3AF") // Gray
	BgDark    = lipgloss.Color("#111827") // Near black
	BgCard    = lipgloss.Color("#1F2937") // Charcoal
	Border    = lipgloss.Color("#374151") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// CardFlipped frames the answer side of a flashcard.
	CardFlipped = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.ThickBorder()).
			BorderForeground(Secondary).
			Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// BeltColor parses a belt's hex colour, falling back to Accent when hex is
// empty.
func BeltColor(hex string) color.Color {
	if hex == "" {
		return Accent
	}
	return lipgloss.Color(hex)
}
