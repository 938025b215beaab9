package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/dojocards/internal/session"
	"github.com/abhisek/dojocards/internal/ui/components"
	"github.com/abhisek/dojocards/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	if s.nav == nil {
		if s.errMsg != "" {
			return renderError(width, height, s.errMsg)
		}
		return renderLoading(width, height)
	}
	if s.nav.Len() == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  This deck has no cards.")
	}
	return s.renderCardView(width)
}

func (s *DrillScreen) renderCardView(width int) string {
	var b strings.Builder
	cw := min(width-4, 72)

	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Reload failed: "+s.errMsg)))
		b.WriteString("\n")
	}

	bar := components.NewProgressBar("", s.nav.Percent(), true, cw).
		WithFill(theme.BeltColor(s.belt.Theme.Primary))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderCard(cw)))
	b.WriteString("\n\n")

	phase := s.nav.Phase()
	markable := phase == sess.PhaseBack && !s.settling
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		components.NewButton("1", "Correct", markable).View(),
		"   ",
		components.NewButton("2", "Wrong", markable).View(),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
	b.WriteString("\n\n")

	var navLine []string
	if s.nav.CanPrevious() {
		navLine = append(navLine, "← prev")
	}
	if s.nav.CanNext() {
		navLine = append(navLine, "next →")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(strings.Join(navLine, "      "))))

	return b.String()
}

func (s *DrillScreen) renderCard(width int) string {
	card, _ := s.nav.Current()
	cursor := s.nav.Cursor()

	style := theme.Card
	side := "QUESTION"
	text := card.Front
	switch {
	case s.closing:
		text = "· · ·"
	case cursor.IsFlipped:
		style = theme.CardFlipped
		side = "ANSWER"
		text = card.Back
	}

	stats := fmt.Sprintf("%d/%d", card.Correct, card.Wrong)
	header := lipgloss.NewStyle().Foreground(theme.TextDim).Render(side)
	gap := max(1, width-6-lipgloss.Width(header)-lipgloss.Width(stats))
	header += strings.Repeat(" ", gap) + statsStyle(card.Correct, card.Wrong).Render(stats)

	body := lipgloss.NewStyle().
		Width(width - 6).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("\n" + text + "\n")

	content := header + "\n" + body
	if cursor.HasAnsweredCurrent {
		content += "\n" + lipgloss.NewStyle().Width(width-6).Align(lipgloss.Center).
			Render(theme.Hint.Render("recorded"))
	}
	return style.Width(width).Render(content)
}

// statsStyle colours the correct/wrong counter by which side is ahead.
func statsStyle(correct, wrong int) lipgloss.Style {
	switch {
	case wrong > correct:
		return lipgloss.NewStyle().Foreground(theme.Error)
	case correct > wrong:
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim)
}

func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Loading deck...")
}

func renderError(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("Could not load deck\n\n%s\n\nPress N to retry or Esc to go back", msg))
}
