package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dojocards/internal/ui/theme"
)

const bannerArt = `
 ╺┳┓┏━┓ ┏┓┏━┓   ┏━╸┏━┓┏━┓╺┳┓┏━┓
  ┃┃┃ ┃  ┃┃ ┃   ┃  ┣━┫┣┳┛ ┃┃┗━┓
 ╺┻┛┗━┛┗━┛┗━┛   ┗━╸╹ ╹╹┗╸╺┻┛┗━┛`

const bannerCompact = "D O J O · C A R D S"

// renderBanner returns the title banner, or a one-line fallback on narrow or
// short terminals.
func renderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	text := bannerArt
	if compact || width < 40 {
		text = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(style.Render(text))
}
