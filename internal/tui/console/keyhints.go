package console

import (
	"github.com/charmbracelet/lipgloss"

	"tasnim.dev/cloud-console/internal/tui/theme"
)

type keyHint struct {
	key  string
	desc string
}

// RenderKeyHints renders a compact one-line footer with key hints appropriate
// for the given help context. Hints are truncated to fit the given width.
func RenderKeyHints(ctx HelpContext, width int) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	descStyle := lipgloss.NewStyle().Foreground(theme.Muted)
	sep := descStyle.Render(" · ")

	var result string
	used := 0
	for i, h := range hintsForContext(ctx) {
		n := lipgloss.Width(h.key) + 1 + lipgloss.Width(h.desc)
		if i > 0 {
			n += 3
		}
		if width > 0 && used+n > width && i > 0 {
			break
		}
		if i > 0 {
			result += sep
		}
		result += keyStyle.Render(h.key) + " " + descStyle.Render(h.desc)
		used += n
	}
	return result
}

func hintsForContext(ctx HelpContext) []keyHint {
	switch ctx {
	case HelpContextRoot:
		return []keyHint{
			{"Enter", "open"},
			{"j/k", "navigate"},
			{"?", "help"},
			{"q", "quit"},
		}
	case HelpContextTable:
		return []keyHint{
			{"Enter", "open"},
			{"/", "search"},
			{"s/S", "sort"},
			{"n/p", "page"},
			{"a", "auto-refresh"},
			{"N", "create"},
			{"d", "delete"},
			{"?", "help"},
		}
	case HelpContextVPCDetail:
		return []keyHint{
			{"Tab", "switch"},
			{"N", "create"},
			{"d", "delete row"},
			{"D", "delete VPC"},
			{"Esc", "back"},
			{"?", "help"},
		}
	case HelpContextSubnetDetail:
		return []keyHint{
			{"+", "connect"},
			{"x", "disconnect"},
			{"D", "delete"},
			{"Esc", "back"},
			{"?", "help"},
		}
	case HelpContextSGDetail:
		return []keyHint{
			{"Tab", "switch"},
			{"A", "add rule"},
			{"x", "remove rule"},
			{"D", "delete"},
			{"Esc", "back"},
		}
	case HelpContextVolumeDetail:
		return []keyHint{
			{"Tab", "switch"},
			{"e", "extend"},
			{"N", "snapshot"},
			{"D", "delete"},
			{"Esc", "back"},
		}
	case HelpContextForm:
		return []keyHint{
			{"Tab", "next"},
			{"←/→", "option"},
			{"Enter", "submit"},
			{"Esc", "cancel"},
		}
	case HelpContextDelete:
		return []keyHint{
			{"Enter", "confirm"},
			{"Esc", "cancel"},
		}
	default:
		return []keyHint{
			{"D", "delete"},
			{"c", "copy"},
			{"Esc", "back"},
			{"?", "help"},
			{"q", "quit"},
		}
	}
}
