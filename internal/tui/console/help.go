package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasnim.dev/cloud-console/internal/tui/theme"
)

// HelpContext determines which keybinding set to show.
type HelpContext int

const (
	HelpContextRoot HelpContext = iota
	HelpContextTable
	HelpContextDetail
	HelpContextVPCDetail
	HelpContextSubnetDetail
	HelpContextSGDetail
	HelpContextVolumeDetail
	HelpContextForm
	HelpContextDelete
)

type helpBinding struct {
	key  string
	desc string
}

var tableBindings = []helpBinding{
	{"Enter", "Open details"},
	{"/", "Search rows"},
	{"s", "Sort by next column"},
	{"S", "Flip sort direction"},
	{"n", "Next page"},
	{"p", "Prev page"},
	{"r", "Refresh data"},
	{"a", "Toggle auto-refresh"},
	{"N", "Create"},
	{"d", "Delete"},
	{"c", "Copy ID"},
	{"j/k", "Navigate up/down"},
	{"Esc", "Go back"},
	{"?", "Toggle this help"},
	{"q", "Quit"},
}

func renderHelp(ctx HelpContext, width, height int) string {
	var title string
	var bindings []helpBinding

	switch ctx {
	case HelpContextRoot:
		title = "Keybindings: Console"
		bindings = []helpBinding{
			{"Enter", "Open resource list"},
			{"j/k", "Navigate up/down"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	case HelpContextTable:
		title = "Keybindings: Table"
		bindings = tableBindings
	case HelpContextVPCDetail:
		title = "Keybindings: VPC"
		bindings = []helpBinding{
			{"Tab/1-3", "Switch tabs"},
			{"Enter", "Open selected row"},
			{"N", "Create in this VPC"},
			{"d", "Delete selected row"},
			{"D", "Delete this VPC"},
			{"r", "Refresh data"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
		}
	case HelpContextSubnetDetail:
		title = "Keybindings: Subnet"
		bindings = []helpBinding{
			{"+", "Connect a subnet"},
			{"x", "Disconnect selected"},
			{"D", "Delete this subnet"},
			{"c", "Copy ID"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
		}
	case HelpContextSGDetail:
		title = "Keybindings: Security Group"
		bindings = []helpBinding{
			{"Tab/1-2", "Inbound / Outbound"},
			{"A", "Add rule"},
			{"x", "Remove selected rule"},
			{"D", "Delete this group"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
		}
	case HelpContextVolumeDetail:
		title = "Keybindings: Volume"
		bindings = []helpBinding{
			{"Tab/1-2", "Overview / Snapshots"},
			{"e", "Extend volume"},
			{"N", "Snapshot this volume"},
			{"D", "Delete this volume"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
		}
	case HelpContextForm:
		title = "Keybindings: Form"
		bindings = []helpBinding{
			{"Tab", "Next field"},
			{"Shift+Tab", "Previous field"},
			{"←/→", "Change option"},
			{"Enter", "Submit"},
			{"Esc", "Cancel"},
		}
	case HelpContextDelete:
		title = "Keybindings: Delete"
		bindings = []helpBinding{
			{"Enter", "Continue / confirm"},
			{"Esc", "Cancel"},
		}
	default:
		title = "Keybindings: Details"
		bindings = []helpBinding{
			{"j/k", "Scroll up/down"},
			{"D", "Delete"},
			{"c", "Copy ID"},
			{"Esc", "Go back"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
		}
	}

	var b strings.Builder
	b.WriteString(theme.HelpTitleStyle.Render(title) + "\n")
	for _, binding := range bindings {
		b.WriteString(theme.HelpKeyStyle.Render(binding.key) + theme.HelpDescStyle.Render(binding.desc) + "\n")
	}

	box := theme.HelpBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// detectHelpContext determines the help context from the current view.
func detectHelpContext(v View) HelpContext {
	if p, ok := v.(HelpContextProvider); ok {
		return p.HelpContext()
	}
	if _, ok := v.(FilterableView); ok {
		return HelpContextTable
	}
	return HelpContextDetail
}
