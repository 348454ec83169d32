package printer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

var (
	BorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	IDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	NameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	KeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	FailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// statusText prefixes a status with an indicator and picks its color.
func statusText(status string) (string, lipgloss.Style) {
	switch strings.ToLower(status) {
	case "active", "available", "in use", "completed":
		return "● " + status, ActiveStyle
	case "creating", "pending", "deleting":
		return "◐ " + status, PendingStyle
	case "failed", "error":
		return "✕ " + status, FailedStyle
	}
	return "○ " + status, MutedStyle
}
