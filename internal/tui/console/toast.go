package console

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/tui/theme"
)

const toastDuration = 3 * time.Second

type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

type toast struct {
	id    int
	level ToastLevel
	text  string
}

type showToastMsg struct {
	level ToastLevel
	text  string
}

// clearToastMsg removes the toast with the same id. A newer toast survives
// the timer of an older one.
type clearToastMsg struct{ id int }

func notify(level ToastLevel, text string) tea.Cmd {
	return func() tea.Msg { return showToastMsg{level: level, text: text} }
}

func (t toast) View() string {
	switch t.level {
	case ToastSuccess:
		return theme.ToastSuccessStyle.Render("✓ " + t.text)
	case ToastWarning:
		return theme.ToastWarningStyle.Render("! " + t.text)
	case ToastError:
		return theme.ToastErrorStyle.Render("✕ " + t.text)
	}
	return theme.ToastInfoStyle.Render(t.text)
}

func clearToastAfter(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{id: id} })
}
