package console

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/tui/theme"
)

// NotFoundView is shown when a deep link names a resource that does not exist.
type NotFoundView struct {
	kind model.Kind
	id   string
}

func NewNotFoundView(kind model.Kind, id string) *NotFoundView {
	return &NotFoundView{kind: kind, id: id}
}

func (v *NotFoundView) Title() string { return "Not found" }

func (v *NotFoundView) Init() tea.Cmd { return nil }

func (v *NotFoundView) Update(tea.Msg) (View, tea.Cmd) { return v, nil }

func (v *NotFoundView) View() string {
	return theme.EmptyTitleStyle.Render(fmt.Sprintf("%s not found", v.kind.Label())) + "\n" +
		fmt.Sprintf("No %s with id %s exists. It may have been deleted.", v.kind.Label(), v.id) + "\n\n" +
		theme.MutedStyle.Render("Press Esc to go back.")
}
