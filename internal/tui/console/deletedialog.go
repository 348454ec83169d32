package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/deletion"
	"tasnim.dev/cloud-console/internal/tui/theme"
)

// openDeleteMsg asks the model to start the deletion dialog.
type openDeleteMsg struct{ target deletion.Target }

type deleteFinishedMsg struct{ err error }

func confirmDelete(t deletion.Target) tea.Cmd {
	return func() tea.Msg { return openDeleteMsg{target: t} }
}

// deleteDialog renders a deletion.Flow and feeds it keystrokes.
type deleteDialog struct {
	flow    deletion.Flow
	input   textinput.Model
	spinner spinner.Model
}

func newDeleteDialog() *deleteDialog {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 128
	ti.KeyMap.Paste.SetEnabled(false)
	return &deleteDialog{input: ti, spinner: theme.NewSpinner()}
}

func (d *deleteDialog) Active() bool { return d.flow.Active() }

func (d *deleteDialog) State() deletion.State { return d.flow.State() }

func (d *deleteDialog) Open(t deletion.Target) tea.Cmd {
	if err := d.flow.Begin(t); err != nil {
		return notify(ToastWarning, err.Error())
	}
	d.input.Reset()
	d.input.Placeholder = t.Name
	d.input.Blur()
	return nil
}

// Update handles input while the dialog is open.
func (d *deleteDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case deleteFinishedMsg:
		return d.finish(msg.err)
	case spinner.TickMsg:
		if d.flow.State() != deletion.StateDeleting {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return nil
}

func (d *deleteDialog) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch d.flow.State() {
	case deletion.StateDeleting:
		return nil
	case deletion.StateBlocked:
		switch msg.String() {
		case "esc", "enter", "q":
			return d.cancel()
		}
		return nil
	case deletion.StateWarning:
		switch msg.String() {
		case "esc":
			return d.cancel()
		case "enter":
			if err := d.flow.Proceed(); err != nil {
				return notify(ToastError, err.Error())
			}
			return d.input.Focus()
		}
		return nil
	}

	// name confirmation
	if isPaste(msg) {
		err := d.flow.Paste(string(msg.Runes))
		return notify(ToastWarning, capitalize(err.Error()))
	}
	switch msg.String() {
	case "esc":
		return d.cancel()
	case "enter":
		del, res, err := d.flow.Submit()
		if err != nil {
			return notify(ToastError, err.Error())
		}
		if res.Outcome == deletion.OutcomeMismatch {
			d.input.Blur()
			return notify(ToastWarning, capitalize(res.Message()))
		}
		d.input.Blur()
		return tea.Batch(d.spinner.Tick, func() tea.Msg {
			return deleteFinishedMsg{err: del(context.Background())}
		})
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if err := d.flow.SetInput(d.input.Value()); err != nil && !errors.Is(err, deletion.ErrNotConfirming) {
		return notify(ToastError, err.Error())
	}
	return cmd
}

// isPaste catches bracketed pastes, ctrl+v and the multi-rune bursts that
// terminals without bracketed paste deliver in a single key event.
func isPaste(msg tea.KeyMsg) bool {
	if msg.Paste || msg.String() == "ctrl+v" {
		return true
	}
	return msg.Type == tea.KeyRunes && len(msg.Runes) > 1
}

func (d *deleteDialog) cancel() tea.Cmd {
	blocked := d.flow.State() == deletion.StateBlocked
	res, err := d.flow.Cancel()
	d.input.Blur()
	if err != nil {
		return notify(ToastError, err.Error())
	}
	if blocked || res.Outcome == deletion.OutcomeNone {
		return nil
	}
	return notify(ToastInfo, capitalize(res.Message()))
}

func (d *deleteDialog) finish(err error) tea.Cmd {
	res, ferr := d.flow.Finish(err)
	if ferr != nil {
		return nil
	}
	if res.Outcome == deletion.OutcomeFailed {
		return notify(ToastError, capitalize(res.Message()))
	}
	return tea.Batch(notify(ToastSuccess, res.Message()), removed(res.Kind, res.ID))
}

func (d *deleteDialog) View(width int) string {
	t := d.flow.Target()
	var b strings.Builder

	switch d.flow.State() {
	case deletion.StateBlocked:
		b.WriteString(theme.DangerStyle.Render(fmt.Sprintf("Cannot delete %s %s", t.Kind.Label(), t.Name)) + "\n\n")
		b.WriteString(t.Reason + "\n")
		writeDependents(&b, t.Dependents)
		b.WriteString("\n" + theme.MutedStyle.Render("Esc to close"))
	case deletion.StateWarning:
		b.WriteString(theme.DangerStyle.Render(fmt.Sprintf("Delete %s %s?", t.Kind.Label(), t.Name)) + "\n\n")
		if len(t.Dependents) > 0 {
			b.WriteString("The following resources are associated with it:\n")
			writeDependents(&b, t.Dependents)
			b.WriteString("\n")
		}
		b.WriteString(theme.WarningStyle.Render("This action cannot be undone.") + "\n\n")
		b.WriteString(theme.MutedStyle.Render("Enter to continue · Esc to cancel"))
	case deletion.StateNameConfirm:
		b.WriteString(theme.DangerStyle.Render(fmt.Sprintf("Delete %s %s", t.Kind.Label(), t.Name)) + "\n\n")
		b.WriteString(fmt.Sprintf("Type %s to confirm. Pasting is disabled.\n", theme.WarningStyle.Render(t.Name)))
		b.WriteString(theme.FocusedInputStyle.Render(d.input.View()) + "\n")
		b.WriteString(theme.MutedStyle.Render("Enter to delete · Esc to cancel"))
	case deletion.StateDeleting:
		b.WriteString(loadingView(d.spinner, fmt.Sprintf("Deleting %s...", t.Name)))
	}

	// The first warning is amber; blocked and confirm stages are red.
	style := theme.DangerDialogStyle
	if d.flow.State() == deletion.StateWarning {
		style = theme.DialogStyle
	}
	if width > 0 {
		style = style.Width(min(64, max(width-4, 20)))
	}
	return style.Render(b.String())
}

func writeDependents(b *strings.Builder, deps []deletion.Dependent) {
	for _, dep := range deps {
		line := fmt.Sprintf("  • %d × %s", dep.Count, dep.Type)
		if dep.Name != "" {
			line += " (" + dep.Name + ")"
		}
		b.WriteString(line + "\n")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
