package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/tui/theme"
)

// FormValues maps field keys to the entered or chosen value.
type FormValues map[string]string

func (v FormValues) Int(key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(v[key]))
	return n
}

// FormField is one text input or choice selector.
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	// Choices turns the field into a selector cycled with left/right.
	Choices  []string
	Validate func(string) error

	input  textinput.Model
	choice int
}

func (f *FormField) value() string {
	if len(f.Choices) > 0 {
		return f.Choices[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

// FormResult is what a successful submit created or changed.
type FormResult struct {
	Kind    model.Kind
	ID      string
	Message string
}

type formDoneMsg struct {
	formID uintptr
	result FormResult
	err    error
}

// FormConfig describes a create or edit form.
type FormConfig struct {
	Title  string
	Fields []FormField
	Submit func(ctx context.Context, values FormValues) (FormResult, error)
	// Preview renders live feedback such as a cost estimate. Optional.
	Preview func(values FormValues) string
}

// Form is a page with labelled inputs. Enter validates every field and
// submits in the background; success pops the form.
type Form struct {
	config  FormConfig
	fields  []*FormField
	focus   int
	errs    map[string]string
	err     error
	busy    bool
	spinner spinner.Model
	width   int
}

func NewForm(cfg FormConfig) *Form {
	f := &Form{config: cfg, spinner: theme.NewSpinner(), errs: map[string]string{}}
	for i := range cfg.Fields {
		field := cfg.Fields[i]
		if len(field.Choices) > 0 {
			for j, c := range field.Choices {
				if c == field.Value {
					field.choice = j
				}
			}
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = field.Placeholder
			ti.CharLimit = 256
			ti.SetValue(field.Value)
			field.input = ti
		}
		f.fields = append(f.fields, &field)
	}
	return f
}

func (f *Form) formID() uintptr { return uintptr(unsafe.Pointer(f)) }

func (f *Form) Title() string { return f.config.Title }

func (f *Form) HelpContext() HelpContext { return HelpContextForm }

// CapturingInput keeps global shortcuts away from the inputs.
func (f *Form) CapturingInput() bool { return true }

func (f *Form) Init() tea.Cmd { return f.focusField(0) }

// Values returns the current value of every field.
func (f *Form) Values() FormValues {
	vals := make(FormValues, len(f.fields))
	for _, field := range f.fields {
		vals[field.Key] = field.value()
	}
	return vals
}

func (f *Form) focusField(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	var cmd tea.Cmd
	for j, field := range f.fields {
		if len(field.Choices) > 0 {
			continue
		}
		if j == f.focus {
			cmd = field.input.Focus()
		} else {
			field.input.Blur()
		}
	}
	return cmd
}

// validate fills errs and reports whether every field passed.
func (f *Form) validate() bool {
	f.errs = map[string]string{}
	for _, field := range f.fields {
		if field.Validate == nil {
			continue
		}
		if err := field.Validate(field.value()); err != nil {
			f.errs[field.Key] = err.Error()
		}
	}
	return len(f.errs) == 0
}

func (f *Form) submit() tea.Cmd {
	if !f.validate() {
		return nil
	}
	f.busy = true
	f.err = nil
	id, vals, submit := f.formID(), f.Values(), f.config.Submit
	return tea.Batch(f.spinner.Tick, func() tea.Msg {
		res, err := submit(context.Background(), vals)
		return formDoneMsg{formID: id, result: res, err: err}
	})
}

func (f *Form) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case formDoneMsg:
		if msg.formID != f.formID() {
			return f, nil
		}
		f.busy = false
		if msg.err != nil {
			f.err = msg.err
			return f, notify(ToastError, msg.err.Error())
		}
		cmds := []tea.Cmd{popView}
		if msg.result.Message != "" {
			cmds = append(cmds, notify(ToastSuccess, msg.result.Message))
		}
		if msg.result.Kind != "" {
			cmds = append(cmds, changed(msg.result.Kind, msg.result.ID))
		}
		return f, tea.Sequence(cmds...)

	case spinner.TickMsg:
		if !f.busy {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		if f.busy {
			return f, nil
		}
		switch msg.String() {
		case "esc":
			return f, popView
		case "enter":
			return f, f.submit()
		case "tab", "down":
			return f, f.focusField(f.focus + 1)
		case "shift+tab", "up":
			return f, f.focusField(f.focus - 1)
		}
		if len(f.fields) == 0 {
			return f, nil
		}
		field := f.fields[f.focus]
		if n := len(field.Choices); n > 0 {
			switch msg.String() {
			case "left", "h":
				field.choice = (field.choice - 1 + n) % n
			case "right", "l", " ":
				field.choice = (field.choice + 1) % n
			}
			delete(f.errs, field.Key)
			return f, nil
		}
		var cmd tea.Cmd
		field.input, cmd = field.input.Update(msg)
		delete(f.errs, field.Key)
		return f, cmd
	}
	return f, nil
}

func (f *Form) SetSize(width, height int) {
	f.width = width
	for _, field := range f.fields {
		if len(field.Choices) == 0 {
			field.input.Width = max(min(width-8, 60), 10)
		}
	}
}

func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render(f.config.Title) + "\n\n")

	for i, field := range f.fields {
		label := field.Label
		if i == f.focus {
			label = theme.FilterStyle.Render("› " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + "\n")

		style := theme.InputStyle
		if i == f.focus {
			style = theme.FocusedInputStyle
		}
		if len(field.Choices) > 0 {
			b.WriteString(style.Render(renderChoices(field.Choices, field.choice)) + "\n")
		} else {
			b.WriteString(style.Render(field.input.View()) + "\n")
		}
		if msg, ok := f.errs[field.Key]; ok {
			b.WriteString(theme.ErrorStyle.Render("  "+msg) + "\n")
		}
	}

	if f.config.Preview != nil {
		if p := f.config.Preview(f.Values()); p != "" {
			b.WriteString("\n" + p + "\n")
		}
	}
	if f.err != nil {
		b.WriteString("\n" + theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", f.err)) + "\n")
	}
	b.WriteString("\n")
	if f.busy {
		b.WriteString(f.spinner.View() + " Submitting...")
	} else {
		b.WriteString(theme.MutedStyle.Render("Enter to submit · Tab to move · Esc to cancel"))
	}
	return b.String()
}

func renderChoices(choices []string, selected int) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		if i == selected {
			parts[i] = theme.TabActiveStyle.Render(c)
		} else {
			parts[i] = theme.MutedStyle.Render(c)
		}
	}
	return "‹ " + strings.Join(parts, "  ") + " ›"
}
