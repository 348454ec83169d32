package console

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasnim.dev/cloud-console/internal/tui/theme"
)

// chromeHeight is the lines taken by header, filter bar, footer and padding.
const chromeHeight = 9

// Model is the root Bubble Tea model for the console.
type Model struct {
	deps  Deps
	stack []View

	width  int
	height int

	filtering   bool
	filterInput textinput.Model
	filterQuery string

	showHelp bool

	dialog *deleteDialog

	toast     *toast
	nextToast int

	// copy is swapped out in tests.
	copy func(string) error
}

// NewModel creates the console model. An empty stack starts at the root menu.
func NewModel(deps Deps, stack ...View) Model {
	if len(stack) == 0 {
		stack = []View{NewRootView(deps)}
	}

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 64

	return Model{
		deps:        deps,
		stack:       stack,
		filterInput: ti,
		dialog:      newDeleteDialog(),
		copy:        clipboard.WriteAll,
	}
}

// Init loads every view on the initial stack so deep links can go back.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.stack))
	for _, v := range m.stack {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) top() View {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m Model) contentSize() (int, int) {
	return m.width - 6, max(m.height-chromeHeight, 3)
}

func (m Model) resize(v View) {
	if m.width == 0 || m.height == 0 {
		return
	}
	if rv, ok := v.(ResizableView); ok {
		rv.SetSize(m.contentSize())
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Resize all views in the stack so back-navigation uses correct size
		for _, v := range m.stack {
			m.resize(v)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog.Active() {
			return m, m.dialog.Update(msg)
		}
		// Help overlay: ? toggles, Esc dismisses
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.filtering {
			return m.updateFilterMode(msg)
		}
		if ic, ok := m.top().(InputCapturer); ok && ic.CapturingInput() {
			return m, m.delegate(msg)
		}
		return m.updateNormalKey(msg)

	case PushViewMsg:
		m.clearFilter()
		m.stack = append(m.stack, msg.View)
		m.resize(msg.View)
		slog.Debug("view pushed", "title", msg.View.Title(), "depth", len(m.stack))
		return m, msg.View.Init()

	case PopViewMsg:
		m.pop()
		return m, nil

	case showToastMsg:
		m.nextToast++
		m.toast = &toast{id: m.nextToast, level: msg.level, text: msg.text}
		return m, clearToastAfter(m.nextToast)

	case clearToastMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case openDeleteMsg:
		return m, m.dialog.Open(msg.target)

	case deleteFinishedMsg:
		return m, m.dialog.Update(msg)

	case resourceChangedMsg:
		if msg.deleted {
			m.closeDeleted(msg)
		}
		return m, m.refreshStack()
	}

	// Async messages are addressed by view, so every view on the stack sees
	// them and ignores what is not its own.
	cmds := []tea.Cmd{m.dialog.Update(msg)}
	for i, v := range m.stack {
		updated, cmd := v.Update(msg)
		m.stack[i] = updated
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) delegate(msg tea.Msg) tea.Cmd {
	if len(m.stack) == 0 {
		return nil
	}
	updated, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = updated
	return cmd
}

// pop removes the top view and releases its timers. The root never pops.
func (m *Model) pop() bool {
	if len(m.stack) <= 1 {
		return false
	}
	m.clearFilter()
	if cv, ok := m.top().(CancelableView); ok {
		cv.Cancel()
	}
	m.stack = m.stack[:len(m.stack)-1]
	return true
}

// closeDeleted pops every page showing the deleted resource together with
// anything opened from it.
func (m *Model) closeDeleted(msg resourceChangedMsg) {
	for i := 1; i < len(m.stack); i++ {
		rv, ok := m.stack[i].(ResourceView)
		if !ok {
			continue
		}
		if kind, id := rv.Resource(); kind == msg.kind && id == msg.id {
			for len(m.stack) > i {
				m.pop()
			}
			return
		}
	}
}

func (m Model) refreshStack() tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range m.stack {
		if rv, ok := v.(RefreshableView); ok {
			cmds = append(cmds, rv.Refresh())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) clearFilter() {
	m.filtering = false
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	if m.filterQuery == "" {
		return
	}
	m.filterQuery = ""
	if fv, ok := m.top().(FilterableView); ok {
		fv.SetFilter("")
	}
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filterQuery = m.filterInput.Value()
		if fv, ok := m.top().(FilterableView); ok {
			fv.SetFilter(m.filterQuery)
		}
		return m, cmd
	}
}

func (m Model) updateNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		if m.filterQuery != "" {
			m.clearFilter()
			return m, nil
		}
		if m.pop() {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	case "/":
		if _, ok := m.top().(FilterableView); ok {
			m.filtering = true
			m.filterInput.SetValue(m.filterQuery)
			m.filterInput.Focus()
			return m, textinput.Blink
		}
	case "?":
		m.showHelp = true
		return m, nil
	case "c":
		if cv, ok := m.top().(CopyableView); ok {
			if id := cv.CopyID(); id != "" {
				if err := m.copy(id); err != nil {
					return m, notify(ToastError, fmt.Sprintf("Copy failed: %v", err))
				}
				return m, notify(ToastInfo, "Copied: "+id)
			}
		}
	}

	// Delegate to current view for unhandled keys
	return m, m.delegate(msg)
}

func (m Model) View() string {
	titles := make([]string, len(m.stack))
	for i, v := range m.stack {
		titles[i] = v.Title()
	}
	breadcrumb := renderBreadcrumb(titles)

	userType := string(m.deps.UserType)
	if userType == "" {
		userType = "regular"
	}
	info := theme.StatusBarStyle.Render(theme.ProfileStyle.Render(fmt.Sprintf("backend: %s  user: %s", m.deps.Backend, userType)))
	header := lipgloss.JoinHorizontal(lipgloss.Top, breadcrumb, "   ", info)

	filterBar := ""
	if m.filtering {
		filterBar = theme.FilterStyle.Render("/ ") + m.filterInput.View() + "\n"
	} else if m.filterQuery != "" {
		filterBar = theme.FilterStyle.Render(fmt.Sprintf("search: %s", m.filterQuery)) + "\n"
	}

	ctx := detectHelpContext(m.top())
	var content string
	if m.dialog.Active() {
		ctx = HelpContextDelete
		w, h := m.contentSize()
		content = lipgloss.Place(max(w, 0), h, lipgloss.Center, lipgloss.Center, m.dialog.View(w))
	} else if v := m.top(); v != nil {
		content = v.View()
	}

	footer := RenderKeyHints(ctx, m.width-6)
	if m.filtering {
		footer = theme.HelpStyle.Render("Enter to lock search • Esc to clear")
	}
	if m.toast != nil {
		footer = m.toast.View() + "\n" + footer
	} else {
		footer = "\n" + footer
	}

	if m.showHelp {
		return renderHelp(ctx, m.width, m.height)
	}

	return theme.DashboardStyle.Render(
		theme.HeaderStyle.Render(header) + "\n\n" +
			filterBar +
			content + "\n" +
			footer,
	)
}
