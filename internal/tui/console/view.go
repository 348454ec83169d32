package console

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/userdata"
)

// View represents a navigable screen in the console.
type View interface {
	Title() string
	View() string
	Update(msg tea.Msg) (View, tea.Cmd)
	Init() tea.Cmd
}

// PushViewMsg signals the model to push a new view onto the stack.
type PushViewMsg struct{ View View }

// PopViewMsg signals the model to pop the current view.
type PopViewMsg struct{}

// FilterableView is implemented by views that support text filtering.
type FilterableView interface {
	View
	SetFilter(query string)
}

// CopyableView is implemented by views that support clipboard copy.
type CopyableView interface {
	View
	CopyID() string
}

// ResizableView is implemented by views that adapt to window size.
type ResizableView interface {
	View
	SetSize(width, height int)
}

// RefreshableView reloads its data after a mutation elsewhere in the console.
type RefreshableView interface {
	View
	Refresh() tea.Cmd
}

// CancelableView releases timers and in-flight fetches when it leaves the stack.
type CancelableView interface {
	View
	Cancel()
}

// ResourceView is implemented by detail pages so they can be closed when the
// resource they show is deleted.
type ResourceView interface {
	View
	Resource() (model.Kind, string)
}

// HelpContextProvider lets a view choose its help and key-hint set.
type HelpContextProvider interface {
	HelpContext() HelpContext
}

// InputCapturer is implemented by views that are currently reading text, so
// the model does not treat their keystrokes as global shortcuts.
type InputCapturer interface {
	CapturingInput() bool
}

// resourceChangedMsg is emitted after any successful mutation. Pages showing a
// deleted resource are closed by the model.
type resourceChangedMsg struct {
	kind    model.Kind
	id      string
	deleted bool
}

func changed(kind model.Kind, id string) tea.Cmd {
	return func() tea.Msg { return resourceChangedMsg{kind: kind, id: id} }
}

func removed(kind model.Kind, id string) tea.Cmd {
	return func() tea.Msg { return resourceChangedMsg{kind: kind, id: id, deleted: true} }
}

// Deps is what every page needs to talk to the backend.
type Deps struct {
	Repo     store.Repository
	UserType userdata.UserType
	Backend  string

	PageSize        int
	RefreshInterval time.Duration
	// Now is the clock used for "last refreshed" stamps.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return PushViewMsg{View: v} }
}

func popView() tea.Msg { return PopViewMsg{} }

func renderBreadcrumb(titles []string) string {
	parts := make([]string, len(titles))
	for i, t := range titles {
		parts[i] = theme.BreadcrumbStyle.Render(t)
	}
	return strings.Join(parts, theme.BreadcrumbSepStyle.Render(" › "))
}

// withDeps fills the table settings that come from configuration.
func withDeps[T any](deps Deps, cfg TableViewConfig[T]) TableViewConfig[T] {
	cfg.PageSize = deps.PageSize
	cfg.RefreshInterval = deps.RefreshInterval
	cfg.UserType = deps.UserType
	cfg.Now = deps.now
	return cfg
}

// loadedMsg carries a detail page's fetch result back to that page.
type loadedMsg struct {
	viewID uintptr
	data   any
	err    error
}

func loadingView(s spinner.Model, text string) string {
	return theme.LoadingStyle.Render(s.View() + " " + text)
}
