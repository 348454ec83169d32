package console

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/tui/theme"
)

// TabController owns the tab bar of a detail page. Tab views are built
// lazily on first selection and remember the last size they were given.
type TabController struct {
	ActiveTab int
	TabNames  []string
	TabViews  []View
	InitTab   func(idx int) View
	// Badges are optional counts shown next to tab names, -1 hides one.
	Badges []int

	width, height int
}

// NewTabController creates a TabController. initTab is called lazily the first
// time a tab is selected.
func NewTabController(names []string, initTab func(int) View) *TabController {
	badges := make([]int, len(names))
	for i := range badges {
		badges[i] = -1
	}
	return &TabController{
		TabNames: names,
		TabViews: make([]View, len(names)),
		InitTab:  initTab,
		Badges:   badges,
	}
}

// SwitchTab switches to the given tab index, lazily initializing if needed.
// Only a freshly built tab returns its Init command.
func (tc *TabController) SwitchTab(idx int) tea.Cmd {
	if idx < 0 || idx >= len(tc.TabNames) {
		return nil
	}
	tc.ActiveTab = idx
	if tc.TabViews[idx] != nil {
		tc.resize(tc.TabViews[idx])
		return nil
	}
	if tc.InitTab == nil {
		return nil
	}
	v := tc.InitTab(idx)
	tc.TabViews[idx] = v
	if v == nil {
		return nil
	}
	tc.resize(v)
	return v.Init()
}

// HandleKey handles tab/shift+tab/number key navigation. Returns handled=true
// if the key was consumed by the tab controller.
func (tc *TabController) HandleKey(key string) (handled bool, cmd tea.Cmd) {
	n := len(tc.TabNames)
	if n == 0 {
		return false, nil
	}
	switch key {
	case "tab":
		return true, tc.SwitchTab((tc.ActiveTab + 1) % n)
	case "shift+tab":
		return true, tc.SwitchTab((tc.ActiveTab - 1 + n) % n)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if idx := int(key[0] - '1'); idx < n {
			return true, tc.SwitchTab(idx)
		}
	}
	return false, nil
}

// SetBadge shows a count next to a tab name.
func (tc *TabController) SetBadge(idx, count int) {
	if idx >= 0 && idx < len(tc.Badges) {
		tc.Badges[idx] = count
	}
}

// RenderTabBar renders the horizontal tab bar with numbered labels.
func (tc *TabController) RenderTabBar() string {
	var tabs []string
	for i, name := range tc.TabNames {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if tc.Badges[i] >= 0 {
			label += fmt.Sprintf(" (%d)", tc.Badges[i])
		}
		if i == tc.ActiveTab {
			tabs = append(tabs, theme.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, theme.TabInactiveStyle.Render(label))
		}
	}
	return theme.TabBarStyle.Render(strings.Join(tabs, ""))
}

// ActiveView returns the current tab's view, or nil if not initialized.
func (tc *TabController) ActiveView() View {
	if len(tc.TabViews) == 0 {
		return nil
	}
	return tc.TabViews[tc.ActiveTab]
}

// SetSize records the content size and applies it to the active tab.
func (tc *TabController) SetSize(width, contentHeight int) {
	tc.width, tc.height = width, contentHeight
	if v := tc.ActiveView(); v != nil {
		tc.resize(v)
	}
}

func (tc *TabController) resize(v View) {
	if tc.width == 0 && tc.height == 0 {
		return
	}
	if rv, ok := v.(ResizableView); ok {
		rv.SetSize(tc.width, tc.height)
	}
}

// DelegateUpdate forwards a message to the active tab view.
func (tc *TabController) DelegateUpdate(msg tea.Msg) tea.Cmd {
	if v := tc.ActiveView(); v != nil {
		updated, cmd := v.Update(msg)
		tc.TabViews[tc.ActiveTab] = updated
		return cmd
	}
	return nil
}

// Broadcast forwards an async message to every built tab. Data messages are
// addressed by view id, so tabs ignore what is not theirs.
func (tc *TabController) Broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range tc.TabViews {
		if v == nil {
			continue
		}
		updated, cmd := v.Update(msg)
		tc.TabViews[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// RefreshAll refetches every built tab.
func (tc *TabController) RefreshAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range tc.TabViews {
		if rv, ok := v.(RefreshableView); ok {
			cmds = append(cmds, rv.Refresh())
		}
	}
	return tea.Batch(cmds...)
}

// CancelAll tears down every built tab.
func (tc *TabController) CancelAll() {
	for _, v := range tc.TabViews {
		if cv, ok := v.(CancelableView); ok {
			cv.Cancel()
		}
	}
}
