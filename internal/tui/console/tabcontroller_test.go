package console

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// mockTabView is a minimal View implementation for testing.
type mockTabView struct {
	title         string
	initCalled    bool
	width, height int
	refreshed     int
	canceled      bool
	msgs          []tea.Msg
}

func (m *mockTabView) Title() string { return m.title }
func (m *mockTabView) View() string  { return m.title + " content" }
func (m *mockTabView) Init() tea.Cmd { m.initCalled = true; return nil }
func (m *mockTabView) Update(msg tea.Msg) (View, tea.Cmd) {
	m.msgs = append(m.msgs, msg)
	return m, nil
}
func (m *mockTabView) SetSize(width, height int) { m.width = width; m.height = height }
func (m *mockTabView) Refresh() tea.Cmd          { m.refreshed++; return nil }
func (m *mockTabView) Cancel()                   { m.canceled = true }

func newTestTabController() *TabController {
	return NewTabController(
		[]string{"Tab1", "Tab2", "Tab3"},
		func(idx int) View {
			return &mockTabView{title: "Tab" + string(rune('1'+idx))}
		},
	)
}

func TestTabController_SwitchTab(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)
	if tc.ActiveTab != 0 {
		t.Errorf("ActiveTab = %d, want 0", tc.ActiveTab)
	}
	if tc.TabViews[0] == nil {
		t.Error("expected tab 0 to be initialized")
	}
	// Tab 1 should still be nil (lazy)
	if tc.TabViews[1] != nil {
		t.Error("expected tab 1 to be nil (lazy)")
	}

	tc.SwitchTab(2)
	if tc.ActiveTab != 2 {
		t.Errorf("ActiveTab = %d, want 2", tc.ActiveTab)
	}
	if !tc.TabViews[2].(*mockTabView).initCalled {
		t.Error("expected tab 2 to be initialized")
	}
}

func TestTabController_SwitchTabOutOfRange(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(1)
	tc.SwitchTab(7)
	tc.SwitchTab(-1)
	if tc.ActiveTab != 1 {
		t.Errorf("ActiveTab = %d, want 1", tc.ActiveTab)
	}
}

func TestTabController_HandleKey_Tab(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)

	handled, _ := tc.HandleKey("tab")
	if !handled {
		t.Error("expected tab key to be handled")
	}
	if tc.ActiveTab != 1 {
		t.Errorf("ActiveTab = %d, want 1", tc.ActiveTab)
	}

	// Wrap around
	tc.SwitchTab(2)
	tc.HandleKey("tab")
	if tc.ActiveTab != 0 {
		t.Errorf("ActiveTab = %d, want 0 (wrap)", tc.ActiveTab)
	}
}

func TestTabController_HandleKey_ShiftTab(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)

	handled, _ := tc.HandleKey("shift+tab")
	if !handled {
		t.Error("expected shift+tab to be handled")
	}
	if tc.ActiveTab != 2 {
		t.Errorf("ActiveTab = %d, want 2 (wrap backward)", tc.ActiveTab)
	}
}

func TestTabController_HandleKey_NumberKeys(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)

	handled, _ := tc.HandleKey("2")
	if !handled {
		t.Error("expected number key to be handled")
	}
	if tc.ActiveTab != 1 {
		t.Errorf("ActiveTab = %d, want 1", tc.ActiveTab)
	}

	handled, _ = tc.HandleKey("9")
	if handled {
		t.Error("number beyond the last tab should not be handled")
	}
}

func TestTabController_HandleKey_Invalid(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)

	handled, _ := tc.HandleKey("x")
	if handled {
		t.Error("expected unknown key to not be handled")
	}
}

func TestTabController_RenderTabBar(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)
	tc.SetBadge(1, 4)
	bar := tc.RenderTabBar()
	for _, name := range tc.TabNames {
		if !strings.Contains(bar, name) {
			t.Errorf("tab bar missing tab name %q", name)
		}
	}
	if !strings.Contains(bar, "2:Tab2 (4)") {
		t.Errorf("tab bar missing badge: %q", bar)
	}
	if strings.Contains(bar, "Tab1 (") {
		t.Error("tabs without a badge should not show a count")
	}
}

func TestTabController_SizeAppliedOnSwitch(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)
	tc.SetSize(200, 50)

	mv := tc.TabViews[0].(*mockTabView)
	if mv.width != 200 || mv.height != 50 {
		t.Errorf("expected size 200x50, got %dx%d", mv.width, mv.height)
	}

	tc.SwitchTab(1)
	mv = tc.TabViews[1].(*mockTabView)
	if mv.width != 200 || mv.height != 50 {
		t.Errorf("new tab size = %dx%d, want 200x50", mv.width, mv.height)
	}
}

func TestTabController_BroadcastReachesBuiltTabs(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)
	tc.SwitchTab(2)

	type ping struct{}
	tc.Broadcast(ping{})

	for _, i := range []int{0, 2} {
		if got := len(tc.TabViews[i].(*mockTabView).msgs); got != 1 {
			t.Errorf("tab %d got %d msgs, want 1", i, got)
		}
	}
	if tc.TabViews[1] != nil {
		t.Error("broadcast should not build lazy tabs")
	}
}

func TestTabController_RefreshAndCancelAll(t *testing.T) {
	tc := newTestTabController()
	tc.SwitchTab(0)
	tc.SwitchTab(1)

	tc.RefreshAll()
	tc.CancelAll()
	for _, i := range []int{0, 1} {
		mv := tc.TabViews[i].(*mockTabView)
		if mv.refreshed != 1 || !mv.canceled {
			t.Errorf("tab %d: refreshed=%d canceled=%v", i, mv.refreshed, mv.canceled)
		}
	}
}

func TestTabController_NilTabRendersInPlace(t *testing.T) {
	tc := NewTabController([]string{"Overview", "List"}, func(idx int) View {
		if idx == 0 {
			return nil
		}
		return &mockTabView{title: "List"}
	})
	tc.SwitchTab(0)
	if tc.ActiveView() != nil {
		t.Error("overview tab should have no view")
	}
	if cmd := tc.DelegateUpdate(tea.KeyMsg{}); cmd != nil {
		t.Error("delegating to a nil tab should be a no-op")
	}
}
