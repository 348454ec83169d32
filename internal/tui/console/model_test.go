package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/deletion"
	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

func TestDeleteStaticIPClosesDetailAndRefreshesList(t *testing.T) {
	h := newHarness(t, "/networking/static-ips/ip-3")

	h.press("D")
	if got := h.m.dialog.State(); got != deletion.StateWarning {
		t.Fatalf("dialog state = %v, want warning", got)
	}
	h.press("enter")
	h.typeText("spare-ip")
	h.press("enter")

	if h.m.dialog.Active() {
		t.Fatalf("dialog still open in state %v", h.m.dialog.State())
	}
	if got, want := h.lastToast(), "Static IP spare-ip deleted"; got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
	if _, err := h.repo.StaticIPs().Get(context.Background(), "ip-3"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ip-3 still present: %v", err)
	}

	list, ok := h.top().(*TableView[model.StaticIP])
	if !ok {
		t.Fatalf("top view = %T, want static IP list", h.top())
	}
	for _, ip := range list.Items() {
		if ip.ID == "ip-3" {
			t.Error("list was not refreshed after delete")
		}
	}
}

func TestDeletePasteIsRejected(t *testing.T) {
	h := newHarness(t, "/networking/static-ips/ip-3")

	h.press("D", "enter")
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("spare-ip"), Paste: true})

	if got, want := h.lastToast(), "Pasting is disabled, type the name to confirm"; got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
	if got := h.m.dialog.flow.Input(); got != "" {
		t.Errorf("input after paste = %q, want empty", got)
	}
	if got := h.m.dialog.State(); got != deletion.StateNameConfirm {
		t.Errorf("state = %v, want name confirmation", got)
	}
}

func TestDeleteUnbracketedPasteIsRejected(t *testing.T) {
	h := newHarness(t, "/networking/static-ips/ip-3")

	h.press("D", "enter")
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("spare-ip")})

	if got, want := h.lastToast(), "Pasting is disabled, type the name to confirm"; got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
	if got := h.m.dialog.flow.Input(); got != "" {
		t.Errorf("input after multi-rune burst = %q, want empty", got)
	}

	h.press("enter")
	if _, err := h.repo.StaticIPs().Get(context.Background(), "ip-3"); err != nil {
		t.Errorf("ip-3 should survive a pasted name, Get err = %v", err)
	}
}

func TestIsPaste(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want bool
	}{
		{"single rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, false},
		{"bracketed", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Paste: true}, true},
		{"burst", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("spare")}, true},
		{"ctrl+v", tea.KeyMsg{Type: tea.KeyCtrlV}, true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPaste(tt.msg); got != tt.want {
				t.Errorf("isPaste = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeleteNameMismatchCancels(t *testing.T) {
	h := newHarness(t, "/networking/static-ips/ip-3")

	h.press("D", "enter")
	h.typeText("spare-IP")
	h.press("enter")

	if h.m.dialog.Active() {
		t.Fatal("mismatch should close the dialog")
	}
	if got, want := h.lastToast(), "Deletion of spare-ip canceled: name does not match"; got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
	if _, err := h.repo.StaticIPs().Get(context.Background(), "ip-3"); err != nil {
		t.Errorf("ip-3 should survive a mismatch: %v", err)
	}
	if _, ok := h.top().(*TextDetailView[model.StaticIP]); !ok {
		t.Errorf("top view = %T, want the detail page", h.top())
	}
}

func TestDeleteEscCancels(t *testing.T) {
	h := newHarness(t, "/networking/static-ips/ip-3")

	h.press("D", "esc")
	if h.m.dialog.Active() {
		t.Fatal("esc should close the dialog")
	}
	if got, want := h.lastToast(), "Deletion of spare-ip canceled"; got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
}

func TestBlockedSubnetDelete(t *testing.T) {
	h := newHarness(t, "/networking/subnets/subnet-1")

	h.press("D")
	if got := h.m.dialog.State(); got != deletion.StateBlocked {
		t.Fatalf("state = %v, want blocked", got)
	}
	view := h.m.View()
	for _, want := range []string{"Cannot delete Subnet prod-web-subnet", "web-server-01"} {
		if !strings.Contains(view, want) {
			t.Errorf("blocked dialog missing %q", want)
		}
	}

	h.press("enter")
	if h.m.dialog.Active() {
		t.Error("enter should dismiss a blocked dialog")
	}
	if _, err := h.repo.Subnets().Get(context.Background(), "subnet-1"); err != nil {
		t.Errorf("subnet-1 should still exist: %v", err)
	}
}

func TestProtectedVPCIsBlocked(t *testing.T) {
	h := newHarness(t, "/networking/vpc/vpc-3")

	h.press("D")
	if got := h.m.dialog.State(); got != deletion.StateBlocked {
		t.Fatalf("state = %v, want blocked", got)
	}
}

func TestDeleteVPCWithWarning(t *testing.T) {
	h := newHarness(t, "/networking/vpc/vpc-2")

	h.press("D")
	if got := h.m.dialog.State(); got != deletion.StateWarning {
		t.Fatalf("state = %v, want warning", got)
	}
	if !strings.Contains(h.m.View(), "staging-app-subnet") {
		t.Error("warning should list associated resources")
	}
	h.press("enter")
	h.typeText("staging-vpc")
	h.press("enter")

	if _, ok := h.top().(*TableView[model.VPC]); !ok {
		t.Errorf("top view = %T, want VPC list", h.top())
	}
	if _, err := h.repo.VPCs().Get(context.Background(), "vpc-2"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("vpc-2 still present: %v", err)
	}
}

func TestCreateVPCFromList(t *testing.T) {
	h := newHarness(t, "/networking/vpc")

	h.press("N")
	if _, ok := h.top().(*Form); !ok {
		t.Fatalf("top view = %T, want form", h.top())
	}
	h.typeText("edge-vpc")
	h.press("enter")

	if got, want := h.lastToast(), "VPC edge-vpc created"; got != want {
		t.Errorf("toast = %q, want %q", got, want)
	}
	list, ok := h.top().(*TableView[model.VPC])
	if !ok {
		t.Fatalf("top view = %T, want VPC list", h.top())
	}
	found := false
	for _, v := range list.Items() {
		found = found || v.Name == "edge-vpc"
	}
	if !found {
		t.Error("new VPC missing from refreshed list")
	}
}

func TestCreateDuplicateNameKeepsForm(t *testing.T) {
	h := newHarness(t, "/networking/vpc/create")

	h.typeText("staging-vpc")
	h.press("enter")

	if _, ok := h.top().(*Form); !ok {
		t.Fatalf("top view = %T, want the form to stay open", h.top())
	}
	if !strings.Contains(h.lastToast(), "already exists") {
		t.Errorf("toast = %q, want duplicate error", h.lastToast())
	}
}

func TestGlobalKeysIgnoredWhileTyping(t *testing.T) {
	h := newHarness(t, "/networking/vpc/create")

	h.typeText("q?/")
	if h.quit {
		t.Fatal("q in a form should not quit")
	}
	if h.m.showHelp || h.m.filtering {
		t.Error("form input should not open help or filter")
	}
	if got := h.top().(*Form).Values()["name"]; got != "q?/" {
		t.Errorf("name = %q, want q?/", got)
	}
}

func TestFilterClearedOnNavigation(t *testing.T) {
	h := newHarness(t, "/networking/vpc")

	h.press("/")
	h.typeText("prod")
	h.press("enter")
	list := h.top().(*TableView[model.VPC])
	if got := len(list.displayRows); got != 1 {
		t.Fatalf("filtered rows = %d, want 1", got)
	}
	if !strings.Contains(h.m.View(), "search: prod") {
		t.Error("locked search should be shown in the filter bar")
	}

	h.press("esc")
	if h.m.filterQuery != "" {
		t.Errorf("esc should clear the search first, query = %q", h.m.filterQuery)
	}
	if len(list.displayRows) != 5 {
		t.Errorf("rows after clear = %d, want 5", len(list.displayRows))
	}
	if _, ok := h.top().(*TableView[model.VPC]); !ok {
		t.Error("clearing the search should not pop the page")
	}
}

func TestCopyShowsToast(t *testing.T) {
	h := newHarness(t, "/networking/vpc")
	var copied string
	h.m.copy = func(s string) error { copied = s; return nil }

	h.press("c")
	if copied != "vpc-1" {
		t.Errorf("copied %q, want vpc-1", copied)
	}
	if got := h.lastToast(); got != "Copied: vpc-1" {
		t.Errorf("toast = %q", got)
	}
}

func TestToastOnlyClearedByItsOwnTimer(t *testing.T) {
	h := newHarness(t, "")
	h.send(showToastMsg{level: ToastInfo, text: "first"})
	h.send(showToastMsg{level: ToastInfo, text: "second"})

	h.send(clearToastMsg{id: 1})
	if h.m.toast == nil || h.m.toast.text != "second" {
		t.Fatalf("stale timer cleared the newer toast: %+v", h.m.toast)
	}
	h.send(clearToastMsg{id: h.m.toast.id})
	if h.m.toast != nil {
		t.Error("toast should be cleared by its own timer")
	}
}

func TestEscWalksBackThenQuits(t *testing.T) {
	h := newHarness(t, "/storage/volumes/vol-1")
	if got := len(h.m.stack); got != 4 {
		t.Fatalf("stack depth = %d, want 4", got)
	}

	h.press("esc", "esc", "esc")
	if got := len(h.m.stack); got != 1 {
		t.Fatalf("stack depth = %d, want 1", got)
	}
	if h.quit {
		t.Fatal("should not quit before reaching the root")
	}
	h.press("esc")
	if !h.quit {
		t.Error("esc on the root menu should quit")
	}
}

func TestHeaderShowsBackendAndUser(t *testing.T) {
	h := newHarness(t, "/networking")
	view := h.m.View()
	for _, want := range []string{"Console", "Networking", "backend: memory", "user: regular"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
