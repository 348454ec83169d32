package console

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/store"
)

// cmdTimeout bounds how long collect waits on one command. Timers such as
// spinner ticks and toast expiry never finish in time and are dropped.
const cmdTimeout = 30 * time.Millisecond

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// collect runs cmd and flattens batches and sequences into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdTimeout):
		return nil
	}
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	// tea.Sequence wraps its commands in an unexported slice type.
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var out []tea.Msg
		for i := range v.Len() {
			out = append(out, collect(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	return []tea.Msg{msg}
}

type harness struct {
	t      *testing.T
	m      Model
	repo   *store.MemoryStore
	toasts []string
	quit   bool
}

func testDeps(t *testing.T) (Deps, *store.MemoryStore) {
	t.Helper()
	repo, err := store.NewSeededStore(
		store.WithLatency(0),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	deps := Deps{
		Repo:    repo,
		Backend: "memory",
		Now:     func() time.Time { return time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC) },
	}
	return deps, repo
}

// newHarness opens the console at path and runs every initial load.
func newHarness(t *testing.T, path string) *harness {
	t.Helper()
	deps, repo := testDeps(t)
	stack, err := Resolve(context.Background(), deps, path)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", path, err)
	}
	h := &harness{t: t, m: NewModel(deps, stack...), repo: repo}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.run(h.m.Init())
	return h
}

func (h *harness) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		h.send(msg)
	}
}

// send delivers msg and keeps feeding the resulting messages back into the
// model until it settles.
func (h *harness) send(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			h.t.Fatal("model did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		switch next := next.(type) {
		case tea.QuitMsg:
			h.quit = true
			continue
		case showToastMsg:
			h.toasts = append(h.toasts, next.text)
		}
		updated, cmd := h.m.Update(next)
		h.m = updated.(Model)
		queue = append(queue, collect(cmd)...)
	}
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

// typeText sends one key event per rune, the way a terminal delivers typing.
func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) top() View { return h.m.top() }

func (h *harness) lastToast() string {
	if len(h.toasts) == 0 {
		return ""
	}
	return h.toasts[len(h.toasts)-1]
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
