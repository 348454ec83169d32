package console

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/userdata"
	"tasnim.dev/cloud-console/internal/utils"
)

const (
	defaultPageSize        = 20
	defaultRefreshInterval = 15 * time.Second
	minRefreshInterval     = 5 * time.Second
)

// tableDataMsg carries async-fetched data back to the correct TableView instance.
type tableDataMsg struct {
	viewID  uintptr
	fetchID int
	items   any
	err     error
}

// autoRefreshTickMsg fires a background refetch. Ticks whose seq no longer
// matches the view are dropped.
type autoRefreshTickMsg struct {
	viewID uintptr
	seq    int
}

// EmptyState is the resource-specific placeholder shown to new users.
type EmptyState struct {
	Title string
	Body  string
}

// TableViewConfig defines all the customizable parts of a table-based view.
type TableViewConfig[T any] struct {
	Title       string
	LoadingText string
	Noun        string // plural, used in status and empty lines
	Columns     []table.Column
	FetchFunc   func(ctx context.Context) ([]T, error)
	RowMapper   func(item T) table.Row
	CopyIDFunc  func(item T) string
	SummaryFunc func(items []T) string // optional, rendered above table
	OnEnter     func(item T) tea.Cmd   // optional, nil = no drill-down
	OnCreate    func() tea.Cmd         // optional, bound to N
	KeyHandlers map[string]func(T) tea.Cmd
	// SearchColumns restricts filtering to these column indexes. Empty means all.
	SearchColumns   []int
	PageSize        int
	RefreshInterval time.Duration
	UserType        userdata.UserType
	EmptyState      *EmptyState
	HelpCtx         *HelpContext
	HeightOffset    int // lines consumed by summary
	Now             func() time.Time
}

// TableView is a generic, reusable table-based view.
type TableView[T any] struct {
	config  TableViewConfig[T]
	items   []T
	table   table.Model
	spinner spinner.Model
	loading bool
	err     error

	allRows     []table.Row
	order       []int // display position -> index into items
	displayRows []table.Row

	pageSize    int
	currentPage int

	query    string
	sortCol  int
	sortDesc bool

	autoRefresh   bool
	interval      time.Duration
	refreshSeq    int
	lastRefreshed time.Time

	fetchID int
	cancel  context.CancelFunc
}

// NewTableView creates a new TableView from the given config.
func NewTableView[T any](cfg TableViewConfig[T]) *TableView[T] {
	t := table.New(
		table.WithColumns(cfg.Columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(theme.DefaultTableStyles())

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TableView[T]{
		config:   cfg,
		table:    t,
		spinner:  theme.NewSpinner(),
		loading:  true,
		pageSize: pageSize,
		sortCol:  -1,
		interval: clampInterval(cfg.RefreshInterval),
	}
}

func clampInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultRefreshInterval
	}
	return max(d, minRefreshInterval)
}

func (v *TableView[T]) viewID() uintptr {
	return uintptr(unsafe.Pointer(v))
}

func (v *TableView[T]) Title() string { return v.config.Title }

func (v *TableView[T]) HelpContext() HelpContext {
	if v.config.HelpCtx != nil {
		return *v.config.HelpCtx
	}
	return HelpContextTable
}

func (v *TableView[T]) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetchData())
}

// fetchData cancels any fetch still in flight and starts a new one.
func (v *TableView[T]) fetchData() tea.Cmd {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.fetchID++

	id, fetchID := v.viewID(), v.fetchID
	fetch := v.config.FetchFunc
	userType := v.config.UserType
	return func() tea.Msg {
		items, err := fetch(ctx)
		if err != nil {
			return tableDataMsg{viewID: id, fetchID: fetchID, err: err}
		}
		return tableDataMsg{viewID: id, fetchID: fetchID, items: store.FilterForUser(userType, items)}
	}
}

// Refresh refetches without blanking the current rows.
func (v *TableView[T]) Refresh() tea.Cmd {
	v.err = nil
	return v.fetchData()
}

// Cancel stops auto-refresh and aborts the in-flight fetch. Safe to call
// more than once.
func (v *TableView[T]) Cancel() {
	v.autoRefresh = false
	v.refreshSeq++
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *TableView[T]) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tableDataMsg:
		if msg.viewID != v.viewID() || msg.fetchID != v.fetchID {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		items, ok := msg.items.([]T)
		if !ok {
			return v, nil
		}
		v.err = nil
		v.setItems(items)
		if now := v.config.Now(); now.After(v.lastRefreshed) {
			v.lastRefreshed = now
		}
		return v, nil

	case autoRefreshTickMsg:
		if msg.viewID != v.viewID() || msg.seq != v.refreshSeq || !v.autoRefresh {
			return v, nil
		}
		return v, tea.Batch(v.fetchData(), v.scheduleTick())

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "r":
			v.loading = true
			v.err = nil
			return v, tea.Batch(v.spinner.Tick, v.fetchData())
		case "n":
			v.nextPage()
			return v, nil
		case "p":
			v.prevPage()
			return v, nil
		case "s":
			if n := len(v.config.Columns); n > 0 {
				v.SortBy((v.sortCol + 1) % n)
			}
			return v, nil
		case "S":
			v.SortBy(max(v.sortCol, 0))
			return v, nil
		case "a":
			return v, v.toggleAutoRefresh()
		case "N":
			if v.config.OnCreate != nil {
				return v, v.config.OnCreate()
			}
			return v, nil
		case "enter":
			if v.config.OnEnter != nil {
				if item, ok := v.selected(); ok {
					return v, v.config.OnEnter(item)
				}
			}
			return v, nil
		}
		if handler, ok := v.config.KeyHandlers[key]; ok {
			if item, ok := v.selected(); ok {
				return v, handler(item)
			}
			return v, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *TableView[T]) setItems(items []T) {
	v.items = items
	v.allRows = make([]table.Row, len(items))
	for i, item := range items {
		v.allRows[i] = v.config.RowMapper(item)
	}
	v.rebuild()
}

// rebuild recomputes the filtered and sorted display order from allRows.
func (v *TableView[T]) rebuild() {
	query := strings.ToLower(v.query)
	v.order = v.order[:0]
	for i, row := range v.allRows {
		if query == "" || v.rowMatches(row, query) {
			v.order = append(v.order, i)
		}
	}
	if v.sortCol >= 0 {
		col, desc := v.sortCol, v.sortDesc
		slices.SortStableFunc(v.order, func(a, b int) int {
			c := compareCells(cell(v.allRows[a], col), cell(v.allRows[b], col))
			if desc {
				return -c
			}
			return c
		})
	}

	v.displayRows = make([]table.Row, len(v.order))
	for i, idx := range v.order {
		v.displayRows[i] = v.allRows[idx]
	}
	if pages := v.totalPages(); v.currentPage >= pages {
		v.currentPage = max(pages-1, 0)
	}
	v.applyPage()
}

func (v *TableView[T]) rowMatches(row table.Row, query string) bool {
	if len(v.config.SearchColumns) == 0 {
		for _, c := range row {
			if strings.Contains(strings.ToLower(c), query) {
				return true
			}
		}
		return false
	}
	for _, i := range v.config.SearchColumns {
		if strings.Contains(strings.ToLower(cell(row, i)), query) {
			return true
		}
	}
	return false
}

func cell(row table.Row, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// compareCells orders numerically when both cells start with a number
// ("500 GB", "3,000"), otherwise case-insensitively.
func compareCells(a, b string) int {
	if x, ok := leadingNumber(a); ok {
		if y, ok := leadingNumber(b); ok {
			return cmp.Compare(x, y)
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func leadingNumber(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", ""), 64)
	return n, err == nil
}

// SortBy sorts on col. Selecting the current column flips the direction; a
// new column starts ascending.
func (v *TableView[T]) SortBy(col int) {
	if col < 0 || col >= len(v.config.Columns) {
		return
	}
	if col == v.sortCol {
		v.sortDesc = !v.sortDesc
	} else {
		v.sortCol = col
		v.sortDesc = false
	}
	v.table.SetColumns(v.headerColumns())
	v.rebuild()
}

func (v *TableView[T]) headerColumns() []table.Column {
	cols := slices.Clone(v.config.Columns)
	if v.sortCol >= 0 && v.sortCol < len(cols) {
		arrow := " ▲"
		if v.sortDesc {
			arrow = " ▼"
		}
		cols[v.sortCol].Title += arrow
	}
	return cols
}

func (v *TableView[T]) toggleAutoRefresh() tea.Cmd {
	v.autoRefresh = !v.autoRefresh
	v.refreshSeq++
	if !v.autoRefresh {
		return nil
	}
	return v.scheduleTick()
}

// SetRefreshInterval changes the auto-refresh period. Ticks already
// scheduled with the old period are invalidated.
func (v *TableView[T]) SetRefreshInterval(d time.Duration) tea.Cmd {
	v.interval = clampInterval(d)
	v.refreshSeq++
	if !v.autoRefresh {
		return nil
	}
	return v.scheduleTick()
}

func (v *TableView[T]) scheduleTick() tea.Cmd {
	id, seq := v.viewID(), v.refreshSeq
	return tea.Tick(v.interval, func(time.Time) tea.Msg {
		return autoRefreshTickMsg{viewID: id, seq: seq}
	})
}

func (v *TableView[T]) totalPages() int {
	n := len(v.displayRows)
	if n == 0 {
		return 0
	}
	return (n + v.pageSize - 1) / v.pageSize
}

func (v *TableView[T]) applyPage() {
	start := v.currentPage * v.pageSize
	end := min(start+v.pageSize, len(v.displayRows))
	if start > end {
		start = end
	}
	v.table.SetRows(v.displayRows[start:end])
}

func (v *TableView[T]) nextPage() {
	if v.currentPage+1 < v.totalPages() {
		v.currentPage++
		v.applyPage()
		v.table.SetCursor(0)
	}
}

func (v *TableView[T]) prevPage() {
	if v.currentPage > 0 {
		v.currentPage--
		v.applyPage()
		v.table.SetCursor(0)
	}
}

func (v *TableView[T]) paginationStatus() string {
	pages := v.totalPages()
	if pages <= 1 {
		return ""
	}
	return fmt.Sprintf("Page %d/%d (%d items)", v.currentPage+1, pages, len(v.displayRows))
}

func (v *TableView[T]) selected() (T, bool) {
	var zero T
	cursor := v.table.Cursor()
	idx := v.currentPage*v.pageSize + cursor
	if cursor < 0 || idx >= len(v.order) {
		return zero, false
	}
	return v.items[v.order[idx]], true
}

func (v *TableView[T]) statusLine() string {
	var parts []string
	if s := v.paginationStatus(); s != "" {
		parts = append(parts, s)
	}
	if v.query != "" {
		parts = append(parts, fmt.Sprintf("%d of %d match", len(v.displayRows), len(v.allRows)))
	}
	if v.sortCol >= 0 {
		dir := "asc"
		if v.sortDesc {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sorted by %s %s", v.config.Columns[v.sortCol].Title, dir))
	}
	if v.autoRefresh {
		parts = append(parts, fmt.Sprintf("auto-refresh %s", v.interval))
	}
	if !v.lastRefreshed.IsZero() {
		parts = append(parts, "refreshed "+v.lastRefreshed.Format(utils.TimeOnly))
	}
	return strings.Join(parts, " · ")
}

func (v *TableView[T]) View() string {
	if v.loading {
		return loadingView(v.spinner, v.config.LoadingText)
	}
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err))
	}
	if len(v.items) == 0 {
		return v.renderEmpty()
	}

	var b strings.Builder
	if v.config.SummaryFunc != nil {
		b.WriteString(v.config.SummaryFunc(v.items) + "\n\n")
	}
	b.WriteString(v.table.View())
	if status := v.statusLine(); status != "" {
		b.WriteString("\n")
		if v.autoRefresh {
			b.WriteString(theme.SuccessStyle.Render("● "))
		}
		b.WriteString(theme.MutedStyle.Render(status))
	}
	return b.String()
}

func (v *TableView[T]) renderEmpty() string {
	noun := v.config.Noun
	if noun == "" {
		noun = "items"
	}
	var b strings.Builder
	if v.config.EmptyState != nil && store.ShouldShowEmptyState(v.config.UserType) {
		b.WriteString(theme.EmptyTitleStyle.Render(v.config.EmptyState.Title) + "\n")
		b.WriteString(v.config.EmptyState.Body)
	} else {
		b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("No %s found.", noun)))
	}
	if v.config.OnCreate != nil {
		b.WriteString("\n\n" + theme.FilterStyle.Render("Press N to create one."))
	}
	return b.String()
}

// SetFilter implements FilterableView.
func (v *TableView[T]) SetFilter(query string) {
	v.query = query
	v.currentPage = 0
	v.rebuild()
	v.table.SetCursor(0)
}

// Items returns the records as fetched, before filtering and sorting.
func (v *TableView[T]) Items() []T { return v.items }

// ResizableView implementation
func (v *TableView[T]) SetSize(width, height int) {
	v.table.SetWidth(width)
	// one line for the status bar
	v.table.SetHeight(max(height-v.config.HeightOffset-1, 3))
}

// CopyableView implementation
func (v *TableView[T]) CopyID() string {
	if v.config.CopyIDFunc == nil {
		return ""
	}
	if item, ok := v.selected(); ok {
		return v.config.CopyIDFunc(item)
	}
	return ""
}
