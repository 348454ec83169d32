package console

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unsafe"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/utils"
)

type subnetDetailData struct {
	subnet    model.Subnet
	vm        *model.VMAttachment
	connected []model.Subnet
	// candidates are subnets that could still be connected.
	candidates []model.Subnet
}

// SubnetDetailView shows a subnet, the VM using it and the subnets it is
// connected to.
type SubnetDetailView struct {
	deps Deps
	data subnetDetailData

	conns   table.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func NewSubnetDetailView(deps Deps, s model.Subnet) *SubnetDetailView {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Subnet ID", Width: 14},
			{Title: "VPC", Width: 16},
			{Title: "CIDR", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(6),
	)
	t.SetStyles(theme.DefaultTableStyles())
	return &SubnetDetailView{
		deps:    deps,
		data:    subnetDetailData{subnet: s},
		conns:   t,
		spinner: theme.NewSpinner(),
		loading: true,
	}
}

func (v *SubnetDetailView) viewID() uintptr { return uintptr(unsafe.Pointer(v)) }

func (v *SubnetDetailView) Title() string { return v.data.subnet.Name }

func (v *SubnetDetailView) HelpContext() HelpContext { return HelpContextSubnetDetail }

func (v *SubnetDetailView) Resource() (model.Kind, string) {
	return model.KindSubnet, v.data.subnet.ID
}

func (v *SubnetDetailView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetch())
}

func (v *SubnetDetailView) Refresh() tea.Cmd { return v.fetch() }

func (v *SubnetDetailView) fetch() tea.Cmd {
	repo, id, viewID := v.deps.Repo, v.data.subnet.ID, v.viewID()
	return func() tea.Msg {
		d, err := loadSubnetDetail(context.Background(), repo, id)
		return loadedMsg{viewID: viewID, data: d, err: err}
	}
}

func loadSubnetDetail(ctx context.Context, repo store.Repository, id string) (subnetDetailData, error) {
	var d subnetDetailData
	s, err := repo.Subnets().Get(ctx, id)
	if err != nil {
		return d, err
	}
	d.subnet = s
	if d.vm, err = repo.VMAttachment(ctx, id); err != nil {
		return d, err
	}
	ids, err := repo.ConnectedSubnets(ctx, id)
	if err != nil {
		return d, err
	}
	all, err := repo.Subnets().List(ctx)
	if err != nil {
		return d, err
	}
	for _, other := range all {
		switch {
		case other.ID == id:
		case slices.Contains(ids, other.ID):
			d.connected = append(d.connected, other)
		default:
			d.candidates = append(d.candidates, other)
		}
	}
	return d, nil
}

func (v *SubnetDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.viewID != v.viewID() {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if d, ok := msg.data.(subnetDetailData); ok && msg.err == nil {
			v.data = d
			rows := make([]table.Row, len(d.connected))
			for i, s := range d.connected {
				rows[i] = table.Row{s.Name, s.ID, s.VPCName, s.CIDR}
			}
			v.conns.SetRows(rows)
			if c := v.conns.Cursor(); c >= len(rows) {
				v.conns.SetCursor(max(len(rows)-1, 0))
			}
		}
		return v, nil

	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		switch msg.String() {
		case "+":
			return v, v.connect()
		case "x":
			return v, v.disconnect()
		case "d", "D":
			return v, deleteSubnet(v.deps, v.data.subnet)
		case "r":
			v.loading = true
			return v, tea.Batch(v.spinner.Tick, v.fetch())
		}
		var cmd tea.Cmd
		v.conns, cmd = v.conns.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *SubnetDetailView) connect() tea.Cmd {
	if len(v.data.candidates) == 0 {
		return notify(ToastWarning, "No other subnets left to connect")
	}
	return pushView(NewConnectSubnetForm(v.deps, v.data.subnet, v.data.candidates))
}

func (v *SubnetDetailView) disconnect() tea.Cmd {
	i := v.conns.Cursor()
	if i < 0 || i >= len(v.data.connected) {
		return nil
	}
	self, other := v.data.subnet, v.data.connected[i]
	repo := v.deps.Repo
	return mutate(model.KindSubnet, self.ID, fmt.Sprintf("Disconnected %s from %s", other.Name, self.Name),
		func(ctx context.Context) error { return repo.DisconnectSubnets(ctx, self.ID, other.ID) })
}

func (v *SubnetDetailView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.conns.SetWidth(width)
	// details take about fourteen lines above the table
	v.conns.SetHeight(max(height-16, 3))
}

func (v *SubnetDetailView) CopyID() string { return v.data.subnet.ID }

func (v *SubnetDetailView) View() string {
	if v.loading {
		return loadingView(v.spinner, "Loading subnet...")
	}
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err))
	}

	s := v.data.subnet
	d := newDetailBuilder()
	d.Section("Subnet")
	d.Rows(
		[2]string{"Name", s.Name},
		[2]string{"ID", s.ID},
		[2]string{"VPC", s.VPCName},
		[2]string{"Type", s.Type},
		[2]string{"Status", theme.RenderStatus(s.Status)},
		[2]string{"CIDR", s.CIDR},
		[2]string{"Gateway IP", s.GatewayIP},
		[2]string{"Zone", s.AvailabilityZone},
		[2]string{"Created", utils.TimeOrDash(s.CreatedOn, utils.DateTime)},
		[2]string{"Description", s.Description},
	)
	vm := "not attached"
	if v.data.vm != nil {
		vm = fmt.Sprintf("%s (%s, %s)", v.data.vm.VMName, v.data.vm.VMID, v.data.vm.IPAddress)
	}
	d.Row("VM", vm)
	d.Blank()
	d.Section(fmt.Sprintf("Connections (%d)", len(v.data.connected)))

	var b strings.Builder
	b.WriteString(d.String())
	if len(v.data.connected) == 0 {
		b.WriteString(theme.MutedStyle.Render("  Not connected to any subnet. Press + to connect one."))
	} else {
		b.WriteString(v.conns.View())
	}
	return b.String()
}
