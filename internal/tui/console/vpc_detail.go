package console

import (
	"context"
	"fmt"
	"strings"
	"unsafe"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/utils"
)

const (
	vpcTabSubnets = iota
	vpcTabSecurityGroups
	vpcTabStaticIPs
)

type vpcDetailData struct {
	vpc     model.VPC
	subnets int
	sgs     int
	ips     int
}

// VPCDetailView shows a dashboard with VPC info and resource counts, plus a
// tab bar with the subnets, security groups and static IPs of the VPC.
type VPCDetailView struct {
	deps Deps
	vpc  model.VPC
	tabs *TabController

	countsLoaded bool
	loading      bool
	spinner      spinner.Model
	err          error
	width        int
	height       int
}

func NewVPCDetailView(deps Deps, vpc model.VPC) *VPCDetailView {
	v := &VPCDetailView{
		deps:    deps,
		vpc:     vpc,
		loading: true,
		spinner: theme.NewSpinner(),
	}
	v.tabs = NewTabController([]string{"Subnets", "Security Groups", "Static IPs"}, v.initTab)
	return v
}

func (v *VPCDetailView) viewID() uintptr { return uintptr(unsafe.Pointer(v)) }

func (v *VPCDetailView) Title() string { return v.vpc.Name }

func (v *VPCDetailView) HelpContext() HelpContext { return HelpContextVPCDetail }

func (v *VPCDetailView) Resource() (model.Kind, string) { return model.KindVPC, v.vpc.ID }

func (v *VPCDetailView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.fetch(), v.tabs.SwitchTab(vpcTabSubnets))
}

func (v *VPCDetailView) initTab(idx int) View {
	switch idx {
	case vpcTabSubnets:
		return NewSubnetListView(v.deps, v.vpc.Name)
	case vpcTabSecurityGroups:
		return NewSecurityGroupListView(v.deps, v.vpc.Name)
	case vpcTabStaticIPs:
		return NewStaticIPListView(v.deps, v.vpc.Name)
	}
	return nil
}

func (v *VPCDetailView) fetch() tea.Cmd {
	repo, id, viewID := v.deps.Repo, v.vpc.ID, v.viewID()
	return func() tea.Msg {
		ctx := context.Background()
		vpc, err := repo.VPCs().Get(ctx, id)
		if err != nil {
			return loadedMsg{viewID: viewID, err: err}
		}
		d := vpcDetailData{vpc: vpc}
		subnets, err := store.SubnetsInVPC(ctx, repo, vpc.Name)
		if err != nil {
			return loadedMsg{viewID: viewID, err: err}
		}
		sgs, err := store.SecurityGroupsInVPC(ctx, repo, vpc.Name)
		if err != nil {
			return loadedMsg{viewID: viewID, err: err}
		}
		ips, err := store.StaticIPsInVPC(ctx, repo, vpc.Name)
		if err != nil {
			return loadedMsg{viewID: viewID, err: err}
		}
		d.subnets, d.sgs, d.ips = len(subnets), len(sgs), len(ips)
		return loadedMsg{viewID: viewID, data: d}
	}
}

func (v *VPCDetailView) Refresh() tea.Cmd {
	return tea.Batch(v.fetch(), v.tabs.RefreshAll())
}

func (v *VPCDetailView) Cancel() { v.tabs.CancelAll() }

func (v *VPCDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.viewID != v.viewID() {
			return v, v.tabs.Broadcast(msg)
		}
		v.loading = false
		v.err = msg.err
		if d, ok := msg.data.(vpcDetailData); ok {
			v.vpc = d.vpc
			v.tabs.SetBadge(vpcTabSubnets, d.subnets)
			v.tabs.SetBadge(vpcTabSecurityGroups, d.sgs)
			v.tabs.SetBadge(vpcTabStaticIPs, d.ips)
			v.countsLoaded = true
		}
		return v, nil

	case tea.KeyMsg:
		if handled, cmd := v.tabs.HandleKey(msg.String()); handled {
			return v, cmd
		}
		if msg.String() == "D" {
			return v, deleteVPC(v.deps, v.vpc)
		}
		return v, v.tabs.DelegateUpdate(msg)

	case spinner.TickMsg:
		if v.loading {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, tea.Batch(cmd, v.tabs.Broadcast(msg))
		}
	}
	return v, v.tabs.Broadcast(msg)
}

func (v *VPCDetailView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.tabs.SetSize(width, v.contentHeight())
}

// contentHeight is what remains for the tab content. The dashboard box
// takes about eight lines and the tab bar two.
func (v *VPCDetailView) contentHeight() int {
	return max(v.height-10, 3)
}

// SetFilter searches the active tab.
func (v *VPCDetailView) SetFilter(query string) {
	if fv, ok := v.tabs.ActiveView().(FilterableView); ok {
		fv.SetFilter(query)
	}
}

func (v *VPCDetailView) CopyID() string {
	if cv, ok := v.tabs.ActiveView().(CopyableView); ok {
		if id := cv.CopyID(); id != "" {
			return id
		}
	}
	return v.vpc.ID
}

func (v *VPCDetailView) View() string {
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err))
	}
	sections := []string{v.renderDashboard(), v.tabs.RenderTabBar()}
	if tab := v.tabs.ActiveView(); tab != nil {
		sections = append(sections, tab.View())
	}
	return strings.Join(sections, "\n")
}

func (v *VPCDetailView) renderDashboard() string {
	vpc := v.vpc
	line1 := fmt.Sprintf("Status: %s   Type: %s   Region: %s   Network: %s",
		theme.RenderStatus(vpc.Status), vpc.Type, vpc.Region, utils.OrDash(vpc.NetworkName))
	line2 := fmt.Sprintf("Created: %s   %s", utils.TimeOrDash(vpc.CreatedOn, utils.DateOnly), vpc.Description)

	var line3 string
	switch {
	case v.loading:
		line3 = v.spinner.View() + " Loading resource counts..."
	case len(vpc.Resources) == 0:
		line3 = theme.MutedStyle.Render("No dependent resources")
	default:
		parts := make([]string, 0, len(vpc.Resources))
		for _, r := range vpc.Resources {
			parts = append(parts, fmt.Sprintf("%s: %s ×%d", r.Type, r.Name, r.Count))
		}
		line3 = "Resources: " + strings.Join(parts, " · ")
	}

	boxStyle := theme.DashboardBoxStyle
	if v.width > 0 {
		boxStyle = boxStyle.Width(v.width - 4)
	}
	header := theme.DashboardTitleStyle.Render(vpc.ID + " - " + vpc.Name)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, line1, line2, line3))
}
