package console

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unsafe"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/utils"
)

const (
	ruleInbound  = "Inbound"
	ruleOutbound = "Outbound"
)

// SecurityGroupDetailView shows a security group with its inbound and
// outbound rules on two tabs.
type SecurityGroupDetailView struct {
	deps   Deps
	sg     model.SecurityGroup
	tabs   *TabController
	err    error
	width  int
	height int
}

func NewSecurityGroupDetailView(deps Deps, sg model.SecurityGroup) *SecurityGroupDetailView {
	v := &SecurityGroupDetailView{deps: deps, sg: sg}
	v.tabs = NewTabController([]string{ruleInbound, ruleOutbound}, v.initTab)
	v.tabs.SetBadge(0, len(sg.InboundRules))
	v.tabs.SetBadge(1, len(sg.OutboundRules))
	return v
}

func (v *SecurityGroupDetailView) viewID() uintptr { return uintptr(unsafe.Pointer(v)) }

func (v *SecurityGroupDetailView) Title() string { return v.sg.Name }

func (v *SecurityGroupDetailView) HelpContext() HelpContext { return HelpContextSGDetail }

func (v *SecurityGroupDetailView) Resource() (model.Kind, string) {
	return model.KindSecurityGroup, v.sg.ID
}

func (v *SecurityGroupDetailView) Init() tea.Cmd {
	return tea.Batch(v.fetch(), v.tabs.SwitchTab(0))
}

func (v *SecurityGroupDetailView) direction() string { return v.tabs.TabNames[v.tabs.ActiveTab] }

func (v *SecurityGroupDetailView) initTab(idx int) View {
	direction := v.tabs.TabNames[idx]
	repo, id := v.deps.Repo, v.sg.ID
	peer := "Source"
	if direction == ruleOutbound {
		peer = "Destination"
	}
	return NewTableView(TableViewConfig[model.Rule]{
		Title:       direction + " rules",
		LoadingText: "Loading rules...",
		Noun:        strings.ToLower(direction) + " rules",
		Columns: []table.Column{
			{Title: "Protocol", Width: 9},
			{Title: "Port Range", Width: 11},
			{Title: peer, Width: 18},
			{Title: "Description", Width: 28},
			{Title: "Rule ID", Width: 14},
		},
		FetchFunc: func(ctx context.Context) ([]model.Rule, error) {
			sg, err := repo.SecurityGroups().Get(ctx, id)
			if err != nil {
				return nil, err
			}
			if direction == ruleOutbound {
				return sg.OutboundRules, nil
			}
			return sg.InboundRules, nil
		},
		RowMapper: func(r model.Rule) table.Row {
			return table.Row{r.Protocol, r.PortRange, r.RemoteIPPrefix, r.Description, r.ID}
		},
		CopyIDFunc: func(r model.Rule) string { return r.ID },
		OnCreate:   func() tea.Cmd { return pushView(NewRuleForm(v.deps, v.sg, direction)) },
		KeyHandlers: map[string]func(model.Rule) tea.Cmd{
			"x": func(r model.Rule) tea.Cmd { return v.removeRule(direction, r) },
		},
		PageSize:        v.deps.PageSize,
		RefreshInterval: v.deps.RefreshInterval,
		Now:             v.deps.now,
	})
}

func (v *SecurityGroupDetailView) fetch() tea.Cmd {
	repo, id, viewID := v.deps.Repo, v.sg.ID, v.viewID()
	return func() tea.Msg {
		sg, err := repo.SecurityGroups().Get(context.Background(), id)
		return loadedMsg{viewID: viewID, data: sg, err: err}
	}
}

func (v *SecurityGroupDetailView) Refresh() tea.Cmd {
	return tea.Batch(v.fetch(), v.tabs.RefreshAll())
}

func (v *SecurityGroupDetailView) Cancel() { v.tabs.CancelAll() }

func (v *SecurityGroupDetailView) removeRule(direction string, r model.Rule) tea.Cmd {
	repo, id := v.deps.Repo, v.sg.ID
	return mutate(model.KindSecurityGroup, id, fmt.Sprintf("Removed %s rule %s", strings.ToLower(direction), r.ID),
		func(ctx context.Context) error {
			sg, err := repo.SecurityGroups().Get(ctx, id)
			if err != nil {
				return err
			}
			drop := func(rule model.Rule) bool { return rule.ID == r.ID }
			if direction == ruleOutbound {
				sg.OutboundRules = slices.DeleteFunc(sg.OutboundRules, drop)
			} else {
				sg.InboundRules = slices.DeleteFunc(sg.InboundRules, drop)
			}
			_, err = repo.SecurityGroups().Update(ctx, sg)
			return err
		})
}

func (v *SecurityGroupDetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.viewID != v.viewID() {
			return v, v.tabs.Broadcast(msg)
		}
		v.err = msg.err
		if sg, ok := msg.data.(model.SecurityGroup); ok && msg.err == nil {
			v.sg = sg
			v.tabs.SetBadge(0, len(sg.InboundRules))
			v.tabs.SetBadge(1, len(sg.OutboundRules))
		}
		return v, nil

	case tea.KeyMsg:
		if handled, cmd := v.tabs.HandleKey(msg.String()); handled {
			return v, cmd
		}
		switch msg.String() {
		case "A":
			return v, pushView(NewRuleForm(v.deps, v.sg, v.direction()))
		case "d", "D":
			return v, deleteSecurityGroup(v.deps, v.sg)
		}
		return v, v.tabs.DelegateUpdate(msg)
	}
	return v, v.tabs.Broadcast(msg)
}

func (v *SecurityGroupDetailView) SetSize(width, height int) {
	v.width, v.height = width, height
	v.tabs.SetSize(width, max(height-9, 3))
}

func (v *SecurityGroupDetailView) SetFilter(query string) {
	if fv, ok := v.tabs.ActiveView().(FilterableView); ok {
		fv.SetFilter(query)
	}
}

func (v *SecurityGroupDetailView) CopyID() string { return v.sg.ID }

func (v *SecurityGroupDetailView) View() string {
	if v.err != nil {
		return theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", v.err))
	}
	sg := v.sg
	line1 := fmt.Sprintf("VPC: %s   Status: %s   Created: %s",
		sg.VPCName, theme.RenderStatus(sg.Status), utils.TimeOrDash(sg.CreatedOn, utils.DateOnly))
	line2 := utils.OrDash(sg.Description)

	boxStyle := theme.DashboardBoxStyle
	if v.width > 0 {
		boxStyle = boxStyle.Width(v.width - 4)
	}
	header := theme.DashboardTitleStyle.Render(sg.ID + " - " + sg.Name)
	sections := []string{
		boxStyle.Render(header + "\n" + line1 + "\n" + line2),
		v.tabs.RenderTabBar(),
	}
	if tab := v.tabs.ActiveView(); tab != nil {
		sections = append(sections, tab.View())
	}
	return strings.Join(sections, "\n")
}
