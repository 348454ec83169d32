package console

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/utils"
)

var (
	vpcEmpty = &EmptyState{
		Title: "No VPCs yet",
		Body:  "A VPC is an isolated network for your VMs, subnets and security groups.\nCreate one to start building your network.",
	}
	subnetEmpty = &EmptyState{
		Title: "No subnets yet",
		Body:  "Subnets split a VPC into address ranges that VMs attach to.",
	}
	securityGroupEmpty = &EmptyState{
		Title: "No security groups yet",
		Body:  "Security groups hold the inbound and outbound rules applied to your VMs.",
	}
	staticIPEmpty = &EmptyState{
		Title: "No static IPs yet",
		Body:  "Reserve a static IP to keep a public address across VM restarts.",
	}
)

func NewVPCListView(deps Deps) *TableView[model.VPC] {
	return NewTableView(withDeps(deps, TableViewConfig[model.VPC]{
		Title:       "VPCs",
		LoadingText: "Loading VPCs...",
		Noun:        "VPCs",
		Columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "VPC ID", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Type", Width: 6},
			{Title: "Region", Width: 12},
			{Title: "Resources", Width: 10},
			{Title: "Created", Width: 11},
		},
		SearchColumns: []int{0, 1, 4},
		FetchFunc: func(ctx context.Context) ([]model.VPC, error) {
			return deps.Repo.VPCs().List(ctx)
		},
		RowMapper: func(v model.VPC) table.Row {
			total := 0
			for _, r := range v.Resources {
				total += r.Count
			}
			return table.Row{v.Name, v.ID, v.Status, v.Type, v.Region, strconv.Itoa(total), utils.TimeOrDash(v.CreatedOn, utils.DateOnly)}
		},
		CopyIDFunc: func(v model.VPC) string { return v.ID },
		OnEnter: func(v model.VPC) tea.Cmd {
			return pushView(NewVPCDetailView(deps, v))
		},
		OnCreate: func() tea.Cmd { return pushView(NewVPCForm(deps)) },
		KeyHandlers: map[string]func(model.VPC) tea.Cmd{
			"d": func(v model.VPC) tea.Cmd { return deleteVPC(deps, v) },
		},
		EmptyState: vpcEmpty,
	}))
}

// NewSubnetListView lists subnets, scoped to one VPC when vpcName is set.
func NewSubnetListView(deps Deps, vpcName string) *TableView[model.Subnet] {
	return NewTableView(withDeps(deps, TableViewConfig[model.Subnet]{
		Title:       "Subnets",
		LoadingText: "Loading subnets...",
		Noun:        "subnets",
		Columns: []table.Column{
			{Title: "Name", Width: 22},
			{Title: "Subnet ID", Width: 14},
			{Title: "VPC", Width: 16},
			{Title: "Type", Width: 8},
			{Title: "CIDR", Width: 16},
			{Title: "Zone", Width: 12},
			{Title: "Status", Width: 10},
		},
		SearchColumns: []int{0, 1, 2, 4},
		FetchFunc: func(ctx context.Context) ([]model.Subnet, error) {
			if vpcName != "" {
				return store.SubnetsInVPC(ctx, deps.Repo, vpcName)
			}
			return deps.Repo.Subnets().List(ctx)
		},
		RowMapper: func(s model.Subnet) table.Row {
			return table.Row{s.Name, s.ID, s.VPCName, s.Type, s.CIDR, s.AvailabilityZone, s.Status}
		},
		CopyIDFunc: func(s model.Subnet) string { return s.ID },
		OnEnter: func(s model.Subnet) tea.Cmd {
			return pushView(NewSubnetDetailView(deps, s))
		},
		OnCreate: func() tea.Cmd { return NewSubnetForm(deps, vpcName) },
		KeyHandlers: map[string]func(model.Subnet) tea.Cmd{
			"d": func(s model.Subnet) tea.Cmd { return deleteSubnet(deps, s) },
		},
		EmptyState: subnetEmpty,
	}))
}

func NewSecurityGroupListView(deps Deps, vpcName string) *TableView[model.SecurityGroup] {
	return NewTableView(withDeps(deps, TableViewConfig[model.SecurityGroup]{
		Title:       "Security Groups",
		LoadingText: "Loading security groups...",
		Noun:        "security groups",
		Columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Group ID", Width: 14},
			{Title: "VPC", Width: 16},
			{Title: "Inbound", Width: 8},
			{Title: "Outbound", Width: 9},
			{Title: "Description", Width: 30},
		},
		SearchColumns: []int{0, 1, 2, 5},
		FetchFunc: func(ctx context.Context) ([]model.SecurityGroup, error) {
			if vpcName != "" {
				return store.SecurityGroupsInVPC(ctx, deps.Repo, vpcName)
			}
			return deps.Repo.SecurityGroups().List(ctx)
		},
		RowMapper: func(sg model.SecurityGroup) table.Row {
			return table.Row{sg.Name, sg.ID, sg.VPCName, strconv.Itoa(len(sg.InboundRules)), strconv.Itoa(len(sg.OutboundRules)), sg.Description}
		},
		CopyIDFunc: func(sg model.SecurityGroup) string { return sg.ID },
		OnEnter: func(sg model.SecurityGroup) tea.Cmd {
			return pushView(NewSecurityGroupDetailView(deps, sg))
		},
		OnCreate: func() tea.Cmd { return NewSecurityGroupForm(deps, vpcName) },
		KeyHandlers: map[string]func(model.SecurityGroup) tea.Cmd{
			"d": func(sg model.SecurityGroup) tea.Cmd { return deleteSecurityGroup(deps, sg) },
		},
		EmptyState: securityGroupEmpty,
	}))
}

func NewStaticIPListView(deps Deps, vpcName string) *TableView[model.StaticIP] {
	return NewTableView(withDeps(deps, TableViewConfig[model.StaticIP]{
		Title:       "Static IPs",
		LoadingText: "Loading static IPs...",
		Noun:        "static IPs",
		Columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "IP ID", Width: 14},
			{Title: "Address", Width: 16},
			{Title: "VPC", Width: 16},
			{Title: "Status", Width: 10},
			{Title: "Associated With", Width: 18},
		},
		SearchColumns: []int{0, 1, 2, 3, 5},
		FetchFunc: func(ctx context.Context) ([]model.StaticIP, error) {
			if vpcName != "" {
				return store.StaticIPsInVPC(ctx, deps.Repo, vpcName)
			}
			return deps.Repo.StaticIPs().List(ctx)
		},
		RowMapper: func(ip model.StaticIP) table.Row {
			return table.Row{ip.Name, ip.ID, ip.IPAddress, ip.VPCName, ip.Status, ip.AssociatedResource}
		},
		CopyIDFunc: func(ip model.StaticIP) string { return ip.IPAddress },
		OnEnter: func(ip model.StaticIP) tea.Cmd {
			return pushView(NewStaticIPDetailView(deps, ip))
		},
		OnCreate: func() tea.Cmd { return NewStaticIPForm(deps, vpcName) },
		KeyHandlers: map[string]func(model.StaticIP) tea.Cmd{
			"d": func(ip model.StaticIP) tea.Cmd { return deleteStaticIP(deps, ip) },
		},
		EmptyState: staticIPEmpty,
	}))
}
