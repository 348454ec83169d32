package console

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	name string
	desc string
	open func() View
}

func (i menuItem) Title() string       { return i.name }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.name }

// MenuView is a list of sections or resource pages.
type MenuView struct {
	title string
	list  list.Model
}

func newMenuView(title string, items ...menuItem) *MenuView {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	l := list.New(listItems, list.NewDefaultDelegate(), 60, 14)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return &MenuView{title: title, list: l}
}

func NewRootView(deps Deps) *MenuView {
	return newMenuView("Console",
		menuItem{name: "Networking", desc: "VPCs, Subnets, Security Groups, Static IPs", open: func() View { return NewNetworkingMenu(deps) }},
		menuItem{name: "Storage", desc: "Volumes, Snapshots, Backups", open: func() View { return NewStorageMenu(deps) }},
	)
}

func NewNetworkingMenu(deps Deps) *MenuView {
	return newMenuView("Networking",
		menuItem{name: "VPCs", desc: "Isolated virtual networks", open: func() View { return NewVPCListView(deps) }},
		menuItem{name: "Subnets", desc: "Address ranges inside a VPC", open: func() View { return NewSubnetListView(deps, "") }},
		menuItem{name: "Security Groups", desc: "Inbound and outbound traffic rules", open: func() View { return NewSecurityGroupListView(deps, "") }},
		menuItem{name: "Static IPs", desc: "Reserved public addresses", open: func() View { return NewStaticIPListView(deps, "") }},
	)
}

func NewStorageMenu(deps Deps) *MenuView {
	return newMenuView("Storage",
		menuItem{name: "Volumes", desc: "Block storage for VMs", open: func() View { return NewVolumeListView(deps) }},
		menuItem{name: "Snapshots", desc: "Point-in-time copies of volumes", open: func() View { return NewSnapshotListView(deps, "") }},
		menuItem{name: "Backups", desc: "Scheduled volume backups", open: func() View { return NewBackupListView(deps) }},
	)
}

func (v *MenuView) Title() string { return v.title }

func (v *MenuView) HelpContext() HelpContext { return HelpContextRoot }

func (v *MenuView) Init() tea.Cmd { return nil }

func (v *MenuView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			selected, ok := v.list.SelectedItem().(menuItem)
			if !ok || selected.open == nil {
				return v, nil
			}
			return v, pushView(selected.open())
		}
	default:
		// the list only reacts to keys and its own status messages
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *MenuView) View() string {
	return v.list.View()
}

func (v *MenuView) SetSize(width, height int) {
	v.list.SetSize(width, height)
}
