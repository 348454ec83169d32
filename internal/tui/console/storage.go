package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/pricing"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/tui/theme"
	"tasnim.dev/cloud-console/internal/utils"
)

var (
	volumeEmpty = &EmptyState{
		Title: "No volumes yet",
		Body:  "Volumes are block devices you attach to VMs. SSD suits databases, HDD suits bulk data.",
	}
	snapshotEmpty = &EmptyState{
		Title: "No snapshots yet",
		Body:  "Take a snapshot of a volume to keep a point-in-time copy you can restore later.",
	}
	backupEmpty = &EmptyState{
		Title: "No backups yet",
		Body:  "Backups copy a volume on a schedule and keep each copy for the retention period.",
	}
)

func NewVolumeListView(deps Deps) *TableView[model.Volume] {
	return NewTableView(withDeps(deps, TableViewConfig[model.Volume]{
		Title:       "Volumes",
		LoadingText: "Loading volumes...",
		Noun:        "volumes",
		Columns: []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Volume ID", Width: 14},
			{Title: "Size", Width: 10},
			{Title: "Type", Width: 5},
			{Title: "Status", Width: 10},
			{Title: "Attached To", Width: 18},
			{Title: "Zone", Width: 12},
			{Title: "Monthly", Width: 12},
		},
		SearchColumns: []int{0, 1, 3, 5},
		FetchFunc: func(ctx context.Context) ([]model.Volume, error) {
			return deps.Repo.Volumes().List(ctx)
		},
		RowMapper: func(v model.Volume) table.Row {
			return table.Row{v.Name, v.ID, utils.SizeGB(v.SizeGB), v.Type, v.Status, v.AttachedTo, v.AvailabilityZone, pricing.Format(pricing.VolumeMonthly(v.Type, v.SizeGB))}
		},
		SummaryFunc:  volumeSummary,
		HeightOffset: 2,
		CopyIDFunc:   func(v model.Volume) string { return v.ID },
		OnEnter: func(v model.Volume) tea.Cmd {
			return pushView(NewVolumeDetailView(deps, v))
		},
		OnCreate: func() tea.Cmd { return NewVolumeForm(deps) },
		KeyHandlers: map[string]func(model.Volume) tea.Cmd{
			"d": func(v model.Volume) tea.Cmd { return deleteVolume(deps, v) },
		},
		EmptyState: volumeEmpty,
	}))
}

func volumeSummary(vols []model.Volume) string {
	size := 0
	total := decimal.Zero
	for _, v := range vols {
		size += v.SizeGB
		total = total.Add(pricing.VolumeMonthly(v.Type, v.SizeGB))
	}
	return theme.MutedStyle.Render(fmt.Sprintf("%d volumes · %s provisioned · est. %s",
		len(vols), utils.SizeGB(size), pricing.Format(total)))
}

// NewSnapshotListView lists snapshots, scoped to one volume when volumeID is set.
func NewSnapshotListView(deps Deps, volumeID string) *TableView[model.Snapshot] {
	return NewTableView(withDeps(deps, TableViewConfig[model.Snapshot]{
		Title:       "Snapshots",
		LoadingText: "Loading snapshots...",
		Noun:        "snapshots",
		Columns: []table.Column{
			{Title: "Name", Width: 24},
			{Title: "Snapshot ID", Width: 14},
			{Title: "Volume", Width: 18},
			{Title: "Size", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Created", Width: 17},
		},
		SearchColumns: []int{0, 1, 2},
		FetchFunc: func(ctx context.Context) ([]model.Snapshot, error) {
			if volumeID != "" {
				return store.SnapshotsOfVolume(ctx, deps.Repo, volumeID)
			}
			return deps.Repo.Snapshots().List(ctx)
		},
		RowMapper: func(s model.Snapshot) table.Row {
			return table.Row{s.Name, s.ID, s.VolumeName, utils.SizeGB(s.SizeGB), s.Status, utils.TimeOrDash(s.CreatedOn, utils.DateTime)}
		},
		CopyIDFunc: func(s model.Snapshot) string { return s.ID },
		OnEnter: func(s model.Snapshot) tea.Cmd {
			return pushView(NewSnapshotDetailView(deps, s))
		},
		OnCreate: func() tea.Cmd { return NewSnapshotForm(deps, volumeID) },
		KeyHandlers: map[string]func(model.Snapshot) tea.Cmd{
			"d": func(s model.Snapshot) tea.Cmd { return deleteSnapshot(deps, s) },
		},
		EmptyState: snapshotEmpty,
	}))
}

// backupRow joins a backup with the size of its volume for the cost column.
type backupRow struct {
	model.Backup
	VolumeSizeGB int
}

func NewBackupListView(deps Deps) *TableView[backupRow] {
	return NewTableView(withDeps(deps, TableViewConfig[backupRow]{
		Title:       "Backups",
		LoadingText: "Loading backups...",
		Noun:        "backups",
		Columns: []table.Column{
			{Title: "Name", Width: 22},
			{Title: "Backup ID", Width: 14},
			{Title: "Volume", Width: 18},
			{Title: "Schedule", Width: 9},
			{Title: "Retention", Width: 10},
			{Title: "Status", Width: 10},
			{Title: "Monthly", Width: 12},
		},
		SearchColumns: []int{0, 1, 2, 3},
		FetchFunc: func(ctx context.Context) ([]backupRow, error) {
			return listBackupRows(ctx, deps.Repo)
		},
		RowMapper: func(b backupRow) table.Row {
			return table.Row{b.Name, b.ID, b.VolumeName, b.Schedule, retention(b.RetentionDays), b.Status,
				pricing.Format(pricing.BackupMonthly(b.VolumeSizeGB, b.RetentionDays))}
		},
		CopyIDFunc: func(b backupRow) string { return b.ID },
		OnEnter: func(b backupRow) tea.Cmd {
			return pushView(NewBackupDetailView(deps, b.Backup))
		},
		OnCreate: func() tea.Cmd { return NewBackupForm(deps, "") },
		KeyHandlers: map[string]func(backupRow) tea.Cmd{
			"d": func(b backupRow) tea.Cmd { return deleteBackup(deps, b.Backup) },
		},
		EmptyState: backupEmpty,
	}))
}

func listBackupRows(ctx context.Context, repo store.Repository) ([]backupRow, error) {
	backups, err := repo.Backups().List(ctx)
	if err != nil {
		return nil, err
	}
	vols, err := repo.Volumes().List(ctx)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string]int, len(vols))
	for _, v := range vols {
		sizes[v.ID] = v.SizeGB
	}
	rows := make([]backupRow, len(backups))
	for i, b := range backups {
		rows[i] = backupRow{Backup: b, VolumeSizeGB: sizes[b.VolumeID]}
	}
	return rows, nil
}

func retention(days int) string {
	if days <= 0 {
		return utils.Dash
	}
	if days == 1 {
		return "1 day"
	}
	return strconv.Itoa(days) + " days"
}
