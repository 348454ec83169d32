package console

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tasnim.dev/cloud-console/internal/deletion"
	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

// The delete commands look up whatever the dependency rules need, then open
// the dialog. The callbacks only remove the record itself.

func deleteVPC(deps Deps, vpc model.VPC) tea.Cmd {
	repo := deps.Repo
	return confirmDelete(deletion.VPCTarget(vpc, func(ctx context.Context) error {
		return repo.VPCs().Delete(ctx, vpc.ID)
	}))
}

func deleteSubnet(deps Deps, s model.Subnet) tea.Cmd {
	repo := deps.Repo
	return func() tea.Msg {
		vm, err := repo.VMAttachment(context.Background(), s.ID)
		if err != nil {
			return showToastMsg{level: ToastError, text: fmt.Sprintf("Checking %s: %v", s.Name, err)}
		}
		return openDeleteMsg{target: deletion.SubnetTarget(s, vm, func(ctx context.Context) error {
			return repo.Subnets().Delete(ctx, s.ID)
		})}
	}
}

func deleteSecurityGroup(deps Deps, sg model.SecurityGroup) tea.Cmd {
	repo := deps.Repo
	return confirmDelete(deletion.SecurityGroupTarget(sg, func(ctx context.Context) error {
		return repo.SecurityGroups().Delete(ctx, sg.ID)
	}))
}

func deleteStaticIP(deps Deps, ip model.StaticIP) tea.Cmd {
	repo := deps.Repo
	return confirmDelete(deletion.StaticIPTarget(ip, func(ctx context.Context) error {
		return repo.StaticIPs().Delete(ctx, ip.ID)
	}))
}

func deleteVolume(deps Deps, v model.Volume) tea.Cmd {
	repo := deps.Repo
	return func() tea.Msg {
		snaps, err := store.SnapshotsOfVolume(context.Background(), repo, v.ID)
		if err != nil {
			return showToastMsg{level: ToastError, text: fmt.Sprintf("Checking %s: %v", v.Name, err)}
		}
		return openDeleteMsg{target: deletion.VolumeTarget(v, snaps, func(ctx context.Context) error {
			return repo.Volumes().Delete(ctx, v.ID)
		})}
	}
}

func deleteSnapshot(deps Deps, s model.Snapshot) tea.Cmd {
	repo := deps.Repo
	return confirmDelete(deletion.SnapshotTarget(s, func(ctx context.Context) error {
		return repo.Snapshots().Delete(ctx, s.ID)
	}))
}

func deleteBackup(deps Deps, b model.Backup) tea.Cmd {
	repo := deps.Repo
	return confirmDelete(deletion.BackupTarget(b, func(ctx context.Context) error {
		return repo.Backups().Delete(ctx, b.ID)
	}))
}

// mutate runs fn in the background and reports through a toast. Success
// also tells every open page that kind/id changed.
func mutate(kind model.Kind, id, success string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return showToastMsg{level: ToastError, text: capitalize(err.Error())}
		}
		return tea.BatchMsg{
			notify(ToastSuccess, success),
			changed(kind, id),
		}
	}
}
