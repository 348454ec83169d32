package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/printer"
	"tasnim.dev/cloud-console/internal/store"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Print one resource with its relationships and monthly cost",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			return printDetail(ctx, cmd.OutOrStdout(), repo, kind, args[1])
		},
	}
}

func printDetail(ctx context.Context, w io.Writer, repo store.Repository, kind model.Kind, id string) error {
	switch kind {
	case model.KindVPC:
		v, err := repo.VPCs().Get(ctx, id)
		if err != nil {
			return err
		}
		return printer.VPCDetail(w, v)

	case model.KindSubnet:
		s, err := repo.Subnets().Get(ctx, id)
		if err != nil {
			return err
		}
		vm, err := repo.VMAttachment(ctx, id)
		if err != nil {
			return err
		}
		ids, err := repo.ConnectedSubnets(ctx, id)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(ids))
		for _, cid := range ids {
			name := cid
			if peer, err := repo.Subnets().Get(ctx, cid); err == nil {
				name = peer.Name + " (" + cid + ")"
			}
			names = append(names, name)
		}
		return printer.SubnetDetail(w, s, vm, names)

	case model.KindSecurityGroup:
		sg, err := repo.SecurityGroups().Get(ctx, id)
		if err != nil {
			return err
		}
		return printer.SecurityGroupDetail(w, sg)

	case model.KindStaticIP:
		ip, err := repo.StaticIPs().Get(ctx, id)
		if err != nil {
			return err
		}
		return printer.StaticIPDetail(w, ip)

	case model.KindVolume:
		v, err := repo.Volumes().Get(ctx, id)
		if err != nil {
			return err
		}
		snaps, err := store.SnapshotsOfVolume(ctx, repo, id)
		if err != nil {
			return err
		}
		return printer.VolumeDetail(w, v, snaps)

	case model.KindSnapshot:
		s, err := repo.Snapshots().Get(ctx, id)
		if err != nil {
			return err
		}
		return printer.SnapshotDetail(w, s)

	case model.KindBackup:
		b, err := repo.Backups().Get(ctx, id)
		if err != nil {
			return err
		}
		size := 0
		vol, err := repo.Volumes().Get(ctx, b.VolumeID)
		switch {
		case err == nil:
			size = vol.SizeGB
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		return printer.BackupDetail(w, b, size)
	}
	return errors.New("unsupported kind " + string(kind))
}
