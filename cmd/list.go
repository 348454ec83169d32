package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/printer"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/userdata"
)

func newListCmd(a *app) *cobra.Command {
	var vpc string

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Print resources of one kind as a table",
		Long: `Print resources of one kind as a table. Kinds: vpcs, subnets, sg,
static-ips, volumes, snapshots, backups. --vpc narrows subnets, security
groups, static IPs and volumes to one VPC by name.`,
		Args: cobra.ExactArgs(1),
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

			t, err := listTable(ctx, repo, a.userType, kind, vpc)
			if err != nil {
				return fmt.Errorf("listing %s: %w", kind, err)
			}
			return t.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&vpc, "vpc", "", "only resources in this VPC")

	return cmd
}

func listTable(ctx context.Context, repo store.Repository, ut userdata.UserType, kind model.Kind, vpc string) (printer.Table, error) {
	switch kind {
	case model.KindVPC:
		vpcs, err := repo.VPCs().List(ctx)
		return printer.VPCTable(store.FilterForUser(ut, vpcs)), err

	case model.KindSubnet:
		var subnets []model.Subnet
		var err error
		if vpc != "" {
			subnets, err = store.SubnetsInVPC(ctx, repo, vpc)
		} else {
			subnets, err = repo.Subnets().List(ctx)
		}
		return printer.SubnetTable(store.FilterForUser(ut, subnets)), err

	case model.KindSecurityGroup:
		var sgs []model.SecurityGroup
		var err error
		if vpc != "" {
			sgs, err = store.SecurityGroupsInVPC(ctx, repo, vpc)
		} else {
			sgs, err = repo.SecurityGroups().List(ctx)
		}
		return printer.SecurityGroupTable(store.FilterForUser(ut, sgs)), err

	case model.KindStaticIP:
		var ips []model.StaticIP
		var err error
		if vpc != "" {
			ips, err = store.StaticIPsInVPC(ctx, repo, vpc)
		} else {
			ips, err = repo.StaticIPs().List(ctx)
		}
		return printer.StaticIPTable(store.FilterForUser(ut, ips)), err

	case model.KindVolume:
		vols, err := repo.Volumes().List(ctx)
		if vpc != "" {
			kept := vols[:0]
			for _, v := range vols {
				if v.VPCName == vpc {
					kept = append(kept, v)
				}
			}
			vols = kept
		}
		return printer.VolumeTable(store.FilterForUser(ut, vols)), err

	case model.KindSnapshot:
		snaps, err := repo.Snapshots().List(ctx)
		return printer.SnapshotTable(store.FilterForUser(ut, snaps)), err

	case model.KindBackup:
		backups, err := repo.Backups().List(ctx)
		return printer.BackupTable(store.FilterForUser(ut, backups)), err
	}
	return printer.Table{}, fmt.Errorf("unsupported kind %q", kind)
}
