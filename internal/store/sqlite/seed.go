package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tasnim.dev/cloud-console/internal/store"
)

// Seed copies every record and relationship of src into an empty database.
func Seed(ctx context.Context, dst *Store, src store.Repository) error {
	fx, err := store.Export(ctx, src)
	if err != nil {
		return fmt.Errorf("exporting source: %w", err)
	}
	return dst.Import(ctx, fx)
}

// Import writes a fixture set in one transaction without simulated latency.
func (s *Store) Import(ctx context.Context, fx *store.Fixtures) error {
	seeded, err := s.seeded(ctx)
	if err != nil {
		return err
	}
	if seeded {
		return ErrSeeded
	}
	empty, err := s.empty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return ErrNotEmpty
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertAll(ctx, tx, tableVPCs, fx.VPCs); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, tableSubnets, fx.Subnets); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, tableSecurityGroups, fx.SecurityGroups); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, tableStaticIPs, fx.StaticIPs); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, tableVolumes, fx.Volumes); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, tableSnapshots, fx.Snapshots); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, tableBackups, fx.Backups); err != nil {
			return err
		}
		for _, a := range fx.VMAttachments {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO vm_attachments (subnet_id, vm_id, vm_name, ip_address) VALUES (?, ?, ?, ?)`,
				a.SubnetID, a.VM.VMID, a.VM.VMName, a.VM.IPAddress); err != nil {
				return fmt.Errorf("seeding attachment of %s: %w", a.SubnetID, err)
			}
		}
		for _, c := range fx.Connections {
			for _, peer := range c.ConnectedSubnets {
				if err := link(ctx, tx, c.SubnetID, peer); err != nil {
					return fmt.Errorf("seeding connection %s-%s: %w", c.SubnetID, peer, err)
				}
			}
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, seededVersion)); err != nil {
			return fmt.Errorf("marking database seeded: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.opts.Logger.Info("database seeded",
		"vpcs", len(fx.VPCs), "subnets", len(fx.Subnets), "securityGroups", len(fx.SecurityGroups),
		"staticIps", len(fx.StaticIPs), "volumes", len(fx.Volumes), "snapshots", len(fx.Snapshots),
		"backups", len(fx.Backups))
	return nil
}

func (s *Store) seeded(ctx context.Context) (bool, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return false, fmt.Errorf("reading user_version: %w", err)
	}
	return v >= seededVersion, nil
}

func (s *Store) empty(ctx context.Context) (bool, error) {
	for _, name := range resourceTables {
		var n int
		if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, name)).Scan(&n); err != nil {
			return false, fmt.Errorf("counting %s: %w", name, err)
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}
