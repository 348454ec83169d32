// Package sqlite persists the console resources in a single SQLite file.
// Each kind lives in its own table as an id, a name and a JSON body, so the
// records keep their shape without a column per field.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

var (
	// ErrNotEmpty is returned by Seed when the database already holds data.
	ErrNotEmpty = errors.New("database is not empty")
	// ErrSeeded is returned by Seed once a database has been seeded, even if
	// every record was deleted since.
	ErrSeeded = errors.New("database was already seeded")
)

// seededVersion is stored in PRAGMA user_version after a successful Import.
const seededVersion = 1

const (
	tableVPCs           = "vpcs"
	tableSubnets        = "subnets"
	tableSecurityGroups = "security_groups"
	tableStaticIPs      = "static_ips"
	tableVolumes        = "volumes"
	tableSnapshots      = "snapshots"
	tableBackups        = "backups"
)

var resourceTables = []string{
	tableVPCs, tableSubnets, tableSecurityGroups, tableStaticIPs,
	tableVolumes, tableSnapshots, tableBackups,
}

const relationSchema = `
CREATE TABLE IF NOT EXISTS subnet_connections (
	subnet_id TEXT NOT NULL,
	peer_id   TEXT NOT NULL,
	PRIMARY KEY (subnet_id, peer_id)
);
CREATE TABLE IF NOT EXISTS vm_attachments (
	subnet_id  TEXT PRIMARY KEY,
	vm_id      TEXT NOT NULL,
	vm_name    TEXT NOT NULL,
	ip_address TEXT NOT NULL
);`

var _ store.Repository = (*Store)(nil)

// Store is a Repository backed by SQLite.
type Store struct {
	db   *sql.DB
	opts store.Options

	vpcs      *table[model.VPC]
	subnets   *table[model.Subnet]
	sgs       *table[model.SecurityGroup]
	staticIPs *table[model.StaticIP]
	volumes   *table[model.Volume]
	snapshots *table[model.Snapshot]
	backups   *table[model.Backup]
}

// Open opens or creates the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string, opts ...store.Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	o := store.BuildOptions(opts)
	s := &Store{db: db, opts: o}
	s.vpcs = newTable(s, model.KindVPC, tableVPCs, store.StampVPC)
	s.subnets = newTable(s, model.KindSubnet, tableSubnets, store.StampSubnet)
	s.sgs = newTable(s, model.KindSecurityGroup, tableSecurityGroups, store.StampSecurityGroup)
	s.staticIPs = newTable(s, model.KindStaticIP, tableStaticIPs, store.StampStaticIP)
	s.volumes = newTable(s, model.KindVolume, tableVolumes, store.StampVolume)
	s.snapshots = newTable(s, model.KindSnapshot, tableSnapshots, store.StampSnapshot)
	s.backups = newTable(s, model.KindBackup, tableBackups, store.StampBackup)
	s.subnets.onDelete = dropSubnetRelations
	return s, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, name := range resourceTables {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	seq  INTEGER PRIMARY KEY AUTOINCREMENT,
	id   TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	body TEXT NOT NULL
)`, name)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating table %s: %w", name, err)
		}
	}
	if _, err := db.ExecContext(ctx, relationSchema); err != nil {
		return fmt.Errorf("creating relation tables: %w", err)
	}
	return nil
}

func (s *Store) VPCs() store.Collection[model.VPC]                     { return s.vpcs }
func (s *Store) Subnets() store.Collection[model.Subnet]               { return s.subnets }
func (s *Store) SecurityGroups() store.Collection[model.SecurityGroup] { return s.sgs }
func (s *Store) StaticIPs() store.Collection[model.StaticIP]           { return s.staticIPs }
func (s *Store) Volumes() store.Collection[model.Volume]               { return s.volumes }
func (s *Store) Snapshots() store.Collection[model.Snapshot]           { return s.snapshots }
func (s *Store) Backups() store.Collection[model.Backup]               { return s.backups }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) VMAttachment(ctx context.Context, subnetID string) (*model.VMAttachment, error) {
	var vm model.VMAttachment
	err := s.db.QueryRowContext(ctx,
		`SELECT vm_id, vm_name, ip_address FROM vm_attachments WHERE subnet_id = ?`, subnetID,
	).Scan(&vm.VMID, &vm.VMName, &vm.IPAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading attachment of %s: %w", subnetID, err)
	}
	return &vm, nil
}

// AttachVM records that a VM uses the subnet, replacing any previous VM.
func (s *Store) AttachVM(ctx context.Context, subnetID string, vm model.VMAttachment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO vm_attachments (subnet_id, vm_id, vm_name, ip_address) VALUES (?, ?, ?, ?)`,
		subnetID, vm.VMID, vm.VMName, vm.IPAddress)
	if err != nil {
		return fmt.Errorf("attaching %s to %s: %w", vm.VMName, subnetID, err)
	}
	return nil
}

func (s *Store) ConnectedSubnets(ctx context.Context, subnetID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT peer_id FROM subnet_connections WHERE subnet_id = ? ORDER BY rowid`, subnetID)
	if err != nil {
		return nil, fmt.Errorf("reading connections of %s: %w", subnetID, err)
	}
	defer rows.Close()

	var peers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		peers = append(peers, id)
	}
	return peers, rows.Err()
}

func (s *Store) ConnectSubnets(ctx context.Context, a, b string) error {
	if a == b {
		return fmt.Errorf("cannot connect subnet %s to itself", a)
	}
	for _, id := range []string{a, b} {
		if _, err := s.subnets.Get(ctx, id); err != nil {
			return err
		}
	}
	if err := s.opts.Wait(ctx); err != nil {
		return err
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return link(ctx, tx, a, b)
	})
	if err != nil {
		return fmt.Errorf("connecting %s and %s: %w", a, b, err)
	}
	s.opts.Logger.Info("subnets connected", "subnet", a, "peer", b)
	return nil
}

func (s *Store) DisconnectSubnets(ctx context.Context, a, b string) error {
	if err := s.opts.Wait(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM subnet_connections WHERE (subnet_id = ? AND peer_id = ?) OR (subnet_id = ? AND peer_id = ?)`,
		a, b, b, a)
	if err != nil {
		return fmt.Errorf("disconnecting %s and %s: %w", a, b, err)
	}
	s.opts.Logger.Info("subnets disconnected", "subnet", a, "peer", b)
	return nil
}

// link stores both directions so either side can be queried directly.
func link(ctx context.Context, tx *sql.Tx, a, b string) error {
	const q = `INSERT OR IGNORE INTO subnet_connections (subnet_id, peer_id) VALUES (?, ?), (?, ?)`
	_, err := tx.ExecContext(ctx, q, a, b, b, a)
	return err
}

func dropSubnetRelations(ctx context.Context, tx *sql.Tx, subnetID string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM subnet_connections WHERE subnet_id = ? OR peer_id = ?`, subnetID, subnetID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM vm_attachments WHERE subnet_id = ?`, subnetID)
	return err
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
