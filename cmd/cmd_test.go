package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/cloud-console/internal/logging"
	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/store/sqlite"
	"tasnim.dev/cloud-console/internal/userdata"
)

// run executes the root command against a temp config dir with the
// in-memory backend and no simulated latency.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "simulated_latency_ms: 0\n" +
		"log_file: " + filepath.Join(dir, "console.log") + "\n" +
		"user_data_file: " + filepath.Join(dir, userdata.FileName) + "\n" +
		"database: " + filepath.Join(dir, "console.db") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestList_VPCs(t *testing.T) {
	out, err := run(t, "list", "vpcs")
	require.NoError(t, err)
	for _, name := range []string{"production-vpc", "staging-vpc", "gaming-vpc", "research-vpc", "analytics-vpc"} {
		assert.Contains(t, out, name)
	}
}

func TestList_SubnetsInVPC(t *testing.T) {
	out, err := run(t, "list", "subnets", "--vpc", "production-vpc")
	require.NoError(t, err)
	assert.Contains(t, out, "prod-web-subnet")
	assert.Contains(t, out, "prod-db-subnet")
	assert.NotContains(t, out, "staging-app-subnet")
}

func TestList_NewUserIsEmpty(t *testing.T) {
	out, err := run(t, "--user-type", "new", "list", "volumes")
	require.NoError(t, err)
	assert.NotContains(t, out, "prod-db-data")
}

func TestList_UnknownKind(t *testing.T) {
	_, err := run(t, "list", "buckets")
	assert.ErrorContains(t, err, "unknown resource kind")
}

func TestInvalidUserTypeFlag(t *testing.T) {
	_, err := run(t, "--user-type", "admin", "list", "vpcs")
	assert.ErrorContains(t, err, "invalid user type")
}

func TestInvalidBackend(t *testing.T) {
	t.Setenv("CLOUD_CONSOLE_BACKEND", "postgres")
	_, err := run(t, "list", "vpcs")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestGet_SubnetShowsVMAndConnections(t *testing.T) {
	out, err := run(t, "get", "subnet", "subnet-1")
	require.NoError(t, err)
	assert.Contains(t, out, "prod-web-subnet")
	assert.Contains(t, out, "web-server-01")
	assert.Contains(t, out, "prod-db-subnet (subnet-2)")
}

func TestGet_VolumeShowsCostAndSnapshots(t *testing.T) {
	out, err := run(t, "get", "vol", "vol-1")
	require.NoError(t, err)
	assert.Contains(t, out, "prod-db-data")
	assert.Contains(t, out, "/mo")
	assert.Contains(t, out, "prod-db-nightly")
}

func TestGet_NotFound(t *testing.T) {
	_, err := run(t, "get", "vpc", "vpc-404")
	assert.ErrorContains(t, err, "not found")
}

func TestList_SQLiteBackendSeedsOnFirstOpen(t *testing.T) {
	out, err := run(t, "--backend", "sqlite", "list", "sg")
	require.NoError(t, err)
	assert.Contains(t, out, "web-sg")
	assert.Contains(t, out, "research-sg")
}

func TestUserType_SetThenGet(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := "log_file: " + filepath.Join(dir, "console.log") + "\n" +
		"user_data_file: " + filepath.Join(dir, userdata.FileName) + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	exec := func(args ...string) string {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append([]string{"--config", cfgPath}, args...))
		require.NoError(t, root.Execute())
		return strings.TrimSpace(out.String())
	}

	assert.Equal(t, "regular", exec("user-type", "get"))
	assert.Equal(t, "User type set to new", exec("user-type", "set", "new"))
	assert.Equal(t, "new", exec("user-type"))
}

func TestUserType_SetRejectsUnknown(t *testing.T) {
	_, err := run(t, "user-type", "set", "admin")
	assert.ErrorContains(t, err, "invalid user type")
}

func TestSeedFixtures_OnlyOnFirstOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "console.db")
	open := func() *sqlite.Store {
		db, err := sqlite.Open(ctx, path, store.WithLogger(logging.Discard()))
		require.NoError(t, err)
		require.NoError(t, seedFixtures(ctx, db))
		return db
	}

	db := open()
	vpcs, err := db.VPCs().List(ctx)
	require.NoError(t, err)
	require.Len(t, vpcs, 5)
	drop := func(ids []string, del func(context.Context, string) error) {
		for _, id := range ids {
			require.NoError(t, del(ctx, id))
		}
	}
	fx, err := store.Export(ctx, db)
	require.NoError(t, err)
	drop(idsOf(fx.VPCs), db.VPCs().Delete)
	drop(idsOf(fx.Subnets), db.Subnets().Delete)
	drop(idsOf(fx.SecurityGroups), db.SecurityGroups().Delete)
	drop(idsOf(fx.StaticIPs), db.StaticIPs().Delete)
	drop(idsOf(fx.Volumes), db.Volumes().Delete)
	drop(idsOf(fx.Snapshots), db.Snapshots().Delete)
	drop(idsOf(fx.Backups), db.Backups().Delete)
	require.NoError(t, db.Close())

	db = open()
	defer db.Close()
	vpcs, err = db.VPCs().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, vpcs, "deleted fixtures must not come back")
}

func idsOf[T model.Resource](items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ResourceID()
	}
	return ids
}
