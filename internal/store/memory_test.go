package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/cloud-console/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded(t *testing.T) *MemoryStore {
	t.Helper()
	s, err := NewSeededStore(WithLogger(quietLogger()))
	require.NoError(t, err)
	return s
}

func TestNewSeededStore_LoadsFixtures(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	vpcs, err := s.VPCs().List(ctx)
	require.NoError(t, err)
	assert.Len(t, vpcs, 5)

	gaming, err := FindVPCByName(ctx, s, "gaming-vpc")
	require.NoError(t, err)
	assert.Equal(t, 1, gaming.ResourceCount("VM"))
	assert.Equal(t, 1, gaming.ResourceCount("Volume"))

	research, err := FindVPCByName(ctx, s, "research-vpc")
	require.NoError(t, err)
	assert.Empty(t, research.Resources)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	s := seeded(t)
	_, err := s.Subnets().Get(context.Background(), "subnet-404")
	require.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, model.KindSubnet, nf.Kind)
	assert.Equal(t, "subnet-404", nf.ID)
}

func TestMemoryStore_CreateStampsFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithLogger(quietLogger()), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	v, err := s.VPCs().Create(ctx, model.VPC{Name: "edge-vpc", Region: "ap-south-1"})
	require.NoError(t, err)
	assert.Regexp(t, `^vpc-[0-9a-f]{8}$`, v.ID)
	assert.Equal(t, now, v.CreatedOn)
	assert.Equal(t, "Active", v.Status)
	assert.Equal(t, "Free", v.Type)

	got, err := s.VPCs().Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	s := seeded(t)
	_, err := s.VPCs().Create(context.Background(), model.VPC{ID: "vpc-1", Name: "dup"})
	assert.ErrorIs(t, err, ErrExists)
}

func TestMemoryStore_CreateRuleIDs(t *testing.T) {
	s := NewMemoryStore(WithLogger(quietLogger()))
	sg, err := s.SecurityGroups().Create(context.Background(), model.SecurityGroup{
		Name:         "api-sg",
		InboundRules: []model.Rule{{Protocol: "TCP", PortRange: "8080", RemoteIPPrefix: "0.0.0.0/0"}},
	})
	require.NoError(t, err)
	require.Len(t, sg.InboundRules, 1)
	assert.Regexp(t, `^rule-[0-9a-f]{8}$`, sg.InboundRules[0].ID)
}

func TestMemoryStore_UpdateAndDelete(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	vol, err := s.Volumes().Get(ctx, "vol-3")
	require.NoError(t, err)
	vol.SizeGB = 2000
	_, err = s.Volumes().Update(ctx, vol)
	require.NoError(t, err)

	got, err := s.Volumes().Get(ctx, "vol-3")
	require.NoError(t, err)
	assert.Equal(t, 2000, got.SizeGB)

	require.NoError(t, s.Volumes().Delete(ctx, "vol-3"))
	_, err = s.Volumes().Get(ctx, "vol-3")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Volumes().Delete(ctx, "vol-3"), ErrNotFound)

	_, err = s.Volumes().Update(ctx, model.Volume{ID: "vol-404"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	list, err := s.VPCs().List(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err := s.VPCs().List(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0].Name)
}

func TestMemoryStore_LatencyHonorsContext(t *testing.T) {
	s := NewMemoryStore(WithLogger(quietLogger()), WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.VPCs().Create(ctx, model.VPC{Name: "slow"})
	assert.ErrorIs(t, err, context.Canceled)

	list, err := s.VPCs().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_VMAttachment(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	vm, err := s.VMAttachment(ctx, "subnet-1")
	require.NoError(t, err)
	require.NotNil(t, vm)
	assert.Equal(t, "web-server-01", vm.VMName)

	vm, err = s.VMAttachment(ctx, "subnet-2")
	require.NoError(t, err)
	assert.Nil(t, vm)
}

func TestMemoryStore_ConnectionsAreSymmetric(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	peers, err := s.ConnectedSubnets(ctx, "subnet-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"subnet-1"}, peers)

	require.NoError(t, s.ConnectSubnets(ctx, "subnet-4", "subnet-6"))
	a, err := s.ConnectedSubnets(ctx, "subnet-4")
	require.NoError(t, err)
	b, err := s.ConnectedSubnets(ctx, "subnet-6")
	require.NoError(t, err)
	assert.Contains(t, a, "subnet-6")
	assert.Contains(t, b, "subnet-4")

	// Connecting twice does not duplicate.
	require.NoError(t, s.ConnectSubnets(ctx, "subnet-6", "subnet-4"))
	a, _ = s.ConnectedSubnets(ctx, "subnet-4")
	assert.Len(t, a, 1)

	require.NoError(t, s.DisconnectSubnets(ctx, "subnet-6", "subnet-4"))
	a, _ = s.ConnectedSubnets(ctx, "subnet-4")
	b, _ = s.ConnectedSubnets(ctx, "subnet-6")
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestMemoryStore_ConnectRejectsInvalid(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	assert.Error(t, s.ConnectSubnets(ctx, "subnet-1", "subnet-1"))
	assert.ErrorIs(t, s.ConnectSubnets(ctx, "subnet-1", "subnet-404"), ErrNotFound)
}

func TestMemoryStore_DeleteSubnetDropsConnections(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.Subnets().Delete(ctx, "subnet-1"))
	peers, err := s.ConnectedSubnets(ctx, "subnet-2")
	require.NoError(t, err)
	assert.Empty(t, peers)

	vm, err := s.VMAttachment(ctx, "subnet-1")
	require.NoError(t, err)
	assert.Nil(t, vm)
}

func TestExport_RoundTripsThroughLoad(t *testing.T) {
	src := seeded(t)
	ctx := context.Background()

	fx, err := Export(ctx, src)
	require.NoError(t, err)

	dst := NewMemoryStore(WithLogger(quietLogger()))
	dst.Load(fx)

	for _, id := range []string{"subnet-1", "subnet-2", "subnet-3", "subnet-5"} {
		want, _ := src.ConnectedSubnets(ctx, id)
		got, err := dst.ConnectedSubnets(ctx, id)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got, id)
	}
	vols, err := dst.Volumes().List(ctx)
	require.NoError(t, err)
	assert.Len(t, vols, 4)
}

func TestParseFixtures_Invalid(t *testing.T) {
	_, err := ParseFixtures([]byte("vpcs: {not: a list"))
	assert.Error(t, err)
}
