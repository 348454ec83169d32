package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/userdata"
)

var fixedNow = time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

func TestFilterForUser(t *testing.T) {
	items := []model.VPC{{ID: "vpc-1"}, {ID: "vpc-2"}}

	for _, ut := range []userdata.UserType{userdata.UserTypeExisting, userdata.UserTypeRegular} {
		assert.Equal(t, items, FilterForUser(ut, items), ut)
		assert.False(t, ShouldShowEmptyState(ut), ut)
	}

	got := FilterForUser(userdata.UserTypeNew, items)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.True(t, ShouldShowEmptyState(userdata.UserTypeNew))
}

func TestFilterForUser_NilInput(t *testing.T) {
	assert.NotNil(t, FilterForUser[model.Subnet](userdata.UserTypeNew, nil))
	assert.Nil(t, FilterForUser[model.Subnet](userdata.UserTypeRegular, nil))
}

func TestLookups(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	v, err := GetVPC(ctx, s, "vpc-1")
	require.NoError(t, err)
	assert.Equal(t, "production-vpc", v.Name)

	sn, err := GetSubnet(ctx, s, "subnet-2")
	require.NoError(t, err)
	assert.Equal(t, "prod-db-subnet", sn.Name)

	sg, err := GetSecurityGroup(ctx, s, "sg-1")
	require.NoError(t, err)
	assert.Len(t, sg.InboundRules, 3)

	_, err = GetSecurityGroup(ctx, s, "sg-404")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FindVPCByName(ctx, s, "missing-vpc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChildFilters(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	subnets, err := SubnetsInVPC(ctx, s, "production-vpc")
	require.NoError(t, err)
	assert.Len(t, subnets, 2)

	sgs, err := SecurityGroupsInVPC(ctx, s, "production-vpc")
	require.NoError(t, err)
	assert.Len(t, sgs, 2)

	ips, err := StaticIPsInVPC(ctx, s, "gaming-vpc")
	require.NoError(t, err)
	require.Len(t, ips, 1)
	assert.Equal(t, "game-server-ip", ips[0].Name)

	snaps, err := SnapshotsOfVolume(ctx, s, "vol-1")
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	none, err := SubnetsInVPC(ctx, s, "no-such-vpc")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNewID(t *testing.T) {
	a := NewID(model.KindSnapshot)
	b := NewID(model.KindSnapshot)
	assert.Regexp(t, `^snap-[0-9a-f]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestStampVolume_Status(t *testing.T) {
	v := StampVolume(model.Volume{Name: "x", AttachedTo: "vm-1"}, fixedNow)
	assert.Equal(t, "In Use", v.Status)
	assert.Equal(t, "SSD", v.Type)

	v = StampVolume(model.Volume{Name: "y", Type: "HDD"}, fixedNow)
	assert.Equal(t, "Available", v.Status)
	assert.Equal(t, "HDD", v.Type)
}
