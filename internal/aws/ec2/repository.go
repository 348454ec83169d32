// Package ec2 exposes an AWS account's networking and block storage through
// the console's repository interface. It only reads; every mutation fails
// with store.ErrReadOnly.
package ec2

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

var _ store.Repository = (*Repository)(nil)

type Repository struct {
	api    API
	region string
	logger *slog.Logger
}

func NewRepository(api API, region string, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{api: api, region: region, logger: logger}
}

func (r *Repository) VPCs() store.Collection[model.VPC] {
	return readOnly[model.VPC]{kind: model.KindVPC, list: r.listVPCs}
}

func (r *Repository) Subnets() store.Collection[model.Subnet] {
	return readOnly[model.Subnet]{kind: model.KindSubnet, list: r.listSubnets}
}

func (r *Repository) SecurityGroups() store.Collection[model.SecurityGroup] {
	return readOnly[model.SecurityGroup]{kind: model.KindSecurityGroup, list: r.listSecurityGroups}
}

func (r *Repository) StaticIPs() store.Collection[model.StaticIP] {
	return readOnly[model.StaticIP]{kind: model.KindStaticIP, list: r.listStaticIPs}
}

func (r *Repository) Volumes() store.Collection[model.Volume] {
	return readOnly[model.Volume]{kind: model.KindVolume, list: r.listVolumes}
}

func (r *Repository) Snapshots() store.Collection[model.Snapshot] {
	return readOnly[model.Snapshot]{kind: model.KindSnapshot, list: r.listSnapshots}
}

// Backups has no EC2 counterpart and is always empty.
func (r *Repository) Backups() store.Collection[model.Backup] {
	return readOnly[model.Backup]{kind: model.KindBackup, list: func(context.Context) ([]model.Backup, error) {
		return []model.Backup{}, nil
	}}
}

func (r *Repository) Close() error { return nil }

// VMAttachment reports the first instance launched into the subnet.
func (r *Repository) VMAttachment(ctx context.Context, subnetID string) (*model.VMAttachment, error) {
	instances, err := r.describeInstances(ctx, filter("subnet-id", subnetID))
	if err != nil {
		return nil, err
	}
	for _, inst := range instances {
		if inst.State != nil && inst.State.Name == types.InstanceStateNameTerminated {
			continue
		}
		vm := mapAttachment(inst)
		return &vm, nil
	}
	return nil, nil
}

// ConnectedSubnets is always empty: EC2 routes within a VPC implicitly.
func (r *Repository) ConnectedSubnets(ctx context.Context, subnetID string) ([]string, error) {
	return nil, ctx.Err()
}

func (r *Repository) ConnectSubnets(ctx context.Context, a, b string) error {
	return fmt.Errorf("connect %s to %s: %w", a, b, store.ErrReadOnly)
}

func (r *Repository) DisconnectSubnets(ctx context.Context, a, b string) error {
	return fmt.Errorf("disconnect %s from %s: %w", a, b, store.ErrReadOnly)
}

func (r *Repository) vpcNames(ctx context.Context) (map[string]string, error) {
	vpcs, err := r.describeVpcs(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(vpcs))
	for _, v := range vpcs {
		id := aws.ToString(v.VpcId)
		names[id] = nameOr(v.Tags, id)
	}
	return names, nil
}

func (r *Repository) instanceIndex(ctx context.Context) (map[string]types.Instance, error) {
	instances, err := r.describeInstances(ctx)
	if err != nil {
		return nil, err
	}
	return indexInstances(instances), nil
}

func indexInstances(instances []types.Instance) map[string]types.Instance {
	idx := make(map[string]types.Instance, len(instances))
	for _, inst := range instances {
		idx[aws.ToString(inst.InstanceId)] = inst
	}
	return idx
}

// listVPCs counts subnets, instances and attached volumes per VPC so the
// deletion rules can see what still lives inside.
func (r *Repository) listVPCs(ctx context.Context) ([]model.VPC, error) {
	vpcs, err := r.describeVpcs(ctx)
	if err != nil {
		return nil, err
	}
	subnets, err := r.describeSubnets(ctx)
	if err != nil {
		return nil, err
	}
	insts, err := r.describeInstances(ctx)
	if err != nil {
		return nil, err
	}
	instances := indexInstances(insts)
	volumes, err := r.describeVolumes(ctx)
	if err != nil {
		return nil, err
	}

	resources := make(map[string][]model.VPCResource)
	for _, s := range subnets {
		vpcID := aws.ToString(s.VpcId)
		resources[vpcID] = append(resources[vpcID], model.VPCResource{
			Type: "Subnet", Name: nameOr(s.Tags, aws.ToString(s.SubnetId)), Count: 1,
		})
	}
	for _, inst := range insts {
		if inst.State != nil && inst.State.Name == types.InstanceStateNameTerminated {
			continue
		}
		vpcID := aws.ToString(inst.VpcId)
		resources[vpcID] = append(resources[vpcID], model.VPCResource{
			Type: "VM", Name: nameOr(inst.Tags, aws.ToString(inst.InstanceId)), Count: 1,
		})
	}
	for _, v := range volumes {
		if len(v.Attachments) == 0 {
			continue
		}
		inst, ok := instances[aws.ToString(v.Attachments[0].InstanceId)]
		if !ok {
			continue
		}
		vpcID := aws.ToString(inst.VpcId)
		resources[vpcID] = append(resources[vpcID], model.VPCResource{
			Type: "Volume", Name: nameOr(v.Tags, aws.ToString(v.VolumeId)), Count: 1,
		})
	}

	out := make([]model.VPC, 0, len(vpcs))
	for _, v := range vpcs {
		out = append(out, mapVPC(v, r.region, resources[aws.ToString(v.VpcId)]))
	}
	r.logger.Debug("listed vpcs", "count", len(out), "region", r.region)
	return out, nil
}

func (r *Repository) listSubnets(ctx context.Context) ([]model.Subnet, error) {
	names, err := r.vpcNames(ctx)
	if err != nil {
		return nil, err
	}
	subnets, err := r.describeSubnets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Subnet, 0, len(subnets))
	for _, s := range subnets {
		out = append(out, mapSubnet(s, names))
	}
	return out, nil
}

func (r *Repository) listSecurityGroups(ctx context.Context) ([]model.SecurityGroup, error) {
	names, err := r.vpcNames(ctx)
	if err != nil {
		return nil, err
	}
	sgs, err := r.describeSecurityGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.SecurityGroup, 0, len(sgs))
	for _, sg := range sgs {
		out = append(out, mapSecurityGroup(sg, names))
	}
	return out, nil
}

func (r *Repository) listStaticIPs(ctx context.Context) ([]model.StaticIP, error) {
	names, err := r.vpcNames(ctx)
	if err != nil {
		return nil, err
	}
	instances, err := r.instanceIndex(ctx)
	if err != nil {
		return nil, err
	}
	addrs, err := r.describeAddresses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.StaticIP, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, mapAddress(a, instances, names))
	}
	return out, nil
}

func (r *Repository) listVolumes(ctx context.Context) ([]model.Volume, error) {
	names, err := r.vpcNames(ctx)
	if err != nil {
		return nil, err
	}
	instances, err := r.instanceIndex(ctx)
	if err != nil {
		return nil, err
	}
	vols, err := r.describeVolumes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Volume, 0, len(vols))
	for _, v := range vols {
		out = append(out, mapVolume(v, instances, names))
	}
	return out, nil
}

func (r *Repository) listSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	vols, err := r.describeVolumes(ctx)
	if err != nil {
		return nil, err
	}
	volNames := make(map[string]string, len(vols))
	for _, v := range vols {
		id := aws.ToString(v.VolumeId)
		volNames[id] = nameOr(v.Tags, id)
	}
	snaps, err := r.describeSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Snapshot, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, mapSnapshot(s, volNames))
	}
	return out, nil
}

// readOnly adapts a list function to store.Collection.
type readOnly[T model.Resource] struct {
	kind model.Kind
	list func(ctx context.Context) ([]T, error)
}

func (c readOnly[T]) List(ctx context.Context) ([]T, error) {
	return c.list(ctx)
}

func (c readOnly[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.list(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.ResourceID() == id {
			return item, nil
		}
	}
	return zero, &store.NotFoundError{Kind: c.kind, ID: id}
}

func (c readOnly[T]) Create(_ context.Context, item T) (T, error) {
	var zero T
	return zero, fmt.Errorf("create %s %s: %w", c.kind, item.ResourceName(), store.ErrReadOnly)
}

func (c readOnly[T]) Update(_ context.Context, item T) (T, error) {
	var zero T
	return zero, fmt.Errorf("update %s %s: %w", c.kind, item.ResourceID(), store.ErrReadOnly)
}

func (c readOnly[T]) Delete(_ context.Context, id string) error {
	return fmt.Errorf("delete %s %s: %w", c.kind, id, store.ErrReadOnly)
}
