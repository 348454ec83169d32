package store

import (
	"context"
	"errors"
	"fmt"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/userdata"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
	ErrReadOnly = errors.New("backend is read-only")
)

// Collection is the set of records of one kind.
type Collection[T model.Resource] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Topology answers the relationship questions the console asks about subnets.
type Topology interface {
	// VMAttachment returns nil when no VM uses the subnet.
	VMAttachment(ctx context.Context, subnetID string) (*model.VMAttachment, error)
	ConnectedSubnets(ctx context.Context, subnetID string) ([]string, error)
	ConnectSubnets(ctx context.Context, a, b string) error
	DisconnectSubnets(ctx context.Context, a, b string) error
}

// Repository is the storage the console reads from and mutates. Backends are
// the seeded in-memory store, the sqlite store and the read-only EC2 adapter.
type Repository interface {
	Topology
	VPCs() Collection[model.VPC]
	Subnets() Collection[model.Subnet]
	SecurityGroups() Collection[model.SecurityGroup]
	StaticIPs() Collection[model.StaticIP]
	Volumes() Collection[model.Volume]
	Snapshots() Collection[model.Snapshot]
	Backups() Collection[model.Backup]
	Close() error
}

// NotFoundError names the missing resource and unwraps to ErrNotFound.
type NotFoundError struct {
	Kind model.Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func GetVPC(ctx context.Context, repo Repository, id string) (model.VPC, error) {
	return repo.VPCs().Get(ctx, id)
}

func GetSubnet(ctx context.Context, repo Repository, id string) (model.Subnet, error) {
	return repo.Subnets().Get(ctx, id)
}

func GetSecurityGroup(ctx context.Context, repo Repository, id string) (model.SecurityGroup, error) {
	return repo.SecurityGroups().Get(ctx, id)
}

// FindVPCByName resolves the soft vpcName references held by subnets,
// security groups and static IPs.
func FindVPCByName(ctx context.Context, repo Repository, name string) (model.VPC, error) {
	vpcs, err := repo.VPCs().List(ctx)
	if err != nil {
		return model.VPC{}, err
	}
	for _, v := range vpcs {
		if v.Name == name {
			return v, nil
		}
	}
	return model.VPC{}, &NotFoundError{Kind: model.KindVPC, ID: name}
}

func SubnetsInVPC(ctx context.Context, repo Repository, vpcName string) ([]model.Subnet, error) {
	all, err := repo.Subnets().List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(s model.Subnet) bool { return s.VPCName == vpcName }), nil
}

func SecurityGroupsInVPC(ctx context.Context, repo Repository, vpcName string) ([]model.SecurityGroup, error) {
	all, err := repo.SecurityGroups().List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(sg model.SecurityGroup) bool { return sg.VPCName == vpcName }), nil
}

func StaticIPsInVPC(ctx context.Context, repo Repository, vpcName string) ([]model.StaticIP, error) {
	all, err := repo.StaticIPs().List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(ip model.StaticIP) bool { return ip.VPCName == vpcName }), nil
}

func SnapshotsOfVolume(ctx context.Context, repo Repository, volumeID string) ([]model.Snapshot, error) {
	all, err := repo.Snapshots().List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(s model.Snapshot) bool { return s.VolumeID == volumeID }), nil
}

// FilterForUser swaps in an empty result for new users. Every other user
// type sees the input unchanged.
func FilterForUser[T any](userType userdata.UserType, items []T) []T {
	if ShouldShowEmptyState(userType) {
		return []T{}
	}
	return items
}

// ShouldShowEmptyState reports whether list views render forced empty states.
func ShouldShowEmptyState(userType userdata.UserType) bool {
	return userType == userdata.UserTypeNew
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
