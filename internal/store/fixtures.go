package store

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tasnim.dev/cloud-console/internal/model"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// AttachmentFixture binds a VM to a subnet.
type AttachmentFixture struct {
	SubnetID string             `yaml:"subnetId" json:"subnetId"`
	VM       model.VMAttachment `yaml:"vm" json:"vm"`
}

// Fixtures is the full mock data set.
type Fixtures struct {
	VPCs           []model.VPC              `yaml:"vpcs"`
	Subnets        []model.Subnet           `yaml:"subnets"`
	SecurityGroups []model.SecurityGroup    `yaml:"securityGroups"`
	StaticIPs      []model.StaticIP         `yaml:"staticIps"`
	Volumes        []model.Volume           `yaml:"volumes"`
	Snapshots      []model.Snapshot         `yaml:"snapshots"`
	Backups        []model.Backup           `yaml:"backups"`
	VMAttachments  []AttachmentFixture      `yaml:"vmAttachments"`
	Connections    []model.SubnetConnection `yaml:"subnetConnections"`
}

// LoadFixtures decodes the embedded mock data.
func LoadFixtures() (*Fixtures, error) {
	return ParseFixtures(fixturesYAML)
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &fx, nil
}

// Export reads every record and relationship out of a repository so it can
// be copied into another backend.
func Export(ctx context.Context, repo Repository) (*Fixtures, error) {
	var fx Fixtures
	var err error
	if fx.VPCs, err = repo.VPCs().List(ctx); err != nil {
		return nil, fmt.Errorf("listing vpcs: %w", err)
	}
	if fx.Subnets, err = repo.Subnets().List(ctx); err != nil {
		return nil, fmt.Errorf("listing subnets: %w", err)
	}
	if fx.SecurityGroups, err = repo.SecurityGroups().List(ctx); err != nil {
		return nil, fmt.Errorf("listing security groups: %w", err)
	}
	if fx.StaticIPs, err = repo.StaticIPs().List(ctx); err != nil {
		return nil, fmt.Errorf("listing static ips: %w", err)
	}
	if fx.Volumes, err = repo.Volumes().List(ctx); err != nil {
		return nil, fmt.Errorf("listing volumes: %w", err)
	}
	if fx.Snapshots, err = repo.Snapshots().List(ctx); err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	if fx.Backups, err = repo.Backups().List(ctx); err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	for _, s := range fx.Subnets {
		vm, err := repo.VMAttachment(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("attachment of %s: %w", s.ID, err)
		}
		if vm != nil {
			fx.VMAttachments = append(fx.VMAttachments, AttachmentFixture{SubnetID: s.ID, VM: *vm})
		}
		peers, err := repo.ConnectedSubnets(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("connections of %s: %w", s.ID, err)
		}
		if len(peers) > 0 {
			fx.Connections = append(fx.Connections, model.SubnetConnection{SubnetID: s.ID, ConnectedSubnets: peers})
		}
	}
	return &fx, nil
}
