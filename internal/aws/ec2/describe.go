package ec2

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
)

func (r *Repository) describeVpcs(ctx context.Context) ([]types.Vpc, error) {
	var vpcs []types.Vpc
	var nextToken *string

	for {
		out, err := r.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, describeError("DescribeVpcs", err)
		}
		vpcs = append(vpcs, out.Vpcs...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return vpcs, nil
}

func (r *Repository) describeSubnets(ctx context.Context, filters ...types.Filter) ([]types.Subnet, error) {
	var subnets []types.Subnet
	var nextToken *string

	for {
		out, err := r.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, describeError("DescribeSubnets", err)
		}
		subnets = append(subnets, out.Subnets...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return subnets, nil
}

func (r *Repository) describeSecurityGroups(ctx context.Context) ([]types.SecurityGroup, error) {
	var sgs []types.SecurityGroup
	var nextToken *string

	for {
		out, err := r.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, describeError("DescribeSecurityGroups", err)
		}
		sgs = append(sgs, out.SecurityGroups...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return sgs, nil
}

// DescribeAddresses is not paginated.
func (r *Repository) describeAddresses(ctx context.Context) ([]types.Address, error) {
	out, err := r.api.DescribeAddresses(ctx, &awsec2.DescribeAddressesInput{})
	if err != nil {
		return nil, describeError("DescribeAddresses", err)
	}
	return out.Addresses, nil
}

func (r *Repository) describeVolumes(ctx context.Context) ([]types.Volume, error) {
	var vols []types.Volume
	var nextToken *string

	for {
		out, err := r.api.DescribeVolumes(ctx, &awsec2.DescribeVolumesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, describeError("DescribeVolumes", err)
		}
		vols = append(vols, out.Volumes...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return vols, nil
}

// describeSnapshots lists only snapshots owned by the caller. Public
// snapshots would otherwise flood the table.
func (r *Repository) describeSnapshots(ctx context.Context) ([]types.Snapshot, error) {
	var snaps []types.Snapshot
	var nextToken *string

	for {
		out, err := r.api.DescribeSnapshots(ctx, &awsec2.DescribeSnapshotsInput{
			OwnerIds:  []string{"self"},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, describeError("DescribeSnapshots", err)
		}
		snaps = append(snaps, out.Snapshots...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return snaps, nil
}

func (r *Repository) describeInstances(ctx context.Context, filters ...types.Filter) ([]types.Instance, error) {
	var instances []types.Instance
	var nextToken *string

	for {
		out, err := r.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, describeError("DescribeInstances", err)
		}
		for _, reservation := range out.Reservations {
			instances = append(instances, reservation.Instances...)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return instances, nil
}

func filter(name string, values ...string) types.Filter {
	return types.Filter{Name: aws.String(name), Values: values}
}

// describeError keeps the AWS error code visible in toasts, e.g.
// "DescribeVpcs: UnauthorizedOperation: ...".
func describeError(op string, err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Errorf("%s: %s: %w", op, ae.ErrorCode(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
