package ec2

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"tasnim.dev/cloud-console/internal/model"
)

func nameFromTags(tags []types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func nameOr(tags []types.Tag, fallback string) string {
	if n := nameFromTags(tags); n != "" {
		return n
	}
	return fallback
}

// NormalizeProtocol converts AWS numeric protocol strings to human-readable names.
func NormalizeProtocol(protocol string) string {
	switch protocol {
	case "-1":
		return "All"
	case "6":
		return "TCP"
	case "17":
		return "UDP"
	case "1":
		return "ICMP"
	default:
		return strings.ToUpper(protocol)
	}
}

func portRange(p types.IpPermission) string {
	if aws.ToString(p.IpProtocol) == "-1" || p.FromPort == nil {
		return "All"
	}
	from, to := aws.ToInt32(p.FromPort), aws.ToInt32(p.ToPort)
	if from == to {
		return fmt.Sprintf("%d", from)
	}
	return fmt.Sprintf("%d-%d", from, to)
}

// gatewayIP is the VPC router address AWS reserves at network+1.
func gatewayIP(cidr string) string {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return ""
	}
	return prefix.Masked().Addr().Next().String()
}

func stateLabel(state string) string {
	switch state {
	case "available", "completed":
		return "Available"
	case "in-use":
		return "In Use"
	case "pending", "creating":
		return "Creating"
	case "error", "failed":
		return "Failed"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(state[:1]) + state[1:]
	}
}

// volumeClass folds the EBS volume types into the two tiers the console prices.
func volumeClass(t types.VolumeType) string {
	switch t {
	case types.VolumeTypeSt1, types.VolumeTypeSc1, types.VolumeTypeStandard:
		return "HDD"
	default:
		return "SSD"
	}
}

func mapVPC(v types.Vpc, region string, resources []model.VPCResource) model.VPC {
	id := aws.ToString(v.VpcId)
	status := "Active"
	if v.State != types.VpcStateAvailable {
		status = stateLabel(string(v.State))
	}
	vpcType := "Paid"
	if aws.ToBool(v.IsDefault) {
		vpcType = "Free"
	}
	if resources == nil {
		resources = []model.VPCResource{}
	}
	return model.VPC{
		ID:          id,
		Name:        nameOr(v.Tags, id),
		Status:      status,
		Type:        vpcType,
		Region:      region,
		Description: fmt.Sprintf("CIDR %s", aws.ToString(v.CidrBlock)),
		NetworkName: aws.ToString(v.CidrBlock),
		Resources:   resources,
	}
}

func mapSubnet(s types.Subnet, vpcNames map[string]string) model.Subnet {
	id := aws.ToString(s.SubnetId)
	subnetType := "Private"
	if aws.ToBool(s.MapPublicIpOnLaunch) {
		subnetType = "Public"
	}
	status := "Active"
	if s.State != types.SubnetStateAvailable {
		status = stateLabel(string(s.State))
	}
	cidr := aws.ToString(s.CidrBlock)
	return model.Subnet{
		ID:               id,
		Name:             nameOr(s.Tags, id),
		VPCName:          vpcNames[aws.ToString(s.VpcId)],
		Type:             subnetType,
		Status:           status,
		CIDR:             cidr,
		GatewayIP:        gatewayIP(cidr),
		AvailabilityZone: aws.ToString(s.AvailabilityZone),
		Description:      fmt.Sprintf("%d available IPs", aws.ToInt32(s.AvailableIpAddressCount)),
	}
}

func mapSecurityGroup(sg types.SecurityGroup, vpcNames map[string]string) model.SecurityGroup {
	id := aws.ToString(sg.GroupId)
	return model.SecurityGroup{
		ID:            id,
		Name:          aws.ToString(sg.GroupName),
		VPCName:       vpcNames[aws.ToString(sg.VpcId)],
		Status:        "Active",
		Description:   aws.ToString(sg.Description),
		InboundRules:  mapRules(id+"-in", sg.IpPermissions),
		OutboundRules: mapRules(id+"-out", sg.IpPermissionsEgress),
	}
}

// mapRules emits one rule per remote source, so a permission with two CIDRs
// becomes two rows.
func mapRules(prefix string, perms []types.IpPermission) []model.Rule {
	rules := []model.Rule{}
	add := func(p types.IpPermission, remote, desc string) {
		rules = append(rules, model.Rule{
			ID:             fmt.Sprintf("%s-%d", prefix, len(rules)+1),
			Protocol:       NormalizeProtocol(aws.ToString(p.IpProtocol)),
			PortRange:      portRange(p),
			RemoteIPPrefix: remote,
			Description:    desc,
		})
	}
	for _, p := range perms {
		for _, r := range p.IpRanges {
			add(p, aws.ToString(r.CidrIp), aws.ToString(r.Description))
		}
		for _, r := range p.Ipv6Ranges {
			add(p, aws.ToString(r.CidrIpv6), aws.ToString(r.Description))
		}
		for _, g := range p.UserIdGroupPairs {
			add(p, aws.ToString(g.GroupId), aws.ToString(g.Description))
		}
		for _, pl := range p.PrefixListIds {
			add(p, aws.ToString(pl.PrefixListId), aws.ToString(pl.Description))
		}
	}
	return rules
}

func mapAddress(a types.Address, instances map[string]types.Instance, vpcNames map[string]string) model.StaticIP {
	ip := aws.ToString(a.PublicIp)
	id := aws.ToString(a.AllocationId)
	if id == "" {
		id = ip
	}
	associated := aws.ToString(a.InstanceId)
	var vpcName string
	if inst, ok := instances[associated]; ok {
		associated = nameOr(inst.Tags, associated)
		vpcName = vpcNames[aws.ToString(inst.VpcId)]
	}
	if associated == "" {
		associated = aws.ToString(a.NetworkInterfaceId)
	}
	status := "Available"
	if a.AssociationId != nil {
		status = "In Use"
	}
	return model.StaticIP{
		ID:                 id,
		Name:               nameOr(a.Tags, ip),
		IPAddress:          ip,
		VPCName:            vpcName,
		Status:             status,
		Description:        fmt.Sprintf("%s address", a.Domain),
		AssociatedResource: associated,
	}
}

func mapVolume(v types.Volume, instances map[string]types.Instance, vpcNames map[string]string) model.Volume {
	id := aws.ToString(v.VolumeId)
	var attachedTo, vpcName string
	if len(v.Attachments) > 0 {
		instID := aws.ToString(v.Attachments[0].InstanceId)
		attachedTo = instID
		if inst, ok := instances[instID]; ok {
			attachedTo = nameOr(inst.Tags, instID)
			vpcName = vpcNames[aws.ToString(inst.VpcId)]
		}
	}
	return model.Volume{
		ID:               id,
		Name:             nameOr(v.Tags, id),
		SizeGB:           int(aws.ToInt32(v.Size)),
		Type:             volumeClass(v.VolumeType),
		Status:           stateLabel(string(v.State)),
		AttachedTo:       attachedTo,
		VPCName:          vpcName,
		AvailabilityZone: aws.ToString(v.AvailabilityZone),
		IOPS:             int(aws.ToInt32(v.Iops)),
		CreatedOn:        aws.ToTime(v.CreateTime),
		Description:      fmt.Sprintf("EBS %s", v.VolumeType),
	}
}

func mapSnapshot(s types.Snapshot, volumeNames map[string]string) model.Snapshot {
	id := aws.ToString(s.SnapshotId)
	volID := aws.ToString(s.VolumeId)
	volName := volumeNames[volID]
	if volName == "" {
		volName = volID
	}
	return model.Snapshot{
		ID:          id,
		Name:        nameOr(s.Tags, id),
		VolumeID:    volID,
		VolumeName:  volName,
		SizeGB:      int(aws.ToInt32(s.VolumeSize)),
		Status:      stateLabel(string(s.State)),
		CreatedOn:   aws.ToTime(s.StartTime),
		Description: aws.ToString(s.Description),
	}
}

func mapAttachment(inst types.Instance) model.VMAttachment {
	id := aws.ToString(inst.InstanceId)
	return model.VMAttachment{
		VMID:      id,
		VMName:    nameOr(inst.Tags, id),
		IPAddress: aws.ToString(inst.PrivateIpAddress),
	}
}
