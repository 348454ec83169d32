package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/pricing"
	"tasnim.dev/cloud-console/internal/utils"
)

func VPCDetail(w io.Writer, v model.VPC) error {
	var resources []Field
	for _, r := range v.Resources {
		resources = append(resources, Field{Key: r.Type, Value: fmt.Sprintf("%d × %s", r.Count, r.Name)})
	}
	return Detail(w, "VPC "+v.Name, []Field{
		{"ID", v.ID},
		{"Status", v.Status},
		{"Type", v.Type},
		{"Region", v.Region},
		{"Network", v.NetworkName},
		{"Created", utils.TimeOrDash(v.CreatedOn, utils.DateTime)},
		{"Description", v.Description},
	}, Section{Title: "Resources", Fields: resources})
}

// SubnetDetail includes the attached VM (nil when none) and the names of
// connected subnets.
func SubnetDetail(w io.Writer, s model.Subnet, vm *model.VMAttachment, connected []string) error {
	var vmFields []Field
	if vm != nil {
		vmFields = []Field{{"VM", vm.VMName + " (" + vm.VMID + ")"}, {"Private IP", vm.IPAddress}}
	}
	conns := make([]Field, len(connected))
	for i, name := range connected {
		conns[i] = Field{Key: strconv.Itoa(i + 1), Value: name}
	}
	return Detail(w, "Subnet "+s.Name, []Field{
		{"ID", s.ID},
		{"VPC", s.VPCName},
		{"Type", s.Type},
		{"Status", s.Status},
		{"CIDR", s.CIDR},
		{"Gateway", s.GatewayIP},
		{"Zone", s.AvailabilityZone},
		{"Created", utils.TimeOrDash(s.CreatedOn, utils.DateTime)},
		{"Description", s.Description},
	},
		Section{Title: "Attached VM", Fields: vmFields},
		Section{Title: "Connected Subnets", Fields: conns},
	)
}

func SecurityGroupDetail(w io.Writer, sg model.SecurityGroup) error {
	return Detail(w, "Security Group "+sg.Name, []Field{
		{"ID", sg.ID},
		{"VPC", sg.VPCName},
		{"Status", sg.Status},
		{"Created", utils.TimeOrDash(sg.CreatedOn, utils.DateTime)},
		{"Description", sg.Description},
	},
		Section{Title: "Inbound Rules", Fields: RuleFields(sg.InboundRules)},
		Section{Title: "Outbound Rules", Fields: RuleFields(sg.OutboundRules)},
	)
}

func StaticIPDetail(w io.Writer, ip model.StaticIP) error {
	return Detail(w, "Static IP "+ip.Name, []Field{
		{"ID", ip.ID},
		{"Address", ip.IPAddress},
		{"VPC", ip.VPCName},
		{"Status", ip.Status},
		{"Associated With", ip.AssociatedResource},
		{"Created", utils.TimeOrDash(ip.CreatedOn, utils.DateTime)},
		{"Monthly Cost", pricing.Format(pricing.StaticIPMonthly())},
		{"Description", ip.Description},
	})
}

func VolumeDetail(w io.Writer, v model.Volume, snapshots []model.Snapshot) error {
	snaps := make([]Field, len(snapshots))
	for i, s := range snapshots {
		snaps[i] = Field{Key: s.ID, Value: fmt.Sprintf("%s  %s  %s", s.Name, s.Status, utils.TimeOrDash(s.CreatedOn, utils.DateOnly))}
	}
	return Detail(w, "Volume "+v.Name, []Field{
		{"ID", v.ID},
		{"Size", utils.SizeGB(v.SizeGB)},
		{"Type", v.Type},
		{"IOPS", utils.Count(v.IOPS)},
		{"Status", v.Status},
		{"Attached To", v.AttachedTo},
		{"VPC", v.VPCName},
		{"Zone", v.AvailabilityZone},
		{"Created", utils.TimeOrDash(v.CreatedOn, utils.DateTime)},
		{"Monthly Cost", pricing.Format(pricing.VolumeMonthly(v.Type, v.SizeGB))},
		{"Description", v.Description},
	}, Section{Title: "Snapshots", Fields: snaps})
}

func SnapshotDetail(w io.Writer, s model.Snapshot) error {
	return Detail(w, "Snapshot "+s.Name, []Field{
		{"ID", s.ID},
		{"Volume", s.VolumeName + " (" + s.VolumeID + ")"},
		{"Size", utils.SizeGB(s.SizeGB)},
		{"Status", s.Status},
		{"Created", utils.TimeOrDash(s.CreatedOn, utils.DateTime)},
		{"Monthly Cost", pricing.Format(pricing.SnapshotMonthly(s.SizeGB))},
		{"Description", s.Description},
	})
}

// BackupDetail prices the backup from the source volume size, which is 0
// once the volume is gone.
func BackupDetail(w io.Writer, b model.Backup, volumeSizeGB int) error {
	cost := "-"
	if volumeSizeGB > 0 {
		cost = pricing.Format(pricing.BackupMonthly(volumeSizeGB, b.RetentionDays))
	}
	return Detail(w, "Backup "+b.Name, []Field{
		{"ID", b.ID},
		{"Volume", strings.TrimSpace(b.VolumeName + " (" + b.VolumeID + ")")},
		{"Schedule", b.Schedule},
		{"Retention", fmt.Sprintf("%d days", b.RetentionDays)},
		{"Status", b.Status},
		{"Created", utils.TimeOrDash(b.CreatedOn, utils.DateTime)},
		{"Monthly Cost", cost},
		{"Description", b.Description},
	})
}
