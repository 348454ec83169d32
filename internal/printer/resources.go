package printer

import (
	"fmt"
	"strconv"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/pricing"
	"tasnim.dev/cloud-console/internal/utils"
)

func VPCTable(vpcs []model.VPC) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"Status", ColumnStatus}, {"Type", ColumnPlain}, {"Region", ColumnPlain}, {"Resources", ColumnPlain}, {"Created", ColumnPlain}},
		Noun:    "VPCs",
	}
	for _, v := range vpcs {
		total := 0
		for _, r := range v.Resources {
			total += r.Count
		}
		t.Rows = append(t.Rows, []string{v.ID, v.Name, v.Status, v.Type, v.Region, strconv.Itoa(total), utils.TimeOrDash(v.CreatedOn, utils.DateOnly)})
	}
	return t
}

func SubnetTable(subnets []model.Subnet) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"VPC", ColumnPlain}, {"Type", ColumnPlain}, {"Status", ColumnStatus}, {"CIDR", ColumnPlain}, {"Gateway", ColumnPlain}, {"Zone", ColumnPlain}},
		Noun:    "subnets",
	}
	for _, s := range subnets {
		t.Rows = append(t.Rows, []string{s.ID, s.Name, s.VPCName, s.Type, s.Status, s.CIDR, s.GatewayIP, s.AvailabilityZone})
	}
	return t
}

func SecurityGroupTable(sgs []model.SecurityGroup) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"VPC", ColumnPlain}, {"Status", ColumnStatus}, {"Inbound", ColumnPlain}, {"Outbound", ColumnPlain}},
		Noun:    "security groups",
	}
	for _, sg := range sgs {
		t.Rows = append(t.Rows, []string{sg.ID, sg.Name, sg.VPCName, sg.Status, strconv.Itoa(len(sg.InboundRules)), strconv.Itoa(len(sg.OutboundRules))})
	}
	return t
}

func StaticIPTable(ips []model.StaticIP) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"Address", ColumnPlain}, {"VPC", ColumnPlain}, {"Status", ColumnStatus}, {"Associated", ColumnPlain}},
		Noun:    "static IPs",
	}
	for _, ip := range ips {
		t.Rows = append(t.Rows, []string{ip.ID, ip.Name, ip.IPAddress, ip.VPCName, ip.Status, ip.AssociatedResource})
	}
	return t
}

func VolumeTable(vols []model.Volume) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"Size", ColumnPlain}, {"Type", ColumnPlain}, {"Status", ColumnStatus}, {"Attached To", ColumnPlain}, {"Monthly", ColumnPlain}},
		Noun:    "volumes",
	}
	for _, v := range vols {
		t.Rows = append(t.Rows, []string{v.ID, v.Name, utils.SizeGB(v.SizeGB), v.Type, v.Status, v.AttachedTo, pricing.Format(pricing.VolumeMonthly(v.Type, v.SizeGB))})
	}
	return t
}

func SnapshotTable(snaps []model.Snapshot) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"Volume", ColumnPlain}, {"Size", ColumnPlain}, {"Status", ColumnStatus}, {"Created", ColumnPlain}},
		Noun:    "snapshots",
	}
	for _, s := range snaps {
		t.Rows = append(t.Rows, []string{s.ID, s.Name, s.VolumeName, utils.SizeGB(s.SizeGB), s.Status, utils.TimeOrDash(s.CreatedOn, utils.DateTime)})
	}
	return t
}

func BackupTable(backups []model.Backup) Table {
	t := Table{
		Columns: []Column{{"ID", ColumnID}, {"Name", ColumnName}, {"Volume", ColumnPlain}, {"Schedule", ColumnPlain}, {"Retention", ColumnPlain}, {"Status", ColumnStatus}},
		Noun:    "backups",
	}
	for _, b := range backups {
		t.Rows = append(t.Rows, []string{b.ID, b.Name, b.VolumeName, b.Schedule, fmt.Sprintf("%d days", b.RetentionDays), b.Status})
	}
	return t
}

// RuleFields renders each rule as one line of a detail section.
func RuleFields(rules []model.Rule) []Field {
	fields := make([]Field, 0, len(rules))
	for _, r := range rules {
		value := fmt.Sprintf("%s %s from %s", r.Protocol, r.PortRange, r.RemoteIPPrefix)
		if r.Description != "" {
			value += "  (" + r.Description + ")"
		}
		fields = append(fields, Field{Key: r.ID, Value: value})
	}
	return fields
}
