package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tasnim.dev/cloud-console/internal/model"
)

// NewID returns a fresh id like "vpc-1a2b3c4d".
func NewID(kind model.Kind) string {
	return kind.IDPrefix() + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Stamper fills the fields Create owns: id, creation time and initial status.
type Stamper[T model.Resource] func(item T, now time.Time) T

func StampVPC(v model.VPC, now time.Time) model.VPC {
	if v.ID == "" {
		v.ID = NewID(model.KindVPC)
	}
	if v.CreatedOn.IsZero() {
		v.CreatedOn = now
	}
	if v.Status == "" {
		v.Status = "Active"
	}
	if v.Type == "" {
		v.Type = "Free"
	}
	return v
}

func StampSubnet(s model.Subnet, now time.Time) model.Subnet {
	if s.ID == "" {
		s.ID = NewID(model.KindSubnet)
	}
	if s.CreatedOn.IsZero() {
		s.CreatedOn = now
	}
	if s.Status == "" {
		s.Status = "Active"
	}
	return s
}

func StampSecurityGroup(sg model.SecurityGroup, now time.Time) model.SecurityGroup {
	if sg.ID == "" {
		sg.ID = NewID(model.KindSecurityGroup)
	}
	if sg.CreatedOn.IsZero() {
		sg.CreatedOn = now
	}
	if sg.Status == "" {
		sg.Status = "Active"
	}
	sg.InboundRules = stampRules(sg.InboundRules)
	sg.OutboundRules = stampRules(sg.OutboundRules)
	return sg
}

func stampRules(rules []model.Rule) []model.Rule {
	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = NewID("rule")
		}
	}
	return rules
}

func StampStaticIP(ip model.StaticIP, now time.Time) model.StaticIP {
	if ip.ID == "" {
		ip.ID = NewID(model.KindStaticIP)
	}
	if ip.CreatedOn.IsZero() {
		ip.CreatedOn = now
	}
	if ip.Status == "" {
		ip.Status = "Available"
		if ip.AssociatedResource != "" {
			ip.Status = "In Use"
		}
	}
	return ip
}

func StampVolume(v model.Volume, now time.Time) model.Volume {
	if v.ID == "" {
		v.ID = NewID(model.KindVolume)
	}
	if v.CreatedOn.IsZero() {
		v.CreatedOn = now
	}
	if v.Type == "" {
		v.Type = "SSD"
	}
	if v.Status == "" {
		v.Status = "Available"
		if v.AttachedTo != "" {
			v.Status = "In Use"
		}
	}
	return v
}

func StampSnapshot(s model.Snapshot, now time.Time) model.Snapshot {
	if s.ID == "" {
		s.ID = NewID(model.KindSnapshot)
	}
	if s.CreatedOn.IsZero() {
		s.CreatedOn = now
	}
	if s.Status == "" {
		s.Status = "Available"
	}
	return s
}

func StampBackup(b model.Backup, now time.Time) model.Backup {
	if b.ID == "" {
		b.ID = NewID(model.KindBackup)
	}
	if b.CreatedOn.IsZero() {
		b.CreatedOn = now
	}
	if b.Schedule == "" {
		b.Schedule = "Manual"
	}
	if b.Status == "" {
		b.Status = "Completed"
	}
	return b
}
