package model

import (
	"fmt"
	"strings"
)

// Kind names a resource type managed by the console.
type Kind string

const (
	KindVPC           Kind = "vpc"
	KindSubnet        Kind = "subnet"
	KindSecurityGroup Kind = "security-group"
	KindStaticIP      Kind = "static-ip"
	KindVolume        Kind = "volume"
	KindSnapshot      Kind = "snapshot"
	KindBackup        Kind = "backup"
)

// Kinds lists every kind in menu order.
var Kinds = []Kind{KindVPC, KindSubnet, KindSecurityGroup, KindStaticIP, KindVolume, KindSnapshot, KindBackup}

var kindAliases = map[string]Kind{
	"vpc": KindVPC, "vpcs": KindVPC,
	"subnet": KindSubnet, "subnets": KindSubnet,
	"security-group": KindSecurityGroup, "security-groups": KindSecurityGroup, "sg": KindSecurityGroup, "sgs": KindSecurityGroup,
	"static-ip": KindStaticIP, "static-ips": KindStaticIP, "ip": KindStaticIP, "ips": KindStaticIP,
	"volume": KindVolume, "volumes": KindVolume, "vol": KindVolume,
	"snapshot": KindSnapshot, "snapshots": KindSnapshot, "snap": KindSnapshot,
	"backup": KindBackup, "backups": KindBackup,
}

// ParseKind accepts singular, plural and short forms ("sg", "ips").
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown resource kind %q", s)
}

// Label is the human-readable name used in titles and notifications.
func (k Kind) Label() string {
	switch k {
	case KindVPC:
		return "VPC"
	case KindSubnet:
		return "Subnet"
	case KindSecurityGroup:
		return "Security Group"
	case KindStaticIP:
		return "Static IP"
	case KindVolume:
		return "Volume"
	case KindSnapshot:
		return "Snapshot"
	case KindBackup:
		return "Backup"
	}
	return string(k)
}

// IDPrefix is prepended to generated ids.
func (k Kind) IDPrefix() string {
	switch k {
	case KindSecurityGroup:
		return "sg"
	case KindStaticIP:
		return "ip"
	case KindVolume:
		return "vol"
	case KindSnapshot:
		return "snap"
	case KindBackup:
		return "bkp"
	}
	return string(k)
}
