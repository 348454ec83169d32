package deletion

import (
	"fmt"
	"strings"

	"tasnim.dev/cloud-console/internal/model"
)

// protectedVPC is the one VPC whose VMs and volumes block deletion. Every
// other VPC lists its resources as a warning only.
const protectedVPC = "gaming-vpc"

func VPCTarget(v model.VPC, del DeleteFunc) Target {
	t := Target{Kind: model.KindVPC, ID: v.ID, Name: v.Name, Delete: del}
	for _, r := range v.Resources {
		t.Dependents = append(t.Dependents, Dependent{Type: r.Type, Name: r.Name, Count: r.Count})
	}
	if v.Name == protectedVPC && (v.ResourceCount("VM") > 0 || v.ResourceCount("Volume") > 0) {
		t.Blocked = true
		t.Reason = blockingReason(v)
	}
	return t
}

func blockingReason(v model.VPC) string {
	var parts []string
	for _, r := range v.Resources {
		if (r.Type == "VM" || r.Type == "Volume") && r.Count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s (%s)", r.Count, r.Type, r.Name))
		}
	}
	return fmt.Sprintf("%s still has %s attached. Remove them before deleting the VPC.",
		v.Name, strings.Join(parts, ", "))
}

// SubnetTarget blocks whenever a VM is attached, whatever the VM is.
func SubnetTarget(s model.Subnet, vm *model.VMAttachment, del DeleteFunc) Target {
	t := Target{Kind: model.KindSubnet, ID: s.ID, Name: s.Name, Delete: del}
	if vm != nil {
		t.Dependents = []Dependent{{Type: "VM", Name: vm.VMName, Count: 1}}
		t.Blocked = true
		t.Reason = fmt.Sprintf("Subnet %s is in use by VM %s (%s). Detach the VM before deleting the subnet.",
			s.Name, vm.VMName, vm.IPAddress)
	}
	return t
}

func SecurityGroupTarget(sg model.SecurityGroup, del DeleteFunc) Target {
	return Target{
		Kind: model.KindSecurityGroup,
		ID:   sg.ID,
		Name: sg.Name,
		Dependents: []Dependent{
			{Type: "Inbound rule", Count: len(sg.InboundRules)},
			{Type: "Outbound rule", Count: len(sg.OutboundRules)},
		},
		Delete: del,
	}
}

func StaticIPTarget(ip model.StaticIP, del DeleteFunc) Target {
	t := Target{Kind: model.KindStaticIP, ID: ip.ID, Name: ip.Name, Delete: del}
	if ip.AssociatedResource != "" {
		t.Dependents = []Dependent{{Type: "Association", Name: ip.AssociatedResource, Count: 1}}
		t.Blocked = true
		t.Reason = fmt.Sprintf("%s (%s) is associated with %s. Release it first.",
			ip.Name, ip.IPAddress, ip.AssociatedResource)
	}
	return t
}

// VolumeTarget blocks while attached. Snapshots outlive the volume and are
// listed as a warning.
func VolumeTarget(v model.Volume, snapshots []model.Snapshot, del DeleteFunc) Target {
	t := Target{Kind: model.KindVolume, ID: v.ID, Name: v.Name, Delete: del}
	for _, s := range snapshots {
		t.Dependents = append(t.Dependents, Dependent{Type: "Snapshot", Name: s.Name, Count: 1})
	}
	if v.AttachedTo != "" {
		t.Dependents = append([]Dependent{{Type: "Attachment", Name: v.AttachedTo, Count: 1}}, t.Dependents...)
		t.Blocked = true
		t.Reason = fmt.Sprintf("Volume %s is attached to %s. Detach it before deleting.", v.Name, v.AttachedTo)
	}
	return t
}

func SnapshotTarget(s model.Snapshot, del DeleteFunc) Target {
	return Target{Kind: model.KindSnapshot, ID: s.ID, Name: s.Name, Delete: del}
}

func BackupTarget(b model.Backup, del DeleteFunc) Target {
	return Target{Kind: model.KindBackup, ID: b.ID, Name: b.Name, Delete: del}
}
