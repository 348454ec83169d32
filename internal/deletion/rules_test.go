package deletion

import (
	"testing"

	"tasnim.dev/cloud-console/internal/model"
)

func TestVPCTarget_GamingBlocksResearchProceeds(t *testing.T) {
	gaming := model.VPC{
		ID:   "vpc-3",
		Name: "gaming-vpc",
		Resources: []model.VPCResource{
			{Type: "VM", Name: "game-server-01", Count: 1},
			{Type: "Volume", Name: "game-data", Count: 1},
		},
	}
	research := model.VPC{ID: "vpc-4", Name: "research-vpc", Resources: []model.VPCResource{}}

	var f Flow
	f.Begin(VPCTarget(gaming, nil))
	if f.State() != StateBlocked {
		t.Fatalf("gaming-vpc state = %s, want blocked", f.State())
	}
	if f.Proceed() == nil {
		t.Error("gaming-vpc must not reach name confirmation")
	}
	if len(f.Target().Dependents) != 2 {
		t.Errorf("dependents = %d, want 2", len(f.Target().Dependents))
	}
	if f.Target().Reason == "" {
		t.Error("blocked target needs a reason")
	}
	f.Cancel()

	f.Begin(VPCTarget(research, nil))
	if err := f.Proceed(); err != nil {
		t.Fatalf("research-vpc Proceed: %v", err)
	}
	if f.State() != StateNameConfirm {
		t.Errorf("research-vpc state = %s, want name-confirm", f.State())
	}
}

func TestVPCTarget_Rule(t *testing.T) {
	tests := []struct {
		name      string
		vpc       model.VPC
		wantBlock bool
	}{
		{
			name:      "other vpc with VMs only warns",
			vpc:       model.VPC{Name: "production-vpc", Resources: []model.VPCResource{{Type: "VM", Name: "web", Count: 3}}},
			wantBlock: false,
		},
		{
			name:      "gaming vpc with only subnets",
			vpc:       model.VPC{Name: "gaming-vpc", Resources: []model.VPCResource{{Type: "Subnet", Name: "s", Count: 1}}},
			wantBlock: false,
		},
		{
			name:      "gaming vpc with zero-count VM",
			vpc:       model.VPC{Name: "gaming-vpc", Resources: []model.VPCResource{{Type: "VM", Name: "gone", Count: 0}}},
			wantBlock: false,
		},
		{
			name:      "gaming vpc with a volume",
			vpc:       model.VPC{Name: "gaming-vpc", Resources: []model.VPCResource{{Type: "Volume", Name: "d", Count: 2}}},
			wantBlock: true,
		},
		{
			name:      "name match is exact",
			vpc:       model.VPC{Name: "Gaming-VPC", Resources: []model.VPCResource{{Type: "VM", Name: "g", Count: 1}}},
			wantBlock: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VPCTarget(tt.vpc, nil)
			if got.Blocked != tt.wantBlock {
				t.Errorf("Blocked = %v, want %v", got.Blocked, tt.wantBlock)
			}
			if len(got.Dependents) != len(tt.vpc.Resources) {
				t.Errorf("dependents = %d, want every resource listed", len(got.Dependents))
			}
		})
	}
}

func TestSubnetTarget(t *testing.T) {
	s := model.Subnet{ID: "subnet-1", Name: "prod-web-subnet"}

	free := SubnetTarget(s, nil, nil)
	if free.Blocked || len(free.Dependents) != 0 {
		t.Errorf("unattached subnet should not block: %+v", free)
	}

	used := SubnetTarget(s, &model.VMAttachment{VMID: "vm-1", VMName: "web-server-01", IPAddress: "10.0.1.15"}, nil)
	if !used.Blocked {
		t.Error("attached subnet must block")
	}
	if len(used.Dependents) != 1 || used.Dependents[0].Name != "web-server-01" {
		t.Errorf("dependents = %+v", used.Dependents)
	}
}

func TestSecurityGroupTarget_NeverBlocks(t *testing.T) {
	sg := model.SecurityGroup{
		ID: "sg-1", Name: "web-sg",
		InboundRules:  make([]model.Rule, 3),
		OutboundRules: make([]model.Rule, 1),
	}
	got := SecurityGroupTarget(sg, nil)
	if got.Blocked {
		t.Error("security groups never block")
	}
	if got.Dependents[0].Count != 3 || got.Dependents[1].Count != 1 {
		t.Errorf("rule counts = %+v", got.Dependents)
	}
}

func TestStorageTargets(t *testing.T) {
	if !StaticIPTarget(model.StaticIP{Name: "ip", AssociatedResource: "vm"}, nil).Blocked {
		t.Error("associated static IP must block")
	}
	if StaticIPTarget(model.StaticIP{Name: "ip"}, nil).Blocked {
		t.Error("free static IP must not block")
	}

	snaps := []model.Snapshot{{Name: "nightly"}, {Name: "weekly"}}
	attached := VolumeTarget(model.Volume{Name: "data", AttachedTo: "db-01"}, snaps, nil)
	if !attached.Blocked || len(attached.Dependents) != 3 || attached.Dependents[0].Type != "Attachment" {
		t.Errorf("attached volume target = %+v", attached)
	}
	detached := VolumeTarget(model.Volume{Name: "data"}, snaps, nil)
	if detached.Blocked || len(detached.Dependents) != 2 {
		t.Errorf("detached volume target = %+v", detached)
	}

	if SnapshotTarget(model.Snapshot{Name: "s"}, nil).Blocked || BackupTarget(model.Backup{Name: "b"}, nil).Blocked {
		t.Error("snapshots and backups never block")
	}
}
