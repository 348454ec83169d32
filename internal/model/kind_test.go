package model

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"vpc", KindVPC},
		{"VPCs", KindVPC},
		{"sg", KindSecurityGroup},
		{"security-groups", KindSecurityGroup},
		{" static-ips ", KindStaticIP},
		{"vol", KindVolume},
		{"snapshots", KindSnapshot},
		{"backup", KindBackup},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if err != nil {
				t.Fatalf("ParseKind(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	if _, err := ParseKind("bucket"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestKindLabelAndPrefix(t *testing.T) {
	if KindSecurityGroup.Label() != "Security Group" {
		t.Errorf("Label = %q", KindSecurityGroup.Label())
	}
	if KindVolume.IDPrefix() != "vol" {
		t.Errorf("IDPrefix = %q, want vol", KindVolume.IDPrefix())
	}
	if KindVPC.IDPrefix() != "vpc" {
		t.Errorf("IDPrefix = %q, want vpc", KindVPC.IDPrefix())
	}
}

func TestVPCResourceCount(t *testing.T) {
	v := VPC{Resources: []VPCResource{
		{Type: "VM", Name: "game-server", Count: 1},
		{Type: "VM", Name: "lobby", Count: 2},
		{Type: "Volume", Name: "game-data", Count: 1},
	}}
	if got := v.ResourceCount("VM"); got != 3 {
		t.Errorf("ResourceCount(VM) = %d, want 3", got)
	}
	if got := v.ResourceCount("Subnet"); got != 0 {
		t.Errorf("ResourceCount(Subnet) = %d, want 0", got)
	}
}
