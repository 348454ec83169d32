package console

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tasnim.dev/cloud-console/internal/model"
	"tasnim.dev/cloud-console/internal/store"
)

func submitForm(t *testing.T, f *Form, vals FormValues) (FormResult, error) {
	t.Helper()
	merged := f.Values()
	for k, v := range vals {
		merged[k] = v
	}
	return f.config.Submit(context.Background(), merged)
}

func TestVolumeIOPS(t *testing.T) {
	tests := []struct {
		typ  string
		size int
		want int
	}{
		{"SSD", 10, 100},
		{"SSD", 200, 600},
		{"SSD", 10000, 16000},
		{"HDD", 10, 40},
		{"HDD", 600, 300},
		{"hdd", 5000, 500},
	}
	for _, tt := range tests {
		if got := volumeIOPS(tt.typ, tt.size); got != tt.want {
			t.Errorf("volumeIOPS(%s, %d) = %d, want %d", tt.typ, tt.size, got, tt.want)
		}
	}
}

func TestAllocateIP(t *testing.T) {
	got, err := allocateIP(nil)
	if err != nil || got != "203.0.113.1" {
		t.Fatalf("allocateIP(nil) = %q, %v", got, err)
	}
	got, _ = allocateIP([]model.StaticIP{{IPAddress: "203.0.113.1"}, {IPAddress: "203.0.113.3"}})
	if got != "203.0.113.2" {
		t.Errorf("allocateIP = %q, want 203.0.113.2", got)
	}
}

func TestSubnetFormDerivesGatewayAndZone(t *testing.T) {
	deps, repo := testDeps(t)
	f, err := buildSubnetForm(context.Background(), deps, "research-vpc")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Values()["vpc"]; got != "research-vpc" {
		t.Errorf("vpc choice = %q, want research-vpc", got)
	}

	res, err := submitForm(t, f, FormValues{"name": "lab-subnet", "cidr": "10.3.8.0/24", "zone": "c"})
	if err != nil {
		t.Fatal(err)
	}
	s, err := repo.Subnets().Get(context.Background(), res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if s.GatewayIP != "10.3.8.1" || s.AvailabilityZone != "ap-south-1c" || s.VPCName != "research-vpc" {
		t.Errorf("subnet = %+v", s)
	}
	if res.Message != "Subnet lab-subnet created" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestSubnetFormRejectsDuplicateName(t *testing.T) {
	deps, _ := testDeps(t)
	f, err := buildSubnetForm(context.Background(), deps, "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = submitForm(t, f, FormValues{"name": "prod-web-subnet", "cidr": "10.9.0.0/24"})
	if !errors.Is(err, store.ErrExists) {
		t.Errorf("err = %v, want ErrExists", err)
	}
}

func TestSecurityGroupFormAddsDefaultEgress(t *testing.T) {
	deps, repo := testDeps(t)
	f, err := buildSecurityGroupForm(context.Background(), deps, "staging-vpc")
	if err != nil {
		t.Fatal(err)
	}
	res, err := submitForm(t, f, FormValues{"name": "app-sg"})
	if err != nil {
		t.Fatal(err)
	}
	sg, _ := repo.SecurityGroups().Get(context.Background(), res.ID)
	if len(sg.InboundRules) != 0 || len(sg.OutboundRules) != 1 || sg.OutboundRules[0].Protocol != "All" {
		t.Errorf("rules = in %v out %v", sg.InboundRules, sg.OutboundRules)
	}
}

func TestStaticIPFormAllocatesAndRejectsTakenAddress(t *testing.T) {
	deps, repo := testDeps(t)
	f, err := buildStaticIPForm(context.Background(), deps, "")
	if err != nil {
		t.Fatal(err)
	}
	res, err := submitForm(t, f, FormValues{"name": "edge-ip"})
	if err != nil {
		t.Fatal(err)
	}
	ip, _ := repo.StaticIPs().Get(context.Background(), res.ID)
	if ip.IPAddress != "203.0.113.1" {
		t.Errorf("allocated %q, want 203.0.113.1", ip.IPAddress)
	}

	_, err = submitForm(t, f, FormValues{"name": "dup-ip", "address": "198.51.100.10"})
	if !errors.Is(err, store.ErrExists) {
		t.Errorf("err = %v, want ErrExists for a taken address", err)
	}
}

func TestSnapshotFormDefaultsNameFromVolumeAndDate(t *testing.T) {
	deps, _ := testDeps(t)
	f, err := buildSnapshotForm(context.Background(), deps, "vol-1")
	if err != nil {
		t.Fatal(err)
	}
	vals := f.Values()
	if vals["name"] != "prod-db-data-20240410" {
		t.Errorf("name = %q", vals["name"])
	}
	if vals["volume"] != "prod-db-data (vol-1)" {
		t.Errorf("volume = %q", vals["volume"])
	}
	if p := f.config.Preview(vals); !strings.Contains(p, "per month") {
		t.Errorf("preview = %q", p)
	}
}

func TestSnapshotFormUnknownVolume(t *testing.T) {
	deps, _ := testDeps(t)
	_, err := buildSnapshotForm(context.Background(), deps, "vol-404")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenFormReportsMissingPrerequisite(t *testing.T) {
	deps, repo := testDeps(t)
	ctx := context.Background()
	vols, _ := repo.Volumes().List(ctx)
	for _, v := range vols {
		if err := repo.Volumes().Delete(ctx, v.ID); err != nil {
			t.Fatal(err)
		}
	}

	msg := NewBackupForm(deps, "")()
	toast, ok := msg.(showToastMsg)
	if !ok {
		t.Fatalf("msg = %T, want toast", msg)
	}
	if toast.text != "Create a volume first" || toast.level != ToastError {
		t.Errorf("toast = %+v", toast)
	}
}

func TestBackupFormStoresRetention(t *testing.T) {
	deps, repo := testDeps(t)
	f, err := buildBackupForm(context.Background(), deps, "vol-3")
	if err != nil {
		t.Fatal(err)
	}
	res, err := submitForm(t, f, FormValues{"name": "scratch-weekly", "schedule": "Weekly", "retention": "30"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := repo.Backups().Get(context.Background(), res.ID)
	if b.VolumeID != "vol-3" || b.RetentionDays != 30 || b.Schedule != "Weekly" {
		t.Errorf("backup = %+v", b)
	}
}

func TestRuleFormForcesAllPortsForICMP(t *testing.T) {
	deps, repo := testDeps(t)
	sg, _ := repo.SecurityGroups().Get(context.Background(), "sg-1")
	f := NewRuleForm(deps, sg, ruleInbound)

	res, err := submitForm(t, f, FormValues{"protocol": "ICMP", "ports": "22"})
	if err != nil {
		t.Fatal(err)
	}
	updated, _ := repo.SecurityGroups().Get(context.Background(), "sg-1")
	last := updated.InboundRules[len(updated.InboundRules)-1]
	if last.PortRange != "All" || last.Protocol != "ICMP" {
		t.Errorf("rule = %+v", last)
	}
	if !strings.HasPrefix(last.ID, "rule-") {
		t.Errorf("rule id = %q", last.ID)
	}
	if res.Kind != model.KindSecurityGroup || res.ID != "sg-1" {
		t.Errorf("result = %+v", res)
	}
}

func TestExtendVolumeOnlyGrows(t *testing.T) {
	deps, repo := testDeps(t)
	vol, _ := repo.Volumes().Get(context.Background(), "vol-2")
	f := NewExtendVolumeForm(deps, vol)

	if validate := f.fields[0].Validate; validate("200") == nil {
		t.Error("same size should fail validation")
	}
	if _, err := submitForm(t, f, FormValues{"size": "150"}); err == nil {
		t.Error("shrinking should fail")
	}

	if _, err := submitForm(t, f, FormValues{"size": "2000"}); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Volumes().Get(context.Background(), "vol-2")
	if got.SizeGB != 2000 || got.IOPS != 6000 {
		t.Errorf("volume = %d GB %d IOPS, want 2000 GB 6000 IOPS", got.SizeGB, got.IOPS)
	}
}

func TestConnectSubnetForm(t *testing.T) {
	deps, repo := testDeps(t)
	ctx := context.Background()
	s, _ := repo.Subnets().Get(ctx, "subnet-5")
	peer, _ := repo.Subnets().Get(ctx, "subnet-6")
	f := NewConnectSubnetForm(deps, s, []model.Subnet{peer})

	if _, err := submitForm(t, f, nil); err != nil {
		t.Fatal(err)
	}
	conns, _ := repo.ConnectedSubnets(ctx, "subnet-5")
	found := false
	for _, id := range conns {
		found = found || id == "subnet-6"
	}
	if !found {
		t.Errorf("connections = %v, want subnet-6", conns)
	}
}
