package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"tasnim.dev/cloud-console/internal/model"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"vpc-1", 8, "vpc-1   "},
		{"exact", 5, "exact"},
		{"production-vpc", 10, "product..."},
	}
	for _, tt := range tests {
		if got := padRight(tt.in, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight_WideRunes(t *testing.T) {
	got := padRight("日本", 6)
	if w := runewidth.StringWidth(got); w != 6 {
		t.Errorf("display width = %d, want 6", w)
	}
}

func TestTable_Render(t *testing.T) {
	vpcs := []model.VPC{
		{ID: "vpc-3", Name: "gaming-vpc", Status: "Active", Type: "Paid", Region: "us-west-2", Resources: []model.VPCResource{{Type: "VM", Count: 1}, {Type: "Volume", Count: 1}}},
		{ID: "vpc-4", Name: "research-vpc", Status: "Active", Type: "Free", Region: "eu-west-1"},
	}

	var buf bytes.Buffer
	if err := VPCTable(vpcs).Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"╭", "╯", "gaming-vpc", "research-vpc", "● Active", "  2 VPCs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// top, header, separator, 2 rows, bottom, summary
	if lines := strings.Count(out, "\n"); lines != 7 {
		t.Errorf("line count = %d, want 7", lines)
	}
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := VolumeTable(nil).Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "  0 volumes") {
		t.Errorf("summary missing:\n%s", buf.String())
	}
}

func TestStatusText(t *testing.T) {
	tests := map[string]string{
		"Active":   "● Active",
		"In Use":   "● In Use",
		"Creating": "◐ Creating",
		"Failed":   "✕ Failed",
		"Inactive": "○ Inactive",
	}
	for in, want := range tests {
		if got, _ := statusText(in); got != want {
			t.Errorf("statusText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetail(t *testing.T) {
	sg := model.SecurityGroup{
		ID: "sg-1", Name: "web-sg",
		InboundRules: []model.Rule{{ID: "rule-1", Protocol: "TCP", PortRange: "443", RemoteIPPrefix: "0.0.0.0/0", Description: "HTTPS"}},
	}
	var buf bytes.Buffer
	err := Detail(&buf, "Security Group web-sg",
		[]Field{{"ID", sg.ID}, {"Description", ""}},
		Section{Title: "Inbound Rules", Fields: RuleFields(sg.InboundRules)},
		Section{Title: "Outbound Rules"},
	)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Security Group web-sg", "sg-1", "TCP 443 from 0.0.0.0/0  (HTTPS)", "(none)", "  -\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSubnetDetail_WithVMAndConnections(t *testing.T) {
	s := model.Subnet{ID: "subnet-1", Name: "prod-web-subnet", CIDR: "10.0.1.0/24"}
	vm := &model.VMAttachment{VMID: "vm-101", VMName: "web-server-01", IPAddress: "10.0.1.15"}

	var buf bytes.Buffer
	if err := SubnetDetail(&buf, s, vm, []string{"prod-db-subnet"}); err != nil {
		t.Fatalf("SubnetDetail: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Subnet prod-web-subnet", "10.0.1.0/24", "web-server-01 (vm-101)", "10.0.1.15", "prod-db-subnet"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBackupDetail_MissingVolume(t *testing.T) {
	var buf bytes.Buffer
	if err := BackupDetail(&buf, model.Backup{ID: "bkp-9", Name: "orphan", RetentionDays: 7}, 0); err != nil {
		t.Fatalf("BackupDetail: %v", err)
	}
	if strings.Contains(buf.String(), "$") {
		t.Errorf("orphaned backup should not be priced:\n%s", buf.String())
	}
}
