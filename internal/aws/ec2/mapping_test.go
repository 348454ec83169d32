package ec2

import (
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

func TestNormalizeProtocol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-1", "All"},
		{"6", "TCP"},
		{"17", "UDP"},
		{"1", "ICMP"},
		{"47", "47"},
		{"", ""},
		{"tcp", "TCP"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeProtocol(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeProtocol(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPortRange(t *testing.T) {
	tests := []struct {
		name string
		perm types.IpPermission
		want string
	}{
		{"all protocols", types.IpPermission{IpProtocol: awssdk.String("-1")}, "All"},
		{"single port", types.IpPermission{IpProtocol: awssdk.String("tcp"), FromPort: awssdk.Int32(22), ToPort: awssdk.Int32(22)}, "22"},
		{"range", types.IpPermission{IpProtocol: awssdk.String("udp"), FromPort: awssdk.Int32(7777), ToPort: awssdk.Int32(7787)}, "7777-7787"},
		{"no ports", types.IpPermission{IpProtocol: awssdk.String("tcp")}, "All"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := portRange(tt.perm); got != tt.want {
				t.Errorf("portRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGatewayIP(t *testing.T) {
	tests := []struct {
		cidr string
		want string
	}{
		{"10.0.1.0/24", "10.0.1.1"},
		{"10.4.0.0/22", "10.4.0.1"},
		{"10.0.1.17/24", "10.0.1.1"},
		{"garbage", ""},
	}
	for _, tt := range tests {
		if got := gatewayIP(tt.cidr); got != tt.want {
			t.Errorf("gatewayIP(%q) = %q, want %q", tt.cidr, got, tt.want)
		}
	}
}

func TestStateLabel(t *testing.T) {
	tests := map[string]string{
		"available": "Available",
		"completed": "Available",
		"in-use":    "In Use",
		"pending":   "Creating",
		"error":     "Failed",
		"deleting":  "Deleting",
		"":          "Unknown",
	}
	for in, want := range tests {
		if got := stateLabel(in); got != want {
			t.Errorf("stateLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVolumeClass(t *testing.T) {
	for _, vt := range []types.VolumeType{types.VolumeTypeGp2, types.VolumeTypeGp3, types.VolumeTypeIo1, types.VolumeTypeIo2} {
		if got := volumeClass(vt); got != "SSD" {
			t.Errorf("volumeClass(%s) = %s, want SSD", vt, got)
		}
	}
	for _, vt := range []types.VolumeType{types.VolumeTypeSt1, types.VolumeTypeSc1, types.VolumeTypeStandard} {
		if got := volumeClass(vt); got != "HDD" {
			t.Errorf("volumeClass(%s) = %s, want HDD", vt, got)
		}
	}
}
