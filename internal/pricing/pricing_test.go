package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVolumeMonthly(t *testing.T) {
	tests := []struct {
		volType string
		size    int
		want    string
	}{
		{"SSD", 500, "50.00"},
		{"HDD", 1000, "45.00"},
		{"hdd", 200, "9.00"},
		{"", 10, "1.00"},
		{"SSD", -5, "0.00"},
	}
	for _, tt := range tests {
		got := VolumeMonthly(tt.volType, tt.size)
		assert.Equal(t, tt.want, got.StringFixed(2), "%s %dGB", tt.volType, tt.size)
	}
}

func TestSnapshotAndBackupMonthly(t *testing.T) {
	assert.Equal(t, "25.00", SnapshotMonthly(500).StringFixed(2))
	assert.Equal(t, "6.00", BackupMonthly(200, 1).StringFixed(2))
	assert.Equal(t, "6.00", BackupMonthly(200, 0).StringFixed(2))
	assert.Equal(t, "42.00", BackupMonthly(200, 7).StringFixed(2))
}

func TestStaticIPMonthly(t *testing.T) {
	assert.True(t, StaticIPMonthly().Equal(decimal.RequireFromString("3.65")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$3.65/mo", Format(StaticIPMonthly()))
	assert.Equal(t, "$0.00/mo", Format(decimal.Zero))
}
