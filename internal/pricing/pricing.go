// Package pricing estimates monthly storage and address costs shown in the
// create forms and detail pages.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// HoursPerMonth is the billing month used for hourly rates.
var HoursPerMonth = decimal.NewFromInt(730)

// Per GB-month unless noted.
var (
	SSDRate      = decimal.RequireFromString("0.10")
	HDDRate      = decimal.RequireFromString("0.045")
	SnapshotRate = decimal.RequireFromString("0.05")
	BackupRate   = decimal.RequireFromString("0.03")
	// StaticIPHourly is charged per hour whether or not the address is in use.
	StaticIPHourly = decimal.RequireFromString("0.005")
)

// VolumeRate returns the GB-month rate for a volume type. Unknown types are
// billed as SSD.
func VolumeRate(volumeType string) decimal.Decimal {
	if strings.EqualFold(volumeType, "HDD") {
		return HDDRate
	}
	return SSDRate
}

func VolumeMonthly(volumeType string, sizeGB int) decimal.Decimal {
	return VolumeRate(volumeType).Mul(gb(sizeGB))
}

func SnapshotMonthly(sizeGB int) decimal.Decimal {
	return SnapshotRate.Mul(gb(sizeGB))
}

// BackupMonthly bills the retained copies of a volume. A zero retention counts
// as a single copy.
func BackupMonthly(sizeGB, retentionDays int) decimal.Decimal {
	copies := int64(1)
	if retentionDays > 1 {
		copies = int64(retentionDays)
	}
	return BackupRate.Mul(gb(sizeGB)).Mul(decimal.NewFromInt(copies))
}

func StaticIPMonthly() decimal.Decimal {
	return StaticIPHourly.Mul(HoursPerMonth)
}

// Format renders a monthly amount as "$12.50/mo".
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2) + "/mo"
}

func gb(sizeGB int) decimal.Decimal {
	if sizeGB < 0 {
		sizeGB = 0
	}
	return decimal.NewFromInt(int64(sizeGB))
}
