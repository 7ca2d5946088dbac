// Package types provides shared data types
package types

import "strings"

// WifiCardInfo is the fully resolved view of one wireless interface.
// It is rebuilt from scratch on every resolution cycle and never
// partially mutated; consumers always see a complete record.
type WifiCardInfo struct {
	InterfaceName string `json:"interface"`
	DriverName    string `json:"driver"`
	PhyIndex      int    `json:"phy_index"`
	MAC           string `json:"mac"`
	VendorID      string `json:"vendor_id"`
	DeviceID      string `json:"device_id"`

	DetectedType  string `json:"detected_type"`
	OverrideType  string `json:"override_type"`
	EffectiveType string `json:"type"`
	Disabled      bool   `json:"disabled"`

	TxPower     string `json:"tx_power"`
	TxPowerHigh string `json:"tx_power_high"`
	TxPowerLow  string `json:"tx_power_low"`
	CardName    string `json:"card_name"`
	PowerMode   string `json:"power_mode"`
	PowerLevel  string `json:"power_level"`
	PowerLowest string `json:"power_lowest"`
	PowerLow    string `json:"power_low"`
	PowerMid    string `json:"power_mid"`
	PowerHigh   string `json:"power_high"`
	PowerMin    string `json:"power_min"`
	PowerMax    string `json:"power_max"`
}

// NormalizeID canonicalizes a vendor or device ID to the form
// "0x" + uppercase hex. Empty input stays empty. Idempotent.
func NormalizeID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return "0x" + strings.ToUpper(value[2:])
	}
	return "0x" + strings.ToUpper(value)
}

// NormalizeChipset trims and uppercases a chipset discriminator.
func NormalizeChipset(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IsWifibroadcastType reports whether a card type participates in
// OpenHD wifibroadcast, i.e. starts with "OPENHD_" after trimming
// and case folding.
func IsWifibroadcastType(typeName string) bool {
	upper := strings.ToUpper(strings.TrimSpace(typeName))
	if upper == "" {
		return false
	}
	return strings.HasPrefix(upper, "OPENHD_")
}
