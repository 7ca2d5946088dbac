package types

// DisabledOverride is the type-override sentinel that excludes a card
// from downstream use while keeping it fully described.
const DisabledOverride = "DISABLED"

// AutoOverride clears an override when supplied as its value.
const AutoOverride = "AUTO"

// TxPowerOverride is the per-interface transmit-power override record
// persisted in the power-override store. All fields are optional; a
// record with every field empty is garbage-collected on write.
type TxPowerOverride struct {
	TxPower     string
	TxPowerHigh string
	TxPowerLow  string
	CardName    string
	PowerLevel  string

	// Profile pin: when both vendor and device are set, profile lookup
	// uses these instead of the detected identity.
	ProfileVendorID string
	ProfileDeviceID string
	ProfileChipset  string
}

// Empty reports whether the record carries no values at all.
func (o *TxPowerOverride) Empty() bool {
	return o.TxPower == "" && o.TxPowerHigh == "" && o.TxPowerLow == "" &&
		o.CardName == "" && o.PowerLevel == "" &&
		o.ProfileVendorID == "" && o.ProfileDeviceID == "" &&
		o.ProfileChipset == ""
}

// HasPin reports whether the record pins profile lookup to an explicit
// vendor/device pair.
func (o *TxPowerOverride) HasPin() bool {
	return o.ProfileVendorID != "" && o.ProfileDeviceID != ""
}
