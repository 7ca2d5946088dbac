package types

// Power modes for a card profile.
const (
	PowerModeMW    = "MW"
	PowerModeFixed = "FIXED"
)

// Symbolic power levels resolved against a profile's milliwatt figures.
const (
	PowerLevelLowest = "LOWEST"
	PowerLevelLow    = "LOW"
	PowerLevelMid    = "MID"
	PowerLevelHigh   = "HIGH"
	PowerLevelFixed  = "FIXED"
)

// CardProfile is a static chipset descriptor from the profile catalog.
// IDs are stored normalized ("0x" + uppercase hex). When PowerMode is
// FIXED all milliwatt figures are zero and unused.
type CardProfile struct {
	VendorID  string `json:"vendor_id"`
	DeviceID  string `json:"device_id"`
	Chipset   string `json:"chipset,omitempty"`
	Name      string `json:"name,omitempty"`
	PowerMode string `json:"power_mode"`
	MinMW     int    `json:"min_mw,omitempty"`
	MaxMW     int    `json:"max_mw,omitempty"`
	LowestMW  int    `json:"lowest,omitempty"`
	LowMW     int    `json:"low,omitempty"`
	MidMW     int    `json:"mid,omitempty"`
	HighMW    int    `json:"high,omitempty"`
}

// IsFixed reports whether the profile describes hardware whose transmit
// power is not software adjustable.
func (p *CardProfile) IsFixed() bool {
	return NormalizeChipset(p.PowerMode) == PowerModeFixed
}

// LevelMW returns the milliwatt figure backing a symbolic power level,
// or zero for an unknown level.
func (p *CardProfile) LevelMW(level string) int {
	switch level {
	case PowerLevelLowest:
		return p.LowestMW
	case PowerLevelLow:
		return p.LowMW
	case PowerLevelMid:
		return p.MidMW
	case PowerLevelHigh:
		return p.HighMW
	}
	return 0
}
