package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/utils"
)

// TxPowerStore persists per-interface transmit-power override records.
// Keys on disk are "interface.field" with field names matched
// case-insensitively.
type TxPowerStore struct {
	path   string
	logger *zap.Logger
}

// NewTxPowerStore creates a store backed by the given file.
func NewTxPowerStore(path string, logger *zap.Logger) *TxPowerStore {
	return &TxPowerStore{path: path, logger: logger}
}

// Load reads the override file. Unknown fields are dropped; vendor and
// device values are ID-normalized and chipsets uppercased on load.
func (s *TxPowerStore) Load() map[string]types.TxPowerOverride {
	overrides := make(map[string]types.TxPowerOverride)
	content := utils.ReadFileString(s.path)
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := parseDirective(line)
		if !ok {
			continue
		}
		dot := strings.IndexByte(key, '.')
		if dot < 0 {
			continue
		}
		iface := strings.TrimSpace(key[:dot])
		field := strings.TrimSpace(key[dot+1:])
		if iface == "" || field == "" {
			continue
		}

		entry := overrides[iface]
		switch strings.ToUpper(field) {
		case "TX_POWER":
			entry.TxPower = value
		case "TX_POWER_HIGH":
			entry.TxPowerHigh = value
		case "TX_POWER_LOW":
			entry.TxPowerLow = value
		case "CARD_NAME":
			entry.CardName = value
		case "POWER_LEVEL":
			entry.PowerLevel = value
		case "PROFILE_VENDOR_ID":
			entry.ProfileVendorID = types.NormalizeID(value)
		case "PROFILE_DEVICE_ID":
			entry.ProfileDeviceID = types.NormalizeID(value)
		case "PROFILE_CHIPSET":
			entry.ProfileChipset = types.NormalizeChipset(value)
		default:
			continue
		}
		overrides[iface] = entry
	}
	return overrides
}

// txPowerFields fixes the on-disk field emission order: profile pin
// fields, then name and level, then raw power fields. The order is
// deliberate and keeps the file diff-stable across runs; never replace
// it with map iteration.
var txPowerFields = []struct {
	name     string
	accessor func(*types.TxPowerOverride) string
}{
	{"profile_vendor_id", func(o *types.TxPowerOverride) string { return o.ProfileVendorID }},
	{"profile_device_id", func(o *types.TxPowerOverride) string { return o.ProfileDeviceID }},
	{"profile_chipset", func(o *types.TxPowerOverride) string { return o.ProfileChipset }},
	{"card_name", func(o *types.TxPowerOverride) string { return o.CardName }},
	{"power_level", func(o *types.TxPowerOverride) string { return o.PowerLevel }},
	{"tx_power", func(o *types.TxPowerOverride) string { return o.TxPower }},
	{"tx_power_high", func(o *types.TxPowerOverride) string { return o.TxPowerHigh }},
	{"tx_power_low", func(o *types.TxPowerOverride) string { return o.TxPowerLow }},
}

// Save writes the override records back, omitting interfaces whose
// record is entirely empty.
func (s *TxPowerStore) Save(overrides map[string]types.TxPowerOverride) error {
	var out strings.Builder
	out.WriteString("# OpenHD SysUtils Wi-Fi TX power overrides\n")
	for _, iface := range sortedKeys(overrides) {
		entry := overrides[iface]
		if entry.Empty() {
			continue
		}
		for _, field := range txPowerFields {
			if value := field.accessor(&entry); value != "" {
				fmt.Fprintf(&out, "%s.%s=%s\n", iface, field.name, value)
			}
		}
	}
	if err := utils.AtomicWriteFile(s.path, []byte(out.String()), 0644); err != nil {
		s.logger.Error("failed to write tx power overrides",
			zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}
