// Package catalog loads the known-chipset power profile catalog.
package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/jsontext"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/utils"
)

// Catalog resolves card profiles from a JSON catalog file, falling
// back to built-in defaults when the file is missing or yields nothing.
type Catalog struct {
	path   string
	logger *zap.Logger
}

// New creates a Catalog reading from the given file path.
func New(path string, logger *zap.Logger) *Catalog {
	return &Catalog{path: path, logger: logger}
}

// Load returns the ordered, non-empty profile list for one resolution
// cycle.
func (c *Catalog) Load() []types.CardProfile {
	content := utils.ReadFileString(c.path)
	if content == "" {
		return DefaultProfiles()
	}
	objects := jsontext.ArrayObjects(content, "cards")
	if len(objects) == 0 {
		c.logger.Warn("card catalog has no cards array, using defaults",
			zap.String("path", c.path))
		return DefaultProfiles()
	}

	var profiles []types.CardProfile
	for _, object := range objects {
		profile, ok := parseProfile(object)
		if !ok {
			continue
		}
		profiles = append(profiles, profile)
	}
	if len(profiles) == 0 {
		return DefaultProfiles()
	}
	return profiles
}

// parseProfile parses one catalog object. Objects without both IDs are
// skipped.
func parseProfile(object string) (types.CardProfile, bool) {
	var profile types.CardProfile

	vendor, vendorOK := jsontext.StringField(object, "vendor_id")
	device, deviceOK := jsontext.StringField(object, "device_id")
	if !vendorOK || !deviceOK {
		return profile, false
	}
	profile.VendorID = types.NormalizeID(vendor)
	profile.DeviceID = types.NormalizeID(device)

	chipset, _ := jsontext.StringField(object, "chipset")
	profile.Chipset = types.NormalizeChipset(chipset)
	profile.Name, _ = jsontext.StringField(object, "name")

	mode, ok := jsontext.StringField(object, "power_mode")
	if !ok {
		mode = types.PowerModeMW
	}
	profile.PowerMode = strings.ToUpper(mode)
	if profile.PowerMode == types.PowerModeFixed {
		return profile, true
	}

	profile.MinMW, _ = jsontext.IntField(object, "min_mw")
	profile.MaxMW, _ = jsontext.IntField(object, "max_mw")
	profile.LowestMW, _ = jsontext.IntField(object, "lowest")
	profile.LowMW, _ = jsontext.IntField(object, "low")
	profile.MidMW, _ = jsontext.IntField(object, "mid")
	profile.HighMW, _ = jsontext.IntField(object, "high")

	// Nested levels only fill genuine gaps; flat values win.
	if levels, ok := jsontext.ObjectField(object, "levels_mw"); ok {
		if profile.LowestMW <= 0 {
			profile.LowestMW, _ = jsontext.IntField(levels, "lowest")
		}
		if profile.LowMW <= 0 {
			profile.LowMW, _ = jsontext.IntField(levels, "low")
		}
		if profile.MidMW <= 0 {
			profile.MidMW, _ = jsontext.IntField(levels, "mid")
		}
		if profile.HighMW <= 0 {
			profile.HighMW, _ = jsontext.IntField(levels, "high")
		}
	}

	backfill(&profile)
	return profile, true
}

// backfill fills any figure still <= 0 from the first positive value
// in a fixed priority order specific to that figure.
func backfill(p *types.CardProfile) {
	if p.MinMW <= 0 {
		p.MinMW = firstPositive(p.LowestMW, p.LowMW, p.MidMW, p.HighMW)
	}
	if p.MaxMW <= 0 {
		p.MaxMW = firstPositive(p.HighMW, p.MidMW, p.LowMW, p.LowestMW)
	}
	if p.LowestMW <= 0 {
		p.LowestMW = firstPositive(p.LowMW, p.MidMW, p.HighMW, p.MinMW)
	}
	if p.LowMW <= 0 {
		p.LowMW = firstPositive(p.LowestMW, p.MidMW, p.HighMW, p.MinMW)
	}
	if p.MidMW <= 0 {
		p.MidMW = firstPositive(p.LowMW, p.HighMW, p.MaxMW)
	}
	if p.HighMW <= 0 {
		p.HighMW = firstPositive(p.MaxMW, p.MidMW, p.LowMW, p.LowestMW)
	}
}

func firstPositive(values ...int) int {
	for _, value := range values {
		if value > 0 {
			return value
		}
	}
	return 0
}

// DefaultProfiles returns the compiled-in catalog: the fixed-power
// Raspberry onboard adapter and a variable-power USB adapter.
func DefaultProfiles() []types.CardProfile {
	return []types.CardProfile{
		{
			VendorID:  types.NormalizeID("0x02D0"),
			DeviceID:  types.NormalizeID("0xA9A6"),
			Chipset:   types.NormalizeChipset("BROADCOM"),
			Name:      "Raspberry Internal",
			PowerMode: types.PowerModeFixed,
		},
		{
			VendorID:  types.NormalizeID("0x0BDA"),
			DeviceID:  types.NormalizeID("0xA81A"),
			Chipset:   types.NormalizeChipset("OPENHD_RTL_88X2EU"),
			Name:      "LB-Link 8812eu",
			PowerMode: types.PowerModeMW,
			MinMW:     25,
			MaxMW:     1000,
			LowestMW:  25,
			LowMW:     100,
			MidMW:     500,
			HighMW:    1000,
		},
	}
}

// Find scans the profiles for a vendor/device match. Precedence:
// exact chipset match, then the first generic (chipset-less) match,
// then the first vendor/device match in list order. Returns nil when
// nothing matches.
func Find(profiles []types.CardProfile, vendorID, deviceID, chipset string) *types.CardProfile {
	var vendorDeviceMatch *types.CardProfile
	var genericMatch *types.CardProfile
	for i := range profiles {
		profile := &profiles[i]
		if !strings.EqualFold(profile.VendorID, vendorID) ||
			!strings.EqualFold(profile.DeviceID, deviceID) {
			continue
		}
		if profile.Chipset == "" {
			if genericMatch == nil {
				genericMatch = profile
			}
		} else if strings.EqualFold(profile.Chipset, chipset) {
			return profile
		}
		if vendorDeviceMatch == nil {
			vendorDeviceMatch = profile
		}
	}
	if genericMatch != nil {
		return genericMatch
	}
	return vendorDeviceMatch
}
