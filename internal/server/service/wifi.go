// Package service resolves wireless interface policy: detected
// identity, user overrides and the profile catalog merged into one
// effective record per interface.
package service

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/adapter"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/catalog"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/store"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
)

// WifiService owns the resolved card list. The list is rebuilt from
// scratch and swapped atomically on every refresh; readers always see
// a complete snapshot. First use initializes it lazily.
type WifiService struct {
	adapter   *adapter.SysfsAdapter
	catalog   *catalog.Catalog
	typeStore *store.TypeOverrideStore
	txStore   *store.TxPowerStore
	logger    *zap.Logger

	mu          sync.Mutex
	cards       []types.WifiCardInfo
	initialized bool
}

// NewWifiService creates a WifiService over the given collaborators.
func NewWifiService(
	sysfs *adapter.SysfsAdapter,
	cat *catalog.Catalog,
	typeStore *store.TypeOverrideStore,
	txStore *store.TxPowerStore,
	logger *zap.Logger,
) *WifiService {
	return &WifiService{
		adapter:   sysfs,
		catalog:   cat,
		typeStore: typeStore,
		txStore:   txStore,
		logger:    logger,
	}
}

// Refresh rebuilds the card list from hardware, overrides and catalog.
func (s *WifiService) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
}

func (s *WifiService) refreshLocked() {
	overrides := s.typeStore.Load()
	txOverrides := s.txStore.Load()
	profiles := s.catalog.Load()

	var cards []types.WifiCardInfo
	for _, iface := range s.adapter.ListWireless() {
		cards = append(cards, s.buildCard(iface, overrides, txOverrides, profiles))
	}
	s.cards = cards
	s.initialized = true
	s.logger.Debug("wifi card list refreshed", zap.Int("cards", len(cards)))
}

// Cards returns the current snapshot, resolving it on first use.
func (s *WifiService) Cards() []types.WifiCardInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		s.refreshLocked()
	}
	snapshot := make([]types.WifiCardInfo, len(s.cards))
	copy(snapshot, s.cards)
	return snapshot
}

// HasWifibroadcastCards reports whether any enabled card resolves to an
// OpenHD wifibroadcast type.
func (s *WifiService) HasWifibroadcastCards() bool {
	for _, card := range s.Cards() {
		if card.Disabled {
			continue
		}
		if types.IsWifibroadcastType(card.EffectiveType) {
			return true
		}
	}
	return false
}

// buildCard resolves one interface against the loaded override maps
// and profile list.
func (s *WifiService) buildCard(
	iface string,
	overrides map[string]string,
	txOverrides map[string]types.TxPowerOverride,
	profiles []types.CardProfile,
) types.WifiCardInfo {
	id := s.adapter.Identity(iface)
	card := types.WifiCardInfo{
		InterfaceName: iface,
		DriverName:    id.Driver,
		PhyIndex:      id.PhyIndex,
		MAC:           id.MAC,
		VendorID:      id.VendorID,
		DeviceID:      id.DeviceID,
	}

	card.DetectedType = adapter.DriverToType(card.DriverName)
	if override, ok := overrides[iface]; ok {
		card.OverrideType = override
		if strings.EqualFold(override, types.DisabledOverride) {
			// Disabled cards keep the detected type and stay fully
			// described; they are only excluded from downstream use.
			card.Disabled = true
			card.EffectiveType = card.DetectedType
		} else {
			card.EffectiveType = override
		}
	} else {
		card.EffectiveType = card.DetectedType
	}

	profile := catalog.Find(profiles, card.VendorID, card.DeviceID, card.DetectedType)
	txOverride, hasTxOverride := txOverrides[iface]
	if hasTxOverride && txOverride.HasPin() {
		chipset := txOverride.ProfileChipset
		if chipset == "" {
			chipset = card.DetectedType
		}
		pinned := catalog.Find(profiles, txOverride.ProfileVendorID, txOverride.ProfileDeviceID, chipset)
		if pinned == nil {
			pinned = catalog.Find(profiles, txOverride.ProfileVendorID, txOverride.ProfileDeviceID, "")
		}
		if pinned != nil {
			profile = pinned
		}
	}

	profileFixed := profile != nil && profile.IsFixed()
	if profile != nil {
		if card.CardName == "" {
			card.CardName = profile.Name
		}
		card.PowerMode = profile.PowerMode
		card.PowerLowest = stringIfPositive(profile.LowestMW)
		card.PowerLow = stringIfPositive(profile.LowMW)
		card.PowerMid = stringIfPositive(profile.MidMW)
		card.PowerHigh = stringIfPositive(profile.HighMW)
		card.PowerMin = stringIfPositive(profile.MinMW)
		card.PowerMax = stringIfPositive(profile.MaxMW)
	}

	// Explicit user values are applied after profile derivation and win
	// over profile defaults.
	if hasTxOverride {
		card.TxPower = txOverride.TxPower
		card.TxPowerHigh = txOverride.TxPowerHigh
		card.TxPowerLow = txOverride.TxPowerLow
		if txOverride.CardName != "" {
			card.CardName = txOverride.CardName
		}
		card.PowerLevel = txOverride.PowerLevel
	}

	if card.PowerLevel != "" {
		card.PowerLevel = strings.ToUpper(card.PowerLevel)
	}

	// A symbolic level re-derives the numeric power on every cycle, so
	// catalog changes take effect without touching the override file.
	if profile != nil && card.PowerLevel != "" && !profileFixed {
		if selected := profile.LevelMW(card.PowerLevel); selected > 0 {
			card.TxPower = strconv.Itoa(selected)
		}
	}

	// The fixed-power rule runs last and always wins.
	if profileFixed {
		card.PowerLevel = types.PowerLevelFixed
		card.TxPower = ""
	}

	if card.TxPowerHigh == "" && profile != nil && profile.HighMW > 0 {
		card.TxPowerHigh = strconv.Itoa(profile.HighMW)
	}
	if card.TxPowerLow == "" && profile != nil && profile.LowestMW > 0 {
		card.TxPowerLow = strconv.Itoa(profile.LowestMW)
	}

	return card
}

func stringIfPositive(value int) string {
	if value <= 0 {
		return ""
	}
	return strconv.Itoa(value)
}
