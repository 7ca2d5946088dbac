package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
)

// Update actions accepted by ApplyUpdate. Callers that default an
// absent action do so before calling; anything else, the empty string
// included, fails.
const (
	ActionSet     = "set"
	ActionClear   = "clear"
	ActionRefresh = "refresh"
	ActionDetect  = "detect"
)

// UpdateRequest carries one mutation request. Nil pointer fields were
// absent from the request; present-but-empty values are meaningful
// (they clear the corresponding override).
type UpdateRequest struct {
	Action    string
	Interface string

	OverrideType *string

	TxPower         *string
	TxPowerHigh     *string
	TxPowerLow      *string
	CardName        *string
	PowerLevel      *string
	ProfileVendorID *string
	ProfileDeviceID *string
	ProfileChipset  *string
}

func (r *UpdateRequest) hasTxPowerFields() bool {
	return r.TxPower != nil || r.TxPowerHigh != nil || r.TxPowerLow != nil ||
		r.CardName != nil || r.PowerLevel != nil ||
		r.ProfileVendorID != nil || r.ProfileDeviceID != nil ||
		r.ProfileChipset != nil
}

// ApplyUpdate applies one update request transactionally against both
// override stores and reports overall success. Store contents are
// loaded, mutated and written back under the service lock; one store
// failing to write does not prevent attempting the other. On success
// the card list is rebuilt before returning.
func (s *WifiService) ApplyUpdate(req *UpdateRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := true
	overrides := s.typeStore.Load()
	txOverrides := s.txStore.Load()

	switch req.Action {
	case ActionSet:
		if req.Interface == "" {
			ok = false
			break
		}
		if req.OverrideType != nil {
			if *req.OverrideType == "" || strings.EqualFold(*req.OverrideType, types.AutoOverride) {
				delete(overrides, req.Interface)
			} else {
				overrides[req.Interface] = *req.OverrideType
			}
			ok = s.typeStore.Save(overrides) == nil && ok
		}
		if req.hasTxPowerFields() {
			entry := txOverrides[req.Interface]
			mergeTxPowerFields(&entry, req)
			if entry.Empty() {
				delete(txOverrides, req.Interface)
			} else {
				txOverrides[req.Interface] = entry
			}
			ok = s.txStore.Save(txOverrides) == nil && ok
		}

	case ActionClear:
		if req.Interface != "" {
			delete(overrides, req.Interface)
			delete(txOverrides, req.Interface)
		} else {
			overrides = map[string]string{}
			txOverrides = map[string]types.TxPowerOverride{}
		}
		typeOK := s.typeStore.Save(overrides) == nil
		txOK := s.txStore.Save(txOverrides) == nil
		ok = typeOK && txOK

	case ActionRefresh, ActionDetect:
		ok = true

	default:
		s.logger.Warn("unknown wifi update action", zap.String("action", req.Action))
		ok = false
	}

	if ok {
		s.refreshLocked()
	}
	return ok
}

// mergeTxPowerFields merges the present request fields into the
// record. Setting a power level clears all three raw tx-power fields,
// including ones supplied in the same request: the symbolic level wins
// over explicit numeric values on a simultaneous update.
func mergeTxPowerFields(entry *types.TxPowerOverride, req *UpdateRequest) {
	if req.TxPower != nil {
		entry.TxPower = *req.TxPower
	}
	if req.TxPowerHigh != nil {
		entry.TxPowerHigh = *req.TxPowerHigh
	}
	if req.TxPowerLow != nil {
		entry.TxPowerLow = *req.TxPowerLow
	}
	if req.CardName != nil {
		entry.CardName = *req.CardName
	}
	if req.PowerLevel != nil {
		if *req.PowerLevel == "" || strings.EqualFold(*req.PowerLevel, types.AutoOverride) {
			entry.PowerLevel = ""
		} else {
			entry.PowerLevel = strings.ToUpper(strings.TrimSpace(*req.PowerLevel))
		}
		entry.TxPower = ""
		entry.TxPowerHigh = ""
		entry.TxPowerLow = ""
	}
	if req.ProfileVendorID != nil || req.ProfileDeviceID != nil || req.ProfileChipset != nil {
		vendor := stringOrEmpty(req.ProfileVendorID)
		device := stringOrEmpty(req.ProfileDeviceID)
		chipset := stringOrEmpty(req.ProfileChipset)
		if vendor == "" || device == "" {
			entry.ProfileVendorID = ""
			entry.ProfileDeviceID = ""
			entry.ProfileChipset = ""
		} else {
			entry.ProfileVendorID = types.NormalizeID(vendor)
			entry.ProfileDeviceID = types.NormalizeID(device)
			entry.ProfileChipset = types.NormalizeChipset(chipset)
		}
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
