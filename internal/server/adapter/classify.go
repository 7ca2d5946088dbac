package adapter

import "strings"

// exactDriverTypes maps driver module names (uppercased) that classify
// on exact match.
var exactDriverTypes = map[string]string{
	"RTL88XXAU_OHD": "OPENHD_RTL_88X2AU",
	"RTL88X2AU_OHD": "OPENHD_RTL_88X2CU",
	"RTL88X2BU_OHD": "OPENHD_RTL_88X2BU",
	"RTL88X2EU_OHD": "OPENHD_RTL_88X2EU",
	"CNSS_PCI":      "QUALCOMM",
	"RTL8852BU_OHD": "OPENHD_RTL_8852BU",
	"RTL88X2CU_OHD": "OPENHD_RTL_88X2CU",
}

// substringDriverTypes classify on case-insensitive containment, in
// order.
var substringDriverTypes = []struct {
	needle   string
	cardType string
}{
	{"ATH9K", "ATHEROS"},
	{"RT2800USB", "RALINK"},
	{"IWLWIFI", "INTEL"},
	{"BRCMFMAC", "BROADCOM"},
	{"BCMSDH_SDMMC", "BROADCOM"},
	{"AICWF_SDIO", "AIC"},
	{"88XXAU", "RTL_88X2AU"},
	{"RTW_8822BU", "RTL_88X2BU"},
	{"MT7921U", "MT_7921u"},
}

// UnknownType is the classification for drivers not in the table.
const UnknownType = "UNKNOWN"

// DriverToType maps a driver module name to the card classification
// used for downstream behavior.
func DriverToType(driverName string) string {
	upper := strings.ToUpper(driverName)
	if cardType, ok := exactDriverTypes[upper]; ok {
		return cardType
	}
	for _, entry := range substringDriverTypes {
		if strings.Contains(upper, entry.needle) {
			return entry.cardType
		}
	}
	return UnknownType
}
