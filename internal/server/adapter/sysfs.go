package adapter

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
)

// maxWalkDepth bounds the upward walk over the resolved device path.
const maxWalkDepth = 6

var (
	driverRe      = regexp.MustCompile(`DRIVER=(\w+)`)
	pciIDRe       = regexp.MustCompile(`PCI_ID=([0-9A-Fa-f]{4}):([0-9A-Fa-f]{4})`)
	productRe     = regexp.MustCompile(`PRODUCT=([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})/`)
	usbModaliasRe = regexp.MustCompile(`usb:v([0-9A-Fa-f]{4})p([0-9A-Fa-f]{4})`)
	pciModaliasRe = regexp.MustCompile(`pci:v([0-9A-Fa-f]{4})d([0-9A-Fa-f]{4})`)
)

// CardIdentity is the raw identity of one interface as read from sysfs.
// Absent values stay empty; identity extraction never fails.
type CardIdentity struct {
	Driver   string
	VendorID string
	DeviceID string
	PhyIndex int
	MAC      string
}

// SysfsAdapter reads wireless interface identity from a sysfs-shaped
// directory tree.
type SysfsAdapter struct {
	fs     FS
	root   string
	logger *zap.Logger
}

// NewSysfsAdapter creates a SysfsAdapter over the real /sys tree.
func NewSysfsAdapter(logger *zap.Logger) *SysfsAdapter {
	return NewSysfsAdapterFS(OSFS{}, "/sys/class/net", logger)
}

// NewSysfsAdapterFS creates a SysfsAdapter over an arbitrary tree root.
func NewSysfsAdapterFS(fs FS, root string, logger *zap.Logger) *SysfsAdapter {
	return &SysfsAdapter{fs: fs, root: root, logger: logger}
}

// ListWireless returns the interface names that expose a phy80211 node.
func (a *SysfsAdapter) ListWireless() []string {
	var names []string
	for _, name := range a.fs.ListDir(a.root) {
		if a.fs.Exists(filepath.Join(a.root, name, "phy80211")) {
			names = append(names, name)
		}
	}
	return names
}

// Identity extracts driver name, vendor/device IDs, phy index and MAC
// for the given interface with best effort.
func (a *SysfsAdapter) Identity(iface string) CardIdentity {
	var id CardIdentity

	devicePath := filepath.Join(a.root, iface, "device")
	ueventPath := filepath.Join(devicePath, "uevent")
	// Legacy Atheros quirk: ath0 has its device node under wifi0.
	if iface == "ath0" && !a.fs.Exists(ueventPath) {
		devicePath = filepath.Join(a.root, "wifi0", "device")
		ueventPath = filepath.Join(devicePath, "uevent")
	}

	uevent := a.fs.ReadFile(ueventPath)
	if uevent != "" {
		if match := driverRe.FindStringSubmatch(uevent); match != nil {
			id.Driver = match[1]
		}
	}

	phyRaw := strings.TrimSpace(a.fs.ReadFile(filepath.Join(a.root, iface, "phy80211", "index")))
	if phyRaw != "" {
		if index, err := strconv.Atoi(phyRaw); err == nil {
			id.PhyIndex = index
		}
	}

	id.MAC = strings.TrimSpace(a.fs.ReadFile(filepath.Join(a.root, iface, "address")))

	a.fillVendorDevice(devicePath, &id)
	if uevent != "" {
		fillFromUevent(uevent, &id.VendorID, &id.DeviceID)
	}

	if id.VendorID == "" || id.DeviceID == "" {
		a.logger.Debug("incomplete identity for interface",
			zap.String("interface", iface),
			zap.String("vendor_id", id.VendorID),
			zap.String("device_id", id.DeviceID))
	}
	return id
}

// fillVendorDevice climbs the resolved device path, checking at each of
// up to six levels: plain vendor/device attributes, USB
// idVendor/idProduct, uevent, then modalias. Each source fills only a
// still-empty field; the walk stops once both IDs are known.
func (a *SysfsAdapter) fillVendorDevice(devicePath string, id *CardIdentity) {
	if devicePath == "" {
		return
	}
	current := a.fs.RealPath(devicePath)
	for depth := 0; depth < maxWalkDepth; depth++ {
		if current == "" {
			return
		}

		if id.VendorID == "" && a.fs.Exists(filepath.Join(current, "vendor")) {
			id.VendorID = types.NormalizeID(a.fs.ReadFile(filepath.Join(current, "vendor")))
		}
		if id.DeviceID == "" && a.fs.Exists(filepath.Join(current, "device")) {
			id.DeviceID = types.NormalizeID(a.fs.ReadFile(filepath.Join(current, "device")))
		}
		if id.VendorID == "" && a.fs.Exists(filepath.Join(current, "idVendor")) {
			id.VendorID = types.NormalizeID(a.fs.ReadFile(filepath.Join(current, "idVendor")))
		}
		if id.DeviceID == "" && a.fs.Exists(filepath.Join(current, "idProduct")) {
			id.DeviceID = types.NormalizeID(a.fs.ReadFile(filepath.Join(current, "idProduct")))
		}
		if ueventPath := filepath.Join(current, "uevent"); a.fs.Exists(ueventPath) {
			fillFromUevent(a.fs.ReadFile(ueventPath), &id.VendorID, &id.DeviceID)
		}
		if modaliasPath := filepath.Join(current, "modalias"); a.fs.Exists(modaliasPath) {
			fillFromModalias(a.fs.ReadFile(modaliasPath), &id.VendorID, &id.DeviceID)
		}

		if id.VendorID != "" && id.DeviceID != "" {
			return
		}
		parent := filepath.Dir(current)
		if parent == current {
			return
		}
		current = parent
	}
}

// fillFromUevent fills empty IDs from PCI_ID=VVVV:DDDD, falling back to
// PRODUCT=VVVV/DDDD/.
func fillFromUevent(uevent string, vendor, device *string) {
	if *vendor != "" && *device != "" {
		return
	}
	if match := pciIDRe.FindStringSubmatch(uevent); match != nil {
		if *vendor == "" {
			*vendor = types.NormalizeID(match[1])
		}
		if *device == "" {
			*device = types.NormalizeID(match[2])
		}
		return
	}
	if match := productRe.FindStringSubmatch(uevent); match != nil {
		if *vendor == "" {
			*vendor = types.NormalizeID(match[1])
		}
		if *device == "" {
			*device = types.NormalizeID(match[2])
		}
	}
}

// fillFromModalias fills empty IDs from usb:vVVVVpDDDD, falling back to
// pci:vVVVVdDDDD.
func fillFromModalias(modalias string, vendor, device *string) {
	if *vendor != "" && *device != "" {
		return
	}
	if match := usbModaliasRe.FindStringSubmatch(modalias); match != nil {
		if *vendor == "" {
			*vendor = types.NormalizeID(match[1])
		}
		if *device == "" {
			*device = types.NormalizeID(match[2])
		}
		return
	}
	if match := pciModaliasRe.FindStringSubmatch(modalias); match != nil {
		if *vendor == "" {
			*vendor = types.NormalizeID(match[1])
		}
		if *device == "" {
			*device = types.NormalizeID(match[2])
		}
	}
}
