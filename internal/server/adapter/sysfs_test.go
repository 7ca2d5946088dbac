package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newUSBTree builds a sysfs-shaped tree for one USB wifi interface:
// the interface's device node is a symlink into a deeper devices tree,
// with idVendor/idProduct one level above the driver binding.
func newUSBTree(t *testing.T, iface string) (root string) {
	t.Helper()
	base := t.TempDir()
	root = filepath.Join(base, "class", "net")

	usbDev := filepath.Join(base, "devices", "usb1", "1-1")
	bound := filepath.Join(usbDev, "1-1:1.0")
	writeFile(t, filepath.Join(bound, "uevent"), "DRIVER=rtl88xxau_ohd\nDEVTYPE=usb_interface\n")
	writeFile(t, filepath.Join(usbDev, "idVendor"), "0bda\n")
	writeFile(t, filepath.Join(usbDev, "idProduct"), "8812\n")

	ifaceDir := filepath.Join(root, iface)
	writeFile(t, filepath.Join(ifaceDir, "phy80211", "index"), "1\n")
	writeFile(t, filepath.Join(ifaceDir, "address"), "aa:bb:cc:dd:ee:ff\n")
	if err := os.Symlink(bound, filepath.Join(ifaceDir, "device")); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestIdentityUSB(t *testing.T) {
	root := newUSBTree(t, "wlan0")
	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())

	id := a.Identity("wlan0")
	if id.Driver != "rtl88xxau_ohd" {
		t.Errorf("Driver = %q", id.Driver)
	}
	if id.VendorID != "0x0BDA" {
		t.Errorf("VendorID = %q", id.VendorID)
	}
	if id.DeviceID != "0x8812" {
		t.Errorf("DeviceID = %q", id.DeviceID)
	}
	if id.PhyIndex != 1 {
		t.Errorf("PhyIndex = %d", id.PhyIndex)
	}
	if id.MAC != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("MAC = %q", id.MAC)
	}
}

func TestIdentityPCIFromUevent(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "class", "net")
	device := filepath.Join(root, "wlp3s0", "device")
	writeFile(t, filepath.Join(device, "uevent"),
		"DRIVER=iwlwifi\nPCI_ID=8086:2723\nPCI_SUBSYS_ID=8086:0084\n")
	writeFile(t, filepath.Join(root, "wlp3s0", "phy80211", "index"), "0\n")
	writeFile(t, filepath.Join(root, "wlp3s0", "address"), "11:22:33:44:55:66\n")

	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())
	id := a.Identity("wlp3s0")
	if id.Driver != "iwlwifi" {
		t.Errorf("Driver = %q", id.Driver)
	}
	if id.VendorID != "0x8086" || id.DeviceID != "0x2723" {
		t.Errorf("IDs = %q/%q", id.VendorID, id.DeviceID)
	}
}

func TestIdentityModaliasFallback(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "class", "net")
	device := filepath.Join(root, "wlan1", "device")
	writeFile(t, filepath.Join(device, "uevent"), "DRIVER=rtw_8822bu\n")
	writeFile(t, filepath.Join(device, "modalias"), "usb:v0B05p184Cd0200\n")
	writeFile(t, filepath.Join(root, "wlan1", "phy80211", "index"), "2\n")

	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())
	id := a.Identity("wlan1")
	if id.VendorID != "0x0B05" || id.DeviceID != "0x184C" {
		t.Errorf("IDs = %q/%q", id.VendorID, id.DeviceID)
	}
}

func TestIdentityVendorDeviceAttributes(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "class", "net")
	device := filepath.Join(root, "wlan2", "device")
	writeFile(t, filepath.Join(device, "uevent"), "DRIVER=ath9k\n")
	writeFile(t, filepath.Join(device, "vendor"), "0x168c\n")
	writeFile(t, filepath.Join(device, "device"), "0x002a\n")

	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())
	id := a.Identity("wlan2")
	if id.VendorID != "0x168C" || id.DeviceID != "0x002A" {
		t.Errorf("IDs = %q/%q", id.VendorID, id.DeviceID)
	}
}

func TestIdentityMissingEverything(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "class", "net")
	if err := os.MkdirAll(filepath.Join(root, "wlan9"), 0755); err != nil {
		t.Fatal(err)
	}

	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())
	id := a.Identity("wlan9")
	if id.Driver != "" || id.VendorID != "" || id.DeviceID != "" {
		t.Errorf("expected empty identity, got %+v", id)
	}
}

func TestIdentityAth0Quirk(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "class", "net")
	// ath0 has no device node of its own; wifi0 carries it.
	if err := os.MkdirAll(filepath.Join(root, "ath0"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "wifi0", "device", "uevent"), "DRIVER=ath9k\n")

	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())
	id := a.Identity("ath0")
	if id.Driver != "ath9k" {
		t.Errorf("Driver = %q, want ath9k via wifi0 fallback", id.Driver)
	}
}

func TestListWireless(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "class", "net")
	writeFile(t, filepath.Join(root, "wlan0", "phy80211", "index"), "0\n")
	writeFile(t, filepath.Join(root, "eth0", "address"), "00:00:00:00:00:01\n")
	writeFile(t, filepath.Join(root, "lo", "address"), "00:00:00:00:00:00\n")

	a := NewSysfsAdapterFS(OSFS{}, root, zap.NewNop())
	names := a.ListWireless()
	if len(names) != 1 || names[0] != "wlan0" {
		t.Errorf("ListWireless = %v, want [wlan0]", names)
	}
}

func TestDriverToType(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"rtl88xxau_ohd", "OPENHD_RTL_88X2AU"},
		{"RTL88X2EU_OHD", "OPENHD_RTL_88X2EU"},
		{"rtl8852bu_ohd", "OPENHD_RTL_8852BU"},
		{"cnss_pci", "QUALCOMM"},
		{"ath9k_htc", "ATHEROS"},
		{"rt2800usb", "RALINK"},
		{"iwlwifi", "INTEL"},
		{"brcmfmac", "BROADCOM"},
		{"bcmsdh_sdmmc", "BROADCOM"},
		{"aicwf_sdio", "AIC"},
		{"88xxau", "RTL_88X2AU"},
		{"rtw_8822bu", "RTL_88X2BU"},
		{"mt7921u", "MT_7921u"},
		{"e1000e", "UNKNOWN"},
		{"", "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := DriverToType(tt.driver); got != tt.want {
			t.Errorf("DriverToType(%q) = %q, want %q", tt.driver, got, tt.want)
		}
	}
}
