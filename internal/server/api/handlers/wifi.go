// Package handlers provides HTTP request handlers
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/service"
	"github.com/barakbk-hailo/OpenHD-SysUtils/pkg/version"
)

// WifiHandler exposes the resolved wireless card state over HTTP. All
// reads go through the wifi service, so the HTTP view and the socket
// protocol view never diverge.
type WifiHandler struct {
	wifiService *service.WifiService
	startedAt   time.Time
}

// NewWifiHandler creates a new WifiHandler
func NewWifiHandler(wifiService *service.WifiService) *WifiHandler {
	return &WifiHandler{
		wifiService: wifiService,
		startedAt:   time.Now(),
	}
}

// Health handles GET /healthz
func (h *WifiHandler) Health(c *gin.Context) {
	success(c, gin.H{
		"status":         "ok",
		"version":        version.Version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// Cards handles GET /v1/cards
func (h *WifiHandler) Cards(c *gin.Context) {
	success(c, gin.H{
		"cards":         h.wifiService.Cards(),
		"wifibroadcast": h.wifiService.HasWifibroadcastCards(),
	})
}

// Refresh handles POST /v1/refresh
func (h *WifiHandler) Refresh(c *gin.Context) {
	h.wifiService.Refresh()
	success(c, gin.H{
		"cards": h.wifiService.Cards(),
	})
}

// updateBody mirrors the socket protocol's update fields. Pointer
// fields distinguish absent from empty.
type updateBody struct {
	Action          string  `json:"action"`
	Interface       string  `json:"interface"`
	OverrideType    *string `json:"override_type"`
	TxPower         *string `json:"tx_power"`
	TxPowerHigh     *string `json:"tx_power_high"`
	TxPowerLow      *string `json:"tx_power_low"`
	CardName        *string `json:"card_name"`
	PowerLevel      *string `json:"power_level"`
	ProfileVendorID *string `json:"profile_vendor_id"`
	ProfileDeviceID *string `json:"profile_device_id"`
	ProfileChipset  *string `json:"profile_chipset"`
}

// Update handles POST /v1/update
func (h *WifiHandler) Update(c *gin.Context) {
	var body updateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}

	req := &service.UpdateRequest{
		Action:          body.Action,
		Interface:       body.Interface,
		OverrideType:    body.OverrideType,
		TxPower:         body.TxPower,
		TxPowerHigh:     body.TxPowerHigh,
		TxPowerLow:      body.TxPowerLow,
		CardName:        body.CardName,
		PowerLevel:      body.PowerLevel,
		ProfileVendorID: body.ProfileVendorID,
		ProfileDeviceID: body.ProfileDeviceID,
		ProfileChipset:  body.ProfileChipset,
	}
	if req.Action == "" {
		req.Action = service.ActionRefresh
	}

	if !h.wifiService.ApplyUpdate(req) {
		badRequest(c, "update rejected")
		return
	}

	success(c, gin.H{
		"action": req.Action,
		"cards":  h.wifiService.Cards(),
	})
}

// Helper functions for responses
func success(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{"success": true, "data": data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(400, gin.H{"success": false, "error": gin.H{"code": "INVALID_REQUEST", "message": message}})
}
