// Package dispatch recognizes inbound protocol lines and produces the
// matching response lines.
package dispatch

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/control"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/service"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/jsontext"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
)

// Inbound message types.
const (
	TypeWifiRequest = "sysutil.wifi.request"
	TypeWifiUpdate  = "sysutil.wifi.update"
	TypeLinkControl = "sysutil.link.control"
)

// Messages returned on link-control policy rejections and relay
// failures.
const (
	msgNoRFValues      = "No RF values provided."
	msgWidth40Disabled = "40 MHz channel width is disabled."
	msgPeerUnavailable = "OpenHD control socket not available."
	msgPeerRejected    = "OpenHD rejected the RF update."
)

// disabledChannelWidthMHz is administratively rejected.
const disabledChannelWidthMHz = 40

// Dispatcher routes one inbound line at a time to the wifi service or
// the control relay. Processing is synchronous; each line is fully
// resolved before the next is handled.
type Dispatcher struct {
	svc     *service.WifiService
	control *control.Client
	logger  *zap.Logger
}

// New creates a Dispatcher.
func New(svc *service.WifiService, ctrl *control.Client, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{svc: svc, control: ctrl, logger: logger}
}

// HandleLine produces the response line for a recognized request. The
// second result is false for lines this dispatcher does not handle.
func (d *Dispatcher) HandleLine(line string) (string, bool) {
	msgType, ok := jsontext.StringField(line, "type")
	if !ok {
		return "", false
	}
	switch msgType {
	case TypeWifiRequest:
		return d.handleWifiRequest(), true
	case TypeWifiUpdate:
		return d.handleWifiUpdate(line), true
	case TypeLinkControl:
		return d.handleLinkControl(line), true
	}
	return "", false
}

func (d *Dispatcher) handleWifiRequest() string {
	var out strings.Builder
	out.WriteString(`{"type":"sysutil.wifi.response","ok":true,"cards":`)
	appendCardsJSON(&out, d.svc.Cards())
	out.WriteString("}\n")
	return out.String()
}

func (d *Dispatcher) handleWifiUpdate(line string) string {
	req := &service.UpdateRequest{}
	if action, ok := jsontext.StringField(line, "action"); ok {
		req.Action = action
	} else {
		req.Action = service.ActionRefresh
	}
	req.Interface, _ = jsontext.StringField(line, "interface")
	req.OverrideType = optionalField(line, "override_type")
	req.TxPower = optionalField(line, "tx_power")
	req.TxPowerHigh = optionalField(line, "tx_power_high")
	req.TxPowerLow = optionalField(line, "tx_power_low")
	req.CardName = optionalField(line, "card_name")
	req.PowerLevel = optionalField(line, "power_level")
	req.ProfileVendorID = optionalField(line, "profile_vendor_id")
	req.ProfileDeviceID = optionalField(line, "profile_device_id")
	req.ProfileChipset = optionalField(line, "profile_chipset")

	ok := d.svc.ApplyUpdate(req)
	d.logger.Info("wifi update handled",
		zap.String("action", req.Action),
		zap.String("interface", req.Interface),
		zap.Bool("ok", ok))

	var out strings.Builder
	fmt.Fprintf(&out, `{"type":"sysutil.wifi.update.response","ok":%s,"action":"%s"`,
		boolLiteral(ok), jsontext.Escape(req.Action))
	if ok {
		out.WriteString(`,"cards":`)
		appendCardsJSON(&out, d.svc.Cards())
	}
	out.WriteString("}\n")
	return out.String()
}

func (d *Dispatcher) handleLinkControl(line string) string {
	iface, _ := jsontext.StringField(line, "interface")
	frequency, hasFrequency := jsontext.IntField(line, "frequency_mhz")
	channelWidth, hasWidth := jsontext.IntField(line, "channel_width_mhz")
	mcsIndex, hasMCS := jsontext.IntField(line, "mcs_index")
	txPowerMW, hasTxMW := jsontext.IntField(line, "tx_power_mw")
	txPowerIndex, hasTxIndex := jsontext.IntField(line, "tx_power_index")
	powerLevel, _ := jsontext.StringField(line, "power_level")

	d.logger.Info("link control request",
		zap.String("interface", iface),
		zap.Bool("has_frequency", hasFrequency),
		zap.Bool("has_width", hasWidth),
		zap.Bool("has_mcs", hasMCS),
		zap.Bool("has_tx_mw", hasTxMW),
		zap.Bool("has_tx_index", hasTxIndex),
		zap.String("power_level", powerLevel))

	hasValue := iface != "" || hasFrequency || hasWidth || hasMCS ||
		hasTxMW || hasTxIndex || strings.TrimSpace(powerLevel) != ""

	var ok bool
	var message string
	switch {
	case !hasValue:
		message = msgNoRFValues
	case hasWidth && channelWidth == disabledChannelWidthMHz:
		message = msgWidth40Disabled
	default:
		var request strings.Builder
		request.WriteString(`{"type":"openhd.link.control"`)
		if iface != "" {
			fmt.Fprintf(&request, `,"interface":"%s"`, jsontext.Escape(iface))
		}
		if hasFrequency {
			fmt.Fprintf(&request, `,"frequency_mhz":%d`, frequency)
		}
		if hasWidth {
			fmt.Fprintf(&request, `,"channel_width_mhz":%d`, channelWidth)
		}
		if hasMCS {
			fmt.Fprintf(&request, `,"mcs_index":%d`, mcsIndex)
		}
		if hasTxMW {
			fmt.Fprintf(&request, `,"tx_power_mw":%d`, txPowerMW)
		}
		if hasTxIndex {
			fmt.Fprintf(&request, `,"tx_power_index":%d`, txPowerIndex)
		}
		if trimmed := strings.TrimSpace(powerLevel); trimmed != "" {
			fmt.Fprintf(&request, `,"power_level":"%s"`, jsontext.Escape(trimmed))
		}
		request.WriteString("}\n")

		response, got := d.control.Roundtrip(request.String())
		if !got {
			message = msgPeerUnavailable
			d.logger.Info("link control relay: no peer response")
		} else {
			ok, _ = jsontext.BoolField(response, "ok")
			message, _ = jsontext.StringField(response, "message")
			if message == "" && !ok {
				message = msgPeerRejected
			}
			d.logger.Info("link control relay response",
				zap.Bool("ok", ok), zap.String("message", message))
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, `{"type":"sysutil.link.control.response","ok":%s`, boolLiteral(ok))
	if message != "" {
		fmt.Fprintf(&out, `,"message":"%s"`, jsontext.Escape(message))
	}
	out.WriteString("}\n")
	return out.String()
}

// appendCardsJSON serializes the card list in wire field order.
func appendCardsJSON(out *strings.Builder, cards []types.WifiCardInfo) {
	out.WriteString("[")
	for i, card := range cards {
		if i > 0 {
			out.WriteString(",")
		}
		fmt.Fprintf(out, `{"interface":"%s"`, jsontext.Escape(card.InterfaceName))
		fmt.Fprintf(out, `,"driver":"%s"`, jsontext.Escape(card.DriverName))
		fmt.Fprintf(out, `,"phy_index":%d`, card.PhyIndex)
		fmt.Fprintf(out, `,"mac":"%s"`, jsontext.Escape(card.MAC))
		fmt.Fprintf(out, `,"vendor_id":"%s"`, jsontext.Escape(card.VendorID))
		fmt.Fprintf(out, `,"device_id":"%s"`, jsontext.Escape(card.DeviceID))
		fmt.Fprintf(out, `,"detected_type":"%s"`, jsontext.Escape(card.DetectedType))
		fmt.Fprintf(out, `,"override_type":"%s"`, jsontext.Escape(card.OverrideType))
		fmt.Fprintf(out, `,"type":"%s"`, jsontext.Escape(card.EffectiveType))
		fmt.Fprintf(out, `,"tx_power":"%s"`, jsontext.Escape(card.TxPower))
		fmt.Fprintf(out, `,"tx_power_high":"%s"`, jsontext.Escape(card.TxPowerHigh))
		fmt.Fprintf(out, `,"tx_power_low":"%s"`, jsontext.Escape(card.TxPowerLow))
		fmt.Fprintf(out, `,"card_name":"%s"`, jsontext.Escape(card.CardName))
		fmt.Fprintf(out, `,"power_mode":"%s"`, jsontext.Escape(card.PowerMode))
		fmt.Fprintf(out, `,"power_level":"%s"`, jsontext.Escape(card.PowerLevel))
		fmt.Fprintf(out, `,"power_lowest":"%s"`, jsontext.Escape(card.PowerLowest))
		fmt.Fprintf(out, `,"power_low":"%s"`, jsontext.Escape(card.PowerLow))
		fmt.Fprintf(out, `,"power_mid":"%s"`, jsontext.Escape(card.PowerMid))
		fmt.Fprintf(out, `,"power_high":"%s"`, jsontext.Escape(card.PowerHigh))
		fmt.Fprintf(out, `,"power_min":"%s"`, jsontext.Escape(card.PowerMin))
		fmt.Fprintf(out, `,"power_max":"%s"`, jsontext.Escape(card.PowerMax))
		fmt.Fprintf(out, `,"disabled":%s`, boolLiteral(card.Disabled))
		out.WriteString("}")
	}
	out.WriteString("]")
}

func boolLiteral(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func optionalField(line, key string) *string {
	if value, ok := jsontext.StringField(line, key); ok {
		return &value
	}
	return nil
}
