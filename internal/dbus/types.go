package dbus

import (
	"github.com/godbus/dbus/v5"

	"github.com/newor0599/ignis/internal/model"
	"github.com/newor0599/ignis/internal/pixbuf"
)

// CloseReason represents the reason for closing a notification. Values
// are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is the reserved/undefined reason code.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// NotifyRequest holds the raw parameters of an incoming
// org.freedesktop.Notifications.Notify call.
type NotifyRequest struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Hints is the typed form of the loosely-typed hints payload. Known keys
// get explicit fields; everything else lands in Extra.
type Hints struct {
	Urgency      *int
	ImageData    *pixbuf.ImageData
	ImagePath    string
	Category     string
	DesktopEntry string
	Transient    bool
	Resident     bool
	Extra        map[string]any
}

// ParsedHints extracts known hint keys with best-effort tolerance:
// malformed fields are ignored and defaults apply.
func (r *NotifyRequest) ParsedHints() Hints {
	h := Hints{}

	for key, v := range r.Hints {
		switch key {
		case "urgency":
			if u, ok := variantInt(v); ok && u >= model.UrgencyLow && u <= model.UrgencyCritical {
				h.Urgency = &u
			}
		case "image-data", "image_data", "icon_data":
			if img := parseImageData(v); img != nil && h.ImageData == nil {
				h.ImageData = img
			}
		case "image-path", "image_path":
			if s, ok := v.Value().(string); ok {
				h.ImagePath = s
			}
		case "category":
			if s, ok := v.Value().(string); ok {
				h.Category = s
			}
		case "desktop-entry":
			if s, ok := v.Value().(string); ok {
				h.DesktopEntry = s
			}
		case "transient":
			if b, ok := v.Value().(bool); ok {
				h.Transient = b
			}
		case "resident":
			if b, ok := v.Value().(bool); ok {
				h.Resident = b
			}
		default:
			if h.Extra == nil {
				h.Extra = make(map[string]any)
			}
			h.Extra[key] = v.Value()
		}
	}

	return h
}

// UrgencyOrDefault returns the urgency hint, defaulting to normal.
func (h Hints) UrgencyOrDefault() int {
	if h.Urgency != nil {
		return *h.Urgency
	}
	return model.UrgencyNormal
}

// variantInt coerces the numeric representations clients use for the
// urgency hint (nominally a byte, but integers happen in the wild).
func variantInt(v dbus.Variant) (int, bool) {
	switch n := v.Value().(type) {
	case byte:
		return int(n), true
	case int16:
		return int(n), true
	case uint16:
		return int(n), true
	case int32:
		return int(n), true
	case uint32:
		return int(n), true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// parseImageData decodes the (iiibiiay) image-data struct. godbus
// delivers D-Bus structs as []interface{}.
func parseImageData(v dbus.Variant) *pixbuf.ImageData {
	fields, ok := v.Value().([]interface{})
	if !ok || len(fields) != 7 {
		return nil
	}

	width, ok1 := fields[0].(int32)
	height, ok2 := fields[1].(int32)
	rowStride, ok3 := fields[2].(int32)
	hasAlpha, ok4 := fields[3].(bool)
	bits, ok5 := fields[4].(int32)
	channels, ok6 := fields[5].(int32)
	data, ok7 := fields[6].([]byte)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 {
		return nil
	}

	return &pixbuf.ImageData{
		Width:         int(width),
		Height:        int(height),
		RowStride:     int(rowStride),
		HasAlpha:      hasAlpha,
		BitsPerSample: int(bits),
		Channels:      int(channels),
		Data:          data,
	}
}

// ServerCapabilities lists the capabilities advertised by ignisd.
var ServerCapabilities = []string{
	"actions",
	"body",
	"icon-static",
	"persistence",
}

// ServerInfo contains the fixed strings returned by GetServerInformation.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "ignisd",
		Vendor:      "ignis",
		Version:     "0.0.1", // replaced by build-time version
		SpecVersion: "1.2",
	}
}
