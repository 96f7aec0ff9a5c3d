package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client calls the notification daemon from another process.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, Path),
	}, nil
}

// Notify sends a Notify call and returns the assigned id.
func (c *Client) Notify(req *NotifyRequest) (uint32, error) {
	hints := req.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}

	var id uint32
	err := c.obj.Call(Interface+".Notify", 0,
		req.AppName,
		req.ReplacesID,
		req.AppIcon,
		req.Summary,
		req.Body,
		req.Actions,
		hints,
		req.ExpireTimeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("Notify call failed: %w", err)
	}
	return id, nil
}

// CloseNotification requests the close of a notification by id.
func (c *Client) CloseNotification(id uint32) error {
	if err := c.obj.Call(Interface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("CloseNotification call failed: %w", err)
	}
	return nil
}

// ServerInformation fetches the daemon's GetServerInformation tuple.
func (c *Client) ServerInformation() (ServerInfo, error) {
	var info ServerInfo
	err := c.obj.Call(Interface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("GetServerInformation call failed: %w", err)
	}
	return info, nil
}

// Capabilities fetches the daemon's capability tags.
func (c *Client) Capabilities() ([]string, error) {
	var caps []string
	if err := c.obj.Call(Interface+".GetCapabilities", 0).Store(&caps); err != nil {
		return nil, fmt.Errorf("GetCapabilities call failed: %w", err)
	}
	return caps, nil
}
