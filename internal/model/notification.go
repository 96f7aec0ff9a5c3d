// Package model defines the core data structures for the ignis notification daemon.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Urgency levels matching the freedesktop notification spec.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// UrgencyNames maps urgency levels to human-readable names.
var UrgencyNames = map[int]string{
	UrgencyLow:      "low",
	UrgencyNormal:   "normal",
	UrgencyCritical: "critical",
}

// TimeoutServerDefault is the sentinel timeout value meaning "use the
// configured default popup timeout". It is resolved at creation time and
// never stored.
const TimeoutServerDefault = -1

// Action is a single notification action as a key/label pair.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Notification is a single tracked notification. The bus-visible identity
// is ID; RecordID is a ULID assigned at creation so history entries stay
// addressable even though bus ids are reclaimed when a notification is
// replaced.
type Notification struct {
	RecordID string `json:"record_id"`

	ID      uint32   `json:"id"`
	AppName string   `json:"app_name"`
	Icon    string   `json:"icon,omitempty"`
	Summary string   `json:"summary"`
	Body    string   `json:"body,omitempty"`
	Actions []Action `json:"actions"`
	Urgency int      `json:"urgency"`

	// Timeout in milliseconds. 0 means never auto-expire. The -1 sentinel
	// is resolved before the entity is constructed, so it never appears here.
	Timeout   int32 `json:"timeout"`
	CreatedAt int64 `json:"created_at"`

	// Popup marks the notification as eligible for transient display.
	// Always false after rehydration from disk.
	Popup bool `json:"popup"`

	// Transient excludes the notification from the persisted history.
	Transient bool `json:"-"`

	// Resident keeps the notification alive after an action is invoked.
	Resident bool `json:"-"`

	// Extra carries unrecognized hint keys verbatim.
	Extra map[string]any `json:"extra,omitempty"`
}

// Validation errors.
var (
	ErrZeroID           = errors.New("notification id must be positive")
	ErrEmptyRecordID    = errors.New("record_id cannot be empty")
	ErrInvalidUrgency   = errors.New("urgency must be 0, 1, or 2")
	ErrInvalidTimestamp = errors.New("created_at must be greater than 0")
)

// NewRecordID generates a fresh ULID string for a notification record.
func NewRecordID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

// Validate checks that the notification has all required fields.
func (n *Notification) Validate() error {
	if n.ID == 0 {
		return ErrZeroID
	}
	if n.RecordID == "" {
		return ErrEmptyRecordID
	}
	if n.Urgency < UrgencyLow || n.Urgency > UrgencyCritical {
		return ErrInvalidUrgency
	}
	if n.CreatedAt <= 0 {
		return ErrInvalidTimestamp
	}
	return nil
}

// SetUrgency sets the urgency level, clamping unknown values to normal.
func (n *Notification) SetUrgency(level int) {
	if level < UrgencyLow || level > UrgencyCritical {
		level = UrgencyNormal
	}
	n.Urgency = level
}

// UrgencyName returns the human-readable urgency name.
func (n *Notification) UrgencyName() string {
	if name, ok := UrgencyNames[n.Urgency]; ok {
		return name
	}
	return "unknown"
}

// CreatedAtTime returns the creation timestamp as a time.Time.
func (n *Notification) CreatedAtTime() time.Time {
	return time.Unix(n.CreatedAt, 0)
}

// ExpiresAfter returns the popup lifetime as a duration and whether the
// notification auto-expires at all.
func (n *Notification) ExpiresAfter() (time.Duration, bool) {
	if n.Timeout <= 0 {
		return 0, false
	}
	return time.Duration(n.Timeout) * time.Millisecond, true
}

// HasAction reports whether the notification carries an action with the
// given key.
func (n *Notification) HasAction(key string) bool {
	for _, a := range n.Actions {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the notification.
func (n *Notification) Clone() *Notification {
	clone := *n
	if n.Actions != nil {
		clone.Actions = make([]Action, len(n.Actions))
		copy(clone.Actions, n.Actions)
	}
	if n.Extra != nil {
		clone.Extra = make(map[string]any, len(n.Extra))
		for k, v := range n.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}

// ParseActions converts the wire-format action list (alternating key,
// label pairs) to structured form. A trailing unpaired key is dropped.
func ParseActions(raw []string) []Action {
	actions := make([]Action, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		actions = append(actions, Action{Key: raw[i], Label: raw[i+1]})
	}
	return actions
}
