package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNotification() *Notification {
	return &Notification{
		RecordID:  "01HTEST00000000000000000000",
		ID:        1,
		AppName:   "test-app",
		Summary:   "Test",
		Urgency:   UrgencyNormal,
		CreatedAt: time.Now().Unix(),
	}
}

func TestNotification_HasAction(t *testing.T) {
	n := validNotification()
	n.Actions = []Action{{Key: "default", Label: "Open"}, {Key: "dismiss", Label: "Dismiss"}}

	assert.True(t, n.HasAction("default"))
	assert.True(t, n.HasAction("dismiss"))
	assert.False(t, n.HasAction("Open"))
	assert.False(t, n.HasAction(""))

	n.Actions = nil
	assert.False(t, n.HasAction("default"))
}

func TestNotification_Validate(t *testing.T) {
	n := validNotification()
	require.NoError(t, n.Validate())

	n = validNotification()
	n.ID = 0
	assert.ErrorIs(t, n.Validate(), ErrZeroID)

	n = validNotification()
	n.RecordID = ""
	assert.ErrorIs(t, n.Validate(), ErrEmptyRecordID)

	n = validNotification()
	n.Urgency = 7
	assert.ErrorIs(t, n.Validate(), ErrInvalidUrgency)

	n = validNotification()
	n.CreatedAt = 0
	assert.ErrorIs(t, n.Validate(), ErrInvalidTimestamp)
}

func TestNotification_SetUrgency(t *testing.T) {
	n := validNotification()

	n.SetUrgency(UrgencyCritical)
	assert.Equal(t, UrgencyCritical, n.Urgency)
	assert.Equal(t, "critical", n.UrgencyName())

	// Out-of-range values clamp to normal
	n.SetUrgency(42)
	assert.Equal(t, UrgencyNormal, n.Urgency)

	n.SetUrgency(-1)
	assert.Equal(t, UrgencyNormal, n.Urgency)
}

func TestNotification_ExpiresAfter(t *testing.T) {
	n := validNotification()

	n.Timeout = 5000
	d, ok := n.ExpiresAfter()
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, d)

	n.Timeout = 0
	_, ok = n.ExpiresAfter()
	assert.False(t, ok)
}

func TestNotification_Clone(t *testing.T) {
	n := validNotification()
	n.Actions = []Action{{Key: "default", Label: "Open"}}
	n.Extra = map[string]any{"category": "email"}

	clone := n.Clone()
	clone.Actions[0].Key = "changed"
	clone.Extra["category"] = "changed"

	assert.Equal(t, "default", n.Actions[0].Key)
	assert.Equal(t, "email", n.Extra["category"])
}

func TestParseActions(t *testing.T) {
	actions := ParseActions([]string{"default", "Open", "dismiss", "Dismiss"})
	require.Len(t, actions, 2)
	assert.Equal(t, Action{Key: "default", Label: "Open"}, actions[0])
	assert.Equal(t, Action{Key: "dismiss", Label: "Dismiss"}, actions[1])

	// Trailing unpaired key is dropped
	actions = ParseActions([]string{"default", "Open", "orphan"})
	assert.Len(t, actions, 1)

	assert.Empty(t, ParseActions(nil))
}

func TestNewRecordID(t *testing.T) {
	a, err := NewRecordID()
	require.NoError(t, err)
	b, err := NewRecordID()
	require.NoError(t, err)

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
