package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newor0599/ignis/internal/model"
)

func filterTestNotifications() []*model.Notification {
	now := time.Now().Unix()
	return []*model.Notification{
		{ID: 1, AppName: "slack", Summary: "mention", Urgency: model.UrgencyNormal, CreatedAt: now - 3600},
		{ID: 2, AppName: "mail", Summary: "new mail", Urgency: model.UrgencyLow, CreatedAt: now - 7200},
		{ID: 3, AppName: "slack", Summary: "alert", Urgency: model.UrgencyCritical, CreatedAt: now - 60, Popup: true},
		{ID: 4, AppName: "battery", Summary: "low battery", Urgency: model.UrgencyCritical, CreatedAt: now - 30 * 86400},
	}
}

func TestFilter_NoOptionsKeepsAll(t *testing.T) {
	result := Filter(filterTestNotifications(), FilterOptions{})
	assert.Len(t, result, 4)
}

func TestFilter_ByApp(t *testing.T) {
	result := Filter(filterTestNotifications(), FilterOptions{App: "slack"})
	require.Len(t, result, 2)
	assert.Equal(t, uint32(1), result[0].ID)
	assert.Equal(t, uint32(3), result[1].ID)
}

func TestFilter_ByUrgency(t *testing.T) {
	critical := model.UrgencyCritical
	result := Filter(filterTestNotifications(), FilterOptions{Urgency: &critical})
	require.Len(t, result, 2)
	assert.Equal(t, uint32(3), result[0].ID)
	assert.Equal(t, uint32(4), result[1].ID)
}

func TestFilter_Since(t *testing.T) {
	result := Filter(filterTestNotifications(), FilterOptions{Since: 2 * time.Hour})
	require.Len(t, result, 2)
	assert.Equal(t, uint32(1), result[0].ID)
	assert.Equal(t, uint32(3), result[1].ID)
}

func TestFilter_PopupOnly(t *testing.T) {
	result := Filter(filterTestNotifications(), FilterOptions{PopupOnly: true})
	require.Len(t, result, 1)
	assert.Equal(t, uint32(3), result[0].ID)
}

func TestFilter_Limit(t *testing.T) {
	result := Filter(filterTestNotifications(), FilterOptions{Limit: 2})
	require.Len(t, result, 2)
	assert.Equal(t, uint32(1), result[0].ID)
	assert.Equal(t, uint32(2), result[1].ID)
}

func TestFilter_Combined(t *testing.T) {
	critical := model.UrgencyCritical
	result := Filter(filterTestNotifications(), FilterOptions{
		App:     "slack",
		Urgency: &critical,
		Since:   24 * time.Hour,
	})
	require.Len(t, result, 1)
	assert.Equal(t, uint32(3), result[0].ID)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"", 0, false},
		{"48h", 48 * time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"xd", 0, true},
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUrgency(t *testing.T) {
	for input, want := range map[string]int{
		"low":      model.UrgencyLow,
		"0":        model.UrgencyLow,
		"Normal":   model.UrgencyNormal,
		"1":        model.UrgencyNormal,
		"CRITICAL": model.UrgencyCritical,
		"2":        model.UrgencyCritical,
	} {
		got, err := ParseUrgency(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseUrgency("severe")
	assert.Error(t, err)
}
