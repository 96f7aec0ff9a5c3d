package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newor0599/ignis/internal/model"
)

func outputTestNotifications() []*model.Notification {
	now := time.Now().Unix()
	return []*model.Notification{
		{ID: 1, AppName: "slack", Summary: "mention", Body: "you were mentioned", CreatedAt: now - 60},
		{ID: 2, AppName: "mail", Summary: "new mail", Body: "line one\nline two", CreatedAt: now - 3600},
	}
}

func TestPlainFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(DefaultFormatterOptions())

	require.NoError(t, f.Format(&buf, outputTestNotifications()))

	out := buf.String()
	assert.Contains(t, out, "[1] <slack> mention")
	assert.Contains(t, out, "    you were mentioned")
	assert.Contains(t, out, "[2] <mail> new mail")
	assert.Contains(t, out, "line one line two", "newlines collapse to spaces")
}

func TestPlainFormatter_BodyTruncation(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.BodyMaxLen = 10

	var buf bytes.Buffer
	f := NewPlainFormatter(opts)
	require.NoError(t, f.Format(&buf, []*model.Notification{
		{ID: 1, Summary: "s", Body: "a very long body that keeps going"},
	}))

	assert.Contains(t, buf.String(), "a very ...")
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	opts := FormatterOptions{Template: "{{.Notification.ID}}:{{.Notification.Summary}}\n"}

	var buf bytes.Buffer
	f := NewPlainFormatter(opts)
	require.NoError(t, f.Format(&buf, outputTestNotifications()))

	assert.Equal(t, "1:mention\n2:new mail\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	require.NoError(t, f.Format(&buf, outputTestNotifications()))

	var decoded []model.Notification
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "slack", decoded[0].AppName)
}

func TestJSONFormatter_EmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	require.NoError(t, f.Format(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestDmenuFormatter_OneLinePerNotification(t *testing.T) {
	var buf bytes.Buffer
	f := NewDmenuFormatter(DefaultFormatterOptions())

	require.NoError(t, f.Format(&buf, outputTestNotifications()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "slack")
	assert.Contains(t, lines[0], "mention: you were mentioned")
	assert.Contains(t, lines[1], "new mail: line one line two")
}

func TestDmenuFormatter_Separator(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.Separator = " :: "
	opts.ShowTime = false

	var buf bytes.Buffer
	f := NewDmenuFormatter(opts)
	require.NoError(t, f.Format(&buf, outputTestNotifications()[:1]))

	assert.Equal(t, "1 :: slack :: mention: you were mentioned\n", buf.String())
}

func TestDmenuFormatter_UrgencyIconTemplate(t *testing.T) {
	opts := FormatterOptions{Template: "{{urgencyIcon .Notification.Urgency}} {{.Notification.Summary}}"}

	var buf bytes.Buffer
	f := NewDmenuFormatter(opts)
	require.NoError(t, f.Format(&buf, []*model.Notification{
		{ID: 1, Summary: "disk full", Urgency: model.UrgencyCritical},
	}))

	assert.Equal(t, "! disk full\n", buf.String())
}

func TestIDsFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewIDsFormatter()

	require.NoError(t, f.Format(&buf, outputTestNotifications()))
	assert.Equal(t, "1\n2\n", buf.String())
}

func TestNewFormatter_Selection(t *testing.T) {
	opts := DefaultFormatterOptions()
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &DmenuFormatter{}, NewFormatter(FormatDmenu, opts))
	assert.IsType(t, &IDsFormatter{}, NewFormatter(FormatIDs, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("bogus", opts))
}

func TestSanitizeBody(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeBody("a\nb\r\nc", 0, false))
	assert.Equal(t, "a b", sanitizeBody("a    b", 0, false))
	assert.Equal(t, "ab...", sanitizeBody("abcdefghij", 5, false))
	assert.Equal(t, "abc", sanitizeBody("abcdefghij", 3, false))
}
