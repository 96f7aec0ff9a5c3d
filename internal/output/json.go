package output

import (
	"encoding/json"
	"io"

	"github.com/newor0599/ignis/internal/model"
)

// JSONFormatter formats notifications as an indented JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes notifications as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, notifications []*model.Notification) error {
	if notifications == nil {
		notifications = []*model.Notification{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notifications)
}
