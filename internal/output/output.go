// Package output provides output formatters for notification listings.
package output

import (
	"io"

	"github.com/newor0599/ignis/internal/model"
)

// Formatter formats notifications for output.
type Formatter interface {
	// Format writes formatted notifications to the writer.
	Format(w io.Writer, notifications []*model.Notification) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatDmenu FormatType = "dmenu"
	FormatIDs   FormatType = "ids"
)

// NewFormatter creates a formatter for the specified format type.
// Unknown types fall back to plain.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template       string // Custom template for dmenu/plain format
	ShowID         bool   // Show the notification id prefix
	ShowTime       bool   // Show relative time
	ShowApp        bool   // Show app name
	BodyMaxLen     int    // Maximum body length (0 = unlimited)
	Separator      string // Field separator for dmenu format
	IncludeNewline bool   // Keep newlines in body (default: replace with space)
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowID:         true,
		ShowTime:       true,
		ShowApp:        true,
		BodyMaxLen:     80,
		Separator:      " | ",
		IncludeNewline: false,
	}
}
