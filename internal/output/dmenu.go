package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/newor0599/ignis/internal/model"
)

// DmenuFormatter formats notifications one per line for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notifications in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, notifications []*model.Notification) error {
	for _, n := range notifications {
		if _, err := fmt.Fprintln(w, f.formatLine(n)); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(n *model.Notification) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{
			Notification: n,
			RelativeTime: humanize.Time(n.CreatedAtTime()),
		}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowID {
		parts = append(parts, fmt.Sprintf("%d", n.ID))
	}

	if f.opts.ShowTime {
		parts = append(parts, humanize.Time(n.CreatedAtTime()))
	}

	if f.opts.ShowApp && n.AppName != "" {
		parts = append(parts, n.AppName)
	}

	content := n.Summary
	if n.Body != "" {
		body := sanitizeBody(n.Body, f.opts.BodyMaxLen, f.opts.IncludeNewline)
		if body != "" {
			content += ": " + body
		}
	}
	parts = append(parts, content)

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Notification *model.Notification
	RelativeTime string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"urgencyIcon": func(urgency int) string {
			switch urgency {
			case model.UrgencyLow:
				return "L"
			case model.UrgencyCritical:
				return "!"
			default:
				return "-"
			}
		},
	}
}

// sanitizeBody cleans up body text for single-line display.
func sanitizeBody(body string, maxLen int, includeNewline bool) string {
	if !includeNewline {
		body = strings.ReplaceAll(body, "\n", " ")
		body = strings.ReplaceAll(body, "\r", "")
	}

	for strings.Contains(body, "  ") {
		body = strings.ReplaceAll(body, "  ", " ")
	}

	body = strings.TrimSpace(body)

	if maxLen > 0 && len(body) > maxLen {
		if maxLen <= 3 {
			return body[:maxLen]
		}
		return body[:maxLen-3] + "..."
	}

	return body
}
