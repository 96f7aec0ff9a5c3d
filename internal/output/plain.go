package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/newor0599/ignis/internal/model"
)

// PlainFormatter formats notifications as human-readable plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notifications as plain text, one block per notification.
func (f *PlainFormatter) Format(w io.Writer, notifications []*model.Notification) error {
	for _, n := range notifications {
		if err := f.formatNotification(w, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatNotification(w io.Writer, n *model.Notification) error {
	if f.template != nil {
		data := templateData{
			Notification: n,
			RelativeTime: humanize.Time(n.CreatedAtTime()),
		}
		return f.template.Execute(w, data)
	}

	var sb strings.Builder

	if f.opts.ShowID {
		sb.WriteString(fmt.Sprintf("[%d] ", n.ID))
	}

	if f.opts.ShowApp && n.AppName != "" {
		sb.WriteString(fmt.Sprintf("<%s> ", n.AppName))
	}

	sb.WriteString(n.Summary)

	if f.opts.ShowTime {
		sb.WriteString(fmt.Sprintf(" (%s)", humanize.Time(n.CreatedAtTime())))
	}

	sb.WriteString("\n")

	if n.Body != "" {
		body := sanitizeBody(n.Body, f.opts.BodyMaxLen, f.opts.IncludeNewline)
		if body != "" {
			sb.WriteString("    " + body + "\n")
		}
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}
