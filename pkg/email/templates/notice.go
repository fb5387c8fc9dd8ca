package templates

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// Notice is a short security email: a title, a few paragraphs and an
// optional call to action.
type Notice struct {
	AppName     string
	Title       string
	Paragraphs  []string
	ActionURL   string
	ActionLabel string
	OccurredAt  time.Time
	Support     string
}

// SecurityNotice renders n as a self-contained HTML document. All text is escaped.
func SecurityNotice(n Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := templ.EscapeString[string]
		p := &printer{w: w}

		p.printf(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title></head>`, e(n.Title))
		p.printf(`<body style="font-family:Arial,sans-serif;color:#1f2933;max-width:560px;margin:0 auto;padding:24px">`)
		p.printf(`<p style="font-size:12px;color:#7b8794;text-transform:uppercase">%s</p>`, e(n.AppName))
		p.printf(`<h1 style="font-size:20px">%s</h1>`, e(n.Title))
		for _, para := range n.Paragraphs {
			p.printf(`<p>%s</p>`, e(para))
		}
		if !n.OccurredAt.IsZero() {
			p.printf(`<p style="font-size:13px;color:#52606d">%s</p>`, e(n.OccurredAt.UTC().Format("2006-01-02 15:04 MST")))
		}
		if n.ActionURL != "" && n.ActionLabel != "" {
			p.printf(`<p><a href="%s" style="background:#2563eb;color:#fff;padding:10px 16px;border-radius:4px;text-decoration:none">%s</a></p>`,
				e(string(templ.URL(n.ActionURL))), e(n.ActionLabel))
		}
		if n.Support != "" {
			p.printf(`<p style="font-size:13px;color:#52606d">If this was not you, contact <a href="mailto:%s">%s</a>.</p>`,
				e(n.Support), e(n.Support))
		}
		p.printf(`</body></html>`)

		return p.err
	})
}

// printer stops writing after the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
