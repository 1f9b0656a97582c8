// Package views renders the HTML pages of the web interface as templ components.
package views

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData is shared by every page
type PageData struct {
	Title string
	Flash *FlashMessage
	// Admin is set when the visitor holds an admin session
	Admin bool
}

// printer writes HTML fragments, escaping every string argument.
// The first write error sticks and later writes are skipped.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// f formats into the page, escaping every string-like argument,
// including named string types such as model.League
func (p *printer) f(format string, args ...any) {
	for i, a := range args {
		args[i] = escapeArg(a)
	}
	p.raw(fmt.Sprintf(format, args...))
}

func escapeArg(a any) any {
	switch v := a.(type) {
	case string:
		return templ.EscapeString(v)
	case fmt.Stringer:
		return templ.EscapeString(v.String())
	}
	if rv := reflect.ValueOf(a); rv.IsValid() && rv.Kind() == reflect.String {
		return templ.EscapeString(rv.String())
	}
	return a
}

func (p *printer) component(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

// Layout wraps body in the common page chrome
func Layout(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw("<!DOCTYPE html>\n<html lang=\"it\">\n<head>\n<meta charset=\"utf-8\">\n")
		p.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		p.f("<title>%s - CWL Roster</title>\n", data.Title)
		p.raw("<link rel=\"stylesheet\" href=\"/static/style.css\">\n</head>\n<body>\n")

		p.raw("<nav>\n<a href=\"/\">Iscrizioni CWL</a>\n")
		if data.Admin {
			p.raw("<a href=\"/admin\">Admin</a>\n")
			p.raw("<form method=\"post\" action=\"/admin/logout\" class=\"inline\"><button type=\"submit\">Esci</button></form>\n")
		} else {
			p.raw("<a href=\"/admin/login\">Area admin</a>\n")
		}
		p.raw("</nav>\n")

		if data.Flash != nil {
			p.f("<div class=\"flash flash-%s\" role=\"alert\">%s</div>\n", data.Flash.Type, data.Flash.Message)
		}

		p.raw("<main>\n")
		p.component(ctx, body)
		p.raw("</main>\n</body>\n</html>\n")
		return p.err
	})
}
