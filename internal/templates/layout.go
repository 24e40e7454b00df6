// Package templates renders the server-side HTML pages.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const stylesheet = `body{font-family:system-ui,sans-serif;margin:0;color:#1f2933;background:#f5f7fa}
header{background:#0b3d91;color:#fff;padding:1rem 2rem}
header a{color:#fff;text-decoration:none;font-weight:600}
main{max-width:960px;margin:2rem auto;padding:0 1rem}
table{border-collapse:collapse;width:100%}
td,th{padding:.4rem .6rem;border-bottom:1px solid #d9e2ec;text-align:left}
.notice{background:#fff3c4;padding:.6rem 1rem;border-radius:4px}
.muted{color:#7b8794;font-size:.9rem}`

// Layout wraps body in the page chrome
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | CIV.IQ</title>
<style>%s</style>
</head>
<body>
<header><a href="/">CIV.IQ</a></header>
<main>
`, templ.EscapeString(title), stylesheet)
		if err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err = io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

// Message renders a heading and a single paragraph, used for errors
func Message(title, text string) templ.Component {
	return Layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p>%s</p>\n", templ.EscapeString(title), templ.EscapeString(text))
		return err
	}))
}

// writer accumulates the first write error so page bodies read linearly
type writer struct {
	w   io.Writer
	err error
}

func (pw *writer) printf(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

// row writes a two-column table row, skipping empty values
func (pw *writer) row(label, value string) {
	if value == "" {
		return
	}
	pw.printf("<tr><th>%s</th><td>%s</td></tr>\n", templ.EscapeString(label), templ.EscapeString(value))
}

func (pw *writer) notices(unavailable, flags []string) {
	for _, source := range unavailable {
		pw.printf("<p class=\"notice\">%s data is temporarily unavailable.</p>\n", templ.EscapeString(source))
	}
	for _, flag := range flags {
		pw.printf("<p class=\"muted\">%s</p>\n", templ.EscapeString(flag))
	}
}
