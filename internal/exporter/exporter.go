// Package exporter renders a tab collection into one standalone HTML document.
// The document uses inline styles only and carries a small script that switches
// tabs in the browser, so it works without the application that produced it.
package exporter

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/a-h/templ"
)

const (
	documentTitle = "Tabs Output"
	activeColor   = "#1d8346ff"
	inactiveColor = "#89268bff"
)

// escaper handles & in the same pass as the other characters, so nothing is escaped twice.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes &, <, > and double quotes.
func EscapeHTML(s string) string {
	return escaper.Replace(s)
}

// ContentHTML escapes s and converts its line breaks to <br/>.
func ContentHTML(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br/>")
}

// Label returns the control label for the tab at zero-based position i.
func Label(t domain.Tab, i int) string {
	if title := strings.TrimSpace(t.Title); title != "" {
		return title
	}
	return domain.DefaultTitle(i + 1)
}

// Render returns the exported document for tabs.
func Render(tabs []domain.Tab) string {
	var b strings.Builder
	// writes to a strings.Builder cannot fail
	_ = Document(tabs).Render(context.Background(), &b)
	return b.String()
}

// Document returns a component that writes the exported document. Only the first
// domain.MaxTabs tabs are rendered and the first one is always the visible one.
func Document(tabs []domain.Tab) templ.Component {
	if len(tabs) > domain.MaxTabs {
		tabs = tabs[:domain.MaxTabs]
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>` + documentTitle + `</title>
</head>
<body style="margin:16px;font-family:system-ui,Arial,sans-serif;color:#111;background:#fff;">
  <div id="tabs" style="max-width:900px;margin:0 auto;">
    <h1 style="font-size:20px;margin:0 0 12px 0;">` + documentTitle + `</h1>
    <div role="tablist" aria-label="Generated tabs" style="display:flex;gap:8px;flex-wrap:wrap;margin-bottom:12px;">
      `)
		for i, t := range tabs {
			writeButton(&b, t, i)
		}
		b.WriteString("\n    </div>\n")
		for i, t := range tabs {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("    ")
			writePanel(&b, t, i)
		}
		b.WriteString("\n  </div>\n")
		b.WriteString(script)
		b.WriteString("</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeButton(b *strings.Builder, t domain.Tab, i int) {
	n := strconv.Itoa(i + 1)
	on := i == 0
	bg := inactiveColor
	if on {
		bg = activeColor
	}
	b.WriteString(`<button type="button" role="tab" id="tab-` + n + `" data-tab="panel-` + n +
		`" aria-controls="panel-` + n + `" aria-selected="` + strconv.FormatBool(on) +
		`" style="padding:8px 12px;border:1px solid #999;border-radius:8px;color:#fff;background:` + bg +
		`;cursor:pointer;">`)
	b.WriteString(EscapeHTML(Label(t, i)))
	b.WriteString(`</button>`)
}

func writePanel(b *strings.Builder, t domain.Tab, i int) {
	n := strconv.Itoa(i + 1)
	display := "display:none"
	if i == 0 {
		display = "display:block"
	}
	b.WriteString(`<div role="tabpanel" id="panel-` + n + `" data-panel="panel-` + n +
		`" aria-labelledby="tab-` + n + `" style="border:1px solid #ddd;border-radius:10px;padding:12px;` +
		display + `">`)
	b.WriteString(ContentHTML(t.Content))
	b.WriteString(`</div>`)
}

const script = `  <script>
    (function(){
      var tabs = Array.prototype.slice.call(document.querySelectorAll('[role="tab"]'));
      var panels = Array.prototype.slice.call(document.querySelectorAll('[role="tabpanel"]'));
      function activate(id){
        tabs.forEach(function(t){
          var on = t.getAttribute('data-tab') === id;
          t.setAttribute('aria-selected', on ? 'true' : 'false');
          t.style.background = on ? '` + activeColor + `' : '` + inactiveColor + `';
        });
        panels.forEach(function(p){
          p.style.display = p.getAttribute('data-panel') === id ? 'block' : 'none';
        });
      }
      tabs.forEach(function(t){
        t.addEventListener('click', function(){ activate(t.getAttribute('data-tab')); });
      });
    })();
  </script>
`
