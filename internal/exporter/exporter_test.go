package exporter_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/OliveiraNt/tabsmith/internal/exporter"
	"github.com/stretchr/testify/require"
)

func tabs(titles ...string) []domain.Tab {
	out := make([]domain.Tab, len(titles))
	for i, title := range titles {
		out[i] = domain.Tab{ID: fmt.Sprintf("id-%d", i), Title: title, Content: "body " + title}
	}
	return out
}

func TestRender_SingleTabScenario(t *testing.T) {
	t.Parallel()
	html := exporter.Render([]domain.Tab{{ID: "x", Title: "A", Content: "hi\nthere"}})

	require.True(t, strings.HasPrefix(html, "<!doctype html>"))
	require.Contains(t, html, "<title>Tabs Output</title>")
	require.Contains(t, html, "<body")
	require.Equal(t, 1, strings.Count(html, `<button type="button" role="tab"`))
	require.Contains(t, html, `>A</button>`)
	require.Equal(t, 1, strings.Count(html, `<div role="tabpanel"`))
	require.Contains(t, html, `hi<br/>there</div>`)
	require.Contains(t, html, `aria-labelledby="tab-1" style="border:1px solid #ddd;border-radius:10px;padding:12px;display:block">`)
}

func TestRender_FirstTabVisibleOnly(t *testing.T) {
	t.Parallel()
	html := exporter.Render(tabs("one", "two", "three"))

	require.Equal(t, 1, strings.Count(html, "display:block"))
	require.Equal(t, 2, strings.Count(html, "display:none"))
	require.Equal(t, 1, strings.Count(html, `aria-selected="true"`))
	require.Equal(t, 2, strings.Count(html, `aria-selected="false"`))
	require.Contains(t, html, `id="tab-1" data-tab="panel-1" aria-controls="panel-1" aria-selected="true"`)
	require.Contains(t, html, `id="panel-1" data-panel="panel-1"`)

	// controls and panels follow input order
	require.Less(t, strings.Index(html, ">one</button>"), strings.Index(html, ">two</button>"))
	require.Less(t, strings.Index(html, ">two</button>"), strings.Index(html, ">three</button>"))
	require.Less(t, strings.Index(html, "body one"), strings.Index(html, "body two"))
}

func TestRender_EscapesContentAndTitle(t *testing.T) {
	t.Parallel()
	html := exporter.Render([]domain.Tab{
		{ID: "1", Title: "R&D", Content: "<script>alert(1)</script>"},
		{ID: "2", Title: `say "hi" <b>`, Content: `a & b "q"`},
	})

	require.NotContains(t, html, "<script>alert(1)</script>")
	require.Equal(t, 1, strings.Count(html, "<script>"))
	require.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	require.Contains(t, html, ">R&amp;D</button>")
	require.Contains(t, html, ">say &quot;hi&quot; &lt;b&gt;</button>")
	require.Contains(t, html, "a &amp; b &quot;q&quot;")
}

func TestEscapeHTML_AmpersandFirst(t *testing.T) {
	t.Parallel()
	require.Equal(t, "&amp;lt;", exporter.EscapeHTML("&lt;"))
	require.Equal(t, "&amp;&lt;&gt;&quot;'", exporter.EscapeHTML(`&<>"'`))
}

func TestContentHTML_LineBreaks(t *testing.T) {
	t.Parallel()
	require.Equal(t, "a<br/>b<br/><br/>c", exporter.ContentHTML("a\nb\r\n\nc"))
	require.Equal(t, "", exporter.ContentHTML(""))
}

func TestLabel_Fallback(t *testing.T) {
	t.Parallel()
	require.Equal(t, "A", exporter.Label(domain.Tab{Title: "  A  "}, 0))
	require.Equal(t, "Tab 3", exporter.Label(domain.Tab{Title: "   "}, 2))

	html := exporter.Render(tabs("first", ""))
	require.Contains(t, html, ">Tab 2</button>")
}

func TestRender_CapsAtMaxTabs(t *testing.T) {
	t.Parallel()
	in := make([]domain.Tab, 20)
	for i := range in {
		in[i] = domain.Tab{ID: fmt.Sprint(i), Title: fmt.Sprintf("T%d", i+1)}
	}
	html := exporter.Render(in)
	require.Equal(t, domain.MaxTabs, strings.Count(html, `<button type="button" role="tab"`))
	require.Equal(t, domain.MaxTabs, strings.Count(html, `<div role="tabpanel"`))
	require.Contains(t, html, ">T15</button>")
	require.NotContains(t, html, ">T16</button>")
	require.Len(t, in, 20)
}

func TestRender_DeterministicAndPure(t *testing.T) {
	t.Parallel()
	in := tabs("a", "b")
	before := append([]domain.Tab(nil), in...)

	first := exporter.Render(in)
	second := exporter.Render(in)
	require.Equal(t, first, second)
	require.Equal(t, before, in)
}

func TestRender_IdentifiersIgnoreTabIDs(t *testing.T) {
	t.Parallel()
	a := []domain.Tab{{ID: "qx-first-id", Title: "A"}}
	b := []domain.Tab{{ID: "qx-second-id", Title: "A"}}
	require.Equal(t, exporter.Render(a), exporter.Render(b))
	require.NotContains(t, exporter.Render(a), "qx-first-id")
}

func TestRender_SelfContained(t *testing.T) {
	t.Parallel()
	html := exporter.Render(tabs("a", "b"))
	for _, ref := range []string{"http://", "https://", "src=", "href=", "<link", "class="} {
		require.NotContains(t, html, ref)
	}
	require.Contains(t, html, "addEventListener('click'")
	require.Contains(t, html, "setAttribute('aria-selected'")
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()
	html := exporter.Render(nil)
	require.Contains(t, html, `role="tablist"`)
	require.NotContains(t, html, "<button")
	require.True(t, strings.HasSuffix(html, "</html>\n"))
}

func TestDocument_RendersToWriter(t *testing.T) {
	t.Parallel()
	in := tabs("a")
	var buf bytes.Buffer
	require.NoError(t, exporter.Document(in).Render(context.Background(), &buf))
	require.Equal(t, exporter.Render(in), buf.String())
}
