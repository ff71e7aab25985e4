// Package pages renders the editor pages as templ components.
package pages

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"context"
	"strings"

	"github.com/OliveiraNt/tabsmith/internal/adapters/http/ui"
	"github.com/OliveiraNt/tabsmith/internal/domain"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
)

type menuItem struct {
	href string
	key  string
}

var menu = []menuItem{
	{href: "/", key: "nav.home"},
	{href: "/about", key: "nav.about"},
}

// MenuPaths returns the paths listed in the navigation menu.
func MenuPaths() []string {
	paths := make([]string, len(menu))
	for i, m := range menu {
		paths[i] = m.href
	}
	return paths
}

func langCode(ctx context.Context) string {
	if l := ctxi18n.Locale(ctx); l != nil {
		return l.Code().String()
	}
	return "en"
}

func themeLabel(ctx context.Context) string {
	if ui.ChromeFrom(ctx).Theme == ui.ThemeDark {
		return i18n.T(ctx, "app.theme_light")
	}
	return i18n.T(ctx, "app.theme_dark")
}

func themeIcon(ctx context.Context) string {
	if ui.ChromeFrom(ctx).Theme == ui.ThemeDark {
		return "🌙"
	}
	return "🌞"
}

func showFooter(c ui.Chrome) bool {
	return c.LastMenu != "" && c.LastMenu != c.Path
}

func activeTab(snap domain.Snapshot) domain.Tab {
	active, _ := snap.Active()
	return active
}

// signature identifies the tab order and selection; the page script reloads when it changes.
func signature(snap domain.Snapshot) string {
	ids := make([]string, len(snap.Tabs))
	for i, tab := range snap.Tabs {
		ids[i] = tab.ID
	}
	return snap.ActiveID + "|" + strings.Join(ids, ",")
}
