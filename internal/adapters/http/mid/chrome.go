package mid

import (
	"net/http"
	"slices"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/adapters/http/ui"
)

// Cookie names read by Chrome.
const (
	ThemeCookie    = "theme"
	LastMenuCookie = "lastMenu"
)

const lastMenuAge = 30 * 24 * time.Hour

// Chrome returns middleware that stores the theme and last visited menu entry in the
// request context. Page GETs for any of menuPaths are remembered as the last menu entry.
func Chrome(menuPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := ui.Chrome{Theme: ui.ThemeLight, Path: r.URL.Path}
			if ck, err := r.Cookie(ThemeCookie); err == nil {
				c.Theme = ui.NormalizeTheme(ck.Value)
			}
			if ck, err := r.Cookie(LastMenuCookie); err == nil && slices.Contains(menuPaths, ck.Value) {
				c.LastMenu = ck.Value
			}

			if r.Method == http.MethodGet && slices.Contains(menuPaths, r.URL.Path) {
				http.SetCookie(w, &http.Cookie{
					Name:     LastMenuCookie,
					Value:    r.URL.Path,
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(lastMenuAge.Seconds()),
				})
			}

			next.ServeHTTP(w, r.WithContext(ui.WithChrome(r.Context(), c)))
		})
	}
}
