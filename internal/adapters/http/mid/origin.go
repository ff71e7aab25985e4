package mid

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/OliveiraNt/tabsmith/internal/utils"
)

// SameOrigin reports whether r has no Origin header or one naming r.Host.
// Browsers always send Origin on cross-site writes and websocket handshakes.
func SameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// RejectCrossOrigin answers 403 to state-changing requests that fail SameOrigin.
func RejectCrossOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !SameOrigin(r) {
				utils.Logger.Warn("cross-origin request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"origin", r.Header.Get("Origin"),
				)
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
