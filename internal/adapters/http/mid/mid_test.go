package mid

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/OliveiraNt/tabsmith/internal/adapters/http/ui"
	"github.com/OliveiraNt/tabsmith/internal/config"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/invopop/ctxi18n"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	if err := config.InitI18n("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func localeOf(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var code string
	h := I18n(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		code = ctxi18n.Locale(r.Context()).Code().String()
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return code, rec
}

func TestI18n_Sources(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	code, _ := localeOf(t, req)
	require.Equal(t, "pt-BR", code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: LangCookie, Value: "pt-BR"})
	code, _ = localeOf(t, req)
	require.Equal(t, "pt-BR", code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	code, _ = localeOf(t, req)
	require.Equal(t, "en", code)
}

func TestI18n_QuerySetsCookie(t *testing.T) {
	code, rec := localeOf(t, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	require.Equal(t, "pt-BR", code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, LangCookie, cookies[0].Name)
	require.Equal(t, "pt-BR", cookies[0].Value)
}

func chromeOf(req *http.Request) (ui.Chrome, *httptest.ResponseRecorder) {
	var got ui.Chrome
	h := Chrome([]string{"/", "/about"})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = ui.ChromeFrom(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return got, rec
}

func TestChrome_ReadsCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: "dark"})
	req.AddCookie(&http.Cookie{Name: LastMenuCookie, Value: "/"})

	c, rec := chromeOf(req)
	require.Equal(t, ui.Chrome{Theme: ui.ThemeDark, LastMenu: "/", Path: "/about"}, c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, LastMenuCookie, cookies[0].Name)
	require.Equal(t, "/about", cookies[0].Value)
	require.Equal(t, 30*24*60*60, cookies[0].MaxAge)
}

func TestChrome_IgnoresNonMenuRequests(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tabs", nil)
	req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: "sepia"})
	req.AddCookie(&http.Cookie{Name: LastMenuCookie, Value: "https://evil.example"})

	c, rec := chromeOf(req)
	require.Equal(t, ui.ThemeLight, c.Theme)
	require.Empty(t, c.LastMenu)
	require.Empty(t, rec.Result().Cookies())

	_, rec = chromeOf(httptest.NewRequest(http.MethodGet, "/api/tabs", nil))
	require.Empty(t, rec.Result().Cookies())
}

func TestSameOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tabs", nil)
	require.True(t, SameOrigin(req))

	req.Header.Set("Origin", "http://example.com")
	require.True(t, SameOrigin(req))

	req.Header.Set("Origin", "http://EXAMPLE.com")
	require.True(t, SameOrigin(req))

	for _, origin := range []string{"http://evil.example", "null", "http://example.com:8080", "%zz"} {
		req.Header.Set("Origin", origin)
		require.False(t, SameOrigin(req), origin)
	}
}

func TestRejectCrossOrigin(t *testing.T) {
	called := 0
	h := RejectCrossOrigin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called++
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(method, origin string) int {
		req := httptest.NewRequest(method, "/api/tabs", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, serve(http.MethodPost, ""))
	require.Equal(t, http.StatusNoContent, serve(http.MethodPut, "http://example.com"))
	require.Equal(t, http.StatusNoContent, serve(http.MethodGet, "http://evil.example"))
	require.Equal(t, 3, called)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		require.Equal(t, http.StatusForbidden, serve(method, "http://evil.example"), method)
	}
	require.Equal(t, 3, called)
}
