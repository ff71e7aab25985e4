package httpserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/adapters/http/mid"
	"github.com/OliveiraNt/tabsmith/internal/adapters/http/ui"
	"github.com/OliveiraNt/tabsmith/internal/adapters/http/ui/pages"
	"github.com/OliveiraNt/tabsmith/internal/application"
	"github.com/OliveiraNt/tabsmith/internal/config"
	"github.com/OliveiraNt/tabsmith/internal/metrics"
	"github.com/OliveiraNt/tabsmith/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const staticCacheDuration = 7 * 24 * time.Hour

// Server provides the HTTP API and Web UI endpoints for the tab builder.
type Server struct {
	builder  *application.BuilderService
	metrics  *metrics.Metrics
	hub      *wsHub
	validate *validator.Validate
}

// New creates a new HTTP server instance and subscribes it to store changes.
func New(builder *application.BuilderService, m *metrics.Metrics) *Server {
	s := &Server{
		builder:  builder,
		metrics:  m,
		hub:      newWSHub(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.hub.unsubscribe = builder.Store().Subscribe(s.hub.broadcast)
	return s
}

// Router builds the chi router with every route and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(mid.I18n)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			dur := time.Since(start)
			utils.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", dur.String(),
			)
		})
	})
	r.Use(mid.Chrome(pages.MenuPaths()))
	r.Use(mid.RejectCrossOrigin)

	r.Handle("/static/*", http.StripPrefix("/static/", StaticWithCache(ui.StaticFS(), staticCacheDuration)))

	r.Get("/lang", ChangeLanguage)
	r.Get("/theme", ChangeTheme)
	r.Get("/healthz", healthz)
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/", s.uiHome)
	r.Get("/about", s.uiAbout)
	r.Post("/tabs", s.uiAddTab)
	r.Post("/tabs/remove-active", s.uiRemoveActive)
	r.Post("/tabs/{tabID}", s.uiUpdateTab)
	r.Post("/tabs/{tabID}/select", s.uiSelectTab)
	r.Post("/generate", s.uiGenerate)
	r.Get("/export.html", s.uiExport)

	r.Get("/api/tabs", s.apiListTabs)
	r.Post("/api/tabs", s.apiAddTab)
	r.Delete("/api/tabs/active", s.apiRemoveActive)
	r.Put("/api/tabs/active", s.apiSelectTab)
	r.Put("/api/tabs/{tabID}/title", s.apiRenameTab)
	r.Put("/api/tabs/{tabID}/content", s.apiEditContent)
	r.Post("/api/generate", s.apiGenerate)
	r.Get("/api/generate/last", s.apiLastGenerated)
	r.Post("/api/clipboard", s.apiCopy)

	r.Get("/ws", s.wsTabs)

	return r
}

// Run serves HTTP on cfg.Addr() until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("HTTP server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("HTTP server shutting down", "timeout", cfg.ShutdownTimeout.String())
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close detaches the server from the store and disconnects websocket clients.
func (s *Server) Close() {
	s.hub.close()
}

// StaticWithCache serves files from fsys applying a public max-age cache header.
func StaticWithCache(fsys fs.FS, maxAge time.Duration) http.HandlerFunc {
	files := http.FileServerFS(fsys)
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := fs.Stat(fsys, r.URL.Path)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))

		files.ServeHTTP(w, r)
	}
}

// ChangeLanguage changes the language preference via a query parameter and sets a cookie.
func ChangeLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     mid.LangCookie,
		Value:    lang,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   31536000,
	})

	redirectBack(w, r)
}

// ChangeTheme stores the light or dark theme preference in a cookie.
func ChangeTheme(w http.ResponseWriter, r *http.Request) {
	theme := ui.NormalizeTheme(r.URL.Query().Get("theme"))
	http.SetCookie(w, &http.Cookie{
		Name:     mid.ThemeCookie,
		Value:    theme,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   31536000,
	})
	utils.Logger.Debug("theme changed", "theme", theme)

	redirectBack(w, r)
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	ref := r.Header.Get("Referer")
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusSeeOther)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
