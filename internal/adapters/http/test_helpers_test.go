package httpserver

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/OliveiraNt/tabsmith/internal/application"
	"github.com/OliveiraNt/tabsmith/internal/config"
	"github.com/OliveiraNt/tabsmith/internal/metrics"
	"github.com/OliveiraNt/tabsmith/internal/testutil"
	"github.com/OliveiraNt/tabsmith/internal/utils"
	"github.com/go-chi/chi/v5"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	if err := config.InitI18n("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testDeps struct {
	storage   *testutil.FakeStorage
	clipboard *testutil.RecordingClipboard
	metrics   *metrics.Metrics
}

// buildServer builds a Server over an in-memory store that has been loaded.
func buildServer(t *testing.T) (*Server, testDeps) {
	t.Helper()
	deps := testDeps{
		storage:   testutil.NewFakeStorage(),
		clipboard: &testutil.RecordingClipboard{},
		metrics:   metrics.New(),
	}
	store := application.NewTabStore(deps.storage,
		application.WithDebounce(20*time.Millisecond),
		application.WithMetrics(deps.metrics),
	)
	store.Load()
	builder := application.NewBuilderService(store, deps.clipboard, deps.metrics)
	s := New(builder, deps.metrics)
	t.Cleanup(func() {
		s.Close()
		store.Close()
	})
	return s, deps
}

// chiCtxWithParam adds a single URL param to request context for handler funcs using chi.URLParam
func chiCtxWithParam(key, val string, req *http.Request) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
}
