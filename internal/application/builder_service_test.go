package application

import (
	"context"
	"testing"

	"github.com/OliveiraNt/tabsmith/internal/exporter"
	"github.com/OliveiraNt/tabsmith/internal/metrics"
	"github.com/OliveiraNt/tabsmith/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) (*BuilderService, *testutil.RecordingClipboard, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	fs := testutil.NewFakeStorage()
	store := NewTabStore(fs, WithDebounce(testDebounce), WithIDGenerator(sequentialIDs()), WithMetrics(m))
	t.Cleanup(store.Close)
	clip := &testutil.RecordingClipboard{}
	return NewBuilderService(store, clip, m), clip, m
}

func counterValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if g := metric.GetGauge(); g != nil {
				total += g.GetValue()
			}
		}
	}
	return total
}

func TestBuilderService_Delegates(t *testing.T) {
	svc, _, _ := newTestBuilder(t)

	tab, ok := svc.Add()
	require.True(t, ok)
	require.True(t, svc.Rename(tab.ID, "Second"))
	require.True(t, svc.EditContent(tab.ID, "body"))
	require.True(t, svc.SelectActive("id-1"))

	snap := svc.Snapshot()
	assert.Equal(t, "id-1", snap.ActiveID)
	assert.Equal(t, "Second", snap.Tabs[1].Title)
	assert.Same(t, svc.Store(), svc.store)

	require.True(t, svc.RemoveActive())
	assert.Equal(t, tab.ID, svc.Snapshot().ActiveID)
}

func TestBuilderService_Generate(t *testing.T) {
	svc, _, m := newTestBuilder(t)
	assert.Equal(t, "", svc.LastGenerated())

	svc.EditContent("id-1", "<b>hi</b>")
	out := svc.Generate()

	assert.Equal(t, exporter.Render(svc.Store().Tabs()), out)
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Equal(t, out, svc.LastGenerated())
	assert.Equal(t, 1.0, counterValue(t, m, "tabsmith_exports_total"))

	svc.Rename("id-1", "Renamed")
	assert.Equal(t, out, svc.LastGenerated(), "last output only changes on Generate")
}

func TestBuilderService_CopyLastGenerated(t *testing.T) {
	svc, clip, _ := newTestBuilder(t)
	ctx := context.Background()

	assert.False(t, svc.CopyLastGenerated(ctx), "nothing generated yet")
	assert.Empty(t, clip.Texts())

	out := svc.Generate()
	assert.True(t, svc.CopyLastGenerated(ctx))
	assert.Equal(t, []string{out}, clip.Texts())

	clip.Err = testutil.ErrInjected
	assert.False(t, svc.CopyLastGenerated(ctx))
}

func TestBuilderService_CopyWithoutClipboard(t *testing.T) {
	store := NewTabStore(testutil.NewFakeStorage())
	t.Cleanup(store.Close)
	svc := NewBuilderService(store, nil, nil)
	svc.Generate()

	assert.False(t, svc.CopyLastGenerated(context.Background()))
}

func TestBuilderService_RecordsTabMetrics(t *testing.T) {
	svc, _, m := newTestBuilder(t)
	svc.Add()
	svc.SelectActive("missing")

	assert.Equal(t, 2.0, counterValue(t, m, "tabsmith_tab_operations_total"))
	assert.Equal(t, 2.0, counterValue(t, m, "tabsmith_tabs"))
}
