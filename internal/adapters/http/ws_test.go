package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func readSnapshot(t *testing.T, conn *websocket.Conn) tabsResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var resp tabsResponse
	require.NoError(t, json.Unmarshal(msg, &resp))
	return resp
}

func TestWSPushesSnapshots(t *testing.T) {
	s, _ := buildServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readSnapshot(t, conn)
	require.Equal(t, 1, initial.Count)

	require.Eventually(t, func() bool { return s.hub.count() == 1 }, time.Second, 5*time.Millisecond)
	tab, ok := s.builder.Add()
	require.True(t, ok)

	next := readSnapshot(t, conn)
	require.Equal(t, 2, next.Count)
	require.Equal(t, tab.ID, next.ActiveID)
}

func TestWSRejectsForeignOrigin(t *testing.T) {
	s, _ := buildServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Zero(t, s.hub.count())

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {srv.URL}})
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, 1, readSnapshot(t, conn).Count)
}

func TestWSHubDropsSlowClient(t *testing.T) {
	h := newWSHub()
	c := &wsClient{send: make(chan []byte, 1)}
	require.True(t, h.add(c))

	s, _ := buildServer(t)
	snap := s.builder.Snapshot()
	h.broadcast(snap)
	h.broadcast(snap)

	require.Equal(t, 0, h.count())
	_, ok := <-c.send
	require.True(t, ok, "buffered message is still delivered")
	_, ok = <-c.send
	require.False(t, ok, "channel closed after drop")
}

func TestWSHubClose(t *testing.T) {
	h := newWSHub()
	unsubscribed := false
	h.unsubscribe = func() { unsubscribed = true }
	c := &wsClient{send: make(chan []byte, 1)}
	require.True(t, h.add(c))

	h.close()
	h.close()
	require.True(t, unsubscribed)
	require.False(t, h.add(&wsClient{send: make(chan []byte, 1)}))
	_, ok := <-c.send
	require.False(t, ok)
}
