package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsServer(t *testing.T, handler func(*websocket.Conn, *http.Request)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		handler(conn, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClientReceivesAndDispatchesEvents(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
		err := conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type":"notification","payload":{"id":"n1","type":"like"}}`))
		require.NoError(t, err)
		// Keep the connection up until the client closes it.
		conn.ReadMessage()
	})

	c := NewClient(wsURL(srv))
	got := make(chan Event, 1)
	c.On(EventNotification, func(e Event) { got <- e })

	require.NoError(t, c.Connect("tok-1"))
	defer c.Close()

	select {
	case e := <-got:
		assert.Equal(t, EventNotification, e.Type)
		assert.Contains(t, string(e.Payload), `"n1"`)
	case <-time.After(2 * time.Second):
		t.Fatal("event was never dispatched")
	}
}

func TestClientFansOutToEveryHandler(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
		err := conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type":"notification","payload":{"id":"n2"}}`))
		require.NoError(t, err)
		conn.ReadMessage()
	})

	c := NewClient(wsURL(srv))
	got := make(chan string, 2)
	c.On(EventNotification, func(e Event) { got <- "first" })
	c.On(EventNotification, func(e Event) { got <- "second" })

	require.NoError(t, c.Connect(""))
	defer c.Close()

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case name := <-got:
			seen[name] = true
		case <-time.After(2 * time.Second):
			t.Fatal("not every handler ran")
		}
	}
	assert.True(t, seen["first"])
	assert.True(t, seen["second"])
}

func TestClientSendsBearerToken(t *testing.T) {
	auth := make(chan string, 1)
	srv := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
		auth <- r.Header.Get("Authorization")
	})

	c := NewClient(wsURL(srv))
	require.NoError(t, c.Connect("tok-7"))
	defer c.Close()

	select {
	case got := <-auth:
		assert.Equal(t, "Bearer tok-7", got)
	case <-time.After(2 * time.Second):
		t.Fatal("handshake never arrived")
	}
}

func TestClientIgnoresUnsubscribedAndMalformedEvents(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"new_message","payload":{}}`))
		conn.ReadMessage()
	})

	c := NewClient(wsURL(srv))
	got := make(chan Event, 1)
	c.On(EventNewMessage, func(e Event) { got <- e })

	require.NoError(t, c.Connect(""))
	defer c.Close()

	select {
	case e := <-got:
		assert.Equal(t, EventNewMessage, e.Type, "earlier junk must not break the stream")
	case <-time.After(2 * time.Second):
		t.Fatal("event was never dispatched")
	}
}

func TestConnectFailure(t *testing.T) {
	c := NewClient("ws://127.0.0.1:1/ws")
	err := c.Connect("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "websocket dial")
}
