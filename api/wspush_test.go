package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/module"
)

func TestPushServerBroadcastsResultToConnectedClient(t *testing.T) {
	p := NewPushServer()
	srv := httptest.NewServer(p)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	// give the server a moment to register the connection before broadcasting
	time.Sleep(20 * time.Millisecond)
	p.Callback(1, module.RectResult(10, 20, 30, 40), nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"module_id":1`)
	assert.Contains(t, string(data), `"w":30`)
}
