// Push wires callbackhub results out to remote clients over a WebSocket,
// the out-of-process companion to the in-process Hub of package
// callbackhub, keeping a connection-set-plus-broadcast shape.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"tinkervision.dev/tv/base/errors"
	"tinkervision.dev/tv/module"
)

// pushMessage is the JSON payload broadcast to every connected client each
// time a result is dispatched.
type pushMessage struct {
	ModuleID module.ID         `json:"module_id"`
	Kind     module.ResultKind `json:"kind"`
	X        int32             `json:"x,omitempty"`
	Y        int32             `json:"y,omitempty"`
	W        int32             `json:"w,omitempty"`
	H        int32             `json:"h,omitempty"`
	Scalar   int32             `json:"scalar,omitempty"`
	String   string            `json:"string,omitempty"`
}

// PushServer upgrades HTTP connections to WebSockets and broadcasts every
// result it is handed to all currently connected clients.
type PushServer struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewPushServer returns a PushServer that accepts connections from any
// origin; callers embed it into their own HTTP mux at whatever path they
// choose (there is no fixed "/ws" route baked in here).
func NewPushServer() *PushServer {
	return &PushServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the
// client disconnects or sends a close frame; any message the client sends
// is read and discarded, only to keep the connection alive for writes.
func (p *PushServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	p.mu.Lock()
	p.conns[conn] = struct{}{}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.conns, conn)
		p.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Callback is a callbackhub.Callback suitable for EnableDefaultCallback or
// SetCallback, broadcasting every delivered result as JSON.
func (p *PushServer) Callback(id module.ID, res module.Result, ctx any) {
	msg := pushMessage{
		ModuleID: id,
		Kind:     res.Kind,
		X:        res.X,
		Y:        res.Y,
		W:        res.W,
		H:        res.H,
		Scalar:   res.Scalar,
		String:   res.String,
	}
	data, err := json.Marshal(msg)
	if errors.Log(err) != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for conn := range p.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			errors.Log(err)
		}
	}
}
