package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/hand"
)

// clientBuffer is the number of outbound messages queued per client.
const clientBuffer = 256

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// inbound is a message from the renderer. A message with a command runs it;
// anything else is a frame. Landmarks, when present, replace the hands.
type inbound struct {
	app.Frame
	Command   app.CommandKind  `json:"command,omitempty"`
	Stroke    string           `json:"stroke,omitempty"`
	Index     int              `json:"index,omitempty"`
	Landmarks []hand.Landmarks `json:"landmarks,omitempty"`
}

type bridgeError struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Bridge connects renderers over WebSocket. It feeds their frames and
// commands to the engine and broadcasts every engine event to all of them.
type Bridge struct {
	app     Application
	hand    hand.Config
	log     *zap.Logger
	clients map[*client]bool
	mu      sync.RWMutex
}

// NewBridge creates a Bridge and subscribes it to a's events.
func NewBridge(a Application, handCfg hand.Config, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bridge{
		app:     a,
		hand:    handCfg,
		log:     log,
		clients: make(map[*client]bool),
	}
	a.Subscribe(b.broadcast)
	return b
}

// ServeHTTP handles WebSocket upgrade requests.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	b.mu.Lock()
	b.clients[c] = true
	b.mu.Unlock()
	go c.writeLoop()

	b.log.Info("renderer connected", zap.String("remote", r.RemoteAddr))
	defer func() {
		b.remove(c)
		// Without input the hands are gone; let the engine end any drag.
		b.app.Submit(app.Frame{})
		b.log.Info("renderer disconnected", zap.String("remote", r.RemoteAddr))
	}()

	adapter := hand.NewAdapter(b.hand)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		b.handle(r.Context(), c, adapter, data)
	}
}

func (b *Bridge) handle(ctx context.Context, c *client, adapter *hand.Adapter, data []byte) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		b.reply(c, "invalid message: "+err.Error())
		return
	}

	if msg.Command != "" {
		cmd := app.Command{Kind: msg.Command, Stroke: msg.Stroke, Index: msg.Index}
		if err := b.app.Command(ctx, cmd); err != nil {
			b.reply(c, err.Error())
		}
		return
	}

	f := msg.Frame
	if msg.Landmarks != nil {
		hands, taps := adapter.Convert(f.DT, msg.Landmarks)
		f.Hands = hands
		f.Taps = append(f.Taps, taps...)
	}
	b.app.Submit(f)
}

func (b *Bridge) reply(c *client, message string) {
	msg, _ := json.Marshal(bridgeError{Kind: "error", Error: message})
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.clients[c] {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// broadcast runs on the pipeline goroutine and never blocks it.
func (b *Bridge) broadcast(ev app.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("encoding event", zap.Error(err))
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for c := range b.clients {
		select {
		case c.send <- msg:
		default:
			b.log.Warn("client too slow, event dropped", zap.String("event", string(ev.Kind)))
		}
	}
}

func (b *Bridge) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients[c] {
		delete(b.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

// Clients returns the number of connected renderers.
func (b *Bridge) Clients() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close disconnects every renderer.
func (b *Bridge) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		delete(b.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
