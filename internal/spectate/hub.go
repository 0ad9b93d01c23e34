// Package spectate streams live boards to read-only WebSocket viewers.
//
// A Hub keeps one client set per play session. Engines publish through
// Attach; spectators connect at /ws?session=<id> and receive a JSON Frame
// after every engine notification. Spectators cannot send input.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Frames queued for the hub loop before publishers start dropping.
	broadcastBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one spectator connection.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// message is one entry of the hub's ordered queue: either a frame to fan
// out or the end of a session.
type message struct {
	frame *Frame
	ended string
}

// Hub maintains spectators per session and fans frames out to them.
type Hub struct {
	logger *log.Logger

	// Owned by Run.
	sessions map[string]map[*client]bool
	last     map[string][]byte

	broadcast  chan message // frames and session ends, in publish order
	register   chan *client
	unregister chan *client
	done       chan struct{} // closed when Run returns

	mu     sync.Mutex
	active map[string]bool // sessions with an attached engine
}

// NewHub creates a hub. Call Run to start delivering frames.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger:     logger,
		sessions:   make(map[string]map[*client]bool),
		last:       make(map[string][]byte),
		broadcast:  make(chan message, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		active:     make(map[string]bool),
	}
}

// Run is the hub's event loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id := range h.sessions {
				h.closeSession(id)
			}
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.handle(msg)
		}
	}
}

// Publish queues a frame for delivery. It never blocks: when the hub is
// saturated the frame is dropped and a warning logged.
func (h *Hub) Publish(f *Frame) {
	select {
	case h.broadcast <- message{frame: f}:
	default:
		h.logger.Warn("spectate: dropping frame", "session", f.SessionID, "version", f.Version)
	}
}

// end queues the close of a session behind its pending frames. It blocks
// while the queue is full so the end is never lost.
func (h *Hub) end(sessionID string) {
	select {
	case h.broadcast <- message{ended: sessionID}:
	case <-h.done:
	}
}

// handle applies one queued message.
func (h *Hub) handle(msg message) {
	if msg.frame != nil {
		h.broadcastFrame(msg.frame)
		return
	}
	h.closeSession(msg.ended)
}

// Sessions returns the IDs of sessions that currently have an engine
// attached, sorted.
func (h *Hub) Sessions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.active))
	for id := range h.active {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (h *Hub) isActive(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active[id]
}

func (h *Hub) setActive(id string, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if on {
		h.active[id] = true
	} else {
		delete(h.active, id)
	}
}

// Handler returns the HTTP routes: /ws for spectators and /sessions for
// the list of live session IDs.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session")
		if id == "" {
			http.Error(w, "missing session parameter", http.StatusBadRequest)
			return
		}
		if !h.isActive(id) {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		h.ServeWS(w, r, id)
	})
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(h.Sessions()); err != nil {
			h.logger.Warn("spectate: cannot write session list", "err", err)
		}
	})
	return mux
}

// ServeWS upgrades the request and registers a spectator for sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectate: upgrade failed", "err", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, broadcastBuffer),
		sessionID: sessionID,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// ListenAndServe serves Handler on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	h.logger.Info("Spectator server listening", "address", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// registerClient adds a client and sends it the latest frame, if any.
func (h *Hub) registerClient(c *client) {
	if h.sessions[c.sessionID] == nil {
		h.sessions[c.sessionID] = make(map[*client]bool)
	}
	h.sessions[c.sessionID][c] = true

	if data, ok := h.last[c.sessionID]; ok {
		c.send <- data
	}

	h.logger.Debug("Spectator joined", "session", c.sessionID, "viewers", len(h.sessions[c.sessionID]))
}

// unregisterClient removes a client from its session.
func (h *Hub) unregisterClient(c *client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
	h.logger.Debug("Spectator left", "session", c.sessionID, "viewers", len(clients))
}

// broadcastFrame encodes f once and sends it to every spectator of its session.
func (h *Hub) broadcastFrame(f *Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Warn("spectate: cannot encode frame", "err", err)
		return
	}
	h.last[f.SessionID] = data

	for c := range h.sessions[f.SessionID] {
		select {
		case c.send <- data:
		default:
			// Slow viewer.
			h.unregisterClient(c)
		}
	}
}

// closeSession drops the cached frame and disconnects every spectator.
func (h *Hub) closeSession(id string) {
	delete(h.last, id)
	for c := range h.sessions[id] {
		h.unregisterClient(c)
	}
}

// readPump discards incoming messages and unregisters on disconnect.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("spectate: read error", "err", err)
			}
			return
		}
	}
}

// writePump sends frames and pings until the hub closes the send channel.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
