// Package websocket provides the live check-in feed for admin dashboards.
// file: websocket/connection.go
package websocket

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go-trip-ops/logger"
)

// WSConn is an interface for the WebSocket connection.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection represents a single WebSocket connection for one dashboard client.
type Connection struct {
	conn   WSConn
	send   chan []byte
	tripID string
}

// Global registry of active connections.
var (
	connMu      sync.Mutex
	connections = make(map[*Connection]bool)
)

// broadcast is the channel feed into HandleMessages.
var broadcast = make(chan []byte, 64)

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
)

// Upgrader upgrades HTTP requests to WebSocket connections.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for now. Adjust for production if needed.
		return true
	},
}

// ServeWs upgrades the HTTP request to a WebSocket connection and starts the
// read and write pumps. Each connection subscribes to one trip's feed.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	tripID := r.URL.Query().Get("tripId")
	if tripID == "" {
		logger.Error.Println("No trip selected; rejecting WebSocket connection")
		http.Error(w, "No trip selected", http.StatusBadRequest)
		return
	}

	logger.Info.Printf("[ServeWs] Upgrading to WS: remoteAddr=%v, tripId=%q", r.RemoteAddr, tripID)
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{conn: wsConn, send: make(chan []byte, 16), tripID: tripID}
	register(c)

	go c.writePump()
	go c.readPump()
}

func register(c *Connection) {
	connMu.Lock()
	connections[c] = true
	count := len(connections)
	connMu.Unlock()
	PublishFeedConnections(count, c.tripID)
}

func unregister(c *Connection) {
	connMu.Lock()
	if _, ok := connections[c]; ok {
		delete(connections, c)
		close(c.send)
	}
	count := len(connections)
	connMu.Unlock()
	PublishFeedConnections(count, c.tripID)
}

// readPump drains (and discards) client frames so pong handling and close
// detection work.
func (c *Connection) readPump() {
	defer func() {
		unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Debug.Printf("[readPump] connection closed for trip %s: %v", c.tripID, err)
			return
		}
	}
}

// writePump pushes feed messages and pings to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn.Printf("[writePump] write failed for trip %s: %v", c.tripID, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
