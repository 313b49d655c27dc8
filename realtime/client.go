// File: /realtime/client.go
package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// client serializes writes to a websocket connection. Hub notifications and
// keepalive pings come from different goroutines, and a gorilla connection
// allows only one concurrent writer.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) writePing() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *client) Close() error {
	return c.conn.Close()
}

// Serve binds an authenticated websocket connection to the hub and blocks
// reading it until the peer goes away. Inbound frames carry no meaning; the
// read loop exists to observe disconnects and refresh the pong deadline.
func Serve(hub *Hub, userID string, conn *websocket.Conn) {
	c := &client{conn: conn}
	generation := hub.Register(userID, c)

	done := make(chan struct{})
	defer func() {
		close(done)
		hub.Unregister(userID, generation)
		_ = c.Close()
	}()

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := c.writePing(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
