// internal/app/features/chat/client.go
package chat

import (
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 60 * time.Second
	sendBuffer   = 32
)

// client is one live websocket connection scoped to a single room.
type client struct {
	id     string
	userID primitive.ObjectID
	roomID primitive.ObjectID
	wc     *websocket.Conn
	send   chan []byte
}

// readLoop drains inbound frames until the peer disconnects. Messages are
// sent over the REST endpoint, not the socket, so inbound text is ignored;
// the loop exists to observe the close handshake and ping replies.
func (c *client) readLoop() {
	defer c.wc.Close()
	c.wc.SetReadLimit(4096)
	for {
		if _, _, err := c.wc.NextReader(); err != nil {
			return
		}
	}
}

// writeLoop pushes broadcasts to the peer and keeps the connection alive
// with periodic pings.
func (c *client) writeLoop() {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	defer c.wc.Close()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = c.wc.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.wc.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-t.C:
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.wc.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}
