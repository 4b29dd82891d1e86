package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/blockpong/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one connected session.
type Client struct {
	id    string
	hub   *Hub
	conn  *websocket.Conn
	codec Codec
	send  chan frame
}

// writePump writes queued frames to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel; best-effort close frame.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(f.kind, f.data); err != nil {
				log.Printf("[WS] write error for session %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for session %s: %v", c.id, err)
				return
			}
		}
	}
}

// readPump reads inbound messages until the connection drops. Any exit,
// graceful or not, goes through Hub.remove.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] unexpected close for session %s: %v", c.id, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("[WS] invalid frame from session %s: %v", c.id, err)
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage applies an inbound message. Unknown types and malformed
// payloads are dropped without telling the client.
func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case MsgPaddleMove:
		var data PaddleMoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.Y == nil {
			return
		}
		c.hub.room.MovePaddle(game.Side(data.Side), *data.Y)

	default:
		log.Printf("[WS] unknown message type %q from session %s", msg.Type, c.id)
	}
}
