package ws

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/blockpong/internal/game"
)

const defaultSendBuffer = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are checked by middleware.WebSocketCORSCheck before the upgrade.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks connected sessions for a room and fans snapshots out to them.
// Sessions join and leave synchronously under mu, so a join is always
// recorded before that session's read loop can leave.
type Hub struct {
	room       *game.Room
	clients    map[string]*Client
	sendBuffer int
	closed     bool
	mu         sync.RWMutex
}

// NewHub creates a hub bound to room. sendBuffer <= 0 uses the default.
func NewHub(room *game.Room, sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		room:       room,
		clients:    make(map[string]*Client),
		sendBuffer: sendBuffer,
	}
}

// Run blocks until ctx is cancelled, then closes every session and refuses
// new ones.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// add registers the session with the room and queues the catch-up snapshot
// for it alone. The hub lock is held so no tick broadcast can reach the new
// session ahead of its catch-up frame. It reports false once the hub is shut.
func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	snapshot := h.room.Connect()
	f, err := encode(c.codec, MsgGameState, snapshot)
	if err != nil {
		log.Printf("[WS] catch-up encode failed for session %s: %v", c.id, err)
	} else {
		c.send <- f
	}

	h.clients[c.id] = c
	log.Printf("[WS] Session %s connected (codec=%s, sessions=%d)", c.id, c.codec, len(h.clients))
	return true
}

// remove detaches the session and tells the room. Unknown or already
// removed sessions are ignored.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.clients[c.id]
	if !ok || cur != c {
		return
	}
	delete(h.clients, c.id)
	close(c.send)

	h.room.Disconnect()
	log.Printf("[WS] Session %s disconnected (sessions=%d)", c.id, len(h.clients))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

// BroadcastStep runs step and sends its snapshot to every session. Joins
// wait for the broadcast to finish, so a session never receives a snapshot
// taken before its catch-up frame.
func (h *Hub) BroadcastStep(step func() game.GameState) game.GameState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	state := step()
	h.broadcastLocked(MsgGameState, state)
	return state
}

// Broadcast sends a typed message to every session without blocking; a
// session whose buffer is full misses the frame.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.broadcastLocked(msgType, data)
}

// broadcastLocked encodes once per codec. If a codec fails to encode, only
// the sessions using it miss the frame.
func (h *Hub) broadcastLocked(msgType string, data interface{}) {
	if len(h.clients) == 0 {
		return
	}

	encoded := make(map[Codec]frame, 2)
	failed := make(map[Codec]bool, 2)
	for _, client := range h.clients {
		if failed[client.codec] {
			continue
		}
		f, ok := encoded[client.codec]
		if !ok {
			var err error
			f, err = encode(client.codec, msgType, data)
			if err != nil {
				log.Printf("[WS] Error encoding %s as %s: %v", msgType, client.codec, err)
				failed[client.codec] = true
				continue
			}
			encoded[client.codec] = f
		}

		select {
		case client.send <- f:
		default:
			log.Printf("[WS] send buffer full for session %s, dropping %s", client.id, msgType)
		}
	}
}

// ClientCount returns the number of registered sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and attaches a new session to the hub.
// Append ?codec=msgpack to receive binary snapshots.
func HandleWebSocket(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		codec := ParseCodec(c.Query("codec"))

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			id:    uuid.NewString(),
			hub:   h,
			conn:  conn,
			codec: codec,
			send:  make(chan frame, h.sendBuffer),
		}

		if !h.add(client) {
			log.Printf("[WS] Hub closed; rejecting session %s", client.id)
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}
