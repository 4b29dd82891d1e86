package game

import (
	"log"
	"sync"
	"time"
)

// Match lifecycle event types published to observers.
const (
	MatchEventPlayerConnected    = "player_connected"
	MatchEventPlayerDisconnected = "player_disconnected"
	MatchEventReset              = "match_reset"
	MatchEventBlockDestroyed     = "block_destroyed"
)

// MatchEvent is an informational lifecycle notification.
type MatchEvent struct {
	Type       string    `json:"type"`
	Players    int       `json:"players"`
	Side       Side      `json:"side,omitempty"`
	Color      TeamColor `json:"color,omitempty"`
	LeftScore  int       `json:"left_score"`
	RightScore int       `json:"right_score"`
	At         int64     `json:"at"`
}

// EventPublisher receives match events. Implementations must not block.
type EventPublisher interface {
	Publish(ev MatchEvent)
}

// Room is the simulation context for a single match. It owns the GameState
// and the connected player count; every mutation goes through its mutex.
type Room struct {
	state   *GameState
	players int
	events  EventPublisher
	mu      sync.Mutex
}

// NewRoom creates a room with the startup state. events may be nil.
func NewRoom(events EventPublisher) *Room {
	return &Room{
		state:  NewGameState(),
		events: events,
	}
}

// Connect registers a new session and returns the catch-up snapshot that
// must be sent to that session only.
func (r *Room) Connect() GameState {
	r.mu.Lock()
	r.players++
	if r.players == 1 {
		r.state.Ball = launchBall()
	}
	players := r.players
	snapshot := r.state.Clone()
	r.mu.Unlock()

	log.Printf("[GAME] Player connected (Total: %d)", players)
	r.publish(MatchEventPlayerConnected, players, snapshot, "", "")
	return snapshot
}

// Disconnect unregisters a session. When the last player leaves the ball is
// parked, both scores are cleared and the block grid is rebuilt.
func (r *Room) Disconnect() {
	r.mu.Lock()
	if r.players == 0 {
		r.mu.Unlock()
		log.Printf("[GAME] Disconnect with no connected players ignored")
		return
	}
	r.players--
	players := r.players
	reset := players == 0
	if reset {
		r.state.Ball = idleBall()
		r.state.Paddles.Left.Score = 0
		r.state.Paddles.Right.Score = 0
		InitBlocks(r.state)
	}
	snapshot := r.state.Clone()
	r.mu.Unlock()

	log.Printf("[GAME] Player disconnected (Remaining: %d)", players)
	r.publish(MatchEventPlayerDisconnected, players, snapshot, "", "")
	if reset {
		r.publish(MatchEventReset, players, snapshot, "", "")
	}
}

// MovePaddle clamps y and writes it to the paddle of side. It reports false
// for an unknown side, which is otherwise ignored.
func (r *Room) MovePaddle(side Side, y float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.state.Paddle(side)
	if p == nil {
		return false
	}
	p.Y = ClampPaddleY(y)
	return true
}

// Tick advances the simulation by one step if anyone is connected and
// returns the resulting snapshot.
func (r *Room) Tick() GameState {
	r.mu.Lock()
	var events []CollisionEvent
	if r.players > 0 {
		events = Step(r.state)
	}
	players := r.players
	snapshot := r.state.Clone()
	r.mu.Unlock()

	for _, ev := range events {
		if ev.Type == EventBlock {
			r.publish(MatchEventBlockDestroyed, players, snapshot, ev.Side, ev.Color)
		}
	}
	return snapshot
}

// Snapshot returns a copy of the current state.
func (r *Room) Snapshot() GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Players returns the number of connected sessions.
func (r *Room) Players() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.players
}

func (r *Room) publish(kind string, players int, s GameState, side Side, color TeamColor) {
	if r.events == nil {
		return
	}
	r.events.Publish(MatchEvent{
		Type:       kind,
		Players:    players,
		Side:       side,
		Color:      color,
		LeftScore:  s.Paddles.Left.Score,
		RightScore: s.Paddles.Right.Score,
		At:         time.Now().Unix(),
	})
}
