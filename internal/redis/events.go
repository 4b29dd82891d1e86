package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/playmatatu/blockpong/internal/game"
	"github.com/redis/go-redis/v9"
)

// EventsChannel is the pub/sub channel carrying match lifecycle events.
const EventsChannel = "arena_events"

const eventQueueSize = 128

// EventPublisher publishes match events to Redis from a background
// goroutine so the simulation never waits on the network.
type EventPublisher struct {
	rdb   *redis.Client
	queue chan game.MatchEvent
}

// NewEventPublisher returns a publisher for rdb. A nil client yields a
// publisher that drops everything.
func NewEventPublisher(rdb *redis.Client) *EventPublisher {
	return &EventPublisher{
		rdb:   rdb,
		queue: make(chan game.MatchEvent, eventQueueSize),
	}
}

// Publish queues ev without blocking. Events are dropped when the queue is full.
func (p *EventPublisher) Publish(ev game.MatchEvent) {
	if p == nil || p.rdb == nil {
		return
	}
	select {
	case p.queue <- ev:
	default:
		log.Printf("[REDIS] event queue full, dropping %s", ev.Type)
	}
}

// Start drains the queue until ctx is cancelled.
func (p *EventPublisher) Start(ctx context.Context) {
	if p == nil || p.rdb == nil {
		log.Println("[REDIS] Redis client not set; event publisher not started")
		return
	}

	log.Println("[REDIS] event publisher started")
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("[REDIS] event publisher stopping")
				return
			case ev := <-p.queue:
				p.send(ctx, ev)
			}
		}
	}()
}

func (p *EventPublisher) send(ctx context.Context, ev game.MatchEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[REDIS] marshal event %s: %v", ev.Type, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if n, err := p.rdb.Publish(ctx, EventsChannel, b).Result(); err != nil {
		log.Printf("[REDIS] publish %s failed: %v", ev.Type, err)
	} else {
		log.Printf("[REDIS] published %s: players=%d subscribers=%d", ev.Type, ev.Players, n)
	}
}
