package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playmatatu/blockpong/internal/game"
	"github.com/redis/go-redis/v9"
)

// StartEventSubscriber relays match events published on channel to every
// session as matchEvent messages.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client, channel string, h *Hub) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, channel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", channel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				relayEvent(h, msg.Payload)
			}
		}
	}()
}

func relayEvent(h *Hub, payload string) {
	var ev game.MatchEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}
	if ev.Type == "" {
		log.Printf("[WS] event without type ignored")
		return
	}
	h.Broadcast(MsgMatchEvent, ev)
}
