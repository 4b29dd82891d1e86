package game

import (
	"context"
	"log"
	"time"
)

// Broadcaster runs a tick through step and delivers the resulting snapshot
// to every connected session. No session may join between the step and the
// delivery.
type Broadcaster interface {
	BroadcastStep(step func() GameState) GameState
}

// SnapshotMirror keeps a copy of the live snapshot for external readers.
// Implementations must not block the caller.
type SnapshotMirror interface {
	Mirror(state GameState)
}

// Scheduler drives a Room at a fixed tick rate from a single goroutine, so
// ticks never overlap.
type Scheduler struct {
	room        *Room
	broadcaster Broadcaster
	interval    time.Duration
	mirror      SnapshotMirror
	mirrorEvery uint64
	ticks       uint64
}

// NewScheduler creates a scheduler running tickRate ticks per second.
// A non-positive tickRate falls back to TickRate.
func NewScheduler(room *Room, b Broadcaster, tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = TickRate
	}
	return &Scheduler{
		room:        room,
		broadcaster: b,
		interval:    time.Second / time.Duration(tickRate),
	}
}

// WithMirror mirrors the snapshot every n ticks. n <= 0 disables mirroring.
func (s *Scheduler) WithMirror(m SnapshotMirror, n int) *Scheduler {
	if m == nil || n <= 0 {
		s.mirror = nil
		s.mirrorEvery = 0
		return s
	}
	s.mirror = m
	s.mirrorEvery = uint64(n)
	return s
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Run ticks until ctx is cancelled. Ticks never overlap. A tick that runs
// longer than the interval makes the ticker drop the ticks it missed rather
// than queue them, so a slow tick slows the simulation instead of bursting
// to catch up.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[SCHED] Simulation started (tick every %v)", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[SCHED] Simulation stopped after %d ticks", s.ticks)
			return
		case <-ticker.C:
			s.TickOnce()
		}
	}
}

// TickOnce runs one simulation step and broadcasts the result. The
// broadcast happens whether or not anyone is connected.
func (s *Scheduler) TickOnce() {
	var snapshot GameState
	if s.broadcaster != nil {
		snapshot = s.broadcaster.BroadcastStep(s.room.Tick)
	} else {
		snapshot = s.room.Tick()
	}
	s.ticks++

	if s.mirror != nil && s.ticks%s.mirrorEvery == 0 {
		s.mirror.Mirror(snapshot)
	}
}
