package game

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingBroadcaster struct {
	mu    sync.Mutex
	count int
	last  GameState
}

func (b *countingBroadcaster) BroadcastStep(step func() GameState) GameState {
	s := step()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count++
	b.last = s
	return s
}

func (b *countingBroadcaster) snapshot() (int, GameState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count, b.last
}

type countingMirror struct {
	count int
}

func (m *countingMirror) Mirror(GameState) { m.count++ }

func TestSchedulerBroadcastsWithoutPlayers(t *testing.T) {
	r := NewRoom(nil)
	b := &countingBroadcaster{}
	s := NewScheduler(r, b, TickRate)

	s.TickOnce()
	s.TickOnce()

	n, last := b.snapshot()
	if n != 2 {
		t.Errorf("expected 2 broadcasts, got %d", n)
	}
	if last.Ball.DX != 0 || len(last.Blocks) != 120 {
		t.Errorf("unexpected idle snapshot: %+v", last.Ball)
	}
}

func TestSchedulerAdvancesConnectedRoom(t *testing.T) {
	r := NewRoom(nil)
	r.Connect()
	b := &countingBroadcaster{}
	s := NewScheduler(r, b, TickRate)

	s.TickOnce()

	_, last := b.snapshot()
	if last.Ball.X != SpawnX+LaunchDX || last.Ball.Y != SpawnY+LaunchDY {
		t.Errorf("ball should have moved one step: %+v", last.Ball)
	}
}

func TestSchedulerInterval(t *testing.T) {
	s := NewScheduler(NewRoom(nil), nil, 0)
	if s.Interval() != time.Second/TickRate {
		t.Errorf("default interval = %v", s.Interval())
	}
	if got := NewScheduler(NewRoom(nil), nil, 100).Interval(); got != 10*time.Millisecond {
		t.Errorf("interval for 100Hz = %v", got)
	}
}

func TestSchedulerMirrorsEveryN(t *testing.T) {
	m := &countingMirror{}
	s := NewScheduler(NewRoom(nil), nil, TickRate).WithMirror(m, 3)

	for i := 0; i < 9; i++ {
		s.TickOnce()
	}

	if m.count != 3 {
		t.Errorf("expected 3 mirrors in 9 ticks, got %d", m.count)
	}
}

func TestSchedulerMirrorDisabled(t *testing.T) {
	m := &countingMirror{}
	s := NewScheduler(NewRoom(nil), nil, TickRate).WithMirror(m, 0)

	s.TickOnce()

	if m.count != 0 {
		t.Errorf("mirror should be disabled, got %d calls", m.count)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	b := &countingBroadcaster{}
	s := NewScheduler(NewRoom(nil), b, 500)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}

	if n, _ := b.snapshot(); n == 0 {
		t.Error("expected at least one tick before cancel")
	}
}
