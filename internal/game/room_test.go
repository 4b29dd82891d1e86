package game

import (
	"sync"
	"testing"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []MatchEvent
}

func (p *recordingPublisher) Publish(ev MatchEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func TestRoomStartsIdle(t *testing.T) {
	r := NewRoom(nil)
	s := r.Snapshot()

	if s.Ball.DX != 0 || s.Ball.DY != 0 || s.Ball.X != SpawnX || s.Ball.Y != SpawnY {
		t.Errorf("ball should start parked at the spawn point: %+v", s.Ball)
	}
	if s.Paddles.Left.Y != PaddleStartY || s.Paddles.Right.Y != PaddleStartY {
		t.Errorf("paddles should start at %.0f: %+v", PaddleStartY, s.Paddles)
	}
	if len(s.Blocks) != 120 {
		t.Errorf("expected 120 blocks, got %d", len(s.Blocks))
	}
}

func TestTickWithoutPlayersChangesNothing(t *testing.T) {
	r := NewRoom(nil)
	r.state.Ball = Ball{X: 100, Y: 100, DX: 5, DY: 5, Radius: BallRadius}
	before := r.Snapshot()

	for i := 0; i < 100; i++ {
		r.Tick()
	}

	after := r.Snapshot()
	if after.Ball != before.Ball || after.Paddles != before.Paddles {
		t.Errorf("idle room should not move: before=%+v after=%+v", before.Ball, after.Ball)
	}
	for i := range after.Blocks {
		if after.Blocks[i] != before.Blocks[i] {
			t.Fatalf("block %d changed while idle", i)
		}
	}
}

func TestFirstConnectLaunchesBall(t *testing.T) {
	r := NewRoom(nil)

	snapshot := r.Connect()

	want := Ball{X: 600, Y: 300, DX: -4, DY: -4, Radius: BallRadius}
	if snapshot.Ball != want {
		t.Errorf("catch-up snapshot ball=%+v want %+v", snapshot.Ball, want)
	}
	if r.Players() != 1 {
		t.Errorf("expected 1 player, got %d", r.Players())
	}
}

func TestSecondConnectDoesNotRelaunch(t *testing.T) {
	r := NewRoom(nil)
	r.Connect()
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	moved := r.Snapshot().Ball

	snapshot := r.Connect()

	if snapshot.Ball != moved {
		t.Errorf("second join must not reset the ball: got %+v want %+v", snapshot.Ball, moved)
	}
	if r.Players() != 2 {
		t.Errorf("expected 2 players, got %d", r.Players())
	}
}

func TestLastDisconnectResetsMatch(t *testing.T) {
	r := NewRoom(nil)
	r.Connect()
	r.MovePaddle(SideLeft, 320)
	for i := 0; i < 3000; i++ {
		r.Tick()
	}
	r.state.Paddles.Left.Score = 7
	r.state.Blocks[0].Active = false

	r.Disconnect()

	s := r.Snapshot()
	want := Ball{X: 600, Y: 300, Radius: BallRadius}
	if s.Ball != want {
		t.Errorf("ball should be parked: %+v", s.Ball)
	}
	if s.Paddles.Left.Score != 0 || s.Paddles.Right.Score != 0 {
		t.Errorf("scores should reset: %+v", s.Paddles)
	}
	if len(s.Blocks) != 120 || s.ActiveBlocks() != 120 {
		t.Errorf("grid should be rebuilt: len=%d active=%d", len(s.Blocks), s.ActiveBlocks())
	}
	if s.Paddles.Left.Y != 320 {
		t.Errorf("paddle offset is not part of the reset, got %.0f", s.Paddles.Left.Y)
	}
}

func TestDisconnectWithRemainingPlayerKeepsMatch(t *testing.T) {
	r := NewRoom(nil)
	r.Connect()
	r.Connect()
	r.state.Paddles.Right.Score = 4

	r.Disconnect()

	s := r.Snapshot()
	if s.Paddles.Right.Score != 4 {
		t.Errorf("score should survive a partial disconnect: %+v", s.Paddles)
	}
	if r.Players() != 1 {
		t.Errorf("expected 1 player, got %d", r.Players())
	}
}

func TestDisconnectNeverGoesNegative(t *testing.T) {
	r := NewRoom(nil)

	r.Disconnect()
	r.Disconnect()

	if r.Players() != 0 {
		t.Errorf("player count went negative: %d", r.Players())
	}
}

func TestMovePaddleClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 250, 250},
		{"below zero", -50, 0},
		{"above max", 900, 500},
		{"lower bound", 0, 0},
		{"upper bound", 500, 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRoom(nil)
			if !r.MovePaddle(SideRight, tc.in) {
				t.Fatal("right side should be accepted")
			}
			if got := r.Snapshot().Paddles.Right.Y; got != tc.want {
				t.Errorf("MovePaddle(%v) stored %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMovePaddleUnknownSideIgnored(t *testing.T) {
	r := NewRoom(nil)
	before := r.Snapshot().Paddles

	if r.MovePaddle(Side("top"), 200) {
		t.Error("unknown side should be rejected")
	}
	if r.Snapshot().Paddles != before {
		t.Error("unknown side must not change paddles")
	}
}

func TestBlocksNeverReactivateDuringPlay(t *testing.T) {
	r := NewRoom(nil)
	r.Connect()
	dead := make(map[int]bool)

	for i := 0; i < 10000; i++ {
		s := r.Tick()
		for idx, b := range s.Blocks {
			if !b.Active {
				dead[idx] = true
			} else if dead[idx] {
				t.Fatalf("block %d reactivated at tick %d", idx, i)
			}
		}
	}
}

func TestRoomPublishesLifecycleEvents(t *testing.T) {
	pub := &recordingPublisher{}
	r := NewRoom(pub)

	r.Connect()
	r.Disconnect()

	got := pub.types()
	want := []string{MatchEventPlayerConnected, MatchEventPlayerDisconnected, MatchEventReset}
	if len(got) != len(want) {
		t.Fatalf("events=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRoomPublishesBlockEvents(t *testing.T) {
	pub := &recordingPublisher{}
	r := NewRoom(pub)
	r.Connect()
	r.state.Blocks = []Block{{X: 100, Y: 100, Active: true, Color: TeamPurple}}
	r.state.Ball = Ball{X: 91, Y: 120, DX: 4, Radius: BallRadius}

	r.Tick()

	types := pub.types()
	if types[len(types)-1] != MatchEventBlockDestroyed {
		t.Fatalf("expected block_destroyed, got %v", types)
	}
	last := pub.events[len(pub.events)-1]
	if last.Side != SideRight || last.RightScore != 1 {
		t.Errorf("unexpected block event: %+v", last)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	r := NewRoom(nil)
	s := r.Snapshot()
	s.Blocks[0].Active = false

	if !r.Snapshot().Blocks[0].Active {
		t.Error("mutating a snapshot must not affect the room")
	}
}

func TestConcurrentInputAndTicks(t *testing.T) {
	r := NewRoom(nil)
	r.Connect()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				r.MovePaddle(SideLeft, float64(i*w))
				r.MovePaddle(SideRight, float64(-i))
			}
		}(w)
	}
	for i := 0; i < 500; i++ {
		r.Tick()
	}
	wg.Wait()

	s := r.Snapshot()
	for _, y := range []float64{s.Paddles.Left.Y, s.Paddles.Right.Y} {
		if y < PaddleMinY || y > PaddleMaxY {
			t.Errorf("paddle escaped clamp: %v", y)
		}
	}
}
