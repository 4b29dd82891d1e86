package game

import "math"

// Collision event kinds reported by Step.
const (
	EventWall    = "wall"
	EventPaddle  = "paddle"
	EventBlock   = "block"
	EventRespawn = "respawn"
)

// CollisionEvent records something the ball hit during a tick.
type CollisionEvent struct {
	Type       string    `json:"type"`
	Side       Side      `json:"side,omitempty"`        // paddle hit or scoring side of a block
	BlockIndex int       `json:"block_index,omitempty"` // index into GameState.Blocks
	Color      TeamColor `json:"color,omitempty"`
}

// box is an axis-aligned bounding box.
type box struct {
	left, right, top, bottom float64
}

func (b box) overlaps(o box) bool {
	return b.right > o.left && b.left < o.right && b.bottom > o.top && b.top < o.bottom
}

func ballBox(b Ball) box {
	return box{
		left:   b.X - b.Radius,
		right:  b.X + b.Radius,
		top:    b.Y - b.Radius,
		bottom: b.Y + b.Radius,
	}
}

func blockBox(bl Block) box {
	return box{
		left:   bl.X,
		right:  bl.X + BlockWidth,
		top:    bl.Y,
		bottom: bl.Y + BlockHeight,
	}
}

// Step advances the simulation by one tick and returns what the ball hit.
// Callers only step while at least one player is connected.
func Step(gs *GameState) []CollisionEvent {
	var events []CollisionEvent
	ball := &gs.Ball

	ball.X += ball.DX
	ball.Y += ball.DY

	// No clamping: the ball may overshoot a wall by up to one step.
	if ball.Y < 0 || ball.Y > FieldHeight {
		ball.DY = -ball.DY
		events = append(events, CollisionEvent{Type: EventWall})
	}

	if ball.X-ball.Radius < PaddlePlaneOffset && withinPaddle(ball.Y, gs.Paddles.Left) {
		ball.DX = math.Abs(ball.DX)
		events = append(events, CollisionEvent{Type: EventPaddle, Side: SideLeft})
	}
	if ball.X+ball.Radius > FieldWidth-PaddlePlaneOffset && withinPaddle(ball.Y, gs.Paddles.Right) {
		ball.DX = -math.Abs(ball.DX)
		events = append(events, CollisionEvent{Type: EventPaddle, Side: SideRight})
	}

	events = append(events, collideBlocks(gs)...)

	if ball.X < 0 || ball.X > FieldWidth {
		*ball = launchBall()
		events = append(events, CollisionEvent{Type: EventRespawn})
	}

	return events
}

func withinPaddle(y float64, p Paddle) bool {
	return y > p.Y && y < p.Y+PaddleHeight
}

// collideBlocks tests every active block independently against the ball
// position of this tick. Each hit block is deactivated and scored, and each
// hit flips one velocity axis, so two hits on the same axis cancel out.
func collideBlocks(gs *GameState) []CollisionEvent {
	var events []CollisionEvent
	ball := &gs.Ball

	for i := range gs.Blocks {
		block := &gs.Blocks[i]
		if !block.Active {
			continue
		}

		bb := ballBox(*ball)
		kb := blockBox(*block)
		if !bb.overlaps(kb) {
			continue
		}

		block.Active = false

		scorer := SideRight
		if block.Color == TeamRed {
			scorer = SideLeft
		}
		gs.Paddle(scorer).Score++

		if horizontalBounce(bb, kb) {
			ball.DX = -ball.DX
		} else {
			ball.DY = -ball.DY
		}

		events = append(events, CollisionEvent{
			Type:       EventBlock,
			Side:       scorer,
			BlockIndex: i,
			Color:      block.Color,
		})
	}
	return events
}

// horizontalBounce reports whether the shallowest penetration is through a
// vertical face of the block. Ties go to the horizontal axis.
func horizontalBounce(ball, block box) bool {
	fromLeft := ball.right - block.left
	fromRight := block.right - ball.left
	fromTop := ball.bottom - block.top
	fromBottom := block.bottom - ball.top

	shallowest := math.Min(math.Min(fromLeft, fromRight), math.Min(fromTop, fromBottom))
	return shallowest == fromLeft || shallowest == fromRight
}
