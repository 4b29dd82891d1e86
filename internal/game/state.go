package game

// Side identifies one of the two paddles.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// TeamColor is the faction a block belongs to. Destroying a TeamRed block
// credits the left paddle, anything else credits the right paddle.
type TeamColor string

const (
	TeamRed    TeamColor = "red"
	TeamPurple TeamColor = "purple"
)

// Ball is the single ball in play.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Radius float64 `json:"radius"`
}

// Paddle holds a side's vertical offset and score.
type Paddle struct {
	Y     float64 `json:"y"`
	Score int     `json:"score"`
}

// Paddles always holds exactly the two sides.
type Paddles struct {
	Left  Paddle `json:"left"`
	Right Paddle `json:"right"`
}

// Block is a destructible brick in the arena grid.
type Block struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Active bool      `json:"active"`
	Color  TeamColor `json:"color"`
}

// GameState is the full replicated state of the arena.
type GameState struct {
	Paddles Paddles `json:"paddles"`
	Ball    Ball    `json:"ball"`
	Blocks  []Block `json:"blocks"`
}

// idleBall is the parked ball used at startup and after the last player leaves.
func idleBall() Ball {
	return Ball{X: SpawnX, Y: SpawnY, Radius: BallRadius}
}

// launchBall is the ball used on first join and after leaving the field.
func launchBall() Ball {
	return Ball{X: SpawnX, Y: SpawnY, DX: LaunchDX, DY: LaunchDY, Radius: BallRadius}
}

// NewGameState returns the startup state: parked ball, paddles at their
// starting offset and a fresh block grid.
func NewGameState() *GameState {
	gs := &GameState{
		Paddles: Paddles{
			Left:  Paddle{Y: PaddleStartY},
			Right: Paddle{Y: PaddleStartY},
		},
		Ball: idleBall(),
	}
	InitBlocks(gs)
	return gs
}

// Paddle returns the paddle for a side, or nil for an unknown side.
func (gs *GameState) Paddle(side Side) *Paddle {
	switch side {
	case SideLeft:
		return &gs.Paddles.Left
	case SideRight:
		return &gs.Paddles.Right
	}
	return nil
}

// Clone returns a deep copy safe to hand to other goroutines.
func (gs *GameState) Clone() GameState {
	out := *gs
	out.Blocks = make([]Block, len(gs.Blocks))
	copy(out.Blocks, gs.Blocks)
	return out
}

// ActiveBlocks counts blocks still in play.
func (gs *GameState) ActiveBlocks() int {
	n := 0
	for _, b := range gs.Blocks {
		if b.Active {
			n++
		}
	}
	return n
}

// ClampPaddleY limits a paddle offset to the playable range.
func ClampPaddleY(y float64) float64 {
	if y < PaddleMinY {
		return PaddleMinY
	}
	if y > PaddleMaxY {
		return PaddleMaxY
	}
	return y
}
