package game

// Arena and physics constants.
// These MUST match the drawing constants in public/game.js.

const (
	FieldWidth  = 800.0
	FieldHeight = 600.0

	BallRadius = 8.0

	PaddleHeight      = 100.0
	PaddlePlaneOffset = 20.0 // distance of each paddle plane from its side wall
	PaddleMinY        = 0.0
	PaddleMaxY        = 500.0
	PaddleStartY      = 50.0

	BlockWidth  = 50.0
	BlockHeight = 40.0
	BlockGap    = 5.0
	BlockTop    = 40.0 // y of the first block row
	BlockRows   = 12
	BlockCols   = 10

	// Respawn point and launch velocity used on first join and out-of-bounds
	SpawnX   = 600.0
	SpawnY   = 300.0
	LaunchDX = -4.0
	LaunchDY = -4.0

	TickRate = 60 // ticks per second
)
