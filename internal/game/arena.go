package game

// BlockLayout describes the block grid placed in the arena.
type BlockLayout struct {
	Rows int
	Cols int
}

// DefaultLayout is the 12x10 grid the client is drawn for.
var DefaultLayout = BlockLayout{Rows: BlockRows, Cols: BlockCols}

// horizontalOffset centres the grid inside the field width.
func (l BlockLayout) horizontalOffset() float64 {
	return (FieldWidth - float64(l.Cols)*(BlockWidth+BlockGap)) / 2
}

// colorForColumn puts the left half of the columns on the red team.
func (l BlockLayout) colorForColumn(col int) TeamColor {
	if col < l.Cols/2 {
		return TeamRed
	}
	return TeamPurple
}

// Build returns a fresh grid of Rows*Cols active blocks in row-major order.
func (l BlockLayout) Build() []Block {
	if l.Rows <= 0 || l.Cols <= 0 {
		return []Block{}
	}

	offset := l.horizontalOffset()
	blocks := make([]Block, 0, l.Rows*l.Cols)
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			blocks = append(blocks, Block{
				X:      offset + float64(col)*(BlockWidth+BlockGap),
				Y:      BlockTop + float64(row)*(BlockHeight+BlockGap),
				Active: true,
				Color:  l.colorForColumn(col),
			})
		}
	}
	return blocks
}

// InitBlocks replaces the block list of gs with a fresh default grid.
// The previous list is discarded, never appended to.
func InitBlocks(gs *GameState) {
	gs.Blocks = DefaultLayout.Build()
}
