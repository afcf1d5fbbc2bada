package mdec

// Block identifies one of the six blocks of a macroblock, in stream order.
type Block int

const (
	Cr Block = iota
	Cb
	Y1
	Y2
	Y3
	Y4
)

// BlocksPerMacroBlock is the number of blocks in a macroblock.
const BlocksPerMacroBlock = 6

// CoefficientsPerBlock is the number of coefficients in an 8x8 block.
const CoefficientsPerBlock = 64

var blockNames = [BlocksPerMacroBlock]string{"Cr", "Cb", "Y1", "Y2", "Y3", "Y4"}

// IsChroma reports whether the block is Cr or Cb.
func (b Block) IsChroma() bool {
	return b == Cr || b == Cb
}

// IsLuma reports whether the block is one of the four Y blocks.
func (b Block) IsLuma() bool {
	return b >= Y1 && b <= Y4
}

func (b Block) String() string {
	if b < 0 || int(b) >= len(blockNames) {
		return "invalid"
	}
	return blockNames[b]
}

// MacroBlockCount returns how many 16x16 macroblocks cover a frame.
func MacroBlockCount(width, height int) int {
	return MacroBlockColumns(width) * MacroBlockRows(height)
}

// MacroBlockColumns returns the number of macroblock columns for a width.
func MacroBlockColumns(width int) int {
	return (width + 15) / 16
}

// MacroBlockRows returns the number of macroblock rows for a height.
func MacroBlockRows(height int) int {
	return (height + 15) / 16
}

// BlockCount returns the number of blocks in a frame.
func BlockCount(width, height int) int {
	return MacroBlockCount(width, height) * BlocksPerMacroBlock
}
