// Package mdec models the coefficient stream consumed by the PlayStation
// MDEC (macroblock decoder) chip.
//
// The stream is a sequence of 16-bit codes. The first code of each block
// carries the block's quantization scale and DC coefficient; the following
// codes carry (zero run, AC level) pairs; an end-of-data code closes the block.
// Blocks are grouped six per macroblock and macroblocks are ordered in
// columns, top to bottom then left to right.
package mdec

import "fmt"

// Bit widths and ranges of the two code fields.
const (
	TopBits    = 6
	BottomBits = 10

	MaxTop    = 1<<TopBits - 1
	MinBottom = -(1 << (BottomBits - 1))
	MaxBottom = 1<<(BottomBits-1) - 1
)

// EndOfDataWord is the raw 16-bit MDEC end-of-data code.
const EndOfDataWord = 0xFE00

// Code is one MDEC coefficient code.
//
// At the start of a block Top is the quantization scale and Bottom is the DC
// coefficient. Inside a block Top is the count of zero coefficients preceding
// the AC level in Bottom.
type Code struct {
	Top    int
	Bottom int
}

// EndOfData returns the end-of-data sentinel code.
func EndOfData() Code {
	return CodeFromWord(EndOfDataWord)
}

// CodeFromWord splits a raw 16-bit MDEC word into its fields.
func CodeFromWord(w uint16) Code {
	bottom := int(w & 0x3FF)
	if bottom > MaxBottom {
		bottom -= 1 << BottomBits
	}
	return Code{Top: int(w >> BottomBits), Bottom: bottom}
}

// Word packs the code into a raw 16-bit MDEC word.
func (c Code) Word() uint16 {
	return uint16(c.Top&MaxTop)<<BottomBits | uint16(c.Bottom&0x3FF)
}

// IsEOD reports whether the code is the end-of-data sentinel.
//
// A qscale/DC code of (63, -512) packs to the same word, so the result is only
// meaningful for codes after the first of a block.
func (c Code) IsEOD() bool {
	return c.Word() == EndOfDataWord
}

// SetEOD turns the code into the end-of-data sentinel.
func (c *Code) SetEOD() {
	*c = EndOfData()
}

// Valid reports whether both fields fit their bit widths.
func (c Code) Valid() bool {
	return c.Top >= 0 && c.Top <= MaxTop && c.Bottom >= MinBottom && c.Bottom <= MaxBottom
}

func (c Code) String() string {
	if c.IsEOD() {
		return "EOD"
	}
	return fmt.Sprintf("(%d, %d)", c.Top, c.Bottom)
}
