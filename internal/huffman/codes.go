// Package huffman implements the variable-length code tables of PlayStation
// video bitstreams: the catalog of AC code bit patterns, the per-dialect
// (run, level) lookup used to decode and encode them, and the MPEG-1 style
// DC size tables used by STRv3.
package huffman

import "fmt"

// BitStreamCode is a dense ordinal into the catalog of AC bit patterns.
//
// Ordinals 0-221 are the 111 AC codes, each followed by its sign bit
// (even ordinal: positive, odd ordinal: negative). Escape and EndOfBlock
// close the catalog.
type BitStreamCode uint8

const (
	acCodeCount = 111

	// NumCodes is the number of entries in the catalog.
	NumCodes = acCodeCount*2 + 2

	// Escape introduces a literal run and level.
	Escape BitStreamCode = NumCodes - 2
	// EndOfBlock terminates a block.
	EndOfBlock BitStreamCode = NumCodes - 1

	// LongestCode is the bit length of the longest code in the catalog.
	LongestCode = 17
)

const (
	escapeBits     = "000001"
	endOfBlockBits = "10"
)

type codeDef struct {
	bits   string
	value  uint32
	length int
}

var catalog = buildCatalog()

func buildCatalog() [NumCodes]codeDef {
	var c [NumCodes]codeDef
	for i, row := range acRows {
		c[2*i] = newCodeDef(row.bits + "0")
		c[2*i+1] = newCodeDef(row.bits + "1")
	}
	c[Escape] = newCodeDef(escapeBits)
	c[EndOfBlock] = newCodeDef(endOfBlockBits)
	return c
}

func newCodeDef(s string) codeDef {
	var v uint32
	for i := 0; i < len(s); i++ {
		v <<= 1
		if s[i] == '1' {
			v |= 1
		}
	}
	return codeDef{bits: s, value: v, length: len(s)}
}

// Bits returns the code as a string of '0' and '1'.
func (c BitStreamCode) Bits() string {
	return catalog[c].bits
}

// Value returns the code's bits as an integer.
func (c BitStreamCode) Value() uint32 {
	return catalog[c].value
}

// Length returns the code's bit length.
func (c BitStreamCode) Length() int {
	return catalog[c].length
}

// Negative reports whether the code carries a negative sign bit.
func (c BitStreamCode) Negative() bool {
	return c < Escape && c&1 == 1
}

// Matches reports whether the top bits of a LongestCode-bit window equal the code.
func (c BitStreamCode) Matches(window uint32) bool {
	d := catalog[c]
	return window>>uint(LongestCode-d.length) == d.value
}

func (c BitStreamCode) String() string {
	switch c {
	case Escape:
		return "escape(" + escapeBits + ")"
	case EndOfBlock:
		return "eob(" + endOfBlockBits + ")"
	}
	if int(c) >= NumCodes {
		return fmt.Sprintf("invalid(%d)", int(c))
	}
	// Trailing 's' marks the sign position, as in the MPEG-1 tables.
	d := catalog[c]
	return "_" + d.bits[:d.length-1] + "s"
}
