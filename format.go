package psxstr

import (
	"github.com/llehouerou/go-psxstr/internal/bits"
	"github.com/llehouerou/go-psxstr/internal/huffman"
	"github.com/llehouerou/go-psxstr/mdec"
)

// Format identifies a frame bitstream format.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	STRv1                // early STR, no padding check
	STRv2                // the common STR format
	STRv3                // STR with MPEG-1 style differential DC
	Iki                  // qscale/DC moved into an LZSS table in the header
	Lain                 // Serial Experiments Lain, custom AC table
)

// identifyOrder is the order formats are tried against an unknown frame.
var identifyOrder = [...]Format{STRv2, STRv3, STRv1, Iki, Lain}

var formatNames = [...]string{
	FormatUnknown: "unknown",
	STRv1:         "STRv1",
	STRv2:         "STRv2",
	STRv3:         "STRv3",
	Iki:           "Iki",
	Lain:          "Lain",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "invalid"
	}
	return formatNames[f]
}

// strVersion returns the header version field of the STR formats.
func (f Format) strVersion() int {
	switch f {
	case STRv1:
		return 1
	case STRv2:
		return 2
	case STRv3:
		return 3
	}
	return 0
}

func (f Format) isSTR() bool {
	return f.strVersion() != 0
}

func (f Format) byteOrder() bits.ByteOrder {
	if f == Lain {
		return bits.BigEndian
	}
	return bits.LittleEndian16
}

// alignment is the byte boundary the bitstream is padded to.
func (f Format) alignment() int {
	switch f {
	case Iki:
		return 2
	case Lain:
		return 1
	}
	return 4
}

func (f Format) table() *huffman.Lookup {
	if f == Lain {
		return huffman.Lain
	}
	return huffman.Standard
}

// padding returns the bits written after the last block.
func (f Format) padding() (value uint32, n int) {
	switch f {
	case STRv1, STRv2:
		return 0x1FF, paddingBits // 0111111111
	case STRv3:
		return 0x3FF, paddingBits // 1111111111
	}
	return 0, 0
}

// checksPadding reports whether the decoder validates the padding bits.
func (f Format) checksPadding() bool {
	return f == STRv2 || f == STRv3
}

const paddingBits = 10

// dcClass indexes the STRv3 DC predictors: Cr, Cb, then all luma blocks.
func dcClass(b mdec.Block) int {
	switch {
	case b.IsLuma():
		return 2
	case b == mdec.Cb:
		return 1
	}
	return 0
}
