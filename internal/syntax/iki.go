package syntax

import (
	"encoding/binary"

	"github.com/llehouerou/go-psxstr/internal/lzss"
	"github.com/llehouerou/go-psxstr/mdec"
)

// IkiHeaderSize is the size of the fixed part of an Iki header.
const IkiHeaderSize = 10

// IkiHeader is the header of Iki frames.
//
// Layout (little-endian 16-bit fields):
//   - [0:2]   half the MDEC code count, rounded up to a multiple of 32
//   - [2:4]   0x3800
//   - [4:6]   width in pixels
//   - [6:8]   height in pixels
//   - [8:10]  size of the LZSS compressed qscale/DC table (even)
//   - [10:..] the compressed table
//
// The decompressed table holds one 16-bit MDEC word per block: first the high
// bytes of every block, then the low bytes.
type IkiHeader struct {
	HalfVlcCountCeil32 int
	Magic              uint16
	Width              int
	Height             int
	CompressedSize     int

	table []byte
	valid bool
}

// ParseIkiHeader reads an Iki header and decompresses its qscale/DC table.
// A truncated or malformed table makes the header invalid, as do dimensions
// needing a larger table than the compressed size can hold.
func ParseIkiHeader(frame []byte) IkiHeader {
	if len(frame) < IkiHeaderSize {
		return IkiHeader{}
	}
	h := IkiHeader{
		HalfVlcCountCeil32: int(binary.LittleEndian.Uint16(frame[0:])),
		Magic:              binary.LittleEndian.Uint16(frame[2:]),
		Width:              int(int16(binary.LittleEndian.Uint16(frame[4:]))),
		Height:             int(int16(binary.LittleEndian.Uint16(frame[6:]))),
		CompressedSize:     int(binary.LittleEndian.Uint16(frame[8:])),
	}
	if h.Magic != Magic3800 || h.Width < 1 || h.Height < 1 || h.CompressedSize&1 != 0 {
		return h
	}
	end := IkiHeaderSize + h.CompressedSize
	if end > len(frame) {
		return h
	}

	size := mdec.BlockCount(h.Width, h.Height) * 2
	if size > lzss.MaxDecompressedLen(h.CompressedSize) {
		return h
	}
	table := make([]byte, size)
	n, err := lzss.Decompress(frame[IkiHeaderSize:end], table)
	if err != nil || n > h.CompressedSize {
		return h
	}
	h.table = table
	h.valid = true
	return h
}

// IsValid reports whether the header and its table parsed correctly.
func (h IkiHeader) IsValid() bool {
	return h.valid
}

// BlockCount returns the number of blocks in the frame.
func (h IkiHeader) BlockCount() int {
	return mdec.BlockCount(h.Width, h.Height)
}

// BitstreamOffset returns the offset of the first bitstream byte.
func (h IkiHeader) BitstreamOffset() int {
	return IkiHeaderSize + h.CompressedSize
}

// QscaleDc returns the qscale/DC code of a block.
func (h IkiHeader) QscaleDc(block int) mdec.Code {
	count := len(h.table) / 2
	w := uint16(h.table[block])<<8 | uint16(h.table[block+count])
	return mdec.CodeFromWord(w)
}

// BuildIkiHeader serializes a header and the compressed form of the
// per-block qscale/DC codes.
func BuildIkiHeader(width, height, mdecCodes int, qscaleDc []mdec.Code) []byte {
	count := len(qscaleDc)
	table := make([]byte, count*2)
	for i, c := range qscaleDc {
		w := c.Word()
		table[i] = byte(w >> 8)
		table[i+count] = byte(w)
	}
	comp := lzss.Compress(table)
	if len(comp)&1 != 0 {
		comp = append(comp, 0)
	}

	b := make([]byte, IkiHeaderSize, IkiHeaderSize+len(comp))
	binary.LittleEndian.PutUint16(b[0:], uint16(HalfVlcCountCeil32(mdecCodes)))
	binary.LittleEndian.PutUint16(b[2:], Magic3800)
	binary.LittleEndian.PutUint16(b[4:], uint16(width))
	binary.LittleEndian.PutUint16(b[6:], uint16(height))
	binary.LittleEndian.PutUint16(b[8:], uint16(len(comp)))
	return append(b, comp...)
}
