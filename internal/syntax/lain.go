package syntax

import "encoding/binary"

// LainHeaderSize is the size of the Lain header.
const LainHeaderSize = 8

// LainMaxFrameNumber is the last frame index of the game that stores the
// frame number where other formats store 0x3800.
const LainMaxFrameNumber = 4764

// LainHeader is the header of Serial Experiments Lain frames.
//
// Layout:
//   - [0]   luma quantization scale (1-63)
//   - [1]   chroma quantization scale (1-63)
//   - [2:4] 0x3800 or the frame number (little-endian)
//   - [4:6] VLC count (little-endian)
//   - [6:8] version, always 0 (little-endian)
type LainHeader struct {
	LumaQscale     int
	ChromaQscale   int
	MagicOrFrame   int
	VlcCountCeil32 int
	Version        int

	valid bool
}

// ParseLainHeader reads a Lain header.
func ParseLainHeader(frame []byte) LainHeader {
	if len(frame) < LainHeaderSize {
		return LainHeader{}
	}
	h := LainHeader{
		LumaQscale:     int(frame[0]),
		ChromaQscale:   int(frame[1]),
		MagicOrFrame:   int(binary.LittleEndian.Uint16(frame[2:])),
		VlcCountCeil32: int(int16(binary.LittleEndian.Uint16(frame[4:]))),
		Version:        int(int16(binary.LittleEndian.Uint16(frame[6:]))),
	}
	h.valid = validQscale(h.LumaQscale) &&
		validQscale(h.ChromaQscale) &&
		(h.MagicOrFrame == Magic3800 || h.MagicOrFrame <= LainMaxFrameNumber) &&
		h.VlcCountCeil32 >= 0 &&
		h.Version == 0
	return h
}

// NewLainHeader builds a header for a frame of mdecCodes codes.
func NewLainHeader(lumaQscale, chromaQscale, mdecCodes int) LainHeader {
	h := LainHeader{
		LumaQscale:     lumaQscale,
		ChromaQscale:   chromaQscale,
		MagicOrFrame:   Magic3800,
		VlcCountCeil32: HalfVlcCountCeil32(mdecCodes),
	}
	h.valid = validQscale(lumaQscale) && validQscale(chromaQscale)
	return h
}

// IsValid reports whether every field is in range.
func (h LainHeader) IsValid() bool {
	return h.valid
}

// BitstreamOffset returns the offset of the first bitstream byte.
func (h LainHeader) BitstreamOffset() int {
	return LainHeaderSize
}

// Bytes serializes the header.
func (h LainHeader) Bytes() []byte {
	b := make([]byte, LainHeaderSize)
	b[0] = byte(h.LumaQscale)
	b[1] = byte(h.ChromaQscale)
	binary.LittleEndian.PutUint16(b[2:], uint16(h.MagicOrFrame))
	binary.LittleEndian.PutUint16(b[4:], uint16(h.VlcCountCeil32))
	binary.LittleEndian.PutUint16(b[6:], uint16(h.Version))
	return b
}
