// Package syntax parses and builds the frame headers that precede the
// compressed bitstream of each supported format.
//
// Parsing never fails: a header whose fields are out of range reports
// IsValid() == false so the caller can try the next format.
package syntax

import "encoding/binary"

// Magic3800 is the marker shared by every header family.
const Magic3800 = 0x3800

// Qscale bounds.
const (
	MinQscale = 1
	MaxQscale = 63
)

// StrHeaderSize is the size of the STRv1/v2/v3 header.
const StrHeaderSize = 8

// StrHeader is the header of STR version 1, 2 and 3 frames.
//
// Layout (little-endian 16-bit fields):
//   - [0:2] half the MDEC code count, rounded up to a multiple of 32
//   - [2:4] 0x3800
//   - [4:6] frame quantization scale (1-63)
//   - [6:8] version (1, 2 or 3)
type StrHeader struct {
	HalfVlcCountCeil32 int
	Magic              uint16
	Qscale             int
	Version            int

	valid bool
}

// ParseStrHeader reads an STR header and validates it against version.
func ParseStrHeader(frame []byte, version int) StrHeader {
	if len(frame) < StrHeaderSize {
		return StrHeader{}
	}
	h := StrHeader{
		HalfVlcCountCeil32: int(int16(binary.LittleEndian.Uint16(frame[0:]))),
		Magic:              binary.LittleEndian.Uint16(frame[2:]),
		Qscale:             int(int16(binary.LittleEndian.Uint16(frame[4:]))),
		Version:            int(int16(binary.LittleEndian.Uint16(frame[6:]))),
	}
	h.valid = h.Magic == Magic3800 &&
		validQscale(h.Qscale) &&
		h.HalfVlcCountCeil32 >= 0 &&
		h.Version == version
	return h
}

// NewStrHeader builds a header for a frame of mdecCodes codes.
func NewStrHeader(version, qscale, mdecCodes int) StrHeader {
	h := StrHeader{
		HalfVlcCountCeil32: HalfVlcCountCeil32(mdecCodes),
		Magic:              Magic3800,
		Qscale:             qscale,
		Version:            version,
	}
	h.valid = validQscale(qscale)
	return h
}

// IsValid reports whether every field is in range.
func (h StrHeader) IsValid() bool {
	return h.valid
}

// BitstreamOffset returns the offset of the first bitstream byte.
func (h StrHeader) BitstreamOffset() int {
	return StrHeaderSize
}

// Bytes serializes the header.
func (h StrHeader) Bytes() []byte {
	b := make([]byte, StrHeaderSize)
	binary.LittleEndian.PutUint16(b[0:], uint16(h.HalfVlcCountCeil32))
	binary.LittleEndian.PutUint16(b[2:], h.Magic)
	binary.LittleEndian.PutUint16(b[4:], uint16(h.Qscale))
	binary.LittleEndian.PutUint16(b[6:], uint16(h.Version))
	return b
}

// HalfVlcCountCeil32 returns half the MDEC code count rounded up, then rounded
// up to a multiple of 32. This is the size of the MDEC buffer in 32-bit words
// the game allocates for the frame.
func HalfVlcCountCeil32(mdecCodes int) int {
	half := (mdecCodes + 1) / 2
	return (half + 31) &^ 31
}

func validQscale(q int) bool {
	return q >= MinQscale && q <= MaxQscale
}
