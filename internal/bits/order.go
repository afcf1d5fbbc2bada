// Package bits implements the bit cursor used by every frame format: a
// buffered reader and an accumulating writer over a byte slice, both
// parameterized by a byte-order policy.
package bits

// ByteOrder maps a logical byte index of the bitstream to the physical
// offset in the frame buffer.
//
// Most PlayStation video bitstreams are consumed by the CPU as little-endian
// 16-bit words, most significant bit first. Lain stores its bitstream as a
// plain big-endian byte sequence.
type ByteOrder uint8

const (
	// LittleEndian16 swaps every pair of bytes (logical i <-> physical i^1).
	LittleEndian16 ByteOrder = iota
	// BigEndian is the identity mapping.
	BigEndian
)

// Physical returns the physical byte offset of logical byte i.
func (o ByteOrder) Physical(i int) int {
	if o == LittleEndian16 {
		return i ^ 1
	}
	return i
}

// WordSize is the smallest unit the order can remap: 2 for LittleEndian16, 1 otherwise.
func (o ByteOrder) WordSize() int {
	if o == LittleEndian16 {
		return 2
	}
	return 1
}

// String returns a short name for the order.
func (o ByteOrder) String() string {
	switch o {
	case LittleEndian16:
		return "le16"
	case BigEndian:
		return "be"
	}
	return "unknown"
}
