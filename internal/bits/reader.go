package bits

import "errors"

// ErrEndOfStream is returned when a read needs more bits than remain
// before the reader's end offset.
var ErrEndOfStream = errors.New("bits: end of stream")

// Reader reads bits, most significant first, from a byte buffer.
//
// Bits are buffered one 16-bit word at a time. The word is assembled from two
// logical bytes mapped through the ByteOrder, so the same reader serves both
// the word-swapped STR layout and Lain's big-endian layout.
type Reader struct {
	data  []byte
	order ByteOrder
	start int // logical offset of the first bitstream byte
	end   int // logical offset one past the last readable byte

	pos      int    // logical offset of the next byte to load
	word     uint16 // buffered bits, right aligned
	bitsLeft int    // valid bits remaining in word (0-16)
}

// state is a snapshot of the cursor used by the Peek methods.
type state struct {
	pos      int
	word     uint16
	bitsLeft int
}

// NewReader creates a Reader over data[start:end] (logical offsets).
// end is clamped to len(data).
func NewReader(data []byte, start, end int, order ByteOrder) *Reader {
	if end > len(data) {
		end = len(data)
	}
	if start > end {
		start = end
	}
	return &Reader{
		data:  data,
		order: order,
		start: start,
		end:   end,
		pos:   start,
	}
}

func (r *Reader) byteAt(i int) byte {
	p := r.order.Physical(i)
	if p >= len(r.data) {
		return 0
	}
	return r.data[p]
}

// loadWord refills the word buffer. A final odd byte is loaded as an 8-bit word.
func (r *Reader) loadWord() bool {
	switch {
	case r.pos >= r.end:
		return false
	case r.pos+1 < r.end:
		r.word = uint16(r.byteAt(r.pos))<<8 | uint16(r.byteAt(r.pos+1))
		r.bitsLeft = 16
		r.pos += 2
	default:
		r.word = uint16(r.byteAt(r.pos))
		r.bitsLeft = 8
		r.pos++
	}
	return true
}

// ReadUnsigned reads n bits (0-31) as an unsigned value.
//
// If the stream ends before n bits are read, the bits that were read are
// returned shifted left to fill n bits, along with ErrEndOfStream.
func (r *Reader) ReadUnsigned(n int) (uint32, error) {
	var v uint32
	for n > 0 {
		if r.bitsLeft == 0 && !r.loadWord() {
			return v << uint(n), ErrEndOfStream
		}
		take := n
		if take > r.bitsLeft {
			take = r.bitsLeft
		}
		r.bitsLeft -= take
		v = v<<uint(take) | (uint32(r.word)>>uint(r.bitsLeft))&(1<<uint(take)-1)
		n -= take
	}
	return v, nil
}

// ReadSigned reads n bits (1-31) and sign-extends them.
func (r *Reader) ReadSigned(n int) (int32, error) {
	v, err := r.ReadUnsigned(n)
	return signExtend(v, n), err
}

// PeekUnsigned returns the next n bits without advancing the cursor.
func (r *Reader) PeekUnsigned(n int) (uint32, error) {
	s := r.save()
	v, err := r.ReadUnsigned(n)
	r.restore(s)
	return v, err
}

// Skip advances the cursor by n bits.
func (r *Reader) Skip(n int) error {
	for n > 0 {
		chunk := n
		if chunk > 31 {
			chunk = 31
		}
		if _, err := r.ReadUnsigned(chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// BitsRead returns the number of bits consumed since the start offset.
func (r *Reader) BitsRead() int {
	return (r.pos-r.start)*8 - r.bitsLeft
}

// BitsRemaining returns the number of unread bits before the end offset.
func (r *Reader) BitsRemaining() int {
	return (r.end-r.start)*8 - r.BitsRead()
}

// ByteOffset returns the logical offset of the byte holding the next unread bit.
func (r *Reader) ByteOffset() int {
	return r.start + r.BitsRead()/8
}

func (r *Reader) save() state {
	return state{pos: r.pos, word: r.word, bitsLeft: r.bitsLeft}
}

func (r *Reader) restore(s state) {
	r.pos = s.pos
	r.word = s.word
	r.bitsLeft = s.bitsLeft
}

func signExtend(v uint32, n int) int32 {
	if n <= 0 {
		return 0
	}
	shift := uint(32 - n)
	return int32(v<<shift) >> shift
}
