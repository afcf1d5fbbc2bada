package bits

import "fmt"

// Writer accumulates bits, most significant first, into a byte buffer.
//
// The buffer is kept in logical order. Bytes pads the final partial byte with
// zero bits, pads to the alignment with zero bytes, and then remaps every byte
// through the ByteOrder.
type Writer struct {
	order ByteOrder
	align int

	buf   []byte
	cur   byte
	nbits int // bits accumulated in cur (0-7)
}

// NewWriter creates a Writer. align is the output size granularity in bytes
// (1, 2 or 4); it is raised to the order's word size if smaller.
func NewWriter(order ByteOrder, align int) *Writer {
	if align < order.WordSize() {
		align = order.WordSize()
	}
	return &Writer{order: order, align: align}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	w.cur <<= 1
	if bit {
		w.cur |= 1
	}
	w.nbits++
	if w.nbits == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nbits = 0
	}
}

// WriteBits appends the low n bits (0-32) of value.
func (w *Writer) WriteBits(value uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(value>>uint(i)&1 != 0)
	}
}

// WriteSigned appends the low n bits of a two's complement value.
func (w *Writer) WriteSigned(value int32, n int) {
	w.WriteBits(uint32(value), n)
}

// WriteString appends a string of '0' and '1' characters.
func (w *Writer) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			w.WriteBit(false)
		case '1':
			w.WriteBit(true)
		default:
			return fmt.Errorf("bits: invalid bit character %q in %q", s[i], s)
		}
	}
	return nil
}

// BitsWritten returns the number of bits appended so far.
func (w *Writer) BitsWritten() int {
	return len(w.buf)*8 + w.nbits
}

// Bytes returns the finished, padded and remapped buffer.
// The writer may continue to be used afterwards.
func (w *Writer) Bytes() []byte {
	size := len(w.buf)
	if w.nbits > 0 {
		size++
	}
	if rem := size % w.align; rem != 0 {
		size += w.align - rem
	}

	logical := make([]byte, size)
	copy(logical, w.buf)
	if w.nbits > 0 {
		logical[len(w.buf)] = w.cur << uint(8-w.nbits)
	}

	out := make([]byte, size)
	for i, b := range logical {
		out[w.order.Physical(i)] = b
	}
	return out
}
