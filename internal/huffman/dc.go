package huffman

import (
	"errors"
	"fmt"

	"github.com/llehouerou/go-psxstr/internal/bits"
)

var (
	// ErrNoMatch indicates a bit pattern that matches no code of a table.
	ErrNoMatch = errors.New("huffman: no matching code")

	// ErrDcRange indicates a DC differential too large for the size table.
	ErrDcRange = errors.New("huffman: DC differential out of range")
)

// MaxDcSize is the largest differential size the DC tables can express.
const MaxDcSize = 8

// DcTable is an MPEG-1 dct_dc_size table. Entry i is the code for a
// differential of i bits.
type DcTable struct {
	name    string
	codes   [MaxDcSize + 1]codeDef
	longest int
}

// DcLuma is the luminance size table (longest code 7 bits).
var DcLuma = newDcTable("luma", "100", "00", "01", "101", "110", "1110", "11110", "111110", "1111110")

// DcChroma is the chrominance size table (longest code 8 bits).
var DcChroma = newDcTable("chroma", "00", "01", "10", "110", "1110", "11110", "111110", "1111110", "11111110")

func newDcTable(name string, codes ...string) *DcTable {
	t := &DcTable{name: name}
	for i, s := range codes {
		t.codes[i] = newCodeDef(s)
		if len(s) > t.longest {
			t.longest = len(s)
		}
	}
	return t
}

// Longest returns the bit length of the table's longest code.
func (t *DcTable) Longest() int {
	return t.longest
}

// ReadDiff reads a size code and the differential that follows it.
func (t *DcTable) ReadDiff(r *bits.Reader) (int, error) {
	window, err := r.PeekUnsigned(t.longest)
	if err != nil && !errors.Is(err, bits.ErrEndOfStream) {
		return 0, err
	}

	size := -1
	for i, c := range t.codes {
		if window>>uint(t.longest-c.length) == c.value {
			size = i
			break
		}
	}
	if size < 0 {
		if err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %s DC size 0x%X", ErrNoMatch, t.name, window)
	}
	if err := r.Skip(t.codes[size].length); err != nil {
		return 0, err
	}
	if size == 0 {
		return 0, nil
	}

	v, err := r.ReadUnsigned(size)
	if err != nil {
		return 0, err
	}
	if v&(1<<uint(size-1)) != 0 {
		return int(v), nil
	}
	return int(v) - (1<<uint(size) - 1), nil
}

// DiffSize returns the number of bits needed for a differential.
func DiffSize(diff int) int {
	if diff < 0 {
		diff = -diff
	}
	size := 0
	for diff > 0 {
		size++
		diff >>= 1
	}
	return size
}

// WriteDiff writes the size code and the differential.
func (t *DcTable) WriteDiff(w *bits.Writer, diff int) error {
	size := DiffSize(diff)
	if size > MaxDcSize {
		return fmt.Errorf("%w: %d", ErrDcRange, diff)
	}
	c := t.codes[size]
	w.WriteBits(c.value, c.length)
	if size == 0 {
		return nil
	}
	if diff < 0 {
		diff += 1<<uint(size) - 1
	}
	w.WriteBits(uint32(diff), size)
	return nil
}
