package huffman

import (
	"fmt"

	"github.com/llehouerou/go-psxstr/internal/bits"
)

// ZeroRunLengthAc binds a BitStreamCode to its meaning in one dialect:
// a concrete (run, level) pair, the escape code, or the end-of-block code.
type ZeroRunLengthAc struct {
	Code       BitStreamCode
	Run        int
	Level      int
	IsEscape   bool
	EndOfBlock bool
}

// Length returns the bit length of the code.
func (z *ZeroRunLengthAc) Length() int {
	return z.Code.Length()
}

// Write appends the code's bit pattern.
func (z *ZeroRunLengthAc) Write(w *bits.Writer) {
	w.WriteBits(z.Code.Value(), z.Code.Length())
}

func (z *ZeroRunLengthAc) String() string {
	switch {
	case z.IsEscape:
		return z.Code.String()
	case z.EndOfBlock:
		return z.Code.String()
	}
	return fmt.Sprintf("%s (%d, %d)", z.Code, z.Run, z.Level)
}
