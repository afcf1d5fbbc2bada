package mdec

import (
	"errors"
	"fmt"
)

// ErrEndOfCodes is returned by CodeStream when it runs out of codes.
var ErrEndOfCodes = errors.New("mdec: end of codes")

// Reader produces MDEC codes one at a time.
//
// ReadCode fills code and reports whether it is the end-of-data code that
// closes the current block.
type Reader interface {
	ReadCode(code *Code) (eod bool, err error)
}

// CodeStream is a Reader over an in-memory slice of codes.
type CodeStream struct {
	codes    []Code
	pos      int
	midBlock bool
}

// NewCodeStream creates a CodeStream. The slice is not copied.
func NewCodeStream(codes []Code) *CodeStream {
	return &CodeStream{codes: codes}
}

// ReadCode implements Reader.
func (s *CodeStream) ReadCode(code *Code) (bool, error) {
	if s.pos >= len(s.codes) {
		return false, ErrEndOfCodes
	}
	*code = s.codes[s.pos]
	s.pos++
	eod := s.midBlock && code.IsEOD()
	s.midBlock = !eod
	return eod, nil
}

// Remaining returns the number of unread codes.
func (s *CodeStream) Remaining() int {
	return len(s.codes) - s.pos
}

// ReadAll drains macroBlocks complete macroblocks from r.
func ReadAll(r Reader, macroBlocks int) ([]Code, error) {
	var codes []Code
	blocks := macroBlocks * BlocksPerMacroBlock
	for b := 0; b < blocks; b++ {
		for {
			var c Code
			eod, err := r.ReadCode(&c)
			if err != nil {
				return codes, fmt.Errorf("block %d: %w", b, err)
			}
			codes = append(codes, c)
			if eod {
				break
			}
		}
	}
	return codes, nil
}

// SplitMacroBlocks splits a complete frame's codes into one slice per macroblock.
// The first code of a block is never taken as the end of the block, even when
// its qscale and DC pack to EndOfDataWord.
func SplitMacroBlocks(codes []Code) [][]Code {
	var (
		out      [][]Code
		start    int
		block    int
		midBlock bool
	)
	for i, c := range codes {
		if !midBlock || !c.IsEOD() {
			midBlock = true
			continue
		}
		midBlock = false
		block++
		if block == BlocksPerMacroBlock {
			out = append(out, codes[start:i+1])
			start = i + 1
			block = 0
		}
	}
	return out
}
