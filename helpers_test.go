package psxstr

import (
	"math/rand/v2"

	"pgregory.net/rapid"

	"github.com/llehouerou/go-psxstr/mdec"
)

// coefficientBlock is an unquantized block: the DC and the 63 AC coefficients
// in zig-zag order.
type coefficientBlock struct {
	dc int
	ac [mdec.CoefficientsPerBlock - 1]int
}

// coefficientMacroBlock quantizes by plain integer division.
type coefficientMacroBlock [mdec.BlocksPerMacroBlock]coefficientBlock

func (m *coefficientMacroBlock) Codes(qscales [mdec.BlocksPerMacroBlock]int) []mdec.Code {
	var codes []mdec.Code
	for b := range m {
		codes = append(codes, mdec.Code{Top: qscales[b], Bottom: m[b].dc})
		run := 0
		for _, v := range m[b].ac {
			level := v / qscales[b]
			if level == 0 {
				run++
				continue
			}
			codes = append(codes, mdec.Code{Top: run, Bottom: level})
			run = 0
		}
		codes = append(codes, mdec.EndOfData())
	}
	return codes
}

func (m *coefficientMacroBlock) Energy() int {
	e := 0
	for b := range m {
		for _, v := range m[b].ac {
			e += abs(v)
		}
	}
	return e
}

type coefficientFrame struct {
	width, height int
	macroBlocks   []*coefficientMacroBlock
}

func (f *coefficientFrame) Width() int                         { return f.width }
func (f *coefficientFrame) Height() int                        { return f.height }
func (f *coefficientFrame) MacroBlock(i int) MacroBlockEncoder { return f.macroBlocks[i] }

// newCoefficientFrame creates a frame where every coefficient is zero.
func newCoefficientFrame(width, height int) *coefficientFrame {
	f := &coefficientFrame{width: width, height: height}
	for range mdec.MacroBlockCount(width, height) {
		f.macroBlocks = append(f.macroBlocks, &coefficientMacroBlock{})
	}
	return f
}

// randomCoefficientFrame fills the first coefficients of every block with
// values up to maxValue in magnitude.
func randomCoefficientFrame(seed uint64, width, height, maxValue int) *coefficientFrame {
	rng := rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
	f := newCoefficientFrame(width, height)
	for _, mb := range f.macroBlocks {
		for b := range mb {
			mb[b].dc = rng.IntN(1024) - 512
			for i := 0; i < 20; i++ {
				if rng.IntN(3) == 0 {
					mb[b].ac[i] = rng.IntN(2*maxValue+1) - maxValue
				}
			}
		}
	}
	return f
}

// codesFrame re-quantizes already quantized codes, as a partial replacement
// does for the macroblocks it leaves untouched.
type codesFrame struct {
	width, height int
	macroBlocks   [][]mdec.Code
}

func newCodesFrame(width, height int, codes []mdec.Code) *codesFrame {
	return &codesFrame{width: width, height: height, macroBlocks: mdec.SplitMacroBlocks(codes)}
}

func (f *codesFrame) Width() int                         { return f.width }
func (f *codesFrame) Height() int                        { return f.height }
func (f *codesFrame) MacroBlock(i int) MacroBlockEncoder { return codesMacroBlock(f.macroBlocks[i]) }

type codesMacroBlock []mdec.Code

func (m codesMacroBlock) Codes(qscales [mdec.BlocksPerMacroBlock]int) []mdec.Code {
	out := make([]mdec.Code, 0, len(m))
	block, orig, pending := 0, 0, 0
	start := true
	for _, c := range m {
		switch {
		case start:
			orig = c.Top
			out = append(out, mdec.Code{Top: qscales[block], Bottom: c.Bottom})
			start, pending = false, 0
		case c.IsEOD():
			out = append(out, c)
			block++
			start = true
		default:
			level := c.Bottom * orig / qscales[block]
			if level == 0 {
				pending += c.Top + 1
				continue
			}
			out = append(out, mdec.Code{Top: c.Top + pending, Bottom: level})
			pending = 0
		}
	}
	return out
}

func (m codesMacroBlock) Energy() int {
	e := 0
	start := true
	for _, c := range m {
		switch {
		case start:
			start = false
		case c.IsEOD():
			start = true
		default:
			e += abs(c.Bottom)
		}
	}
	return e
}

// drawCodes draws a valid code stream for a frame of the given format.
func drawCodes(t *rapid.T, f Format, macroBlocks int) []mdec.Code {
	maxLevel := mdec.MaxBottom
	if f == Lain {
		maxLevel = 255
	}
	luma := rapid.IntRange(1, 63).Draw(t, "luma")
	chroma := luma
	if f == Lain {
		chroma = rapid.IntRange(1, 63).Draw(t, "chroma")
	}

	var codes []mdec.Code
	for i := 0; i < macroBlocks*mdec.BlocksPerMacroBlock; i++ {
		block := mdec.Block(i % mdec.BlocksPerMacroBlock)
		q := luma
		switch {
		case f == Iki:
			q = rapid.IntRange(1, 63).Draw(t, "qscale")
		case block.IsChroma():
			q = chroma
		}
		codes = append(codes, mdec.Code{Top: q, Bottom: rapid.IntRange(-512, 511).Draw(t, "dc")})

		pos := 0
		for n := rapid.IntRange(0, 10).Draw(t, "acs"); n > 0; n-- {
			run := rapid.IntRange(0, 12).Draw(t, "run")
			if pos+run+1 >= mdec.CoefficientsPerBlock {
				break
			}
			level := rapid.IntRange(1, maxLevel).Draw(t, "level")
			if rapid.Bool().Draw(t, "negative") {
				level = -level
			}
			codes = append(codes, mdec.Code{Top: run, Bottom: level})
			pos += run + 1
		}
		codes = append(codes, mdec.EndOfData())
	}
	return codes
}

// compressCodes encodes codes as is.
func compressCodes(f Format, codes []mdec.Code, width, height int) ([]byte, error) {
	c, err := NewCompressor(f)
	if err != nil {
		return nil, err
	}
	return c.Compress(mdec.NewCodeStream(codes), width, height)
}

// flatCodes returns macroBlocks macroblocks whose blocks hold only a DC of 0
// at qscale q.
func flatCodes(q, macroBlocks int) []mdec.Code {
	var codes []mdec.Code
	for i := 0; i < macroBlocks*mdec.BlocksPerMacroBlock; i++ {
		codes = append(codes, mdec.Code{Top: q}, mdec.EndOfData())
	}
	return codes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
