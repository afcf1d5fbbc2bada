package psxstr

import "github.com/llehouerou/go-psxstr/mdec"

// FrameEncoder supplies a frame's macroblocks to the compressor search.
// Macroblocks are indexed in stream order: columns left to right, each
// column top to bottom.
type FrameEncoder interface {
	Width() int
	Height() int
	MacroBlock(i int) MacroBlockEncoder
}

// MacroBlockEncoder quantizes one macroblock.
type MacroBlockEncoder interface {
	// Codes returns the macroblock's codes with each block quantized at the
	// scale given for it (Cr, Cb, Y1, Y2, Y3, Y4). The first code of each
	// block carries that scale and the DC; each block ends with an
	// end-of-data code.
	Codes(qscales [mdec.BlocksPerMacroBlock]int) []mdec.Code

	// Energy estimates how much detail the macroblock holds. The Iki search
	// spends spare bytes on high energy macroblocks first.
	Energy() int
}

// blockScales is the scale of every block of every macroblock.
type blockScales func(macroBlock int, block mdec.Block) int

// uniformScales uses one scale for every block.
func uniformScales(q int) blockScales {
	return func(int, mdec.Block) int { return q }
}

// classScales uses one scale for luma and one for chroma.
func classScales(luma, chroma int) blockScales {
	return func(_ int, b mdec.Block) int {
		if b.IsChroma() {
			return chroma
		}
		return luma
	}
}

// encodeFrame quantizes every macroblock at the given scales and compresses
// the result.
func (c *Compressor) encodeFrame(enc FrameEncoder, scales blockScales) ([]byte, error) {
	width, height := enc.Width(), enc.Height()
	if width < 1 || height < 1 {
		return nil, ErrInvalidFrameSize
	}
	macroBlocks := mdec.MacroBlockCount(width, height)
	fw := newFrameWriter(c.format, macroBlocks)
	for mb := 0; mb < macroBlocks; mb++ {
		var qs [mdec.BlocksPerMacroBlock]int
		for b := range qs {
			qs[b] = scales(mb, mdec.Block(b))
		}
		for _, code := range enc.MacroBlock(mb).Codes(qs) {
			if err := fw.write(code); err != nil {
				return nil, err
			}
		}
	}
	return fw.finish(width, height)
}
