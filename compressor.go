package psxstr

import (
	"errors"
	"fmt"

	"github.com/llehouerou/go-psxstr/internal/bits"
	"github.com/llehouerou/go-psxstr/internal/huffman"
	"github.com/llehouerou/go-psxstr/internal/syntax"
	"github.com/llehouerou/go-psxstr/mdec"
)

// Compressor encodes MDEC codes into a frame of one format.
//
// A Compressor obtained from Uncompressor.Compressor also knows the scales of
// the frame it came from, which CompressPartial starts its search at.
type Compressor struct {
	format   Format
	opts     options
	original *originalScales
}

// originalScales are the quantization scales of a decoded frame.
type originalScales struct {
	luma, chroma int
	blocks       []int // Iki per-block scales
}

// NewCompressor creates a compressor for format.
func NewCompressor(format Format, opts ...Option) (*Compressor, error) {
	if format <= FormatUnknown || format > Lain {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotRecognized, format)
	}
	return &Compressor{format: format, opts: newOptions(opts)}, nil
}

// Format returns the output format.
func (c *Compressor) Format() Format {
	return c.format
}

// Compress encodes every block of a width x height frame read from r. The
// quantization scales are taken from the codes themselves.
func (c *Compressor) Compress(r mdec.Reader, width, height int) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, width, height)
	}
	fw := newFrameWriter(c.format, mdec.MacroBlockCount(width, height))
	for !fw.ctx.Done() {
		var code mdec.Code
		if _, err := r.ReadCode(&code); err != nil {
			return nil, fmt.Errorf("reading macroblock %d: %w", fw.ctx.MacroBlock(), err)
		}
		if err := fw.write(code); err != nil {
			return nil, err
		}
	}
	return fw.finish(width, height)
}

// frameWriter encodes one frame's codes.
type frameWriter struct {
	format Format
	table  *huffman.Lookup
	w      *bits.Writer
	ctx    *mdec.Context

	vectorPos    int
	qscale       [2]int // frame scale per class (luma, chroma); 0 until set
	dcPredictors [3]int
	ikiTable     []mdec.Code
}

func newFrameWriter(f Format, macroBlocks int) *frameWriter {
	return &frameWriter{
		format: f,
		table:  f.table(),
		w:      bits.NewWriter(f.byteOrder(), f.alignment()),
		ctx:    mdec.NewContext(macroBlocks),
	}
}

func (fw *frameWriter) write(code mdec.Code) error {
	if fw.ctx.Done() {
		return fmt.Errorf("%w: code %s past the last of %d macroblocks",
			ErrInvalidFrameSize, code, fw.ctx.MacroBlocks())
	}
	var err error
	eod := false
	switch {
	case fw.ctx.AtStartOfBlock():
		fw.vectorPos = 0
		err = fw.writeQscaleDc(code)
	case code.IsEOD():
		fw.table.Code(huffman.EndOfBlock).Write(fw.w)
		eod = true
	default:
		err = fw.writeAc(code)
	}
	if err != nil {
		return fmt.Errorf("%w (%s macroblock %d block %s)",
			err, fw.format, fw.ctx.MacroBlock(), fw.ctx.Block())
	}
	fw.ctx.NextCode(eod)
	return nil
}

func (fw *frameWriter) writeQscaleDc(code mdec.Code) error {
	block := fw.ctx.Block()
	if fw.format == Iki {
		if code.Top < syntax.MinQscale || code.Top > syntax.MaxQscale {
			return fmt.Errorf("%w: qscale %d", ErrIncompatibleQuantization, code.Top)
		}
		if !code.Valid() {
			return fmt.Errorf("%w: DC %d", ErrTooMuchEnergy, code.Bottom)
		}
		fw.ikiTable = append(fw.ikiTable, code)
		return nil
	}
	if err := fw.checkQscale(block, code.Top); err != nil {
		return err
	}
	if !code.Valid() {
		return fmt.Errorf("%w: DC %d", ErrTooMuchEnergy, code.Bottom)
	}

	if fw.format != STRv3 {
		fw.w.WriteSigned(int32(code.Bottom), dcBits)
		return nil
	}

	table := huffman.DcLuma
	if block.IsChroma() {
		table = huffman.DcChroma
	}
	class := dcClass(block)
	dc := roundDc(code.Bottom)
	if err := table.WriteDiff(fw.w, (dc-fw.dcPredictors[class])/4); err != nil {
		return fmt.Errorf("%w: %v", ErrTooMuchEnergy, err)
	}
	fw.dcPredictors[class] = dc
	return nil
}

// checkQscale requires every block of a class to share one scale. STR frames
// have a single class; Lain separates luma and chroma.
func (fw *frameWriter) checkQscale(block mdec.Block, q int) error {
	if q < syntax.MinQscale || q > syntax.MaxQscale {
		return fmt.Errorf("%w: qscale %d", ErrIncompatibleQuantization, q)
	}
	class := 0
	if fw.format == Lain && block.IsChroma() {
		class = 1
	}
	switch fw.qscale[class] {
	case 0:
		fw.qscale[class] = q
	case q:
	default:
		return fmt.Errorf("%w: qscale %d, frame uses %d", ErrIncompatibleQuantization, q, fw.qscale[class])
	}
	return nil
}

// roundDc rounds a DC coefficient to the nearest multiple of 4 that STRv3
// can represent.
func roundDc(dc int) int {
	dc = (dc + 2) >> 2 << 2
	return min(max(dc, mdec.MinBottom), mdec.MaxBottom&^3)
}

func (fw *frameWriter) writeAc(code mdec.Code) error {
	if code.Top < 0 || code.Top > mdec.MaxTop {
		return fmt.Errorf("%w: run %d", ErrReadCorruption, code.Top)
	}
	fw.vectorPos += code.Top + 1
	if fw.vectorPos >= mdec.CoefficientsPerBlock {
		return fmt.Errorf("%w: run length out of bounds: %d", ErrReadCorruption, fw.vectorPos)
	}
	if z := fw.table.Encode(code.Top, code.Bottom); z != nil {
		z.Write(fw.w)
		return nil
	}

	fw.table.Code(huffman.Escape).Write(fw.w)
	fw.w.WriteBits(uint32(code.Top), escapeRunBits)
	if fw.format != Lain {
		if code.Bottom < mdec.MinBottom || code.Bottom > mdec.MaxBottom {
			return fmt.Errorf("%w: AC %d", ErrTooMuchEnergy, code.Bottom)
		}
		fw.w.WriteSigned(int32(code.Bottom), escapeAcBits)
		return nil
	}
	return writeLainEscapeLevel(fw.w, code.Bottom)
}

// writeLainEscapeLevel writes an 8-bit level, or an 8-bit prefix (0x00 for
// positive, 0x80 for negative) followed by 8 more bits.
func writeLainEscapeLevel(w *bits.Writer, level int) error {
	switch {
	case level >= -127 && level <= 127 && level != 0:
		w.WriteSigned(int32(level), lainAcBits)
	case level >= 0 && level <= 255:
		w.WriteBits(0x00, lainAcBits)
		w.WriteBits(uint32(level), lainAcBits)
	case level < 0 && level >= -255:
		w.WriteBits(0x80, lainAcBits)
		w.WriteBits(uint32(level+256), lainAcBits)
	default:
		return fmt.Errorf("%w: AC %d", ErrTooMuchEnergy, level)
	}
	return nil
}

// finish writes the padding bits and prepends the header.
func (fw *frameWriter) finish(width, height int) ([]byte, error) {
	if !fw.ctx.Done() {
		return nil, fmt.Errorf("%w: %d of %d macroblocks written for %dx%d",
			ErrInvalidFrameSize, fw.ctx.MacroBlock(), fw.ctx.MacroBlocks(), width, height)
	}
	if v, n := fw.format.padding(); n > 0 {
		fw.w.WriteBits(v, n)
	}
	body := fw.w.Bytes()
	codes := fw.ctx.TotalCodes()

	var header []byte
	switch fw.format {
	case Iki:
		header = syntax.BuildIkiHeader(width, height, codes, fw.ikiTable)
	case Lain:
		header = syntax.NewLainHeader(fw.qscale[0], fw.qscale[1], codes).Bytes()
	default:
		header = syntax.NewStrHeader(fw.format.strVersion(), fw.qscale[0], codes).Bytes()
	}
	return append(header, body...), nil
}

// isSkippable reports whether a search may move on to the next scale.
func isSkippable(err error) bool {
	return errors.Is(err, ErrTooMuchEnergy)
}
