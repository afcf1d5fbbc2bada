package psxstr

import (
	"errors"
	"fmt"

	"github.com/llehouerou/go-psxstr/internal/bits"
	"github.com/llehouerou/go-psxstr/internal/huffman"
	"github.com/llehouerou/go-psxstr/internal/syntax"
	"github.com/llehouerou/go-psxstr/mdec"
)

// Bit widths of the fixed-size fields.
const (
	dcBits        = 10
	escapeRunBits = 6
	escapeAcBits  = 10
	lainAcBits    = 8
)

// Uncompressor decodes one frame's bitstream into MDEC codes.
//
// It implements mdec.Reader. Codes are produced one at a time in stream order;
// the caller decides how many macroblocks to read, usually from the frame
// dimensions. An Uncompressor is not safe for concurrent use.
type Uncompressor struct {
	format Format
	frame  []byte
	opts   options

	str  syntax.StrHeader
	iki  syntax.IkiHeader
	lain syntax.LainHeader

	r     *bits.Reader
	table *huffman.Lookup
	ctx   *mdec.Context

	vectorPos    int
	dcPredictors [3]int
	err          error

	paddingChecked bool
	paddingValid   bool
	warnings       []Warning
}

// Identify tries every format against frame, in priority order, and returns
// an Uncompressor for the first whose header is valid.
func Identify(frame []byte, opts ...Option) (*Uncompressor, error) {
	o := newOptions(opts)
	for _, f := range identifyOrder {
		if u := newUncompressor(f, frame, o); u != nil {
			return u, nil
		}
	}
	return nil, ErrFormatNotRecognized
}

// NewUncompressor creates an Uncompressor for a frame of a known format.
func NewUncompressor(format Format, frame []byte, opts ...Option) (*Uncompressor, error) {
	u := newUncompressor(format, frame, newOptions(opts))
	if u == nil {
		return nil, fmt.Errorf("%w: invalid %s header", ErrFormatNotRecognized, format)
	}
	return u, nil
}

func newUncompressor(f Format, frame []byte, o options) *Uncompressor {
	u := &Uncompressor{
		format: f,
		frame:  frame,
		opts:   o,
		table:  f.table(),
		ctx:    mdec.NewContext(0),
	}

	var start int
	switch {
	case f.isSTR():
		u.str = syntax.ParseStrHeader(frame, f.strVersion())
		if !u.str.IsValid() {
			return nil
		}
		start = u.str.BitstreamOffset()
	case f == Iki:
		u.iki = syntax.ParseIkiHeader(frame)
		if !u.iki.IsValid() {
			return nil
		}
		start = u.iki.BitstreamOffset()
	case f == Lain:
		u.lain = syntax.ParseLainHeader(frame)
		if !u.lain.IsValid() {
			return nil
		}
		start = u.lain.BitstreamOffset()
	default:
		return nil
	}

	u.r = bits.NewReader(frame, start, len(frame), f.byteOrder())
	return u
}

// Format returns the detected format.
func (u *Uncompressor) Format() Format {
	return u.format
}

// FrameQscale returns the frame-wide quantization scale: the header scale for
// STR, the luma scale for Lain, and -1 for Iki whose scales are per block.
func (u *Uncompressor) FrameQscale() int {
	switch {
	case u.format.isSTR():
		return u.str.Qscale
	case u.format == Lain:
		return u.lain.LumaQscale
	}
	return -1
}

// LumaQscale returns the quantization scale of the Y blocks (-1 for Iki).
func (u *Uncompressor) LumaQscale() int {
	return u.FrameQscale()
}

// ChromaQscale returns the quantization scale of the Cr and Cb blocks (-1 for Iki).
func (u *Uncompressor) ChromaQscale() int {
	if u.format == Lain {
		return u.lain.ChromaQscale
	}
	return u.FrameQscale()
}

// BitsRead returns the number of bitstream bits consumed.
func (u *Uncompressor) BitsRead() int {
	return u.r.BitsRead()
}

// ByteOffset returns the frame offset of the byte holding the next unread bit.
func (u *Uncompressor) ByteOffset() int {
	return u.r.ByteOffset()
}

// PaddingValid reports whether ValidatePadding found the expected bits.
// It is false until ValidatePadding has run.
func (u *Uncompressor) PaddingValid() bool {
	return u.paddingChecked && u.paddingValid
}

// Warnings returns the warnings found so far.
func (u *Uncompressor) Warnings() []Warning {
	return u.warnings
}

func (u *Uncompressor) String() string {
	switch {
	case u.format == Lain:
		return fmt.Sprintf("%s Qscale L=%d C=%d", u.format, u.lain.LumaQscale, u.lain.ChromaQscale)
	case u.format == Iki:
		return fmt.Sprintf("%s %dx%d", u.format, u.iki.Width, u.iki.Height)
	}
	return fmt.Sprintf("%s Qscale %d", u.format, u.str.Qscale)
}

// Reset rewinds the decoder to the first code of the frame.
func (u *Uncompressor) Reset() {
	u.r = bits.NewReader(u.frame, u.bitstreamOffset(), len(u.frame), u.format.byteOrder())
	u.ctx.Reset()
	u.vectorPos = 0
	u.dcPredictors = [3]int{}
	u.err = nil
	u.paddingChecked = false
	u.paddingValid = false
	u.warnings = nil
}

func (u *Uncompressor) bitstreamOffset() int {
	switch u.format {
	case Iki:
		return u.iki.BitstreamOffset()
	case Lain:
		return u.lain.BitstreamOffset()
	}
	return u.str.BitstreamOffset()
}

// ReadCode implements mdec.Reader. The first code of each block carries the
// quantization scale and DC; the last is the end-of-data code.
//
// Errors are sticky: after a failure every call returns the same error.
func (u *Uncompressor) ReadCode(code *mdec.Code) (bool, error) {
	if u.err != nil {
		return false, u.err
	}
	eod, err := u.readCode(code)
	if err != nil {
		u.err = err
		return false, err
	}
	u.ctx.NextCode(eod)
	return eod, nil
}

func (u *Uncompressor) readCode(code *mdec.Code) (bool, error) {
	if u.ctx.AtStartOfBlock() {
		u.vectorPos = 0
		return false, u.readQscaleDc(code)
	}

	window, peekErr := u.r.PeekUnsigned(huffman.LongestCode)
	if peekErr != nil && !errors.Is(peekErr, bits.ErrEndOfStream) {
		return false, u.wrap(peekErr)
	}
	z := u.table.Decode(window)
	if z == nil {
		if peekErr != nil {
			return false, u.wrap(peekErr)
		}
		return false, u.errorf(ErrReadCorruption, "unknown variable length code 0x%05X", window)
	}
	if err := u.r.Skip(z.Length()); err != nil {
		return false, u.wrap(err)
	}

	if z.EndOfBlock {
		code.SetEOD()
		return true, nil
	}

	run, level := z.Run, z.Level
	if z.IsEscape {
		var err error
		if run, level, err = u.readEscape(); err != nil {
			return false, u.wrap(err)
		}
	}
	u.vectorPos += run + 1
	if u.vectorPos >= mdec.CoefficientsPerBlock {
		return false, u.errorf(ErrReadCorruption, "run length out of bounds: %d", u.vectorPos)
	}
	code.Top = run
	code.Bottom = level
	return false, nil
}

func (u *Uncompressor) readQscaleDc(code *mdec.Code) error {
	block := u.ctx.Block()
	switch u.format {
	case STRv1, STRv2:
		dc, err := u.r.ReadSigned(dcBits)
		if err != nil {
			return u.wrap(err)
		}
		code.Top, code.Bottom = u.str.Qscale, int(dc)

	case STRv3:
		table := huffman.DcLuma
		if block.IsChroma() {
			table = huffman.DcChroma
		}
		diff, err := table.ReadDiff(u.r)
		if err != nil {
			return u.wrap(err)
		}
		class := dcClass(block)
		dc := u.dcPredictors[class] + diff*4
		if dc < mdec.MinBottom || dc > mdec.MaxBottom {
			return u.errorf(ErrReadCorruption, "DC out of bounds: %d", dc)
		}
		u.dcPredictors[class] = dc
		code.Top, code.Bottom = u.str.Qscale, dc

	case Iki:
		i := u.ctx.TotalBlocks()
		if i >= u.iki.BlockCount() {
			return u.errorf(ErrReadCorruption, "block %d past end of qscale/DC table", i)
		}
		*code = u.iki.QscaleDc(i)

	case Lain:
		dc, err := u.r.ReadSigned(dcBits)
		if err != nil {
			return u.wrap(err)
		}
		code.Top, code.Bottom = u.lain.LumaQscale, int(dc)
		if block.IsChroma() {
			code.Top = u.lain.ChromaQscale
		}
	}
	return nil
}

func (u *Uncompressor) readEscape() (run, level int, err error) {
	r, err := u.r.ReadUnsigned(escapeRunBits)
	if err != nil {
		return 0, 0, err
	}
	run = int(r)

	if u.format != Lain {
		l, err := u.r.ReadSigned(escapeAcBits)
		return run, int(l), err
	}

	b, err := u.r.ReadUnsigned(lainAcBits)
	if err != nil {
		return 0, 0, err
	}
	switch b {
	case 0x00, 0x80:
		ext, err := u.r.ReadUnsigned(lainAcBits)
		if err != nil {
			return 0, 0, err
		}
		level = int(ext)
		if b == 0x80 {
			level -= 256
		}
	default:
		level = int(int8(b))
	}
	return run, level, nil
}

// ValidatePadding reads the bits that follow the last block and checks them
// against the format's padding pattern. Only STRv2 and STRv3 are checked.
//
// A mismatch produces a WarnPaddingMismatch warning and returns false; with
// WithStrictPadding it fails with ErrReadCorruption instead.
func (u *Uncompressor) ValidatePadding() (bool, error) {
	u.paddingChecked = true
	u.paddingValid = true
	if !u.format.checksPadding() {
		return true, nil
	}

	want, n := u.format.padding()
	got, err := u.r.ReadUnsigned(n)
	if err == nil && got == want {
		return true, nil
	}

	u.paddingValid = false
	expected := fmt.Sprintf("%0*b", n, want)
	actual := fmt.Sprintf("%0*b", n, got)
	if err != nil {
		actual = "end of stream"
	}
	if u.opts.strictPadding {
		return false, u.errorf(ErrReadCorruption, "incorrect padding bits %s, expected %s", actual, expected)
	}
	u.warn(Warning{
		Kind:    WarnPaddingMismatch,
		Message: "incorrect padding bits",
		Fields: map[string]any{
			"format":     u.format.String(),
			"expected":   expected,
			"actual":     actual,
			"macroblock": u.ctx.MacroBlock(),
		},
	})
	return false, nil
}

// DecodeFrame reads every block of macroBlocks macroblocks, then checks the
// padding and the header's code count.
func (u *Uncompressor) DecodeFrame(macroBlocks int) ([]mdec.Code, error) {
	if macroBlocks < 1 {
		return nil, fmt.Errorf("%w: %d macroblocks", ErrInvalidFrameSize, macroBlocks)
	}
	codes, err := mdec.ReadAll(u, macroBlocks)
	if err != nil {
		return codes, err
	}
	if _, err := u.ValidatePadding(); err != nil {
		return codes, err
	}
	u.checkCodeCount(len(codes))
	return codes, nil
}

func (u *Uncompressor) checkCodeCount(codes int) {
	var header int
	switch u.format {
	case Iki:
		header = u.iki.HalfVlcCountCeil32
	case Lain:
		header = u.lain.VlcCountCeil32
	default:
		header = u.str.HalfVlcCountCeil32
	}
	if actual := syntax.HalfVlcCountCeil32(codes); actual != header {
		u.warn(Warning{
			Kind:    WarnCodeCountMismatch,
			Message: "header code count does not match the bitstream",
			Fields: map[string]any{
				"format":   u.format.String(),
				"expected": header,
				"actual":   actual,
			},
		})
	}
}

// Compressor returns a compressor for the same format that remembers this
// frame's quantization scales for partial re-encoding.
func (u *Uncompressor) Compressor() *Compressor {
	c := &Compressor{format: u.format, opts: u.opts}
	orig := &originalScales{luma: u.LumaQscale(), chroma: u.ChromaQscale()}
	if u.format == Iki {
		orig.blocks = make([]int, u.iki.BlockCount())
		for i := range orig.blocks {
			orig.blocks[i] = u.iki.QscaleDc(i).Top
		}
	}
	c.original = orig
	return c
}

func (u *Uncompressor) warn(w Warning) {
	u.warnings = append(u.warnings, w)
	if u.opts.diagnostics != nil {
		u.opts.diagnostics.Warn(w)
	}
}

func (u *Uncompressor) errorf(code Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s (%s macroblock %d block %s)",
		code, fmt.Sprintf(format, args...), u.format, u.ctx.MacroBlock(), u.ctx.Block())
}

// wrap maps an internal package error to an Error code.
func (u *Uncompressor) wrap(err error) error {
	if errors.Is(err, bits.ErrEndOfStream) {
		return u.errorf(ErrEndOfStream, "%v", err)
	}
	return u.errorf(ErrReadCorruption, "%v", err)
}
