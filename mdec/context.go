package mdec

// Context tracks the position of a reader or writer within a frame.
// It is advanced exactly once per code.
type Context struct {
	block       Block
	macroBlock  int
	totalCodes  int
	totalBlocks int
	midBlock    bool
	macroBlocks int // macroblocks in the frame, 0 if unknown
}

// NewContext creates a context for a frame with the given macroblock count.
// A count of 0 leaves the frame unbounded.
func NewContext(macroBlocks int) *Context {
	return &Context{macroBlocks: macroBlocks}
}

// Reset rewinds the context to the start of the frame.
func (c *Context) Reset() {
	*c = Context{macroBlocks: c.macroBlocks}
}

// Block returns the current block within the macroblock.
func (c *Context) Block() Block { return c.block }

// MacroBlock returns the current macroblock index within the frame.
func (c *Context) MacroBlock() int { return c.macroBlock }

// TotalCodes returns how many codes have been read or written.
func (c *Context) TotalCodes() int { return c.totalCodes }

// TotalBlocks returns how many blocks have been completed.
func (c *Context) TotalBlocks() int { return c.totalBlocks }

// AtStartOfBlock reports whether the next code is a qscale/DC code.
func (c *Context) AtStartOfBlock() bool { return !c.midBlock }

// MacroBlocks returns the frame's macroblock count (0 if unbounded).
func (c *Context) MacroBlocks() int { return c.macroBlocks }

// Done reports whether every block of a bounded frame has been completed.
func (c *Context) Done() bool {
	return c.macroBlocks > 0 && c.macroBlock >= c.macroBlocks
}

// NextCode advances past one code. eod tells whether the code closed the block.
func (c *Context) NextCode(eod bool) {
	c.totalCodes++
	if !eod {
		c.midBlock = true
		return
	}
	c.midBlock = false
	c.totalBlocks++
	c.block++
	if c.block == BlocksPerMacroBlock {
		c.block = Cr
		c.macroBlock++
	}
}
