package psxstr

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/go-psxstr/mdec"
)

// CompressFull re-encodes a whole frame at the best quality that fits in
// maxSize bytes. It fails with ErrFrameTooLarge when even the coarsest scale
// does not fit.
func (c *Compressor) CompressFull(maxSize int, enc FrameEncoder) ([]byte, error) {
	switch c.format {
	case Lain:
		return c.lainCompress(maxSize, enc, 1, 1)
	case Iki:
		return c.ikiCompressFull(maxSize, enc)
	}
	out, _, err := c.singleQscaleCompressFull(maxSize, enc, 1)
	return out, err
}

// CompressPartial re-encodes a frame whose content was only partly replaced.
// The search starts at the original frame's scales instead of the finest, so
// untouched macroblocks keep their original quality. The Compressor must come
// from Uncompressor.Compressor.
func (c *Compressor) CompressPartial(maxSize int, enc FrameEncoder) ([]byte, error) {
	if c.original == nil {
		return nil, fmt.Errorf("%w: no original frame scales", ErrIncompatibleQuantization)
	}
	switch c.format {
	case Lain:
		return c.lainCompress(maxSize, enc, c.original.luma, c.original.chroma)
	case Iki:
		return c.ikiCompressPartial(maxSize, enc)
	}
	out, _, err := c.singleQscaleCompressFull(maxSize, enc, c.original.luma)
	return out, err
}

// singleQscaleCompressFull tries every scale from start upwards and returns
// the first output that fits, along with its scale.
func (c *Compressor) singleQscaleCompressFull(maxSize int, enc FrameEncoder, start int) ([]byte, int, error) {
	log := c.opts.logger.WithField("format", c.format.String())
	var lastErr error
	for q := start; q <= c.opts.maxQscale; q++ {
		out, err := c.encodeFrame(enc, uniformScales(q))
		if err != nil {
			if !isSkippable(err) {
				return nil, 0, err
			}
			log.WithField("qscale", q).WithError(err).Debug("Skipping qscale")
			lastErr = err
			continue
		}
		lastErr = nil
		log.WithFields(logrus.Fields{"qscale": q, "size": len(out), "max": maxSize}).Debug("Trying qscale")
		if len(out) <= maxSize {
			return out, q, nil
		}
	}
	return nil, 0, c.exhausted(maxSize, lastErr)
}

// lainCompress raises the luma and chroma scales together, keeping chroma
// at about twice luma, until the frame fits.
func (c *Compressor) lainCompress(maxSize int, enc FrameEncoder, luma, chroma int) ([]byte, error) {
	maxQ := c.opts.maxQscale
	log := c.opts.logger.WithField("format", c.format.String())
	for {
		out, err := c.encodeFrame(enc, classScales(luma, chroma))
		fields := logrus.Fields{"luma": luma, "chroma": chroma}
		switch {
		case err == nil:
			log.WithFields(fields).WithField("size", len(out)).Debug("Trying qscales")
			if len(out) <= maxSize {
				return out, nil
			}
		case isSkippable(err):
			log.WithFields(fields).WithError(err).Debug("Skipping qscales")
		default:
			return nil, err
		}

		if luma >= maxQ && chroma >= maxQ {
			return nil, c.exhausted(maxSize, err)
		}
		if chroma < maxQ && (chroma < 2*luma || luma >= maxQ) {
			chroma++
		} else {
			luma++
		}
	}
}

// ikiCompressFull finds the single scale that fits, then spends the bytes
// left over by lowering the scale of individual macroblocks, one step each,
// until one no longer fits.
func (c *Compressor) ikiCompressFull(maxSize int, enc FrameEncoder) ([]byte, error) {
	best, q, err := c.singleQscaleCompressFull(maxSize, enc, 1)
	if err != nil || q == 1 {
		return best, err
	}

	scales := make([]int, mdec.MacroBlockCount(enc.Width(), enc.Height()))
	for i := range scales {
		scales[i] = q
	}
	perMacroBlock := func(mb int, _ mdec.Block) int { return scales[mb] }

	log := c.opts.logger.WithField("format", c.format.String())
	for _, mb := range macroBlockPriority(enc) {
		scales[mb]--
		out, err := c.encodeFrame(enc, perMacroBlock)
		if err != nil && !isSkippable(err) {
			return nil, err
		}
		if err != nil || len(out) > maxSize {
			log.WithField("macroblock", mb).Debug("No room left to lower qscale")
			break
		}
		best = out
	}
	return best, nil
}

// ikiCompressPartial raises every block's original scale by the same amount
// until the frame fits.
func (c *Compressor) ikiCompressPartial(maxSize int, enc FrameEncoder) ([]byte, error) {
	orig := c.original.blocks
	if got := mdec.BlockCount(enc.Width(), enc.Height()); got != len(orig) {
		return nil, fmt.Errorf("%w: %d blocks, original frame has %d", ErrInvalidFrameSize, got, len(orig))
	}

	maxQ := c.opts.maxQscale
	steps := 0
	if len(orig) > 0 {
		steps = max(0, maxQ-slices.Min(orig))
	}
	log := c.opts.logger.WithField("format", c.format.String())
	var lastErr error
	for step := 0; step <= steps; step++ {
		scales := func(mb int, b mdec.Block) int {
			return min(orig[mb*mdec.BlocksPerMacroBlock+int(b)]+step, maxQ)
		}
		out, err := c.encodeFrame(enc, scales)
		if err != nil && !isSkippable(err) {
			return nil, err
		}
		lastErr = err
		if err == nil {
			log.WithFields(logrus.Fields{"step": step, "size": len(out)}).Debug("Trying qscale offset")
			if len(out) <= maxSize {
				return out, nil
			}
		}
	}
	return nil, c.exhausted(maxSize, lastErr)
}

// macroBlockPriority orders macroblocks by descending energy, then by
// ascending distance from the centre of the frame.
func macroBlockPriority(enc FrameEncoder) []int {
	cols := mdec.MacroBlockColumns(enc.Width())
	rows := mdec.MacroBlockRows(enc.Height())

	type candidate struct {
		index    int
		energy   int
		distance float64
	}
	candidates := make([]candidate, cols*rows)
	for i := range candidates {
		dx := float64(i/rows) + 0.5 - float64(cols)/2
		dy := float64(i%rows) + 0.5 - float64(rows)/2
		candidates[i] = candidate{
			index:    i,
			energy:   enc.MacroBlock(i).Energy(),
			distance: dx*dx + dy*dy,
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.energy != b.energy {
			return cmp.Compare(b.energy, a.energy)
		}
		return cmp.Compare(a.distance, b.distance)
	})

	order := make([]int, len(candidates))
	for i, cand := range candidates {
		order[i] = cand.index
	}
	return order
}

// exhausted builds the error returned when no scale fits. If the last attempt
// could not be encoded at all that error is returned instead.
func (c *Compressor) exhausted(maxSize int, lastErr error) error {
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%w: %s frame over %d bytes at qscale %d",
		ErrFrameTooLarge, c.format, maxSize, c.opts.maxQscale)
}
