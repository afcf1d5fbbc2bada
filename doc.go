// Package psxstr decodes and re-encodes the compressed video frames of
// PlayStation STR movies.
//
// A frame is a header followed by a variable length coded bitstream of MDEC
// codes. Five bitstream formats are supported:
//
//   - STRv1, STRv2: frame-wide quantization scale, 10-bit DC
//   - STRv3: MPEG-1 style differential DC
//   - Iki: per-block scale and DC in an LZSS compressed header table
//   - Lain: separate luma and chroma scales and its own AC code table
//
// # Decoding
//
// Identify finds the format of a demuxed frame and returns an Uncompressor,
// which implements mdec.Reader:
//
//	u, err := psxstr.Identify(frame)
//	if err != nil {
//	    return err
//	}
//	codes, err := u.DecodeFrame(mdec.MacroBlockCount(width, height))
//
// Problems that leave the frame usable, like unexpected padding bits, are
// reported as Warnings rather than errors. Use WithDiagnostics or
// LogrusDiagnostics to receive them as they happen.
//
// # Encoding
//
// Compressor.Compress encodes a code stream as is. CompressFull and
// CompressPartial search for the finest quantization that fits a byte budget,
// quantizing macroblocks through a FrameEncoder:
//
//	c := u.Compressor()
//	out, err := c.CompressPartial(len(frame), enc)
//	if errors.Is(err, psxstr.ErrFrameTooLarge) {
//	    // keep the original frame
//	}
//
// STRv3 stores DC coefficients in steps of 4, so re-encoding rounds them.
//
// # Thread Safety
//
// Uncompressor and Compressor instances are not safe for concurrent use. The
// code tables are shared and read-only, so separate frames can be processed
// in parallel.
package psxstr
