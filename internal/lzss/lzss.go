// Package lzss implements the byte-oriented LZSS dialect Iki uses to store
// its per-block quantization scale and DC table.
//
// Tokens are grouped in eights behind a flag byte, most significant bit
// first. A clear flag bit is a literal byte. A set bit is a back-reference:
// one byte holding length-3, then offset-1 in one byte when below 0x80, or
// in two big-endian bytes with the top bit set.
package lzss

import "errors"

var (
	// ErrTruncated indicates the compressed data ended before the output was filled.
	ErrTruncated = errors.New("lzss: truncated input")

	// ErrBadOffset indicates a back-reference pointing before the start of the output.
	ErrBadOffset = errors.New("lzss: back-reference before start of output")
)

const (
	// MinMatch is the shortest back-reference.
	MinMatch = 3
	// MaxMatch is the longest back-reference.
	MaxMatch = MinMatch + 0xFF
	// MaxOffset is the farthest back-reference distance.
	MaxOffset = 0x8000

	// tailLiterals is how many final input bytes are always written as literals.
	tailLiterals = 3
)

// MaxDecompressedLen returns an upper bound on the output n bytes of
// compressed data can produce. A back-reference takes at least two bytes.
func MaxDecompressedLen(n int) int {
	return n/2*MaxMatch + n%2
}

// Decompress fills dst from src and returns the number of bytes of src consumed.
// A back-reference running past the end of dst is cut short.
func Decompress(src, dst []byte) (int, error) {
	in, out := 0, 0
	for out < len(dst) {
		if in >= len(src) {
			return in, ErrTruncated
		}
		flags := src[in]
		in++

		for bit := 0; bit < 8 && out < len(dst); bit++ {
			if flags&(0x80>>uint(bit)) == 0 {
				if in >= len(src) {
					return in, ErrTruncated
				}
				dst[out] = src[in]
				in++
				out++
				continue
			}

			if in+1 >= len(src) {
				return in, ErrTruncated
			}
			length := int(src[in]) + MinMatch
			offset := int(src[in+1])
			in += 2
			if offset&0x80 != 0 {
				if in >= len(src) {
					return in, ErrTruncated
				}
				offset = (offset&0x7F)<<8 | int(src[in])
				in++
			}
			offset++
			if offset > out {
				return in, ErrBadOffset
			}
			for i := 0; i < length && out < len(dst); i++ {
				dst[out] = dst[out-offset]
				out++
			}
		}
	}
	return in, nil
}

// Compress encodes src with a greedy longest-match search. Back-references
// are never started within the final three bytes of src, matching the
// encoder the games were mastered with.
func Compress(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/8+1)
	flagPos := 0
	bit := 8

	for pos := 0; pos < len(src); {
		if bit == 8 {
			flagPos = len(out)
			out = append(out, 0)
			bit = 0
		}

		length, offset := 0, 0
		if pos < len(src)-tailLiterals {
			length, offset = longestMatch(src, pos)
		}

		if length >= MinMatch {
			out[flagPos] |= 0x80 >> uint(bit)
			out = append(out, byte(length-MinMatch))
			o := offset - 1
			if o < 0x80 {
				out = append(out, byte(o))
			} else {
				out = append(out, byte(0x80|o>>8), byte(o))
			}
			pos += length
		} else {
			out = append(out, src[pos])
			pos++
		}
		bit++
	}
	return out
}

// longestMatch finds the longest earlier occurrence of src[pos:], preferring
// the nearest one on ties.
func longestMatch(src []byte, pos int) (length, offset int) {
	limit := len(src) - pos
	if limit > MaxMatch {
		limit = MaxMatch
	}
	first := pos - MaxOffset
	if first < 0 {
		first = 0
	}
	for cand := pos - 1; cand >= first; cand-- {
		n := 0
		for n < limit && src[cand+n] == src[pos+n] {
			n++
		}
		if n > length {
			length, offset = n, pos-cand
			if n == limit {
				break
			}
		}
	}
	return length, offset
}
