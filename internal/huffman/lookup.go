package huffman

import (
	"fmt"
	mathbits "math/bits"
)

// Lookup is an immutable (run, level) table for one dialect.
//
// Decoding is O(1): the leading-zero count of a LongestCode-bit window picks
// one of four partition tables, each indexed by the window bits that follow
// the zeros:
//
//	zeros  0     window  3 bits  (10, 11s)
//	zeros  1-5   window  9 bits  (011s .. 00100xxxs, escape)
//	zeros  6-9   window 15 bits  (0000001xxxs .. 0000000001xxxxs)
//	zeros 10-11  window 17 bits  (00000000001xxxxs, 000000000001xxxxs)
type Lookup struct {
	name  string
	codes [NumCodes]ZeroRunLengthAc

	p0 [1 << 3]*ZeroRunLengthAc
	p1 [1 << 9]*ZeroRunLengthAc
	p2 [1 << 9]*ZeroRunLengthAc
	p3 [1 << 7]*ZeroRunLengthAc

	tree map[treeKey]*ZeroRunLengthAc
}

type treeKey struct {
	length int
	value  uint32
}

// partition describes one decode sub-table.
type partition struct {
	maxZeros int
	window   int
}

var partitions = [4]partition{
	{maxZeros: 0, window: 3},
	{maxZeros: 5, window: 9},
	{maxZeros: 9, window: 15},
	{maxZeros: 11, window: 17},
}

// Standard is the MPEG-1 style table used by STRv1, STRv2, STRv3 and Iki.
var Standard = mustBuild("standard", func(r acRow) (int, int) { return r.run, r.level })

// Lain is the table used by Serial Experiments Lain.
var Lain = mustBuild("lain", func(r acRow) (int, int) { return r.lainRun, r.lainLevel })

// mustBuild creates a Lookup from the static catalog. It panics if an ordinal is
// filled twice or left empty, if two codes share a (run, level) pair, or if two
// codes collide in a decode table.
func mustBuild(name string, pair func(acRow) (int, int)) *Lookup {
	l := &Lookup{name: name, tree: make(map[treeKey]*ZeroRunLengthAc, NumCodes)}

	var filled [NumCodes]bool
	set := func(z ZeroRunLengthAc) {
		if filled[z.Code] {
			panic(fmt.Sprintf("huffman: %s: code %s assigned twice", name, z.Code))
		}
		filled[z.Code] = true
		l.codes[z.Code] = z
	}

	for i, row := range acRows {
		run, level := pair(row)
		pos := BitStreamCode(2 * i)
		set(ZeroRunLengthAc{Code: pos, Run: run, Level: level})
		set(ZeroRunLengthAc{Code: pos + 1, Run: run, Level: -level})
	}
	set(ZeroRunLengthAc{Code: Escape, IsEscape: true})
	set(ZeroRunLengthAc{Code: EndOfBlock, EndOfBlock: true})

	type pairKey struct{ run, level int }
	seenPairs := make(map[pairKey]BitStreamCode, NumCodes)
	seenBits := make(map[string]BitStreamCode, NumCodes)
	for c := BitStreamCode(0); int(c) < NumCodes; c++ {
		if !filled[c] {
			panic(fmt.Sprintf("huffman: %s: code %d left unassigned", name, c))
		}
		z := &l.codes[c]
		if prev, ok := seenBits[c.Bits()]; ok {
			panic(fmt.Sprintf("huffman: %s: %s and %s share a bit pattern", name, prev, c))
		}
		seenBits[c.Bits()] = c
		if c < Escape {
			if z.Level == 0 {
				panic(fmt.Sprintf("huffman: %s: %s has a zero level", name, c))
			}
			k := pairKey{z.Run, z.Level}
			if prev, ok := seenPairs[k]; ok {
				panic(fmt.Sprintf("huffman: %s: %s and %s both map to (%d, %d)", name, prev, c, z.Run, z.Level))
			}
			seenPairs[k] = c
		}
		l.tree[treeKey{c.Length(), c.Value()}] = z
		l.index(z)
	}
	return l
}

// index fills every decode-table slot whose window starts with z's bits.
func (l *Lookup) index(z *ZeroRunLengthAc) {
	d := catalog[z.Code]
	zeros := 0
	for zeros < d.length && d.bits[zeros] == '0' {
		zeros++
	}

	var table []*ZeroRunLengthAc
	var window int
	for i, p := range partitions {
		if zeros <= p.maxZeros {
			window = p.window
			switch i {
			case 0:
				table = l.p0[:]
			case 1:
				table = l.p1[:]
			case 2:
				table = l.p2[:]
			case 3:
				table = l.p3[:]
			}
			break
		}
	}
	if table == nil || d.length > window {
		panic(fmt.Sprintf("huffman: %s: %s does not fit a decode table", l.name, z.Code))
	}

	shift := uint(window - d.length)
	mask := uint32(len(table) - 1)
	start := d.value << shift
	for k := uint32(0); k < 1<<shift; k++ {
		i := (start | k) & mask
		if table[i] != nil {
			panic(fmt.Sprintf("huffman: %s: %s collides with %s", l.name, z.Code, table[i].Code))
		}
		table[i] = z
	}
}

// Name returns the dialect name.
func (l *Lookup) Name() string {
	return l.name
}

// Code returns the table entry for a catalog ordinal.
func (l *Lookup) Code(c BitStreamCode) *ZeroRunLengthAc {
	return &l.codes[c]
}

// Decode returns the entry whose code prefixes the LongestCode-bit window,
// or nil when no code matches.
func (l *Lookup) Decode(window uint32) *ZeroRunLengthAc {
	window &= 1<<LongestCode - 1
	zeros := mathbits.LeadingZeros32(window) - (32 - LongestCode)
	switch {
	case zeros == 0:
		return l.p0[window>>(LongestCode-3)]
	case zeros <= 5:
		return l.p1[window>>(LongestCode-9)]
	case zeros <= 9:
		return l.p2[window>>(LongestCode-15)]
	case zeros <= 11:
		return l.p3[window]
	}
	return nil
}

// decodeLinear scans the catalog for a code prefixing the window.
func (l *Lookup) decodeLinear(window uint32) *ZeroRunLengthAc {
	window &= 1<<LongestCode - 1
	for i := range l.codes {
		if l.codes[i].Code.Matches(window) {
			return &l.codes[i]
		}
	}
	return nil
}

// decodeTree walks the window one bit at a time.
func (l *Lookup) decodeTree(window uint32) *ZeroRunLengthAc {
	window &= 1<<LongestCode - 1
	for n := 1; n <= LongestCode; n++ {
		if z, ok := l.tree[treeKey{n, window >> uint(LongestCode-n)}]; ok {
			return z
		}
	}
	return nil
}

// Encode returns the entry for an exact (run, level) pair, or nil when the
// pair has no code and must be written with the escape code.
func (l *Lookup) Encode(run, level int) *ZeroRunLengthAc {
	for i := 0; i < int(Escape); i++ {
		if l.codes[i].Run == run && l.codes[i].Level == level {
			return &l.codes[i]
		}
	}
	return nil
}
