package huffman

import (
	"testing"

	"github.com/llehouerou/go-psxstr/internal/bits"
)

func TestCatalog_Shape(t *testing.T) {
	if NumCodes != 224 {
		t.Fatalf("NumCodes = %d, want 224", NumCodes)
	}
	longest := 0
	for c := BitStreamCode(0); int(c) < NumCodes; c++ {
		if c.Length() > longest {
			longest = c.Length()
		}
		if c < Escape && c.Negative() != (c%2 == 1) {
			t.Errorf("%s: Negative() = %v", c, c.Negative())
		}
	}
	if longest != LongestCode {
		t.Errorf("longest code = %d bits, want %d", longest, LongestCode)
	}
	if Escape.Bits() != "000001" || EndOfBlock.Bits() != "10" {
		t.Errorf("escape/eob = %q/%q", Escape.Bits(), EndOfBlock.Bits())
	}
}

func TestCatalog_PrefixFree(t *testing.T) {
	for a := BitStreamCode(0); int(a) < NumCodes; a++ {
		for b := BitStreamCode(0); int(b) < NumCodes; b++ {
			if a == b || a.Length() > b.Length() {
				continue
			}
			if b.Value()>>uint(b.Length()-a.Length()) == a.Value() {
				t.Fatalf("%s is a prefix of %s", a, b)
			}
		}
	}
}

// TestLookup_Totality checks the partition tables against both slow decoders
// for every possible 17-bit window.
func TestLookup_Totality(t *testing.T) {
	for _, l := range []*Lookup{Standard, Lain} {
		t.Run(l.Name(), func(t *testing.T) {
			matched := 0
			for w := uint32(0); w < 1<<LongestCode; w++ {
				fast := l.Decode(w)
				linear := l.decodeLinear(w)
				tree := l.decodeTree(w)
				if fast != linear || fast != tree {
					t.Fatalf("window 0x%05X: fast=%v linear=%v tree=%v", w, fast, linear, tree)
				}
				if fast != nil {
					matched++
				}
			}
			// Only windows of twelve or more leading zeros are unmatched.
			if want := 1<<LongestCode - 1<<(LongestCode-12); matched != want {
				t.Errorf("matched %d windows, want %d", matched, want)
			}
		})
	}
}

func TestLookup_EveryCodeDecodesToItself(t *testing.T) {
	for _, l := range []*Lookup{Standard, Lain} {
		for c := BitStreamCode(0); int(c) < NumCodes; c++ {
			window := c.Value() << uint(LongestCode-c.Length())
			// Trailing bits after the code must not change the result.
			for _, tail := range []uint32{0, 1<<uint(LongestCode-c.Length()) - 1} {
				z := l.Decode(window | tail)
				if z == nil || z.Code != c {
					t.Fatalf("%s: %s decoded as %v", l.Name(), c, z)
				}
			}
		}
	}
}

func TestStandard_KnownCodes(t *testing.T) {
	tests := []struct {
		bits  string
		run   int
		level int
	}{
		{"110", 0, 1},
		{"111", 0, -1},
		{"0110", 1, 1},
		{"01000", 0, 2},
		{"001010", 0, 3},
		{"0001110", 5, 1},
		{"00000010101", 0, -7},
		{"0000000110000", 0, 9},
		{"00000000000110111", 31, -1},
	}

	for _, tt := range tests {
		t.Run(tt.bits, func(t *testing.T) {
			w := newCodeDef(tt.bits)
			window := w.value << uint(LongestCode-w.length)
			z := Standard.Decode(window)
			if z == nil {
				t.Fatal("no match")
			}
			if z.Length() != w.length || z.Run != tt.run || z.Level != tt.level {
				t.Errorf("got %v length %d, want (%d, %d) length %d", z, z.Length(), tt.run, tt.level, w.length)
			}
		})
	}
}

func TestLookup_SpecialCodes(t *testing.T) {
	z := Standard.Decode(0b10 << 15)
	if z == nil || !z.EndOfBlock {
		t.Errorf("10... decoded as %v, want end of block", z)
	}
	z = Lain.Decode(0b000001 << 11)
	if z == nil || !z.IsEscape {
		t.Errorf("000001... decoded as %v, want escape", z)
	}
	if z := Standard.Decode(0); z != nil {
		t.Errorf("all zero window decoded as %v, want nil", z)
	}
}

func TestLookup_Encode(t *testing.T) {
	for _, l := range []*Lookup{Standard, Lain} {
		for c := BitStreamCode(0); c < Escape; c++ {
			want := l.Code(c)
			got := l.Encode(want.Run, want.Level)
			if got != want {
				t.Fatalf("%s: Encode(%d, %d) = %v, want %v", l.Name(), want.Run, want.Level, got, want)
			}
		}
	}

	if z := Standard.Encode(0, 41); z != nil {
		t.Errorf("Encode(0, 41) = %v, want nil", z)
	}
	if z := Standard.Encode(32, 1); z != nil {
		t.Errorf("Encode(32, 1) = %v, want nil", z)
	}
	if z := Standard.Encode(0, 0); z != nil {
		t.Errorf("Encode(0, 0) = %v, want nil", z)
	}
}

func TestLookup_WriteThenDecode(t *testing.T) {
	w := bits.NewWriter(bits.BigEndian, 1)
	var written []*ZeroRunLengthAc
	for c := BitStreamCode(0); int(c) < NumCodes; c += 7 {
		z := Standard.Code(c)
		z.Write(w)
		written = append(written, z)
	}
	out := w.Bytes()

	r := bits.NewReader(out, 0, len(out), bits.BigEndian)
	for i, want := range written {
		window, _ := r.PeekUnsigned(LongestCode)
		got := Standard.Decode(window)
		if got != want {
			t.Fatalf("code %d: decoded %v, want %v", i, got, want)
		}
		if err := r.Skip(got.Length()); err != nil {
			t.Fatalf("code %d: %v", i, err)
		}
	}
}

func TestMustBuild_RejectsDuplicatePairs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mustBuild accepted duplicate (run, level) pairs")
		}
	}()
	mustBuild("broken", func(r acRow) (int, int) { return 0, 1 })
}

func TestMustBuild_RejectsZeroLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mustBuild accepted a zero level")
		}
	}()
	i := 0
	mustBuild("broken", func(r acRow) (int, int) {
		i++
		return i, 0
	})
}
