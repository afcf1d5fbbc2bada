package mdec

import "testing"

func TestContext_Advance(t *testing.T) {
	ctx := NewContext(2)
	if !ctx.AtStartOfBlock() || ctx.Block() != Cr {
		t.Fatal("new context not at start of first block")
	}

	// DC, one AC, EOD for every block of both macroblocks
	for mb := 0; mb < 2; mb++ {
		for b := Cr; b <= Y4; b++ {
			if ctx.MacroBlock() != mb || ctx.Block() != b {
				t.Fatalf("at macroblock %d block %v, want %d %v", ctx.MacroBlock(), ctx.Block(), mb, b)
			}
			ctx.NextCode(false)
			if ctx.AtStartOfBlock() {
				t.Fatal("still at start of block after DC")
			}
			ctx.NextCode(false)
			ctx.NextCode(true)
			if !ctx.AtStartOfBlock() {
				t.Fatal("not at start of block after EOD")
			}
		}
	}

	if !ctx.Done() {
		t.Error("Done() = false after every block")
	}
	if ctx.TotalCodes() != 36 || ctx.TotalBlocks() != 12 {
		t.Errorf("TotalCodes %d, TotalBlocks %d, want 36, 12", ctx.TotalCodes(), ctx.TotalBlocks())
	}

	ctx.Reset()
	if ctx.TotalCodes() != 0 || ctx.MacroBlock() != 0 || ctx.MacroBlocks() != 2 || ctx.Done() {
		t.Errorf("Reset left %+v", *ctx)
	}
}

func TestContext_Unbounded(t *testing.T) {
	ctx := NewContext(0)
	for i := 0; i < 100; i++ {
		ctx.NextCode(true)
	}
	if ctx.Done() {
		t.Error("unbounded context reported Done")
	}
}
