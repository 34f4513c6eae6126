package crtcore

import "testing"

func TestSpanU64RepeatsByteEightTimes(t *testing.T) {
	got := spanU64(0x0A)
	want := uint64(0x0A0A0A0A0A0A0A0A)
	if got != want {
		t.Errorf("spanU64(0x0A) = %#016x, want %#016x", got, want)
	}
}

func TestColorSpansTableMatchesSpanU64(t *testing.T) {
	for i := 0; i < 256; i++ {
		if colorSpans[i] != spanU64(uint8(i)) {
			t.Fatalf("colorSpans[%d] = %#016x, want %#016x", i, colorSpans[i], spanU64(uint8(i)))
		}
	}
}

func TestGlyphMask64(t *testing.T) {
	got := glyphMask64(0b1000_0001)
	want := uint64(0xFF00000000000000) | 0x00000000000000FF
	if got != want {
		t.Errorf("glyphMask64(10000001) = %#016x, want %#016x", got, want)
	}

	if got := glyphMask64(0x00); got != 0 {
		t.Errorf("glyphMask64(0) = %#016x, want 0", got)
	}
	if got := glyphMask64(0xFF); got != ^uint64(0) {
		t.Errorf("glyphMask64(0xFF) = %#016x, want all-ones", got)
	}
}

func TestGlyphMask64Lowres(t *testing.T) {
	// High nibble bit 0 set (leftmost of the first 4 bits), low nibble clear.
	lo, hi := glyphMask64Lowres(0b1000_0000)
	if lo != 0xFFFF {
		t.Errorf("lo = %#016x, want 0x000000000000FFFF", lo)
	}
	if hi != 0 {
		t.Errorf("hi = %#016x, want 0", hi)
	}

	lo, hi = glyphMask64Lowres(0b0000_1000)
	if lo != 0 {
		t.Errorf("lo = %#016x, want 0 (bit is in the low nibble)", lo)
	}
	if hi != 0xFFFF {
		t.Errorf("hi = %#016x, want 0x000000000000FFFF", hi)
	}
}

func TestCGAFourColorPaletteHiresGfxIsMonochrome(t *testing.T) {
	pal, kind := CGAFourColorPalette(5, true, true, false, true)
	want := [4]uint8{0, 5, 5, 5}
	if pal != want {
		t.Errorf("pal = %v, want %v", pal, want)
	}
	if kind != PaletteMonochrome {
		t.Errorf("kind = %v, want PaletteMonochrome", kind)
	}
}

func TestCGAFourColorPaletteModeBWForcesRedCyanWhite(t *testing.T) {
	pal, kind := CGAFourColorPalette(0, true, true, true, false)
	want := [4]uint8{0, 4 + 8, 3 + 8, 7 + 8}
	if pal != want {
		t.Errorf("pal = %v, want %v", pal, want)
	}
	if kind != PaletteRedCyanWhite {
		t.Errorf("kind = %v, want PaletteRedCyanWhite", kind)
	}
}

func TestCGAFourColorPaletteMagentaCyanWhiteBright(t *testing.T) {
	// Matches an 80x25-boot-style 320x200 graphics palette: Mode=0x0A,
	// Color Control=0x30 (palette bit + bright bit set, alt color 0).
	pal, kind := CGAFourColorPalette(0, true, true, false, false)
	want := [4]uint8{0, 11, 13, 15}
	if pal != want {
		t.Errorf("pal = %v, want %v", pal, want)
	}
	if kind != PaletteMagentaCyanWhite {
		t.Errorf("kind = %v, want PaletteMagentaCyanWhite", kind)
	}
}

func TestCGAFourColorPaletteRedGreenYellowDim(t *testing.T) {
	pal, kind := CGAFourColorPalette(0, false, false, false, false)
	want := [4]uint8{0, 2, 4, 6}
	if pal != want {
		t.Errorf("pal = %v, want %v", pal, want)
	}
	if kind != PaletteRedGreenYellow {
		t.Errorf("kind = %v, want PaletteRedGreenYellow", kind)
	}
}
