package crtcore

import "testing"

func newTestRaster(stride, height int) (*RasterEngine, *DoubleBuffer) {
	d := NewDoubleBuffer(stride, height)
	return NewRasterEngine(d, 8), d
}

func TestDrawGlyphRow8NormalPixels(t *testing.T) {
	r, d := newTestRaster(16, 4)
	// 0b1010_1010 glyph row: fg at even bit positions (MSB first), bg elsewhere.
	r.DrawGlyphRow8(0, 0, 0b1010_1010, 5, 0, false)

	back := d.Back()
	want := [8]uint8{5, 0, 5, 0, 5, 0, 5, 0}
	for i, w := range want {
		if back[i] != w {
			t.Errorf("back[%d] = %d, want %d", i, back[i], w)
		}
	}
}

func TestDrawGlyphRow8CursorOverridesGlyph(t *testing.T) {
	r, d := newTestRaster(16, 4)
	r.DrawGlyphRow8(0, 0, 0x00, 7, 1, true)

	back := d.Back()
	for i := 0; i < 8; i++ {
		if back[i] != 7 {
			t.Errorf("back[%d] = %d, want 7 (solid cursor fg fill)", i, back[i])
		}
	}
}

func TestDrawGlyphRow16SplitsIntoTwoStores(t *testing.T) {
	r, d := newTestRaster(16, 4)
	r.DrawGlyphRow16(0, 0, 0b1000_0001, 9, 0, false)

	back := d.Back()
	if back[0] != 9 || back[1] != 9 {
		t.Errorf("back[0:2] = %v, want [9 9] (high bit of leading nibble)", back[0:2])
	}
	for i := 2; i < 14; i++ {
		if back[i] != 0 {
			t.Errorf("back[%d] = %d, want 0", i, back[i])
		}
	}
	if back[14] != 9 || back[15] != 9 {
		t.Errorf("back[14:16] = %v, want [9 9] (low bit of trailing nibble)", back[14:16])
	}
}

func TestDrawGraphics1bppMatchesHiresGraphicsScenario(t *testing.T) {
	r, d := newTestRaster(16, 4)
	r.DrawGraphics1bpp(0, 0, 0x80, 1, 0)
	r.DrawGraphics1bpp(8, 0, 0x01, 1, 0)

	back := d.Back()
	want := [16]uint8{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		if back[i] != w {
			t.Errorf("back[%d] = %d, want %d", i, back[i], w)
		}
	}
}

func TestDrawGraphics2bppDoubleWideMatchesFourColorScenario(t *testing.T) {
	r, d := newTestRaster(16, 4)
	pal := [4]uint8{0, 11, 13, 15}
	r.DrawGraphics2bpp(0, 0, 0b01_10_11_00, pal, true)

	back := d.Back()
	want := [8]uint8{11, 11, 13, 13, 15, 15, 0, 0}
	for i, w := range want {
		if back[i] != w {
			t.Errorf("back[%d] = %d, want %d", i, back[i], w)
		}
	}
}

func TestDrawGraphics2bppSingleWide(t *testing.T) {
	r, d := newTestRaster(16, 4)
	pal := [4]uint8{0, 11, 13, 15}
	r.DrawGraphics2bpp(0, 0, 0b01_10_11_00, pal, false)

	back := d.Back()
	want := [4]uint8{11, 13, 15, 0}
	for i, w := range want {
		if back[i] != w {
			t.Errorf("back[%d] = %d, want %d", i, back[i], w)
		}
	}
}

func TestDrawGraphics4bppFillsPixelWidth(t *testing.T) {
	r, d := newTestRaster(16, 4)
	r.DrawGraphics4bpp(2, 0, 9, 2)

	back := d.Back()
	if back[2] != 9 || back[3] != 9 {
		t.Errorf("back[2:4] = %v, want [9 9]", back[2:4])
	}
	if back[1] != 0 || back[4] != 0 {
		t.Errorf("DrawGraphics4bpp wrote outside its pixelWidth")
	}
}

func TestFillBorderFillsRangeAndClampsToRow(t *testing.T) {
	r, d := newTestRaster(8, 2)
	r.FillBorder(4, 0, 10, 3) // overruns past the row's own stride

	back := d.Back()
	for i := 4; i < 8; i++ {
		if back[i] != 3 {
			t.Errorf("back[%d] = %d, want 3", i, back[i])
		}
	}
}

func TestFillBorderDebugOverlayTintsFirstPixel(t *testing.T) {
	r, d := newTestRaster(8, 2)
	r.DebugOverlay = true
	r.OverlayIndex = 0xAA
	r.FillBorder(0, 0, 4, 2)

	back := d.Back()
	if back[0] != 0xAA {
		t.Errorf("back[0] = %#x, want the overlay index 0xAA", back[0])
	}
	if back[1] != 2 {
		t.Errorf("back[1] = %d, want the fill index 2 (overlay only tints the first pixel)", back[1])
	}
}

func TestStoreSpanOutOfBoundsIsNoOp(t *testing.T) {
	r, d := newTestRaster(8, 2)
	before := append([]uint8(nil), d.Back()...)
	r.storeSpan(100, 0, 0xFFFFFFFFFFFFFFFF) // off+8 > len(back)
	after := d.Back()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("storeSpan wrote out of bounds at %d", i)
		}
	}
}

func TestRasterEngineSwapDelegatesToDoubleBuffer(t *testing.T) {
	r, d := newTestRaster(8, 2)
	d.Back()[0] = 0x55
	r.Swap()
	if d.Front()[0] != 0x55 {
		t.Errorf("Swap() did not flip the buffer the raster engine was writing into")
	}
}
