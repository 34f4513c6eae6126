package crtcore

import "testing"

func TestEGAVGARegistersOverflowComposesNineBitFields(t *testing.T) {
	diag := newDiagnostics(nil)
	r := NewEGAVGARegisters(diag)

	r.SelectIndex(CRTCVTotal)
	r.WriteData(0x04) // low 8 bits
	r.SelectIndex(CRTCOverflow)
	r.WriteData(ovfVTotalBit8 | ovfVTotalBit9)

	if got := r.VerticalTotal(); got != 0x304 {
		t.Errorf("VerticalTotal() = %#x, want 0x304", got)
	}
}

func TestEGAVGARegistersWriteProtectBlocksCR0ThroughCR6(t *testing.T) {
	diag := newDiagnostics(nil)
	r := NewEGAVGARegisters(diag)

	r.SelectIndex(CRTCVRetraceEnd)
	r.WriteData(0x80) // sets the write-protect bit

	r.SelectIndex(CRTCHTotal)
	r.WriteData(0x99)
	if got := r.Raw(CRTCHTotal); got == 0x99 {
		t.Errorf("CRTCHTotal accepted a write while protected")
	}

	// The Overflow register itself (index 0x07) is never protected.
	r.SelectIndex(CRTCOverflow)
	r.WriteData(0x42)
	if got := r.Raw(CRTCOverflow); got != 0x42 {
		t.Errorf("CRTCOverflow = %#x, want 0x42 (never write-protected)", got)
	}
}

func TestGraphicsControllerApplyToWiresAllFields(t *testing.T) {
	g := NewGraphicsController()
	g.SelectIndex(GCSetReset)
	g.WriteData(0x05)
	g.SelectIndex(GCEnableSR)
	g.WriteData(0x0F)
	g.SelectIndex(GCDataRotate)
	g.WriteData(0b0001_0011) // function=ALUOr(0b10), rotate=3
	g.SelectIndex(GCReadMap)
	g.WriteData(0x02)
	g.SelectIndex(GCMode)
	g.WriteData(0b0000_1001) // read mode 1, write mode 1
	g.SelectIndex(GCBitmask)
	g.WriteData(0xAA)
	g.SelectIndex(GCColorDont)
	g.WriteData(0x0C)

	v := NewPlanarVRAM(16)
	g.ApplyTo(v)

	if v.SetReset != 0x05 {
		t.Errorf("SetReset = %#x, want 0x05", v.SetReset)
	}
	if v.EnableSetReset != 0x0F {
		t.Errorf("EnableSetReset = %#x, want 0x0F", v.EnableSetReset)
	}
	if v.Function != ALUOr {
		t.Errorf("Function = %v, want ALUOr", v.Function)
	}
	if v.RotateCount != 3 {
		t.Errorf("RotateCount = %d, want 3", v.RotateCount)
	}
	if v.ReadMap != 0x02 {
		t.Errorf("ReadMap = %#x, want 0x02", v.ReadMap)
	}
	if v.ReadMode != ReadComparedPlanes {
		t.Errorf("ReadMode = %v, want ReadComparedPlanes", v.ReadMode)
	}
	if v.WriteMode != WriteMode1 {
		t.Errorf("WriteMode = %v, want WriteMode1", v.WriteMode)
	}
	if v.BitMask != 0xAA {
		t.Errorf("BitMask = %#x, want 0xAA", v.BitMask)
	}
	if v.ColorDontCare != 0x0C {
		t.Errorf("ColorDontCare = %#x, want 0x0C", v.ColorDontCare)
	}
}

func TestAttributeControllerIndexDataFlipFlopAlternates(t *testing.T) {
	a := NewAttributeController()

	a.Write(3)    // selects index 3
	a.Write(0x55) // writes data to register 3
	a.Write(7)    // flip-flop reset by the prior data write, so this selects index 7
	a.Write(0x66)

	if got := a.Palette(3); got != 0x55 {
		t.Errorf("Palette(3) = %#x, want 0x55", got)
	}
	if got := a.regs[7]; got != 0x66 {
		t.Errorf("regs[7] = %#x, want 0x66", got)
	}
}

func TestAttributeControllerResetFlipFlop(t *testing.T) {
	a := NewAttributeController()
	a.Write(5)    // selects index 5, flipFlop now expects data
	a.ResetFlipFlop()
	a.Write(9) // flipFlop was force-reset, so this is again treated as an index select
	a.Write(0x12)

	if got := a.Palette(9); got != 0x12 {
		t.Errorf("Palette(9) = %#x, want 0x12 (ResetFlipFlop forced the next write back to index)", got)
	}
}

func TestAttributeControllerBlinkAndOverscan(t *testing.T) {
	a := NewAttributeController()
	a.Write(AttrModeCtrl)
	a.Write(AttrModeBlinkEnable)
	if !a.BlinkEnabled() {
		t.Errorf("BlinkEnabled() = false, want true")
	}

	a.Write(AttrOverscan)
	a.Write(0x07)
	if got := a.OverscanColor(); got != 0x07 {
		t.Errorf("OverscanColor() = %#x, want 0x07", got)
	}
}

func TestEGATickPixelsTextModeFetchesPlane2GlyphRow(t *testing.T) {
	e := NewEGA(nil, nil)

	e.attr.Write(15)
	e.attr.Write(0xAA) // fg palette entry
	e.attr.Write(0)
	e.attr.Write(0x11) // bg palette entry

	e.vram.Plane(0)[0] = 'A'
	e.vram.Plane(1)[0] = 0x0F // fg index 15, bg index 0
	glyphOffset := uint32('A')*32 + 0
	e.vram.Plane(2)[glyphOffset] = 0b1000_0001

	e.core.vma = 0
	e.core.vlc = 0
	e.core.InDisplayArea = true
	e.core.BeamX = 0
	e.core.BeamY = 0

	e.tickPixels(8)

	back := e.dbuf.Back()
	want := [8]uint8{0xAA, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0xAA}
	for i, w := range want {
		if back[i] != w {
			t.Errorf("back[%d] = %#x, want %#x", i, back[i], w)
		}
	}
}

func TestEGATickPixelsGraphicsModeCombinesPlaneBits(t *testing.T) {
	e := NewEGA(nil, nil)
	e.gc.SelectIndex(GCMisc)
	e.gc.WriteData(0x01) // graphics mode

	e.attr.Write(5)
	e.attr.Write(0x09)

	e.vram.Plane(0)[0] = 0x80 // bit7 set -> idx bit0
	e.vram.Plane(2)[0] = 0x80 // bit7 set -> idx bit2 -> idx = 0b101 = 5

	e.core.vma = 0
	e.core.InDisplayArea = true
	e.core.BeamX = 0
	e.core.BeamY = 0

	e.tickPixels(1)

	if got := e.dbuf.Back()[0]; got != 0x09 {
		t.Errorf("back[0] = %#x, want 0x09", got)
	}
}

func TestEGAWriteMemSetResetAllPlanesThroughFullPipeline(t *testing.T) {
	e := NewEGA(nil, nil)
	e.WritePort(egaPortGCIndex, GCEnableSR)
	e.WritePort(egaPortGCData, 0x0F)
	e.WritePort(egaPortGCIndex, GCSetReset)
	e.WritePort(egaPortGCData, 0x05)
	e.WritePort(egaPortGCIndex, GCBitmask)
	e.WritePort(egaPortGCData, 0xFF)
	e.WritePort(egaPortSeqIndex, SeqMapMask)
	e.WritePort(egaPortSeqData, 0x0F)

	e.WriteMem(0, 0x00)

	want := [4]uint8{0xFF, 0x00, 0xFF, 0x00}
	for i, w := range want {
		if got := e.vram.Plane(i)[0]; got != w {
			t.Errorf("plane %d = %#x, want %#x", i, got, w)
		}
	}
}

func TestEGAResetReloadsPlane2Font(t *testing.T) {
	e := NewEGA(nil, nil)
	e.vram.Plane(2)[0] = 0xFF // corrupt the font
	e.vram.Plane(0)[0] = 0xFF

	e.Reset()

	ch := uint8('A')
	if got := e.vram.Plane(2)[uint32(ch)*32]; got != font16[int(ch)*glyphHeight16] {
		t.Errorf("plane 2 glyph row = %#x, want the reloaded font byte", got)
	}
	if got := e.vram.Plane(0)[0]; got != 0 {
		t.Errorf("plane 0 = %#x after Reset, want 0", got)
	}
}
