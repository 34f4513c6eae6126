// tga.go - TGA: the Tandy 1000 / IBM PCjr enhanced CGA-compatible adapter
// façade. Extends CGA's port map with the mode-control/palette-register
// block and a windowed aperture into host RAM (spec §3 TGA supplement),
// and raises IRQ5 at vsync (spec §3: "TGA/PCjr: IRQ5 on vsync").

package crtcore

import "log/slog"

const (
	tgaPortCRTCIndex    = 0x3D4
	tgaPortCRTCData     = 0x3D5
	tgaPortMode         = 0x3D8
	tgaPortColorControl = 0x3D9
	tgaPortStatus       = 0x3DA
	tgaPortArrayAddress = 0x3DE
	tgaPortArrayData    = 0x3DF

	tgaApertureSize = 0x8000 // 32KiB
	tgaFieldW       = 768
	tgaFieldH       = 250
	tgaGlyphH       = 9 // TGA's native font is 8x9, per original_source's tga_8by9.bin

	statusBase         = 0xE0
	statusVideoMux     = 0b0001_0000
)

// TGA is the adapter façade for the Tandy 1000 / IBM PCjr video subsystem.
type TGA struct {
	regs  *TGARegisters
	crtc  *CRTC
	clock *ClockManager
	page  *TGAPage
	rast  *RasterEngine
	dbuf  *DoubleBuffer

	ram []uint8 // shared host RAM backing store TGAPage aliases into

	arrayAddress uint8

	diag diagnostics
	irq  IRQLine
}

// NewTGA constructs a fully-wired TGA/PCjr adapter over the given host RAM
// pool (spec §3: "windowed aperture into a larger host RAM pool").
func NewTGA(variant TGAVariant, hostRAM []uint8, logger *slog.Logger, irq IRQLine) *TGA {
	diag := newDiagnostics(logger)
	regs := NewTGARegisters(variant, diag)
	crtc := NewCRTC(CRTCConfig{
		FieldWidth:      tgaFieldW,
		FieldHeight:     tgaFieldH,
		MonitorVsyncMin: 0,
		HCharPixels:     8,
	}, regs, diag)
	dbuf := NewDoubleBuffer(tgaFieldW, tgaFieldH)
	t := &TGA{
		regs: regs,
		crtc: crtc,
		page: NewTGAPage(hostRAM, tgaApertureSize),
		rast: NewRasterEngine(dbuf, tgaGlyphH),
		dbuf: dbuf,
		ram:  hostRAM,
		diag: diag,
		irq:  orNullIRQ(irq),
	}
	t.clock = NewClockManager(crtc, DivisorHChar, diag)
	t.clock.RasterTick = t.tickPixels
	t.clock.ApplyPendingMode = t.applyPendingMode
	t.clock.OnVsync = t.onVsync
	return t
}

func (t *TGA) Variant() Variant {
	if t.regs.Variant == TGAPCjr {
		return VariantTGAPCjr
	}
	return VariantTGATandy
}

func (t *TGA) Run(pixelBudget int) { t.clock.Run(pixelBudget) }

func (t *TGA) applyPendingMode() {
	if !t.regs.ConsumeModePending() {
		return
	}
	if t.regs.ConsumeClockPending() {
		if t.regs.ModeHiresTxt || t.regs.DisplayMode == TGA640x200x4 {
			t.clock.RequestDivisor(DivisorHChar)
		} else if t.regs.Mode4bpp {
			t.clock.RequestDivisor(DivisorLChar)
		} else {
			t.clock.RequestDivisor(DivisorMChar)
		}
	}
}

func (t *TGA) onVsync() {
	t.rast.Swap()
	t.irq.Raise(TGAIRQLine)
	t.irq.Lower(TGAIRQLine)
}

func (t *TGA) tickPixels(pixels int) {
	y := t.crtc.BeamY
	x := t.crtc.BeamX
	t.crtc.BeamX += pixels
	if y < 0 || y >= tgaFieldH {
		return
	}

	if !t.crtc.InDisplayArea {
		t.rast.FillBorder(x, y, pixels, t.regs.OverscanColor)
		return
	}

	vma := t.crtc.VMA()

	switch t.regs.DisplayMode {
	case TGATextBW40, TGATextCo40, TGATextBW80, TGATextCo80:
		addr := (vma & 0x1FFF) << 1
		ch := t.page.ReadCRT(addr)
		attr := t.page.ReadCRT(addr + 1)
		fg := attr & 0x0F
		bg := (attr >> 4) & 0x07
		row := glyphRow(tgaGlyphH, ch, int(t.crtc.VLC()))
		cursor := t.crtc.CursorActive()
		if pixels == 16 {
			t.rast.DrawGlyphRow16(x, y, row, fg, bg, cursor)
		} else {
			t.rast.DrawGlyphRow8(x, y, row, fg, bg, cursor)
		}

	case TGA160x200x16, TGA320x200x16:
		addr := vma & 0x1FFF
		b := t.page.ReadCRT(addr)
		hi := t.regs.PaletteRegisters[b>>4]
		lo := t.regs.PaletteRegisters[b&0x0F]
		width := 2
		if t.regs.DisplayMode == TGA320x200x16 {
			width = 1
		}
		t.rast.DrawGraphics4bpp(x, y, hi, width)
		t.rast.DrawGraphics4bpp(x+width, y, lo, width)

	case TGA640x200x4:
		addr := (vma & 0x1FFF) << 1
		bank := uint32(0)
		if t.crtc.VLC()&1 != 0 {
			bank = 0x2000
		}
		b := t.page.ReadCRT(addr + bank)
		var pal [4]uint8
		for i := range pal {
			pal[i] = t.regs.PaletteRegisters[i]
		}
		t.rast.DrawGraphics2bpp(x, y, b, pal, false)

	default:
		t.rast.FillBorder(x, y, pixels, 0)
	}
}

func (t *TGA) ReadPort(port uint16) uint8 {
	switch port {
	case tgaPortCRTCData:
		return t.regs.ReadData()
	case tgaPortStatus:
		t.regs.SetInHBlank(t.crtc.InHBlank)
		b := uint8(statusBase)
		switch {
		case t.crtc.InVBlank:
			b |= StatusVerticalRetrace | StatusDisplayEnable
		case !t.crtc.InDisplayArea:
			b |= StatusDisplayEnable
		}
		// Video-mux bit: PCjr POST tests this by drawing a line of
		// full-block characters into the top 8 scanlines and checking the
		// mux reflects it; faked the same way here rather than modeling the
		// actual composite/RGB mux hardware (spec §13 open question 1).
		if t.crtc.BeamY < 8 {
			b |= statusVideoMux
		}
		return b
	case tgaPortArrayData:
		return 0xFF
	default:
		return 0xFF
	}
}

func (t *TGA) WritePort(port uint16, value uint8) {
	switch port {
	case tgaPortCRTCIndex:
		t.regs.SelectIndex(value)
	case tgaPortCRTCData:
		t.regs.WriteData(value)
	case tgaPortMode:
		t.regs.WriteMode(value)
	case tgaPortColorControl:
		t.regs.WriteColorControl(value)
	case tgaPortArrayAddress:
		t.arrayAddress = value
	case tgaPortArrayData:
		switch t.arrayAddress {
		case 0x00:
			t.regs.WriteModeControl(value)
		case 0x01:
			t.regs.WritePaletteMask(value)
		case 0x02:
			// Page register: multiplexed onto the video array like the
			// palette registers rather than a dedicated port, the
			// simplification this core takes for the windowed-aperture
			// CRT/CPU page split (spec §3 TGA supplement).
			t.regs.WritePageRegister(value)
			t.page.SetCRTBase(uint32(t.regs.CRTPage) * tgaApertureSize)
			t.page.SetCPUBase(uint32(t.regs.CPUPage) * tgaApertureSize)
		case 0x03:
			if t.regs.Variant == TGAPCjr {
				t.regs.WriteModeControl2(value)
			}
		default:
			if t.arrayAddress >= 0x10 && t.arrayAddress <= 0x1F {
				t.regs.WritePaletteRegister(t.arrayAddress, value)
			}
		}
	}
}

func (t *TGA) ReadMem(addr uint32) uint8    { return t.page.ReadCPU(addr) }
func (t *TGA) WriteMem(addr uint32, v uint8) { t.page.WriteCPU(addr, v) }

func (t *TGA) GetDisplayBuf() ([]uint8, int) { return t.dbuf.Front(), t.dbuf.Stride() }

func (t *TGA) Reset() {
	t.regs.Reset()
	t.crtc.Reset()
	t.clock.Reset()
	t.arrayAddress = 0
}

func (t *TGA) StateDump() string {
	return "TGA variant=" + t.Variant().String() + " frame=" + uintToStr(t.crtc.FrameCount)
}

func (t *TGA) MemoryMap() []MemoryRegion {
	return []MemoryRegion{{Name: "tga-aperture", Base: 0xB8000, Size: tgaApertureSize, CycleCost: 1}}
}
