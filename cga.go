// cga.go - CGA: the IBM Color Graphics Adapter façade binding CRTC,
// CGARegisters, FlatVRAM, ClockManager and RasterEngine together. Port
// addresses and VRAM aperture size are the standard IBM CGA memory map
// (spec §3); the per-tick draw dispatch is grounded on video_vga.go's
// renderTextMode/renderMode13h structure, adapted from a whole-frame
// render pass to the CRTC-tick-driven pixel-at-a-time model original_source
// uses in core/src/devices/cga/mod.rs's draw loop.

package crtcore

import "log/slog"

const (
	cgaPortCRTCIndex    = 0x3D4
	cgaPortCRTCData     = 0x3D5
	cgaPortMode         = 0x3D8
	cgaPortColorControl = 0x3D9
	cgaPortStatus       = 0x3DA

	cgaVRAMSize   = 0x4000 // 16KiB
	cgaVRAMBase   = 0xB8000
	cgaFieldW     = 640
	cgaFieldH     = 200
	cgaGlyphH     = 8
)

// CGA is the adapter façade for the IBM Color Graphics Adapter (spec §1/§8).
type CGA struct {
	regs  *CGARegisters
	crtc  *CRTC
	clock *ClockManager
	vram  *FlatVRAM
	rast  *RasterEngine
	dbuf  *DoubleBuffer

	diag diagnostics
	irq  IRQLine
}

// NewCGA constructs a fully-wired CGA adapter. irq may be nil; CGA never
// raises an interrupt on real hardware, so it is accepted only for
// interface-shape symmetry with TGA/PCjr.
func NewCGA(logger *slog.Logger, irq IRQLine) *CGA {
	diag := newDiagnostics(logger)
	regs := NewCGARegisters(diag)
	crtc := NewCRTC(CRTCConfig{
		FieldWidth:      cgaFieldW,
		FieldHeight:     cgaFieldH,
		MonitorVsyncMin: 127,
		HCharPixels:     8,
	}, regs, diag)
	dbuf := NewDoubleBuffer(cgaFieldW, cgaFieldH)
	c := &CGA{
		regs:  regs,
		crtc:  crtc,
		vram:  NewFlatVRAM(cgaVRAMSize),
		rast:  NewRasterEngine(dbuf, cgaGlyphH),
		dbuf:  dbuf,
		diag:  diag,
		irq:   orNullIRQ(irq),
	}
	c.clock = NewClockManager(crtc, regs.PendingClockDivisor(), diag)
	c.clock.RasterTick = c.tickPixels
	c.clock.ApplyPendingMode = c.applyPendingMode
	c.clock.OnVsync = c.onVsync
	return c
}

func (c *CGA) Variant() Variant { return VariantCGA }

// Run advances the adapter by pixelBudget pixel clocks (spec §4.1).
func (c *CGA) Run(pixelBudget int) { c.clock.Run(pixelBudget) }

func (c *CGA) applyPendingMode() {
	c.regs.ApplyPendingMode()
	c.clock.RequestDivisor(c.regs.PendingClockDivisor())
}

func (c *CGA) onVsync() {
	c.rast.Swap()
	c.updateCursorBlink()
}

// updateCursorBlink advances the cursor blink timer once per frame per the
// 6845's two-bit cursor mode field (00 steady, 01 off, 10 blink/16 frames,
// 11 blink/32 frames), grounded on cga/mod.rs's cursor_status/
// cursor_slowblink handling in handle_crtc_register_write.
func (c *CGA) updateCursorBlink() {
	switch c.regs.CursorBlinkMode2Bit() {
	case 0b01:
		c.crtc.CursorEnabled = false
		return
	case 0b10:
		c.crtc.CursorEnabled = true
		c.crtc.BlinkState = (c.crtc.FrameCount/16)%2 == 0
	case 0b11:
		c.crtc.CursorEnabled = true
		c.crtc.BlinkState = (c.crtc.FrameCount/32)%2 == 0
	default:
		c.crtc.CursorEnabled = true
		c.crtc.BlinkState = true
	}
}

// tickPixels is the ClockManager.RasterTick callback: draws the pixels for
// one character tick based on the CRTC's now-current vma/scanline/beam
// state and the current display mode.
func (c *CGA) tickPixels(pixels int) {
	y := c.crtc.BeamY
	x := c.crtc.BeamX
	c.crtc.BeamX += pixels
	if y < 0 || y >= cgaFieldH {
		return
	}

	if !c.crtc.InDisplayArea {
		c.rast.FillBorder(x, y, pixels, c.regs.OverscanColor)
		return
	}

	vma := c.crtc.VMA()

	switch c.regs.DisplayMode {
	case CGAMode1TextCo40, CGAMode0TextBW40, CGAMode2TextBW80, CGAMode3TextCo80:
		addr := (vma & 0x1FFF) << 1
		ch := c.vram.ReadByte(addr)
		attr := c.vram.ReadByte(addr + 1)
		fg := attr & 0x0F
		bg := (attr >> 4) & 0x07
		blink := attr&0x80 != 0 && c.regs.ModeBlinking
		row := glyphRow(cgaGlyphH, ch, int(c.crtc.VLC()))
		cursor := c.crtc.CursorActive() && !(blink && !c.crtc.BlinkState)
		if pixels == 16 {
			c.rast.DrawGlyphRow16(x, y, row, fg, bg, cursor)
		} else {
			c.rast.DrawGlyphRow8(x, y, row, fg, bg, cursor)
		}

	case CGAMode4LowResGraphics, CGAMode5LowResAltPalette, CGAMode7LowResComposite:
		addr := (vma & 0x1FFF) << 1
		bank := uint32(0)
		if c.crtc.VLC()&1 != 0 {
			bank = 0x2000
		}
		b := c.vram.ReadByte(addr + bank)
		pal, _ := c.regs.Palette()
		c.rast.DrawGraphics2bpp(x, y, b, pal, true)

	case CGAMode6HiResGraphics:
		addr := (vma & 0x1FFF) << 1
		bank := uint32(0)
		if c.crtc.VLC()&1 != 0 {
			bank = 0x2000
		}
		b := c.vram.ReadByte(addr + bank)
		pal, _ := c.regs.Palette()
		c.rast.DrawGraphics1bpp(x, y, b, pal[1], pal[0])

	default:
		c.rast.FillBorder(x, y, pixels, 0)
	}
}

func (c *CGA) ReadPort(port uint16) uint8 {
	switch port {
	case cgaPortCRTCData:
		return c.regs.ReadData()
	case cgaPortStatus:
		c.regs.SetInHBlank(c.crtc.InHBlank)
		return c.regs.ReadStatus(c.crtc.InVBlank, c.crtc.InDisplayArea)
	default:
		return 0xFF
	}
}

func (c *CGA) WritePort(port uint16, value uint8) {
	switch port {
	case cgaPortCRTCIndex:
		c.regs.SelectIndex(value)
	case cgaPortCRTCData:
		c.regs.WriteData(value)
	case cgaPortMode:
		c.regs.WriteMode(value)
	case cgaPortColorControl:
		c.regs.WriteColorControl(value)
	}
}

func (c *CGA) ReadMem(addr uint32) uint8  { return c.vram.ReadByte(addr) }
func (c *CGA) WriteMem(addr uint32, v uint8) { c.vram.WriteByte(addr, v) }

func (c *CGA) GetDisplayBuf() ([]uint8, int) { return c.dbuf.Front(), c.dbuf.Stride() }

func (c *CGA) Reset() {
	c.regs.Reset()
	c.crtc.Reset()
	c.clock.Reset()
	clear(c.vram.buf)
}

func (c *CGA) StateDump() string {
	return "CGA mode=" + modeName(c.regs.DisplayMode) +
		" hcc/vcc ticking, frame=" + uintToStr(c.crtc.FrameCount)
}

func (c *CGA) MemoryMap() []MemoryRegion {
	return []MemoryRegion{{Name: "cga-vram", Base: cgaVRAMBase, Size: cgaVRAMSize, CycleCost: 1}}
}

func modeName(m CGADisplayMode) string {
	switch m {
	case CGAMode0TextBW40:
		return "0-text-bw-40"
	case CGAMode1TextCo40:
		return "1-text-co-40"
	case CGAMode2TextBW80:
		return "2-text-bw-80"
	case CGAMode3TextCo80:
		return "3-text-co-80"
	case CGAModeTextGraphicsHack:
		return "hack-text+gfx"
	case CGAMode4LowResGraphics:
		return "4-lowres-gfx"
	case CGAMode5LowResAltPalette:
		return "5-lowres-alt"
	case CGAMode6HiResGraphics:
		return "6-hires-gfx"
	case CGAMode7LowResComposite:
		return "7-lowres-composite"
	default:
		return "unknown"
	}
}

func uintToStr(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
