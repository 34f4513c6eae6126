// ega.go - EGA: the IBM Enhanced Graphics Adapter façade, binding the
// extended CRTC register file, Sequencer, Graphics Controller, Attribute
// Controller and four-plane PlanarVRAM together. Grounded on
// original_source/src/devices/ega/mod.rs's read_u8/write_u8 pipeline and
// video_vga.go's port-dispatch idiom (EGA predates VGA's DAC and chain-4,
// so it omits both).

package crtcore

import "log/slog"

const (
	egaPortCRTCIndex = 0x3D4 // color emulation base; mono emulation uses 0x3B4
	egaPortCRTCData  = 0x3D5
	egaPortSeqIndex  = 0x3C4
	egaPortSeqData   = 0x3C5
	egaPortGCIndex   = 0x3CE
	egaPortGCData    = 0x3CF
	egaPortAttr      = 0x3C0
	egaPortStatus0   = 0x3C2
	egaPortStatus1   = 0x3DA

	egaPlaneSize = 0x10000 // 64KiB/plane, 256KiB total
	egaFieldW    = 720
	egaFieldH    = 350
	egaGlyphH    = 14
)

// EGA is the adapter façade for the IBM Enhanced Graphics Adapter.
type EGA struct {
	crtc  *EGAVGARegisters
	seq   *Sequencer
	gc    *GraphicsController
	attr  *AttributeController
	core  *CRTC
	clock *ClockManager
	vram  *PlanarVRAM
	rast  *RasterEngine
	dbuf  *DoubleBuffer

	diag diagnostics
	irq  IRQLine
}

// NewEGA constructs a fully-wired EGA adapter.
func NewEGA(logger *slog.Logger, irq IRQLine) *EGA {
	diag := newDiagnostics(logger)
	crtcRegs := NewEGAVGARegisters(diag)
	core := NewCRTC(CRTCConfig{
		FieldWidth:      egaFieldW,
		FieldHeight:     egaFieldH,
		MonitorVsyncMin: 0,
		HCharPixels:     8,
		NineBitOverflow: true,
	}, crtcRegs, diag)
	dbuf := NewDoubleBuffer(egaFieldW, egaFieldH)
	e := &EGA{
		crtc: crtcRegs,
		seq:  NewSequencer(),
		gc:   NewGraphicsController(),
		attr: NewAttributeController(),
		core: core,
		vram: NewPlanarVRAM(egaPlaneSize),
		rast: NewRasterEngine(dbuf, egaGlyphH),
		dbuf: dbuf,
		diag: diag,
		irq:  orNullIRQ(irq),
	}
	e.clock = NewClockManager(core, DivisorHChar, diag)
	e.clock.RasterTick = e.tickPixels
	e.clock.OnVsync = e.onVsync
	loadTextFont(e.vram)
	return e
}

func (e *EGA) Variant() Variant { return VariantEGA }

func (e *EGA) Run(pixelBudget int) { e.clock.Run(pixelBudget) }

func (e *EGA) onVsync() { e.rast.Swap() }

func (e *EGA) tickPixels(pixels int) {
	y := e.core.BeamY
	x := e.core.BeamX
	e.core.BeamX += pixels
	if y < 0 || y >= egaFieldH {
		return
	}

	e.gc.ApplyTo(e.vram)

	if !e.core.InDisplayArea {
		e.rast.FillBorder(x, y, pixels, e.attr.OverscanColor())
		return
	}

	vma := e.core.VMA()

	// Graphics Controller Miscellaneous register bit 0: 0 = text (alphanumeric)
	// mode, 1 = graphics mode (spec §3 EGA/VGA supplement).
	textMode := e.gc.Raw(GCMisc)&0x01 == 0
	if textMode {
		offset := vma * 2
		ch := e.vram.Plane(0)[offset%egaPlaneSize]
		attrByte := e.vram.Plane(1)[offset%egaPlaneSize]
		fg := e.attr.Palette(attrByte & 0x0F)
		bg := e.attr.Palette((attrByte >> 4) & 0x07)
		// Font glyph rows live in plane 2, one 32-byte-aligned glyph per
		// character code (spec §3: "EGA/VGA text mode fetches glyph rows
		// from plane 2 rather than an adjacent VRAM byte").
		glyphOffset := (uint32(ch)*32 + uint32(e.core.VLC())) % egaPlaneSize
		row := e.vram.Plane(2)[glyphOffset]
		cursor := e.core.CursorActive()
		e.rast.DrawGlyphRow8(x, y, row, fg, bg, cursor)
		return
	}

	// Planar graphics: combine one bit from each of the four planes at
	// this offset/bit position into a 4-bit attribute index (spec §3
	// "4bpp planar: plane bits 0-3 of each byte combine to a 16-color
	// index"), one pixel per call since EGA graphics is always 1 pixel
	// per character-clock pixel at this resolution.
	byteOffset := vma % egaPlaneSize
	for p := range pixels {
		bit := 7 - (p % 8)
		var idx uint8
		for plane := range 4 {
			if e.vram.Plane(plane)[byteOffset]&(1<<uint(bit)) != 0 {
				idx |= 1 << uint(plane)
			}
		}
		e.rast.DrawGraphics4bpp(x+p, y, e.attr.Palette(idx), 1)
	}
}

func (e *EGA) ReadPort(port uint16) uint8 {
	switch port {
	case egaPortCRTCData:
		return e.crtc.ReadData()
	case egaPortSeqData:
		return e.seq.ReadData()
	case egaPortGCData:
		return e.gc.ReadData()
	case egaPortStatus1:
		e.attr.ResetFlipFlop()
		var b uint8
		if e.core.InVBlank {
			b |= 0x08
		}
		if !e.core.InDisplayArea {
			b |= 0x01
		}
		return b
	default:
		return 0xFF
	}
}

func (e *EGA) WritePort(port uint16, value uint8) {
	switch port {
	case egaPortCRTCIndex:
		e.crtc.SelectIndex(value)
	case egaPortCRTCData:
		e.crtc.WriteData(value)
	case egaPortSeqIndex:
		e.seq.SelectIndex(value)
	case egaPortSeqData:
		e.seq.WriteData(value)
	case egaPortGCIndex:
		e.gc.SelectIndex(value)
	case egaPortGCData:
		e.gc.WriteData(value)
	case egaPortAttr:
		e.attr.Write(value)
	}
}

func (e *EGA) ReadMem(addr uint32) uint8 {
	e.gc.ApplyTo(e.vram)
	return e.vram.ReadByte(addr % egaPlaneSize)
}

func (e *EGA) WriteMem(addr uint32, value uint8) {
	e.gc.ApplyTo(e.vram)
	e.vram.MapMask = e.seq.MapMask()
	e.vram.WriteByte(addr%egaPlaneSize, value)
}

func (e *EGA) GetDisplayBuf() ([]uint8, int) { return e.dbuf.Front(), e.dbuf.Stride() }

func (e *EGA) Reset() {
	*e.crtc = *NewEGAVGARegisters(e.diag)
	*e.seq = *NewSequencer()
	*e.gc = *NewGraphicsController()
	*e.attr = *NewAttributeController()
	e.core.Reset()
	e.clock.Reset()
	for p := range e.vram.planes {
		clear(e.vram.planes[p])
	}
	loadTextFont(e.vram)
}

func (e *EGA) StateDump() string {
	return "EGA frame=" + uintToStr(e.core.FrameCount)
}

func (e *EGA) MemoryMap() []MemoryRegion {
	return []MemoryRegion{{Name: "ega-vram", Base: 0xA0000, Size: egaPlaneSize, CycleCost: 2}}
}
