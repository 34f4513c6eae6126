// vga.go - VGA: extends the EGA façade with chain-4/Mode 13h linear
// 256-color addressing and the DAC's index/data state machine (write modes
// 0-3 live in the shared PlanarVRAM and are reachable on EGA as well).
// Grounded on original_source/src/devices/vga/mod.rs's VGA-specific
// additions over ega/mod.rs (Sequencer.Chain4, the DAC read/write cursors)
// and video_vga.go's dacIndex/dacState/dacReadIndex/dacWriteIndex idiom.

package crtcore

import "log/slog"

const (
	vgaPortCRTCIndex  = 0x3D4
	vgaPortCRTCData   = 0x3D5
	vgaPortSeqIndex   = 0x3C4
	vgaPortSeqData    = 0x3C5
	vgaPortGCIndex    = 0x3CE
	vgaPortGCData     = 0x3CF
	vgaPortAttr       = 0x3C0
	vgaPortDACMask    = 0x3C6
	vgaPortDACReadIdx = 0x3C7
	vgaPortDACWriteIdx = 0x3C8
	vgaPortDACData    = 0x3C9
	vgaPortStatus1    = 0x3DA

	vgaPlaneSize  = 0x10000 // 64KiB/plane, 256KiB total
	vgaFieldW     = 720
	vgaFieldH     = 400
	vgaGlyphH     = 16
	vgaMode13W    = 320
	vgaMode13H    = 200
)

// dacComponent names which of the DAC's three bytes (R, G, B) a write-index
// access is currently positioned at (video_vga.go's dacState idiom).
type dacComponent int

const (
	dacRed dacComponent = iota
	dacGreen
	dacBlue
)

// vgaDAC is the 256-entry, 6-bit-per-component color lookup table VGA adds
// over EGA's fixed palette registers, with independent read/write cursors
// that auto-increment every three bytes (spec §3 VGA supplement: "256-entry
// DAC, 18-bit color, auto-incrementing index").
type vgaDAC struct {
	entries [256][3]uint8 // 6-bit R,G,B per entry

	readIndex  uint8
	writeIndex uint8
	component  dacComponent
	maskReg    uint8
}

func newVGADAC() *vgaDAC { return &vgaDAC{maskReg: 0xFF} }

func (d *vgaDAC) setReadIndex(i uint8)  { d.readIndex = i; d.component = dacRed }
func (d *vgaDAC) setWriteIndex(i uint8) { d.writeIndex = i; d.component = dacRed }

// readData returns the next component byte and advances the cursor,
// rolling from blue to the next entry's red every third read.
func (d *vgaDAC) readData() uint8 {
	v := d.entries[d.readIndex][d.component]
	if d.component == dacBlue {
		d.component = dacRed
		d.readIndex++
	} else {
		d.component++
	}
	return v & 0x3F
}

// writeData stores the next component byte and advances the cursor
// identically to readData (spec §3: "18-bit color, auto-incrementing index").
func (d *vgaDAC) writeData(b uint8) {
	d.entries[d.writeIndex][d.component] = b & 0x3F
	if d.component == dacBlue {
		d.component = dacRed
		d.writeIndex++
	} else {
		d.component++
	}
}

// VGA is the adapter façade for the IBM Video Graphics Array, built on the
// same register blocks as EGA plus the DAC and chain-4 addressing.
type VGA struct {
	crtc  *EGAVGARegisters
	seq   *Sequencer
	gc    *GraphicsController
	attr  *AttributeController
	dac   *vgaDAC
	core  *CRTC
	clock *ClockManager
	vram  *PlanarVRAM
	rast  *RasterEngine
	dbuf  *DoubleBuffer

	diag diagnostics
	irq  IRQLine
}

// NewVGA constructs a fully-wired VGA adapter.
func NewVGA(logger *slog.Logger, irq IRQLine) *VGA {
	diag := newDiagnostics(logger)
	crtcRegs := NewEGAVGARegisters(diag)
	core := NewCRTC(CRTCConfig{
		FieldWidth:      vgaFieldW,
		FieldHeight:     vgaFieldH,
		MonitorVsyncMin: 0,
		HCharPixels:     8,
		NineBitOverflow: true,
	}, crtcRegs, diag)
	dbuf := NewDoubleBuffer(vgaFieldW, vgaFieldH)
	v := &VGA{
		crtc: crtcRegs,
		seq:  NewSequencer(),
		gc:   NewGraphicsController(),
		attr: NewAttributeController(),
		dac:  newVGADAC(),
		core: core,
		vram: NewPlanarVRAM(vgaPlaneSize),
		rast: NewRasterEngine(dbuf, vgaGlyphH),
		dbuf: dbuf,
		diag: diag,
		irq:  orNullIRQ(irq),
	}
	v.clock = NewClockManager(core, DivisorHChar, diag)
	v.clock.RasterTick = v.tickPixels
	v.clock.OnVsync = v.onVsync
	loadTextFont(v.vram)
	return v
}

func (v *VGA) Variant() Variant { return VariantVGA }

func (v *VGA) Run(pixelBudget int) { v.clock.Run(pixelBudget) }

func (v *VGA) onVsync() { v.rast.Swap() }

func (v *VGA) tickPixels(pixels int) {
	y := v.core.BeamY
	x := v.core.BeamX
	v.core.BeamX += pixels
	if y < 0 || y >= vgaFieldH {
		return
	}

	v.gc.ApplyTo(v.vram)

	if !v.core.InDisplayArea {
		v.rast.FillBorder(x, y, pixels, v.attr.OverscanColor())
		return
	}

	vma := v.core.VMA()

	if v.seq.Chain4() {
		v.tickMode13(x, y, vma)
		return
	}

	textMode := v.gc.Raw(GCMisc)&0x01 == 0
	if textMode {
		offset := vma * 2
		ch := v.vram.Plane(0)[offset%vgaPlaneSize]
		attrByte := v.vram.Plane(1)[offset%vgaPlaneSize]
		fg := v.attr.Palette(attrByte & 0x0F)
		bg := v.attr.Palette((attrByte >> 4) & 0x07)
		glyphOffset := (uint32(ch)*32 + uint32(v.core.VLC())) % vgaPlaneSize
		row := v.vram.Plane(2)[glyphOffset]
		cursor := v.core.CursorActive()
		v.rast.DrawGlyphRow8(x, y, row, fg, bg, cursor)
		return
	}

	byteOffset := vma % vgaPlaneSize
	for p := range pixels {
		bit := 7 - (p % 8)
		var idx uint8
		for plane := range 4 {
			if v.vram.Plane(plane)[byteOffset]&(1<<uint(bit)) != 0 {
				idx |= 1 << uint(plane)
			}
		}
		v.rast.DrawGraphics4bpp(x+p, y, v.attr.Palette(idx), 1)
	}
}

// tickMode13 draws Mode 13h's chain-4 256-color linear addressing: each
// displayed byte maps straight onto plane (address mod 4), one DAC-indexed
// pixel per byte (spec §3 VGA supplement: "chain-4 defeats plane
// interleaving, presenting VRAM as a flat byte-per-pixel buffer").
func (v *VGA) tickMode13(x, y int, vma uint32) {
	addr := vma
	plane := addr & 3
	idx := v.vram.Plane(int(plane))[(addr>>2)%vgaPlaneSize]
	v.rast.DrawGraphics4bpp(x, y, idx, 1)
}

func (v *VGA) ReadPort(port uint16) uint8 {
	switch port {
	case vgaPortCRTCData:
		return v.crtc.ReadData()
	case vgaPortSeqData:
		return v.seq.ReadData()
	case vgaPortGCData:
		return v.gc.ReadData()
	case vgaPortDACData:
		return v.dac.readData()
	case vgaPortDACMask:
		return v.dac.maskReg
	case vgaPortStatus1:
		v.attr.ResetFlipFlop()
		var b uint8
		if v.core.InVBlank {
			b |= 0x08
		}
		if !v.core.InDisplayArea {
			b |= 0x01
		}
		return b
	default:
		return 0xFF
	}
}

func (v *VGA) WritePort(port uint16, value uint8) {
	switch port {
	case vgaPortCRTCIndex:
		v.crtc.SelectIndex(value)
	case vgaPortCRTCData:
		v.crtc.WriteData(value)
	case vgaPortSeqIndex:
		v.seq.SelectIndex(value)
	case vgaPortSeqData:
		v.seq.WriteData(value)
	case vgaPortGCIndex:
		v.gc.SelectIndex(value)
	case vgaPortGCData:
		v.gc.WriteData(value)
	case vgaPortAttr:
		v.attr.Write(value)
	case vgaPortDACMask:
		v.dac.maskReg = value
	case vgaPortDACReadIdx:
		v.dac.setReadIndex(value)
	case vgaPortDACWriteIdx:
		v.dac.setWriteIndex(value)
	case vgaPortDACData:
		v.dac.writeData(value)
	}
}

func (v *VGA) ReadMem(addr uint32) uint8 {
	if v.seq.Chain4() {
		plane := addr & 3
		return v.vram.Plane(int(plane))[(addr>>2)%vgaPlaneSize]
	}
	v.gc.ApplyTo(v.vram)
	return v.vram.ReadByte(addr % vgaPlaneSize)
}

func (v *VGA) WriteMem(addr uint32, value uint8) {
	if v.seq.Chain4() {
		plane := addr & 3
		if v.seq.MapMask()&(1<<plane) != 0 {
			v.vram.Plane(int(plane))[(addr>>2)%vgaPlaneSize] = value
		}
		return
	}
	v.gc.ApplyTo(v.vram)
	v.vram.MapMask = v.seq.MapMask()
	v.vram.WriteByte(addr%vgaPlaneSize, value)
}

func (v *VGA) GetDisplayBuf() ([]uint8, int) { return v.dbuf.Front(), v.dbuf.Stride() }

func (v *VGA) Reset() {
	*v.crtc = *NewEGAVGARegisters(v.diag)
	*v.seq = *NewSequencer()
	*v.gc = *NewGraphicsController()
	*v.attr = *NewAttributeController()
	*v.dac = *newVGADAC()
	v.core.Reset()
	v.clock.Reset()
	for p := range v.vram.planes {
		clear(v.vram.planes[p])
	}
	loadTextFont(v.vram)
}

func (v *VGA) StateDump() string {
	return "VGA frame=" + uintToStr(v.core.FrameCount) + " chain4=" + boolStr(v.seq.Chain4())
}

func (v *VGA) MemoryMap() []MemoryRegion {
	return []MemoryRegion{{Name: "vga-vram", Base: 0xA0000, Size: vgaPlaneSize, CycleCost: 2}}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
