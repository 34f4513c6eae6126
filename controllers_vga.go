// controllers_vga.go - the three EGA/VGA register blocks that sit beside
// the extended CRTC: the Sequencer, Graphics Controller, and Attribute
// Controller. Grounded on vga_constants.go's VGA_SEQ_*/VGA_GC_*/VGA_ATTR_*
// index constants and video_vga.go's attrIndex/attrRegs/attrFlip
// index-then-data port idiom (the Attribute Controller uniquely reuses one
// port for both index and data, toggled by a flip-flop).

package crtcore

// Sequencer register indices (spec §3 EGA/VGA supplement).
const (
	SeqReset       = 0x00
	SeqClockMode   = 0x01
	SeqMapMask     = 0x02
	SeqCharMap     = 0x03
	SeqMemoryMode  = 0x04
	seqRegCount    = 0x05
)

const SeqMemoryModeChain4 = 0x08

// Sequencer holds the EGA/VGA Sequencer's five registers behind an
// index/data port pair.
type Sequencer struct {
	index uint8
	regs  [seqRegCount]uint8
}

func NewSequencer() *Sequencer { return &Sequencer{} }

func (s *Sequencer) SelectIndex(i uint8) { s.index = i % seqRegCount }
func (s *Sequencer) WriteData(b uint8)   { s.regs[s.index] = b }
func (s *Sequencer) ReadData() uint8     { return s.regs[s.index] }
func (s *Sequencer) Raw(i int) uint8     { return s.regs[i] }

// MapMask returns the Map Mask register (spec §3: "one bit per plane,
// enables that plane for the next VRAM write").
func (s *Sequencer) MapMask() uint8 { return s.regs[SeqMapMask] }

// Chain4 reports whether Memory Mode enables chain-4 addressing (VGA mode
// 13h's linear-looking 256-color mode).
func (s *Sequencer) Chain4() bool { return s.regs[SeqMemoryMode]&SeqMemoryModeChain4 != 0 }

// Graphics Controller register indices.
const (
	GCSetReset    = 0x00
	GCEnableSR    = 0x01
	GCColorCmp    = 0x02
	GCDataRotate  = 0x03
	GCReadMap     = 0x04
	GCMode        = 0x05
	GCMisc        = 0x06
	GCColorDont   = 0x07
	GCBitmask     = 0x08
	gcRegCount    = 0x09
)

// GraphicsController holds the eight-plus-one EGA/VGA Graphics Controller
// registers, and exposes them pre-decoded into the fields PlanarVRAM reads
// each access (spec §3 "set/reset, enable set/reset, data rotate+function,
// read map select, read/write mode, bit mask, color compare/don't care").
type GraphicsController struct {
	index uint8
	regs  [gcRegCount]uint8
}

func NewGraphicsController() *GraphicsController { return &GraphicsController{} }

func (g *GraphicsController) SelectIndex(i uint8) { g.index = i % gcRegCount }
func (g *GraphicsController) WriteData(b uint8)   { g.regs[g.index] = b }
func (g *GraphicsController) ReadData() uint8     { return g.regs[g.index] }
func (g *GraphicsController) Raw(i int) uint8      { return g.regs[i] }

// ApplyTo copies this Graphics Controller's decoded fields onto v, the
// binding step the adapter performs before every VRAM access (spec §3's
// latch/ALU pipeline reads these each access).
func (g *GraphicsController) ApplyTo(v *PlanarVRAM) {
	v.SetReset = g.regs[GCSetReset] & 0x0F
	v.EnableSetReset = g.regs[GCEnableSR] & 0x0F
	v.ColorCompare = g.regs[GCColorCmp] & 0x0F
	v.RotateCount = g.regs[GCDataRotate] & 0x07
	v.Function = ALUFunction((g.regs[GCDataRotate] >> 3) & 0x03)
	v.ReadMap = g.regs[GCReadMap] & 0x03
	v.ReadMode = ReadMode((g.regs[GCMode] >> 3) & 0x01)
	v.WriteMode = WriteMode(g.regs[GCMode] & 0x03)
	v.BitMask = g.regs[GCBitmask]
	v.ColorDontCare = g.regs[GCColorDont] & 0x0F
}

// OddEvenMode reports the Miscellaneous register's chain odd/even bit (spec
// §3: "host CPU address bit 0 selects plane when not in chain-4").
func (g *GraphicsController) OddEvenMode() bool { return g.regs[GCMisc]&0x02 != 0 }

// Attribute Controller register indices.
const (
	AttrPaletteBase = 0x00
	AttrModeCtrl    = 0x10
	AttrOverscan    = 0x11
	AttrPlaneEnable = 0x12
	AttrHPan        = 0x13
	AttrColorSelect = 0x14
	attrRegCount    = 0x15
)

const (
	AttrModeBlinkEnable = 0x08
	AttrModeLineGraphics = 0x04
)

// AttributeController holds the EGA/VGA Attribute Controller's 21 registers
// behind a single port that alternates between index and data on each
// write via an internal flip-flop (spec §3 "one index/data port, toggled by
// an internal flip-flop reset by a status-register read").
type AttributeController struct {
	index    uint8
	flipFlop bool // false = expecting index, true = expecting data
	regs     [attrRegCount]uint8
}

func NewAttributeController() *AttributeController { return &AttributeController{} }

// Write implements the single-port index/data toggle (video_vga.go's
// attrIndex/attrRegs/attrFlip idiom).
func (a *AttributeController) Write(b uint8) {
	if !a.flipFlop {
		a.index = b & 0x1F
		a.flipFlop = true
		return
	}
	if int(a.index) < len(a.regs) {
		a.regs[a.index] = b
	}
	a.flipFlop = false
}

// ResetFlipFlop is called whenever the host reads the input-status-1
// register (port 0x3DA/0x3BA), which always resets the index/data
// flip-flop to "expecting index" regardless of the status byte's value.
func (a *AttributeController) ResetFlipFlop() { a.flipFlop = false }

// ReadData returns the currently selected register (some clones allow a
// read here; real hardware is typically write-only but we expose it for
// StateDump/debugging).
func (a *AttributeController) ReadData() uint8 {
	if int(a.index) < len(a.regs) {
		return a.regs[a.index]
	}
	return 0
}

// Palette returns the 4-bit-to-6-bit palette register for EGA text/16-color
// graphics attribute index i (spec §3 "16 palette registers map a 4-bit
// attribute to a 6-bit EGA color / 8-bit VGA DAC index").
func (a *AttributeController) Palette(i uint8) uint8 { return a.regs[AttrPaletteBase+i&0x0F] }

// BlinkEnabled reports the Mode Control register's blink-vs-intensity bit
// (spec §3 "Attribute Controller's blink-enable bit drives cursor/attribute
// blink on EGA/VGA, not a CRTC field").
func (a *AttributeController) BlinkEnabled() bool {
	return a.regs[AttrModeCtrl]&AttrModeBlinkEnable != 0
}

// OverscanColor returns the border/overscan color index.
func (a *AttributeController) OverscanColor() uint8 { return a.regs[AttrOverscan] }

// ColorSelect returns the Color Select register, whose bits substitute for
// attribute bits 4-5/6-7 depending on the palette register's top bits in
// some 256-color modes.
func (a *AttributeController) ColorSelect() uint8 { return a.regs[AttrColorSelect] }
