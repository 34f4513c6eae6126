// registers_6845.go - CRTC6845Registers: the 18-register (R0-R17) file
// shared by the CGA and TGA adapters. Grounded on
// original_source/core/src/devices/cga/mod.rs's crtc_register_selected
// dispatch and per-register write masks (handle_crtc_register_write), and on
// the teacher's registers.go convention of one named constant per register
// index (spec §3 "CGA/TGA: the classic 6845, R0-R17").

package crtcore

// 6845 register index constants, selected via the index port before a data
// port read/write (spec §3 CRTC Index/Data port pair).
const (
	R0HorizontalTotal     = 0x00
	R1HorizontalDisplayed = 0x01
	R2HorizontalSyncPos   = 0x02
	R3SyncWidth           = 0x03
	R4VerticalTotal       = 0x04
	R5VerticalTotalAdjust = 0x05
	R6VerticalDisplayed   = 0x06
	R7VerticalSyncPos     = 0x07
	R8InterlaceMode       = 0x08
	R9MaximumScanline     = 0x09
	R10CursorStart        = 0x0A
	R11CursorEnd          = 0x0B
	R12StartAddressHi     = 0x0C
	R13StartAddressLo     = 0x0D
	R14CursorAddressHi    = 0x0E
	R15CursorAddressLo    = 0x0F
	R16LightPenHi         = 0x10
	R17LightPenLo         = 0x11
)

const (
	cursorLineMask = 0x1F
	cursorAttrMask = 0x60
)

// CRTC6845Registers is the CGA/TGA register file: 18 byte registers behind
// an index/data port pair, most write-only from the CPU's point of view
// (spec §3: "the 6845 exposes no register readback path except the cursor
// and light-pen address pairs on some clones").
type CRTC6845Registers struct {
	index uint8

	horizontalTotal     uint8
	horizontalDisplayed uint8
	horizontalSyncPos   uint8
	syncWidth           uint8
	verticalTotal        uint8 // 7 bits
	verticalTotalAdjust  uint8 // 5 bits
	verticalDisplayed    uint8 // 7 bits (in practice often >127 via quirks, kept 8-bit)
	verticalSyncPos      uint8 // 7 bits
	interlaceMode        uint8
	maximumScanline      uint8
	cursorStart          uint8
	cursorAttr           uint8
	cursorEnd            uint8
	startAddressHi       uint8 // 6 bits
	startAddressLo       uint8
	cursorAddressHi      uint8
	cursorAddressLo      uint8
	lightPenHi           uint8
	lightPenLo           uint8

	inHBlank bool // supplied by the adapter so SyncWidth writes mid-hsync can be diagnosed

	diag diagnostics
}

// NewCRTC6845Registers returns a register file at its power-up defaults
// (all zero, matching a real 6845 before the BIOS programs it).
func NewCRTC6845Registers(diag diagnostics) *CRTC6845Registers {
	return &CRTC6845Registers{diag: diag}
}

// Reset restores the register file to power-up defaults in place, so
// callers holding a *CRTC6845Registers (including embedders like
// CGARegisters and the CRTC itself via the CRTCRegisters interface) keep a
// valid pointer across a hard reset.
func (r *CRTC6845Registers) Reset() {
	diag := r.diag
	*r = CRTC6845Registers{diag: diag}
}

// SelectIndex latches which register a following data-port access targets
// (spec §3: "index register selects 0-17"). An index outside that range is
// logged and replaced with 0.
func (r *CRTC6845Registers) SelectIndex(index uint8) {
	if index > R17LightPenLo {
		r.diag.invalidRegisterIndex(index)
		index = 0
	}
	r.index = index
}

// SetInHBlank lets the adapter report hsync state so a SyncWidth write
// mid-hblank can be flagged (ega/cga mod.rs: "Warning: SyncWidth modified
// during hsync!").
func (r *CRTC6845Registers) SetInHBlank(v bool) { r.inHBlank = v }

// WriteData writes byte to whichever register SelectIndex last chose,
// applying each register's real bit width (spec §3 per-register masks).
func (r *CRTC6845Registers) WriteData(b uint8) {
	switch r.index {
	case R0HorizontalTotal:
		r.horizontalTotal = b
	case R1HorizontalDisplayed:
		r.horizontalDisplayed = b
	case R2HorizontalSyncPos:
		r.horizontalSyncPos = b
	case R3SyncWidth:
		r.syncWidth = b
	case R4VerticalTotal:
		r.verticalTotal = b & 0x7F
	case R5VerticalTotalAdjust:
		r.verticalTotalAdjust = b & 0x1F
	case R6VerticalDisplayed:
		r.verticalDisplayed = b
	case R7VerticalSyncPos:
		r.verticalSyncPos = b & 0x7F
	case R8InterlaceMode:
		r.interlaceMode = b
	case R9MaximumScanline:
		r.maximumScanline = b & 0x1F
	case R10CursorStart:
		r.cursorStart = b & cursorLineMask
		r.cursorAttr = (b & cursorAttrMask) >> 5
	case R11CursorEnd:
		r.cursorEnd = b & cursorLineMask
	case R12StartAddressHi:
		r.startAddressHi = b & 0x3F
	case R13StartAddressLo:
		r.startAddressLo = b
	case R14CursorAddressHi:
		r.cursorAddressHi = b & 0x3F
	case R15CursorAddressLo:
		r.cursorAddressLo = b
	default:
		r.diag.writeProtected(r.index)
	}
}

// ReadData returns the data-port readback value for registers that support
// it (cursor/start/light-pen address pairs on most clones); unsupported
// indices return 0xFF (open bus), matching real hardware behavior for
// write-only registers.
func (r *CRTC6845Registers) ReadData() uint8 {
	switch r.index {
	case R10CursorStart:
		return r.cursorStart | r.cursorAttr<<5
	case R11CursorEnd:
		return r.cursorEnd
	case R12StartAddressHi:
		return r.startAddressHi
	case R13StartAddressLo:
		return r.startAddressLo
	case R14CursorAddressHi:
		return r.cursorAddressHi
	case R15CursorAddressLo:
		return r.cursorAddressLo
	case R16LightPenHi:
		return r.lightPenHi
	case R17LightPenLo:
		return r.lightPenLo
	default:
		return 0xFF
	}
}

// CursorBlinkMode2Bit returns the raw two-bit attribute field (00 steady,
// 01 off, 10 fast blink [16 frames], 11 slow blink [32 frames]),
// letting the adapter drive its own blink timer (spec §3 Cursor row).
func (r *CRTC6845Registers) CursorBlinkMode2Bit() uint8 { return r.cursorAttr }

// CRTCRegisters implementation -- the subset CRTC.Tick reads each character
// tick. All widths here are native 6845 (7/5-bit fields already masked on
// write), so no Overflow-register composition is needed.

func (r *CRTC6845Registers) HorizontalTotal() uint16     { return uint16(r.horizontalTotal) }
func (r *CRTC6845Registers) HorizontalDisplayed() uint16 { return uint16(r.horizontalDisplayed) }
func (r *CRTC6845Registers) HorizontalSyncPos() uint16   { return uint16(r.horizontalSyncPos) }
func (r *CRTC6845Registers) SyncWidth() uint8            { return r.syncWidth }
func (r *CRTC6845Registers) VerticalTotal() uint16       { return uint16(r.verticalTotal) }
func (r *CRTC6845Registers) VerticalTotalAdjust() uint8  { return r.verticalTotalAdjust }
func (r *CRTC6845Registers) VerticalDisplayed() uint16   { return uint16(r.verticalDisplayed) }
func (r *CRTC6845Registers) VerticalSyncPos() uint16     { return uint16(r.verticalSyncPos) }
func (r *CRTC6845Registers) MaximumScanline() uint8      { return r.maximumScanline }
func (r *CRTC6845Registers) CursorStart() uint8          { return r.cursorStart }
func (r *CRTC6845Registers) CursorEnd() uint8            { return r.cursorEnd }
func (r *CRTC6845Registers) CursorBlinkMode() uint8      { return r.cursorAttr }

func (r *CRTC6845Registers) StartAddress() uint16 {
	return uint16(r.startAddressHi)<<8 | uint16(r.startAddressLo)
}

func (r *CRTC6845Registers) CursorAddress() uint16 {
	return uint16(r.cursorAddressHi)<<8 | uint16(r.cursorAddressLo)
}
