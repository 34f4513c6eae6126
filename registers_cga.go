// registers_cga.go - CGA-specific registers layered on top of
// CRTC6845Registers: the Mode register, Color Control register, and Status
// register. Grounded on original_source/core/src/devices/cga/mod.rs's
// MODE_*/CC_* bit constants, handle_mode_register's deferred-change latch,
// and handle_status_register_read.

package crtcore

const (
	modeHiresText     = 0b0000_0001
	modeGraphics      = 0b0000_0010
	modeBW            = 0b0000_0100
	modeEnable        = 0b0000_1000
	modeHiresGraphics = 0b0001_0000
	modeBlinking      = 0b0010_0000
	// modeMatchMask excludes the enable (bit 3) and blinking (bit 5) bits:
	// real mode bytes always carry the enable bit set, but the display-mode
	// identity only depends on hiresText/graphics/BW/hiresGfx (spec §3 Mode
	// byte; original_source's DisplayMode decode ignores CGA_MODE_ENABLE_MASK
	// and CGA_MODE_BLINKING_MASK the same way).
	modeMatchMask = 0b0001_0111
)

const (
	ccAltColorMask  = 0b0000_0111
	ccAltIntensity  = 0b0000_1000
	ccBrightBit     = 0b0001_0000
	ccPaletteBit    = 0b0010_0000
)

// CGA status register bits (spec §3 Status register row).
const (
	StatusDisplayEnable   = 0b0000_0001 // set outside the active display area (no-snow window)
	StatusVerticalRetrace = 0b0000_1000
)

// CGADisplayMode enumerates the eight mode-byte-decodable display modes
// (spec §3 Display mode enum), the Go-side equivalent of the Rust
// DisplayMode enum in cga/mod.rs.
type CGADisplayMode int

const (
	CGAMode0TextBW40 CGADisplayMode = iota
	CGAMode1TextCo40
	CGAMode2TextBW80
	CGAMode3TextCo80
	CGAModeTextGraphicsHack
	CGAMode4LowResGraphics
	CGAMode5LowResAltPalette
	CGAMode6HiResGraphics
	CGAMode7LowResComposite
)

// CGARegisters bundles the shared 6845 timing file with CGA's own Mode,
// Color Control, and Status registers (spec §3 "CGA register file =
// 6845 + Mode + Color Control").
type CGARegisters struct {
	*CRTC6845Registers

	modeByte    uint8
	pendingMode uint8
	modePending bool

	ccRegister uint8

	DisplayMode    CGADisplayMode
	ModeGraphics   bool
	ModeBW         bool
	ModeHiresGfx   bool
	ModeHiresTxt   bool
	ModeEnable     bool
	ModeBlinking   bool
	OverscanColor  uint8

	diag diagnostics
}

// NewCGARegisters builds a CGA register file at its documented power-up
// defaults (color/bright text palette selected, hi-res text active).
func NewCGARegisters(diag diagnostics) *CGARegisters {
	return &CGARegisters{
		CRTC6845Registers: NewCRTC6845Registers(diag),
		ccRegister:        ccPaletteBit | ccBrightBit,
		ModeHiresTxt:      true,
		DisplayMode:       CGAMode3TextCo80,
		diag:              diag,
	}
}

// Reset restores the CGA register file (including the embedded 6845 timing
// registers) to power-up defaults in place.
func (r *CGARegisters) Reset() {
	r.CRTC6845Registers.Reset()
	r.modeByte = 0
	r.pendingMode = 0
	r.modePending = false
	r.ccRegister = ccPaletteBit | ccBrightBit
	r.ModeHiresTxt = true
	r.DisplayMode = CGAMode3TextCo80
	r.OverscanColor = 0
}

// isDeferredModeChange reports whether newMode crosses the text/graphics
// boundary or changes the character clock divisor relative to the current
// mode, both of which a real CGA only applies at the next hsync (spec §4.1
// "deferred mode/clock-divisor changes ... at hsync/LCHAR boundaries").
func (r *CGARegisters) isDeferredModeChange(newMode uint8) bool {
	oldText := r.modeByte&0x01 != 0 || r.modeByte&0x03 == 0x03
	oldGfx := r.modeByte&0x02 != 0
	newText := newMode&0x01 != 0 || newMode&0x03 == 0x03
	newGfx := newMode&0x02 != 0
	if oldText != newText || oldGfx != newGfx {
		return true
	}
	return r.ModeHiresTxt != (newMode&modeHiresText != 0)
}

// WriteMode latches a Mode register write. If the change crosses a
// text/graphics or clock-divisor boundary it is deferred until
// ApplyPendingMode is called at the next hsync; otherwise it applies
// immediately (spec §4.1).
func (r *CGARegisters) WriteMode(b uint8) {
	if r.isDeferredModeChange(b) {
		r.modePending = true
		r.pendingMode = b
		return
	}
	r.modeByte = b
	r.updateMode()
}

// ApplyPendingMode is wired to ClockManager.ApplyPendingMode and applies a
// Mode register write latched by WriteMode, if one is outstanding.
func (r *CGARegisters) ApplyPendingMode() {
	if !r.modePending {
		return
	}
	r.modeByte = r.pendingMode
	r.modePending = false
	r.updateMode()
}

// PendingClockDivisor reports the clock divisor the next-applied mode would
// use, so ClockManager.RequestDivisor can be primed ahead of the hsync
// boundary that actually applies it.
func (r *CGARegisters) PendingClockDivisor() ClockDivisor {
	mode := r.modeByte
	if r.modePending {
		mode = r.pendingMode
	}
	if mode&modeHiresText != 0 || mode&modeHiresGraphics != 0 {
		return DivisorHChar
	}
	return DivisorMChar
}

func (r *CGARegisters) updateMode() {
	r.ModeHiresTxt = r.modeByte&modeHiresText != 0
	r.ModeGraphics = r.modeByte&modeGraphics != 0
	r.ModeBW = r.modeByte&modeBW != 0
	r.ModeEnable = r.modeByte&modeEnable != 0
	r.ModeHiresGfx = r.modeByte&modeHiresGraphics != 0
	r.ModeBlinking = r.modeByte&modeBlinking != 0

	if r.ModeHiresGfx {
		r.OverscanColor = 0
	} else {
		r.OverscanColor = r.ccRegister & ccAltColorMask
	}

	switch r.modeByte & modeMatchMask {
	case 0b0_0100:
		r.DisplayMode = CGAMode0TextBW40
	case 0b0_0000:
		r.DisplayMode = CGAMode1TextCo40
	case 0b0_0101:
		r.DisplayMode = CGAMode2TextBW80
	case 0b0_0001:
		r.DisplayMode = CGAMode3TextCo80
	case 0b0_0011:
		r.DisplayMode = CGAModeTextGraphicsHack
	case 0b0_0010:
		r.DisplayMode = CGAMode4LowResGraphics
	case 0b0_0110:
		r.DisplayMode = CGAMode5LowResAltPalette
	case 0b1_0110:
		r.DisplayMode = CGAMode6HiResGraphics
	case 0b1_0010:
		r.DisplayMode = CGAMode7LowResComposite
	default:
		r.diag.unsupportedMode(r.modeByte & modeMatchMask)
		r.DisplayMode = CGAMode3TextCo80
	}
}

// WriteColorControl updates the Color Control register (palette/bright
// select and, in graphics modes, the overscan/alt color).
func (r *CGARegisters) WriteColorControl(b uint8) {
	r.ccRegister = b
	if r.ModeHiresGfx {
		r.OverscanColor = 0
	} else {
		r.OverscanColor = b & ccAltColorMask
	}
}

// Palette resolves the current 4-color graphics palette from the Mode and
// Color Control registers (spec §3, delegating to CGAFourColorPalette).
func (r *CGARegisters) Palette() ([4]uint8, CGAPaletteKind) {
	return CGAFourColorPalette(
		r.ccRegister&ccAltColorMask|boolMaskU8(r.ccRegister&ccAltIntensity != 0, 8),
		r.ccRegister&ccPaletteBit != 0,
		r.ccRegister&ccBrightBit != 0,
		r.ModeBW,
		r.ModeHiresGfx,
	)
}

func boolMaskU8(b bool, v uint8) uint8 {
	if b {
		return v
	}
	return 0
}

// ReadStatus composes the CGA status register from the CRTC's current
// blank/vblank flags (spec §3 Status register row; cga/mod.rs
// handle_status_register_read).
func (r *CGARegisters) ReadStatus(inVBlank, inDisplayArea bool) uint8 {
	switch {
	case inVBlank:
		return StatusVerticalRetrace | StatusDisplayEnable
	case !inDisplayArea:
		return StatusDisplayEnable
	default:
		return 0
	}
}
