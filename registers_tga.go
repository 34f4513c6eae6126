// registers_tga.go - TGA/PCjr-specific registers layered on the shared
// 6845 timing file, plus the windowed-aperture page register. Grounded on
// crates/marty_core/src/devices/tga/mod.rs's TModeControlRegister,
// JrModeControlRegister(2), TPageRegister bitfields and their write
// dispatch (video_array_address match arms 0x00/0x01/0x03/0x10-0x1F).

package crtcore

// TGAVariant distinguishes the Tandy 1000 and IBM PCjr mode-control register
// layouts, which differ in bit assignment despite sharing the CRTC and
// palette-register block (spec §3 TGA supplement).
type TGAVariant int

const (
	TGATandy TGAVariant = iota
	TGAPCjr
)

// TGADisplayMode extends CGADisplayMode's set with the 4bpp 16-color modes
// unique to TGA/PCjr (spec §3 TGA supplement).
type TGADisplayMode int

const (
	TGATextBW40 TGADisplayMode = iota
	TGATextCo40
	TGATextBW80
	TGATextCo80
	TGALowResGraphics
	TGALowResAltPalette
	TGAHiResGraphics
	TGA160x200x16
	TGA320x200x16
	TGA640x200x4
)

// TGARegisters bundles the shared 6845 timing file with TGA's mode-control,
// palette-mask/palette-register block, border color, and CRT/CPU page
// register (spec §3 TGA supplement: "extends CGA's register file with a
// 16-entry palette RAM and a windowed-aperture page register").
type TGARegisters struct {
	*CRTC6845Registers

	Variant TGAVariant

	modeByte       uint8
	ccRegister     uint8
	DisplayMode    TGADisplayMode
	ModeGraphics   bool
	ModeBW         bool
	ModeHiresGfx   bool
	ModeHiresTxt   bool
	ModeEnable     bool
	ModeBlinking   bool
	Mode4bpp       bool
	OverscanColor  uint8

	// Tandy mode control register (port index 0x00 under VideoCardSubType
	// Tandy): border enable, 2bpp-hires, 4bpp mode.
	BorderEnable bool
	TwoBppHires  bool
	FourBppMode  bool

	// PCjr mode control register 1 (also port index 0x00, PCjr subtype):
	// bandwidth (hi-res text clock), graphics, b/w, video enable, 4bpp.
	JrBandwidth bool
	JrGraphics  bool
	JrBW        bool
	JrVideo     bool

	// PCjr mode control register 2 (port index 0x03): blink enable, 2bpp.
	JrBlink   bool
	JrTwoBpp  bool

	PaletteMask      uint8
	PaletteRegisters [16]uint8
	BorderColor      uint8

	// Page register (video-array index 0x02, see tga.go's WritePort):
	// 3-bit CRT page, 3-bit CPU page, 2-bit address mode.
	CRTPage     uint8
	CPUPage     uint8
	AddressMode uint8

	modePending  bool
	clockPending bool

	diag diagnostics
}

// NewTGARegisters builds a TGA/PCjr register file for the given variant.
func NewTGARegisters(variant TGAVariant, diag diagnostics) *TGARegisters {
	return &TGARegisters{
		CRTC6845Registers: NewCRTC6845Registers(diag),
		Variant:           variant,
		diag:              diag,
	}
}

// WriteMode handles the CGA-compatible Mode register TGA retains for
// backward compatibility (same bit layout as registers_cga.go's mode
// constants).
func (r *TGARegisters) WriteMode(b uint8) {
	r.modeByte = b
	r.ModeHiresTxt = b&modeHiresText != 0
	r.ModeGraphics = b&modeGraphics != 0
	r.ModeBW = b&modeBW != 0
	r.ModeEnable = b&modeEnable != 0
	r.ModeHiresGfx = b&modeHiresGraphics != 0
	r.ModeBlinking = b&modeBlinking != 0
	r.recomputeDisplayMode()
	r.modePending = true
	r.clockPending = true
}

// WriteColorControl handles the CGA-compatible Color Control register.
func (r *TGARegisters) WriteColorControl(b uint8) {
	r.ccRegister = b
	r.OverscanColor = b & ccAltColorMask
}

// recomputeDisplayMode folds the CGA-compatible Mode register together with
// the TGA-only 4bpp bit into one TGADisplayMode (tga/mod.rs's vmode_byte
// composition around CGA_MODE_ENABLE_MASK).
func (r *TGARegisters) recomputeDisplayMode() {
	switch {
	case r.Mode4bpp && r.ModeHiresTxt:
		r.DisplayMode = TGA640x200x4
	case r.Mode4bpp && !r.ModeGraphics:
		r.DisplayMode = TGA160x200x16
	case r.Mode4bpp:
		r.DisplayMode = TGA320x200x16
	case !r.ModeGraphics && r.ModeBW && !r.ModeHiresTxt:
		r.DisplayMode = TGATextBW40
	case !r.ModeGraphics && !r.ModeHiresTxt:
		r.DisplayMode = TGATextCo40
	case !r.ModeGraphics && r.ModeBW:
		r.DisplayMode = TGATextBW80
	case !r.ModeGraphics:
		r.DisplayMode = TGATextCo80
	case r.ModeHiresGfx:
		r.DisplayMode = TGAHiResGraphics
	case r.ccRegister&ccPaletteBit != 0:
		r.DisplayMode = TGALowResAltPalette
	default:
		r.DisplayMode = TGALowResGraphics
	}
}

// WriteModeControl handles port index 0x00 (spec §3: mode control register,
// interpreted per Variant).
func (r *TGARegisters) WriteModeControl(b uint8) {
	switch r.Variant {
	case TGAPCjr:
		r.JrBandwidth = b&0x01 != 0
		r.JrGraphics = b&0x02 != 0
		r.JrBW = b&0x04 != 0
		r.JrVideo = b&0x08 != 0
		r.FourBppMode = b&0x10 != 0
	default:
		r.BorderEnable = b&0x04 != 0
		r.TwoBppHires = b&0x08 != 0
		r.FourBppMode = b&0x10 != 0
	}
	r.Mode4bpp = r.FourBppMode
	r.recomputeDisplayMode()
	r.modePending = true
	r.clockPending = true
}

// WritePaletteMask handles port index 0x01.
func (r *TGARegisters) WritePaletteMask(b uint8) { r.PaletteMask = b & 0x0F }

// WriteModeControl2 handles PCjr's port index 0x03 (blink/2bpp).
func (r *TGARegisters) WriteModeControl2(b uint8) {
	r.JrBlink = b&0x02 != 0
	r.JrTwoBpp = b&0x08 != 0
	r.modePending = true
	r.clockPending = true
}

// WritePaletteRegister handles port indices 0x10-0x1F (spec §3: 16-entry
// palette RAM, 4-bit values).
func (r *TGARegisters) WritePaletteRegister(videoArrayAddress uint8, b uint8) {
	idx := videoArrayAddress - 0x10
	if int(idx) < len(r.PaletteRegisters) {
		r.PaletteRegisters[idx] = b & 0x0F
	}
}

// WritePageRegister decomposes the CRT/CPU page + address-mode byte (spec §3
// supplement: "CRT page and CPU page may differ").
func (r *TGARegisters) WritePageRegister(b uint8) {
	r.CRTPage = b & 0x07
	r.CPUPage = (b >> 3) & 0x07
	r.AddressMode = (b >> 6) & 0x03
}

// Reset restores the TGA register file (including the embedded 6845 timing
// registers) to power-up defaults in place.
func (r *TGARegisters) Reset() {
	r.CRTC6845Registers.Reset()
	variant := r.Variant
	diag := r.diag
	*r = TGARegisters{CRTC6845Registers: r.CRTC6845Registers, Variant: variant, diag: diag}
}

// ConsumeModePending reports and clears the deferred mode-change flag a
// mode-control write raised, for ClockManager.ApplyPendingMode wiring.
func (r *TGARegisters) ConsumeModePending() bool {
	p := r.modePending
	r.modePending = false
	return p
}

// ConsumeClockPending reports and clears the deferred clock-divisor-change
// flag a mode-control write raised.
func (r *TGARegisters) ConsumeClockPending() bool {
	p := r.clockPending
	r.clockPending = false
	return p
}
