// crtc.go - CRTC: the MC6845-compatible timing state machine shared by every
// adapter. Ported from original_source/core/src/devices/cga/mod.rs's
// tick_crtc_char/do_vsync (Rust) into the idiom the teacher repo uses for its
// other raster-driven chips (TEDVideoEngine, ULAEngine): a plain struct with
// an explicit per-tick advance method, no inheritance, embedded by value.

package crtcore

// VBlankHeight is the fixed number of scanlines the vertical sync counter
// (vsc) counts through inside vblank before a vsync fires (spec §4.2).
const VBlankHeight = 16

// CRTCConfig holds the per-adapter constants the shared CRTC needs but that
// don't live in the register file: the field buffer geometry and the
// monitor-side minimum beam position that gates a vsync (spec §4.6 /
// §9 open question: CGA's monitor won't vsync before scanline 127, TGA's
// will vsync immediately).
type CRTCConfig struct {
	FieldWidth      int  // back-buffer stride in pixels
	FieldHeight     int  // back-buffer scanline count
	MonitorVsyncMin int  // beam_y threshold at or below which do_vsync is suppressed
	HCharPixels     int  // pixels per character tick at clock divisor 1 (8 for CGA/TGA/EGA/VGA)
	NineBitOverflow bool // true for EGA/VGA: VT/VSP/VD/etc. get a 9-bit high bit from Overflow
}

// CRTC is the counter/flag state a character tick advances. It has no
// knowledge of ports, VRAM or pixels — RasterEngine and the adapter facades
// read its exported flags and vma each tick.
type CRTC struct {
	cfg  CRTCConfig
	regs CRTCRegisters

	// Counters (spec §3 CRTC counters row)
	hcc  uint16 // horizontal character counter
	vcc  uint16 // vertical character counter
	vlc  uint8  // vertical line (within-character-row scanline) counter
	hsc  uint8  // horizontal sync counter
	vsc  uint8  // vertical sync counter
	vtac uint8  // vertical-total-adjust counter

	// Addressing
	vma  uint32 // video memory address presented to VRAM this tick
	vmaT uint32 // latched row-start vma (spec glossary: vma')

	// Flags (spec §4.2 step-by-step outputs)
	InDisplayArea    bool
	InHBlank         bool // CRTC-internal horizontal blank (not the monitor's)
	InVBlank         bool
	HBorder          bool
	VBorder          bool
	inLastVBlankLine bool

	// Raster position bookkeeping, mirrored by RasterEngine
	Scanline int
	BeamX    int
	BeamY    int
	RBA      int

	// Cursor/blink external inputs, set by the adapter before each tick
	CursorEnabled bool
	BlinkState    bool

	// Deferred-mode-change suppression during bus catch-up (spec §4.1)
	CatchingUp bool

	// clockDivisor mirrors ClockManager's current divisor; only its
	// "is it 1 (hchar)" distinction matters to hsyncTarget.
	clockDivisor uint8

	// Frame bookkeeping
	FrameCount      uint64
	cyclesPerVsync  uint64
	curScreenCycles uint64
	sinkCycles      uint64

	// Extents of the frame just completed, read by a presenter
	OverscanL, OverscanR int
	VisibleW, VisibleH   int

	overscanRightStart int

	diag diagnostics
}

// NewCRTC constructs a CRTC bound to one adapter's register file. regs must
// outlive the CRTC; it is read, never written, by Tick.
func NewCRTC(cfg CRTCConfig, regs CRTCRegisters, diag diagnostics) *CRTC {
	return &CRTC{cfg: cfg, regs: regs, diag: diag, InDisplayArea: true}
}

// Reset restores all counters and flags to power-up state without
// reallocating the CRTC or touching the register file (spec §5: "Reset is a
// full structural re-initialization of counters/state while preserving
// framebuffer identity").
func (c *CRTC) Reset() {
	cfg, regs, diag := c.cfg, c.regs, c.diag
	*c = CRTC{cfg: cfg, regs: regs, diag: diag, InDisplayArea: true}
}

// TickResult reports the edges a single character tick crossed, so the
// adapter facade knows when to apply a deferred mode/divisor change or swap
// buffers — the CRTC itself holds no reference back to the adapter
// (spec §9: "the core accepts a bus reference only for the duration of one
// call; it does not hold a long-lived reference").
type TickResult struct {
	HsyncBoundary bool // end-of-scanline edge where a pending mode change may apply
	VsyncFired    bool // do_vsync ran and the monitor accepted it (buffers should swap)
}

// Tick advances the CRTC by exactly one character clock and returns the
// edges crossed. It must be called once per character tick, never skipped or
// called twice for the same tick (spec §4.2/§8 invariant 6: "cycles mod
// char_clock == 0" is the caller's responsibility via ClockManager).
func (c *CRTC) Tick() TickResult {
	var result TickResult

	c.hcc++
	if c.hcc == 0 {
		c.HBorder = false
	}
	c.vma++

	if c.hcc == 0 && c.vcc == 0 {
		c.vma = c.frameAddress()
	}

	if c.InHBlank {
		c.hsc++

		hsyncTarget := c.hsyncTarget()
		if c.hsc == hsyncTarget {
			if !c.CatchingUp {
				result.HsyncBoundary = true
			}

			if c.InVBlank {
				c.vsc++
				if c.vsc == VBlankHeight {
					c.inLastVBlankLine = true
					c.vsc = 0
					if c.doVsync() {
						result.VsyncFired = true
					}
					return result
				}
			}

			c.Scanline++
			if c.BeamX > 0 {
				c.BeamY++
			}
			c.BeamX = 0
			c.RBA = c.cfg.FieldWidth * c.BeamY
		}

		if c.hsc == c.regs.SyncWidth() {
			c.InHBlank = false
			c.hsc = 0
		}
	}

	if c.hcc == c.regs.HorizontalDisplayed() {
		if c.vlc == c.regs.MaximumScanline() {
			c.vmaT = c.vma
		}
		c.overscanRightStart = c.BeamX
		c.InDisplayArea = false
		c.HBorder = true
	}

	if c.hcc == c.regs.HorizontalSyncPos() {
		if c.BeamX > c.overscanRightStart {
			c.OverscanR = c.BeamX - c.overscanRightStart
		}
		c.InHBlank = true
		c.hsc = 0
	}

	if c.hcc == c.regs.HorizontalTotal()+1 && c.inLastVBlankLine {
		c.HBorder = true
	}

	if c.hcc == c.regs.HorizontalTotal()+1 {
		if c.inLastVBlankLine {
			c.inLastVBlankLine = false
			c.InVBlank = false
		}

		c.hcc = 0
		c.HBorder = false
		c.vlc++
		c.OverscanL = c.BeamX
		c.vma = c.vmaT

		if !c.InVBlank && c.vcc < c.regs.VerticalDisplayed() {
			c.InDisplayArea = true
		}

		if c.vlc > c.regs.MaximumScanline() {
			c.vlc = 0
			c.vcc++
			c.vma = c.vmaT

			if c.vcc == c.regs.VerticalSyncPos() {
				c.InVBlank = true
				c.InDisplayArea = false
			}
		}

		if c.vcc == c.regs.VerticalDisplayed() {
			c.VisibleH = c.Scanline
			c.InDisplayArea = false
			c.VBorder = true
		}

		if c.vcc >= c.regs.VerticalTotal()+1 {
			c.vtac++
			if c.vtac > c.regs.VerticalTotalAdjust() {
				c.hcc = 0
				c.vcc = 0
				c.vtac = 0
				c.vlc = 0
				c.vma = c.frameAddress()
				c.vmaT = c.vma
				c.InDisplayArea = true
				c.VBorder = false
				c.InVBlank = false
			}
		}
	}

	return result
}

// frameAddress is the CRTC's latched start-of-frame video address, reloaded
// at hcc==0&&vcc==0 and at the end of vertical-total-adjust (spec §4.2 steps
// 4-5). It tracks StartAddress() directly: a mid-frame StartAddress write
// takes effect only the next time this is read, matching scenario (f).
func (c *CRTC) frameAddress() uint32 {
	return uint32(c.regs.StartAddress())
}

// hsyncTarget is the monitor-side fixed hsync pull-in width (spec §4.2 /
// §9 open question 3): real monitors clamp an overly wide programmed hsync
// so the image doesn't shift right. Divisor 1 clamps to min(width,10);
// slower character clocks use a fixed 5, both values grounded in
// original_source/core/src/devices/cga/mod.rs: tick_crtc_char.
func (c *CRTC) hsyncTarget() uint8 {
	if c.clockDivisor <= 1 {
		w := c.regs.SyncWidth()
		if w > 10 {
			w = 10
		}
		return w
	}
	return 5
}

// SetClockDivisor lets the ClockManager tell the CRTC which clock divisor is
// active, since the hsync pull-in width differs at divisor 1 vs slower
// divisors (spec §4.2). Call before Tick whenever the divisor changes.
func (c *CRTC) SetClockDivisor(divisor uint8) {
	c.clockDivisor = divisor
}

// doVsync implements spec §4.6: gate on the monitor minimum, and when
// accepted, reset the beam, record extents, bump frame_count, and report
// that the caller should swap buffers. When gated, only Scanline resets.
func (c *CRTC) doVsync() bool {
	c.cyclesPerVsync = c.curScreenCycles
	c.curScreenCycles = 0

	if c.BeamY <= c.cfg.MonitorVsyncMin {
		c.Scanline = 0
		return false
	}

	if c.BeamY > 258 && c.BeamY < 262 {
		deltaY := 262 - c.BeamY
		c.sinkCycles = uint64(deltaY) * uint64(c.regs.HorizontalTotal()+1)
	}

	c.BeamX = 0
	c.BeamY = 0
	c.RBA = 0
	c.VisibleW = int(c.regs.HorizontalDisplayed()) * c.cfg.HCharPixels

	c.Scanline = 0
	c.FrameCount++
	return true
}

// CyclesPerVsync and CurScreenCycles expose the last frame's character-tick
// counts for presenter diagnostics (SPEC_FULL.md §6.1 supplement).
func (c *CRTC) CyclesPerVsync() uint64  { return c.cyclesPerVsync }
func (c *CRTC) CurScreenCycles() uint64 { return c.curScreenCycles }
func (c *CRTC) SinkCycles() uint64      { return c.sinkCycles }

// ConsumeSinkCycles reports and clears pending sink cycles, letting
// ClockManager silently absorb a short-frame correction on the next run().
func (c *CRTC) ConsumeSinkCycles() uint64 {
	s := c.sinkCycles
	c.sinkCycles = 0
	return s
}

// AddScreenCycle lets ClockManager tally character ticks spent on the
// current screen between vsyncs, feeding CyclesPerVsync/CurScreenCycles.
func (c *CRTC) AddScreenCycle() {
	c.curScreenCycles++
}

// CursorActive reports whether the cursor pixel should be drawn on the
// current vma/vlc, honoring split cursors (End < Start covers rows
// [0..=End] ∪ [Start..MAX]) and full disable (Start > MaximumScanline)
// (spec §4.2 Cursor row).
func (c *CRTC) CursorActive() bool {
	if !c.CursorEnabled || !c.BlinkState {
		return false
	}
	if c.vma != uint32(c.regs.CursorAddress()) {
		return false
	}
	start := c.regs.CursorStart()
	end := c.regs.CursorEnd()
	max := c.regs.MaximumScanline()
	if start > max {
		return false
	}
	if end < start {
		return c.vlc <= end || c.vlc >= start
	}
	return c.vlc >= start && c.vlc <= end
}

// VMA returns the current video memory address for this tick.
func (c *CRTC) VMA() uint32 { return c.vma }

// VLC returns the within-row scanline counter for this tick.
func (c *CRTC) VLC() uint8 { return c.vlc }
