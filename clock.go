// clock.go - ClockManager: bridges host wall-clock/bus-tick budgets to CRTC
// character ticks, honoring deferred clock-divisor changes and mid-character
// "catch-up" ticking triggered by a CPU port access. Grounded on
// original_source/core/src/devices/cga/mod.rs's tick/tick_hchar/tick_mchar/
// tick_lchar family, adapted into the teacher repo's preference for small,
// directly-testable methods (see video_ted.go's per-field tick bookkeeping).

package crtcore

// ClockDivisor selects how many pixels one character tick spans.
type ClockDivisor uint8

const (
	DivisorHChar ClockDivisor = 1 // 8 pixels/char - CGA/EGA/VGA hi-res text & graphics
	DivisorMChar ClockDivisor = 2 // 16 pixels/char (double-drawn) - CGA/TGA medium modes
	DivisorLChar ClockDivisor = 4 // 32 pixels/char - TGA/PCjr 160-wide 4bpp
)

// pixelsFor returns the pixel count one character tick spans for d.
func (d ClockDivisor) pixelsFor() int { return int(d) * 8 }

// ClockManager owns the fractional-tick accumulator and the pending
// divisor-change latch; it never touches VRAM or registers directly, only
// the CRTC and a RasterTick callback supplied by the adapter.
type ClockManager struct {
	crtc *CRTC

	divisor        ClockDivisor
	pendingDivisor ClockDivisor
	divisorPending bool

	cycles    uint64 // total character ticks executed
	pixelAcc  int    // cleared by Reset; Run and CatchUp keep their remainder in pendingPx
	pendingPx int    // leftover pixels owed from a fractional run() call

	// RasterTick is called once per character tick, before CRTC.Tick, with
	// the number of pixels this tick spans; it sees the CRTC state left by
	// the previous tick. The adapter wires this to its RasterEngine.
	RasterTick func(pixels int)

	// ApplyPendingMode is called at an hsync boundary (TickResult.HsyncBoundary)
	// so the adapter can apply a deferred text/graphics mode change.
	ApplyPendingMode func()

	// OnVsync is called when TickResult.VsyncFired is set, so the adapter
	// can swap its DoubleBuffer and raise an IRQ if the variant does so.
	OnVsync func()

	diag diagnostics
}

// NewClockManager builds a ClockManager driving crtc at the given initial
// divisor.
func NewClockManager(crtc *CRTC, initial ClockDivisor, diag diagnostics) *ClockManager {
	cm := &ClockManager{crtc: crtc, divisor: initial, diag: diag}
	crtc.SetClockDivisor(uint8(initial))
	return cm
}

// Divisor returns the currently active clock divisor.
func (cm *ClockManager) Divisor() ClockDivisor { return cm.divisor }

// RequestDivisor latches a divisor change for application at the next LCHAR
// boundary (spec §4.1: "applied only when cycles mod LCHAR == 0").
func (cm *ClockManager) RequestDivisor(d ClockDivisor) {
	if d == cm.divisor {
		cm.divisorPending = false
		return
	}
	cm.pendingDivisor = d
	cm.divisorPending = true
}

// lcharCharTicks is the tick-count modulus that is zero only on an LCHAR boundary:
// the slowest possible character clock is 32 pixels/4 char-ticks at DivisorLChar,
// so a pending change may only land every 4 character ticks.
const lcharCharTicks = 4

// TickChar advances exactly one character clock: dispatches RasterTick for
// this tick's pixels, then CRTC.Tick, then applies any deferred mode/divisor
// change whose boundary was just crossed (spec §4.1 tick_char).
func (cm *ClockManager) TickChar() {
	if cm.RasterTick != nil {
		cm.RasterTick(cm.divisor.pixelsFor())
	}

	cm.crtc.AddScreenCycle()
	result := cm.crtc.Tick()
	cm.cycles++

	if result.HsyncBoundary && cm.ApplyPendingMode != nil {
		cm.ApplyPendingMode()
	}

	if cm.divisorPending && cm.cycles%lcharCharTicks == 0 {
		cm.divisor = cm.pendingDivisor
		cm.crtc.SetClockDivisor(uint8(cm.divisor))
		cm.divisorPending = false
	}

	if result.VsyncFired && cm.OnVsync != nil {
		cm.OnVsync()
	}
}

// Run converts budget (pixel clocks, e.g. CGA's 14.318180MHz-derived system
// ticks or an EGA/VGA microsecond count already converted to pixel clocks by
// the caller) into whole character ticks, executing TickChar in a loop until
// the budget — plus any fractional remainder carried from the previous call
// — is exhausted (spec §4.1 run(TimeBudget)). Run always completes
// synchronously; there is no cancellation (spec §5).
func (cm *ClockManager) Run(pixelBudget int) {
	total := cm.pendingPx + pixelBudget
	pixelsPerChar := cm.divisor.pixelsFor()
	for total >= pixelsPerChar {
		cm.TickChar()
		total -= pixelsPerChar
		// The divisor may just have changed; re-read it for the next
		// iteration's whole-character consumption.
		pixelsPerChar = cm.divisor.pixelsFor()
	}
	cm.pendingPx = total

	if sink := cm.crtc.ConsumeSinkCycles(); sink > 0 {
		// Short-frame compensation: silently absorb the owed character
		// ticks so the next frame's cadence stays phase-aligned, without
		// re-emitting RasterTick for cycles the monitor never displayed.
		cm.cycles += sink
	}
}

// CatchUp is called by the adapter immediately before a register write that
// must observe up-to-date CRTC/raster state mid-run (spec §4.1/§5: "catching
// up"). It ticks whole characters only, marking CRTC.CatchingUp throughout so
// deferred mode changes are suppressed, then the caller performs its register
// write, then resumes normal ticking. Pixels short of a full character tick
// are not ticked singly; they are carried in pendingPx to the next Run or
// CatchUp call.
func (cm *ClockManager) CatchUp(pixelsOwed int) {
	if pixelsOwed <= 0 {
		return
	}
	cm.crtc.CatchingUp = true
	defer func() { cm.crtc.CatchingUp = false }()

	pixelsPerChar := cm.divisor.pixelsFor()
	total := cm.pendingPx + pixelsOwed
	for total >= pixelsPerChar {
		cm.TickChar()
		total -= pixelsPerChar
		pixelsPerChar = cm.divisor.pixelsFor()
	}
	cm.pendingPx = total
}

// Cycles returns the total number of character ticks executed since
// construction or Reset, satisfying spec §8 invariant 6 when divided by the
// nominal character clock.
func (cm *ClockManager) Cycles() uint64 { return cm.cycles }

// Reset clears the accumulator and any pending divisor change, but does not
// touch the CRTC (the adapter calls CRTC.Reset separately).
func (cm *ClockManager) Reset() {
	cm.cycles = 0
	cm.pixelAcc = 0
	cm.pendingPx = 0
	cm.divisorPending = false
}
