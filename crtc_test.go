package crtcore

import "testing"

func TestCRTCCursorActiveSimple(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	regs.SelectIndex(R9MaximumScanline)
	regs.WriteData(7)
	regs.SelectIndex(R10CursorStart)
	regs.WriteData(6)
	regs.SelectIndex(R11CursorEnd)
	regs.WriteData(7)

	crtc := NewCRTC(CRTCConfig{FieldWidth: 640, FieldHeight: 200, HCharPixels: 8}, regs, diag)
	crtc.CursorEnabled = true
	crtc.BlinkState = true
	crtc.vma = 0

	for vlc := uint8(0); vlc < 8; vlc++ {
		crtc.vlc = vlc
		want := vlc >= 6 && vlc <= 7
		if got := crtc.CursorActive(); got != want {
			t.Errorf("vlc=%d: CursorActive()=%v, want %v", vlc, got, want)
		}
	}
}

func TestCRTCCursorActiveSplit(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	regs.SelectIndex(R9MaximumScanline)
	regs.WriteData(7)
	regs.SelectIndex(R10CursorStart)
	regs.WriteData(6)
	regs.SelectIndex(R11CursorEnd)
	regs.WriteData(2) // End < Start: split cursor covers [0..2] U [6..max]

	crtc := NewCRTC(CRTCConfig{FieldWidth: 640, FieldHeight: 200, HCharPixels: 8}, regs, diag)
	crtc.CursorEnabled = true
	crtc.BlinkState = true

	for vlc := uint8(0); vlc < 8; vlc++ {
		crtc.vlc = vlc
		want := vlc <= 2 || vlc >= 6
		if got := crtc.CursorActive(); got != want {
			t.Errorf("vlc=%d: CursorActive()=%v, want %v", vlc, got, want)
		}
	}
}

func TestCRTCCursorActiveRequiresBlinkAndEnable(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	regs.SelectIndex(R9MaximumScanline)
	regs.WriteData(7)
	regs.SelectIndex(R10CursorStart)
	regs.WriteData(0)
	regs.SelectIndex(R11CursorEnd)
	regs.WriteData(7)

	crtc := NewCRTC(CRTCConfig{FieldWidth: 640, FieldHeight: 200, HCharPixels: 8}, regs, diag)
	crtc.vlc = 0

	crtc.CursorEnabled = false
	crtc.BlinkState = true
	if crtc.CursorActive() {
		t.Errorf("cursor disabled but CursorActive() returned true")
	}

	crtc.CursorEnabled = true
	crtc.BlinkState = false
	if crtc.CursorActive() {
		t.Errorf("blink off but CursorActive() returned true")
	}
}

func TestCRTCCursorActiveDisabledWhenStartBeyondMaxScanline(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	regs.SelectIndex(R9MaximumScanline)
	regs.WriteData(3)
	regs.SelectIndex(R10CursorStart)
	regs.WriteData(5) // Start > MaximumScanline disables the cursor entirely
	regs.SelectIndex(R11CursorEnd)
	regs.WriteData(7)

	crtc := NewCRTC(CRTCConfig{FieldWidth: 640, FieldHeight: 200, HCharPixels: 8}, regs, diag)
	crtc.CursorEnabled = true
	crtc.BlinkState = true

	for vlc := uint8(0); vlc < 4; vlc++ {
		crtc.vlc = vlc
		if crtc.CursorActive() {
			t.Errorf("vlc=%d: expected cursor disabled (Start > MaximumScanline)", vlc)
		}
	}
}

func TestCRTCResetPreservesRegsAndConfig(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	crtc := NewCRTC(CRTCConfig{FieldWidth: 640, FieldHeight: 200, HCharPixels: 8}, regs, diag)

	crtc.FrameCount = 7
	crtc.vma = 42
	crtc.InDisplayArea = false

	crtc.Reset()

	if crtc.FrameCount != 0 {
		t.Errorf("FrameCount = %d, want 0 after Reset", crtc.FrameCount)
	}
	if crtc.vma != 0 {
		t.Errorf("vma = %d, want 0 after Reset", crtc.vma)
	}
	if !crtc.InDisplayArea {
		t.Errorf("InDisplayArea = false, want true after Reset (power-up default)")
	}
	if crtc.regs != CRTCRegisters(regs) {
		t.Errorf("Reset replaced the register-file reference instead of preserving it")
	}
	if crtc.cfg.FieldWidth != 640 {
		t.Errorf("Reset discarded cfg.FieldWidth")
	}
}

// TestCRTCHorizontalWrap drives a minimal 4-char-wide field through exactly
// one scanline and checks hcc wraps back to 0 at HorizontalTotal+1 ticks.
func TestCRTCHorizontalWrap(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	regs.SelectIndex(R0HorizontalTotal)
	regs.WriteData(3)
	regs.SelectIndex(R1HorizontalDisplayed)
	regs.WriteData(2)
	regs.SelectIndex(R2HorizontalSyncPos)
	regs.WriteData(2)
	regs.SelectIndex(R3SyncWidth)
	regs.WriteData(1)
	regs.SelectIndex(R4VerticalTotal)
	regs.WriteData(200)
	regs.SelectIndex(R6VerticalDisplayed)
	regs.WriteData(100)
	regs.SelectIndex(R7VerticalSyncPos)
	regs.WriteData(150)

	crtc := NewCRTC(CRTCConfig{FieldWidth: 64, FieldHeight: 64, HCharPixels: 8}, regs, diag)

	var lastHsync bool
	for i := 0; i < 4; i++ {
		res := crtc.Tick()
		if res.HsyncBoundary {
			lastHsync = true
		}
	}
	if crtc.hcc != 0 {
		t.Errorf("hcc = %d, want 0 after HorizontalTotal+1 ticks", crtc.hcc)
	}
	if !lastHsync {
		t.Errorf("expected an HsyncBoundary within one scanline's ticks")
	}
}

func TestCRTCDoVsyncGatesOnMonitorMin(t *testing.T) {
	diag := newDiagnostics(nil)
	regs := NewCRTC6845Registers(diag)
	crtc := NewCRTC(CRTCConfig{FieldWidth: 64, FieldHeight: 64, HCharPixels: 8, MonitorVsyncMin: 100}, regs, diag)

	crtc.BeamY = 10 // below MonitorVsyncMin
	if crtc.doVsync() {
		t.Errorf("doVsync() accepted a frame below MonitorVsyncMin")
	}
	if crtc.FrameCount != 0 {
		t.Errorf("FrameCount advanced despite a gated vsync")
	}

	crtc.BeamY = 150 // above MonitorVsyncMin
	if !crtc.doVsync() {
		t.Errorf("doVsync() rejected a frame above MonitorVsyncMin")
	}
	if crtc.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1 after an accepted vsync", crtc.FrameCount)
	}
	if crtc.BeamX != 0 || crtc.BeamY != 0 {
		t.Errorf("accepted vsync did not reset the beam position")
	}
}
