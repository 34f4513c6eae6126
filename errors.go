// errors.go - diagnostic sink and the small internal error taxonomy for crtcore.

package crtcore

import "log/slog"

// diagnostics wraps the logger every adapter is handed at construction.
// A nil logger falls back to slog.Default() so callers never need a nil
// check before passing one in.
type diagnostics struct {
	log *slog.Logger
}

func newDiagnostics(logger *slog.Logger) diagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return diagnostics{log: logger}
}

// invalidRegisterIndex logs the "CRTC index > 0x11" condition (spec §7).
// The caller is responsible for resetting the selected index to 0.
func (d diagnostics) invalidRegisterIndex(index uint8) {
	d.log.Warn("crtcore: invalid CRTC register index, resetting to 0",
		slog.Int("index", int(index)))
}

// unsupportedMode logs the "mode byte decodes to no known DisplayMode"
// condition (spec §7). Caller falls back to mode 3.
func (d diagnostics) unsupportedMode(mode uint8) {
	d.log.Warn("crtcore: unsupported mode byte, defaulting to 80x25 text",
		slog.Int("mode", int(mode)))
}

// phaseViolation logs a tick_char invocation out of phase with char_clock.
func (d diagnostics) phaseViolation(cycles uint64, charClock uint64) {
	d.log.Error("crtcore: tick_char phase violation",
		slog.Uint64("cycles", cycles), slog.Uint64("char_clock", charClock))
}

// writeProtected logs an ignored write to a protected CRTC register.
func (d diagnostics) writeProtected(index uint8) {
	d.log.Warn("crtcore: write to protected CRTC register ignored",
		slog.Int("index", int(index)))
}

// excessiveFrame logs a frame whose cycle count looks like a runaway CRTC
// program (vertical total rewritten without ever reaching vsync).
func (d diagnostics) excessiveFrame(cycles uint64, beamY int) {
	d.log.Warn("crtcore: excessively long frame",
		slog.Uint64("cycles", cycles), slog.Int("beam_y", beamY))
}
