// crtc_registers.go - CRTCRegisters: the accessor surface the shared CRTC
// state machine reads each character tick. CGA/TGA's 6845-style 18-register
// file and EGA/VGA's extended 25-register file (with 9-bit composites pulled
// from the Overflow register) both implement this interface, so CRTC itself
// is "a reusable component embedded in each adapter, not inherited" per
// spec.md §9's redesign note.

package crtcore

// CRTCRegisters exposes the timing-relevant fields of a CRTC-compatible
// register file. Widths vary by variant (7-bit on 6845/CGA/TGA, 9-bit on
// EGA/VGA for VT/VR/VD/VSB/VRS/LC per spec §3); callers already apply the
// per-variant mask, so CRTC itself only ever sees fully composed values.
type CRTCRegisters interface {
	HorizontalTotal() uint16     // R0
	HorizontalDisplayed() uint16 // R1
	HorizontalSyncPos() uint16   // R2
	SyncWidth() uint8            // R3 (horizontal sync width)
	VerticalTotal() uint16       // R4
	VerticalTotalAdjust() uint8  // R5
	VerticalDisplayed() uint16   // R6
	VerticalSyncPos() uint16     // R7
	MaximumScanline() uint8      // R9
	CursorStart() uint8          // R10 bits 0-4
	CursorEnd() uint8            // R11 bits 0-4
	CursorBlinkMode() uint8      // R10 bits 5-6 (00 steady, 01 off, 10 fast, 11 slow)
	StartAddress() uint16        // R12/R13
	CursorAddress() uint16       // R14/R15
}
