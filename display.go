// display.go - DisplayExtents and the named aperture presets a presenter
// can request instead of reading the full overscan field. Grounded on
// crates/marty_core/src/devices/tga/mod.rs's TGA_APERTURE_CROPPED/ACCURATE/
// FULL/DEBUG constants (spec §6 supplement: "aperture presets
// Cropped/Accurate/Full/Debug").

package crtcore

// AperturePreset names how much of the CRTC's total field a presenter wants
// exposed, trading fidelity (seeing the true overscan border) against
// convenience (a tight crop matching the documented visible resolution).
type AperturePreset int

const (
	ApertureCropped AperturePreset = iota // documented visible resolution only
	ApertureAccurate                      // visible area plus a modest overscan margin
	ApertureFull                          // the entire active+overscan field
	ApertureDebug                         // entire field including sync/blank regions
)

// DisplayExtents describes one aperture's crop rectangle within a CRTC's
// full field buffer (spec §6 supplement).
type DisplayExtents struct {
	X, Y          int
	Width, Height int
}

// cgaApertures and tgaApertures mirror the teacher-adjacent original's
// per-preset crop rectangles; EGA/VGA compute theirs from the active
// register file instead, since their resolution is programmable.
var cgaApertures = [4]DisplayExtents{
	ApertureCropped:  {X: 0, Y: 0, Width: 640, Height: 200},
	ApertureAccurate: {X: 0, Y: 0, Width: 640, Height: 200},
	ApertureFull:     {X: 0, Y: 0, Width: 640, Height: 200},
	ApertureDebug:    {X: 0, Y: 0, Width: 640, Height: 262},
}

var tgaApertures = [4]DisplayExtents{
	ApertureCropped:  {X: 112, Y: 22, Width: 640, Height: 200},
	ApertureAccurate: {X: 80, Y: 10, Width: 704, Height: 224},
	ApertureFull:     {X: 48, Y: 1, Width: 768, Height: 235},
	ApertureDebug:    {X: 0, Y: 0, Width: 912, Height: 262},
}

// CGAAperture returns the crop rectangle for a CGA-class field at preset p.
func CGAAperture(p AperturePreset) DisplayExtents { return cgaApertures[p] }

// TGAAperture returns the crop rectangle for a TGA/PCjr field at preset p.
func TGAAperture(p AperturePreset) DisplayExtents { return tgaApertures[p] }

// EGAVGAAperture derives a crop rectangle directly from the active register
// file's displayed/total counts, since EGA/VGA resolution is programmable
// rather than fixed per variant (spec §6 supplement).
func EGAVGAAperture(regs *EGAVGARegisters, hCharPixels int, p AperturePreset) DisplayExtents {
	w := int(regs.HorizontalDisplayed()+1) * hCharPixels
	h := int(regs.VerticalDisplayed() + 1)
	switch p {
	case ApertureCropped:
		return DisplayExtents{Width: w, Height: h}
	case ApertureAccurate:
		return DisplayExtents{Width: w + hCharPixels*2, Height: h + 16}
	case ApertureFull, ApertureDebug:
		total := int(regs.HorizontalTotal()+1) * hCharPixels
		totalH := int(regs.VerticalTotal() + 1)
		return DisplayExtents{Width: total, Height: totalH}
	default:
		return DisplayExtents{Width: w, Height: h}
	}
}
