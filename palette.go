// palette.go - PaletteTables: precomputed spans for RasterEngine's fast text
// blit path, and the CGA Color Control register's palette-selection logic.
// Grounded on video_vga.go's paletteU32/CGA_COLORS_U64-style cache (there
// expanding to 32-bit RGBA; here to 8-bit palette-index spans since
// DoubleBuffer stores palette indices, not RGBA) and on
// original_source/src/cga.rs's get_cga_palette for the six-way palette
// decode exercised by scenario (c) in spec.md §9.

package crtcore

// spanU64 repeats a single palette-index byte eight times, giving RasterEngine
// a one-store 8-pixel fill (spec §2: "CGA_COLORS_U64[c] = 0x0101...01 × c").
func spanU64(index uint8) uint64 {
	b := uint64(index)
	b |= b << 8
	b |= b << 16
	b |= b << 32
	return b
}

// colorSpans precomputes spanU64 for every possible palette index (covers
// the 4-bit CGA/EGA attribute range and the full 8-bit VGA DAC range).
var colorSpans [256]uint64

func init() {
	for i := range colorSpans {
		colorSpans[i] = spanU64(uint8(i))
	}
}

// glyphMask64 expands one glyph scanline's 8 bits into an 8-byte mask —
// 0xFF where the bit is set, 0x00 where clear — so a single
// (mask&fg)|(^mask&bg) produces 8 finished text pixels in one register op
// (spec §4.3 "HIRES_GLYPH_TABLE[ch][row] -> 64-bit mask").
func glyphMask64(row uint8) uint64 {
	var mask uint64
	for bit := range 8 {
		if row&(0x80>>uint(bit)) != 0 {
			mask |= 0xFF << uint(bit*8)
		}
	}
	return mask
}

// glyphMask64Lowres expands one glyph scanline into two 8-byte masks
// representing 16 double-width pixels, the low-res (clock-divisor 2) analog
// of glyphMask64 (spec §4.3 "LOWRES_GLYPH_TABLE[ch][half][row]").
func glyphMask64Lowres(row uint8) (lo, hi uint64) {
	for bit := range 4 {
		if row&(0x80>>uint(bit)) != 0 {
			lo |= 0xFFFF << uint(bit*16)
		}
	}
	for bit := 4; bit < 8; bit++ {
		if row&(0x80>>uint(bit)) != 0 {
			hi |= 0xFFFF << uint((bit-4)*16)
		}
	}
	return lo, hi
}

// CGAPaletteKind names the four CGA 4-color graphics palettes a presenter
// might want to label (spec §6: get_cga_palette() -> (PaletteKind, bright)).
type CGAPaletteKind int

const (
	PaletteRedGreenYellow CGAPaletteKind = iota
	PaletteMagentaCyanWhite
	PaletteRedCyanWhite
	PaletteMonochrome
)

// CGAFourColorPalette resolves the 00/01/10/11 pixel values of a 4-color
// (2bpp) CGA/TGA graphics mode to 16-color palette indices, given the Mode
// register's b/w and hi-res-graphics bits and the Color Control register's
// alt-color/palette-select/bright-select fields (spec §3 Mode byte / Color
// Control rows). Six distinct palettes are reachable, matching spec §3's
// "palette index derived from (mode_bw, palette_bit, bright_bit) ∈ {0..5}":
// two forced-bw variants (bright on/off) plus two palette-bit variants each
// with two bright variants.
func CGAFourColorPalette(altColor uint8, paletteBit, brightBit, modeBW, hiresGfx bool) ([4]uint8, CGAPaletteKind) {
	bg := altColor & 0x0F
	bright := uint8(0)
	if brightBit {
		bright = 8
	}

	if hiresGfx {
		// 1bpp hi-res graphics forces a monochrome (0/alt-color) palette;
		// the spec's "in hires-graphics mode, overscan must be black (0)"
		// invariant is enforced by CGARegisters, which forces OverscanColor
		// to 0, not here.
		return [4]uint8{0, bg, bg, bg}, PaletteMonochrome
	}

	if modeBW {
		// "Hidden" palette: the b/w mode bit forces Red/Cyan/White
		// regardless of the Color Control palette-select bit.
		return [4]uint8{bg, 4 + bright, 3 + bright, 7 + bright}, PaletteRedCyanWhite
	}
	if paletteBit {
		return [4]uint8{bg, 3 + bright, 5 + bright, 7 + bright}, PaletteMagentaCyanWhite
	}
	return [4]uint8{bg, 2 + bright, 4 + bright, 6 + bright}, PaletteRedGreenYellow
}

// CGA16RGB is the standard 16-color CGA/EGA/VGA text-mode RGB reference
// palette (6-bit DAC-style components), used by presenters that need to
// turn a palette index into RGB; the core never converts palette indices to
// RGB itself (spec §6: "conversion to RGBA is the host's job").
var CGA16RGB = [16][3]uint8{
	{0, 0, 0}, {0, 0, 42}, {0, 42, 0}, {0, 42, 42},
	{42, 0, 0}, {42, 0, 42}, {42, 21, 0}, {42, 42, 42},
	{21, 21, 21}, {21, 21, 63}, {21, 63, 21}, {21, 63, 63},
	{63, 21, 21}, {63, 21, 63}, {63, 63, 21}, {63, 63, 63},
}
