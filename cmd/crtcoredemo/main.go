// Command crtcoredemo is a minimal construction-and-run smoke test for the
// crtcore package, mirroring the teacher repo's cmd/ie32to64: not a
// presenter, just enough wiring to prove an adapter boots, accepts a mode
// set, and produces a non-blank frame.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/crtcore/crtcore"
)

func main() {
	variant := flag.String("variant", "cga", "adapter variant: cga, tga, pcjr, ega, vga")
	frames := flag.Int("frames", 2, "number of frames to run before dumping state")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	adapter, pixelsPerFrame := buildAdapter(*variant, logger)
	if adapter == nil {
		fmt.Fprintf(os.Stderr, "unknown variant %q\n", *variant)
		os.Exit(1)
	}

	writeSampleText(adapter)

	for f := 0; f < *frames; f++ {
		adapter.Run(pixelsPerFrame)
	}

	buf, stride := adapter.GetDisplayBuf()
	nonZero := 0
	for _, b := range buf {
		if b != 0 {
			nonZero++
		}
	}

	fmt.Printf("%s\n", adapter.StateDump())
	fmt.Printf("display buffer: stride=%d len=%d non-zero pixels=%d\n", stride, len(buf), nonZero)
	for _, region := range adapter.MemoryMap() {
		fmt.Printf("memory region: %s base=0x%05X size=0x%X cycleCost=%d\n",
			region.Name, region.Base, region.Size, region.CycleCost)
	}
}

// buildAdapter constructs the requested variant with enough register
// programming to reach an active text-mode display, and returns a pixel
// budget covering one full frame's worth of character ticks.
func buildAdapter(variant string, logger *slog.Logger) (crtcore.Adapter, int) {
	switch variant {
	case "cga":
		c := crtcore.NewCGA(logger, nil)
		programCGA80x25(c)
		return c, 238_944 // one NTSC-ish frame's worth of CGA pixel clocks
	case "tga":
		ram := make([]uint8, 128*1024)
		t := crtcore.NewTGA(crtcore.TGATandy, ram, logger, nil)
		programCGA80x25(t)
		return t, 238_944
	case "pcjr":
		ram := make([]uint8, 128*1024)
		t := crtcore.NewTGA(crtcore.TGAPCjr, ram, logger, nil)
		programCGA80x25(t)
		return t, 238_944
	case "ega":
		e := crtcore.NewEGA(logger, nil)
		programEGAVGA80x25(e)
		return e, 400_000
	case "vga":
		v := crtcore.NewVGA(logger, nil)
		programEGAVGA80x25(v)
		return v, 400_000
	default:
		return nil, 0
	}
}

// portWriter is the subset of Adapter this demo needs to program registers;
// CGA and TGA both satisfy it.
type portWriter interface {
	WritePort(port uint16, value uint8)
	WriteMem(addr uint32, value uint8)
}

// programCGA80x25 sets up the classic 80x25 16-color text mode (mode 3) on a
// CGA-compatible port map, the same register sequence IBM's BIOS int 10h/
// ah=0 performs for that mode.
func programCGA80x25(a portWriter) {
	const (
		crtcIndex = 0x3D4
		crtcData  = 0x3D5
		modePort  = 0x3D8
		ccPort    = 0x3D9
	)
	regs := []uint8{0x71, 0x50, 0x5A, 0x0A, 0x1F, 0x06, 0x19, 0x1C, 0x02, 0x07, 0x06, 0x07, 0x00, 0x00, 0x00, 0x00}
	for i, v := range regs {
		a.WritePort(crtcIndex, uint8(i))
		a.WritePort(crtcData, v)
	}
	a.WritePort(modePort, 0x29) // hi-res text, video enable, blink
	a.WritePort(ccPort, 0x30)   // black border; palette and bright bits set
}

// programEGAVGA80x25 is the EGA/VGA-equivalent register sequence for an
// 80x25 16-color text mode; the adapters draw each character cell 8 pixels
// wide.
func programEGAVGA80x25(a portWriter) {
	const (
		crtcIndex = 0x3D4
		crtcData  = 0x3D5
		attrPort  = 0x3C0
		gcIndex   = 0x3CE
		gcData    = 0x3CF
	)
	regs := []uint8{
		0x5F, 0x4F, 0x50, 0x82, 0x55, 0x81, 0xBF, 0x1F,
		0x00, 0x4F, 0x0D, 0x0E, 0x00, 0x00, 0x00, 0x00,
		0x9C, 0x8E, 0x8F, 0x28, 0x1F, 0x96, 0xB9, 0xA3, 0xFF,
	}
	for i, v := range regs {
		a.WritePort(crtcIndex, uint8(i))
		a.WritePort(crtcData, v)
	}
	// Graphics Controller Miscellaneous register: bit 0 = 0 selects text mode.
	a.WritePort(gcIndex, 0x06)
	a.WritePort(gcData, 0x00)
	// Attribute Controller: 16 identity palette registers, then mode control
	// (bit 0 = 0 is alphanumeric) to flip the index/data flip-flop closed.
	for i := uint8(0); i < 16; i++ {
		a.WritePort(attrPort, i)
		a.WritePort(attrPort, i)
	}
	a.WritePort(attrPort, 0x10)
	a.WritePort(attrPort, 0x00)
}

// writeSampleText fills the visible text page with a readable banner so a
// human checking the demo's non-zero-pixel count can trust it reflects real
// glyph coverage, not border fill alone.
func writeSampleText(a portWriter) {
	msg := "HELLO CRTCORE"
	for i, ch := range []byte(msg) {
		a.WriteMem(uint32(i*2), ch)
		a.WriteMem(uint32(i*2+1), 0x0F) // white on black
	}
}
