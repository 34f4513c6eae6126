// vram.go - the VRAM aperture view each adapter exposes to its host bus.
// CGA/TGA alias a flat byte buffer; EGA/VGA present four bit-planes behind a
// latch-and-ALU pipeline. Grounded on original_source/src/devices/ega/mod.rs
// and core/src/devices/vga/mod.rs's MemoryMappedDevice::read_u8/write_u8
// (Rust), and on video_vga.go's HandleVRAMRead/HandleVRAMWrite for the
// teacher's Go idiom (offset bounds-check, then an explicit mode switch).

package crtcore

// ReadMode selects how a planar VRAM read resolves to one byte (spec §3
// Graphics Controller Mode register bit 3).
type ReadMode uint8

const (
	ReadSelectedPlane  ReadMode = 0 // byte comes straight from ReadMapSelect's plane
	ReadComparedPlanes ReadMode = 1 // byte is a per-pixel Color Compare/Don't Care bitmask
)

// WriteMode selects the planar write pipeline (spec §3 Graphics Controller
// Mode register bits 0-1).
type WriteMode uint8

const (
	WriteMode0 WriteMode = 0 // rotate -> set/reset -> ALU function -> bit mask -> map mask
	WriteMode1 WriteMode = 1 // latch-to-plane copy (block fill via a prior read)
	WriteMode2 WriteMode = 2 // one bit per plane from the CPU byte, masked
	WriteMode3 WriteMode = 3 // rotate & bit mask -> set/reset fill, masked
)

// ALUFunction is the Data Rotate register's logical-operation field (spec §3).
type ALUFunction uint8

const (
	ALUUnmodified ALUFunction = 0
	ALUAnd        ALUFunction = 1
	ALUOr         ALUFunction = 2
	ALUXor        ALUFunction = 3
)

// FlatVRAM is the CGA/TGA-style single linear buffer with a power-of-two
// aperture mask, used both for CGA's fixed 16KiB window and TGA/PCjr's
// windowed alias into host RAM (spec §3: "CGA: 16KiB ... TGA/PCjr: windowed
// aperture into a larger host RAM pool").
type FlatVRAM struct {
	buf  []uint8
	mask uint32 // buf size - 1; buf size must be a power of two
}

// NewFlatVRAM allocates a buffer of size bytes (must be a power of two).
func NewFlatVRAM(size int) *FlatVRAM {
	return &FlatVRAM{buf: make([]uint8, size), mask: uint32(size - 1)}
}

// ReadByte returns the byte at addr, wrapping via the aperture mask (spec
// §3: CGA mirrors its 16KiB buffer across the full 32KiB B800 segment).
func (f *FlatVRAM) ReadByte(addr uint32) uint8 {
	return f.buf[addr&f.mask]
}

// WriteByte writes the byte at addr, wrapping via the aperture mask.
func (f *FlatVRAM) WriteByte(addr uint32, v uint8) {
	f.buf[addr&f.mask] = v
}

// Len returns the buffer's real (unmirrored) size.
func (f *FlatVRAM) Len() int { return len(f.buf) }

// TGAPage lets a PCjr/Tandy adapter alias its host-RAM aperture window to
// different base offsets for the CRT reader and the CPU writer, since the
// 160x200 16-color mode doubles up two halves of the 32KiB window (spec §3
// TGA supplement: "CRT page and CPU page may differ").
type TGAPage struct {
	ram       []uint8 // shared host RAM backing store, not owned by this view
	crtBase   uint32  // byte offset the CRTC's vma is added to
	cpuBase   uint32  // byte offset CPU port/mmio accesses are added to
	windowLen uint32  // aperture size in bytes (power of two)
}

// NewTGAPage creates a view over ram's window of windowLen bytes.
func NewTGAPage(ram []uint8, windowLen uint32) *TGAPage {
	return &TGAPage{ram: ram, windowLen: windowLen}
}

// SetCRTBase and SetCPUBase relocate the CRT/CPU page independently (spec §3
// supplement): a demo can point the CRTC reader at one 16KiB half of RAM
// while the CPU continues writing the other.
func (p *TGAPage) SetCRTBase(base uint32)  { p.crtBase = base }
func (p *TGAPage) SetCPUBase(base uint32)  { p.cpuBase = base }

// ReadCRT reads a byte the CRTC sees at vma (masked into the CRT page).
func (p *TGAPage) ReadCRT(vma uint32) uint8 {
	off := (p.crtBase + vma%p.windowLen) % uint32(len(p.ram))
	return p.ram[off]
}

// ReadCPU and WriteCPU service the CPU-visible port/mmio window.
func (p *TGAPage) ReadCPU(addr uint32) uint8 {
	off := (p.cpuBase + addr%p.windowLen) % uint32(len(p.ram))
	return p.ram[off]
}

func (p *TGAPage) WriteCPU(addr uint32, v uint8) {
	off := (p.cpuBase + addr%p.windowLen) % uint32(len(p.ram))
	p.ram[off] = v
}

// PlanarVRAM is the EGA/VGA four-bit-plane view with the full latch/ALU
// write pipeline and two-mode read path (spec §3 "four-plane VRAM with
// latches"). One instance is shared by all four planes; aperture bounds
// checking (address range, odd/even vs chain-4 addressing) is the adapter's
// job — PlanarVRAM only ever sees an already-validated plane-relative offset.
type PlanarVRAM struct {
	planes    [4][]uint8
	latch     [4]uint8
	planeSize uint32

	// Register-file-sourced pipeline inputs, refreshed by the adapter
	// before each access from its Graphics Controller/Sequencer state.
	ReadMap        uint8 // Read Map Select, 2 bits
	ReadMode       ReadMode
	WriteMode      WriteMode
	SetReset       uint8 // 4 bits, one per plane
	EnableSetReset uint8 // 4 bits, one per plane
	RotateCount    uint8 // 0-7
	Function       ALUFunction
	BitMask        uint8
	MapMask        uint8 // Sequencer Map Mask, 4 bits, one per plane
	ColorCompare   uint8
	ColorDontCare  uint8
}

// NewPlanarVRAM allocates four planes of planeSize bytes each.
func NewPlanarVRAM(planeSize int) *PlanarVRAM {
	p := &PlanarVRAM{planeSize: uint32(planeSize)}
	for i := range p.planes {
		p.planes[i] = make([]uint8, planeSize)
	}
	return p
}

// Plane returns plane i's backing buffer, for chain-4/direct-color adapters
// (VGA mode 13h) that bypass the latch pipeline entirely.
func (p *PlanarVRAM) Plane(i int) []uint8 { return p.planes[i] }

// Latch returns the byte last loaded into plane i's read latch.
func (p *PlanarVRAM) Latch(i int) uint8 { return p.latch[i] }

func rotateRight8(b uint8, count uint8) uint8 {
	count &= 7
	return b>>count | b<<(8-count)
}

// ReadByte implements spec §3's two read modes, always loading all four
// latches first regardless of which plane or mode is selected (ega/mod.rs
// read_u8: "Load all the latches regardless of selected plane").
func (p *PlanarVRAM) ReadByte(offset uint32) uint8 {
	if offset >= p.planeSize {
		return 0xFF // open bus
	}
	for i := range p.planes {
		p.latch[i] = p.planes[i][offset]
	}

	switch p.ReadMode {
	case ReadSelectedPlane:
		return p.planes[p.ReadMap&3][offset]
	case ReadComparedPlanes:
		var result uint8
		for bit := range 8 {
			var pixel uint8
			for plane := range 4 {
				if p.latch[plane]&(0x80>>uint(bit)) != 0 {
					pixel |= 1 << uint(plane)
				}
			}
			care := p.ColorDontCare
			if pixel&care == p.ColorCompare&care {
				result |= 0x80 >> uint(bit)
			}
		}
		return result
	default:
		return 0
	}
}

// WriteByte implements spec §3's four write-mode pipelines (ega/mod.rs and
// vga/mod.rs write_u8, WriteMode0 through WriteMode3).
func (p *PlanarVRAM) WriteByte(offset uint32, data uint8) {
	if offset >= p.planeSize {
		return
	}

	switch p.WriteMode {
	case WriteMode0:
		rotated := rotateRight8(data, p.RotateCount)
		var pipeline [4]uint8
		for i := range 4 {
			if p.EnableSetReset&(1<<uint(i)) != 0 {
				if p.SetReset&(1<<uint(i)) != 0 {
					pipeline[i] = 0xFF
				} else {
					pipeline[i] = 0x00
				}
			} else {
				pipeline[i] = rotated
			}
		}
		for i := range 4 {
			switch p.Function {
			case ALUUnmodified:
				pipeline[i] = (pipeline[i] & p.BitMask) | (^p.BitMask & p.latch[i])
			case ALUAnd:
				pipeline[i] = (pipeline[i] | ^p.BitMask) & p.latch[i]
			case ALUOr:
				pipeline[i] = (pipeline[i] & p.BitMask) | p.latch[i]
			case ALUXor:
				pipeline[i] = (pipeline[i] & p.BitMask) ^ p.latch[i]
			}
		}
		for i := range 4 {
			if p.MapMask&(1<<uint(i)) != 0 {
				p.planes[i][offset] = pipeline[i]
			}
		}

	case WriteMode1:
		for i := range 4 {
			if p.MapMask&(1<<uint(i)) != 0 {
				p.planes[i][offset] = p.latch[i]
			}
		}

	case WriteMode2:
		for i := range 4 {
			if p.MapMask&(1<<uint(i)) == 0 {
				continue
			}
			var span uint8
			if data&(1<<uint(i)) != 0 {
				span = 0xFF
			}
			cur := p.planes[i][offset] &^ p.BitMask
			p.planes[i][offset] = cur | (span & p.BitMask)
		}

	case WriteMode3:
		rotated := rotateRight8(data, p.RotateCount)
		mask := rotated & p.BitMask
		for i := range 4 {
			if p.MapMask&(1<<uint(i)) == 0 {
				continue
			}
			var allBits uint8
			if p.SetReset&(1<<uint(i)) != 0 {
				allBits = 0xFF
			}
			p.planes[i][offset] = (p.planes[i][offset] &^ mask) | (allBits & mask)
		}
	}
}
