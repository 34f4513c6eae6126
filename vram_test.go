package crtcore

import "testing"

func TestFlatVRAMWrapsOnApertureMask(t *testing.T) {
	f := NewFlatVRAM(16) // mask = 15

	f.WriteByte(20, 0xAB) // 20 & 15 == 4
	if got := f.ReadByte(4); got != 0xAB {
		t.Errorf("ReadByte(4) = %#x, want 0xAB", got)
	}
	if got := f.ReadByte(20); got != 0xAB {
		t.Errorf("ReadByte(20) = %#x, want the mirrored byte at offset 4", got)
	}
	if f.Len() != 16 {
		t.Errorf("Len() = %d, want 16", f.Len())
	}
}

func TestTGAPageIndependentCRTAndCPUBases(t *testing.T) {
	ram := make([]uint8, 64*1024)
	p := NewTGAPage(ram, 0x8000)

	p.SetCRTBase(0x0000)
	p.SetCPUBase(0x8000)

	p.WriteCPU(5, 0x11)
	if got := ram[0x8000+5]; got != 0x11 {
		t.Errorf("WriteCPU did not land at cpuBase+addr: ram[0x8005] = %#x", got)
	}
	if got := p.ReadCRT(5); got != 0x00 {
		t.Errorf("ReadCRT(5) = %#x, want 0 (CRT and CPU pages are independent)", got)
	}

	ram[100] = 0x22
	if got := p.ReadCRT(100); got != 0x22 {
		t.Errorf("ReadCRT(100) = %#x, want 0x22 from crtBase=0", got)
	}
}

func TestPlanarVRAMReadByteLoadsAllLatchesAndSelectsPlane(t *testing.T) {
	v := NewPlanarVRAM(16)
	v.Plane(0)[5] = 0x11
	v.Plane(1)[5] = 0x22
	v.Plane(2)[5] = 0x33
	v.Plane(3)[5] = 0x44

	v.ReadMode = ReadSelectedPlane
	v.ReadMap = 2
	if got := v.ReadByte(5); got != 0x33 {
		t.Errorf("ReadByte(5) with ReadMap=2 = %#x, want 0x33", got)
	}
	// All four latches load regardless of which plane was selected.
	for i, want := range [4]uint8{0x11, 0x22, 0x33, 0x44} {
		if got := v.Latch(i); got != want {
			t.Errorf("Latch(%d) = %#x, want %#x", i, got, want)
		}
	}
}

func TestPlanarVRAMReadComparedPlanes(t *testing.T) {
	v := NewPlanarVRAM(16)
	v.Plane(0)[0] = 0xFF
	v.Plane(1)[0] = 0x00
	v.Plane(2)[0] = 0x00
	v.Plane(3)[0] = 0x00

	v.ReadMode = ReadComparedPlanes
	v.ColorCompare = 0x01
	v.ColorDontCare = 0x0F

	// Plane 0 set in every bit position produces pixel value 1 everywhere,
	// which matches ColorCompare=1 under a full-nibble don't-care mask.
	if got := v.ReadByte(0); got != 0xFF {
		t.Errorf("ReadByte(0) = %#x, want 0xFF (every bit matches ColorCompare)", got)
	}
}

func TestPlanarVRAMReadByteOutOfRangeReturnsOpenBus(t *testing.T) {
	v := NewPlanarVRAM(4)
	if got := v.ReadByte(10); got != 0xFF {
		t.Errorf("ReadByte(10) out of range = %#x, want 0xFF", got)
	}
}

func TestPlanarVRAMWriteMode0SetResetAllPlanes(t *testing.T) {
	v := NewPlanarVRAM(16)
	v.WriteMode = WriteMode0
	v.EnableSetReset = 0x0F
	v.SetReset = 0x05 // planes 0,2 forced set; planes 1,3 forced reset
	v.Function = ALUUnmodified
	v.BitMask = 0xFF
	v.MapMask = 0x0F

	v.WriteByte(0, 0x00)

	want := [4]uint8{0xFF, 0x00, 0xFF, 0x00}
	for i, w := range want {
		if got := v.Plane(i)[0]; got != w {
			t.Errorf("plane %d = %#x, want %#x", i, got, w)
		}
	}
}

func TestPlanarVRAMWriteMode0RotateAndMapMaskGating(t *testing.T) {
	v := NewPlanarVRAM(16)
	v.WriteMode = WriteMode0
	v.EnableSetReset = 0x00 // pass rotated data through on every plane
	v.Function = ALUUnmodified
	v.BitMask = 0xFF
	v.RotateCount = 1
	v.MapMask = 0x01 // only plane 0 is writable

	v.WriteByte(0, 0b0000_0001) // rotate right by 1 -> 0b1000_0000
	if got := v.Plane(0)[0]; got != 0b1000_0000 {
		t.Errorf("plane 0 = %#08b, want 10000000", got)
	}
	if got := v.Plane(1)[0]; got != 0x00 {
		t.Errorf("plane 1 = %#x, want 0 (MapMask excluded it)", got)
	}
}

func TestPlanarVRAMWriteMode1CopiesLatches(t *testing.T) {
	v := NewPlanarVRAM(16)
	v.Plane(0)[0] = 0xAA
	v.Plane(1)[0] = 0xBB
	v.Plane(2)[0] = 0xCC
	v.Plane(3)[0] = 0xDD

	v.ReadMode = ReadSelectedPlane
	v.ReadMap = 0
	v.ReadByte(0) // loads the latches from the current plane contents

	v.WriteMode = WriteMode1
	v.MapMask = 0x0F
	v.WriteByte(0, 0x00) // data is ignored in write mode 1

	want := [4]uint8{0xAA, 0xBB, 0xCC, 0xDD}
	for i, w := range want {
		if got := v.Plane(i)[0]; got != w {
			t.Errorf("plane %d = %#x, want latched %#x", i, got, w)
		}
	}
}

func TestPlanarVRAMWriteMode2PerPlaneBitFill(t *testing.T) {
	v := NewPlanarVRAM(16)
	for i := range 4 {
		v.Plane(i)[0] = 0xF0
	}
	v.WriteMode = WriteMode2
	v.BitMask = 0x0F
	v.MapMask = 0x0F

	// data bit 0 (plane 0) set, bit 1 (plane 1) clear.
	v.WriteByte(0, 0b0000_0001)

	if got := v.Plane(0)[0]; got != 0xFF {
		t.Errorf("plane 0 = %#x, want 0xFF (bit set, masked into low nibble)", got)
	}
	if got := v.Plane(1)[0]; got != 0xF0 {
		t.Errorf("plane 1 = %#x, want 0xF0 unchanged (bit clear)", got)
	}
}

func TestPlanarVRAMWriteMode3RotateAndSetReset(t *testing.T) {
	v := NewPlanarVRAM(16)
	v.Plane(0)[0] = 0xFF
	v.Plane(1)[0] = 0xFF

	v.WriteMode = WriteMode3
	v.RotateCount = 0
	v.BitMask = 0x0F
	v.SetReset = 0x01 // plane 0 fills with 1s under the mask, plane 1 with 0s
	v.MapMask = 0x03

	v.WriteByte(0, 0xFF)

	if got := v.Plane(0)[0]; got != 0xFF {
		t.Errorf("plane 0 = %#x, want 0xFF (low nibble already 1s, set fills with 1s)", got)
	}
	if got := v.Plane(1)[0]; got != 0xF0 {
		t.Errorf("plane 1 = %#x, want 0xF0 (low nibble reset to 0s under mask)", got)
	}
}

func TestPlanarVRAMWriteByteOutOfRangeIsNoOp(t *testing.T) {
	v := NewPlanarVRAM(4)
	v.WriteMode = WriteMode1
	v.MapMask = 0x0F
	v.WriteByte(100, 0xFF) // must not panic
}

func TestRotateRight8(t *testing.T) {
	cases := []struct {
		b, count, want uint8
	}{
		{0b0000_0001, 1, 0b1000_0000},
		{0b1000_0000, 1, 0b0100_0000},
		{0xFF, 4, 0xFF},
		{0b0000_0001, 0, 0b0000_0001},
		{0b0000_0001, 8, 0b0000_0001}, // count masked to 0-7
	}
	for _, c := range cases {
		if got := rotateRight8(c.b, c.count); got != c.want {
			t.Errorf("rotateRight8(%#08b, %d) = %#08b, want %#08b", c.b, c.count, got, c.want)
		}
	}
}
