package crtcore

import "testing"

func TestDoubleBufferBackIsNotFront(t *testing.T) {
	d := NewDoubleBuffer(8, 4)
	if &d.Back()[0] == &d.Front()[0] {
		t.Errorf("Back() and Front() point at the same buffer before any Swap")
	}
}

func TestDoubleBufferSwapExposesWrittenBuffer(t *testing.T) {
	d := NewDoubleBuffer(8, 4)
	back := d.Back()
	back[3] = 0x42

	d.Swap()

	front := d.Front()
	if front[3] != 0x42 {
		t.Errorf("Front()[3] = %#x after Swap, want 0x42", front[3])
	}
}

func TestDoubleBufferSwapClearsNewBackBuffer(t *testing.T) {
	d := NewDoubleBuffer(8, 4)
	d.Back()[0] = 0xFF
	d.Swap() // buffer with 0xFF is now front; the other becomes back

	stale := d.Back()
	stale[0] = 0x11 // dirty it so the next Swap must clear it
	d.Swap()        // the 0xFF buffer becomes back again and must be cleared

	back := d.Back()
	for i, v := range back {
		if v != 0 {
			t.Fatalf("Back()[%d] = %#x after Swap, want 0 (stale pixels from two frames ago)", i, v)
		}
	}
}

func TestDoubleBufferStrideAndHeight(t *testing.T) {
	d := NewDoubleBuffer(640, 200)
	if d.Stride() != 640 {
		t.Errorf("Stride() = %d, want 640", d.Stride())
	}
	if d.Height() != 200 {
		t.Errorf("Height() = %d, want 200", d.Height())
	}
	if len(d.Front()) != 640*200 {
		t.Errorf("len(Front()) = %d, want %d", len(d.Front()), 640*200)
	}
}
