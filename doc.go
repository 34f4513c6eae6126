/*
Package crtcore implements the CRT Controller (MC6845-compatible) state
machine and raster pipeline shared by the IBM PC character-display
adapters: CGA, Tandy/PCjr TGA, EGA and VGA.

The package is the display "core" only. Bus dispatch, DMA/PIC/PIT/FDC
devices, ROM loading, audio, input and presentation are external
collaborators — callers drive an Adapter through its port/memory
read-write surface and a periodic Run call, then read the resulting
framebuffer off GetDisplayBuf.

Signal flow: host bus -> RegisterFile (port writes) / VRAM (memory
writes) -> CRTC + ClockManager advance one character tick at a time ->
RasterEngine consumes CRTC flags and VRAM to paint the back buffer ->
on vsync exit, DoubleBuffer swaps and the host calls GetDisplayBuf.
*/
package crtcore
