// irq.go - the PIC collaborator interface adapters use to raise a vsync
// interrupt (TGA/PCjr only; CGA/EGA/VGA never drive an IRQ line on real
// hardware). Grounded on spec §9's "the core accepts a bus reference only
// for the duration of one call" rule: adapters are handed an IRQLine at
// construction and call it, never holding a PIC reference beyond that.

package crtcore

// nullIRQ is used when a caller passes a nil IRQLine, so adapters never
// need a nil check before calling Raise/Lower.
type nullIRQ struct{}

func (nullIRQ) Raise(int) {}
func (nullIRQ) Lower(int) {}

func orNullIRQ(irq IRQLine) IRQLine {
	if irq == nil {
		return nullIRQ{}
	}
	return irq
}

// TGAIRQLine is the IRQ number the Tandy/PCjr video subsystem raises at
// vsync (spec §3 TGA supplement).
const TGAIRQLine = 5
