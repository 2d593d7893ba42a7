// Package mem implements the CPU-side address bus: RAM mirroring, the
// stubbed PPU/APU/test-mode register windows, and the cartridge port.
//
//	CPU     MEM     APU     CART
//	 |       |       |       |
//	 |       |0000   |4000   |4020
//	 |       |07ff   |4017   |ffff
//	 |------------------------------------ BUS
package mem

import (
	"nes6502/cartridge"
	"nes6502/mask"
)

const (
	ramSize   = 2 * 1024
	ramMirror = ramSize - 1 // 0x07ff

	ramMin = 0x0000
	ramMax = 0x1fff

	ppuMin = 0x2000
	ppuMax = 0x3fff

	apuMin = 0x4000
	apuMax = 0x4017

	testModeMin = 0x4018
	testModeMax = 0x401f

	cartMin = 0x4020
	cartMax = 0xffff
)

// Bus arbitrates the 16-bit CPU address space across RAM, the cartridge,
// and the (stubbed, out-of-scope) PPU/APU register windows.
//
// A Bus is held exclusively by its Cpu for the duration of one
// fetch/decode/execute cycle; there is no concurrent access and therefore
// no locking.
type Bus struct {
	RAM [ramSize]byte

	Cart *cartridge.Cartridge

	// lastRead models open-bus behavior for the unmapped PPU/APU/test-mode
	// windows: a read of an address nothing in this core owns returns
	// whatever was last driven onto the bus, rather than panicking.
	lastRead byte
}

// NewBus builds a Bus with zeroed RAM, wired to cart.
func NewBus(cart *cartridge.Cartridge) *Bus {
	return &Bus{Cart: cart}
}

// Read8 reads one byte at addr, decoding the address into RAM, cartridge,
// or an (out-of-scope) stub register window.
func (b *Bus) Read8(addr uint16) byte {
	var v byte
	switch {
	case addr >= ramMin && addr <= ramMax:
		v = b.RAM[addr&ramMirror]
	case addr >= ppuMin && addr <= ppuMax:
		// PPU registers are owned by a collaborator not present in this
		// core; reads are not side-effect-free on real hardware, but
		// absent that collaborator we can only offer open-bus behavior.
		v = b.lastRead
	case addr >= apuMin && addr <= apuMax:
		v = b.lastRead
	case addr >= testModeMin && addr <= testModeMax:
		v = b.lastRead
	case addr >= cartMin && addr <= cartMax:
		v = b.Cart.Read(addr)
	default:
		v = b.lastRead
	}
	b.lastRead = v
	return v
}

// Write8 writes data to addr, decoding the address the same way as Read8.
// Writes into unmapped stub windows are silently dropped.
func (b *Bus) Write8(addr uint16, data byte) {
	b.lastRead = data
	switch {
	case addr >= ramMin && addr <= ramMax:
		b.RAM[addr&ramMirror] = data
	case addr >= ppuMin && addr <= ppuMax:
		// stub: no PPU register file in this core
	case addr >= apuMin && addr <= apuMax:
		// stub: no APU/input register file in this core
	case addr >= testModeMin && addr <= testModeMax:
		// stub
	case addr >= cartMin && addr <= cartMax:
		b.Cart.Write(addr, data)
	}
}

// Read16 reads a little-endian word at addr, wrapping the high-byte
// address modulo 0x10000 (the ordinary, non-quirked behavior).
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return mask.Word(hi, lo)
}

// Write16 writes val as a little-endian word: low byte first, high byte
// second.
func (b *Bus) Write16(addr uint16, val uint16) {
	b.Write8(addr, byte(val))
	b.Write8(addr+1, byte(val>>8))
}

// Read16ZeroPage reads a little-endian word using 6502 zero-page
// wraparound: the high byte comes from (base+1) mod 256, not a carry into
// the next page. This is what the (d,X) and (d),Y addressing modes use;
// Read16Wrapped applies the same wrap to JMP Indirect's 16-bit pointer.
func (b *Bus) Read16ZeroPage(base byte) uint16 {
	lo := b.Read8(uint16(base))
	hi := b.Read8(uint16(base + 1))
	return mask.Word(hi, lo)
}

// Read16Wrapped is the general form of the same bug for a full 16-bit
// pointer, as used by JMP Indirect: the low byte comes from ptr, the high
// byte from ptr with only its low 8 bits incremented, never carrying into
// the next page.
func (b *Bus) Read16Wrapped(ptr uint16) uint16 {
	lo := b.Read8(ptr)
	hi := b.Read8((ptr & 0xff00) | ((ptr + 1) & 0xff))
	return mask.Word(hi, lo)
}
