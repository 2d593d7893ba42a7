// Package cpu implements the MOS 6502 interpreter at the heart of the NES:
// registers, the 13 addressing modes, the 256-entry opcode decode table,
// and the fetch/decode/execute loop.
package cpu

import (
	"fmt"

	"nes6502/mask"
	"nes6502/mem"
)

// Status flag bits. Bit 4 (B) is not a real flag: it is pushed set by PHP
// and BRK, pushed clear by Nmi and Irq, and cleared when P is pulled back
// (by PLP or RTI), per the 6502's well-known quirk. ResetAt loads P = 0x34,
// which has bit 4 set until P is next pulled or the bit is cleared.
const (
	FlagC byte = 1 << 0
	FlagZ byte = 1 << 1
	FlagI byte = 1 << 2
	FlagD byte = 1 << 3
	FlagB byte = 1 << 4
	FlagU byte = 1 << 5
	FlagV byte = 1 << 6
	FlagN byte = 1 << 7
)

// Cpu is a MOS 6502 core driving a mem.Bus. It is a pure state machine:
// Step executes exactly one instruction to completion, and nothing here
// spawns a goroutine or blocks.
type Cpu struct {
	Bus *mem.Bus

	A, X, Y byte
	SP      byte
	PC      uint16
	P       byte

	Clock uint64

	// Decoded per Step, consumed by the instruction's Exec function.
	mode        AddressingMode
	addr        uint16
	accumulator bool
	extraCycles uint64
}

// New builds a Cpu wired to bus. Callers should follow with Reset or
// ResetAt before the first Step.
func New(bus *mem.Bus) *Cpu {
	return &Cpu{Bus: bus}
}

// Reset restores power-on register values and loads PC from the reset
// vector at $FFFC, as real hardware does.
func (c *Cpu) Reset() {
	c.ResetAt(c.Bus.Read16(0xfffc))
}

// ResetAt is Reset but with PC forced to pc instead of read from the reset
// vector. Golden-trace comparisons conventionally start execution at
// $C000 regardless of what a test ROM's vector says.
func (c *Cpu) ResetAt(pc uint16) {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xfd
	c.P = 0x34
	c.PC = pc
	c.Clock = 0
}

// Nmi services a non-maskable interrupt: push PC and P (B clear), set I,
// and jump through the NMI vector at $FFFA.
func (c *Cpu) Nmi() {
	c.push16(c.PC)
	c.push8((c.P | FlagU) &^ FlagB)
	c.SetFlag(FlagI, true)
	c.PC = c.Bus.Read16(0xfffa)
}

// Irq services a maskable interrupt the same way Nmi does, through the
// vector at $FFFE, but only when I is clear.
func (c *Cpu) Irq() {
	if c.Flag(FlagI) {
		return
	}
	c.push16(c.PC)
	c.push8((c.P | FlagU) &^ FlagB)
	c.SetFlag(FlagI, true)
	c.PC = c.Bus.Read16(0xfffe)
}

// loadExtraCycle names the official instructions that pay +1 cycle when
// their AbsoluteX/AbsoluteY/IndirectIndexed effective address crosses a
// page boundary. Stores in the same modes already cost the worst case in
// their table entry, so they never need the dynamic bonus.
var loadExtraCycle = map[string]bool{
	"ADC": true, "AND": true, "CMP": true, "EOR": true,
	"LDA": true, "LDX": true, "LDY": true, "ORA": true, "SBC": true,
}

// Step fetches, decodes, and executes exactly one instruction, then
// advances Clock by its cycle cost (including dynamic page-cross and
// branch-taken corrections).
func (c *Cpu) Step() {
	opByte := c.fetch8()
	op := &opcodes[opByte]

	c.mode = op.Mode
	c.accumulator = op.Mode == Accumulator
	c.extraCycles = 0

	var crossed bool
	c.addr, crossed = c.effectiveAddress(op.Mode)

	op.Exec(c)

	cycles := uint64(op.Cycles) + c.extraCycles
	if crossed && loadExtraCycle[op.Name] {
		cycles++
	}
	c.Clock += cycles
}

// fetch8 reads the byte at PC and advances PC by one.
func (c *Cpu) fetch8() byte {
	v := c.Bus.Read8(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian word at PC and advances PC by two.
func (c *Cpu) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func pageDiffers(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

// effectiveAddress consumes mode's operand bytes from the instruction
// stream (advancing PC) and returns the resulting address, plus whether
// an indexed computation crossed a page boundary.
func (c *Cpu) effectiveAddress(mode AddressingMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false
	case Immediate:
		addr := c.PC
		c.PC++
		return addr, false
	case ZeroPage:
		return uint16(c.fetch8()), false
	case ZeroPageX:
		return uint16(c.fetch8() + c.X), false
	case ZeroPageY:
		return uint16(c.fetch8() + c.Y), false
	case Relative:
		offset := int8(c.fetch8())
		return uint16(int32(c.PC) + int32(offset)), false
	case Absolute:
		return c.fetch16(), false
	case AbsoluteX:
		base := c.fetch16()
		addr := base + uint16(c.X)
		return addr, pageDiffers(base, addr)
	case AbsoluteY:
		base := c.fetch16()
		addr := base + uint16(c.Y)
		return addr, pageDiffers(base, addr)
	case Indirect:
		ptr := c.fetch16()
		return c.Bus.Read16Wrapped(ptr), false
	case IndexedIndirect:
		d := c.fetch8()
		return c.Bus.Read16ZeroPage(d + c.X), false
	case IndirectIndexed:
		d := c.fetch8()
		base := c.Bus.Read16ZeroPage(d)
		addr := base + uint16(c.Y)
		return addr, pageDiffers(base, addr)
	default:
		panic(fmt.Sprintf("cpu: unhandled addressing mode %d", mode))
	}
}

// operand returns the current instruction's operand value: the
// accumulator for Accumulator mode, otherwise the byte at addr.
func (c *Cpu) operand() byte {
	if c.accumulator {
		return c.A
	}
	return c.Bus.Read8(c.addr)
}

// storeOperand writes back the current instruction's result, to the
// accumulator or to addr, mirroring operand's dispatch.
func (c *Cpu) storeOperand(v byte) {
	if c.accumulator {
		c.A = v
	} else {
		c.Bus.Write8(c.addr, v)
	}
}

// Flag reports whether the single status bit named by flag is set in P.
// flag must be one of the FlagX constants; flag positions are mapped onto
// mask's 1-indexed-from-MSB convention (N V U B D I Z C -> I1..I8).
func (c *Cpu) Flag(flag byte) bool {
	return mask.IsSet(c.P, flagPos(flag))
}

// SetFlag sets or clears the single status bit named by flag within P.
func (c *Cpu) SetFlag(flag byte, on bool) {
	c.P = mask.Bit(c.P, flagPos(flag), on)
}

// flagPos maps a FlagX bitmask constant to its mask.ByteIndex position.
func flagPos(flag byte) mask.ByteIndex {
	switch flag {
	case FlagN:
		return mask.I1
	case FlagV:
		return mask.I2
	case FlagU:
		return mask.I3
	case FlagB:
		return mask.I4
	case FlagD:
		return mask.I5
	case FlagI:
		return mask.I6
	case FlagZ:
		return mask.I7
	case FlagC:
		return mask.I8
	default:
		panic("cpu: not a single-bit flag constant")
	}
}

// setZN updates Z and N from v, as almost every instruction does.
func (c *Cpu) setZN(v byte) {
	c.SetFlag(FlagZ, v == 0)
	c.SetFlag(FlagN, v&0x80 != 0)
}

// push8 writes v to the stack page and decrements SP.
func (c *Cpu) push8(v byte) {
	c.Bus.Write8(0x0100|uint16(c.SP), v)
	c.SP--
}

// pull8 increments SP and reads the stack page.
func (c *Cpu) pull8() byte {
	c.SP++
	return c.Bus.Read8(0x0100 | uint16(c.SP))
}

// push16 pushes val high-byte first, so that pull16 returns it low-then-high.
func (c *Cpu) push16(val uint16) {
	c.push8(byte(val >> 8))
	c.push8(byte(val))
}

func (c *Cpu) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// branch jumps to the decoded operand address when cond holds, charging
// the standard +1 cycle for a taken branch and +1 more if it lands on a
// different page than the following instruction.
func (c *Cpu) branch(cond bool) {
	if !cond {
		return
	}
	next := c.PC
	c.PC = c.addr
	c.extraCycles++
	if pageDiffers(next, c.addr) {
		c.extraCycles++
	}
}
