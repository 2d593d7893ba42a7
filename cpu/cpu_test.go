package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes6502/cartridge"
	"nes6502/mem"
)

// blankCart gives a Bus a real, empty 16 KiB cartridge so reads of the
// interrupt vectors at $FFFA-$FFFF resolve to zero rather than panicking.
func blankCart() *cartridge.Cartridge {
	return &cartridge.Cartridge{PRGROM: make([]byte, 16*1024)}
}

func newTestCpu() *Cpu {
	return New(mem.NewBus(blankCart()))
}

func load(c *Cpu, base uint16, bytes ...byte) {
	for i, b := range bytes {
		c.Bus.Write8(base+uint16(i), b)
	}
}

func TestFlag_SetFlagRoundTripsEveryBit(t *testing.T) {
	c := newTestCpu()
	for _, f := range []byte{FlagC, FlagZ, FlagI, FlagD, FlagB, FlagU, FlagV, FlagN} {
		c.P = 0
		c.SetFlag(f, true)
		assert.Equal(t, f, c.P, "SetFlag(%#02x, true) touched an unrelated bit", f)
		assert.True(t, c.Flag(f))

		c.SetFlag(f, false)
		assert.Equal(t, byte(0), c.P)
		assert.False(t, c.Flag(f))
	}
}

func TestStep_LDAImmediate(t *testing.T) {
	c := newTestCpu()
	load(c, 0x0000, 0xA9, 0x00)
	c.ResetAt(0x0000)

	c.Step()

	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.Flag(FlagZ))
	assert.False(t, c.Flag(FlagN))
	assert.Equal(t, uint16(0x0002), c.PC)
}

func TestStep_ADCOverflow(t *testing.T) {
	c := newTestCpu()
	load(c, 0x0000, 0x69, 0x50) // ADC #$50
	c.ResetAt(0x0000)
	c.A = 0x50
	c.SetFlag(FlagC, false)

	c.Step()

	assert.Equal(t, byte(0xA0), c.A)
	assert.False(t, c.Flag(FlagC))
	assert.True(t, c.Flag(FlagV))
	assert.True(t, c.Flag(FlagN))
	assert.False(t, c.Flag(FlagZ))
}

func TestStep_SBCBorrow(t *testing.T) {
	c := newTestCpu()
	load(c, 0x0000, 0xE9, 0xB0) // SBC #$B0
	c.ResetAt(0x0000)
	c.A = 0x50
	c.SetFlag(FlagC, true)

	c.Step()

	assert.Equal(t, byte(0xA0), c.A)
	assert.False(t, c.Flag(FlagC))
	assert.True(t, c.Flag(FlagV))
	assert.True(t, c.Flag(FlagN))
	assert.False(t, c.Flag(FlagZ))
}

func TestStep_JSRThenRTS(t *testing.T) {
	cart := &cartridge.Cartridge{PRGROM: make([]byte, 16*1024)}
	cart.PRGROM[0] = 0x20 // JSR $1234
	cart.PRGROM[1] = 0x34
	cart.PRGROM[2] = 0x12
	c := New(mem.NewBus(cart))
	c.ResetAt(0xC000)

	c.Step() // JSR

	assert.Equal(t, uint16(0x1234), c.PC)
	assert.Equal(t, byte(0xFB), c.SP)
	assert.Equal(t, byte(0x02), c.Bus.Read8(0x01FC))
	assert.Equal(t, byte(0xC0), c.Bus.Read8(0x01FD))

	c.Bus.Write8(0x1234, 0x60) // RTS
	c.Step()

	assert.Equal(t, uint16(0xC003), c.PC)
	assert.Equal(t, byte(0xFD), c.SP)
}

func TestStep_IndirectJMPPageWrapBug(t *testing.T) {
	c := newTestCpu()
	c.Bus.Write8(0x02FF, 0x34)
	c.Bus.Write8(0x0200, 0x12)
	c.Bus.Write8(0x0300, 0x99) // decoy: a real carry would land here
	load(c, 0x0000, 0x6C, 0xFF, 0x02)
	c.ResetAt(0x0000)

	c.Step()

	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestStep_ZeroPageXWraps(t *testing.T) {
	c := newTestCpu()
	c.Bus.Write8(0x0000, 0xAB)
	c.Bus.Write8(0x0100, 0xCD)
	load(c, 0x0200, 0xB5, 0xFF) // LDA $FF,X
	c.ResetAt(0x0200)
	c.X = 1

	c.Step()

	assert.Equal(t, byte(0xAB), c.A)
}

func TestStep_BranchTakenAcrossPage(t *testing.T) {
	cart := &cartridge.Cartridge{PRGROM: make([]byte, 16*1024)}
	cart.PRGROM[0xF0] = 0xF0 // BEQ +$20
	cart.PRGROM[0xF1] = 0x20
	c := New(mem.NewBus(cart))
	c.ResetAt(0xC0F0)
	c.SetFlag(FlagZ, true)

	c.Step()

	assert.Equal(t, uint16(0xC112), c.PC)
}

func TestPHP_PushesBAndUnusedSet(t *testing.T) {
	c := newTestCpu()
	load(c, 0x0000, 0x08) // PHP
	c.ResetAt(0x0000)
	c.P = 0

	c.Step()

	pushed := c.Bus.Read8(0x01FD)
	assert.Equal(t, FlagB|FlagU, pushed)
}

func TestPLP_MasksBAndForcesUnused(t *testing.T) {
	c := newTestCpu()
	load(c, 0x0000, 0x28) // PLP
	c.ResetAt(0x0000)
	c.SP = 0xFC
	c.Bus.Write8(0x01FD, 0xFF) // all bits set, including B

	c.Step()

	assert.True(t, c.Flag(FlagU))
	assert.False(t, c.P&FlagB != 0)
}

func TestCMP_SetsCarryWhenRegisterGreaterOrEqual(t *testing.T) {
	c := newTestCpu()
	load(c, 0x0000, 0xC9, 0x10) // CMP #$10
	c.ResetAt(0x0000)
	c.A = 0x10

	c.Step()

	assert.True(t, c.Flag(FlagC))
	assert.True(t, c.Flag(FlagZ))
}

func TestBRK_PushesPCPlusOneAndReadsVector(t *testing.T) {
	cart := &cartridge.Cartridge{PRGROM: make([]byte, 16*1024)}
	cart.PRGROM[0] = 0x00 // BRK
	cart.PRGROM[0x3ffe] = 0x34
	cart.PRGROM[0x3fff] = 0x12
	c := New(mem.NewBus(cart))
	c.ResetAt(0xC000)

	c.Step()

	assert.Equal(t, uint16(0x1234), c.PC)
	assert.True(t, c.Flag(FlagI))
	assert.Equal(t, byte(0xC0), c.Bus.Read8(0x01FD))
	assert.Equal(t, byte(0x02), c.Bus.Read8(0x01FC))
	pushedStatus := c.Bus.Read8(0x01FB)
	assert.NotZero(t, pushedStatus&FlagB)
}

// TestMultiplyByThree runs a small hand-assembled program computing 10*3 via
// repeated addition, checking register state at a few meaningful
// checkpoints rather than every single step.
func TestMultiplyByThree(t *testing.T) {
	// LDX #$0A; STX $00; LDX #$03; STX $01; LDY $00; LDA #$00; CLC
	// loop: ADC $01; DEY; BNE loop
	// STA $02; NOP; NOP; NOP
	program := []byte{
		0xA2, 0x0A, // LDX #$0A
		0x8E, 0x00, 0x00, // STX $0000
		0xA2, 0x03, // LDX #$03
		0x8E, 0x01, 0x00, // STX $0001
		0xAC, 0x00, 0x00, // LDY $0000
		0xA9, 0x00, // LDA #$00
		0x18,             // CLC
		0x6D, 0x01, 0x00, // loop: ADC $0001
		0x88,       // DEY
		0xD0, 0xFA, // BNE loop
		0x8D, 0x02, 0x00, // STA $0002
		0xEA, 0xEA, 0xEA, // NOP NOP NOP
	}

	c := newTestCpu()
	load(c, 0x0200, program...)
	c.ResetAt(0x0200)

	for i := 0; i < 6; i++ {
		c.Step()
	}
	require.Equal(t, byte(0x0A), c.Y)
	require.Equal(t, byte(0x00), c.A)
	require.Equal(t, byte(0x03), c.X)

	for c.PC != 0x0200+25 { // address of the first trailing NOP
		c.Step()
	}
	assert.Equal(t, byte(30), c.A)
	assert.Equal(t, byte(10), c.Bus.Read8(0x0000))
	assert.Equal(t, byte(3), c.Bus.Read8(0x0001))
	assert.Equal(t, byte(30), c.Bus.Read8(0x0002))
}

func TestNROMCart_VectorsReadThroughBus(t *testing.T) {
	cart := &cartridge.Cartridge{PRGROM: make([]byte, 16*1024)}
	c := New(mem.NewBus(cart))
	c.Reset()
	assert.Equal(t, uint16(0), c.PC)
}
