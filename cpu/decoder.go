package cpu

// AddressingMode tells the Cpu where to find the operand (if any) of an
// instruction. There are 13 possible modes; ZeroPage* variants are confined
// to the first 256-byte page, all others can reach the full 64 KiB space.
//
// https://www.nesdev.org/wiki/CPU_addressing_modes
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (d,X)
	IndirectIndexed // (d),Y
)

// operandBytes reports how many operand bytes follow the opcode byte for
// mode. Used by Trace to know how many bytes to print/disassemble; Step
// advances PC through effectiveAddress instead.
func (m AddressingMode) operandBytes() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndexedIndirect, IndirectIndexed:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 0
	}
}

// Opcode is one entry of the 256-entry decode table: a byte maps to an
// instruction's mnemonic, its addressing mode, the baseline cycle count,
// and the Cpu method that carries out its semantics.
//
// Multiple opcode bytes may share an Exec function, differing only in how
// the operand is fetched (the AddressingMode); the Cpu computes the
// effective address before calling Exec, so Exec itself never needs to
// know which addressing mode produced it.
type Opcode struct {
	Name   string
	Mode   AddressingMode
	Cycles byte
	Exec   func(*Cpu)
}

// opcodes is the fixed 256-entry decode table: a single source of truth
// shared by the executor and by Trace. Every byte 0x00-0xFF has exactly one
// entry. Bytes not corresponding to one of the 56 documented instructions
// decode as NOP, with an addressing mode chosen to match the operand length
// real 6502 hardware consumes for that byte (the well-known "unofficial NOP"
// families), even though this core never implements their side effects.
var opcodes [256]Opcode

// Decode returns the decode-table entry for opcode byte b. Exported for
// disassemblers and debug tooling built outside this package.
func Decode(b byte) Opcode { return opcodes[b] }

func init() {
	// Default: every byte is a 2-cycle implied NOP, unless
	// overridden below. This guarantees the "single decode result for
	// every byte" invariant even for bytes no opcode table here names
	// explicitly.
	for i := range opcodes {
		opcodes[i] = Opcode{Name: "NOP", Mode: Implied, Cycles: 2, Exec: (*Cpu).nop}
	}

	for op, e := range officialOpcodes {
		opcodes[op] = e
	}

	// Unofficial opcodes: real hardware gives these specific addressing
	// modes (and therefore operand lengths) even though this core treats
	// all of them as benign NOPs. Preserving the mode keeps PC/cycle
	// tracking plausible when a ROM's data happens to contain one of
	// these bytes mid-stream.
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		opcodes[op] = Opcode{Name: "NOP", Mode: Implied, Cycles: 2, Exec: (*Cpu).nop}
	}
	for _, op := range []byte{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		opcodes[op] = Opcode{Name: "NOP", Mode: Immediate, Cycles: 2, Exec: (*Cpu).nop}
	}
	for _, op := range []byte{0x04, 0x44, 0x64} {
		opcodes[op] = Opcode{Name: "NOP", Mode: ZeroPage, Cycles: 3, Exec: (*Cpu).nop}
	}
	for _, op := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		opcodes[op] = Opcode{Name: "NOP", Mode: ZeroPageX, Cycles: 4, Exec: (*Cpu).nop}
	}
	opcodes[0x0C] = Opcode{Name: "NOP", Mode: Absolute, Cycles: 4, Exec: (*Cpu).nop}
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		opcodes[op] = Opcode{Name: "NOP", Mode: AbsoluteX, Cycles: 4, Exec: (*Cpu).nop}
	}
	// JAM/KIL bytes lock real hardware; we have no notion of halting, so
	// they degrade to a 1-byte NOP like the rest of the unofficial table.
	for _, op := range []byte{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		opcodes[op] = Opcode{Name: "NOP", Mode: Implied, Cycles: 2, Exec: (*Cpu).nop}
	}
}

// officialOpcodes lists the 151 byte values that correspond to one of the
// 56 documented 6502 instructions.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html
// http://www.6502.org/tutorials/6502opcodes.html
var officialOpcodes = map[byte]Opcode{
	0x69: {"ADC", Immediate, 2, (*Cpu).adc},
	0x65: {"ADC", ZeroPage, 3, (*Cpu).adc},
	0x75: {"ADC", ZeroPageX, 4, (*Cpu).adc},
	0x6D: {"ADC", Absolute, 4, (*Cpu).adc},
	0x7D: {"ADC", AbsoluteX, 4, (*Cpu).adc},
	0x79: {"ADC", AbsoluteY, 4, (*Cpu).adc},
	0x61: {"ADC", IndexedIndirect, 6, (*Cpu).adc},
	0x71: {"ADC", IndirectIndexed, 5, (*Cpu).adc},

	0x29: {"AND", Immediate, 2, (*Cpu).and},
	0x25: {"AND", ZeroPage, 3, (*Cpu).and},
	0x35: {"AND", ZeroPageX, 4, (*Cpu).and},
	0x2D: {"AND", Absolute, 4, (*Cpu).and},
	0x3D: {"AND", AbsoluteX, 4, (*Cpu).and},
	0x39: {"AND", AbsoluteY, 4, (*Cpu).and},
	0x21: {"AND", IndexedIndirect, 6, (*Cpu).and},
	0x31: {"AND", IndirectIndexed, 5, (*Cpu).and},

	0x0A: {"ASL", Accumulator, 2, (*Cpu).asl},
	0x06: {"ASL", ZeroPage, 5, (*Cpu).asl},
	0x16: {"ASL", ZeroPageX, 6, (*Cpu).asl},
	0x0E: {"ASL", Absolute, 6, (*Cpu).asl},
	0x1E: {"ASL", AbsoluteX, 7, (*Cpu).asl},

	0x24: {"BIT", ZeroPage, 3, (*Cpu).bit},
	0x2C: {"BIT", Absolute, 4, (*Cpu).bit},

	0x10: {"BPL", Relative, 2, (*Cpu).bpl},
	0x30: {"BMI", Relative, 2, (*Cpu).bmi},
	0x50: {"BVC", Relative, 2, (*Cpu).bvc},
	0x70: {"BVS", Relative, 2, (*Cpu).bvs},
	0x90: {"BCC", Relative, 2, (*Cpu).bcc},
	0xB0: {"BCS", Relative, 2, (*Cpu).bcs},
	0xD0: {"BNE", Relative, 2, (*Cpu).bne},
	0xF0: {"BEQ", Relative, 2, (*Cpu).beq},

	0x00: {"BRK", Implied, 7, (*Cpu).brk},

	0xC9: {"CMP", Immediate, 2, (*Cpu).cmp},
	0xC5: {"CMP", ZeroPage, 3, (*Cpu).cmp},
	0xD5: {"CMP", ZeroPageX, 4, (*Cpu).cmp},
	0xCD: {"CMP", Absolute, 4, (*Cpu).cmp},
	0xDD: {"CMP", AbsoluteX, 4, (*Cpu).cmp},
	0xD9: {"CMP", AbsoluteY, 4, (*Cpu).cmp},
	0xC1: {"CMP", IndexedIndirect, 6, (*Cpu).cmp},
	0xD1: {"CMP", IndirectIndexed, 5, (*Cpu).cmp},

	0xE0: {"CPX", Immediate, 2, (*Cpu).cpx},
	0xE4: {"CPX", ZeroPage, 3, (*Cpu).cpx},
	0xEC: {"CPX", Absolute, 4, (*Cpu).cpx},

	0xC0: {"CPY", Immediate, 2, (*Cpu).cpy},
	0xC4: {"CPY", ZeroPage, 3, (*Cpu).cpy},
	0xCC: {"CPY", Absolute, 4, (*Cpu).cpy},

	0xC6: {"DEC", ZeroPage, 5, (*Cpu).dec},
	0xD6: {"DEC", ZeroPageX, 6, (*Cpu).dec},
	0xCE: {"DEC", Absolute, 6, (*Cpu).dec},
	0xDE: {"DEC", AbsoluteX, 7, (*Cpu).dec},

	0x49: {"EOR", Immediate, 2, (*Cpu).eor},
	0x45: {"EOR", ZeroPage, 3, (*Cpu).eor},
	0x55: {"EOR", ZeroPageX, 4, (*Cpu).eor},
	0x4D: {"EOR", Absolute, 4, (*Cpu).eor},
	0x5D: {"EOR", AbsoluteX, 4, (*Cpu).eor},
	0x59: {"EOR", AbsoluteY, 4, (*Cpu).eor},
	0x41: {"EOR", IndexedIndirect, 6, (*Cpu).eor},
	0x51: {"EOR", IndirectIndexed, 5, (*Cpu).eor},

	0x18: {"CLC", Implied, 2, (*Cpu).clc},
	0x38: {"SEC", Implied, 2, (*Cpu).sec},
	0x58: {"CLI", Implied, 2, (*Cpu).cli},
	0x78: {"SEI", Implied, 2, (*Cpu).sei},
	0xB8: {"CLV", Implied, 2, (*Cpu).clv},
	0xD8: {"CLD", Implied, 2, (*Cpu).cld},
	0xF8: {"SED", Implied, 2, (*Cpu).sed},

	0xE6: {"INC", ZeroPage, 5, (*Cpu).inc},
	0xF6: {"INC", ZeroPageX, 6, (*Cpu).inc},
	0xEE: {"INC", Absolute, 6, (*Cpu).inc},
	0xFE: {"INC", AbsoluteX, 7, (*Cpu).inc},

	0x4C: {"JMP", Absolute, 3, (*Cpu).jmp},
	0x6C: {"JMP", Indirect, 5, (*Cpu).jmp},

	0x20: {"JSR", Absolute, 6, (*Cpu).jsr},

	0xA9: {"LDA", Immediate, 2, (*Cpu).lda},
	0xA5: {"LDA", ZeroPage, 3, (*Cpu).lda},
	0xB5: {"LDA", ZeroPageX, 4, (*Cpu).lda},
	0xAD: {"LDA", Absolute, 4, (*Cpu).lda},
	0xBD: {"LDA", AbsoluteX, 4, (*Cpu).lda},
	0xB9: {"LDA", AbsoluteY, 4, (*Cpu).lda},
	0xA1: {"LDA", IndexedIndirect, 6, (*Cpu).lda},
	0xB1: {"LDA", IndirectIndexed, 5, (*Cpu).lda},

	0xA2: {"LDX", Immediate, 2, (*Cpu).ldx},
	0xA6: {"LDX", ZeroPage, 3, (*Cpu).ldx},
	0xB6: {"LDX", ZeroPageY, 4, (*Cpu).ldx},
	0xAE: {"LDX", Absolute, 4, (*Cpu).ldx},
	0xBE: {"LDX", AbsoluteY, 4, (*Cpu).ldx},

	0xA0: {"LDY", Immediate, 2, (*Cpu).ldy},
	0xA4: {"LDY", ZeroPage, 3, (*Cpu).ldy},
	0xB4: {"LDY", ZeroPageX, 4, (*Cpu).ldy},
	0xAC: {"LDY", Absolute, 4, (*Cpu).ldy},
	0xBC: {"LDY", AbsoluteX, 4, (*Cpu).ldy},

	0x4A: {"LSR", Accumulator, 2, (*Cpu).lsr},
	0x46: {"LSR", ZeroPage, 5, (*Cpu).lsr},
	0x56: {"LSR", ZeroPageX, 6, (*Cpu).lsr},
	0x4E: {"LSR", Absolute, 6, (*Cpu).lsr},
	0x5E: {"LSR", AbsoluteX, 7, (*Cpu).lsr},

	0xEA: {"NOP", Implied, 2, (*Cpu).nop},

	0x09: {"ORA", Immediate, 2, (*Cpu).ora},
	0x05: {"ORA", ZeroPage, 3, (*Cpu).ora},
	0x15: {"ORA", ZeroPageX, 4, (*Cpu).ora},
	0x0D: {"ORA", Absolute, 4, (*Cpu).ora},
	0x1D: {"ORA", AbsoluteX, 4, (*Cpu).ora},
	0x19: {"ORA", AbsoluteY, 4, (*Cpu).ora},
	0x01: {"ORA", IndexedIndirect, 6, (*Cpu).ora},
	0x11: {"ORA", IndirectIndexed, 5, (*Cpu).ora},

	0xAA: {"TAX", Implied, 2, (*Cpu).tax},
	0x8A: {"TXA", Implied, 2, (*Cpu).txa},
	0xCA: {"DEX", Implied, 2, (*Cpu).dex},
	0xE8: {"INX", Implied, 2, (*Cpu).inx},
	0xA8: {"TAY", Implied, 2, (*Cpu).tay},
	0x98: {"TYA", Implied, 2, (*Cpu).tya},
	0x88: {"DEY", Implied, 2, (*Cpu).dey},
	0xC8: {"INY", Implied, 2, (*Cpu).iny},

	0x2A: {"ROL", Accumulator, 2, (*Cpu).rol},
	0x26: {"ROL", ZeroPage, 5, (*Cpu).rol},
	0x36: {"ROL", ZeroPageX, 6, (*Cpu).rol},
	0x2E: {"ROL", Absolute, 6, (*Cpu).rol},
	0x3E: {"ROL", AbsoluteX, 7, (*Cpu).rol},

	0x6A: {"ROR", Accumulator, 2, (*Cpu).ror},
	0x66: {"ROR", ZeroPage, 5, (*Cpu).ror},
	0x76: {"ROR", ZeroPageX, 6, (*Cpu).ror},
	0x6E: {"ROR", Absolute, 6, (*Cpu).ror},
	0x7E: {"ROR", AbsoluteX, 7, (*Cpu).ror},

	0x40: {"RTI", Implied, 6, (*Cpu).rti},
	0x60: {"RTS", Implied, 6, (*Cpu).rts},

	0xE9: {"SBC", Immediate, 2, (*Cpu).sbc},
	0xE5: {"SBC", ZeroPage, 3, (*Cpu).sbc},
	0xF5: {"SBC", ZeroPageX, 4, (*Cpu).sbc},
	0xED: {"SBC", Absolute, 4, (*Cpu).sbc},
	0xFD: {"SBC", AbsoluteX, 4, (*Cpu).sbc},
	0xF9: {"SBC", AbsoluteY, 4, (*Cpu).sbc},
	0xE1: {"SBC", IndexedIndirect, 6, (*Cpu).sbc},
	0xF1: {"SBC", IndirectIndexed, 5, (*Cpu).sbc},

	0x85: {"STA", ZeroPage, 3, (*Cpu).sta},
	0x95: {"STA", ZeroPageX, 4, (*Cpu).sta},
	0x8D: {"STA", Absolute, 4, (*Cpu).sta},
	0x9D: {"STA", AbsoluteX, 5, (*Cpu).sta},
	0x99: {"STA", AbsoluteY, 5, (*Cpu).sta},
	0x81: {"STA", IndexedIndirect, 6, (*Cpu).sta},
	0x91: {"STA", IndirectIndexed, 6, (*Cpu).sta},

	0x86: {"STX", ZeroPage, 3, (*Cpu).stx},
	0x96: {"STX", ZeroPageY, 4, (*Cpu).stx},
	0x8E: {"STX", Absolute, 4, (*Cpu).stx},

	0x84: {"STY", ZeroPage, 3, (*Cpu).sty},
	0x94: {"STY", ZeroPageX, 4, (*Cpu).sty},
	0x8C: {"STY", Absolute, 4, (*Cpu).sty},

	0x9A: {"TXS", Implied, 2, (*Cpu).txs},
	0xBA: {"TSX", Implied, 2, (*Cpu).tsx},
	0x48: {"PHA", Implied, 3, (*Cpu).pha},
	0x68: {"PLA", Implied, 4, (*Cpu).pla},
	0x08: {"PHP", Implied, 3, (*Cpu).php},
	0x28: {"PLP", Implied, 4, (*Cpu).plp},
}
