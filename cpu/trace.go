package cpu

import (
	"fmt"
	"strings"

	"nes6502/mask"
)

// Trace renders the CPU's state immediately before executing the
// instruction at PC, in the nestest golden-log format:
//
//	PPPP  OP OP1 OP2  MNEM OPERANDS                 A:AA X:XX Y:YY P:PP SP:SS
//
// Trace never mutates CPU state: it peeks at the opcode and its operand
// bytes through the bus without advancing PC.
func (c *Cpu) Trace() string {
	pc := c.PC
	opByte := c.Bus.Read8(pc)
	op := &opcodes[opByte]
	n := op.Mode.operandBytes()

	var raw [2]byte
	for i := 0; i < n; i++ {
		raw[i] = c.Bus.Read8(pc + 1 + uint16(i))
	}

	var bytesCols []string
	bytesCols = append(bytesCols, fmt.Sprintf("%02X", opByte))
	for i := 0; i < n; i++ {
		bytesCols = append(bytesCols, fmt.Sprintf("%02X", raw[i]))
	}
	bytesField := strings.Join(bytesCols, " ")

	instrField := op.Name
	if operand := disassembleOperand(op.Mode, pc, raw[0], raw[1]); operand != "" {
		instrField += " " + operand
	}

	return fmt.Sprintf("%04X  %-9s %-31s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		pc, bytesField, instrField, c.A, c.X, c.Y, (c.P|0x30)&^0x10, c.SP)
}

// disassembleOperand renders the operand of an instruction starting at pc
// (so Relative targets can be computed) given its addressing mode and raw
// operand bytes, in the conventional 6502 disassembly syntax.
func disassembleOperand(mode AddressingMode, pc uint16, b1, b2 byte) string {
	word := mask.Word(b2, b1)
	switch mode {
	case Implied:
		return ""
	case Accumulator:
		return "A"
	case Immediate:
		return fmt.Sprintf("#$%02X", b1)
	case ZeroPage:
		return fmt.Sprintf("$%02X", b1)
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", b1)
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", b1)
	case Relative:
		target := uint16(int32(pc) + 2 + int32(int8(b1)))
		return fmt.Sprintf("$%04X", target)
	case Absolute:
		return fmt.Sprintf("$%04X", word)
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", word)
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", word)
	case Indirect:
		return fmt.Sprintf("($%04X)", word)
	case IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", b1)
	case IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", b1)
	default:
		return ""
	}
}
