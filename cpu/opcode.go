package cpu

import (
	"fmt"
)

// OpKind is the operation a decoded instruction performs.
type OpKind int

//go:generate go tool stringer -linecomment -type=OpKind
const (
	OP_HALT          = OpKind(0) // halt
	OP_UNIMPLEMENTED = OpKind(1) // unimplemented
	OP_CLEAR         = OpKind(2) // cls
	OP_SET_IMMEDIATE = OpKind(3) // ld.imm
	OP_ADD_IMMEDIATE = OpKind(4) // add.imm
	OP_COPY          = OpKind(5) // ld.reg
	OP_ADD           = OpKind(6) // add.reg
	OP_SUB           = OpKind(7) // sub.reg
)

// Instruction word families, by most significant nibble.
const (
	CODE_SYSTEM        = 0x0000
	CODE_SET_IMMEDIATE = 0x6000
	CODE_ADD_IMMEDIATE = 0x7000
	CODE_REGISTER      = 0x8000

	CODE_HALT  = 0x0000
	CODE_CLEAR = 0x00e0
)

// Register to register (8XYn) minor operations.
const (
	MINOR_COPY = 0x0
	MINOR_ADD  = 0x4
	MINOR_SUB  = 0x5
)

// Code is a single 16-bit instruction word.
type Code uint16

// Opcode is a decoded instruction.
type Opcode struct {
	Op   OpKind // Operation to perform.
	Code Code   // Instruction word the operation was decoded from.
	X    uint8  // Destination register.
	Y    uint8  // Source register.
	Byte uint8  // Immediate literal.
}

// Minor returns the least significant nibble.
func (code Code) Minor() uint8 {
	return uint8(code & 0xf)
}

// X returns the first register operand, bits 8-11.
func (code Code) X() uint8 {
	return uint8((code >> 8) & 0xf)
}

// Y returns the second register operand, bits 4-7.
func (code Code) Y() uint8 {
	return uint8((code >> 4) & 0xf)
}

// Byte returns the immediate literal, bits 0-7.
func (code Code) Byte() uint8 {
	return uint8(code & 0xff)
}

// Addr returns the 12-bit address operand.
// No executed instruction uses it.
func (code Code) Addr() uint16 {
	return uint16(code & 0xfff)
}

// Decode the instruction word. Every word decodes to exactly one operation.
func (code Code) Decode() (op Opcode) {
	op = Opcode{
		Op:   OP_UNIMPLEMENTED,
		Code: code,
		X:    code.X(),
		Y:    code.Y(),
		Byte: code.Byte(),
	}

	switch code & 0xf000 {
	case CODE_SYSTEM:
		switch code {
		case CODE_HALT:
			op.Op = OP_HALT
		case CODE_CLEAR:
			op.Op = OP_CLEAR
		}
	case CODE_SET_IMMEDIATE:
		op.Op = OP_SET_IMMEDIATE
	case CODE_ADD_IMMEDIATE:
		op.Op = OP_ADD_IMMEDIATE
	case CODE_REGISTER:
		switch code.Minor() {
		case MINOR_COPY:
			op.Op = OP_COPY
		case MINOR_ADD:
			op.Op = OP_ADD
		case MINOR_SUB:
			op.Op = OP_SUB
		}
	}

	return
}

// Decode an instruction word.
func Decode(word uint16) Opcode {
	return Code(word).Decode()
}

// MakeCodeHalt creates a halt instruction.
func MakeCodeHalt() Code {
	return CODE_HALT
}

// MakeCodeClear creates a clear screen instruction.
func MakeCodeClear() Code {
	return CODE_CLEAR
}

// makeImmediate creates an instruction with a register and an immediate byte.
func makeImmediate(family uint16, x uint8, value uint8) Code {
	return Code(family | (uint16(x&0xf) << 8) | uint16(value))
}

// makeRegister creates a register to register instruction.
func makeRegister(x, y uint8, minor uint16) Code {
	return Code(CODE_REGISTER | (uint16(x&0xf) << 8) | (uint16(y&0xf) << 4) | minor)
}

// MakeCodeSetImmediate creates a `ld vX byte` instruction.
func MakeCodeSetImmediate(x uint8, value uint8) Code {
	return makeImmediate(CODE_SET_IMMEDIATE, x, value)
}

// MakeCodeAddImmediate creates an `add vX byte` instruction.
func MakeCodeAddImmediate(x uint8, value uint8) Code {
	return makeImmediate(CODE_ADD_IMMEDIATE, x, value)
}

// MakeCodeCopy creates a `ld vX vY` instruction.
func MakeCodeCopy(x, y uint8) Code {
	return makeRegister(x, y, MINOR_COPY)
}

// MakeCodeAdd creates an `add vX vY` instruction.
func MakeCodeAdd(x, y uint8) Code {
	return makeRegister(x, y, MINOR_ADD)
}

// MakeCodeSub creates a `sub vX vY` instruction.
func MakeCodeSub(x, y uint8) Code {
	return makeRegister(x, y, MINOR_SUB)
}

// String returns the assembly language representation of the operation.
func (op Opcode) String() (out string) {
	switch op.Op {
	case OP_HALT:
		out = "halt"
	case OP_CLEAR:
		out = "cls"
	case OP_SET_IMMEDIATE:
		out = fmt.Sprintf("ld v%x 0x%02x", op.X, op.Byte)
	case OP_ADD_IMMEDIATE:
		out = fmt.Sprintf("add v%x 0x%02x", op.X, op.Byte)
	case OP_COPY:
		out = fmt.Sprintf("ld v%x v%x", op.X, op.Y)
	case OP_ADD:
		out = fmt.Sprintf("add v%x v%x", op.X, op.Y)
	case OP_SUB:
		out = fmt.Sprintf("sub v%x v%x", op.X, op.Y)
	default:
		out = fmt.Sprintf(".word 0x%04x", uint16(op.Code))
	}

	return
}
