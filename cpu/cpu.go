package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	REGISTER_COUNT = 16     // Number of general purpose registers.
	REGISTER_FLAG  = 0xf    // Carry/borrow flag register.
	MEMORY_SIZE    = 0x1000 // Bytes of addressable memory.
	CODE_SIZE      = 2      // Bytes per instruction word.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"STACK_LIMIT":    fmt.Sprintf("%d", STACK_LIMIT),
	"SCREEN_WIDTH":   fmt.Sprintf("%d", SCREEN_WIDTH),
	"SCREEN_HEIGHT":  fmt.Sprintf("%d", SCREEN_HEIGHT),
	"FLAG":           fmt.Sprintf("v%x", REGISTER_FLAG),
}

// Cpu is the simulation context of the virtual machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       uint16                // Current instruction pointer.
	Register [REGISTER_COUNT]uint8 // Register bank, v0 to vf.
	Memory   [MEMORY_SIZE]byte     // Program and data memory.
	Stack    Stack                 // Return address stack.
	Screen   Screen                // Display buffer.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with all state zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %03X\n", "ip", cpu.Ip)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("v%x", n), val)
	}

	strval := "---"
	val, err := cpu.Stack.Peek()
	if err == nil {
		strval = fmt.Sprintf("%03X", val)
	}
	text += fmt.Sprintf("% 5s: %v (%d)\n", "stack", strval, cpu.Stack.Sp)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}

// Reset the CPU state.
// - Clears the registers, memory, and stack.
// - Sets the instruction pointer to 0.
// - Zeros statistics counters.
//
// The screen is left as is.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Stack.Reset()
	cpu.Ip = 0
	cpu.Ticks = 0
}

// Load copies a program into memory at address 0.
// Memory past the end of the program is left unchanged.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > len(cpu.Memory) {
		err = errors.Join(ErrProgramSize, ErrBounds(len(program)-1))
		return
	}

	copy(cpu.Memory[:], program)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// FetchCode fetches the instruction word at the instruction pointer.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	ip := int(cpu.Ip)
	if ip+1 >= len(cpu.Memory) {
		err = ErrBounds(max(ip, len(cpu.Memory)))
		return
	}

	code = Code(uint16(cpu.Memory[ip])<<8 | uint16(cpu.Memory[ip+1]))

	return
}

// Tick executes a single CPU instruction cycle.
// The instruction pointer is advanced past the instruction before it executes.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	op := code.Decode()
	if cpu.Verbose {
		log.Printf("%03x: %04x %v", cpu.Ip, uint16(code), op)
	}

	cpu.Ip += CODE_SIZE
	cpu.Ticks++

	err = cpu.Execute(op)

	return
}

// Run executes instructions until a halt, or an error.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if errors.Is(err, ErrHalt) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(op Opcode) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrHalt) {
			err = errors.Join(ErrOpcode(op.Code), err)
		}
	}()

	reg := &cpu.Register

	switch op.Op {
	case OP_HALT:
		err = ErrHalt
	case OP_CLEAR:
		cpu.Screen.Clear()
	case OP_SET_IMMEDIATE:
		reg[op.X] = op.Byte
	case OP_ADD_IMMEDIATE:
		reg[op.X] += op.Byte
	case OP_COPY:
		reg[op.X] = reg[op.Y]
	case OP_ADD:
		a, b := reg[op.X], reg[op.Y]
		// vf is only ever set, never cleared.
		if uint16(a)+uint16(b) > 0xff {
			reg[REGISTER_FLAG] = 1
		}
		reg[op.X] = a + b
	case OP_SUB:
		a, b := reg[op.X], reg[op.Y]
		if b > a {
			reg[REGISTER_FLAG] = 1
		}
		reg[op.X] = a - b
	default:
		err = ErrUnimplemented
	}

	return
}
