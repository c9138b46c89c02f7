package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Line is a line of assembled code with its source location and generated instructions.
type Line struct {
	LineNo int
	Ip     int // Address of the first instruction.
	Words  []string
	Codes  []Code
}

// Program is an assembled, or disassembled, instruction listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the listing line holding the instruction at an address.
func (prog *Program) Debug(ip uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		start := uint16(line.Ip)
		end := start + uint16(len(line.Codes)*CODE_SIZE)
		if ip >= start && ip < end {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(ip-start) / CODE_SIZE,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (bin []byte) {
	for ip, code := range prog.Codes() {
		for len(bin) < int(ip) {
			bin = append(bin, 0)
		}
		bin = append(bin, byte(code>>8), byte(code))
	}

	return
}

// Codes iterates over every instruction and its address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(ip uint16, code Code) bool) {
		for _, line := range prog.Lines {
			ip := uint16(line.Ip)
			for n, code := range line.Codes {
				if !yield(ip+uint16(n*CODE_SIZE), code) {
					return
				}
			}
		}
	}
}

// Disassemble a memory image into a listing, one instruction per line.
// An odd trailing byte is padded with a zero.
func Disassemble(data []byte) (prog *Program) {
	prog = &Program{}

	for ip := 0; ip < len(data); ip += CODE_SIZE {
		word := uint16(data[ip]) << 8
		if ip+1 < len(data) {
			word |= uint16(data[ip+1])
		}
		code := Code(word)
		prog.Lines = append(prog.Lines, Line{
			LineNo: len(prog.Lines) + 1,
			Ip:     ip,
			Words:  strings.Fields(code.Decode().String()),
			Codes:  []Code{code},
		})
	}

	return
}

// Listing writes the program as address, instruction words and source.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		hex := make([]string, len(line.Codes))
		for n, code := range line.Codes {
			hex[n] = fmt.Sprintf("%04x", uint16(code))
		}
		_, err = fmt.Fprintf(w, "%03x: %-14s ; %4d: %v\n",
			line.Ip, strings.Join(hex, " "), line.LineNo, strings.Join(line.Words, " "))
		if err != nil {
			return
		}
	}

	return
}
