// Package cpu implements the virtual machine and assembler for a CHIP-8 style system.
//
// The machine has sixteen 8-bit registers (v0-vf), 4K of byte addressable memory,
// a 16-bit instruction pointer, a sixteen entry call stack and a 64x32 monochrome
// screen. Instructions are 16-bit big-endian words fetched from memory starting at
// address 0. Register vf doubles as the carry/borrow flag.
//
// Only a subset of the CHIP-8 instruction set is executed: halt, cls, immediate
// load and add, and register to register load, add and subtract. Every other
// instruction word decodes as unimplemented, and executing it is an error.
//
// The assembler provides a small macro assembly language for that subset,
// supporting equates, macros, and compile-time expression evaluation.
package cpu
