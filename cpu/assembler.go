// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass macro assembler for the CHIP-8 instruction subset.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expanding map[string]bool // Macros currently being expanded.
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) > 1 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// byteOf returns the 8-bit value of a word. Negative values
// are stored as two's complement.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v64, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrValueRange
		return
	}

	value = uint8(v64)
	return
}

// wordOf returns the 16-bit value of a word.
func (asm *Assembler) wordOf(word string) (value uint16, err error) {
	v64, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrValueRange
		return
	}

	value = uint16(v64)
	return
}

// registerOf returns the register index named by a word (v0 - vf).
func registerOf(word string) (reg uint8, ok bool) {
	word = strings.ToLower(word)
	if len(word) != 2 || word[0] != 'v' {
		return
	}

	index, err := strconv.ParseUint(word[1:], 16, 8)
	if err != nil {
		return
	}

	reg = uint8(index)
	ok = true
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.expanding[name] {
			err = ErrMacroRecursion
			return
		}
		asm.expanding[name] = true
		defer delete(asm.expanding, name)

		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			words, err = asm.parseLine(line, lineno)
			if err == nil {
				err = asm.parseWords(words, lineno)
			}
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Ip + len(last.Codes)*CODE_SIZE
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = nil
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.expanding = make(map[string]bool)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(strings.ReplaceAll(line, ",", " "))

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if asm.currentIp() > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	prog = &Program{
		Lines: asm.Lines,
	}

	return
}

// parseRegisterOrByte decodes the source operand of `ld` and `add`.
func (asm *Assembler) parseRegisterOrByte(words []string) (x, y uint8, value uint8, is_reg bool, err error) {
	if len(words) < 2 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(words) > 2 {
		err = ErrOpcodeExtraArgs
		return
	}

	x, ok := registerOf(words[0])
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	y, is_reg = registerOf(words[1])
	if is_reg {
		return
	}

	value, err = asm.byteOf(words[1])
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 {
			return
		}
		line := Line{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes}
		asm.Lines = append(asm.Lines, line)
	}()

	args := words[1:]

	switch strings.ToLower(words[0]) {
	case "halt":
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		codes = append(codes, MakeCodeHalt())
	case "cls":
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		codes = append(codes, MakeCodeClear())
	case "ld":
		x, y, value, is_reg, _err := asm.parseRegisterOrByte(args)
		if _err != nil {
			err = _err
			return
		}
		if is_reg {
			codes = append(codes, MakeCodeCopy(x, y))
		} else {
			codes = append(codes, MakeCodeSetImmediate(x, value))
		}
	case "add":
		x, y, value, is_reg, _err := asm.parseRegisterOrByte(args)
		if _err != nil {
			err = _err
			return
		}
		if is_reg {
			codes = append(codes, MakeCodeAdd(x, y))
		} else {
			codes = append(codes, MakeCodeAddImmediate(x, value))
		}
	case "sub":
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		x, ok := registerOf(args[0])
		if !ok {
			err = ErrRegisterInvalid
			return
		}
		y, ok := registerOf(args[1])
		if !ok {
			err = ErrRegisterInvalid
			return
		}
		codes = append(codes, MakeCodeSub(x, y))
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint16
			value, err = asm.wordOf(arg)
			if err != nil {
				return
			}
			codes = append(codes, Code(value))
		}
	case ".byte":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		data := make([]byte, 0, len(args)+1)
		for _, arg := range args {
			var value uint8
			value, err = asm.byteOf(arg)
			if err != nil {
				return
			}
			data = append(data, value)
		}
		if len(data)%CODE_SIZE != 0 {
			data = append(data, 0)
		}
		for n := 0; n < len(data); n += CODE_SIZE {
			codes = append(codes, Code(uint16(data[n])<<8|uint16(data[n+1])))
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}
