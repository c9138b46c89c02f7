// Package rom reads program images for the virtual machine.
//
// Images are either raw binary, or hex text: pairs of hex digits with
// optional whitespace, optional 0x prefixes, and comments starting with
// '#' or ';'.
package rom

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is a ROM image encoding.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_BINARY = Format(0) // bin
	FORMAT_HEX    = Format(1) // hex
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (format Format, err error) {
	switch strings.ToLower(name) {
	case "bin", "binary", "ch8", "c8":
		format = FORMAT_BINARY
	case "hex", "txt", "text":
		format = FORMAT_HEX
	default:
		err = ErrFormat
	}
	return
}

// FormatOf guesses the format of a file from its extension.
// Unknown extensions are read as binary.
func FormatOf(path string) (format Format) {
	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		format = FORMAT_BINARY
	}
	return
}

// Read a ROM image.
func Read(r io.Reader, format Format) (data []byte, err error) {
	switch format {
	case FORMAT_BINARY:
		data, err = io.ReadAll(r)
	case FORMAT_HEX:
		data, err = readHex(r)
	default:
		err = ErrFormat
	}
	if err != nil {
		return
	}

	if len(data) == 0 {
		err = ErrEmpty
		return
	}

	return
}

// Load a ROM image from a file, with the format chosen by its extension.
func Load(path string) (data []byte, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	data, err = Read(inf, FormatOf(path))
	return
}

// readHex decodes hex text.
func readHex(r io.Reader) (data []byte, err error) {
	scanner := bufio.NewScanner(r)

	var digits strings.Builder
	var lineno int
	for scanner.Scan() {
		lineno++
		line, _, _ := strings.Cut(scanner.Text(), "#")
		line, _, _ = strings.Cut(line, ";")

		for _, word := range strings.Fields(line) {
			word = strings.TrimPrefix(strings.TrimPrefix(word, "0x"), "0X")
			for _, digit := range word {
				if !isHexDigit(digit) {
					err = ErrHexDigit{LineNo: lineno, Digit: digit}
					return
				}
			}
			digits.WriteString(word)
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if digits.Len()%2 != 0 {
		err = ErrHexOdd
		return
	}

	data, err = hex.DecodeString(digits.String())
	return
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
