package rom

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead_Binary(t *testing.T) {
	assert := assert.New(t)

	data, err := Read(bytes.NewReader([]byte{0x60, 0x01, 0x00, 0x00}), FORMAT_BINARY)
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x01, 0x00, 0x00}, data)

	_, err = Read(bytes.NewReader(nil), FORMAT_BINARY)
	assert.ErrorIs(err, ErrEmpty)

	_, err = Read(bytes.NewReader(nil), Format(7))
	assert.ErrorIs(err, ErrFormat)
}

func TestRead_Hex(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		data []byte
	}){
		{"plain", "6001", []byte{0x60, 0x01}},
		{"spaced", "60 01\n80 14\n", []byte{0x60, 0x01, 0x80, 0x14}},
		{"prefixed", "0x6001 0X8014", []byte{0x60, 0x01, 0x80, 0x14}},
		{"upper", "00E0", []byte{0x00, 0xe0}},
		{"comments", "# header\n6001 ; ld v0 1\n0000 # halt\n", []byte{0x60, 0x01, 0x00, 0x00}},
		{"split", "6\n0\t01", []byte{0x60, 0x01}},
	}

	for _, entry := range table {
		data, err := Read(strings.NewReader(entry.text), FORMAT_HEX)
		assert.NoError(err, entry.name)
		assert.Equal(entry.data, data, entry.name)
	}
}

func TestRead_HexErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Read(strings.NewReader("600"), FORMAT_HEX)
	assert.ErrorIs(err, ErrHexOdd)

	_, err = Read(strings.NewReader("6001\n60g1"), FORMAT_HEX)
	assert.ErrorIs(err, ErrHexInvalid)
	var digit ErrHexDigit
	if assert.True(errors.As(err, &digit)) {
		assert.Equal(2, digit.LineNo)
		assert.Equal('g', digit.Digit)
	}

	_, err = Read(strings.NewReader("# nothing here\n"), FORMAT_HEX)
	assert.ErrorIs(err, ErrEmpty)
}

func TestParseFormat(t *testing.T) {
	assert := assert.New(t)

	format, err := ParseFormat("HEX")
	assert.NoError(err)
	assert.Equal(FORMAT_HEX, format)

	format, err = ParseFormat("bin")
	assert.NoError(err)
	assert.Equal(FORMAT_BINARY, format)

	_, err = ParseFormat("elf")
	assert.ErrorIs(err, ErrFormat)

	assert.Equal(FORMAT_HEX, FormatOf("prog.hex"))
	assert.Equal(FORMAT_HEX, FormatOf("dir/prog.TXT"))
	assert.Equal(FORMAT_BINARY, FormatOf("prog.ch8"))
	assert.Equal(FORMAT_BINARY, FormatOf("prog"))

	assert.Equal("hex", FORMAT_HEX.String())
	assert.Equal("bin", FORMAT_BINARY.String())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	hexPath := filepath.Join(dir, "prog.hex")
	assert.NoError(os.WriteFile(hexPath, []byte("6001 0000\n"), 0o644))

	data, err := Load(hexPath)
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x01, 0x00, 0x00}, data)

	binPath := filepath.Join(dir, "prog.ch8")
	assert.NoError(os.WriteFile(binPath, []byte("6001 0000\n"), 0o644))

	data, err = Load(binPath)
	assert.NoError(err)
	assert.Equal([]byte("6001 0000\n"), data)

	_, err = Load(filepath.Join(dir, "missing.hex"))
	assert.ErrorIs(err, os.ErrNotExist)
}
