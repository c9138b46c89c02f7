package cpu

import (
	"strings"
)

const (
	SCREEN_WIDTH  = 64 // Columns
	SCREEN_HEIGHT = 32 // Rows
)

// Screen is the monochrome display buffer, indexed [row][column].
type Screen [SCREEN_HEIGHT][SCREEN_WIDTH]bool

// Clear turns every pixel off.
func (s *Screen) Clear() {
	*s = Screen{}
}

// Set a pixel, wrapping coordinates around the screen edges.
func (s *Screen) Set(x, y int, on bool) {
	s[mod(y, SCREEN_HEIGHT)][mod(x, SCREEN_WIDTH)] = on
}

// Get a pixel, wrapping coordinates around the screen edges.
func (s *Screen) Get(x, y int) bool {
	return s[mod(y, SCREEN_HEIGHT)][mod(x, SCREEN_WIDTH)]
}

// Lit returns the number of pixels that are on.
func (s *Screen) Lit() (count int) {
	for _, row := range s {
		for _, on := range row {
			if on {
				count++
			}
		}
	}
	return
}

// String renders the screen as text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((SCREEN_WIDTH + 1) * SCREEN_HEIGHT)
	for _, row := range s {
		for _, on := range row {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mod(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
