// Package draw renders the logical playfield to terminal cells.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Box drawing characters for framed UI elements.
const (
	BoxTopLeft     = '┌'
	BoxTopRight    = '┐'
	BoxBottomLeft  = '└'
	BoxBottomRight = '┘'
	BoxHorizontal  = '─'
	BoxVertical    = '│'
)

// Surface is a terminal cell target. Coordinates are 1-based cells relative
// to the render area; implementations apply their own centering offset.
// Cells left of column 1 or above row 1 are dropped, including the leading
// runes of a string written from there.
type Surface interface {
	// SetCell places a single rune.
	SetCell(col, row int, r rune)
	// WriteAt writes a string starting at the given cell.
	WriteAt(col, row int, s string)
	// Clear blanks the whole terminal.
	Clear()
	// Flush pushes the accumulated frame to the terminal.
	Flush() error
	// SetOffset moves the render area (0-based columns/rows to skip).
	SetOffset(col, row int)
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on button press reporting with SGR (1006) coordinates.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse turns off mouse reporting.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// DrawBox draws a framed box on the surface. col/row is the top-left corner,
// width/height include the frame.
func DrawBox(s Surface, col, row, width, height int) {
	if width < 2 || height < 2 {
		return
	}
	s.SetCell(col, row, BoxTopLeft)
	s.SetCell(col+width-1, row, BoxTopRight)
	s.SetCell(col, row+height-1, BoxBottomLeft)
	s.SetCell(col+width-1, row+height-1, BoxBottomRight)
	for c := col + 1; c < col+width-1; c++ {
		s.SetCell(c, row, BoxHorizontal)
		s.SetCell(c, row+height-1, BoxHorizontal)
	}
	for r := row + 1; r < row+height-1; r++ {
		s.SetCell(col, r, BoxVertical)
		s.SetCell(col+width-1, r, BoxVertical)
		for c := col + 1; c < col+width-1; c++ {
			s.SetCell(c, r, ' ')
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
