package draw

import "github.com/gdamore/tcell/v2"

// TcellSurface draws to a tcell screen.
type TcellSurface struct {
	screen tcell.Screen
	style  tcell.Style
	offCol int
	offRow int
}

// Compile-time check that TcellSurface implements Surface.
var _ Surface = (*TcellSurface)(nil)

// NewTcellSurface wraps an initialized tcell screen.
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}
}

// SetOffset moves the render area.
func (t *TcellSurface) SetOffset(col, row int) {
	t.offCol = col
	t.offRow = row
}

// SetCell places a rune at a 1-based cell.
func (t *TcellSurface) SetCell(col, row int, r rune) {
	if col < 1 || row < 1 {
		return
	}
	t.screen.SetContent(col-1+t.offCol, row-1+t.offRow, r, nil, t.style)
}

// WriteAt writes a string one rune per cell.
func (t *TcellSurface) WriteAt(col, row int, s string) {
	for _, r := range s {
		t.SetCell(col, row, r)
		col++
	}
}

// Clear blanks the screen.
func (t *TcellSurface) Clear() {
	t.screen.Clear()
}

// Flush shows the frame.
func (t *TcellSurface) Flush() error {
	t.screen.Show()
	return nil
}

// Size reports the screen size. Matches TermSizeFunc.
func (t *TcellSurface) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}
