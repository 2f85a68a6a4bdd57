package object

import "github.com/tomz197/invaders/internal/draw"

// Text is a simple drawable text label.
// Coordinates are 1-based terminal positions.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text at its position, clamped to the render area.
func (t Text) Draw(s draw.Surface) {
	if t.Value == "" {
		return
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	s.WriteAt(x, y, t.Value)
}

// Width returns the label width in cells.
func (t Text) Width() int {
	return len([]rune(t.Value))
}
