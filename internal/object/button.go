package object

import (
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// PlayLabel is the text of the start button.
const PlayLabel = "Click or press 'P' to Play"

// Button is a framed label centered on the playfield.
type Button struct {
	Rect  physics.Rect
	Label string

	minW, minH float64
}

// NewButton creates a button of at least w×h logical units centered on the screen.
func NewButton(screen Screen, w, h float64, label string) *Button {
	b := &Button{
		Label: label,
		minW:  w,
		minH:  h,
	}
	b.Rect = physics.CenteredRect(screen.Width/2, screen.Height/2, w, h)
	return b
}

// Fit grows the button so its label plus frame fits at the canvas' current
// scale, keeping it centered. Call it whenever the terminal size changes.
func (b *Button) Fit(c *draw.Canvas) {
	cellW := c.LogicalWidth() / float64(c.TerminalWidth())
	cellH := c.LogicalHeight() / float64(c.TerminalHeight())

	w := max(b.minW, float64(utf8.RuneCountInString(b.Label)+4)*cellW)
	h := max(b.minH, 3*cellH)

	cx, cy := b.Rect.Center()
	b.Rect = physics.CenteredRect(cx, cy, w, h)
}

// Contains reports whether the logical point is on the button.
func (b *Button) Contains(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Draw renders the button frame with the label centered inside.
func (b *Button) Draw(ctx DrawContext) error {
	const eps = 1e-9
	col0, row0 := ctx.Canvas.LogicalToTerminal(b.Rect.Left(), b.Rect.Top())
	col1, row1 := ctx.Canvas.LogicalToTerminal(b.Rect.Right()-eps, b.Rect.Bottom()-eps)

	width := col1 - col0 + 1
	height := row1 - row0 + 1
	draw.DrawBox(ctx.Surface, col0, row0, width, height)

	label := Text{Value: b.Label}
	label.X = col0 + (width-label.Width())/2
	label.Y = row0 + height/2
	label.Draw(ctx.Surface)
	return nil
}
