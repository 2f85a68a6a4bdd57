package object

import (
	"github.com/tomz197/invaders/internal/physics"
)

// Alien is a single member of the fleet.
type Alien struct {
	Rect      physics.Rect
	Destroyed bool // Mark for removal
}

// NewAlien creates an alien with its top-left corner at (x, y).
func NewAlien(x, y, w, h float64) *Alien {
	return &Alien{
		Rect: physics.Rect{X: x, Y: y, W: w, H: h},
	}
}

// CheckEdges reports whether the alien touches either side of the screen.
func (a *Alien) CheckEdges(screen Screen) bool {
	return a.Rect.Right() >= screen.Width || a.Rect.Left() <= 0
}

// MarkDestroyed marks the alien for removal (implements Destructible).
func (a *Alien) MarkDestroyed() {
	a.Destroyed = true
}

// IsDestroyed returns true if the alien is marked for destruction (implements Destructible).
func (a *Alien) IsDestroyed() bool {
	return a.Destroyed
}

// Draw renders the alien as a body on three legs.
func (a *Alien) Draw(ctx DrawContext) error {
	r := a.Rect
	bodyH := r.H * 0.6
	legY := r.Y + bodyH
	legH := r.H - bodyH
	legW := r.W / 8

	c := ctx.Canvas
	c.FillRect(r.X+legW, r.Y, r.W-2*legW, bodyH)
	c.FillRect(r.X, legY, legW, legH)
	c.FillRect(r.X+r.W/2-legW/2, legY, legW, legH)
	c.FillRect(r.Right()-legW, legY, legW, legH)
	return nil
}
