package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
)

// Fleet is the formation of aliens. All members share one horizontal
// direction; when any of them reaches an edge the whole fleet drops and turns.
type Fleet struct {
	Aliens []*Alien

	alienW, alienH float64
	drop           float64
	direction      float64 // +1 right, -1 left
}

// NewFleet creates an empty fleet moving right. Call Rebuild to populate it.
func NewFleet(s config.Settings) *Fleet {
	return &Fleet{
		alienW:    s.AlienWidth,
		alienH:    s.AlienHeight,
		drop:      s.FleetDropSpeed,
		direction: 1,
	}
}

// Rebuild replaces all aliens with a full grid. Starting one alien in from
// the top-left, aliens are spaced one alien width apart while they fit,
// leaving room on the right and space below for the ship.
func (f *Fleet) Rebuild(screen Screen) {
	f.Aliens = f.Aliens[:0]
	for y := f.alienH; y < screen.Height-3*f.alienH; y += 2 * f.alienH {
		for x := f.alienW; x < screen.Width-2*f.alienW; x += 2 * f.alienW {
			f.Aliens = append(f.Aliens, NewAlien(x, y, f.alienW, f.alienH))
		}
	}
}

// ResetDirection makes the fleet move right again. Used on new games.
func (f *Fleet) ResetDirection() {
	f.direction = 1
}

// Direction returns +1 when moving right and -1 when moving left.
func (f *Fleet) Direction() float64 {
	return f.direction
}

// CheckEdges reports whether any alien touches a side of the screen.
func (f *Fleet) CheckEdges(screen Screen) bool {
	for _, a := range f.Aliens {
		if a.CheckEdges(screen) {
			return true
		}
	}
	return false
}

// ChangeDirection drops every alien and inverts the fleet's direction.
func (f *Fleet) ChangeDirection() {
	for _, a := range f.Aliens {
		a.Rect.Y += f.drop
	}
	f.direction = -f.direction
}

// Advance runs one fleet tick: the edge check happens first and turns the
// fleet at most once, then every alien moves sideways. Returns true if the
// fleet turned.
func (f *Fleet) Advance(ctx UpdateContext) bool {
	turned := false
	if f.CheckEdges(ctx.Screen) {
		f.ChangeDirection()
		turned = true
	}

	dx := ctx.Dynamic.AlienSpeed * f.direction * ctx.Delta.Seconds()
	for _, a := range f.Aliens {
		a.Rect.X += dx
	}
	return turned
}

// RemoveDestroyed drops every destroyed alien and returns how many were removed.
func (f *Fleet) RemoveDestroyed() int {
	kept := f.Aliens[:0]
	for _, a := range f.Aliens {
		if !a.Destroyed {
			kept = append(kept, a)
		}
	}
	removed := len(f.Aliens) - len(kept)
	clear(f.Aliens[len(kept):])
	f.Aliens = kept
	return removed
}

// Clear removes all aliens.
func (f *Fleet) Clear() {
	clear(f.Aliens)
	f.Aliens = f.Aliens[:0]
}

// Len returns the number of live aliens.
func (f *Fleet) Len() int {
	return len(f.Aliens)
}

// Empty reports whether the wave has been cleared.
func (f *Fleet) Empty() bool {
	return len(f.Aliens) == 0
}

// Lowest returns the bottom edge of the lowest alien, or 0 for an empty fleet.
func (f *Fleet) Lowest() float64 {
	lowest := 0.0
	for _, a := range f.Aliens {
		if b := a.Rect.Bottom(); b > lowest {
			lowest = b
		}
	}
	return lowest
}

// Draw renders every alien.
func (f *Fleet) Draw(ctx DrawContext) error {
	for _, a := range f.Aliens {
		if err := a.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
