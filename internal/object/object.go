// Package object holds the playfield entities: the ship, bullets, the alien
// fleet, explosion particles and the on-screen controls.
package object

import (
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Screen is the playfield size in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// NewScreen returns the playfield described by the settings.
func NewScreen(s config.Settings) Screen {
	return Screen{
		Width:  float64(s.ScreenWidth),
		Height: float64(s.ScreenHeight),
	}
}

// Contains reports whether the point lies on the playfield.
func (s Screen) Contains(x, y float64) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Screen  Screen
	Dynamic config.Dynamic // Speeds and points of the current wave
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas  *draw.Canvas // High-resolution canvas (2x vertical)
	Surface draw.Surface // Direct cell output (for text and controls)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Surface for text.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with remaining blink time
// should be rendered this frame. Always true once remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
