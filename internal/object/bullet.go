package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Bullet is a shot fired straight up by the ship.
type Bullet struct {
	Rect      physics.Rect
	destroyed bool // Marked for destruction
}

// NewBullet creates a bullet centered on the ship's muzzle.
func NewBullet(s config.Settings, ship *Ship) *Bullet {
	mx, my := ship.Muzzle()
	return &Bullet{
		Rect: physics.Rect{
			X: mx - s.BulletWidth/2,
			Y: my,
			W: s.BulletWidth,
			H: s.BulletHeight,
		},
	}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// OffScreen reports whether the bullet has left the top of the playfield.
func (b *Bullet) OffScreen() bool {
	return b.Rect.Bottom() <= 0
}

// Update moves the bullet up. Returns true once it is off screen or destroyed.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	if b.destroyed {
		return true, nil
	}
	b.Rect.Y -= ctx.Dynamic.BulletSpeed * ctx.Delta.Seconds()
	return b.OffScreen(), nil
}

// Draw renders the bullet.
func (b *Bullet) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
	return nil
}
