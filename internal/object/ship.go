package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Ship is the player-controlled cannon at the bottom of the playfield.
type Ship struct {
	Rect physics.Rect

	MovingLeft  bool
	MovingRight bool

	// Blink is the seconds of blinking left after the ship respawns.
	Blink float64
}

// NewShip creates a ship centered at the bottom of the screen.
func NewShip(s config.Settings, screen Screen) *Ship {
	ship := &Ship{
		Rect: physics.Rect{W: s.ShipWidth, H: s.ShipHeight},
	}
	ship.CenterShip(screen)
	return ship
}

// CenterShip places the ship at the bottom center of the screen.
func (s *Ship) CenterShip(screen Screen) {
	s.Rect.X = (screen.Width - s.Rect.W) / 2
	s.Rect.Y = screen.Height - s.Rect.H
}

// Update moves the ship according to its movement flags, staying on screen.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	step := ctx.Dynamic.ShipSpeed * dt

	if s.MovingRight && s.Rect.Right() < ctx.Screen.Width {
		s.Rect.X += step
	}
	if s.MovingLeft && s.Rect.Left() > 0 {
		s.Rect.X -= step
	}

	if s.Rect.X < 0 {
		s.Rect.X = 0
	}
	if maxX := ctx.Screen.Width - s.Rect.W; s.Rect.X > maxX {
		s.Rect.X = maxX
	}

	if s.Blink > 0 {
		s.Blink -= dt
	}
	return false, nil
}

// Muzzle returns the point bullets leave the ship from (its mid-top).
func (s *Ship) Muzzle() (float64, float64) {
	return s.Rect.X + s.Rect.W/2, s.Rect.Y
}

// Draw renders the ship as a turret on a wide base.
func (s *Ship) Draw(ctx DrawContext) error {
	if !ShouldRenderBlink(s.Blink, 8.0) {
		return nil
	}

	r := s.Rect
	cx := r.X + r.W/2
	baseY := r.Y + r.H*0.5

	// Turret
	ctx.Canvas.DrawPolygon([]draw.Point{
		{X: cx, Y: r.Y},
		{X: cx + r.W*0.25, Y: baseY},
		{X: cx - r.W*0.25, Y: baseY},
	}, true)

	// Hull
	ctx.Canvas.FillRect(r.X, baseY, r.W, r.Bottom()-baseY)
	return nil
}
