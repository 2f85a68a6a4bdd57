package loop

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// collideBulletsAliens marks every overlapping bullet and alien as destroyed
// and returns the number of aliens destroyed. A bullet overlapping several
// aliens takes all of them; an alien hit by several bullets counts once.
//
// Aliens are bucketed by center into the spatial grid, so each bullet only
// tests its 3x3 cell neighborhood. The exact AABB test confirms every pair,
// which gives the same result as testing all pairs.
func (g *Game) collideBulletsAliens() int {
	aliens := g.Fleet.Aliens
	if len(aliens) == 0 || len(g.Bullets) == 0 {
		return 0
	}

	g.grid.Clear()
	for i, a := range aliens {
		cx, cy := a.Rect.Center()
		g.grid.Insert(cx, cy, i)
	}

	destroyed := 0
	for _, b := range g.Bullets {
		if b.IsDestroyed() {
			continue
		}
		bx, by := b.Rect.Center()
		g.grid.QueryAround(bx, by, func(idx int) bool {
			a := aliens[idx]
			if a.IsDestroyed() || !b.Rect.Overlaps(a.Rect) {
				return false
			}
			a.MarkDestroyed()
			b.MarkDestroyed()
			destroyed++
			return false
		})
	}
	return destroyed
}

// shipCollides reports whether any alien overlaps the ship.
func shipCollides(ship physics.Rect, aliens []*object.Alien) bool {
	for _, a := range aliens {
		if !a.IsDestroyed() && ship.Overlaps(a.Rect) {
			return true
		}
	}
	return false
}

// removeDestroyedBullets drops destroyed bullets in place.
func removeDestroyedBullets(bullets []*object.Bullet) []*object.Bullet {
	kept := bullets[:0]
	for _, b := range bullets {
		if !b.IsDestroyed() {
			kept = append(kept, b)
		}
	}
	clear(bullets[len(kept):])
	return kept
}
