package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Step advances the game by one tick of length delta.
func (g *Game) Step(in input.Input, delta time.Duration) {
	if in.Start {
		g.startGame()
	}

	ctx := g.updateContext(delta)
	if g.state == GameStateActive {
		g.Ship.MovingLeft = in.Left
		g.Ship.MovingRight = in.Right
		for i := 0; i < in.Fire; i++ {
			g.fireBullet()
		}

		g.Ship.Update(ctx)
		g.updateBullets(ctx)
		g.updateAliens(ctx)
	}
	g.updateEffects(ctx)
}

// Click handles a mouse click at logical coordinates. Only the start button
// reacts, and only while no game is running. Returns true if it started a game.
func (g *Game) Click(x, y float64) bool {
	if g.state != GameStateInactive || !g.PlayButton.Contains(x, y) {
		return false
	}
	g.startGame()
	return true
}

// startGame resets everything for a new game. Ignored while a game is running.
func (g *Game) startGame() {
	if g.state == GameStateActive {
		return
	}

	g.dynamic = g.settings.Initial()
	g.Stats.Reset()
	g.Scoreboard.PrepAll()

	g.Fleet.ResetDirection()
	g.Bullets = g.Bullets[:0]
	g.Fleet.Clear()
	g.Fleet.Rebuild(g.screen)
	g.Ship.CenterShip(g.screen)
	g.Ship.Blink = 0

	g.state = GameStateActive
	g.logger.Info("game started", "ships", g.Stats.ShipsLeft, "high_score", g.Stats.HighScore)
}

// fireBullet adds a bullet unless the cap is reached.
func (g *Game) fireBullet() {
	if len(g.Bullets) >= g.settings.BulletsAllowed {
		return
	}
	g.Bullets = append(g.Bullets, object.NewBullet(g.settings, g.Ship))
	g.sounds.Fire()
}

// updateBullets moves bullets, drops the ones off screen, and resolves hits.
func (g *Game) updateBullets(ctx object.UpdateContext) {
	kept := g.Bullets[:0]
	for _, b := range g.Bullets {
		remove, _ := b.Update(ctx)
		if !remove {
			kept = append(kept, b)
		}
	}
	clear(g.Bullets[len(kept):])
	g.Bullets = kept

	g.checkBulletAlienCollisions()
}

// checkBulletAlienCollisions scores destroyed aliens and starts the next wave
// once the fleet is gone.
func (g *Game) checkBulletAlienCollisions() {
	if hits := g.collideBulletsAliens(); hits > 0 {
		for _, a := range g.Fleet.Aliens {
			if a.IsDestroyed() {
				cx, cy := a.Rect.Center()
				object.SpawnExplosion(cx, cy, 6, 15.0, 0.4, g)
			}
		}
		g.Bullets = removeDestroyedBullets(g.Bullets)
		g.Fleet.RemoveDestroyed()

		g.Stats.AddScore(g.dynamic.AlienPoints * hits)
		g.Scoreboard.PrepScore()
		g.Scoreboard.CheckHighScore()
		g.sounds.AlienDestroyed()
	}

	if g.Fleet.Empty() {
		g.Bullets = g.Bullets[:0]
		g.Fleet.Rebuild(g.screen)
		g.dynamic = g.settings.Scale(g.dynamic)

		g.Stats.NextLevel()
		g.Scoreboard.PrepLevel()
		g.sounds.WaveCleared()
		g.logger.Debug("wave cleared",
			"level", g.Stats.Level,
			"alien_speed", g.dynamic.AlienSpeed,
			"alien_points", g.dynamic.AlienPoints)
	}
}

// updateAliens moves the fleet and checks whether it reached the ship.
func (g *Game) updateAliens(ctx object.UpdateContext) {
	if g.Fleet.Advance(ctx) {
		g.logger.Debug("fleet turned", "direction", g.Fleet.Direction())
	}

	if shipCollides(g.Ship.Rect, g.Fleet.Aliens) || g.Fleet.Lowest() >= g.screen.Height {
		g.shipHit()
	}
}

// shipHit takes a ship away. With ships left the wave restarts after a short
// pause; otherwise the game ends.
func (g *Game) shipHit() {
	cx, cy := g.Ship.Rect.Center()
	object.SpawnExplosion(cx, cy, 20, 25.0, 1.0, g)
	g.sounds.ShipHit()

	left := g.Stats.LoseShip()
	g.Scoreboard.PrepShips()

	if !left {
		g.state = GameStateInactive
		g.sounds.GameOver()
		g.logger.Info("game over", "score", g.Stats.Score, "level", g.Stats.Level)
		if g.onGameOver != nil {
			g.onGameOver(g.Stats.Score)
		}
		return
	}

	g.logger.Debug("ship lost", "ships_left", g.Stats.ShipsLeft)
	g.Bullets = g.Bullets[:0]
	g.Fleet.Clear()
	g.Fleet.Rebuild(g.screen)
	g.Ship.CenterShip(g.screen)
	g.Ship.Blink = config.ShipHitPause.Seconds() * 2

	g.pause(config.ShipHitPause)
}

// updateEffects updates cosmetic particles and removes expired ones.
func (g *Game) updateEffects(ctx object.UpdateContext) {
	kept := g.Effects[:0]
	for _, obj := range g.Effects {
		remove, err := obj.Update(ctx)
		if err != nil || remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(g.Effects[len(kept):])
	g.Effects = kept
	g.FlushSpawned()
}
