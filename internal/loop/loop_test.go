package loop

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

type soundLog struct {
	fire, alien, ship, wave, over int
}

func (s *soundLog) Fire()           { s.fire++ }
func (s *soundLog) AlienDestroyed() { s.alien++ }
func (s *soundLog) ShipHit()        { s.ship++ }
func (s *soundLog) WaveCleared()    { s.wave++ }
func (s *soundLog) GameOver()       { s.over++ }

type testGame struct {
	*Game
	pauses   []time.Duration
	sounds   *soundLog
	gameOver []int
}

func newTestGame(t *testing.T) *testGame {
	t.Helper()
	tg := &testGame{sounds: &soundLog{}}
	tg.Game = NewGame(config.Default(), GameOptions{
		Sounds:     tg.sounds,
		Pause:      func(d time.Duration) { tg.pauses = append(tg.pauses, d) },
		OnGameOver: func(score int) { tg.gameOver = append(tg.gameOver, score) },
	})
	return tg
}

func (tg *testGame) step(in input.Input) {
	tg.Step(in, config.TickTime)
}

func (tg *testGame) start(t *testing.T) {
	t.Helper()
	tg.step(input.Input{Start: true})
	if tg.State() != GameStateActive {
		t.Fatal("start key should start the game")
	}
}

// shootFirstAlien places a bullet on the first alien and runs one tick.
func (tg *testGame) shootFirstAlien() {
	a := tg.Fleet.Aliens[0]
	cx, cy := a.Rect.Center()
	b := object.NewBullet(tg.Settings(), tg.Ship)
	b.Rect.X = cx - b.Rect.W/2
	b.Rect.Y = cy - 1
	tg.Bullets = append(tg.Bullets, b)
	tg.step(input.Input{})
}

// clearWave leaves a single alien and shoots it.
func (tg *testGame) clearWave() {
	tg.Fleet.Aliens = tg.Fleet.Aliens[:1]
	tg.shootFirstAlien()
}

// crashIntoShip puts an alien on top of the ship and runs one tick.
func (tg *testGame) crashIntoShip() {
	r := tg.Ship.Rect
	s := tg.Settings()
	tg.Fleet.Aliens = []*object.Alien{object.NewAlien(r.X, r.Y, s.AlienWidth, s.AlienHeight)}
	tg.step(input.Input{})
}

func TestNewGameIsInactive(t *testing.T) {
	g := newTestGame(t)
	if g.State() != GameStateInactive {
		t.Fatalf("state = %v, want inactive", g.State())
	}
	if g.Fleet.Len() == 0 {
		t.Fatal("fleet should be visible behind the start button")
	}

	// Movement and fire are ignored while inactive.
	x := g.Ship.Rect.X
	g.step(input.Input{Left: true, Fire: 3})
	if len(g.Bullets) != 0 || g.Ship.Rect.X != x {
		t.Fatal("inactive game reacted to play input")
	}
}

func TestBulletCapNeverExceeded(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	limit := g.Settings().BulletsAllowed

	peak := 0
	for i := 0; i < 2*config.TickRate; i++ {
		g.step(input.Input{Fire: 3})
		if n := len(g.Bullets); n > limit {
			t.Fatalf("tick %d: %d bullets, cap %d", i, n, limit)
		} else if n > peak {
			peak = n
		}
	}
	if peak != limit {
		t.Fatalf("peak bullets = %d, want cap %d reached", peak, limit)
	}
	if g.sounds.fire == 0 {
		t.Fatal("firing should play a sound")
	}
}

func TestShootAlienScores(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	s := g.Settings()

	// One alien straight above the ship, one far away so the wave stays.
	mx, _ := g.Ship.Muzzle()
	target := object.NewAlien(mx-s.AlienWidth/2, 50, s.AlienWidth, s.AlienHeight)
	other := object.NewAlien(10, 10, s.AlienWidth, s.AlienHeight)
	g.Fleet.Aliens = []*object.Alien{target, other}
	points := g.Dynamic().AlienPoints

	g.step(input.Input{Fire: 1})
	if len(g.Bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(g.Bullets))
	}

	for i := 0; i < config.TickRate && g.Fleet.Len() == 2; i++ {
		g.step(input.Input{})
	}

	if g.Fleet.Len() != 1 || g.Fleet.Aliens[0] != other {
		t.Fatalf("target alien not removed: %d aliens left", g.Fleet.Len())
	}
	if len(g.Bullets) != 0 {
		t.Fatal("bullet should be removed with the alien")
	}
	if g.Stats.Score != points {
		t.Fatalf("score = %d, want %d", g.Stats.Score, points)
	}
	if g.Scoreboard.ScoreText != "50" {
		t.Fatalf("score text = %q, want 50", g.Scoreboard.ScoreText)
	}
	if g.sounds.alien != 1 {
		t.Fatalf("alien sounds = %d, want 1", g.sounds.alien)
	}
}

func TestBulletOverlappingTwoAliensTakesBoth(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	s := g.Settings()

	left := object.NewAlien(30, 30, s.AlienWidth, s.AlienHeight)
	right := object.NewAlien(30+s.AlienWidth, 30, s.AlienWidth, s.AlienHeight)
	far := object.NewAlien(80, 10, s.AlienWidth, s.AlienHeight)
	g.Fleet.Aliens = []*object.Alien{left, right, far}

	b := object.NewBullet(s, g.Ship)
	b.Rect.X = 30 + s.AlienWidth - b.Rect.W/2
	b.Rect.Y = 31
	g.Bullets = []*object.Bullet{b}
	g.step(input.Input{})

	if g.Fleet.Len() != 1 {
		t.Fatalf("aliens left = %d, want 1", g.Fleet.Len())
	}
	if g.Stats.Score != 2*s.Base.AlienPoints {
		t.Fatalf("score = %d, want %d", g.Stats.Score, 2*s.Base.AlienPoints)
	}
}

func TestWaveClear(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	s := g.Settings()

	stray := object.NewBullet(s, g.Ship)
	stray.Rect.X = 100
	stray.Rect.Y = 50
	g.Bullets = []*object.Bullet{stray}

	g.clearWave()

	if len(g.Bullets) != 0 {
		t.Fatalf("bullets = %d, want cleared", len(g.Bullets))
	}
	if g.Fleet.Len() != 36 {
		t.Fatalf("fleet = %d aliens, want a fresh fleet of 36", g.Fleet.Len())
	}
	if got, want := g.Dynamic(), s.Scale(s.Initial()); got != want {
		t.Fatalf("dynamic = %+v, want %+v", got, want)
	}
	if g.Stats.Level != 2 || g.Scoreboard.LevelText != "L2" {
		t.Fatalf("level = %d (%q), want 2", g.Stats.Level, g.Scoreboard.LevelText)
	}
	if g.Stats.Score != s.Base.AlienPoints {
		t.Fatalf("score = %d, want %d", g.Stats.Score, s.Base.AlienPoints)
	}
	if g.sounds.wave != 1 {
		t.Fatalf("wave sounds = %d, want 1", g.sounds.wave)
	}

	// Points for the next wave use the scaled value.
	g.shootFirstAlien()
	if want := s.Base.AlienPoints + s.Scale(s.Initial()).AlienPoints; g.Stats.Score != want {
		t.Fatalf("score = %d, want %d", g.Stats.Score, want)
	}
}

func TestWaveClearKeepsFleetDirection(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	g.Fleet.ChangeDirection()
	g.clearWave()
	if g.Fleet.Direction() != -1 {
		t.Fatal("direction should persist into the next wave")
	}
}

func TestShipHitWithShipsLeft(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	g.step(input.Input{Fire: 2})
	if len(g.Bullets) != 2 {
		t.Fatalf("bullets = %d, want 2", len(g.Bullets))
	}
	// Park the bullets far from the ship so they cannot hit the crashing alien.
	for _, b := range g.Bullets {
		b.Rect.X, b.Rect.Y = 5, 10
	}

	g.crashIntoShip()

	if g.Stats.ShipsLeft != 2 {
		t.Fatalf("ships left = %d, want 2", g.Stats.ShipsLeft)
	}
	if g.State() != GameStateActive {
		t.Fatal("game should continue with ships left")
	}
	if len(g.pauses) != 1 || g.pauses[0] != config.ShipHitPause {
		t.Fatalf("pauses = %v, want one of %v", g.pauses, config.ShipHitPause)
	}
	if len(g.Bullets) != 0 {
		t.Fatal("bullets should be cleared")
	}
	if g.Fleet.Len() != 36 {
		t.Fatalf("fleet = %d, want rebuilt", g.Fleet.Len())
	}
	cx, _ := g.Ship.Rect.Center()
	if cx != g.Screen().Width/2 {
		t.Fatalf("ship not re-centered: %f", cx)
	}
	if g.Scoreboard.ShipsText != "▲▲" {
		t.Fatalf("ships text = %q", g.Scoreboard.ShipsText)
	}
}

func TestBulletsResolveBeforeShipCollision(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	g.step(input.Input{Fire: 1})

	// The fresh bullet sits just above the ship and takes the alien first.
	g.crashIntoShip()

	if g.Stats.ShipsLeft != g.Settings().ShipLimit {
		t.Fatalf("ships left = %d, want %d", g.Stats.ShipsLeft, g.Settings().ShipLimit)
	}
	if g.Stats.Level != 2 || len(g.pauses) != 0 {
		t.Fatalf("level = %d pauses = %d, want wave cleared without a hit", g.Stats.Level, len(g.pauses))
	}
}

func TestAlienReachingBottomCostsShip(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	s := g.Settings()
	g.Fleet.Aliens = []*object.Alien{object.NewAlien(5, g.Screen().Height-s.AlienHeight+1, s.AlienWidth, s.AlienHeight)}

	g.step(input.Input{})
	if g.Stats.ShipsLeft != s.ShipLimit-1 {
		t.Fatalf("ships left = %d, want %d", g.Stats.ShipsLeft, s.ShipLimit-1)
	}
}

func TestLosingAllShipsEndsGame(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	g.shootFirstAlien()
	limit := g.Settings().ShipLimit

	for i := 0; i < limit; i++ {
		if g.State() != GameStateActive {
			t.Fatalf("game ended after %d hits, want %d", i, limit)
		}
		g.crashIntoShip()
	}

	if g.State() != GameStateInactive {
		t.Fatal("game should be inactive after the last ship")
	}
	if g.Stats.ShipsLeft != 0 {
		t.Fatalf("ships left = %d, want 0", g.Stats.ShipsLeft)
	}
	if len(g.pauses) != limit-1 {
		t.Fatalf("pauses = %d, want %d", len(g.pauses), limit-1)
	}
	if len(g.gameOver) != 1 || g.gameOver[0] != g.Stats.Score {
		t.Fatalf("game over callbacks = %v, want [%d]", g.gameOver, g.Stats.Score)
	}
	if g.sounds.over != 1 {
		t.Fatalf("game over sounds = %d, want 1", g.sounds.over)
	}

	// Further hits never go below zero.
	g.shipHit()
	if g.Stats.ShipsLeft != 0 {
		t.Fatalf("ships left = %d after extra hit", g.Stats.ShipsLeft)
	}
}

func TestStartKeyIgnoredWhileActive(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	g.step(input.Input{Fire: 1})
	g.Stats.LoseShip()

	g.step(input.Input{Start: true})
	if g.Stats.ShipsLeft != g.Settings().ShipLimit-1 {
		t.Fatal("start key reset a running game")
	}
	if len(g.Bullets) != 1 {
		t.Fatal("start key cleared bullets of a running game")
	}
}

func TestClick(t *testing.T) {
	g := newTestGame(t)
	cx, cy := g.PlayButton.Rect.Center()

	if g.Click(1, 1) {
		t.Fatal("click outside the button started a game")
	}
	if g.State() != GameStateInactive {
		t.Fatal("click outside the button changed state")
	}

	if !g.Click(cx, cy) {
		t.Fatal("click on the button should start a game")
	}
	if g.State() != GameStateActive {
		t.Fatal("game should be active")
	}

	g.Stats.LoseShip()
	if g.Click(cx, cy) {
		t.Fatal("click while active should be ignored")
	}
	if g.Stats.ShipsLeft != g.Settings().ShipLimit-1 {
		t.Fatal("click restarted a running game")
	}
}

func TestNewGameResetsDynamicAndStats(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	s := g.Settings()

	g.clearWave()
	g.clearWave()
	if g.Dynamic() == s.Initial() {
		t.Fatal("dynamic values should have scaled")
	}
	g.Fleet.ChangeDirection()
	for g.State() == GameStateActive {
		g.crashIntoShip()
	}
	high := g.Stats.HighScore
	if high == 0 {
		t.Fatal("high score should be set")
	}

	g.step(input.Input{Start: true})
	if g.Dynamic() != s.Initial() {
		t.Fatalf("dynamic = %+v, want base %+v", g.Dynamic(), s.Initial())
	}
	if g.Dynamic().AlienPoints != s.Base.AlienPoints {
		t.Fatalf("alien points = %d, want %d", g.Dynamic().AlienPoints, s.Base.AlienPoints)
	}
	if g.Stats.Score != 0 || g.Stats.Level != 1 || g.Stats.ShipsLeft != s.ShipLimit {
		t.Fatalf("stats = %+v", g.Stats)
	}
	if g.Stats.HighScore != high {
		t.Fatalf("high score = %d, want %d kept", g.Stats.HighScore, high)
	}
	if g.Fleet.Direction() != 1 {
		t.Fatal("fleet direction should reset")
	}
	if g.Fleet.Len() != 36 || len(g.Bullets) != 0 {
		t.Fatal("new game should start with a full fleet and no bullets")
	}
}

func TestHighScoreOnlyWhenBeaten(t *testing.T) {
	g := newTestGame(t)
	g.SetHighScore(1000)
	g.start(t)

	g.shootFirstAlien()
	if g.Stats.HighScore != 1000 {
		t.Fatalf("high score = %d, want 1000", g.Stats.HighScore)
	}

	g.Stats.Score = 1990
	g.shootFirstAlien()
	if g.Stats.HighScore != 2040 {
		t.Fatalf("high score = %d, want 2040", g.Stats.HighScore)
	}
	if g.Scoreboard.HighScoreText != "HI 2,040" {
		t.Fatalf("high score text = %q", g.Scoreboard.HighScoreText)
	}

	g.SetHighScore(5)
	if g.Stats.HighScore != 2040 {
		t.Fatal("SetHighScore must not lower the high score")
	}
}

func TestEffectsSpawnAndExpire(t *testing.T) {
	g := newTestGame(t)
	g.start(t)
	g.shootFirstAlien()
	if len(g.Effects) == 0 {
		t.Fatal("destroyed alien should leave an explosion")
	}
	for i := 0; i < 2*config.TickRate; i++ {
		g.step(input.Input{})
	}
	if len(g.Effects) != 0 {
		t.Fatalf("%d effects outlived their lifetime", len(g.Effects))
	}
}

func TestGridMatchesBruteForce(t *testing.T) {
	s := config.Default()
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		g := NewGame(s, GameOptions{})
		var aliens, refAliens []*object.Alien
		var bullets, refBullets []*object.Bullet

		for i := 0; i < 30; i++ {
			x := rng.Float64()*(g.Screen().Width+20) - 10
			y := rng.Float64()*(g.Screen().Height+20) - 10
			aliens = append(aliens, object.NewAlien(x, y, s.AlienWidth, s.AlienHeight))
			refAliens = append(refAliens, object.NewAlien(x, y, s.AlienWidth, s.AlienHeight))
		}
		for i := 0; i < 40; i++ {
			b := object.NewBullet(s, g.Ship)
			b.Rect.X = rng.Float64()*(g.Screen().Width+10) - 5
			b.Rect.Y = rng.Float64()*(g.Screen().Height+10) - 5
			ref := *b
			bullets = append(bullets, b)
			refBullets = append(refBullets, &ref)
		}

		g.Fleet.Aliens = aliens
		g.Bullets = bullets
		got := g.collideBulletsAliens()
		want := collideBulletsAliensBrute(refBullets, refAliens)

		if got != want {
			t.Fatalf("round %d: grid destroyed %d, brute force %d", round, got, want)
		}
		for i := range aliens {
			if aliens[i].IsDestroyed() != refAliens[i].IsDestroyed() {
				t.Fatalf("round %d: alien %d differs", round, i)
			}
		}
		for i := range bullets {
			if bullets[i].IsDestroyed() != refBullets[i].IsDestroyed() {
				t.Fatalf("round %d: bullet %d differs", round, i)
			}
		}
	}
}

// collideBulletsAliensBrute is the all-pairs reference for collideBulletsAliens.
func collideBulletsAliensBrute(bullets []*object.Bullet, aliens []*object.Alien) int {
	destroyed := 0
	for _, b := range bullets {
		if b.IsDestroyed() {
			continue
		}
		for _, a := range aliens {
			if a.IsDestroyed() || !b.Rect.Overlaps(a.Rect) {
				continue
			}
			a.MarkDestroyed()
			b.MarkDestroyed()
			destroyed++
		}
	}
	return destroyed
}

func TestFleetTurnsOnlyAtEdges(t *testing.T) {
	g := newTestGame(t)
	g.start(t)

	turns := 0
	for i := 0; i < 20*config.TickRate && g.State() == GameStateActive; i++ {
		atEdge := g.Fleet.CheckEdges(g.Screen())
		dir := g.Fleet.Direction()
		g.step(input.Input{})
		if len(g.pauses) > 0 {
			break // fleet reached the ship
		}
		flipped := g.Fleet.Direction() != dir
		if flipped != atEdge {
			t.Fatalf("tick %d: flipped = %v, at edge = %v", i, flipped, atEdge)
		}
		if flipped {
			turns++
		}
	}
	if turns == 0 {
		t.Fatal("fleet never reached an edge")
	}
}
