package loop

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/stats"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateInactive GameState = iota // Start button shown, waiting for a new game
	GameStateActive                    // Full simulation
)

// String returns the state name, used in logs.
func (s GameState) String() string {
	switch s {
	case GameStateInactive:
		return "inactive"
	case GameStateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Sounds receives gameplay sound cues.
type Sounds interface {
	Fire()
	AlienDestroyed()
	ShipHit()
	WaveCleared()
	GameOver()
}

type nopSounds struct{}

func (nopSounds) Fire()           {}
func (nopSounds) AlienDestroyed() {}
func (nopSounds) ShipHit()        {}
func (nopSounds) WaveCleared()    {}
func (nopSounds) GameOver()       {}

// GameOptions configures a Game. Zero values get working defaults.
type GameOptions struct {
	Sounds Sounds
	Logger *log.Logger

	// Pause blocks the loop after a lost ship. Defaults to time.Sleep.
	Pause func(time.Duration)

	// OnGameOver is called with the final score when the last ship is lost.
	OnGameOver func(score int)
}

// Game owns every entity and runs the rules of one player's game.
type Game struct {
	settings config.Settings
	screen   object.Screen
	dynamic  config.Dynamic
	state    GameState

	Ship       *object.Ship
	Bullets    []*object.Bullet
	Fleet      *object.Fleet
	Effects    []object.Object // Cosmetic particles
	toSpawn    []object.Object // Effects to add after the current update
	Stats      *stats.GameStats
	Scoreboard *stats.Scoreboard
	PlayButton *object.Button

	grid       *physics.SpatialGrid
	sounds     Sounds
	logger     *log.Logger
	pause      func(time.Duration)
	onGameOver func(score int)
}

// Compile-time check that Game can receive spawned effects.
var _ object.Spawner = (*Game)(nil)

// NewGame creates an inactive game showing the start button.
func NewGame(settings config.Settings, opts GameOptions) *Game {
	if opts.Sounds == nil {
		opts.Sounds = nopSounds{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Pause == nil {
		opts.Pause = time.Sleep
	}

	screen := object.NewScreen(settings)
	gameStats := stats.New(settings.ShipLimit)

	// Any overlapping bullet/alien pair has centers within one cell of each other.
	cell := max(settings.AlienWidth, settings.AlienHeight) + max(settings.BulletWidth, settings.BulletHeight)

	g := &Game{
		settings:   settings,
		screen:     screen,
		dynamic:    settings.Initial(),
		state:      GameStateInactive,
		Ship:       object.NewShip(settings, screen),
		Fleet:      object.NewFleet(settings),
		Stats:      gameStats,
		Scoreboard: stats.NewScoreboard(gameStats),
		PlayButton: object.NewButton(screen, screen.Width/3, screen.Height/8, object.PlayLabel),
		grid:       physics.NewSpatialGrid(screen.Width, screen.Height, cell),
		sounds:     opts.Sounds,
		logger:     opts.Logger,
		pause:      opts.Pause,
		onGameOver: opts.OnGameOver,
	}
	g.Fleet.Rebuild(screen)
	return g
}

// State returns the current game phase.
func (g *Game) State() GameState {
	return g.state
}

// Dynamic returns the speeds and points of the current wave.
func (g *Game) Dynamic() config.Dynamic {
	return g.dynamic
}

// Screen returns the playfield size.
func (g *Game) Screen() object.Screen {
	return g.screen
}

// Settings returns the static game settings.
func (g *Game) Settings() config.Settings {
	return g.settings
}

// SetHighScore seeds the high score, e.g. with the best score on the server.
func (g *Game) SetHighScore(score int) {
	if score > g.Stats.HighScore {
		g.Stats.HighScore = score
		g.Scoreboard.PrepHighScore()
	}
}

// Spawn queues an effect to be added after the current update cycle.
// Implements object.Spawner interface.
func (g *Game) Spawn(obj object.Object) {
	g.toSpawn = append(g.toSpawn, obj)
}

// FlushSpawned adds all queued effects and clears the queue.
func (g *Game) FlushSpawned() {
	g.Effects = append(g.Effects, g.toSpawn...)
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]
}

// updateContext creates an UpdateContext for one tick.
func (g *Game) updateContext(delta time.Duration) object.UpdateContext {
	return object.UpdateContext{
		Delta:   delta,
		Screen:  g.screen,
		Dynamic: g.dynamic,
		Spawner: g,
	}
}
