// Package loop provides the main game loop and state management.
package loop

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Options configures Run. Zero values get working defaults.
type Options struct {
	Settings     config.Settings
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Sounds       Sounds

	// Pause blocks the loop after a lost ship. Defaults to time.Sleep.
	Pause func(time.Duration)

	// Shutdown is closed when the host is going down. The player gets a
	// countdown and the loop ends.
	Shutdown <-chan struct{}

	// DisconnectIdle warns and then ends idle sessions (SSH only).
	DisconnectIdle bool

	// HighScore seeds the high score.
	HighScore int

	// OnGameOver is called with the final score of every finished game.
	OnGameOver func(score int)
}

// session is one running game attached to an input source and a surface.
type session struct {
	game    *Game
	src     input.Source
	surface draw.Surface
	canvas  *draw.Canvas
	opts    Options
	logger  *log.Logger

	input     input.Input
	running   bool
	lastInput time.Time
	inactive  bool // Idle warning shown

	shutdown      <-chan struct{}
	shuttingDown  bool
	shutdownTimer float64

	offsetCol int
	offsetRow int
}

// Run starts the main game loop with the standard Input → Update → Draw
// cycle. Blocks until the player quits, the input closes, an idle session
// times out or a shutdown countdown ends.
func Run(src input.Source, surface draw.Surface, opts Options) error {
	s := newSession(src, surface, opts)
	s.logger.Debug("session started", "width", s.canvas.TerminalWidth(), "height", s.canvas.TerminalHeight())

	for s.running {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		s.processInput(frameStart)
		s.processShutdown()

		// ===== UPDATE PHASE =====
		s.updateScreen()
		s.update()

		// ===== DRAW PHASE =====
		if err := s.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}

	s.surface.Clear()
	s.logger.Debug("session ended", "high_score", s.game.Stats.HighScore)
	return s.surface.Flush()
}

func newSession(src input.Source, surface draw.Surface, opts Options) *session {
	if opts.Settings == (config.Settings{}) {
		opts.Settings = config.Default()
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	game := NewGame(opts.Settings, GameOptions{
		Sounds:     opts.Sounds,
		Logger:     opts.Logger,
		Pause:      opts.Pause,
		OnGameOver: opts.OnGameOver,
	})
	game.SetHighScore(opts.HighScore)

	s := &session{
		game:      game,
		src:       src,
		surface:   surface,
		opts:      opts,
		logger:    opts.Logger,
		running:   true,
		lastInput: time.Now(),
		shutdown:  opts.Shutdown,
	}

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	s.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, float64(opts.Settings.ScreenWidth), float64(opts.Settings.ScreenHeight))
	s.setOffset(offsetCol, offsetRow)
	return s
}

// processInput polls the source and tracks quitting and idleness.
func (s *session) processInput(now time.Time) {
	s.input = s.src.Poll(now)

	if s.input.Active() {
		s.lastInput = now
		s.inactive = false
	} else if s.opts.DisconnectIdle {
		idle := now.Sub(s.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			s.logger.Info("disconnecting idle session", "idle_seconds", int(idle))
			s.running = false
		} else if idle > config.InactivityWarnUser {
			s.inactive = true
		}
	}

	if s.input.Quit {
		s.running = false
	}
}

// processShutdown starts the countdown once the host signals a shutdown and
// ends the loop when it runs out.
func (s *session) processShutdown() {
	if s.shuttingDown {
		s.shutdownTimer -= config.TickTime.Seconds()
		if s.shutdownTimer <= 0 {
			s.running = false
		}
		return
	}
	if s.shutdown == nil {
		return
	}
	select {
	case <-s.shutdown:
		s.shuttingDown = true
		s.shutdownTimer = config.ShutdownDisplaySeconds
		s.logger.Debug("shutdown countdown started")
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (s *session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	s.canvas.Resize(renderWidth, renderHeight)
	s.setOffset(offsetCol, offsetRow)
}

func (s *session) setOffset(col, row int) {
	s.offsetCol = col
	s.offsetRow = row
	s.surface.SetOffset(col, row)
	s.game.PlayButton.Fit(s.canvas)
}

// update advances the game one fixed tick.
func (s *session) update() {
	if s.shuttingDown || !s.running {
		return
	}

	wasActive := s.game.State() == GameStateActive
	in := s.input

	// Clicks arrive in absolute terminal cells.
	if in.Click {
		x, y := s.canvas.TerminalToLogical(in.ClickCol-s.offsetCol, in.ClickRow-s.offsetRow)
		s.game.Click(x, y)
	}
	s.game.Step(in, config.TickTime)

	// A held start key must not leak into the new game.
	if !wasActive && s.game.State() == GameStateActive {
		s.src.Reset()
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	if renderWidth < 1 {
		renderWidth = 1
	}
	if renderHeight < 1 {
		renderHeight = 1
	}
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

// drawContext builds the context objects draw with.
func (s *session) drawContext() object.DrawContext {
	return object.DrawContext{
		Canvas:  s.canvas,
		Surface: s.surface,
	}
}
