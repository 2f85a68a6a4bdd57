package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Draw renders every entity: fleet, bullets, ship, effects. The start button
// is drawn by the UI pass so it lands on top of the canvas.
func (g *Game) Draw(ctx object.DrawContext) error {
	if err := g.Fleet.Draw(ctx); err != nil {
		return err
	}
	for _, b := range g.Bullets {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}
	if err := g.Ship.Draw(ctx); err != nil {
		return err
	}
	for _, e := range g.Effects {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// drawFrame draws the current frame.
func (s *session) drawFrame() error {
	s.surface.Clear()
	s.canvas.Clear()

	ctx := s.drawContext()
	if err := s.game.Draw(ctx); err != nil {
		return err
	}

	// Render canvas to terminal
	s.canvas.Render(s.surface)

	// Draw UI overlay (after canvas render so it's on top)
	if err := s.drawUI(ctx); err != nil {
		return err
	}

	return s.surface.Flush()
}

// drawUI draws the text overlay for the current state.
func (s *session) drawUI(ctx object.DrawContext) error {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if s.shuttingDown {
		s.drawShutdownScreen(centerX, centerY)
		return nil
	}
	if s.inactive {
		s.drawInactivityScreen(centerX, centerY)
		return nil
	}

	s.game.Scoreboard.Draw(s.surface, termWidth)

	if s.game.State() == GameStateInactive {
		s.drawStartScreen(centerX, centerY)
		return s.game.PlayButton.Draw(ctx)
	}
	return nil
}

// centered writes text centered on column centerX.
func (s *session) centered(centerX, row int, text string) {
	object.Text{X: centerX - len([]rune(text))/2, Y: row, Value: text}.Draw(s.surface)
}

// drawStartScreen draws the title above the start button and the controls below it.
func (s *session) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		` ___ _  ___   ___   ___  ___ ___  ___ `,
		`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
		` | || .` + "`" + ` |\ V / _ \| |) | _||   /\__ \`,
		`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
	}

	titleTop := centerY - 4 - len(titleArt)
	if titleTop >= 3 {
		for i, line := range titleArt {
			s.centered(centerX, titleTop+i, line)
		}
	}

	controls := []string{
		"A D / < >  . . .  Move",
		"SPACE  . . . . .  Fire",
		"P / Enter  . . . Start",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range controls {
		s.centered(centerX, centerY+4+i, line)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *session) drawInactivityScreen(centerX, centerY int) {
	s.centered(centerX, centerY-2, "INACTIVITY WARNING")

	remaining := int(config.InactivityDisconnectUser - time.Since(s.lastInput).Seconds())
	s.centered(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", max(0, remaining)))
	s.centered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown countdown.
func (s *session) drawShutdownScreen(centerX, centerY int) {
	s.centered(centerX, centerY-2, "SERVER SHUTTING DOWN")
	if s.game.Stats.Score > 0 {
		s.centered(centerX, centerY, "Final score: "+s.game.Scoreboard.ScoreText)
	}
	s.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds", int(s.shutdownTimer+0.999)))
}
