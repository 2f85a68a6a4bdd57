// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	envconfig "github.com/tomz197/invaders/internal/config"
)

// Logical resolution - game objects use these dimensions.
// Actual rendering scales to fit terminal size.
const (
	ScreenWidth  = 120 // Logical width
	ScreenHeight = 80  // Logical height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution in terminal cells. Larger terminals get a centered
// render area of this size.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Tick rate of the game loop.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// ShipHitPause is how long the loop stalls after the ship is lost.
const ShipHitPause = 500 * time.Millisecond

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity (SSH sessions only)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// ErrInvalidSettings is returned by Validate for settings the game cannot run with.
var ErrInvalidSettings = errors.New("invalid settings")

// Dynamic holds the values that reset at every game start and scale up after
// every cleared wave. Speeds are logical units per second.
type Dynamic struct {
	ShipSpeed   float64
	BulletSpeed float64
	AlienSpeed  float64
	AlienPoints int
}

// Settings holds the per-session static configuration plus the base Dynamic values.
type Settings struct {
	ScreenWidth  int
	ScreenHeight int

	ShipLimit  int
	ShipWidth  float64
	ShipHeight float64

	BulletWidth    float64
	BulletHeight   float64
	BulletsAllowed int

	AlienWidth     float64
	AlienHeight    float64
	FleetDropSpeed float64

	SpeedupScale float64 // Multiplier applied to speeds after each wave
	ScoreScale   float64 // Multiplier applied to alien points after each wave

	Base Dynamic
}

// Default returns the stock game settings.
func Default() Settings {
	return Settings{
		ScreenWidth:  ScreenWidth,
		ScreenHeight: ScreenHeight,

		ShipLimit:  3,
		ShipWidth:  7,
		ShipHeight: 5,

		BulletWidth:    1,
		BulletHeight:   3,
		BulletsAllowed: 10,

		AlienWidth:     8,
		AlienHeight:    5,
		FleetDropSpeed: 3,

		SpeedupScale: 1.1,
		ScoreScale:   1.5,

		Base: Dynamic{
			ShipSpeed:   40,
			BulletSpeed: 60,
			AlienSpeed:  8,
			AlienPoints: 50,
		},
	}
}

// Load returns Default settings with environment overrides applied.
func Load() (Settings, error) {
	s := Default()

	shipLimit, err := envconfig.GetEnvInt("INVADERS_SHIP_LIMIT", s.ShipLimit)
	if err != nil {
		return s, fmt.Errorf("INVADERS_SHIP_LIMIT: %w", err)
	}
	s.ShipLimit = shipLimit

	bullets, err := envconfig.GetEnvInt("INVADERS_BULLETS_ALLOWED", s.BulletsAllowed)
	if err != nil {
		return s, fmt.Errorf("INVADERS_BULLETS_ALLOWED: %w", err)
	}
	s.BulletsAllowed = bullets

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks that the settings describe a playable game.
func (s Settings) Validate() error {
	switch {
	case s.ScreenWidth <= 0 || s.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidSettings, s.ScreenWidth, s.ScreenHeight)
	case s.ShipLimit < 1:
		return fmt.Errorf("%w: ship limit %d", ErrInvalidSettings, s.ShipLimit)
	case s.BulletsAllowed < 1:
		return fmt.Errorf("%w: bullets allowed %d", ErrInvalidSettings, s.BulletsAllowed)
	case s.AlienWidth <= 0 || s.AlienHeight <= 0:
		return fmt.Errorf("%w: alien size %gx%g", ErrInvalidSettings, s.AlienWidth, s.AlienHeight)
	case s.ShipWidth <= 0 || s.ShipHeight <= 0:
		return fmt.Errorf("%w: ship size %gx%g", ErrInvalidSettings, s.ShipWidth, s.ShipHeight)
	case s.BulletWidth <= 0 || s.BulletHeight <= 0:
		return fmt.Errorf("%w: bullet size %gx%g", ErrInvalidSettings, s.BulletWidth, s.BulletHeight)
	case s.SpeedupScale < 1 || s.ScoreScale < 1:
		return fmt.Errorf("%w: scales must be >= 1 (speedup %g, score %g)", ErrInvalidSettings, s.SpeedupScale, s.ScoreScale)
	// The fleet needs one alien of margin left, two right, three below.
	case float64(s.ScreenWidth) <= 3*s.AlienWidth || float64(s.ScreenHeight) <= 4*s.AlienHeight:
		return fmt.Errorf("%w: screen too small for a fleet", ErrInvalidSettings)
	}
	return nil
}

// Initial returns the Dynamic values a new game starts with.
func (s Settings) Initial() Dynamic {
	return s.Base
}

// Scale returns the Dynamic values for the next wave.
func (s Settings) Scale(d Dynamic) Dynamic {
	return Dynamic{
		ShipSpeed:   d.ShipSpeed * s.SpeedupScale,
		BulletSpeed: d.BulletSpeed * s.SpeedupScale,
		AlienSpeed:  d.AlienSpeed * s.SpeedupScale,
		AlienPoints: int(float64(d.AlienPoints) * s.ScoreScale),
	}
}
