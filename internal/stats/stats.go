// Package stats tracks score, level and lives, and formats them for display.
package stats

// GameStats is the bookkeeping of one player. Everything except the high
// score starts over on Reset.
type GameStats struct {
	shipLimit int

	ShipsLeft int
	Score     int
	Level     int
	HighScore int
}

// New creates stats for a player with shipLimit ships per game.
func New(shipLimit int) *GameStats {
	s := &GameStats{shipLimit: shipLimit}
	s.Reset()
	return s
}

// Reset starts a new game. The high score is kept.
func (s *GameStats) Reset() {
	s.ShipsLeft = s.shipLimit
	s.Score = 0
	s.Level = 1
}

// AddScore adds points for destroyed aliens. Negative amounts are ignored so
// the score never decreases within a game.
func (s *GameStats) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// CheckHighScore raises the high score if the current score beats it and
// reports whether it did.
func (s *GameStats) CheckHighScore() bool {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		return true
	}
	return false
}

// NextLevel advances to the next wave.
func (s *GameStats) NextLevel() {
	s.Level++
}

// LoseShip takes one ship away and reports whether any are left. ShipsLeft
// never goes below zero.
func (s *GameStats) LoseShip() bool {
	if s.ShipsLeft > 0 {
		s.ShipsLeft--
	}
	return s.ShipsLeft > 0
}
