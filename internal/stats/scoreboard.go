package stats

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/invaders/internal/draw"
)

// ShipGlyph is drawn once per ship left.
const ShipGlyph = '▲'

// Scoreboard keeps the display strings for the stats. Each prep method
// rebuilds one string and is only called when its value changes.
type Scoreboard struct {
	stats   *GameStats
	printer *message.Printer

	ScoreText     string
	HighScoreText string
	LevelText     string
	ShipsText     string
}

// NewScoreboard creates a scoreboard for stats with all text prepared.
func NewScoreboard(stats *GameStats) *Scoreboard {
	sb := &Scoreboard{
		stats:   stats,
		printer: message.NewPrinter(language.English),
	}
	sb.PrepAll()
	return sb
}

// PrepAll rebuilds every display string.
func (sb *Scoreboard) PrepAll() {
	sb.PrepScore()
	sb.PrepHighScore()
	sb.PrepLevel()
	sb.PrepShips()
}

// PrepScore formats the score rounded to tens with thousands separators.
func (sb *Scoreboard) PrepScore() {
	sb.ScoreText = sb.format(sb.stats.Score)
}

// PrepHighScore formats the high score like the score.
func (sb *Scoreboard) PrepHighScore() {
	sb.HighScoreText = "HI " + sb.format(sb.stats.HighScore)
}

// PrepLevel formats the level.
func (sb *Scoreboard) PrepLevel() {
	sb.LevelText = sb.printer.Sprintf("L%d", sb.stats.Level)
}

// PrepShips shows one glyph per ship left.
func (sb *Scoreboard) PrepShips() {
	sb.ShipsText = strings.Repeat(string(ShipGlyph), sb.stats.ShipsLeft)
}

// CheckHighScore updates the high score and its text if the score beat it.
func (sb *Scoreboard) CheckHighScore() {
	if sb.stats.CheckHighScore() {
		sb.PrepHighScore()
	}
}

func (sb *Scoreboard) format(n int) string {
	return sb.printer.Sprintf("%d", RoundScore(n))
}

// RoundScore rounds to the nearest ten, halves to even.
func RoundScore(n int) int {
	return int(math.RoundToEven(float64(n)/10) * 10)
}

// Draw writes the scoreboard across the top row of a width-column area:
// ships on the left, high score centered, score and level on the right.
func (sb *Scoreboard) Draw(s draw.Surface, width int) {
	s.WriteAt(2, 1, sb.ShipsText)

	hi := len([]rune(sb.HighScoreText))
	s.WriteAt(max(1, (width-hi)/2+1), 1, sb.HighScoreText)

	score := len([]rune(sb.ScoreText))
	s.WriteAt(max(1, width-score), 1, sb.ScoreText)

	level := len([]rune(sb.LevelText))
	s.WriteAt(max(1, width-level), 2, sb.LevelText)
}
