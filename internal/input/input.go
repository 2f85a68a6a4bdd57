// Package input turns terminal key and mouse events into per-tick game input.
package input

import (
	"time"
)

// Terminals report no key releases, so holding a movement key is inferred
// from its auto-repeat. Auto-repeat starts only after a delay of usually 250
// to 500 ms, so a first press holds for firstPressHold to bridge that gap and
// every repeat extends the hold by keyHoldDuration. The cost: a single tap
// moves the ship for up to half a second, unless the opposite key cuts it off.
const (
	firstPressHold  = 500 * time.Millisecond
	keyHoldDuration = 100 * time.Millisecond
)

// Input represents the current tick's input state.
type Input struct {
	Quit  bool // Quit requested
	Left  bool // Move left held
	Right bool // Move right held
	Fire  int  // Fire presses since the last poll
	Start bool // Start key pressed since the last poll

	Click    bool // Left mouse button pressed since the last poll
	ClickCol int  // 1-based terminal column of the last click
	ClickRow int  // 1-based terminal row of the last click

	Pressed []byte // Raw bytes seen since the last poll (activity tracking)
}

// Active reports whether the player did anything this tick.
func (in Input) Active() bool {
	return len(in.Pressed) > 0 || in.Quit || in.Left || in.Right || in.Fire > 0 || in.Start || in.Click
}

// Source delivers one Input per tick without blocking.
type Source interface {
	// Poll drains pending events and returns the input for this tick.
	Poll(now time.Time) Input
	// Reset forgets held keys and pending presses.
	Reset()
}

// Key identifies a game action.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyStart
	KeyQuit
)

// Event is a single decoded key press or mouse click.
type Event struct {
	Key   Key
	Click bool
	Col   int // 1-based, clicks only
	Row   int // 1-based, clicks only
}

// tracker folds decoded events into held-key deadlines and per-poll counters.
type tracker struct {
	leftUntil  time.Time
	rightUntil time.Time

	fire     int
	start    bool
	quit     bool
	click    bool
	clickCol int
	clickRow int
}

// apply records one event that happened at now.
func (t *tracker) apply(ev Event, now time.Time) {
	if ev.Click {
		t.click = true
		t.clickCol = ev.Col
		t.clickRow = ev.Row
		return
	}
	switch ev.Key {
	case KeyLeft:
		t.leftUntil = extendHold(t.leftUntil, now)
		t.rightUntil = time.Time{}
	case KeyRight:
		t.rightUntil = extendHold(t.rightUntil, now)
		t.leftUntil = time.Time{}
	case KeyFire:
		t.fire++
	case KeyStart:
		t.start = true
	case KeyQuit:
		t.quit = true
	}
}

// extendHold returns the new hold deadline for a key pressed at now.
func extendHold(until, now time.Time) time.Time {
	if !now.Before(until) {
		return now.Add(firstPressHold)
	}
	if next := now.Add(keyHoldDuration); next.After(until) {
		return next
	}
	return until
}

// snapshot builds the Input for this poll and resets the per-poll counters.
func (t *tracker) snapshot(now time.Time, pressed []byte) Input {
	in := Input{
		Quit:     t.quit,
		Left:     now.Before(t.leftUntil),
		Right:    now.Before(t.rightUntil),
		Fire:     t.fire,
		Start:    t.start,
		Click:    t.click,
		ClickCol: t.clickCol,
		ClickRow: t.clickRow,
		Pressed:  pressed,
	}
	t.fire = 0
	t.start = false
	t.click = false
	return in
}

// reset forgets held keys, e.g. after a game starts so a held start key
// does not leak into gameplay.
func (t *tracker) reset() {
	*t = tracker{quit: t.quit}
}
