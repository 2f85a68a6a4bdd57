package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellSource turns tcell screen events into game input. A goroutine polls
// the screen and forwards events through a channel the game loop drains.
type TcellSource struct {
	events chan tcell.Event
	state  tracker
	mouse  tcell.ButtonMask // Buttons held at the previous mouse event
}

// Compile-time check that TcellSource implements Source.
var _ Source = (*TcellSource)(nil)

// NewTcellSource creates a source without a polling goroutine. Feed it with
// Push; used by tests and by StartTcellSource.
func NewTcellSource() *TcellSource {
	return &TcellSource{
		events: make(chan tcell.Event, 128),
	}
}

// StartTcellSource polls the screen until it is finalized.
func StartTcellSource(screen tcell.Screen) *TcellSource {
	s := NewTcellSource()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	}()
	return s
}

// Push queues an event without blocking; drops it if the queue is full.
func (s *TcellSource) Push(ev tcell.Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// Poll drains all pending events and returns the input for this tick.
func (s *TcellSource) Poll(now time.Time) Input {
	var pressed []byte

drain:
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.state.quit = true
				break drain
			}
			for _, e := range s.translate(ev) {
				s.state.apply(e, now)
				pressed = append(pressed, 0)
			}
		default:
			break drain
		}
	}
	return s.state.snapshot(now, pressed)
}

// Reset forgets held keys and pending presses.
func (s *TcellSource) Reset() {
	s.state.reset()
}

// translate converts one tcell event into game events.
func (s *TcellSource) translate(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if key := keyForTcell(ev); key != KeyNone {
			return []Event{{Key: key}}
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && s.mouse&tcell.Button1 == 0
		s.mouse = buttons
		if pressed {
			x, y := ev.Position()
			return []Event{{Click: true, Col: x + 1, Row: y + 1}}
		}
	}
	return nil
}

// keyForTcell maps a tcell key event to its game action.
func keyForTcell(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEnter:
		return KeyStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		r := ev.Rune()
		if r < 0x80 {
			return keyForByte(byte(r))
		}
	}
	return KeyNone
}
