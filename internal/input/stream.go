package input

import (
	"bufio"
	"time"
)

// Stream delivers raw terminal input bytes via a channel and decodes key
// presses and SGR mouse reports.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence carried to the next poll
	state   tracker
}

// Compile-time check that Stream implements Source.
var _ Source = (*Stream)(nil)

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes from the stream (non-blocking) and returns
// the input for this tick. A closed input stream reads as a quit request.
func (s *Stream) Poll(now time.Time) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var data []byte
	if len(buf) == 0 {
		// Nothing new arrived: a lone ESC or truncated sequence will never complete.
		s.pending = s.pending[:0]
	} else {
		data = append(s.pending, buf...)
	}

	events, used := Decode(data)
	s.pending = append(s.pending[:0], data[used:]...)

	for _, ev := range events {
		s.state.apply(ev, now)
	}
	if closed {
		s.state.quit = true
	}
	return s.state.snapshot(now, buf)
}

// Reset forgets held keys and pending presses.
func (s *Stream) Reset() {
	s.pending = s.pending[:0]
	s.state.reset()
}

// Decode parses raw terminal bytes into events. It returns the number of bytes
// consumed; a trailing incomplete escape sequence is left unconsumed.
func Decode(data []byte) (events []Event, used int) {
	i := 0
	for i < len(data) {
		b := data[i]
		if b != '\x1b' {
			if key := keyForByte(b); key != KeyNone {
				events = append(events, Event{Key: key})
			}
			i++
			continue
		}

		// ESC: need at least "ESC [" plus one byte to decide.
		if i+1 >= len(data) {
			return events, i
		}
		if data[i+1] != '[' {
			i++ // Lone ESC followed by something else: drop the ESC
			continue
		}
		if i+2 >= len(data) {
			return events, i
		}

		switch data[i+2] {
		case 'C':
			events = append(events, Event{Key: KeyRight})
			i += 3
		case 'D':
			events = append(events, Event{Key: KeyLeft})
			i += 3
		case 'A', 'B':
			i += 3 // Up/down arrows are unused
		case '<':
			ev, n, complete := decodeSGRMouse(data[i:])
			if !complete {
				return events, i
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += n
		default:
			i += 2 // Unknown CSI: skip "ESC [" and continue with the rest as plain bytes
		}
	}
	return events, i
}

// decodeSGRMouse parses "ESC [ < b ; x ; y (M|m)". Returns the event (nil for
// releases, motion and non-left buttons), the sequence length and whether the
// sequence was complete.
func decodeSGRMouse(data []byte) (*Event, int, bool) {
	var fields [3]int
	field := 0
	for i := 3; i < len(data); i++ {
		c := data[i]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			field++
			if field > 2 {
				return nil, i + 1, true
			}
		case c == 'M' || c == 'm':
			if field != 2 {
				return nil, i + 1, true
			}
			button := fields[0]
			// Left button press without motion (bit 5) or wheel (bit 6).
			if c == 'M' && button&0b11 == 0 && button&(32|64) == 0 {
				return &Event{Click: true, Col: fields[1], Row: fields[2]}, i + 1, true
			}
			return nil, i + 1, true
		default:
			return nil, i + 1, true // Malformed, skip it
		}
	}
	return nil, 0, false
}

// keyForByte maps a single byte to its game action.
func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case ' ':
		return KeyFire
	case 'p', 'P', '\r', '\n':
		return KeyStart
	default:
		return KeyNone
	}
}
