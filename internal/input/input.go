package input

import (
	"bufio"
	"strconv"
	"time"

	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Mode selects how the player ship is steered.
type Mode int

const (
	// ModeKeys moves the ship with the four direction keys.
	ModeKeys Mode = iota
	// ModeDrag moves the ship towards a pointer target.
	ModeDrag
)

// Intent is the movement the player asks for in a single frame.
// Target is in world units and only read in ModeDrag.
type Intent struct {
	Mode   Mode
	Target physics.Point
	Up     bool
	Down   bool
	Left   bool
	Right  bool
}

// Pointer is the last mouse position reported by the terminal, in 1-based cells.
type Pointer struct {
	Col, Row int
	Down     bool // Left button held
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Escape  bool
	Pointer Pointer
	Pressed []byte
}

// Intent converts the key state into a keys-mode movement intent.
func (in Input) Intent() Intent {
	return Intent{Mode: ModeKeys, Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right}
}

// Any reports whether any key or mouse button was pressed this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0 || in.Pointer.Down
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	up      time.Time
	down    time.Time
	space   time.Time
	enter   time.Time
	escape  time.Time
	pointer Pointer
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
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

// ResetKeyInput forgets every held key and the mouse button, so a key that
// ended one screen does not leak into the next.
func ResetKeyInput(s *Stream) {
	pos := s.state.pointer
	pos.Down = false
	s.state = keyState{pointer: pos}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports and
// accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	pressed := parseBytes(&s.state, buf, now)

	return Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < keyHoldDuration,
		Down:    now.Sub(s.state.down) < keyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Pointer: s.state.pointer,
		Pressed: pressed,
	}
}

// parseBytes updates the key state timestamps and returns the bytes that were
// plain key presses. Mouse reports are consumed and not returned.
func parseBytes(state *keyState, buf []byte, now time.Time) []byte {
	var pressed []byte
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			case '<':
				if n, ok := parseMouse(buf[i+3:], &state.pointer); ok {
					i += 2 + n
					continue
				}
			}
		}

		applyByteToState(state, b, now)
		pressed = append(pressed, b)
	}
	return pressed
}

// parseMouse decodes the body of an SGR mouse report, "b;col;row" followed by
// M (press or motion) or m (release). It returns the bytes consumed.
func parseMouse(buf []byte, p *Pointer) (int, bool) {
	var fields [3]int
	field, start := 0, 0
	for i, c := range buf {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
		case (c == 'M' || c == 'm') && field == 2:
		default:
			return 0, false
		}
		v, err := strconv.Atoi(string(buf[start:i]))
		if err != nil {
			return 0, false
		}
		fields[field] = v
		field++
		start = i + 1

		if c == 'M' || c == 'm' {
			button := fields[0] &^ 32 // Strip the motion bit
			if button&3 == 0 && button < 64 {
				p.Down = c == 'M'
			}
			p.Col, p.Row = fields[1], fields[2]
			return i + 1, true
		}
	}
	return 0, false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
