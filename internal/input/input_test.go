package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func newTestStream(data string) *Stream {
	s := &Stream{ch: make(chan byte, len(data)+1)}
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
	return s
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(Input) bool
	}{
		{"wasd up", "w", func(in Input) bool { return in.Up && !in.Down }},
		{"arrow left", "\x1b[D", func(in Input) bool { return in.Left && !in.Escape }},
		{"arrow right", "\x1b[C", func(in Input) bool { return in.Right }},
		{"combination", "ad\x1b[A", func(in Input) bool { return in.Left && in.Right && in.Up }},
		{"ijkl down", "k", func(in Input) bool { return in.Down }},
		{"quit", "q", func(in Input) bool { return in.Quit }},
		{"enter", "\r", func(in Input) bool { return in.Enter }},
		{"bare escape", "\x1b", func(in Input) bool { return in.Escape }},
		{"nothing", "", func(in Input) bool { return !in.Any() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ReadInput(newTestStream(tt.data))
			if !tt.check(in) {
				t.Errorf("unexpected input %+v", in)
			}
		})
	}
}

func TestKeyHold(t *testing.T) {
	s := newTestStream("d")
	now := time.Now()

	if in := readInputAt(s, now); !in.Right {
		t.Fatal("key should be held on the frame it was read")
	}
	if in := readInputAt(s, now.Add(keyHoldDuration/2)); !in.Right {
		t.Error("key should still be held within the hold duration")
	}
	if in := readInputAt(s, now.Add(keyHoldDuration)); in.Right {
		t.Error("key should be released after the hold duration")
	}
}

func TestReadInputMouse(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		want     Pointer
		wantKeys string
	}{
		{"press", "\x1b[<0;12;7M", Pointer{Col: 12, Row: 7, Down: true}, ""},
		{"drag", "\x1b[<0;1;1M\x1b[<32;40;20M", Pointer{Col: 40, Row: 20, Down: true}, ""},
		{"release", "\x1b[<0;3;4M\x1b[<0;5;6m", Pointer{Col: 5, Row: 6}, ""},
		{"right button ignored", "\x1b[<2;9;9M", Pointer{Col: 9, Row: 9}, ""},
		{"keys around report", "a\x1b[<0;2;3Md", Pointer{Col: 2, Row: 3, Down: true}, "ad"},
		{"malformed falls back to bytes", "\x1b[<0;x", Pointer{}, "\x1b[<0;x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ReadInput(newTestStream(tt.data))
			if in.Pointer != tt.want {
				t.Errorf("pointer = %+v, want %+v", in.Pointer, tt.want)
			}
			if string(in.Pressed) != tt.wantKeys {
				t.Errorf("pressed = %q, want %q", in.Pressed, tt.wantKeys)
			}
		})
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newTestStream("w\x1b[<0;4;5M")
	if in := ReadInput(s); !in.Up || !in.Pointer.Down {
		t.Fatalf("setup failed: %+v", in)
	}

	ResetKeyInput(s)

	in := ReadInput(s)
	if in.Up || in.Pointer.Down {
		t.Errorf("state should be cleared, got %+v", in)
	}
	if in.Pointer.Col != 4 || in.Pointer.Row != 5 {
		t.Errorf("pointer position should survive a reset, got %+v", in.Pointer)
	}
}

func TestIntentFromKeys(t *testing.T) {
	in := Input{Up: true, Left: true}
	got := in.Intent()
	if got.Mode != ModeKeys || !got.Up || !got.Left || got.Down || got.Right {
		t.Errorf("unexpected intent %+v", got)
	}
}

func TestStartStreamClosesOnEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("s")))

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after EOF")
		}
	}
}
