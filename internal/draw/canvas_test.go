package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// newWorldCanvas returns a canvas where one world unit is one sub-pixel.
func newWorldCanvas() *Canvas {
	return NewCanvas(72, 64, 72, 128)
}

func countPixels(c *Canvas, col Color) int {
	n := 0
	for _, p := range c.pixels {
		if p == col {
			n++
		}
	}
	return n
}

func TestFillRectFlipsY(t *testing.T) {
	c := newWorldCanvas()
	c.FillRect(physics.NewRect(0, 0, 2, 2), ColorRed)

	// World y=0 is the bottom of the screen.
	for _, p := range [][2]int{{0, 126}, {1, 126}, {0, 127}, {1, 127}} {
		if got := c.pixel(p[0], p[1]); got != ColorRed {
			t.Errorf("pixel %v = %d, want red", p, got)
		}
	}
	if n := countPixels(c, ColorRed); n != 4 {
		t.Errorf("filled %d sub-pixels, want 4", n)
	}
}

func TestFillRectThinStillVisible(t *testing.T) {
	c := newWorldCanvas()
	c.FillRect(physics.NewRect(10.2, 50, 0.5, 5), ColorYellow)

	if n := countPixels(c, ColorYellow); n != 5 {
		t.Errorf("thin laser covered %d sub-pixels, want 5", n)
	}
}

func TestStrokeRect(t *testing.T) {
	c := newWorldCanvas()
	c.StrokeRect(physics.NewRect(10, 10, 4, 4), ColorCyan)

	if n := countPixels(c, ColorCyan); n != 12 {
		t.Errorf("outline has %d sub-pixels, want 12", n)
	}
	if c.pixel(11, 115) != ColorNone {
		t.Error("outline should leave the interior empty")
	}
}

func TestFillPolygon(t *testing.T) {
	c := newWorldCanvas()
	square := []physics.Point{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 30}, {X: 20, Y: 30}}
	c.DrawPolygon(square, true, ColorGreen)

	if c.pixel(25, 128-25) != ColorGreen {
		t.Error("polygon interior should be filled")
	}
	if c.pixel(40, 128-25) != ColorNone {
		t.Error("pixels outside the polygon should stay empty")
	}
}

func TestStrokeCircleStaysOnRing(t *testing.T) {
	c := newWorldCanvas()
	c.StrokeCircle(physics.Point{X: 36, Y: 64}, 10, ColorOrange)

	if countPixels(c, ColorOrange) == 0 {
		t.Fatal("circle drew nothing")
	}
	if c.pixel(36, 64) != ColorNone {
		t.Error("circle centre should stay empty")
	}
}

func TestTerminalMappingRoundTrip(t *testing.T) {
	sizes := [][2]int{{72, 64}, {80, 40}, {37, 91}}
	for _, size := range sizes {
		c := NewCanvas(size[0], size[1], 72, 128)
		for row := 1; row <= size[1]; row++ {
			for col := 1; col <= size[0]; col++ {
				p := c.TerminalToLogical(col, row)
				if p.X < 0 || p.X > 72 || p.Y < 0 || p.Y > 128 {
					t.Fatalf("%v: cell (%d,%d) maps outside the world: %v", size, col, row, p)
				}
				gotCol, gotRow := c.LogicalToTerminal(p.X, p.Y)
				if gotCol != col || gotRow != row {
					t.Fatalf("%v: cell (%d,%d) round-tripped to (%d,%d)", size, col, row, gotCol, gotRow)
				}
			}
		}
	}
}

func TestTerminalToLogicalCorners(t *testing.T) {
	c := newWorldCanvas()

	if p := c.TerminalToLogical(1, 1); p != (physics.Point{X: 0.5, Y: 127}) {
		t.Errorf("top-left cell centre = %v", p)
	}
	if p := c.TerminalToLogical(72, 64); p != (physics.Point{X: 71.5, Y: 1}) {
		t.Errorf("bottom-right cell centre = %v", p)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		paint func(c *Canvas)
		want  string
	}{
		{
			name:  "empty",
			paint: func(c *Canvas) {},
			want:  "\033[1;1H  " + ColorReset,
		},
		{
			name:  "upper half",
			paint: func(c *Canvas) { c.SetFloat(0.5, 1.5, ColorRed) },
			want:  "\033[1;1H\033[38;5;196m▀ " + ColorReset,
		},
		{
			name: "full block",
			paint: func(c *Canvas) {
				c.FillRect(physics.NewRect(1, 0, 1, 2), ColorWhite)
			},
			want: "\033[1;1H \033[38;5;15m█" + ColorReset,
		},
		{
			name: "two colours",
			paint: func(c *Canvas) {
				c.SetFloat(0.5, 1.5, ColorRed)
				c.SetFloat(0.5, 0.5, ColorBlue)
			},
			want: "\033[1;1H\033[38;5;196m\033[48;5;33m▀\033[49m " + ColorReset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(2, 1, 2, 2)
			tt.paint(c)

			var buf bytes.Buffer
			if err := c.Render(&buf); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("Render() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewCanvas(2, 2, 2, 4)
	c.SetOffset(3, 5)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[6;4H") || !strings.Contains(buf.String(), "\033[7;4H") {
		t.Errorf("rows not positioned at the offset: %q", buf.String())
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.SetOffset(1, 1)

	var buf bytes.Buffer
	if err := c.RenderBorder(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\033[1;1H┌────┐", "\033[4;1H└────┘", "\033[2;1H│", "\033[3;6H│"} {
		if !strings.Contains(out, want) {
			t.Errorf("border missing %q in %q", want, out)
		}
	}
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)

	cw.WriteAt(1, 1, "hi")
	cw.WriteCentered(10, 2, "abcd")
	cw.WriteString(strings.Repeat("x", maxChunkSize*2))

	if out.Len() != 0 {
		t.Fatal("nothing should be written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[4;3Hhi\033[5;6Habcd") {
		t.Errorf("unexpected prefix %q", got[:min(len(got), 32)])
	}
	if cw.Len() != 0 {
		t.Error("buffer should be empty after Flush")
	}
}
