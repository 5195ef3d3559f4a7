package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// Half-block characters used to pack two sub-pixels into one terminal cell.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Drawing calls take world coordinates (y grows upward) that are stretched onto
// the terminal; each sub-pixel stores a colour.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], y counted from the top

	// Scaling from world to sub-pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []physics.Point // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	polygonBuf      []physics.Point // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas for the given terminal dimensions that shows a
// world of logicalWidth x logicalHeight units.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetLogicalSize changes the world area the canvas shows.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.Resize(c.termWidth, c.termHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a sub-pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixel returns the colour of a sub-pixel, ColorNone when out of range.
func (c *Canvas) pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// toPixel maps world coordinates to fractional sub-pixel coordinates.
func (c *Canvas) toPixel(x, y float64) (float64, float64) {
	return x * c.scaleX, (c.logicalHeight - y) * c.scaleY
}

// SetFloat sets the sub-pixel containing the world point (x, y).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(int(math.Floor(px)), int(math.Floor(py)), col)
}

// pixelSpan returns the half-open sub-pixel range covered by [lo, hi).
// Anything with positive extent covers at least one sub-pixel.
func pixelSpan(lo, hi float64) (int, int) {
	start := int(math.Floor(lo))
	end := int(math.Ceil(hi))
	if end <= start {
		end = start + 1
	}
	return start, end
}

// rectPixels returns the sub-pixel box covered by a world rectangle.
func (c *Canvas) rectPixels(r physics.Rect) (x0, y0, x1, y1 int) {
	left, top := c.toPixel(r.X, r.Top())
	right, bottom := c.toPixel(r.Right(), r.Y)
	x0, x1 = pixelSpan(left, right)
	y0, y1 = pixelSpan(top, bottom)
	return x0, y0, x1, y1
}

// FillRect fills a world rectangle.
func (c *Canvas) FillRect(r physics.Rect, col Color) {
	x0, y0, x1, y1 := c.rectPixels(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y, col)
		}
	}
}

// StrokeRect draws the one sub-pixel outline of a world rectangle.
func (c *Canvas) StrokeRect(r physics.Rect, col Color) {
	x0, y0, x1, y1 := c.rectPixels(r)
	for x := x0; x < x1; x++ {
		c.setPixel(x, y0, col)
		c.setPixel(x, y1-1, col)
	}
	for y := y0; y < y1; y++ {
		c.setPixel(x0, y, col)
		c.setPixel(x1-1, y, col)
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in world space and get scaled to sub-pixels.
func (c *Canvas) DrawLine(p1, p2 physics.Point, col Color) {
	fx1, fy1 := c.toPixel(p1.X, p1.Y)
	fx2, fy2 := c.toPixel(p2.X, p2.Y)
	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	x2, y2 := int(math.Floor(fx2)), int(math.Floor(fy2))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []physics.Point, filled bool, col Color) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// StrokeCircle draws a circle outline around a world point.
func (c *Canvas) StrokeCircle(centre physics.Point, radius float64, col Color) {
	if radius <= 0 {
		return
	}
	segments := max(8, int(radius*c.scaleX*4))
	points := c.BorrowPoints(segments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = physics.Point{X: centre.X + radius*math.Cos(a), Y: centre.Y + radius*math.Sin(a)}
	}
	c.DrawPolygon(points, false, col)
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []physics.Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]physics.Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		x, y := c.toPixel(p.X, p.Y)
		scaled[i] = physics.Point{X: x, Y: y}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Floor(intersections[i]))
			xEnd := int(math.Ceil(intersections[i+1])) - 1
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical 1500 byte MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
// Every row is repainted in full, so nothing from the previous frame survives.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		c.moveCursor(1+c.offsetCol, row+1+c.offsetRow)
		fg, bg := ColorNone, ColorNone

		for col := 0; col < c.termWidth; col++ {
			top := c.pixel(col, row*2)
			bottom := c.pixel(col, row*2+1)

			var ch rune
			wantFG, wantBG := ColorNone, ColorNone
			switch {
			case top == ColorNone && bottom == ColorNone:
				ch = ' '
				wantFG = fg // Foreground is irrelevant for a space
			case top == bottom:
				ch, wantFG = BlockFull, top
			case bottom == ColorNone:
				ch, wantFG = BlockUpperHalf, top
			case top == ColorNone:
				ch, wantFG = BlockLowerHalf, bottom
			default:
				ch, wantFG, wantBG = BlockUpperHalf, top, bottom
			}

			if wantFG != fg {
				c.renderBuf.WriteString(wantFG.foreground())
				fg = wantFG
			}
			if wantBG != bg {
				c.renderBuf.WriteString(wantBG.background())
				bg = wantBG
			}
			c.renderBuf.WriteRune(ch)
		}
		c.renderBuf.WriteString(ColorReset)
	}

	return writeChunks(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeChunks writes data in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursor(left, top) + "┌" + line + "┐")
			buf.WriteString(cursor(left, bottom) + "└" + line + "┘")
		} else {
			buf.WriteString(cursor(c.offsetCol+1, top) + line)
			buf.WriteString(cursor(c.offsetCol+1, bottom) + line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursor(left, row) + "│" + cursor(right, row) + "│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// LogicalWidth returns the world width shown by the canvas.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the world height shown by the canvas.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts world coordinates to a 1-based canvas cell (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return int(math.Floor(px)) + 1, int(math.Floor(py))/2 + 1
}

// TerminalToLogical converts a 1-based canvas cell to the world point at its centre.
// Pointer positions must have the canvas offset removed first.
func (c *Canvas) TerminalToLogical(col, row int) physics.Point {
	px := float64(col-1) + 0.5
	py := float64((row-1)*2) + 1
	return physics.Point{
		X: px / c.scaleX,
		Y: c.logicalHeight - py/c.scaleY,
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// Thread-safe as long as each goroutine uses its own Canvas instance.
func (c *Canvas) BorrowPoints(n int) []physics.Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]physics.Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
