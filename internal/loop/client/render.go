package client

import (
	"math"
	"math/rand"

	"github.com/tomz197/galacticsurvivor/internal/draw"
	"github.com/tomz197/galacticsurvivor/internal/object"
	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// starsPerLayer is how many stars each parallax layer carries.
const starsPerLayer = 12

// layerColors shades the background layers from the slowest to the fastest.
var layerColors = [object.ParallaxLayers]draw.Color{
	draw.ColorGrey, draw.ColorGrey, draw.ColorBlue, draw.ColorWhite,
}

type star struct {
	pos   physics.Point
	layer int
}

// starfield is the fixed set of background stars scrolled by the parallax.
type starfield struct {
	width, height float64
	stars         []star
}

func newStarfield(width, height float64, seed int64) starfield {
	rng := rand.New(rand.NewSource(seed))
	sf := starfield{width: width, height: height}
	for layer := range object.ParallaxLayers {
		for range starsPerLayer {
			sf.stars = append(sf.stars, star{
				pos:   physics.Point{X: rng.Float64() * width, Y: rng.Float64() * height},
				layer: layer,
			})
		}
	}
	return sf
}

// draw plots every star shifted down by its layer's scroll offset.
func (sf starfield) draw(canvas *draw.Canvas, p *object.Parallax) {
	for _, s := range sf.stars {
		y := math.Mod(s.pos.Y-p.Offsets[s.layer], sf.height)
		if y < 0 {
			y += sf.height
		}
		canvas.SetFloat(s.pos.X, y, layerColors[s.layer])
	}
}

// drawSprite draws one world sprite onto the canvas.
func drawSprite(canvas *draw.Canvas, s object.Sprite) {
	b := s.Box
	switch s.ID {
	case object.SpritePlayerShip:
		// Nose up
		pts := canvas.BorrowPoints(3)
		pts[0] = physics.Point{X: b.X, Y: b.Y}
		pts[1] = physics.Point{X: b.Right(), Y: b.Y}
		pts[2] = physics.Point{X: b.X + b.W/2, Y: b.Top()}
		canvas.DrawPolygon(pts, true, draw.ColorCyan)
	case object.SpriteEnemyShip:
		// Nose down
		pts := canvas.BorrowPoints(3)
		pts[0] = physics.Point{X: b.X, Y: b.Top()}
		pts[1] = physics.Point{X: b.Right(), Y: b.Top()}
		pts[2] = physics.Point{X: b.X + b.W/2, Y: b.Y}
		canvas.DrawPolygon(pts, true, draw.ColorRed)
	case object.SpritePlayerShield:
		canvas.StrokeRect(b, draw.ColorBlue)
	case object.SpriteEnemyShield:
		canvas.StrokeRect(b, draw.ColorMagenta)
	case object.SpritePlayerLaser:
		canvas.FillRect(b, draw.ColorGreen)
	case object.SpriteEnemyLaser:
		canvas.FillRect(b, draw.ColorOrange)
	case object.SpriteExplosion:
		drawExplosion(canvas, s)
	}
}

// drawExplosion draws two rings that grow with the animation's progress.
func drawExplosion(canvas *draw.Canvas, s object.Sprite) {
	centre := s.Box.Center()
	radius := max(s.Box.W, s.Box.H) / 2
	outer := radius * (0.3 + 0.7*s.Progress)
	canvas.StrokeCircle(centre, outer, draw.ColorOrange)
	if s.Progress < 0.8 {
		canvas.StrokeCircle(centre, outer*0.5, draw.ColorYellow)
	}
}
