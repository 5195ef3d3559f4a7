package object

import (
	"fmt"
	"time"

	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// SpriteID identifies what a host should draw for a sprite.
type SpriteID int

const (
	SpritePlayerShip SpriteID = iota
	SpritePlayerShield
	SpriteEnemyShip
	SpriteEnemyShield
	SpritePlayerLaser
	SpriteEnemyLaser
	SpriteExplosion
)

var spriteNames = [...]string{
	SpritePlayerShip:   "player_ship",
	SpritePlayerShield: "player_shield",
	SpriteEnemyShip:    "enemy_ship",
	SpriteEnemyShield:  "enemy_shield",
	SpritePlayerLaser:  "player_laser",
	SpriteEnemyLaser:   "enemy_laser",
	SpriteExplosion:    "explosion",
}

// String returns the sprite's asset name.
func (id SpriteID) String() string {
	if id < 0 || int(id) >= len(spriteNames) {
		return fmt.Sprintf("sprite(%d)", int(id))
	}
	return spriteNames[id]
}

// Sprite is everything a host needs to draw one entity.
type Sprite struct {
	ID       SpriteID
	Box      physics.Rect // Placement in world units
	Progress float64      // Animation progress in [0, 1]; explosions only
}

// HUD holds the numbers shown in the heads-up display.
type HUD struct {
	Score  int
	Shield int
	Lives  int
}

// HUDLabels are the column headings, left to right.
var HUDLabels = [3]string{"Score", "Shield", "Lives"}

// Values returns the formatted column values, left to right.
func (h HUD) Values() [3]string {
	return [3]string{
		fmt.Sprintf("%06d", h.Score),
		fmt.Sprintf("%02d", h.Shield),
		fmt.Sprintf("%02d", h.Lives),
	}
}

// parallaxDivisors slow each background layer relative to the fastest.
var parallaxDivisors = [...]float64{8, 4, 2, 1}

// ParallaxLayers is the number of scrolling background layers.
const ParallaxLayers = len(parallaxDivisors)

// Parallax scrolls layered backgrounds at different speeds.
type Parallax struct {
	Offsets  [ParallaxLayers]float64
	height   float64
	maxSpeed float64
}

// NewParallax creates a background for a world of the given height.
// The fastest layer scrolls a quarter of the height per second.
func NewParallax(worldHeight float64) *Parallax {
	return &Parallax{height: worldHeight, maxSpeed: worldHeight / 4}
}

// Update scrolls every layer, wrapping each back to 0 once it passes the world height.
func (p *Parallax) Update(dt time.Duration) {
	for i, div := range parallaxDivisors {
		p.Offsets[i] += dt.Seconds() * p.maxSpeed / div
		if p.Offsets[i] > p.height {
			p.Offsets[i] = 0
		}
	}
}
