package object

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// Ship is a player or enemy spaceship. Both variants share this struct;
// Side selects the fire pattern, laser direction and descent vector.
type Ship struct {
	Side          Side
	Box           physics.Rect
	MovementSpeed float64 // World units per second

	Health    int
	MaxHealth int
	Shield    int
	Lives     int // Only meaningful for the player

	LaserDamage    int
	LaserWidth     float64
	LaserHeight    float64
	LaserSpeed     float64
	LaserFrequency time.Duration // Minimum time between volleys

	timeSinceLastLaser time.Duration
	destroyed          bool
}

// NewShip creates a ship of the given side occupying box.
func NewShip(side Side, spec config.ShipSpec, box physics.Rect) *Ship {
	return &Ship{
		Side:           side,
		Box:            box,
		MovementSpeed:  spec.MovementSpeed,
		Health:         spec.Health,
		MaxHealth:      spec.Health,
		Shield:         spec.Shield,
		LaserDamage:    spec.LaserDamage,
		LaserWidth:     spec.LaserWidth,
		LaserHeight:    spec.LaserHeight,
		LaserSpeed:     spec.LaserSpeed,
		LaserFrequency: spec.LaserFrequency,
	}
}

// NewPlayerShip creates the player at the tuning's start position with full lives.
func NewPlayerShip(t config.Tuning) *Ship {
	box := physics.RectAround(t.PlayerStartX, t.PlayerStartY, t.Player.Width, t.Player.Height)
	s := NewShip(SidePlayer, t.Player, box)
	s.Lives = t.Lives
	return s
}

// NewEnemyShip creates an enemy whose bottom-left corner is at (x, y).
func NewEnemyShip(spec config.ShipSpec, x, y float64) *Ship {
	return NewShip(SideEnemy, spec, physics.NewRect(x, y, spec.Width, spec.Height))
}

// Translate moves the ship. Callers clamp the displacement to the world.
func (s *Ship) Translate(dx, dy float64) {
	s.Box = s.Box.Translate(dx, dy)
}

// Update advances the fire cooldown.
func (s *Ship) Update(dt time.Duration) {
	s.timeSinceLastLaser += dt
}

// CanFireLaser reports whether the cooldown has elapsed.
func (s *Ship) CanFireLaser() bool {
	return s.timeSinceLastLaser >= s.LaserFrequency
}

// fireOffset places a laser relative to the ship's box, as fractions of its size.
type fireOffset struct {
	x, y float64
}

// Player lasers leave the wingtips just below mid-height; enemy lasers leave
// from under the hull.
var firePatterns = map[Side][]fireOffset{
	SidePlayer: {{x: 0.07, y: 0.45}, {x: 0.93, y: 0.45}},
	SideEnemy:  {{x: 0.18, y: 0}, {x: 0.82, y: 0}},
}

// FireLasers resets the cooldown and returns the volley for this ship's side.
// It returns nil while the ship is still cooling down.
func (s *Ship) FireLasers() []*Laser {
	if !s.CanFireLaser() {
		return nil
	}
	s.timeSinceLastLaser = 0

	pattern := firePatterns[s.Side]
	lasers := make([]*Laser, 0, len(pattern))
	for _, off := range pattern {
		x := s.Box.X + s.Box.W*off.x - s.LaserWidth/2
		var y float64
		if s.Side == SideEnemy {
			y = s.Box.Y - s.LaserHeight
		} else {
			y = s.Box.Y + s.Box.H*off.y
		}
		lasers = append(lasers, &Laser{
			Side:   s.Side,
			Box:    physics.NewRect(x, y, s.LaserWidth, s.LaserHeight),
			Speed:  s.LaserSpeed,
			Damage: s.LaserDamage,
		})
	}
	return lasers
}

// Intersects reports whether the laser overlaps the ship.
func (s *Ship) Intersects(box physics.Rect) bool {
	return s.Box.Intersects(box)
}

// HitAndCheckDestroyed applies a laser's damage, shield first, with any
// excess spilling into health. Returns true if health dropped to zero or below.
func (s *Ship) HitAndCheckDestroyed(l *Laser) bool {
	damage := l.Damage
	if s.Shield > 0 {
		absorbed := min(damage, s.Shield)
		s.Shield -= absorbed
		damage -= absorbed
	}
	s.Health -= damage
	return s.Health <= 0
}

// LoseLife consumes one life and brings the ship back with the given shield
// and full health. Lives are allowed to go below zero; game over is decided above.
func (s *Ship) LoseLife(respawnShield int) {
	s.Lives--
	s.Shield = respawnShield
	s.Health = s.MaxHealth
}

// DirectionVector returns the unit vector an enemy descends along.
// Player ships are steered by input and return the zero vector.
func (s *Ship) DirectionVector() physics.Point {
	if s.Side == SideEnemy {
		return physics.Point{X: 0, Y: -1}
	}
	return physics.Point{}
}

// MarkDestroyed marks the ship for removal (implements Destructible).
func (s *Ship) MarkDestroyed() {
	s.destroyed = true
}

// IsDestroyed returns true if the ship is marked for removal (implements Destructible).
func (s *Ship) IsDestroyed() bool {
	return s.destroyed
}

// AppendSprites appends the hull and, while shielded, the shield overlay.
func (s *Ship) AppendSprites(dst []Sprite) []Sprite {
	hull, shield := SpritePlayerShip, SpritePlayerShield
	if s.Side == SideEnemy {
		hull, shield = SpriteEnemyShip, SpriteEnemyShield
	}
	dst = append(dst, Sprite{ID: hull, Box: s.Box})
	if s.Shield > 0 {
		dst = append(dst, Sprite{ID: shield, Box: s.Box})
	}
	return dst
}
