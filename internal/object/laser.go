package object

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// Laser is a bolt fired by a ship. Its velocity is fixed at creation:
// player lasers travel up, enemy lasers travel down.
type Laser struct {
	Side      Side
	Box       physics.Rect
	Speed     float64 // World units per second
	Damage    int
	destroyed bool
}

// Advance moves the laser along its side's axis.
func (l *Laser) Advance(dt time.Duration) {
	step := l.Speed * dt.Seconds()
	if l.Side == SideEnemy {
		step = -step
	}
	l.Box.Y += step
}

// Expired reports whether the laser has left the world: player lasers once their
// bottom edge passes the top, enemy lasers once their top edge drops below zero.
func (l *Laser) Expired(worldHeight float64) bool {
	if l.Side == SideEnemy {
		return l.Box.Top() < 0
	}
	return l.Box.Y > worldHeight
}

// MarkDestroyed marks the laser for removal (implements Destructible).
func (l *Laser) MarkDestroyed() {
	l.destroyed = true
}

// IsDestroyed returns true once the laser has hit something or expired (implements Destructible).
func (l *Laser) IsDestroyed() bool {
	return l.destroyed
}

// Sprite returns the laser's render description.
func (l *Laser) Sprite() Sprite {
	id := SpritePlayerLaser
	if l.Side == SideEnemy {
		id = SpriteEnemyLaser
	}
	return Sprite{ID: id, Box: l.Box}
}
