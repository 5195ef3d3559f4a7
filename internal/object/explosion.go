package object

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// ExplosionFrames is the number of frames in a 4x4 explosion sheet.
const ExplosionFrames = 16

// Explosion is a time-limited effect left where a ship was destroyed.
type Explosion struct {
	Box      physics.Rect
	Duration time.Duration
	Elapsed  time.Duration
}

// NewExplosion creates an explosion covering box.
func NewExplosion(box physics.Rect, duration time.Duration) *Explosion {
	return &Explosion{Box: box, Duration: duration}
}

// Update advances the explosion's clock.
func (e *Explosion) Update(dt time.Duration) {
	e.Elapsed += dt
}

// IsFinished returns true once the full duration has played.
func (e *Explosion) IsFinished() bool {
	return e.Elapsed >= e.Duration
}

// MarkDestroyed ends the explosion early (implements Destructible).
func (e *Explosion) MarkDestroyed() {
	e.Elapsed = e.Duration
}

// IsDestroyed is IsFinished (implements Destructible).
func (e *Explosion) IsDestroyed() bool {
	return e.IsFinished()
}

// Progress returns how far through the explosion is, in [0, 1].
func (e *Explosion) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	p := float64(e.Elapsed) / float64(e.Duration)
	return min(max(p, 0), 1)
}

// Frame returns the sheet frame to show, in [0, ExplosionFrames).
func (e *Explosion) Frame() int {
	return min(int(e.Progress()*ExplosionFrames), ExplosionFrames-1)
}

// Sprite returns the explosion's render description.
func (e *Explosion) Sprite() Sprite {
	return Sprite{ID: SpriteExplosion, Box: e.Box, Progress: e.Progress()}
}
