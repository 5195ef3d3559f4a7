package world

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/input"
	"github.com/tomz197/galacticsurvivor/internal/object"
	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// movePlayer moves the player by intent without leaving the world.
// The limits are computed once, before any key is applied.
func (w *World) movePlayer(dt time.Duration, intent input.Intent) {
	p := w.Player
	limits := p.Box.Limits(w.bounds)
	step := p.MovementSpeed * dt.Seconds()

	switch intent.Mode {
	case input.ModeDrag:
		centre := p.Box.Center()
		dist := physics.Distance(intent.Target, centre)
		if dist <= w.tuning.DragThreshold {
			return
		}
		xMove := (intent.Target.X - centre.X) / dist * step
		yMove := (intent.Target.Y - centre.Y) / dist * step
		p.Translate(
			physics.ClampMove(xMove, limits.Left, limits.Right),
			physics.ClampMove(yMove, limits.Down, limits.Up),
		)

	case input.ModeKeys:
		if intent.Right && limits.Right > 0 {
			p.Translate(min(step, limits.Right), 0)
		}
		if intent.Left && limits.Left < 0 {
			p.Translate(max(-step, limits.Left), 0)
		}
		if intent.Up && limits.Up > 0 {
			p.Translate(0, min(step, limits.Up))
		}
		if intent.Down && limits.Down < 0 {
			p.Translate(0, max(-step, limits.Down))
		}
	}
}

// moveEnemy moves an enemy along its direction vector. Enemies stay inside the
// world horizontally and never descend below the middle of the world.
func (w *World) moveEnemy(enemy *object.Ship, dt time.Duration) {
	limits := enemy.Box.Limits(w.bounds)
	limits.Down = w.bounds.H/2 - enemy.Box.Y

	dir := enemy.DirectionVector()
	step := enemy.MovementSpeed * dt.Seconds()

	enemy.Translate(
		physics.ClampMove(dir.X*step, limits.Left, limits.Right),
		physics.ClampMove(dir.Y*step, limits.Down, limits.Up),
	)
}
