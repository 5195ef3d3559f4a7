package world

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/object"
)

// fireLasers fires a volley from every ship whose cooldown has elapsed.
func (w *World) fireLasers() {
	if w.Player.CanFireLaser() {
		w.PlayerLasers = append(w.PlayerLasers, w.Player.FireLasers()...)
	}
	for _, enemy := range w.Enemies {
		if enemy.CanFireLaser() {
			w.EnemyLasers = append(w.EnemyLasers, enemy.FireLasers()...)
		}
	}
}

// advanceLasers moves every laser and drops the ones that left the world.
func (w *World) advanceLasers(dt time.Duration) {
	w.PlayerLasers = advance(w.PlayerLasers, dt, w.bounds.H)
	w.EnemyLasers = advance(w.EnemyLasers, dt, w.bounds.H)
}

func advance(lasers []*object.Laser, dt time.Duration, height float64) []*object.Laser {
	for _, l := range lasers {
		l.Advance(dt)
		if l.Expired(height) {
			l.MarkDestroyed()
		}
	}
	return object.Compact(lasers)
}
