package world

import (
	"github.com/tomz197/galacticsurvivor/internal/object"
)

// detectCollisions resolves laser hits in two passes. Each player laser hits at
// most the first enemy it overlaps, in enemy order. Then the first enemy laser
// overlapping the player hits it; the rest wait for the next frame.
func (w *World) detectCollisions() {
	w.collidePlayerLasers()
	w.collideEnemyLasers()
}

func (w *World) collidePlayerLasers() {
	if len(w.PlayerLasers) == 0 || len(w.Enemies) == 0 {
		return
	}

	for _, l := range w.PlayerLasers {
		for _, enemy := range w.Enemies {
			if enemy.IsDestroyed() || !enemy.Intersects(l.Box) {
				continue
			}
			if enemy.HitAndCheckDestroyed(l) {
				enemy.MarkDestroyed()
				w.Explosions = append(w.Explosions, object.NewExplosion(enemy.Box, w.tuning.EnemyExplosion))
				w.Score += w.tuning.EnemyScore
			}
			l.MarkDestroyed()
			break
		}
	}

	w.Enemies = object.Compact(w.Enemies)
	w.PlayerLasers = object.Compact(w.PlayerLasers)
}

func (w *World) collideEnemyLasers() {
	p := w.Player
	for _, l := range w.EnemyLasers {
		if !p.Intersects(l.Box) {
			continue
		}
		if p.HitAndCheckDestroyed(l) {
			w.Explosions = append(w.Explosions, object.NewExplosion(p.Box, w.tuning.PlayerExplosion))
			p.LoseLife(w.tuning.RespawnShield)
		}
		l.MarkDestroyed()
		break
	}

	w.EnemyLasers = object.Compact(w.EnemyLasers)
}
