package world

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/object"
)

// spawnEnemies adds dt to the spawn timer and spawns one enemy for every full
// interval it holds. The interval is subtracted rather than the timer reset,
// so the spawn rate does not depend on how time was split across frames.
func (w *World) spawnEnemies(dt time.Duration) {
	interval := w.tuning.EnemySpawnInterval
	if interval <= 0 {
		return
	}

	w.spawnTimer += dt
	for w.spawnTimer > interval {
		w.spawnEnemy()
		w.spawnTimer -= interval
	}
}

// spawnEnemy places a new enemy at a random x, centred vertically on the top edge.
func (w *World) spawnEnemy() {
	spec := w.tuning.Enemy
	x := w.rng.Float64() * (w.bounds.W - spec.Width)
	y := w.bounds.H - spec.Height/2
	w.Enemies = append(w.Enemies, object.NewEnemyShip(spec, x, y))
}
