// Package world runs one game: the player, the enemies, every laser in flight
// and the explosions, advanced one frame at a time.
//
// A World is single-threaded. Update must not be called concurrently, and
// state read between updates is only valid until the next one.
package world

import (
	"math/rand"
	"time"

	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/input"
	"github.com/tomz197/galacticsurvivor/internal/object"
	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// Rand is the random source used for enemy spawn positions.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// World holds all state of a single game.
type World struct {
	Player       *object.Ship
	Enemies      []*object.Ship
	PlayerLasers []*object.Laser
	EnemyLasers  []*object.Laser
	Explosions   []*object.Explosion
	Score        int

	tuning     config.Tuning
	bounds     physics.Rect
	rng        Rand
	spawnTimer time.Duration
	frames     uint64
}

// New creates a world with the player at its start position and nothing else.
// A nil rng falls back to a time-seeded generator.
func New(t config.Tuning, rng Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &World{
		Player: object.NewPlayerShip(t),
		tuning: t,
		bounds: physics.NewRect(0, 0, t.WorldWidth, t.WorldHeight),
		rng:    rng,
	}
}

// NewSeeded creates a world whose enemy spawns are reproducible from seed.
// A zero seed is time-seeded.
func NewSeeded(t config.Tuning, seed int64) *World {
	if seed == 0 {
		return New(t, nil)
	}
	return New(t, rand.New(rand.NewSource(seed)))
}

// Update advances the world by dt. The phases run in a fixed order:
// movement, cooldowns, spawning, enemy movement, firing, laser flight,
// collisions, and then explosions. Score and lives change during collisions.
// A negative dt is treated as zero.
func (w *World) Update(dt time.Duration, intent input.Intent) {
	dt = max(dt, 0)

	w.movePlayer(dt, intent)
	w.Player.Update(dt)

	w.spawnEnemies(dt)

	for _, enemy := range w.Enemies {
		w.moveEnemy(enemy, dt)
		enemy.Update(dt)
	}

	w.fireLasers()
	w.advanceLasers(dt)

	w.detectCollisions()

	w.updateExplosions(dt)

	w.frames++
}

// updateExplosions advances every explosion and drops the finished ones.
func (w *World) updateExplosions(dt time.Duration) {
	for _, e := range w.Explosions {
		e.Update(dt)
	}
	w.Explosions = object.Compact(w.Explosions)
}

// GameOver reports whether the player has run out of lives.
func (w *World) GameOver() bool {
	return w.Player.Lives <= 0
}

// HUD returns the values for the heads-up display.
func (w *World) HUD() object.HUD {
	return object.HUD{Score: w.Score, Shield: w.Player.Shield, Lives: w.Player.Lives}
}

// Tuning returns the parameters the world was built with.
func (w *World) Tuning() config.Tuning {
	return w.tuning
}

// Bounds returns the world rectangle, anchored at the origin.
func (w *World) Bounds() physics.Rect {
	return w.bounds
}

// SpawnTimer returns the time accumulated towards the next enemy spawn.
func (w *World) SpawnTimer() time.Duration {
	return w.spawnTimer
}

// Frames returns how many updates have run.
func (w *World) Frames() uint64 {
	return w.frames
}

// AppendSprites appends everything a host should draw this frame, back to front:
// enemies, the player, lasers and finally explosions.
func (w *World) AppendSprites(dst []object.Sprite) []object.Sprite {
	for _, enemy := range w.Enemies {
		dst = enemy.AppendSprites(dst)
	}
	dst = w.Player.AppendSprites(dst)
	for _, l := range w.PlayerLasers {
		dst = append(dst, l.Sprite())
	}
	for _, l := range w.EnemyLasers {
		dst = append(dst, l.Sprite())
	}
	for _, e := range w.Explosions {
		dst = append(dst, e.Sprite())
	}
	return dst
}
