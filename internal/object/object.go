// Package object holds the game entities: ships, lasers, explosions, and the
// render-facing sprite and HUD descriptions a host draws from.
package object

// Side tags which team an entity belongs to.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns the side's name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Destructible is implemented by entities that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the entity for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the entity should be removed from its collection.
	IsDestroyed() bool
}

// Compact removes destroyed entities in place, preserving the order of the rest.
// The backing array is reused; removed slots are cleared so they can be collected.
func Compact[T Destructible](items []T) []T {
	kept := items[:0]
	for _, item := range items {
		if !item.IsDestroyed() {
			kept = append(kept, item)
		}
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
