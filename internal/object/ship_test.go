package object

import (
	"testing"
	"time"

	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/physics"
)

// createTestShip creates a ship with the given shield and health and default lasers.
func createTestShip(side Side, shield, health int) *Ship {
	spec := config.Default().Player
	spec.Shield = shield
	spec.Health = health
	return NewShip(side, spec, physics.NewRect(31, 4, 10, 10))
}

func TestHitAndCheckDestroyed(t *testing.T) {
	tests := []struct {
		name          string
		shield        int
		health        int
		damage        int
		wantShield    int
		wantHealth    int
		wantDestroyed bool
	}{
		{"shield absorbs all", 3, 1, 1, 2, 1, false},
		{"shield absorbs exactly", 3, 1, 3, 0, 1, false},
		{"excess spills into health", 2, 5, 4, 0, 3, false},
		{"excess kills", 1, 1, 2, 0, 0, true},
		{"no shield hits health", 0, 2, 1, 0, 1, false},
		{"no shield kills", 0, 1, 1, 0, 0, true},
		{"overkill goes negative", 0, 1, 5, 0, -4, true},
		{"zero damage", 0, 1, 0, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, side := range []Side{SidePlayer, SideEnemy} {
				ship := createTestShip(side, tt.shield, tt.health)
				destroyed := ship.HitAndCheckDestroyed(&Laser{Damage: tt.damage})

				if destroyed != tt.wantDestroyed {
					t.Errorf("%s: destroyed = %v, want %v", side, destroyed, tt.wantDestroyed)
				}
				if ship.Shield != tt.wantShield {
					t.Errorf("%s: shield = %d, want %d", side, ship.Shield, tt.wantShield)
				}
				if ship.Health != tt.wantHealth {
					t.Errorf("%s: health = %d, want %d", side, ship.Health, tt.wantHealth)
				}
			}
		})
	}
}

func TestFireLasersRespectsCooldown(t *testing.T) {
	ship := createTestShip(SidePlayer, 3, 1)

	if ship.CanFireLaser() {
		t.Fatal("new ship should start on cooldown")
	}
	if lasers := ship.FireLasers(); lasers != nil {
		t.Fatalf("expected no lasers on cooldown, got %d", len(lasers))
	}

	ship.Update(ship.LaserFrequency - time.Millisecond)
	if ship.CanFireLaser() {
		t.Fatal("cooldown should not be over yet")
	}

	ship.Update(time.Millisecond)
	if !ship.CanFireLaser() {
		t.Fatal("cooldown should be over exactly at the frequency")
	}

	lasers := ship.FireLasers()
	if len(lasers) != 2 {
		t.Fatalf("expected 2 lasers, got %d", len(lasers))
	}
	if ship.CanFireLaser() {
		t.Error("firing should reset the cooldown")
	}
}

func TestPlayerFirePattern(t *testing.T) {
	ship := createTestShip(SidePlayer, 3, 1)
	ship.Update(ship.LaserFrequency)

	lasers := ship.FireLasers()
	if len(lasers) != 2 {
		t.Fatalf("expected 2 lasers, got %d", len(lasers))
	}

	wantCentres := []float64{31 + 10*0.07, 31 + 10*0.93}
	for i, l := range lasers {
		if l.Side != SidePlayer {
			t.Errorf("laser %d: side = %v", i, l.Side)
		}
		if got := l.Box.Center().X; abs(got-wantCentres[i]) > 1e-9 {
			t.Errorf("laser %d: centre x = %v, want %v", i, got, wantCentres[i])
		}
		if got := l.Box.Y; abs(got-(4+10*0.45)) > 1e-9 {
			t.Errorf("laser %d: y = %v, want %v", i, got, 4+10*0.45)
		}
		if l.Box.W != ship.LaserWidth || l.Box.H != ship.LaserHeight {
			t.Errorf("laser %d: size %vx%v", i, l.Box.W, l.Box.H)
		}
		if l.Damage != ship.LaserDamage || l.Speed != ship.LaserSpeed {
			t.Errorf("laser %d: damage/speed not copied from ship", i)
		}
	}
}

func TestEnemyFirePatternStartsBelowHull(t *testing.T) {
	spec := config.Default().Enemy
	ship := NewEnemyShip(spec, 20, 80)
	ship.Update(spec.LaserFrequency)

	lasers := ship.FireLasers()
	if len(lasers) != 2 {
		t.Fatalf("expected 2 lasers, got %d", len(lasers))
	}
	for i, l := range lasers {
		if l.Side != SideEnemy {
			t.Errorf("laser %d: side = %v", i, l.Side)
		}
		if l.Box.Top() != ship.Box.Y {
			t.Errorf("laser %d: top = %v, want hull bottom %v", i, l.Box.Top(), ship.Box.Y)
		}
	}
}

func TestDirectionVector(t *testing.T) {
	enemy := NewEnemyShip(config.Default().Enemy, 0, 100)
	if d := enemy.DirectionVector(); d.X != 0 || d.Y != -1 {
		t.Errorf("enemy should descend straight down, got %v", d)
	}
	player := createTestShip(SidePlayer, 0, 1)
	if d := player.DirectionVector(); d != (physics.Point{}) {
		t.Errorf("player has no fixed direction, got %v", d)
	}
}

func TestLoseLife(t *testing.T) {
	player := NewPlayerShip(config.Default())
	player.Shield = 0
	player.Health = -2

	player.LoseLife(3)

	if player.Lives != 2 || player.Shield != 3 || player.Health != player.MaxHealth {
		t.Errorf("unexpected state after losing a life: %+v", player)
	}
}

func TestNewPlayerShipPosition(t *testing.T) {
	player := NewPlayerShip(config.Default())
	want := physics.NewRect(31, 27, 10, 10)
	if player.Box != want {
		t.Errorf("player box = %v, want %v", player.Box, want)
	}
}

func TestAppendSpritesShieldOverlay(t *testing.T) {
	ship := createTestShip(SidePlayer, 1, 1)
	sprites := ship.AppendSprites(nil)
	if len(sprites) != 2 || sprites[0].ID != SpritePlayerShip || sprites[1].ID != SpritePlayerShield {
		t.Fatalf("unexpected sprites %v", sprites)
	}

	ship.Shield = 0
	if sprites := ship.AppendSprites(nil); len(sprites) != 1 {
		t.Errorf("unshielded ship should have only its hull, got %v", sprites)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
