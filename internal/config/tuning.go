package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ShipSpec holds the tunables of one kind of ship.
type ShipSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	MovementSpeed float64 `yaml:"movement_speed"` // World units per second
	Health        int     `yaml:"health"`
	Shield        int     `yaml:"shield"`

	LaserDamage    int           `yaml:"laser_damage"`
	LaserWidth     float64       `yaml:"laser_width"`
	LaserHeight    float64       `yaml:"laser_height"`
	LaserSpeed     float64       `yaml:"laser_speed"`     // World units per second
	LaserFrequency time.Duration `yaml:"laser_frequency"` // Cooldown between volleys
}

// Tuning is the full set of gameplay parameters a world is constructed with.
// It is fixed for the lifetime of a world.
type Tuning struct {
	WorldWidth  float64 `yaml:"world_width"`
	WorldHeight float64 `yaml:"world_height"`

	Player       ShipSpec `yaml:"player"`
	PlayerStartX float64  `yaml:"player_start_x"` // Centre of the ship at start
	PlayerStartY float64  `yaml:"player_start_y"`
	Lives        int      `yaml:"lives"`
	// RespawnShield is the shield a destroyed player comes back with.
	RespawnShield int `yaml:"respawn_shield"`

	Enemy              ShipSpec      `yaml:"enemy"`
	EnemySpawnInterval time.Duration `yaml:"enemy_spawn_interval"`
	EnemyScore         int           `yaml:"enemy_score"`

	EnemyExplosion  time.Duration `yaml:"enemy_explosion"`
	PlayerExplosion time.Duration `yaml:"player_explosion"`

	// DragThreshold is the distance below which a drag target is considered reached.
	DragThreshold float64 `yaml:"drag_threshold"`
}

// Default world dimensions in world units.
const (
	DefaultWorldWidth  = 72
	DefaultWorldHeight = 128
)

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		WorldWidth:  DefaultWorldWidth,
		WorldHeight: DefaultWorldHeight,

		Player: ShipSpec{
			Width:          10,
			Height:         10,
			MovementSpeed:  36,
			Health:         1,
			Shield:         3,
			LaserDamage:    1,
			LaserWidth:     0.9,
			LaserHeight:    4,
			LaserSpeed:     45,
			LaserFrequency: 500 * time.Millisecond,
		},
		PlayerStartX:  DefaultWorldWidth / 2,
		PlayerStartY:  DefaultWorldHeight / 4,
		Lives:         3,
		RespawnShield: 3,

		Enemy: ShipSpec{
			Width:          10,
			Height:         10,
			MovementSpeed:  40,
			Health:         1,
			Shield:         0,
			LaserDamage:    1,
			LaserWidth:     0.5,
			LaserHeight:    5,
			LaserSpeed:     50,
			LaserFrequency: 800 * time.Millisecond,
		},
		EnemySpawnInterval: time.Second,
		EnemyScore:         10,

		EnemyExplosion:  700 * time.Millisecond,
		PlayerExplosion: 1600 * time.Millisecond,

		DragThreshold: 0.5,
	}
}

// Load reads a YAML tuning file. Keys missing from the file keep their default values.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning on top of Default and validates the result.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

// Validate reports every invalid field at once.
func (t Tuning) Validate() error {
	var errs []error
	if t.WorldWidth <= 0 || t.WorldHeight <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %.1fx%.1f", t.WorldWidth, t.WorldHeight))
	}
	errs = append(errs, t.Player.validate("player", t)...)
	errs = append(errs, t.Enemy.validate("enemy", t)...)
	if t.Lives < 1 {
		errs = append(errs, fmt.Errorf("lives must be at least 1, got %d", t.Lives))
	}
	if t.RespawnShield < 0 {
		errs = append(errs, fmt.Errorf("respawn_shield must be >= 0, got %d", t.RespawnShield))
	}
	if t.EnemySpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("enemy_spawn_interval must be positive, got %s", t.EnemySpawnInterval))
	}
	if t.EnemyScore < 0 {
		errs = append(errs, fmt.Errorf("enemy_score must be >= 0, got %d", t.EnemyScore))
	}
	if t.EnemyExplosion <= 0 || t.PlayerExplosion <= 0 {
		errs = append(errs, fmt.Errorf("explosion durations must be positive, got %s and %s", t.EnemyExplosion, t.PlayerExplosion))
	}
	if t.DragThreshold < 0 {
		errs = append(errs, fmt.Errorf("drag_threshold must be >= 0, got %.2f", t.DragThreshold))
	}
	return errors.Join(errs...)
}

func (s ShipSpec) validate(name string, t Tuning) []error {
	var errs []error
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("%s size must be positive, got %.1fx%.1f", name, s.Width, s.Height))
	} else if s.Width >= t.WorldWidth || s.Height >= t.WorldHeight {
		errs = append(errs, fmt.Errorf("%s size %.1fx%.1f does not fit the world", name, s.Width, s.Height))
	}
	if s.MovementSpeed < 0 || s.LaserSpeed < 0 {
		errs = append(errs, fmt.Errorf("%s speeds must be >= 0", name))
	}
	if s.Health < 1 {
		errs = append(errs, fmt.Errorf("%s health must be at least 1, got %d", name, s.Health))
	}
	if s.Shield < 0 || s.LaserDamage < 0 {
		errs = append(errs, fmt.Errorf("%s shield and laser_damage must be >= 0", name))
	}
	if s.LaserWidth <= 0 || s.LaserHeight <= 0 {
		errs = append(errs, fmt.Errorf("%s laser size must be positive", name))
	}
	if s.LaserFrequency <= 0 {
		errs = append(errs, fmt.Errorf("%s laser_frequency must be positive, got %s", name, s.LaserFrequency))
	}
	return errs
}
