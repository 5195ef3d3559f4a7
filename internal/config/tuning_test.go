package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning should be valid: %v", err)
	}
}

func TestLoadTuning(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains []string
		validate    func(*testing.T, Tuning)
	}{
		{
			name:        "empty file keeps defaults",
			yamlContent: "",
			validate: func(t *testing.T, got Tuning) {
				if got != Default() {
					t.Errorf("expected defaults, got %+v", got)
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
lives: 5
enemy_spawn_interval: 750ms
player:
  laser_frequency: 250ms
  shield: 6
`,
			validate: func(t *testing.T, got Tuning) {
				if got.Lives != 5 {
					t.Errorf("expected lives 5, got %d", got.Lives)
				}
				if got.EnemySpawnInterval != 750*time.Millisecond {
					t.Errorf("expected spawn interval 750ms, got %s", got.EnemySpawnInterval)
				}
				if got.Player.LaserFrequency != 250*time.Millisecond {
					t.Errorf("expected laser frequency 250ms, got %s", got.Player.LaserFrequency)
				}
				if got.Player.Shield != 6 {
					t.Errorf("expected shield 6, got %d", got.Player.Shield)
				}
				if got.Player.MovementSpeed != Default().Player.MovementSpeed {
					t.Errorf("unset player speed should keep default, got %v", got.Player.MovementSpeed)
				}
				if got.Enemy != Default().Enemy {
					t.Errorf("enemy spec should be untouched, got %+v", got.Enemy)
				}
			},
		},
		{
			name: "every violation reported",
			yamlContent: `
lives: 0
enemy_spawn_interval: 0s
enemy:
  width: 100
`,
			wantErr:     true,
			errContains: []string{"lives", "enemy_spawn_interval", "enemy size"},
		},
		{
			name:        "malformed yaml",
			yamlContent: "lives: [",
			wantErr:     true,
			errContains: []string{"failed to parse tuning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0o644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			got, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				for _, want := range tt.errContains {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("error %q should mention %q", err, want)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, got)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read tuning") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("GS_TEST_STR", "value")
	t.Setenv("GS_TEST_INT", "42")
	t.Setenv("GS_TEST_BAD_INT", "forty-two")
	t.Setenv("GS_TEST_DUR", "1.5s")

	if got := GetEnv("GS_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("GS_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv fallback = %q", got)
	}
	if got := GetEnvInt("GS_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("GS_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt malformed = %d", got)
	}
	if got := GetEnvDuration("GS_TEST_DUR", time.Second); got != 1500*time.Millisecond {
		t.Errorf("GetEnvDuration = %s", got)
	}
}

func TestTuningFromEnv(t *testing.T) {
	t.Setenv("GS_TEST_TUNING", "")
	got, err := TuningFromEnv("GS_TEST_TUNING")
	if err != nil || got != Default() {
		t.Fatalf("empty path should give defaults, got %+v, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("lives: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GS_TEST_TUNING", path)
	got, err = TuningFromEnv("GS_TEST_TUNING")
	if err != nil {
		t.Fatalf("TuningFromEnv() error = %v", err)
	}
	if got.Lives != 9 {
		t.Errorf("lives = %d, want 9", got.Lives)
	}
}
