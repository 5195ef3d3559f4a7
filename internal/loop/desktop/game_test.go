package desktop

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/input"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
	"github.com/tomz197/galacticsurvivor/internal/physics"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	logger := log.New(io.Discard)
	// The lobby loop is not needed: registration and reports are buffered.
	lobby := server.NewServer(config.Default(), logger)
	return New(lobby, Options{Username: "alice", Seed: 11, Logger: logger})
}

func TestUnproject(t *testing.T) {
	bounds := physics.NewRect(0, 0, 72, 128)
	tests := []struct {
		name   string
		screen physics.Point
		want   physics.Point
	}{
		{"top left", physics.Point{X: 0, Y: 0}, physics.Point{X: 0, Y: 128}},
		{"bottom right", physics.Point{X: 360, Y: 640}, physics.Point{X: 72, Y: 0}},
		{"centre", physics.Point{X: 180, Y: 320}, physics.Point{X: 36, Y: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unproject(tt.screen, bounds); got != tt.want {
				t.Errorf("unproject(%v) = %v, want %v", tt.screen, got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	bounds := physics.NewRect(0, 0, 72, 128)
	x, y, w, h := project(physics.NewRect(31, 4, 10, 10), bounds)
	if x != 155 || y != 570 || w != 50 || h != 50 {
		t.Errorf("project = %v,%v,%v,%v, want 155,570,50,50", x, y, w, h)
	}
}

func TestHUDX(t *testing.T) {
	if got := hudX(0, 5); got != 8 {
		t.Errorf("left = %d, want 8", got)
	}
	if got := hudX(1, 6); got != 162 {
		t.Errorf("centre = %d, want 162", got)
	}
	if got := hudX(2, 5); got != 322 {
		t.Errorf("right = %d, want 322", got)
	}
}

func TestIntent(t *testing.T) {
	g := newTestGame(t)

	got := g.intent(controls{pointer: true, position: physics.Point{X: 180, Y: 320}, up: true})
	if got.Mode != input.ModeDrag || got.Target != (physics.Point{X: 36, Y: 64}) {
		t.Errorf("pointer intent = %+v", got)
	}

	got = g.intent(controls{left: true, down: true})
	want := input.Intent{Mode: input.ModeKeys, Left: true, Down: true}
	if got != want {
		t.Errorf("key intent = %+v, want %+v", got, want)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t)
	dt := time.Second / 60

	g.world.Player.Lives = 0
	g.step(dt, controls{})
	if !g.gameOver {
		t.Fatal("game should be over with no lives")
	}

	// Held input does nothing until restart
	g.step(dt, controls{up: true})
	if !g.gameOver {
		t.Fatal("only restart should leave game over")
	}

	g.step(dt, controls{restart: true})
	if g.gameOver || g.world.GameOver() {
		t.Error("restart should start a fresh world")
	}
	if g.gamesPlayed != 1 {
		t.Errorf("gamesPlayed = %d, want 1", g.gamesPlayed)
	}
}
