package client

import (
	"time"

	"github.com/tomz197/galacticsurvivor/internal/input"
	"github.com/tomz197/galacticsurvivor/internal/object"
	"github.com/tomz197/galacticsurvivor/internal/world"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Out of lives, show score and leaderboard
	GameStateShutdown                  // Server is shutting down
)

// String returns the state name used in logs.
func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateGameOver:
		return "game_over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-player state (input, the running world, screens).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input     input.Input
	GameState GameState        // This client's game phase
	World     *world.World     // The game in progress, nil before the first start
	Parallax  *object.Parallax // Scrolling background, advanced once per frame
	Running   bool             // Client loop running
	delta     time.Duration    // Frame delta time (client-side)

	gameOverTime  float64 // Seconds spent on the game over screen
	scoreReported bool    // Final score of the current game sent to the lobby
	highScoreRank int     // Leaderboard position reached by the last game, 0 if none
	gamesPlayed   int

	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state

	// Previous-frame values for detecting transitions that need a full clear
	prevGameState GameState
	wasInactive   bool

	sprites []object.Sprite // Reused every frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
