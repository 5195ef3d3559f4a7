// Package config centralizes the tunables of the game hosts. Gameplay tunables
// live in internal/config as a Tuning.
package config

import "time"

// Max render resolution in terminal cells. Larger terminals are centred and
// framed with a border. The aspect roughly matches the 72x128 world with
// half-block pixels.
const (
	MaxTermWidth  = 72
	MaxTermHeight = 64
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Lobby
const (
	LeaderboardSize = 5 // Entries kept in the lobby snapshot
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Game over
const (
	GameOverInputDelay = 1.0 // Seconds on the game over screen before a key restarts
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 20
	ServerTickTime = time.Second / ServerTickRate
)
