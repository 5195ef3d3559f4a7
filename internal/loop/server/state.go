package server

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// LobbySnapshot is an immutable view of the lobby for rendering.
// Clients load it once per frame and must not modify it.
type LobbySnapshot struct {
	Players   int             // Clients currently connected
	Games     int             // Games finished since the server started
	TopScores []TopScoreEntry // Best scores, highest first
}

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (high score, shutdown)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	Rank int // Leaderboard position for EventHighScore, 1-based
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventHighScore ClientEventType = iota
	EventServerShutdown
)

// scoreReport is a finished game's score, queued for the lobby goroutine.
type scoreReport struct {
	clientID int
	score    int
}
