// Package server runs the lobby shared by every connected client: who is
// online, the leaderboard, and the tuning new games start with. Games
// themselves run inside each client and share no state through the lobby.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	gameconfig "github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the lobby.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int)
	GetSnapshot() *LobbySnapshot
	Tuning() gameconfig.Tuning
}

// Server manages the lobby state and processes reports from all clients.
type Server struct {
	snapshot     atomic.Pointer[LobbySnapshot]
	tuning       atomic.Pointer[gameconfig.Tuning]
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	scoreCh      chan scoreReport
	done         chan struct{} // Closed when Run returns
	mu           sync.RWMutex

	board  *leaderboard
	games  int
	dirty  bool // Snapshot needs rebuilding
	logger *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a lobby whose games start with the given tuning.
// A nil logger uses the charmbracelet default logger.
func NewServer(tuning gameconfig.Tuning, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		scoreCh:      make(chan scoreReport, 64),
		done:         make(chan struct{}),
		board:        newLeaderboard(),
		logger:       logger.WithPrefix("lobby"),
	}
	s.tuning.Store(&tuning)

	// Create initial empty snapshot
	s.snapshot.Store(&LobbySnapshot{})

	return s
}

// Run starts the lobby loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeClients()
			return
		case <-ticker.C:
		}

		s.processRegistrations()
		s.collectScores()

		if s.dirty {
			s.createSnapshot()
			s.dirty = false
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	s.logger.Info("notifying clients of shutdown", "clients", len(s.clients))
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timeout reached", "clients", s.clientCount())
			return
		case <-s.done:
			return
		case <-ticker.C:
			if s.clientCount() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// If the server has stopped, the handle's event channel is already closed.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: truncateUsername(username),
		EventsCh: make(chan ClientEvent, 16),
	}

	select {
	case s.registerCh <- handle:
	case <-s.done:
		close(handle.EventsCh)
	}
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	select {
	case s.unregisterCh <- clientID:
	case <-s.done:
	}
}

// ReportScore records the final score of a client's game.
func (s *Server) ReportScore(clientID int, score int) {
	select {
	case s.scoreCh <- scoreReport{clientID: clientID, score: score}:
	case <-s.done:
	}
}

// GetSnapshot returns the current lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// Tuning returns the tuning new games should start with.
func (s *Server) Tuning() gameconfig.Tuning {
	return *s.tuning.Load()
}

// SetTuning replaces the tuning for games started from now on.
// Games already running keep the tuning they started with.
func (s *Server) SetTuning(t gameconfig.Tuning) {
	s.tuning.Store(&t)
	s.logger.Info("tuning updated", "lives", t.Lives, "spawn_interval", t.EnemySpawnInterval)
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.dirty = true
			s.logger.Debug("client registered", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.dirty = true
				s.logger.Debug("client unregistered", "id", clientID)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectScores folds finished games into the leaderboard.
func (s *Server) collectScores() {
	for {
		select {
		case r := <-s.scoreCh:
			s.applyScore(r)
		default:
			return
		}
	}
}

// applyScore records one report and tells the client if it reached the top.
func (s *Server) applyScore(r scoreReport) {
	s.mu.RLock()
	handle, ok := s.clients[r.clientID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	s.games++
	s.dirty = true

	rank := s.board.report(r.clientID, handle.Username, r.score)
	if rank == 0 || rank > config.LeaderboardSize {
		return
	}

	s.logger.Info("new high score", "user", handle.Username, "score", r.score, "rank", rank)
	select {
	case handle.EventsCh <- ClientEvent{Type: EventHighScore, Rank: rank}:
	default:
	}
}

// closeClients closes every remaining event channel when the lobby stops.
func (s *Server) closeClients() {
	s.processRegistrations()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, handle := range s.clients {
		close(handle.EventsCh)
		delete(s.clients, id)
	}
}

// createSnapshot publishes an immutable snapshot of the lobby state.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&LobbySnapshot{
		Players:   players,
		Games:     s.games,
		TopScores: s.board.top(config.LeaderboardSize),
	})
}

// truncateUsername limits a display name to MaxUsernameLength runes.
func truncateUsername(name string) string {
	runes := []rune(name)
	if len(runes) > config.MaxUsernameLength {
		return string(runes[:config.MaxUsernameLength])
	}
	return name
}
