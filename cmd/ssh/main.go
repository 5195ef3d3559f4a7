package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/draw"
	"github.com/tomz197/galacticsurvivor/internal/loop/client"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := newLogger()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	tuningPath := config.GetEnv("GS_TUNING", "")
	seed := config.GetEnvInt("GS_SEED", 0)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "tuning", tuningPath, "seed", seed)

	tuning, err := config.TuningFromEnv("GS_TUNING")
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	// Shared lobby for all SSH clients
	ctx, cancelServer := context.WithCancel(context.Background())
	lobby := server.NewServer(tuning, logger)
	go lobby.Run(ctx)
	logger.Info("lobby started")

	if tuningPath != "" {
		watcher, err := config.NewWatcher(tuningPath)
		if err != nil {
			logger.Warn("tuning hot reload disabled", "err", err)
		} else {
			defer watcher.Close()
			go watchTuning(watcher, lobby, logger)
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(lobby, seed, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	lobby.Shutdown(15 * time.Second)
	cancelServer()
	logger.Info("lobby stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// newLogger builds the process logger at the GS_LOG_LEVEL level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	level, err := log.ParseLevel(config.GetEnv("GS_LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("unknown log level, using info", "err", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// watchTuning hands every reloaded tuning file to the lobby.
func watchTuning(w *config.Watcher, lobby *server.Server, logger *log.Logger) {
	for {
		select {
		case t, ok := <-w.Tunings:
			if !ok {
				return
			}
			lobby.SetTuning(t)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("tuning reload failed", "err", err)
		}
	}
}

// gameMiddleware handles SSH sessions and runs one game client per session.
func gameMiddleware(lobby server.GameServer, seed int64, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			draw.EnableMouse(sess)
			defer draw.DisableMouse(sess)

			reader := bufio.NewReader(sess)
			c := client.NewClient(lobby, reader, sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Logger:       logger,
				Seed:         seed,
			})
			if err := c.Run(); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
