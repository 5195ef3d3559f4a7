// Package loop runs a single local game: a private lobby and one terminal client.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/loop/client"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Tuning   config.Tuning
	Username string
	Seed     int64       // 0 means time-seeded
	Logger   *log.Logger // Defaults to a logger that discards output
}

// Run plays on the terminal behind r and w until the player quits.
// The lobby lives only as long as the call.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		// Anything on stdout or stderr would tear the frame
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lobby := server.NewServer(opts.Tuning, logger)
	go lobby.Run(ctx)

	c := client.NewClient(lobby, r, w, client.ClientOptions{
		Username: opts.Username,
		Logger:   logger,
		Seed:     opts.Seed,
	})
	return c.Run()
}
