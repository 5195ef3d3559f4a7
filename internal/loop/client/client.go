package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galacticsurvivor/internal/draw"
	"github.com/tomz197/galacticsurvivor/internal/input"
	"github.com/tomz197/galacticsurvivor/internal/loop/config"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
	"github.com/tomz197/galacticsurvivor/internal/object"
	"github.com/tomz197/galacticsurvivor/internal/world"
)

// Client runs one player's game and handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	stars        starfield
	seed         int64
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger // Defaults to the charmbracelet default logger
	Seed         int64       // Seeds the first game; 0 means time-seeded
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	handle := gs.RegisterClient(opts.Username)
	t := gs.Tuning()

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, t.WorldWidth, t.WorldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	state := NewClientState()
	state.Parallax = object.NewParallax(t.WorldHeight)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     handle.Username,
		termSizeFunc: termSizeFunc,
		stars:        newStarfield(t.WorldWidth, t.WorldHeight, opts.Seed),
		seed:         opts.Seed,
		logger:       logger.With("client", handle.ID, "user", handle.Username),
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.logger.Info("client connected")
	defer c.logger.Info("client disconnected", "games", c.state.gamesPlayed)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.step()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// step advances everything but drawing by one frame of c.state.delta.
func (c *Client) step() {
	// Process input
	c.processInput()

	// Check for server events
	c.processServerEvents()

	// Handle screen resize
	c.updateScreen()

	c.state.Parallax.Update(c.state.delta)

	// Handle game state
	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateGameOver:
		c.updateGameOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// intent turns this frame's input into a movement request.
// A held pointer drags the ship towards the world point under it.
func (c *Client) intent() input.Intent {
	p := c.state.Input.Pointer
	if !p.Down {
		return c.state.Input.Intent()
	}
	col := p.Col - c.canvas.OffsetCol()
	row := p.Row - c.canvas.OffsetRow()
	return input.Intent{
		Mode:   input.ModeDrag,
		Target: c.canvas.TerminalToLogical(col, row),
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventHighScore:
				c.state.highScoreRank = event.Rank
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState advances the world by one frame.
func (c *Client) updatePlayingState() {
	c.state.World.Update(c.state.delta, c.intent())

	if c.state.World.GameOver() {
		c.endGame()
	}
}

// updateGameOverState waits for a restart once the input delay has passed.
func (c *Client) updateGameOverState() {
	c.state.gameOverTime += c.state.delta.Seconds()
	if (c.state.Input.Space || c.state.Input.Enter) && c.state.gameOverTime >= config.GameOverInputDelay {
		c.startGame()
	}
}

// startGame builds a fresh world with the lobby's current tuning.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)

	t := c.server.Tuning()
	seed := c.seed
	if seed != 0 {
		seed += int64(c.state.gamesPlayed)
	}
	c.state.World = world.NewSeeded(t, seed)
	c.canvas.SetLogicalSize(t.WorldWidth, t.WorldHeight)
	if c.stars.width != t.WorldWidth || c.stars.height != t.WorldHeight {
		c.stars = newStarfield(t.WorldWidth, t.WorldHeight, c.seed)
		c.state.Parallax = object.NewParallax(t.WorldHeight)
	}

	c.state.gameOverTime = 0
	c.state.scoreReported = false
	c.state.highScoreRank = 0
	c.state.GameState = GameStatePlaying
	c.logger.Debug("game started", "seed", seed, "lives", t.Lives)
}

// endGame moves to the game over screen and reports the final score once.
func (c *Client) endGame() {
	c.state.GameState = GameStateGameOver
	c.state.gameOverTime = 0
	c.state.gamesPlayed++
	if c.state.scoreReported {
		return
	}
	score := c.state.World.Score
	c.server.ReportScore(c.handle.ID, score)
	c.state.scoreReported = true
	c.logger.Info("game over", "score", score, "frames", c.state.World.Frames())
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
