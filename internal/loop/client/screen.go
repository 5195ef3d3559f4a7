package client

import (
	"fmt"
	"time"

	"github.com/tomz197/galacticsurvivor/internal/draw"
	"github.com/tomz197/galacticsurvivor/internal/loop/config"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
	"github.com/tomz197/galacticsurvivor/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.stars.draw(c.canvas, c.state.Parallax)

	if c.state.World != nil && c.state.GameState != GameStateStart {
		c.state.sprites = c.state.World.AppendSprites(c.state.sprites[:0])
		for _, s := range c.state.sprites {
			drawSprite(c.canvas, s)
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	// Draw UI overlay
	c.drawUI(c.server.GetSnapshot())

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *server.LobbySnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(termWidth, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(termWidth, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawHUD(termWidth, c.state.World.HUD())
	case GameStateStart:
		c.drawStartScreen(termWidth, centerY, snapshot)
	case GameStateGameOver:
		c.drawHUD(termWidth, c.state.World.HUD())
		c.drawGameOverScreen(termWidth, centerY, snapshot)
	}
}

// hudColumns returns the 1-based start column of each HUD field:
// the first left-aligned, the second centred and the last right-aligned.
func hudColumns(termWidth int, fields [3]string) [3]int {
	return [3]int{
		2,
		max((termWidth-len(fields[1]))/2+1, 1),
		max(termWidth-len(fields[2]), 1),
	}
}

// drawHUD draws the labels on the first row and their values on the second.
func (c *Client) drawHUD(termWidth int, hud object.HUD) {
	cw := c.chunkWriter
	labels := object.HUDLabels
	values := hud.Values()

	labelCols := hudColumns(termWidth, labels)
	valueCols := hudColumns(termWidth, values)
	for i := range labels {
		cw.WriteColoredAt(labelCols[i], 1, draw.ColorGrey, labels[i])
		cw.WriteColoredAt(valueCols[i], 2, draw.ColorWhite, values[i])
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(termWidth, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(termWidth, centerY-2, "INACTIVITY WARNING")

	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	cw.WriteCentered(termWidth, centerY, "You have been inactive for too long.")
	cw.WriteCentered(termWidth, centerY+1, fmt.Sprintf("Disconnecting in %d seconds.", max(remaining, 0)))

	cw.WriteCentered(termWidth, centerY+3, "Press any key to continue")
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(termWidth, centerY int, snapshot *server.LobbySnapshot) {
	cw := c.chunkWriter
	titleY := centerY - 8

	writeCenteredColored(cw, termWidth, titleY, draw.ColorCyan, "G A L A C T I C")
	writeCenteredColored(cw, termWidth, titleY+1, draw.ColorCyan, "S U R V I V O R")
	cw.WriteCentered(termWidth, titleY+3, "~ Hold the line over SSH ~")

	// Controls section
	controlsY := titleY + 6
	cw.WriteCentered(termWidth, controlsY, "Controls")

	controlLines := []string{
		"W A S D / arrows . .  Move",
		"Hold mouse button . . Drag",
		"Lasers fire on their own  ",
		"Q . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(termWidth, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(termWidth, promptY, ">>  Press SPACE to Start  <<")
	}

	online := fmt.Sprintf("Pilots online: %-3d", snapshot.Players)
	cw.WriteCentered(termWidth, promptY+2, online)
}

// drawGameOverScreen draws the final score and the leaderboard.
func (c *Client) drawGameOverScreen(termWidth, centerY int, snapshot *server.LobbySnapshot) {
	cw := c.chunkWriter
	titleY := centerY - 9

	writeCenteredColored(cw, termWidth, titleY, draw.ColorRed, "G A M E   O V E R")
	cw.WriteCentered(termWidth, titleY+2, fmt.Sprintf("Score: %06d", c.state.World.Score))

	if c.state.highScoreRank > 0 {
		msg := fmt.Sprintf("New high score! Rank #%d", c.state.highScoreRank)
		writeCenteredColored(cw, termWidth, titleY+3, draw.ColorYellow, msg)
	}

	for i, line := range leaderboardLines(snapshot.TopScores, c.username) {
		cw.WriteCentered(termWidth, titleY+5+i, line)
	}

	promptY := titleY + 6 + config.LeaderboardSize + 2
	if c.state.gameOverTime < config.GameOverInputDelay {
		return
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(termWidth, promptY, ">>  Press SPACE to Restart  <<")
	}
}

// writeCenteredColored centres s by its visible width, then colours it.
func writeCenteredColored(cw *draw.ChunkWriter, width, row int, col draw.Color, s string) {
	cw.WriteColoredAt(max((width-len(s))/2+1, 1), row, col, s)
}

// leaderboardLines formats the top scores as fixed-width rows under a heading.
// The row belonging to username is marked.
func leaderboardLines(scores []server.TopScoreEntry, username string) []string {
	lines := make([]string, 0, len(scores)+1)
	lines = append(lines, "TOP PILOTS")
	if len(scores) == 0 {
		return append(lines, "no scores yet")
	}
	for i, entry := range scores {
		mark := " "
		if entry.Username == username {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%d. %-16s %06d", mark, i+1, entry.Username, entry.Score))
	}
	return lines
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(termWidth, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(termWidth, centerY-3, "SERVER SHUTTING DOWN")

	cw.WriteCentered(termWidth, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(termWidth, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(termWidth, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))

	cw.WriteCentered(termWidth, centerY+4, "Press Q to disconnect now")
}
