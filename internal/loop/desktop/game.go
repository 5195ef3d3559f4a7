// Package desktop hosts a game in a native window with ebiten.
package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/galacticsurvivor/internal/input"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
	"github.com/tomz197/galacticsurvivor/internal/object"
	"github.com/tomz197/galacticsurvivor/internal/physics"
	"github.com/tomz197/galacticsurvivor/internal/world"
)

// Logical screen size in pixels: 5 per world unit for the default 72x128 world.
const (
	ScreenWidth  = 360
	ScreenHeight = 640
)

// debugCharWidth is the advance of ebitenutil's debug font.
const debugCharWidth = 6

var (
	colorBackground   = color.RGBA{0x05, 0x06, 0x0f, 0xff}
	colorPlayer       = color.RGBA{0x55, 0xff, 0xff, 0xff}
	colorEnemy        = color.RGBA{0xff, 0x44, 0x44, 0xff}
	colorPlayerShield = color.RGBA{0x33, 0x88, 0xff, 0xff}
	colorEnemyShield  = color.RGBA{0xff, 0x44, 0xff, 0xff}
	colorPlayerLaser  = color.RGBA{0x44, 0xff, 0x44, 0xff}
	colorEnemyLaser   = color.RGBA{0xff, 0x88, 0x00, 0xff}
	colorExplosion    = color.RGBA{0xff, 0xcc, 0x33, 0xff}
)

// layerColors shades the star layers from the slowest to the fastest.
var layerColors = [object.ParallaxLayers]color.RGBA{
	{0x40, 0x40, 0x50, 0xff},
	{0x60, 0x60, 0x70, 0xff},
	{0x90, 0x90, 0xb0, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

const starsPerLayer = 16

// controls is one frame of window input.
type controls struct {
	pointer  bool          // Mouse button or touch held
	position physics.Point // Pointer position in screen pixels
	up       bool
	down     bool
	left     bool
	right    bool
	restart  bool
	quit     bool
}

// Options configures a desktop game.
type Options struct {
	Username string
	Seed     int64       // 0 means time-seeded
	Logger   *log.Logger // Defaults to the charmbracelet default logger
}

// Game implements ebiten.Game over a single world.
type Game struct {
	lobby    server.GameServer
	handle   *server.ClientHandle
	world    *world.World
	parallax *object.Parallax
	stars    []physics.Point
	sprites  []object.Sprite
	touches  []ebiten.TouchID
	logger   *log.Logger

	seed          int64
	gamesPlayed   int
	gameOver      bool
	highScoreRank int
}

// Compile-time check that Game implements ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// New registers with the lobby and starts the first game.
func New(gs server.GameServer, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	handle := gs.RegisterClient(opts.Username)
	g := &Game{
		lobby:  gs,
		handle: handle,
		seed:   opts.Seed,
		logger: logger.With("client", handle.ID, "user", handle.Username),
	}
	g.startGame()
	return g
}

// Close leaves the lobby.
func (g *Game) Close() {
	g.lobby.UnregisterClient(g.handle.ID)
}

// startGame builds a fresh world with the lobby's current tuning.
func (g *Game) startGame() {
	t := g.lobby.Tuning()
	seed := g.seed
	if seed != 0 {
		seed += int64(g.gamesPlayed)
	}
	g.world = world.NewSeeded(t, seed)
	g.parallax = object.NewParallax(t.WorldHeight)
	g.stars = newStars(t.WorldWidth, t.WorldHeight, g.seed)
	g.gameOver = false
	g.highScoreRank = 0
	g.logger.Debug("game started", "seed", seed)
}

func newStars(width, height float64, seed int64) []physics.Point {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]physics.Point, starsPerLayer*object.ParallaxLayers)
	for i := range stars {
		stars[i] = physics.Point{X: rng.Float64() * width, Y: rng.Float64() * height}
	}
	return stars
}

// Update reads input and advances the game by one tick.
func (g *Game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	c := g.readControls()
	if c.quit {
		return ebiten.Termination
	}
	g.step(dt, c)
	return nil
}

// readControls samples the window's keyboard, mouse and touch state.
func (g *Game) readControls() controls {
	c := controls{
		up:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		down:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		restart: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		quit:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	g.touches = inpututil.AppendJustReleasedTouchIDs(g.touches[:0])
	c.restart = c.restart || len(g.touches) > 0

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	switch {
	case len(g.touches) > 0:
		x, y := ebiten.TouchPosition(g.touches[0])
		c.pointer = true
		c.position = physics.Point{X: float64(x), Y: float64(y)}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		c.pointer = true
		c.position = physics.Point{X: float64(x), Y: float64(y)}
	}
	return c
}

// step advances the game by dt under the given controls.
func (g *Game) step(dt time.Duration, c controls) {
	g.drainEvents()
	g.parallax.Update(dt)

	if g.gameOver {
		if c.restart {
			g.gamesPlayed++
			g.startGame()
		}
		return
	}

	g.world.Update(dt, g.intent(c))
	if g.world.GameOver() {
		g.gameOver = true
		g.lobby.ReportScore(g.handle.ID, g.world.Score)
		g.logger.Info("game over", "score", g.world.Score, "frames", g.world.Frames())
	}
}

// intent maps window controls onto a movement request.
func (g *Game) intent(c controls) input.Intent {
	if c.pointer {
		return input.Intent{
			Mode:   input.ModeDrag,
			Target: unproject(c.position, g.world.Bounds()),
		}
	}
	return input.Intent{Mode: input.ModeKeys, Up: c.up, Down: c.down, Left: c.left, Right: c.right}
}

func (g *Game) drainEvents() {
	for {
		select {
		case ev, ok := <-g.handle.EventsCh:
			if !ok {
				return
			}
			if ev.Type == server.EventHighScore {
				g.highScoreRank = ev.Rank
			}
		default:
			return
		}
	}
}

// unproject maps a screen pixel to the world point under it. Screen y grows downward.
func unproject(p physics.Point, bounds physics.Rect) physics.Point {
	return physics.Point{
		X: p.X / ScreenWidth * bounds.W,
		Y: bounds.H - p.Y/ScreenHeight*bounds.H,
	}
}

// project maps a world box to screen pixels: top-left corner and size.
func project(r physics.Rect, bounds physics.Rect) (x, y, w, h float32) {
	sx := ScreenWidth / bounds.W
	sy := ScreenHeight / bounds.H
	return float32(r.X * sx), float32((bounds.H - r.Top()) * sy), float32(r.W * sx), float32(r.H * sy)
}

// Draw renders the background, the world and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	bounds := g.world.Bounds()

	g.drawStars(screen, bounds)

	g.sprites = g.world.AppendSprites(g.sprites[:0])
	for _, s := range g.sprites {
		drawSprite(screen, s, bounds)
	}

	g.drawHUD(screen)
	if g.gameOver {
		g.drawGameOver(screen)
	}
}

func (g *Game) drawStars(screen *ebiten.Image, bounds physics.Rect) {
	for i, star := range g.stars {
		layer := i % object.ParallaxLayers
		y := math.Mod(star.Y-g.parallax.Offsets[layer], bounds.H)
		if y < 0 {
			y += bounds.H
		}
		x, sy, _, _ := project(physics.Rect{X: star.X, Y: y}, bounds)
		vector.FillRect(screen, x, sy, 2, 2, layerColors[layer], false)
	}
}

func drawSprite(screen *ebiten.Image, s object.Sprite, bounds physics.Rect) {
	x, y, w, h := project(s.Box, bounds)
	switch s.ID {
	case object.SpritePlayerShip:
		vector.FillRect(screen, x, y, w, h, colorPlayer, false)
	case object.SpriteEnemyShip:
		vector.FillRect(screen, x, y, w, h, colorEnemy, false)
	case object.SpritePlayerShield:
		vector.StrokeRect(screen, x, y, w, h, 2, colorPlayerShield, false)
	case object.SpriteEnemyShield:
		vector.StrokeRect(screen, x, y, w, h, 2, colorEnemyShield, false)
	case object.SpritePlayerLaser:
		vector.FillRect(screen, x, y, w, h, colorPlayerLaser, false)
	case object.SpriteEnemyLaser:
		vector.FillRect(screen, x, y, w, h, colorEnemyLaser, false)
	case object.SpriteExplosion:
		radius := max(w, h) / 2 * float32(0.3+0.7*s.Progress)
		vector.StrokeCircle(screen, x+w/2, y+h/2, radius, 2, colorExplosion, true)
	}
}

// drawHUD prints the labels over their values: left, centre and right.
func (g *Game) drawHUD(screen *ebiten.Image) {
	values := g.world.HUD().Values()
	for i, label := range object.HUDLabels {
		x := hudX(i, len(label))
		ebitenutil.DebugPrintAt(screen, label, x, 4)
		ebitenutil.DebugPrintAt(screen, values[i], hudX(i, len(values[i])), 20)
	}
}

// hudX returns the pixel column of HUD field i holding n characters.
func hudX(i, n int) int {
	width := n * debugCharWidth
	switch i {
	case 0:
		return 8
	case 1:
		return (ScreenWidth - width) / 2
	default:
		return ScreenWidth - width - 8
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %06d", g.world.Score),
	}
	if g.highScoreRank > 0 {
		lines = append(lines, fmt.Sprintf("New high score! Rank #%d", g.highScoreRank))
	}
	lines = append(lines, "", "Press SPACE to restart")

	y := ScreenHeight/2 - len(lines)*8
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, (ScreenWidth-len(line)*debugCharWidth)/2, y)
		y += 16
	}
}

// Layout returns the fixed logical screen; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and plays until it is closed.
func Run(gs server.GameServer, opts Options) error {
	g := New(gs, opts)
	defer g.Close()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Galactic Survivor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
