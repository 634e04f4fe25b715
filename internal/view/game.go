// Package view renders a game.Sim with ebiten and maps keyboard and mouse
// input to simulation commands.
package view

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Core-Defense/internal/game"
	"github.com/Garsondee/Core-Defense/internal/save"
)

const (
	// zoom is the world-to-screen scale; 48px tiles render at 24px.
	zoom = 0.5
	// quickSlot is the save slot used by F5 and F9.
	quickSlot = "quick"
	// statusFrames is how long a status line stays on screen.
	statusFrames = 180
)

// Config wires a Game to its simulation and collaborators.
type Config struct {
	Sim    *game.Sim
	Store  *save.Store // nil disables quick save and load
	Log    logrus.FieldLogger
	Width  int
	Height int
}

// Game implements ebiten.Game over a game.Sim.
type Game struct {
	sim    *game.Sim
	cfg    game.Balance
	store  *save.Store
	log    logrus.FieldLogger
	feed   *Feed
	ctl    controls
	face   *text.GoXFace
	width  int
	height int

	simSpeed  float64 // ticks per frame; 0 pauses
	lastSpeed float64
	tickAccum float64
	prevKeys  map[ebiten.Key]bool
	prevRight bool

	status       string
	statusFrames int
	camX, camY   float64
}

// New creates a Game. Width and Height default to 1280x800.
func New(c Config) *Game {
	if c.Width == 0 {
		c.Width = 1280
	}
	if c.Height == 0 {
		c.Height = 800
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	g := &Game{
		sim:      c.Sim,
		cfg:      c.Sim.Balance(),
		store:    c.Store,
		log:      c.Log,
		feed:     NewFeed(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		width:    c.Width,
		height:   c.Height,
		simSpeed: 1,
		prevKeys: make(map[ebiten.Key]bool),
	}
	for _, w := range g.cfg.Weapons {
		if w.Price == 0 {
			g.ctl.selected = w.ID
			break
		}
	}
	return g
}

// Update samples input once, then advances the simulation by as many fixed
// ticks as the speed setting allows. Commands go to the first tick only.
func (g *Game) Update() error {
	in := g.handleInput()
	snap := g.sim.Snapshot()
	g.followPlayer(snap.Player.Pixel)
	if g.statusFrames > 0 {
		g.statusFrames--
	}

	if g.simSpeed <= 0 {
		return nil
	}
	cmds := g.ctl.commands(in, snap, g.sim.Map(), &g.cfg)
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		for _, ev := range g.sim.Step(game.TickDuration, game.Input{Commands: cmds}) {
			g.feed.Add(ev)
		}
		cmds = nil
	}
	return nil
}

// pressed reports a key that went down this frame.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput processes view keys and returns the gameplay input.
func (g *Game) handleInput() frameInput {
	cur := map[ebiten.Key]bool{}
	var in frameInput

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.DY = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.DY = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.DX = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.DX = 1
	}

	mx, my := ebiten.CursorPosition()
	in.Cursor = g.screenToWorld(float64(mx), float64(my))
	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.Grenade = (right && !g.prevRight) || g.pressed(cur, ebiten.KeyG)
	g.prevRight = right

	in.Wall = g.pressed(cur, ebiten.KeyB)
	in.Cryo = g.pressed(cur, ebiten.KeyC)
	in.Overcharge = g.pressed(cur, ebiten.KeyO)
	in.Skip = g.pressed(cur, ebiten.KeyEnter)
	slotKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
	for i, k := range slotKeys {
		if g.pressed(cur, k) {
			in.Slot = i + 1
		}
	}

	if g.pressed(cur, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.lastSpeed = g.simSpeed
			g.simSpeed = 0
		} else {
			g.simSpeed = max(g.lastSpeed, 1)
		}
	}
	if g.pressed(cur, ebiten.KeyComma) && g.simSpeed > 0.25 {
		g.simSpeed /= 2
	}
	if g.pressed(cur, ebiten.KeyPeriod) && g.simSpeed > 0 && g.simSpeed < 8 {
		g.simSpeed *= 2
	}
	if g.pressed(cur, ebiten.KeyF2) {
		g.copySummary()
	}
	if g.pressed(cur, ebiten.KeyF5) {
		g.quickSave()
	}
	if g.pressed(cur, ebiten.KeyF9) {
		g.quickLoad()
	}

	g.prevKeys = cur
	return in
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusFrames = statusFrames
}

// copySummary puts the SimLog summary and session report on the clipboard.
func (g *Game) copySummary() {
	out := g.sim.Report().Format()
	if sl := g.sim.SimLog(); sl != nil {
		out = sl.Summary(g.sim.Snapshot()) + "\n" + out
	}
	if err := clipboard.WriteAll(out); err != nil {
		g.log.WithError(err).Warn("clipboard copy failed")
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("summary copied")
}

func (g *Game) quickSave() {
	if g.store == nil {
		return
	}
	if err := g.store.Save(quickSlot, g.sim.ExportState()); err != nil {
		g.log.WithError(err).Error("quick save failed")
		g.setStatus("save failed")
		return
	}
	g.setStatus("saved")
}

func (g *Game) quickLoad() {
	if g.store == nil || g.sim.GameOver() {
		return
	}
	st, err := g.store.Load(quickSlot, g.cfg)
	if err != nil {
		g.log.WithError(err).Error("quick load failed")
		g.setStatus("load failed")
		return
	}
	g.sim.RestoreState(st)
	g.setStatus("loaded wave %d", st.Wave)
}

// Layout fixes the logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func (g *Game) viewWidth() float64 {
	return float64(g.width - feedPanelWidth)
}

// followPlayer centres the camera on p, clamped so the map fills the view.
func (g *Game) followPlayer(p game.Vec2) {
	world := g.sim.Map().WorldSize()
	halfW := g.viewWidth() / 2 / zoom
	halfH := float64(g.height) / 2 / zoom
	g.camX = clampCam(p.X, halfW, world)
	g.camY = clampCam(p.Y, halfH, world)
}

func clampCam(v, half, world float64) float64 {
	if world <= 2*half {
		return world / 2
	}
	return min(max(v, half), world-half)
}

func (g *Game) worldToScreen(p game.Vec2) (float32, float32) {
	x := (p.X-g.camX)*zoom + g.viewWidth()/2
	y := (p.Y-g.camY)*zoom + float64(g.height)/2
	return float32(x), float32(y)
}

func (g *Game) screenToWorld(sx, sy float64) game.Vec2 {
	return game.Vec2{
		X: (sx-g.viewWidth()/2)/zoom + g.camX,
		Y: (sy-float64(g.height)/2)/zoom + g.camY,
	}
}
