package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Core-Defense/internal/game"
)

var (
	colGround   = color.RGBA{R: 22, G: 26, B: 30, A: 255}
	colGrid     = color.RGBA{R: 34, G: 40, B: 46, A: 255}
	colWall     = color.RGBA{R: 80, G: 84, B: 92, A: 255}
	colWallEdge = color.RGBA{R: 120, G: 126, B: 136, A: 255}
	colCore     = color.RGBA{R: 70, G: 190, B: 230, A: 255}
	colShield   = color.RGBA{R: 140, G: 220, B: 255, A: 120}
	colPlayer   = color.RGBA{R: 90, G: 210, B: 110, A: 255}
	colHPBack   = color.RGBA{R: 40, G: 10, B: 10, A: 220}
	colHPFill   = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	colCursor   = color.RGBA{R: 255, G: 255, B: 255, A: 90}
)

var enemyColors = map[game.EnemyKind]color.RGBA{
	game.EnemyBasic:   {R: 210, G: 70, B: 60, A: 255},
	game.EnemyShooter: {R: 230, G: 150, B: 40, A: 255},
	game.EnemyScout:   {R: 200, G: 90, B: 200, A: 255},
}

var structureColors = map[game.StructureKind]color.RGBA{
	game.StructureSpawner:    {R: 150, G: 40, B: 60, A: 255},
	game.StructureEnergyNode: {R: 240, G: 220, B: 80, A: 255},
	game.StructurePlayerWall: {R: 70, G: 140, B: 90, A: 255},
	game.StructureCryoNode:   {R: 120, G: 200, B: 255, A: 255},
}

// Draw renders the map, entities, HUD and event feed.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	screen.Fill(colGround)

	g.drawTerrain(screen)
	for _, st := range snap.Structures {
		g.drawStructure(screen, st)
	}
	for _, b := range snap.Bonuses {
		x, y := g.worldToScreen(g.sim.Map().TileCenter(b.Pos))
		vector.FillRect(screen, x-4, y-4, 8, 8, color.RGBA{R: 250, G: 250, B: 160, A: 255}, false)
	}
	g.drawCore(screen, snap)
	for _, e := range snap.Enemies {
		g.drawEnemy(screen, e)
	}
	px, py := g.worldToScreen(snap.Player.Pixel)
	vector.FillCircle(screen, px, py, 7, colPlayer, true)
	for _, p := range snap.Projectiles {
		x, y := g.worldToScreen(p.Pos)
		c := color.RGBA{R: 255, G: 240, B: 150, A: 255}
		if p.Faction != game.FactionPlayer {
			c = color.RGBA{R: 255, G: 110, B: 90, A: 255}
		}
		vector.FillCircle(screen, x, y, 2, c, false)
	}
	for _, gr := range snap.Grenades {
		x, y := g.worldToScreen(gr.Pos)
		vector.FillCircle(screen, x, y, 4, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
		tx, ty := g.worldToScreen(gr.Target)
		vector.StrokeCircle(screen, tx, ty, float32(gr.Radius*zoom), 1, color.RGBA{R: 255, G: 140, B: 40, A: 120}, true)
	}
	g.drawCursor(screen)

	g.drawHUD(screen, snap)
	g.feed.Draw(screen, int(g.viewWidth()), g.height)
	if snap.GameOver {
		g.drawGameOver(screen)
	}
}

func (g *Game) drawTerrain(screen *ebiten.Image) {
	m := g.sim.Map()
	ts := float32(m.TileSize * zoom)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			t := game.Tile{X: x, Y: y}
			sx, sy := g.worldToScreen(m.TileOrigin(t))
			if sx+ts < 0 || sy+ts < 0 || sx > float32(g.viewWidth()) || sy > float32(g.height) {
				continue
			}
			if m.IsWall(t) {
				vector.FillRect(screen, sx, sy, ts, ts, colWall, false)
				vector.StrokeLine(screen, sx, sy, sx+ts, sy, 1, colWallEdge, false)
				continue
			}
			vector.StrokeRect(screen, sx, sy, ts, ts, 0.5, colGrid, false)
		}
	}
}

func (g *Game) drawStructure(screen *ebiten.Image, st game.StructureView) {
	m := g.sim.Map()
	ts := float32(m.TileSize * zoom)
	x, y := g.worldToScreen(m.TileOrigin(st.Pos))
	c := structureColors[st.Kind]
	switch st.Kind {
	case game.StructureCryoNode:
		cx, cy := x+ts/2, y+ts/2
		r := float32(float64(st.Radius)*m.TileSize*zoom) + ts/2
		vector.StrokeCircle(screen, cx, cy, r, 1, color.RGBA{R: c.R, G: c.G, B: c.B, A: 90}, true)
		vector.FillCircle(screen, cx, cy, ts/3, c, true)
	default:
		vector.FillRect(screen, x+2, y+2, ts-4, ts-4, c, false)
	}
	if st.MaxHP > 0 && st.HP < st.MaxHP {
		drawBar(screen, x, y-4, ts, st.HP/st.MaxHP)
	}
}

func (g *Game) drawCore(screen *ebiten.Image, snap game.Snapshot) {
	m := g.sim.Map()
	ts := float32(m.TileSize * zoom)
	x, y := g.worldToScreen(m.TileOrigin(snap.Core.Pos))
	vector.FillRect(screen, x, y, ts, ts, colCore, false)
	if snap.Player.Overcharged {
		vector.StrokeCircle(screen, x+ts/2, y+ts/2, ts, 2, colShield, true)
	}
	drawBar(screen, x, y-5, ts, snap.Core.HP/snap.Core.MaxHP)
}

func (g *Game) drawEnemy(screen *ebiten.Image, e game.EnemyView) {
	x, y := g.worldToScreen(e.Pixel)
	c := enemyColors[e.Kind]
	r := float32(6)
	if e.Kind == game.EnemyScout {
		r = 4
	}
	vector.FillCircle(screen, x, y, r, c, true)
	if e.Slowed {
		vector.StrokeCircle(screen, x, y, r+2, 1, structureColors[game.StructureCryoNode], true)
	}
	if e.HasLOS {
		vector.StrokeCircle(screen, x, y, r+4, 1, color.RGBA{R: 255, G: 60, B: 60, A: 120}, true)
	}
	if e.HP < e.MaxHP {
		drawBar(screen, x-r, y-r-4, 2*r, e.HP/e.MaxHP)
	}
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	if float64(mx) >= g.viewWidth() {
		return
	}
	m := g.sim.Map()
	t := m.TileAt(g.screenToWorld(float64(mx), float64(my)))
	if !m.InBounds(t) {
		return
	}
	ts := float32(m.TileSize * zoom)
	x, y := g.worldToScreen(m.TileOrigin(t))
	vector.StrokeRect(screen, x, y, ts, ts, 1, colCursor, false)
}

func drawBar(screen *ebiten.Image, x, y, w float32, frac float64) {
	frac = min(max(frac, 0), 1)
	vector.FillRect(screen, x, y, w, 3, colHPBack, false)
	vector.FillRect(screen, x, y, w*float32(frac), 3, colHPFill, false)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = 15
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	p := snap.Player
	var sb strings.Builder
	fmt.Fprintf(&sb, "WAVE %d  %s  %s\n", snap.Wave.Number, snap.Wave.Mode, snap.Wave.Phase)
	switch {
	case snap.Wave.Intermission > 0:
		fmt.Fprintf(&sb, "next wave in %.0fs  [Enter] skip\n", snap.Wave.Intermission.Seconds())
	case snap.Wave.Survival > 0:
		fmt.Fprintf(&sb, "survive %.0fs\n", snap.Wave.Survival.Seconds())
	default:
		fmt.Fprintf(&sb, "enemies %d\n", len(snap.Enemies))
	}
	fmt.Fprintf(&sb, "CORE %.0f/%.0f  defense x%.2f\n", snap.Core.HP, snap.Core.MaxHP, snap.Defense)
	fmt.Fprintf(&sb, "HP %.0f/%.0f  $%d  grenades %d\n", p.HP, p.MaxHP, p.Currency, p.Grenades)

	var weapons []string
	for i, w := range g.cfg.Weapons {
		mark := " "
		switch {
		case w.ID == g.ctl.selected:
			mark = ">"
		case !unlocked(p, w.ID):
			mark = "$"
		}
		weapons = append(weapons, fmt.Sprintf("%d%s%s", i+1, mark, w.ID))
	}
	sb.WriteString(strings.Join(weapons, " "))
	if len(p.Buffs) > 0 {
		sb.WriteString("\nbuffs")
		for _, b := range p.Buffs {
			sb.WriteString(" " + b.String())
		}
	}
	if g.simSpeed == 0 {
		sb.WriteString("\nPAUSED")
	} else if g.simSpeed != 1 {
		fmt.Fprintf(&sb, "\nspeed x%.2f", g.simSpeed)
	}
	if g.statusFrames > 0 {
		sb.WriteString("\n" + g.status)
	}

	vector.FillRect(screen, 4, 4, 330, 118, color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)
	g.drawText(screen, sb.String(), 10, 8, color.White)
	g.drawText(screen, "WASD move  LMB fire  RMB/G grenade  B wall  C cryo  O overcharge  P pause  F2 copy  F5/F9 save/load",
		10, float64(g.height-18), color.RGBA{R: 150, G: 150, B: 150, A: 255})
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	vw := float32(g.viewWidth())
	vector.FillRect(screen, 0, 0, vw, float32(g.height), color.RGBA{A: 150}, false)
	r := g.sim.Outcome()
	msg := fmt.Sprintf("%s\nwaves survived %d  kills %d\n[F2] copy report", r.Description, r.WavesSurvived, r.Kills)
	g.drawText(screen, msg, float64(vw)/2-110, float64(g.height)/2-20, color.RGBA{R: 255, G: 220, B: 120, A: 255})
}
