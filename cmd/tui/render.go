package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Core-Defense/internal/game"
)

// cellSetter is the subset of tcell.Screen the renderer draws through.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

const hudRows = 3

var (
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCore    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleBonus   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBullet  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
)

var enemyGlyphs = map[game.EnemyKind]rune{
	game.EnemyBasic:   'b',
	game.EnemyShooter: 's',
	game.EnemyScout:   'c',
}

var structureGlyphs = map[game.StructureKind]struct {
	r     rune
	style tcell.Style
}{
	game.StructureSpawner:    {'S', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)},
	game.StructureEnergyNode: {'E', tcell.StyleDefault.Foreground(tcell.ColorGold)},
	game.StructurePlayerWall: {'=', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	game.StructureCryoNode:   {'*', tcell.StyleDefault.Foreground(tcell.ColorLightBlue)},
}

// viewport returns the map tile drawn at screen cell (0, hudRows) so the
// player stays centred, clamped to the map.
func viewport(snap game.Snapshot, size, w, h int) game.Tile {
	h -= hudRows
	origin := func(centre, span int) int {
		if span >= size {
			return 0
		}
		return min(max(centre-span/2, 0), size-span)
	}
	return game.Tile{X: origin(snap.Player.Pos.X, w), Y: origin(snap.Player.Pos.Y, h)}
}

// render draws one frame: a HUD band on top and the visible map below.
func render(sc cellSetter, snap game.Snapshot, m *game.GridMap, w, h int, status string) {
	o := viewport(snap, m.Size, w, h)
	put := func(t game.Tile, r rune, st tcell.Style) {
		x, y := t.X-o.X, t.Y-o.Y+hudRows
		if x >= 0 && x < w && y >= hudRows && y < h {
			sc.SetContent(x, y, r, nil, st)
		}
	}

	for y := 0; y < h-hudRows; y++ {
		for x := 0; x < w; x++ {
			t := game.Tile{X: o.X + x, Y: o.Y + y}
			switch {
			case !m.InBounds(t):
				sc.SetContent(x, y+hudRows, ' ', nil, tcell.StyleDefault)
			case m.IsWall(t):
				sc.SetContent(x, y+hudRows, '#', nil, styleWall)
			default:
				sc.SetContent(x, y+hudRows, '.', nil, styleFloor)
			}
		}
	}
	for _, st := range snap.Structures {
		g := structureGlyphs[st.Kind]
		put(st.Pos, g.r, g.style)
	}
	for _, b := range snap.Bonuses {
		put(b.Pos, '+', styleBonus)
	}
	put(snap.Core.Pos, '@', styleCore)
	for _, p := range snap.Projectiles {
		put(m.TileAt(p.Pos), '\'', styleBullet)
	}
	for _, gr := range snap.Grenades {
		put(m.TileAt(gr.Pos), 'o', styleWarning)
	}
	for _, e := range snap.Enemies {
		st := tcell.StyleDefault.Foreground(tcell.ColorRed)
		if e.Slowed {
			st = st.Foreground(tcell.ColorLightBlue)
		}
		put(e.Pos, enemyGlyphs[e.Kind], st)
	}
	put(snap.Player.Pos, 'P', stylePlayer)

	for y := 0; y < hudRows; y++ {
		for x := 0; x < w; x++ {
			sc.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	for i, line := range hudLines(snap, status) {
		st := styleHUD
		if i == 0 && snap.GameOver {
			st = styleWarning
		}
		drawString(sc, 0, i, w, line, st)
	}
}

func hudLines(snap game.Snapshot, status string) [hudRows]string {
	var lines [hudRows]string
	wave := fmt.Sprintf("wave %d %s %s", snap.Wave.Number, snap.Wave.Mode, snap.Wave.Phase)
	switch {
	case snap.GameOver:
		wave = "GAME OVER  " + wave
	case snap.Wave.Intermission > 0:
		wave += fmt.Sprintf("  next in %.0fs [enter]", snap.Wave.Intermission.Seconds())
	case snap.Wave.Survival > 0:
		wave += fmt.Sprintf("  survive %.0fs", snap.Wave.Survival.Seconds())
	}
	lines[0] = wave
	lines[1] = fmt.Sprintf("core %.0f/%.0f  hp %.0f/%.0f  $%d  grenades %d  defense x%.2f  enemies %d",
		snap.Core.HP, snap.Core.MaxHP, snap.Player.HP, snap.Player.MaxHP,
		snap.Player.Currency, snap.Player.Grenades, snap.Defense, len(snap.Enemies))
	lines[2] = status
	return lines
}

func drawString(sc cellSetter, x, y, maxW int, s string, st tcell.Style) {
	for _, r := range s {
		if x >= maxW {
			return
		}
		sc.SetContent(x, y, r, nil, st)
		x++
	}
}
