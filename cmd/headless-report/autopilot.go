package main

import (
	"math"

	"github.com/Garsondee/Core-Defense/internal/game"
)

// autopilot plays the defender well enough to exercise every system: it
// guards a tile south of the core, shoots the nearest enemy, rings the core
// with walls between waves and spends surplus currency on weapons.
type autopilot struct {
	cfg *game.Balance
	m   *game.GridMap
}

// guardOffset is where the defender stands relative to the core.
var guardOffset = game.Tile{X: 0, Y: 2}

func (a *autopilot) guardTile(snap game.Snapshot) game.Tile {
	g := snap.Core.Pos.Add(guardOffset.X, guardOffset.Y)
	if !a.m.InBounds(g) || a.m.IsWall(g) {
		return snap.Player.Pos
	}
	return g
}

func (a *autopilot) commands(snap game.Snapshot) []game.Command {
	if snap.GameOver {
		return nil
	}
	var cmds []game.Command
	p := snap.Player

	if p.MoveReady {
		g := a.guardTile(snap)
		switch {
		case p.Pos.X < g.X:
			cmds = append(cmds, game.Move{DX: 1})
		case p.Pos.X > g.X:
			cmds = append(cmds, game.Move{DX: -1})
		case p.Pos.Y < g.Y:
			cmds = append(cmds, game.Move{DY: 1})
		case p.Pos.Y > g.Y:
			cmds = append(cmds, game.Move{DY: -1})
		}
	}

	if snap.Wave.Phase == game.PhaseIntermission {
		cmds = append(cmds, a.spend(snap)...)
		return cmds
	}

	target, dist, ok := nearestEnemy(p.Pixel, snap.Enemies)
	if ok && p.ShotReady {
		if w, armed := a.bestWeapon(p); armed && dist <= w.Range {
			cmds = append(cmds, game.FireWeapon{Weapon: w, Aim: target.Pixel})
		}
	}
	if ok && p.Grenades > 0 && target.Pos.Manhattan(snap.Core.Pos) <= 3 && dist <= a.cfg.GrenadeMaxThrow {
		cmds = append(cmds, game.ThrowGrenade{Target: target.Pixel})
	}
	if !p.Overcharged && snap.Core.HP < 0.4*snap.Core.MaxHP && p.Currency >= a.cfg.OverchargeCost {
		cmds = append(cmds, game.Overcharge{})
	}
	return cmds
}

// spend buys the priciest affordable weapon, then walls the open tiles next
// to the core while keeping enough in reserve for an overcharge.
func (a *autopilot) spend(snap game.Snapshot) []game.Command {
	var cmds []game.Command
	cash := snap.Player.Currency

	var buy *game.WeaponStats
	for i := range a.cfg.Weapons {
		w := &a.cfg.Weapons[i]
		if w.Price == 0 || w.Price > cash || hasWeapon(snap.Player, w.ID) {
			continue
		}
		if buy == nil || w.Price > buy.Price {
			buy = w
		}
	}
	if buy != nil {
		cmds = append(cmds, game.Purchase{ID: buy.ID})
		cash -= buy.Price
	}

	occupied := map[game.Tile]bool{snap.Player.Pos: true}
	for _, st := range snap.Structures {
		occupied[st.Pos] = true
	}
	reserve := a.cfg.OverchargeCost
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, -1}, {0, 1}} {
		t := snap.Core.Pos.Add(d[0], d[1])
		if cash-a.cfg.WallCost < reserve {
			break
		}
		if !a.m.InBounds(t) || a.m.IsWall(t) || occupied[t] || t == a.guardTile(snap) {
			continue
		}
		if t.Manhattan(snap.Player.Pos) > a.cfg.BuildRange {
			continue
		}
		cmds = append(cmds, game.BuildWall{At: t})
		cash -= a.cfg.WallCost
	}
	return cmds
}

// bestWeapon picks the unlocked weapon with the highest damage per second.
func (a *autopilot) bestWeapon(p game.PlayerView) (game.WeaponStats, bool) {
	var best game.WeaponStats
	bestDPS := -1.0
	for _, w := range a.cfg.Weapons {
		if !hasWeapon(p, w.ID) || w.Cooldown <= 0 {
			continue
		}
		dps := w.Damage * float64(max(w.Pellets, 1)) / w.Cooldown.Seconds()
		if dps > bestDPS {
			best, bestDPS = w, dps
		}
	}
	return best, bestDPS >= 0
}

func nearestEnemy(from game.Vec2, enemies []game.EnemyView) (game.EnemyView, float64, bool) {
	var best game.EnemyView
	bestD := math.Inf(1)
	for _, e := range enemies {
		if d := from.Dist(e.Pixel); d < bestD {
			best, bestD = e, d
		}
	}
	return best, bestD, !math.IsInf(bestD, 1)
}

func hasWeapon(p game.PlayerView, id string) bool {
	for _, u := range p.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}
