package view

import "github.com/Garsondee/Core-Defense/internal/game"

// frameInput is the raw player input sampled once per frame. Held keys set
// the direction and fire; the rest are edge-triggered.
type frameInput struct {
	DX, DY     int
	Fire       bool
	Grenade    bool
	Wall       bool
	Cryo       bool
	Overcharge bool
	Skip       bool
	Slot       int // 1-based weapon key pressed this frame, 0 for none
	Cursor     game.Vec2
}

// controls turns frame input into simulation commands and remembers the
// selected weapon.
type controls struct {
	selected string
}

func (c *controls) commands(in frameInput, snap game.Snapshot, m *game.GridMap, cfg *game.Balance) []game.Command {
	if snap.GameOver {
		return nil
	}
	var cmds []game.Command

	if in.Slot > 0 && in.Slot <= len(cfg.Weapons) {
		w := cfg.Weapons[in.Slot-1]
		if unlocked(snap.Player, w.ID) {
			c.selected = w.ID
		} else {
			cmds = append(cmds, game.Purchase{ID: w.ID})
		}
	}

	if snap.Player.MoveReady {
		switch {
		case in.DX != 0:
			cmds = append(cmds, game.Move{DX: sign(in.DX)})
		case in.DY != 0:
			cmds = append(cmds, game.Move{DY: sign(in.DY)})
		}
	}

	if in.Fire && snap.Player.ShotReady {
		if w, ok := cfg.Weapon(c.selected); ok && unlocked(snap.Player, w.ID) {
			cmds = append(cmds, game.FireWeapon{Weapon: w, Aim: in.Cursor})
		}
	}

	target := m.TileAt(in.Cursor)
	if in.Wall {
		cmds = append(cmds, game.BuildWall{At: target})
	}
	if in.Cryo {
		cmds = append(cmds, game.PlaceCryo{At: target})
	}
	if in.Grenade {
		cmds = append(cmds, game.ThrowGrenade{Target: in.Cursor})
	}
	if in.Overcharge {
		cmds = append(cmds, game.Overcharge{})
	}
	if in.Skip && snap.Wave.Phase == game.PhaseIntermission {
		cmds = append(cmds, game.SkipIntermission{})
	}
	return cmds
}

func unlocked(p game.PlayerView, id string) bool {
	for _, u := range p.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
