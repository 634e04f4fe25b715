package game

import (
	"fmt"
	"math"
)

// Command is one player action queued for a tick.
type Command interface {
	apply(s *Sim) bool
	String() string
}

// Move steps the player one tile.
type Move struct{ DX, DY int }

// BuildWall places a player wall.
type BuildWall struct{ At Tile }

// PlaceCryo places a cryo node.
type PlaceCryo struct{ At Tile }

// ThrowGrenade lobs a grenade at a pixel position.
type ThrowGrenade struct{ Target Vec2 }

// FireWeapon shoots the given weapon at a pixel position.
type FireWeapon struct {
	Weapon WeaponStats
	Aim    Vec2
}

// Overcharge zeroes core contact damage for a while.
type Overcharge struct{}

// SkipIntermission starts the next wave now.
type SkipIntermission struct{}

// Purchase buys a shop item by id.
type Purchase struct{ ID string }

func (c Move) apply(s *Sim) bool             { return s.MovePlayer(c.DX, c.DY) }
func (c BuildWall) apply(s *Sim) bool        { return s.BuildWall(c.At) }
func (c PlaceCryo) apply(s *Sim) bool        { return s.PlaceCryo(c.At) }
func (c ThrowGrenade) apply(s *Sim) bool     { return s.ThrowGrenade(c.Target) }
func (c FireWeapon) apply(s *Sim) bool       { return s.FireWeapon(c.Weapon, c.Aim) }
func (c Overcharge) apply(s *Sim) bool       { return s.Overcharge() }
func (c SkipIntermission) apply(s *Sim) bool { return s.SkipIntermission() }
func (c Purchase) apply(s *Sim) bool         { return s.Purchase(c.ID) }

func (c Move) String() string             { return fmt.Sprintf("move %+d,%+d", c.DX, c.DY) }
func (c BuildWall) String() string        { return "build_wall " + c.At.String() }
func (c PlaceCryo) String() string        { return "place_cryo " + c.At.String() }
func (c ThrowGrenade) String() string     { return fmt.Sprintf("grenade (%.0f,%.0f)", c.Target.X, c.Target.Y) }
func (c FireWeapon) String() string       { return "fire " + c.Weapon.ID }
func (c Overcharge) String() string       { return "overcharge" }
func (c SkipIntermission) String() string { return "skip_intermission" }
func (c Purchase) String() string         { return "purchase " + c.ID }

// MovePlayer steps the player one tile in a cardinal direction, respecting
// the move cooldown (shortened by speed buffs) and blocked tiles.
func (s *Sim) MovePlayer(dx, dy int) bool {
	if s.over() || absInt(dx)+absInt(dy) != 1 || s.now < s.player.nextMove {
		return false
	}
	dest := s.player.Pos.Add(dx, dy)
	if s.grid.IsBlocked(dest) {
		return false
	}
	p := &s.player
	p.Pos = dest
	p.startMove(s.grid.TileCenter(dest))
	speed := math.Pow(s.cfg.SpeedBuffFactor, float64(p.BuffStacks(BuffSpeed)))
	p.nextMove = s.now + scaleDuration(s.cfg.PlayerMoveDelay, speed)
	return true
}

// BuildWall places a player wall on t if the tile is valid, within build
// range, and affordable.
func (s *Sim) BuildWall(t Tile) bool {
	return s.placePlayerStructure(StructurePlayerWall, t, s.cfg.WallCost)
}

// PlaceCryo places a cryo node on t under the same rules as BuildWall.
func (s *Sim) PlaceCryo(t Tile) bool {
	return s.placePlayerStructure(StructureCryoNode, t, s.cfg.CryoCost)
}

func (s *Sim) placePlayerStructure(kind StructureKind, t Tile, cost int) bool {
	switch {
	case s.over(), !s.grid.InBounds(t), s.grid.IsBlocked(t):
		return false
	case t == s.core.Pos, t.Manhattan(s.player.Pos) > s.cfg.BuildRange:
		return false
	case s.player.Currency < cost:
		return false
	}
	if _, taken := s.grid.StructureAt(t); taken {
		return false
	}
	st := newStructure(&s.cfg, s.newID(), kind, t, s.now)
	if !s.grid.Occupy(st) {
		return false
	}
	s.structures = append(s.structures, st)
	s.spend(cost, st.Label())
	s.stats.Built++
	s.emit(EventStructureBuilt, st.Label(), t, st.HP, "")
	s.invalidateField(st.Label() + " built")
	return true
}

// ThrowGrenade launches a grenade at target if one is in stock, the throw
// cooldown has passed, and the target is within reach.
func (s *Sim) ThrowGrenade(target Vec2) bool {
	p := &s.player
	if s.over() || p.Grenades <= 0 || s.now < p.nextGrenade {
		return false
	}
	if p.Pixel.Dist(target) > s.cfg.GrenadeMaxThrow {
		return false
	}
	p.Grenades--
	p.nextGrenade = s.now + s.cfg.GrenadeCooldown
	s.grenades = append(s.grenades, &Grenade{
		Pos:    p.Pixel,
		Target: target,
		Speed:  s.cfg.GrenadeSpeed,
		Radius: s.cfg.GrenadeRadius,
		Damage: s.cfg.GrenadeDamage,
		Active: true,
	})
	return true
}

// FireWeapon shoots an unlocked weapon toward aim. Multi-pellet weapons fan
// their pellets symmetrically around the aim direction.
func (s *Sim) FireWeapon(w WeaponStats, aim Vec2) bool {
	p := &s.player
	if s.over() || !p.HasWeapon(w.ID) || s.now < p.nextShot {
		return false
	}
	d := aim.Sub(p.Pixel)
	if d.Len() == 0 || w.Speed <= 0 {
		return false
	}
	base := math.Atan2(d.Y, d.X)
	pellets := max(1, w.Pellets)
	dmg := w.Damage * math.Pow(s.cfg.DamageBuffFactor, float64(p.BuffStacks(BuffDamage)))
	for i := 0; i < pellets; i++ {
		offset := (float64(i) - float64(pellets-1)/2) * w.Spread
		s.spawnProjectile(FactionPlayer, p.Pixel, base+offset, w.Speed, w.Range, dmg)
	}
	p.nextShot = s.now + w.Cooldown
	s.stats.ShotsFired += pellets
	return true
}

// Overcharge buys a window in which the core takes no contact damage.
func (s *Sim) Overcharge() bool {
	p := &s.player
	if s.over() || s.now < p.nextOvercharge || p.Currency < s.cfg.OverchargeCost {
		return false
	}
	s.spend(s.cfg.OverchargeCost, "overcharge")
	p.overchargeUntil = s.now + s.cfg.OverchargeDuration
	p.nextOvercharge = s.now + s.cfg.OverchargeCooldown
	s.emit(EventOvercharge, "player", s.core.Pos, s.cfg.OverchargeDuration.Seconds(), "")
	return true
}

// SkipIntermission ends the current intermission; the next wave starts
// during this tick's director pass.
func (s *Sim) SkipIntermission() bool {
	if s.wave.Phase != PhaseIntermission {
		return false
	}
	s.wave.IntermissionEndsAt = s.now
	return true
}

// Purchase buys a weapon from the catalog.
func (s *Sim) Purchase(id string) bool {
	w, ok := s.cfg.Weapon(id)
	switch {
	case s.over(), !ok, w.Price <= 0:
		return false
	case s.player.HasWeapon(id), s.player.Currency < w.Price:
		return false
	}
	s.spend(w.Price, "purchase "+id)
	s.player.Unlocked = append(s.player.Unlocked, id)
	s.player.Purchased = append(s.player.Purchased, id)
	s.emit(EventWeaponUnlocked, "player", s.player.Pos, float64(w.Price), id)
	return true
}
