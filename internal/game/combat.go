package game

import (
	"fmt"
	"math"
)

// --- Projectiles ---

// spawnProjectile launches a bullet from one pixel position at an angle.
func (s *Sim) spawnProjectile(f Faction, from Vec2, angle, speed, maxRange, damage float64) {
	s.projectiles = append(s.projectiles, &Projectile{
		Pos:      from,
		Origin:   from,
		Vel:      Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(speed),
		Faction:  f,
		Damage:   damage,
		MaxRange: maxRange,
		Active:   true,
	})
}

func (s *Sim) fireEnemyBullet(e *Enemy, aim Vec2) {
	d := aim.Sub(e.Pixel)
	s.spawnProjectile(FactionEnemy, e.Pixel, math.Atan2(d.Y, d.X),
		s.cfg.EnemyBulletSpd, s.cfg.EnemyBulletRng, e.Ranged.Damage)
}

// updateProjectiles moves every bullet, then resolves the first hit: player
// structures absorb any bullet, then faction targets are tested.
func (s *Sim) updateProjectiles() {
	for _, p := range s.projectiles {
		if !p.Active {
			continue
		}
		p.advance(s.grid)
		if !p.Active {
			continue
		}
		box := centredBox(p.Pos, s.cfg.ProjectileSize)

		if st := s.absorber(box); st != nil {
			p.Active = false
			s.damageStructure(st, s.cfg.StructureChip, false)
			continue
		}
		if p.Faction == FactionPlayer {
			s.hitEnemySide(p, box)
		} else {
			s.hitPlayerSide(p, box)
		}
	}
}

// absorber returns the player structure a bullet box overlaps, if any.
func (s *Sim) absorber(box aabb) *Structure {
	for _, st := range s.structures {
		if st.dead || !st.Kind.PlayerBuilt() {
			continue
		}
		if box.overlaps(s.structureBox(st)) {
			return st
		}
	}
	return nil
}

func (s *Sim) hitEnemySide(p *Projectile, box aabb) {
	for _, e := range s.enemies {
		if e.dead || !box.overlaps(s.entityBox(e.Pixel)) {
			continue
		}
		p.Active = false
		s.damageEnemy(e, p.Damage, true, "bullet")
		return
	}
	for _, st := range s.structures {
		if st.dead || st.Kind.PlayerBuilt() || !box.overlaps(s.structureBox(st)) {
			continue
		}
		p.Active = false
		s.damageStructure(st, p.Damage, true)
		return
	}
}

func (s *Sim) hitPlayerSide(p *Projectile, box aabb) {
	if box.overlaps(s.entityBox(s.player.Pixel)) {
		p.Active = false
		s.damagePlayer(p.Damage)
		return
	}
	if box.overlaps(s.entityBox(s.grid.TileCenter(s.core.Pos))) {
		p.Active = false
		s.damageCore(p.Damage)
	}
}

// entityBox is the hit box of a unit centred on c.
func (s *Sim) entityBox(c Vec2) aabb {
	return centredBox(c, s.cfg.TileSize-s.cfg.StructureInset)
}

// structureBox is the hit box of a structure, inset from its tile.
func (s *Sim) structureBox(st *Structure) aabb {
	return centredBox(s.grid.TileCenter(st.Pos), s.cfg.TileSize-s.cfg.StructureInset)
}

// --- Grenades ---

func (s *Sim) updateGrenades() {
	for _, g := range s.grenades {
		if g.Active && g.advance() {
			s.explode(g)
		}
	}
}

// explode damages every enemy and spawner whose centre lies within the
// blast radius, boundary included.
func (s *Sim) explode(g *Grenade) {
	for _, e := range s.enemies {
		if !e.dead && e.Pixel.Dist(g.Pos) <= g.Radius {
			s.damageEnemy(e, g.Damage, true, "grenade")
		}
	}
	for _, st := range s.structures {
		if st.dead || st.Kind != StructureSpawner {
			continue
		}
		if s.grid.TileCenter(st.Pos).Dist(g.Pos) <= g.Radius {
			s.damageStructure(st, g.Damage, true)
		}
	}
}

// --- Contact ---

// applyContact deals per-tick melee damage from enemies standing on the
// core or on the player.
func (s *Sim) applyContact() {
	mod := s.DefenseModifier()
	for _, e := range s.enemies {
		if e.dead {
			continue
		}
		if e.Pos == s.core.Pos {
			s.damageCore(e.Damage * s.cfg.CoreContactScale * mod)
		}
		if e.Pos == s.player.Pos {
			s.damagePlayer(s.cfg.PlayerContactChip)
		}
	}
}

// DefenseModifier scales contact damage to the core: zero while overcharged,
// reduced while an energy node lives, and lowered per defense buff down to
// the configured floor.
func (s *Sim) DefenseModifier() float64 {
	if s.now < s.player.overchargeUntil {
		return 0
	}
	mod := 1.0
	if s.countStructures(StructureEnergyNode) > 0 {
		mod = s.cfg.EnergyNodeDefense
	}
	mod *= math.Pow(s.cfg.DefenseBuffFactor, float64(s.player.BuffStacks(BuffDefense)))
	return math.Max(mod, s.cfg.MinDefenseModifier)
}

// --- Damage and death ---

// damageEnemy applies min(hp, amount) and kills the enemy at zero. Returns
// true if this call killed it.
func (s *Sim) damageEnemy(e *Enemy, amount float64, byPlayer bool, cause string) bool {
	if e.dead {
		return false
	}
	e.HP -= math.Min(e.HP, amount)
	if e.HP > 0 {
		return false
	}
	s.killEnemy(e, byPlayer, cause)
	return true
}

// killEnemy flags e dead. Only player kills pay the reward and may drop a
// bonus. Safe to call twice.
func (s *Sim) killEnemy(e *Enemy, byPlayer bool, cause string) {
	if e.dead {
		return
	}
	e.dead = true
	e.HP = 0
	s.stats.Kills++
	s.stats.KillsByKind[e.Kind]++
	if !byPlayer {
		s.emit(EventEnemyKilled, e.Label(), e.Pos, 0, cause)
		return
	}
	s.emit(EventEnemyKilled, e.Label(), e.Pos, float64(e.Reward), cause)
	s.credit(e.Reward, e.Label())
	if s.rng.Float64() < s.cfg.BonusDropChance {
		s.dropBonus(e.Pos, s.rollBonusKind())
	}
}

// clearEnemy removes e without counting a kill.
func (s *Sim) clearEnemy(e *Enemy, cause string) {
	if e.dead {
		return
	}
	e.dead = true
	e.HP = 0
	s.stats.Cleared++
	s.emit(EventEnemyCleared, e.Label(), e.Pos, 0, cause)
}

// damageStructure applies min(hp, amount) and destroys the structure at
// zero. Enemy structures destroyed by the player pay their reward; a
// destroyed spawner always leaves a bonus. Returns true if this call
// destroyed it.
func (s *Sim) damageStructure(st *Structure, amount float64, byPlayer bool) bool {
	if st.dead {
		return false
	}
	st.HP -= math.Min(st.HP, amount)
	if st.HP > 0 {
		return false
	}
	s.removeStructure(st, EventStructureDestroyed)
	if byPlayer && !st.Kind.PlayerBuilt() {
		s.credit(st.Reward, st.Label())
		if st.Kind == StructureSpawner {
			s.dropBonus(st.Pos, s.rollBonusKind())
		}
	}
	return true
}

// removeStructure takes a structure off the map and invalidates the field.
func (s *Sim) removeStructure(st *Structure, kind EventKind) {
	if st.dead {
		return
	}
	st.dead = true
	s.grid.Vacate(st)
	s.emit(kind, st.Label(), st.Pos, st.HP, "")
	s.invalidateField(fmt.Sprintf("%s %s", st.Label(), kind.Key()))
}

func (s *Sim) damagePlayer(amount float64) {
	s.player.HP = math.Max(0, s.player.HP-amount)
	s.stats.PlayerDamage += amount
}

func (s *Sim) damageCore(amount float64) {
	s.core.HP = math.Max(0, s.core.HP-amount)
	s.stats.CoreDamage += amount
}

// --- Currency ---

func (s *Sim) credit(amount int, source string) {
	if amount <= 0 {
		return
	}
	s.player.Currency += amount
	s.stats.Earned += amount
	s.emit(EventCurrency, "player", s.player.Pos, float64(amount), source)
}

// spend deducts amount, clamping at zero. Callers check affordability first.
func (s *Sim) spend(amount int, reason string) {
	if amount <= 0 {
		return
	}
	if amount > s.player.Currency {
		amount = s.player.Currency
	}
	s.player.Currency -= amount
	s.emit(EventCurrency, "player", s.player.Pos, -float64(amount), reason)
}
