package game

import (
	"math"
	"time"
)

// BonusKind identifies a pickup.
type BonusKind uint8

const (
	BonusHealth BonusKind = iota
	BonusGrenadeBox
	BonusCoreRepair
	BonusBuffDamage
	BonusBuffDefense
	BonusBuffSpeed
	BonusWeaponCrate
)

var bonusNames = [...]string{
	BonusHealth:      "HEALTH",
	BonusGrenadeBox:  "GRENADE_BOX",
	BonusCoreRepair:  "CORE_REPAIR",
	BonusBuffDamage:  "BUFF_DAMAGE",
	BonusBuffDefense: "BUFF_DEFENSE",
	BonusBuffSpeed:   "BUFF_SPEED",
	BonusWeaponCrate: "WEAPON_CRATE",
}

func (k BonusKind) String() string {
	if int(k) < len(bonusNames) {
		return bonusNames[k]
	}
	return "UNKNOWN"
}

// commonBonusWeights are the relative odds of the common tier.
var commonBonusWeights = []struct {
	kind   BonusKind
	weight int
}{
	{BonusHealth, 40},
	{BonusGrenadeBox, 30},
	{BonusCoreRepair, 30},
}

// Bonus is a pickup lying on a tile.
type Bonus struct {
	ID        int
	Kind      BonusKind
	Pos       Tile
	ExpiresAt time.Duration // zero = never

	gone bool
}

// rollBonusKind picks a permanent buff with BonusBuffChance, otherwise a
// weighted common pickup.
func (s *Sim) rollBonusKind() BonusKind {
	if s.rng.Float64() < s.cfg.BonusBuffChance {
		buffs := [...]BonusKind{BonusBuffDamage, BonusBuffDefense, BonusBuffSpeed}
		return buffs[s.rng.Intn(len(buffs))]
	}
	total := 0
	for _, w := range commonBonusWeights {
		total += w.weight
	}
	r := s.rng.Intn(total)
	for _, w := range commonBonusWeights {
		if r < w.weight {
			return w.kind
		}
		r -= w.weight
	}
	return BonusHealth
}

// dropBonus places a pickup on t unless one already lies there.
func (s *Sim) dropBonus(t Tile, kind BonusKind) *Bonus {
	if s.bonusAt(t) != nil {
		return nil
	}
	b := &Bonus{ID: s.newID(), Kind: kind, Pos: t}
	if kind != BonusWeaponCrate && s.cfg.BonusLifetime > 0 {
		b.ExpiresAt = s.now + s.cfg.BonusLifetime
	}
	s.bonuses = append(s.bonuses, b)
	s.emit(EventBonusDropped, "bonus", t, 0, kind.String())
	return b
}

func (s *Sim) bonusAt(t Tile) *Bonus {
	for _, b := range s.bonuses {
		if !b.gone && b.Pos == t {
			return b
		}
	}
	return nil
}

func (s *Sim) expireBonuses() {
	for _, b := range s.bonuses {
		if !b.gone && b.ExpiresAt > 0 && s.now >= b.ExpiresAt {
			b.gone = true
			s.emit(EventBonusExpired, "bonus", b.Pos, 0, b.Kind.String())
		}
	}
}

// collectBonuses applies the pickup under the player, if any.
func (s *Sim) collectBonuses() {
	if s.player.HP <= 0 {
		return
	}
	b := s.bonusAt(s.player.Pos)
	if b == nil {
		return
	}
	b.gone = true
	s.applyBonus(b.Kind)
	s.stats.BonusesTaken++
	s.emit(EventBonusCollected, "player", b.Pos, 0, b.Kind.String())
}

func (s *Sim) applyBonus(kind BonusKind) {
	p := &s.player
	switch kind {
	case BonusHealth:
		p.HP = math.Min(p.MaxHP, p.HP+s.cfg.HealthBonus)
	case BonusGrenadeBox:
		p.Grenades += s.cfg.GrenadeBoxCount
	case BonusCoreRepair:
		s.core.HP = math.Min(s.core.MaxHP, s.core.HP+s.cfg.CoreRepairBonus)
	case BonusBuffDamage:
		p.Buffs = append(p.Buffs, BuffDamage)
	case BonusBuffDefense:
		p.Buffs = append(p.Buffs, BuffDefense)
	case BonusBuffSpeed:
		p.Buffs = append(p.Buffs, BuffSpeed)
	case BonusWeaponCrate:
		s.openCrate()
	}
}

// openCrate unlocks a random locked weapon, or pays cash if none is left.
func (s *Sim) openCrate() {
	var locked []string
	for _, w := range s.cfg.Weapons {
		if !s.player.HasWeapon(w.ID) {
			locked = append(locked, w.ID)
		}
	}
	if len(locked) == 0 {
		s.credit(s.cfg.CrateFallbackCash, "weapon crate")
		return
	}
	id := locked[s.rng.Intn(len(locked))]
	s.player.Unlocked = append(s.player.Unlocked, id)
	s.emit(EventWeaponUnlocked, "player", s.player.Pos, 0, id)
}

// maybeSpawnCrate drops a weapon crate far from the core while the player
// has few weapons and no crate is already waiting.
func (s *Sim) maybeSpawnCrate() {
	if len(s.player.Unlocked) >= s.cfg.CrateUnlockTarget {
		return
	}
	for _, b := range s.bonuses {
		if !b.gone && b.Kind == BonusWeaponCrate {
			return
		}
	}
	if t, ok := s.freeTileNear(s.core.Pos, s.cfg.CrateMinDist, s.cfg.CrateMaxDist); ok {
		s.dropBonus(t, BonusWeaponCrate)
	}
}
