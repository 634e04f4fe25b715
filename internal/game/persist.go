package game

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// SaveState is the persistent subset of a session. The simulation only
// produces and consumes it; encoding it is the caller's business.
type SaveState struct {
	Wave       int              `yaml:"wave"`
	Currency   int              `yaml:"currency"`
	PlayerHP   float64          `yaml:"player_hp"`
	CoreHP     float64          `yaml:"core_hp"`
	Grenades   int              `yaml:"grenades"`
	Unlocked   []string         `yaml:"unlocked"`
	Purchased  []string         `yaml:"purchased"`
	Buffs      []string         `yaml:"buffs"`
	Structures []SavedStructure `yaml:"structures"`
}

// SavedStructure is one structure in a SaveState.
type SavedStructure struct {
	Kind      string        `yaml:"kind"`
	X         int           `yaml:"x"`
	Y         int           `yaml:"y"`
	HP        float64       `yaml:"hp"`
	Remaining time.Duration `yaml:"remaining"` // zero for permanent structures
	Produced  int           `yaml:"produced"`
}

// ExportState captures the persistent state of the session.
func (s *Sim) ExportState() SaveState {
	p := &s.player
	st := SaveState{
		Wave:      s.wave.Number,
		Currency:  p.Currency,
		PlayerHP:  p.HP,
		CoreHP:    s.core.HP,
		Grenades:  p.Grenades,
		Unlocked:  append([]string(nil), p.Unlocked...),
		Purchased: append([]string(nil), p.Purchased...),
	}
	for _, b := range p.Buffs {
		st.Buffs = append(st.Buffs, b.String())
	}
	for _, x := range s.structures {
		if x.dead {
			continue
		}
		st.Structures = append(st.Structures, SavedStructure{
			Kind:      x.Kind.String(),
			X:         x.Pos.X,
			Y:         x.Pos.Y,
			HP:        x.HP,
			Remaining: x.Remaining(s.now),
			Produced:  x.Produced,
		})
	}
	return st
}

// RestoreState replaces the session with st and enters an intermission
// before the next wave. Enemies, projectiles and pickups are cleared.
// Entries the simulation cannot honour (unknown ids, invalid or occupied
// tiles, expired timers) are skipped; values are clamped to their ranges.
func (s *Sim) RestoreState(st SaveState) {
	for _, x := range s.structures {
		s.grid.Vacate(x)
	}
	s.structures = nil
	s.enemies = nil
	s.projectiles = nil
	s.grenades = nil
	s.bonuses = nil

	s.wave = WaveState{
		Number:             max(0, st.Wave),
		Phase:              PhaseIntermission,
		IntermissionEndsAt: s.now + s.cfg.IntermissionDuration,
	}

	p := &s.player
	p.Currency = max(0, st.Currency)
	p.Grenades = max(0, st.Grenades)
	p.HP = clampHP(st.PlayerHP, p.MaxHP)
	s.core.HP = clampHP(st.CoreHP, s.core.MaxHP)

	p.Unlocked = p.Unlocked[:0]
	for _, w := range s.cfg.Weapons {
		if w.Price == 0 {
			p.Unlocked = append(p.Unlocked, w.ID)
		}
	}
	for _, id := range st.Unlocked {
		if _, ok := s.cfg.Weapon(id); ok && !p.HasWeapon(id) {
			p.Unlocked = append(p.Unlocked, id)
		}
	}
	p.Purchased = nil
	for _, id := range st.Purchased {
		if _, ok := s.cfg.Weapon(id); ok {
			p.Purchased = append(p.Purchased, id)
		}
	}
	p.Buffs = nil
	for _, name := range st.Buffs {
		if b, ok := ParseBuffKind(name); ok {
			p.Buffs = append(p.Buffs, b)
		}
	}

	skipped := 0
	for _, saved := range st.Structures {
		if !s.restoreStructure(saved) {
			skipped++
		}
	}
	s.invalidateField("state restored")
	s.emit(EventStateRestored, "--", s.core.Pos, float64(len(s.structures)), "")
	if skipped > 0 {
		s.log.WithFields(logrus.Fields{
			"skipped":  skipped,
			"restored": len(s.structures),
		}).Warn("restore skipped structures")
	}
}

func (s *Sim) restoreStructure(saved SavedStructure) bool {
	kind, ok := ParseStructureKind(saved.Kind)
	if !ok {
		return false
	}
	t := Tile{X: saved.X, Y: saved.Y}
	if t == s.core.Pos || t == s.player.Pos {
		return false
	}
	x := newStructure(&s.cfg, s.newID(), kind, t, s.now)
	if kind.PlayerBuilt() {
		if saved.Remaining <= 0 {
			return false
		}
		x.ExpiresAt = s.now + min(saved.Remaining, x.ExpiresAt-s.now)
	}
	if kind == StructureSpawner {
		x.Produced = min(max(0, saved.Produced), x.Quota)
	}
	if saved.HP > 0 {
		x.HP = math.Min(saved.HP, x.MaxHP)
	}
	if !s.grid.Occupy(x) {
		return false
	}
	s.structures = append(s.structures, x)
	return true
}

// clampHP keeps a restored hp in (0, max]; non-positive or NaN values
// restore to full.
func clampHP(v, maxHP float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return maxHP
	}
	return math.Min(v, maxHP)
}
