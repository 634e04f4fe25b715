package game

import "time"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick          int
	Clock         time.Duration
	Wave          WaveView
	Core          Core
	Player        PlayerView
	Enemies       []EnemyView
	Structures    []StructureView
	Projectiles   []ProjectileView
	Grenades      []GrenadeView
	Bonuses       []BonusView
	FieldRevision int
	FieldDirty    bool
	Defense       float64
	GameOver      bool
}

// WaveView describes the director state with timers as durations left.
type WaveView struct {
	Number        int
	Mode          Mode
	Phase         Phase
	PopulationCap int
	Intermission  time.Duration // remaining
	Survival      time.Duration // remaining
}

// PlayerView is the player's public state.
type PlayerView struct {
	Pos         Tile
	Pixel       Vec2
	HP          float64
	MaxHP       float64
	Currency    int
	Grenades    int
	Unlocked    []string
	Purchased   []string
	Buffs       []BuffKind
	Overcharged bool
	ShotReady   bool
	MoveReady   bool
}

// EnemyView is one enemy as seen by a renderer.
type EnemyView struct {
	ID     int
	Kind   EnemyKind
	Pos    Tile
	Pixel  Vec2
	HP     float64
	MaxHP  float64
	Slowed bool
	State  AIState
	HasLOS bool
}

// StructureView is one structure as seen by a renderer.
type StructureView struct {
	ID        int
	Kind      StructureKind
	Pos       Tile
	HP        float64
	MaxHP     float64
	Radius    int
	Remaining time.Duration
	Produced  int
	Quota     int
}

// ProjectileView is one bullet.
type ProjectileView struct {
	Pos     Vec2
	Faction Faction
}

// GrenadeView is one grenade in flight.
type GrenadeView struct {
	Pos    Vec2
	Target Vec2
	Radius float64
}

// BonusView is one pickup.
type BonusView struct {
	Kind      BonusKind
	Pos       Tile
	Remaining time.Duration
}

// Snapshot copies the live state. Dead entities awaiting compaction never
// appear because Step compacts before returning.
func (s *Sim) Snapshot() Snapshot {
	p := &s.player
	snap := Snapshot{
		Tick:  s.tick,
		Clock: s.now,
		Wave: WaveView{
			Number:        s.wave.Number,
			Mode:          s.wave.Mode,
			Phase:         s.wave.Phase,
			PopulationCap: s.wave.PopulationCap,
		},
		Core: s.core,
		Player: PlayerView{
			Pos:         p.Pos,
			Pixel:       p.Pixel,
			HP:          p.HP,
			MaxHP:       p.MaxHP,
			Currency:    p.Currency,
			Grenades:    p.Grenades,
			Unlocked:    append([]string(nil), p.Unlocked...),
			Purchased:   append([]string(nil), p.Purchased...),
			Buffs:       append([]BuffKind(nil), p.Buffs...),
			Overcharged: s.now < p.overchargeUntil,
			ShotReady:   s.now >= p.nextShot,
			MoveReady:   s.now >= p.nextMove,
		},
		FieldRevision: s.field.Revision(),
		FieldDirty:    s.field.Dirty(),
		Defense:       s.DefenseModifier(),
		GameOver:      s.over(),
	}
	if s.wave.Phase == PhaseIntermission && s.wave.IntermissionEndsAt > s.now {
		snap.Wave.Intermission = s.wave.IntermissionEndsAt - s.now
	}
	if s.wave.Phase == PhasePlaying && s.wave.Mode == ModeSurvival && s.wave.SurvivalEndsAt > s.now {
		snap.Wave.Survival = s.wave.SurvivalEndsAt - s.now
	}

	for _, e := range s.enemies {
		if e.dead {
			continue
		}
		v := EnemyView{
			ID: e.ID, Kind: e.Kind, Pos: e.Pos, Pixel: e.Pixel,
			HP: e.HP, MaxHP: e.MaxHP, Slowed: e.Slowed, State: e.State,
		}
		if e.Ranged != nil {
			v.HasLOS = e.Ranged.HasLOS
		}
		snap.Enemies = append(snap.Enemies, v)
	}
	for _, st := range s.structures {
		if st.dead {
			continue
		}
		snap.Structures = append(snap.Structures, StructureView{
			ID: st.ID, Kind: st.Kind, Pos: st.Pos, HP: st.HP, MaxHP: st.MaxHP,
			Radius: st.Radius, Remaining: st.Remaining(s.now),
			Produced: st.Produced, Quota: st.Quota,
		})
	}
	for _, pr := range s.projectiles {
		if pr.Active {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{Pos: pr.Pos, Faction: pr.Faction})
		}
	}
	for _, g := range s.grenades {
		if g.Active {
			snap.Grenades = append(snap.Grenades, GrenadeView{Pos: g.Pos, Target: g.Target, Radius: g.Radius})
		}
	}
	for _, b := range s.bonuses {
		if b.gone {
			continue
		}
		v := BonusView{Kind: b.Kind, Pos: b.Pos}
		if b.ExpiresAt > s.now {
			v.Remaining = b.ExpiresAt - s.now
		}
		snap.Bonuses = append(snap.Bonuses, v)
	}
	return snap
}
