package game

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Mode is the kind of wave being played.
type Mode uint8

const (
	ModeNormal   Mode = iota // Fixed roster; ends when enemies and spawners are gone
	ModeSurvival             // Timed trickle; ends when the timer runs out
)

func (m Mode) String() string {
	if m == ModeSurvival {
		return "survival"
	}
	return "normal"
}

// Phase is the top-level session state.
type Phase uint8

const (
	PhaseIntermission Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntermission:
		return "intermission"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// WaveState is the director's state machine.
type WaveState struct {
	Number             int
	Mode               Mode
	Phase              Phase
	PopulationCap      int
	IntermissionEndsAt time.Duration
	SurvivalEndsAt     time.Duration
	nextTrickle        time.Duration
}

// WaveStats are the scaled stats of Basic and Shooter enemies for one wave.
type WaveStats struct {
	HP           float64
	Damage       float64
	MoveCooldown time.Duration
}

// StatsForWave scales enemy stats linearly with the wave number.
func (b *Balance) StatsForWave(n int) WaveStats {
	move := b.MoveBase - time.Duration(n)*b.MoveStep
	if move < b.MoveFloor {
		move = b.MoveFloor
	}
	return WaveStats{
		HP:           b.HPBase + b.HPGrowth*float64(n),
		Damage:       b.DamageBase + b.DamageGrowth*float64(n),
		MoveCooldown: move,
	}
}

// RosterForWave returns the enemy count and how many of them are shooters.
func (b *Balance) RosterForWave(n int) (total, shooters int) {
	total = b.EnemyBase + b.EnemyGrowth*n
	share := math.Min(b.ShooterCap, b.ShooterPerWave*float64(n))
	return total, int(float64(total) * share)
}

// direct runs the director for one tick.
func (s *Sim) direct() {
	s.expireStructures()
	s.expireBonuses()
	s.runSpawners()
	if !s.director {
		return
	}

	w := &s.wave
	switch w.Phase {
	case PhaseIntermission:
		if s.now >= w.IntermissionEndsAt {
			s.startWave(w.Number + 1)
		}
	case PhasePlaying:
		if w.Mode == ModeSurvival {
			if s.now >= w.SurvivalEndsAt {
				s.endSurvival()
				return
			}
			s.trickle()
			return
		}
		if s.liveEnemies() == 0 && s.countStructures(StructureSpawner) == 0 {
			s.endWave()
		}
	}
}

func (s *Sim) startWave(n int) {
	w := &s.wave
	w.Number = n
	w.Phase = PhasePlaying
	// Structures first so the roster's reachability check sees them.
	s.seedStructures(n)
	if s.cfg.SurvivalEvery > 0 && n%s.cfg.SurvivalEvery == 0 {
		w.Mode = ModeSurvival
		w.PopulationCap = s.cfg.SurvivalCap
		w.SurvivalEndsAt = s.now + s.cfg.SurvivalDuration
		w.nextTrickle = s.now
	} else {
		w.Mode = ModeNormal
		w.PopulationCap = s.cfg.NormalCap
		s.spawnRoster(n)
	}
	s.maybeSpawnCrate()

	s.stats.WavesStarted++
	s.emit(EventWaveStarted, "--", s.core.Pos, float64(n), w.Mode.String())
	s.log.WithFields(logrus.Fields{
		"wave":    n,
		"mode":    w.Mode.String(),
		"enemies": s.liveEnemies(),
	}).Info("wave started")
}

func (s *Sim) endWave() {
	w := &s.wave
	w.Phase = PhaseIntermission
	w.IntermissionEndsAt = s.now + s.cfg.IntermissionDuration
	s.stats.WavesCleared++
	s.emit(EventWaveCleared, "--", s.core.Pos, float64(w.Number), w.Mode.String())
	s.log.WithFields(logrus.Fields{
		"wave":     w.Number,
		"currency": s.player.Currency,
		"core_hp":  s.core.HP,
	}).Info("wave cleared")

	if t, ok := s.freeTileNear(s.core.Pos, 2, 4); ok {
		s.dropBonus(t, s.rollBonusKind())
	}
}

// endSurvival pays the survival bonus and clears the board without rewards.
func (s *Sim) endSurvival() {
	for _, e := range s.enemies {
		s.clearEnemy(e, "survival ended")
	}
	s.credit(s.cfg.SurvivalBonus, "survival bonus")
	s.endWave()
}

// spawnRoster places a normal wave's enemies on the border.
func (s *Sim) spawnRoster(n int) {
	total, shooters := s.cfg.RosterForWave(n)
	for i := 0; i < total; i++ {
		if s.liveEnemies() >= s.wave.PopulationCap {
			return
		}
		kind := EnemyBasic
		if i < shooters {
			kind = EnemyShooter
		}
		t, ok := s.sampleBorderTile()
		if !ok {
			continue
		}
		s.spawnEnemy(kind, t)
	}
}

// trickle adds one enemy per interval during survival, up to the cap.
func (s *Sim) trickle() {
	w := &s.wave
	if s.now < w.nextTrickle {
		return
	}
	w.nextTrickle = s.now + s.cfg.SurvivalTrickle
	if s.liveEnemies() >= w.PopulationCap {
		return
	}
	kind := EnemyBasic
	switch r := s.rng.Float64(); {
	case r < 0.25:
		kind = EnemyShooter
	case r < 0.5:
		kind = EnemyScout
	}
	if t, ok := s.sampleBorderTile(); ok {
		s.spawnEnemy(kind, t)
	}
}

// sampleBorderTile picks a random border tile that is open, reachable, and
// far enough from the player. Gives up after SpawnAttempts tries.
func (s *Sim) sampleBorderTile() (Tile, bool) {
	// Runs before the tick's regular rebuild; this takes its place.
	s.refreshField()
	size := s.grid.Size
	for i := 0; i < s.cfg.SpawnAttempts; i++ {
		var t Tile
		edge := s.rng.Intn(size - 2)
		switch s.rng.Intn(4) {
		case 0:
			t = Tile{X: 1 + edge, Y: 1}
		case 1:
			t = Tile{X: 1 + edge, Y: size - 2}
		case 2:
			t = Tile{X: 1, Y: 1 + edge}
		default:
			t = Tile{X: size - 2, Y: 1 + edge}
		}
		if s.grid.IsBlocked(t) || !s.field.Reachable(t) {
			continue
		}
		if t.Manhattan(s.player.Pos) < s.cfg.MinSpawnDistance {
			continue
		}
		return t, true
	}
	return Tile{}, false
}

// spawnEnemy creates an enemy of the given kind scaled for the current wave.
func (s *Sim) spawnEnemy(kind EnemyKind, at Tile) *Enemy {
	e := &Enemy{ID: s.newID(), Kind: kind, Pos: at}
	switch kind {
	case EnemyScout:
		e.HP = s.cfg.ScoutHP
		e.Damage = s.cfg.ScoutDamage
		e.BaseMoveCooldown = s.cfg.ScoutMoveCooldown
		e.Reward = s.cfg.ScoutReward
	default:
		st := s.cfg.StatsForWave(max(1, s.wave.Number))
		e.HP = st.HP
		e.Damage = st.Damage
		e.BaseMoveCooldown = st.MoveCooldown
		e.Reward = s.cfg.BasicReward
		if kind == EnemyShooter {
			e.Reward = s.cfg.ShooterReward
			e.Ranged = &RangedCapability{ShootDelay: s.cfg.ShootDelay, Damage: s.cfg.EnemyBullet}
		}
	}
	e.MaxHP = e.HP
	e.place(s.grid.TileCenter(at))
	if s.cfg.SpawnJitter > 0 {
		e.nextDecision = s.now + time.Duration(s.rng.Int63n(int64(s.cfg.SpawnJitter)))
	}
	s.enemies = append(s.enemies, e)
	s.stats.Spawned++
	s.emit(EventEnemySpawned, e.Label(), at, e.HP, "")
	return e
}

// runSpawners lets each spawner produce a scout on a free neighbour tile.
func (s *Sim) runSpawners() {
	for _, st := range s.structures {
		if st.dead || st.Kind != StructureSpawner || st.Exhausted() || s.now < st.NextSpawn {
			continue
		}
		st.NextSpawn = s.now + s.cfg.SpawnerInterval
		if s.wave.PopulationCap > 0 && s.liveEnemies() >= s.wave.PopulationCap {
			continue
		}
		t, ok := s.adjacentFreeTile(st.Pos)
		if !ok {
			continue
		}
		s.spawnEnemy(EnemyScout, t)
		st.Produced++
	}
}

// adjacentFreeTile returns a random unblocked 4-neighbour of t.
func (s *Sim) adjacentFreeTile(t Tile) (Tile, bool) {
	order := scanOrder
	s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for _, d := range order {
		n := t.Add(d.X, d.Y)
		if !s.grid.IsBlocked(n) {
			return n, true
		}
	}
	return Tile{}, false
}

// seedStructures may place a spawner and an energy node at wave start.
func (s *Sim) seedStructures(n int) {
	c := &s.cfg
	spawnerCap := min(c.SpawnerMax, 1+n/4)
	if n >= c.SpawnerMinWave && s.countStructures(StructureSpawner) < spawnerCap && s.rng.Float64() < c.SpawnerChance {
		s.placeInAnnulus(StructureSpawner, c.SpawnerMinDist, c.SpawnerMaxDist)
	}
	if n >= c.EnergyNodeMinWave && s.countStructures(StructureEnergyNode) < c.EnergyNodeMax && s.rng.Float64() < c.EnergyNodeChance {
		s.placeInAnnulus(StructureEnergyNode, c.EnergyNodeMinDist, c.EnergyNodeMaxDist)
	}
}

// placeInAnnulus places an enemy structure on a random free tile whose
// Manhattan distance from the core lies in [lo, hi].
func (s *Sim) placeInAnnulus(kind StructureKind, lo, hi int) (*Structure, bool) {
	t, ok := s.freeTileNear(s.core.Pos, lo, hi)
	if !ok {
		return nil, false
	}
	st := newStructure(&s.cfg, s.newID(), kind, t, s.now)
	if !s.grid.Occupy(st) {
		return nil, false
	}
	s.structures = append(s.structures, st)
	s.emit(EventStructureSpawned, st.Label(), t, st.HP, "")
	s.invalidateField(st.Label() + " spawned")
	return st, true
}

// freeTileNear samples a tile in the Manhattan annulus [lo, hi] around c
// that is open, unoccupied, and not under the core, the player or a bonus.
func (s *Sim) freeTileNear(c Tile, lo, hi int) (Tile, bool) {
	for i := 0; i < s.cfg.PlacementAttempts; i++ {
		t := c.Add(s.rng.Intn(2*hi+1)-hi, s.rng.Intn(2*hi+1)-hi)
		d := t.Manhattan(c)
		if d < lo || d > hi || !s.grid.InBounds(t) || s.grid.IsBlocked(t) {
			continue
		}
		if t == s.core.Pos || t == s.player.Pos {
			continue
		}
		if _, taken := s.grid.StructureAt(t); taken || s.bonusAt(t) != nil {
			continue
		}
		return t, true
	}
	return Tile{}, false
}

// expireStructures removes player structures whose lifetime has run out.
func (s *Sim) expireStructures() {
	for _, st := range s.structures {
		if !st.dead && st.Expired(s.now) {
			s.removeStructure(st, EventStructureExpired)
		}
	}
}
