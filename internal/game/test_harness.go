package game

import (
	"fmt"
)

// TestSim is a headless simulation harness used exclusively by tests.
// It wraps Sim on a hand-built map, defaults to a deterministic open 10×10
// board with the wave director off, and records every event to a SimLog.
type TestSim struct {
	Sim    *Sim
	SimLog *SimLog
	Events []Event // everything emitted since construction

	cfg       Balance
	size      int
	seed      int64
	objective Tile
	player    Tile
	walls     []Tile
	director  bool
	queued    []Command
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // map size, walls, seed, verbose, balance, applied first
	simOptEntity                      // enemies and structures, applied after the Sim exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithMapSize sets the side length of the square map.
func WithMapSize(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.size = n }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithVerbose enables per-tick AI intent logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithBalance lets a test tweak the tuning before the Sim is built.
func WithBalance(fn func(*Balance)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { fn(&ts.cfg) }}
}

// WithObjective places the core.
func WithObjective(t Tile) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.objective = t }}
}

// WithPlayer sets the player's start tile.
func WithPlayer(t Tile) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.player = t }}
}

// WithWall adds static wall terrain.
func WithWall(tiles ...Tile) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.walls = append(ts.walls, tiles...) }}
}

// WithDirector turns the wave state machine on.
func WithDirector() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.director = true }}
}

// WithEnemy spawns an enemy of the given kind.
func WithEnemy(kind EnemyKind, at Tile) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.Sim.spawnEnemy(kind, at) }}
}

// WithStructure places a structure of any kind, bypassing cost and range.
func WithStructure(kind StructureKind, at Tile) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.AddStructure(kind, at) }}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (map, walls, seed, balance), then build the Sim
//  2. Entities
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultBalance()
	cfg.SpawnJitter = 0
	cfg.BonusDropChance = 0
	ts := &TestSim{
		SimLog:    NewSimLog(false),
		cfg:       cfg,
		size:      10,
		seed:      1,
		objective: Tile{X: 5, Y: 5},
		player:    Tile{X: 9, Y: 9},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.cfg.MapSize = ts.size

	m := NewGridMap(ts.size, ts.cfg.TileSize)
	for _, w := range ts.walls {
		m.SetTerrain(w, TerrainWall)
	}
	simOpts := []Option{
		Seeded(ts.seed),
		WithSimLog(ts.SimLog),
		OnMap(m, ts.objective, ts.player),
	}
	if !ts.director {
		simOpts = append(simOpts, WithoutDirector())
	}
	ts.Sim = NewSim(ts.cfg, simOpts...)

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// AddStructure registers a structure directly on the map.
func (ts *TestSim) AddStructure(kind StructureKind, at Tile) *Structure {
	s := ts.Sim
	st := newStructure(&s.cfg, s.newID(), kind, at, s.now)
	if !s.grid.Occupy(st) {
		panic(fmt.Sprintf("test harness: cannot place %s on %s", kind, at))
	}
	s.structures = append(s.structures, st)
	s.invalidateField(st.Label() + " placed")
	return st
}

// Queue adds commands to be applied on the next tick.
func (ts *TestSim) Queue(cmds ...Command) {
	ts.queued = append(ts.queued, cmds...)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step()
		if predicate(ts) {
			return ts.Sim.tick
		}
	}
	return -1
}

func (ts *TestSim) step() []Event {
	in := Input{Commands: ts.queued}
	ts.queued = nil
	evs := ts.Sim.Step(TickDuration, in)
	ts.Events = append(ts.Events, evs...)
	return evs
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.tick
}

// Snapshot returns the Sim's read-only view.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Sim.Snapshot()
}

// Enemy returns the first live enemy, or nil.
func (ts *TestSim) Enemy() *Enemy {
	for _, e := range ts.Sim.enemies {
		if !e.dead {
			return e
		}
	}
	return nil
}

// CountEvents counts events of one kind seen so far.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, e := range ts.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
