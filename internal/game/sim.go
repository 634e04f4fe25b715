package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Sim is the simulation root. It owns the map, the cost field and every
// entity collection, and advances them one fixed tick at a time. It is not
// safe for concurrent use.
type Sim struct {
	cfg   Balance
	grid  *GridMap
	field *CostField

	core        Core
	player      Player
	enemies     []*Enemy
	structures  []*Structure
	projectiles []*Projectile
	grenades    []*Grenade
	bonuses     []*Bonus
	wave        WaveState

	now      time.Duration // active simulated time; paused ticks never advance it
	tick     int
	nextID   int
	director bool

	rng    *rand.Rand
	simLog *SimLog
	log    logrus.FieldLogger
	events []Event
	stats  SessionStats
}

// Option configures a Sim at construction.
type Option func(*Sim)

// Seeded sets the RNG seed used for map generation, spawning and drops.
func Seeded(seed int64) Option {
	return func(s *Sim) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithLogger routes structured diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Sim) { s.log = l }
}

// WithSimLog mirrors every event into sl.
func WithSimLog(sl *SimLog) Option {
	return func(s *Sim) { s.simLog = sl }
}

// OnMap uses a prepared map instead of generating one.
func OnMap(m *GridMap, objective, playerStart Tile) Option {
	return func(s *Sim) {
		s.grid = m
		s.core.Pos = objective
		s.player.Pos = playerStart
	}
}

// WithoutDirector disables the wave state machine: no waves start and no
// structures are seeded. Spawner production and expiry still run.
func WithoutDirector() Option {
	return func(s *Sim) { s.director = false }
}

// NewSim builds a simulation in its first intermission.
func NewSim(cfg Balance, opts ...Option) *Sim {
	s := &Sim{
		cfg:      cfg,
		director: true,
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- gameplay randomness
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	if s.grid == nil {
		s.core.Pos = Tile{X: cfg.MapSize / 2, Y: cfg.MapSize / 2}
		s.player.Pos = s.core.Pos.Add(3, 3)
		s.grid = GenerateMap(&s.cfg, s.core.Pos, s.player.Pos, s.rng)
	}
	s.field = NewCostField(s.grid.Size)

	s.core.HP = cfg.CoreHP
	s.core.MaxHP = cfg.CoreHP

	p := &s.player
	p.HP = cfg.PlayerHP
	p.MaxHP = cfg.PlayerHP
	p.Currency = cfg.StartCurrency
	p.Grenades = cfg.StartGrenades
	for _, w := range cfg.Weapons {
		if w.Price == 0 {
			p.Unlocked = append(p.Unlocked, w.ID)
		}
	}
	p.place(s.grid.TileCenter(p.Pos))

	s.wave = WaveState{
		Phase:              PhaseIntermission,
		IntermissionEndsAt: cfg.IntermissionDuration,
	}
	return s
}

// Input is the set of player commands for one tick.
type Input struct {
	Commands []Command
}

// Step advances the simulation by one tick covering elapsed virtual time and
// returns the events it produced. A finished game ignores further steps.
func (s *Sim) Step(elapsed time.Duration, in Input) []Event {
	s.events = nil
	if s.wave.Phase == PhaseGameOver {
		return nil
	}
	s.tick++
	s.now += elapsed

	// 1. COMMANDS
	for _, c := range in.Commands {
		if !c.apply(s) {
			s.emit(EventCommandRejected, "player", s.player.Pos, 0, c.String())
		}
	}

	// 2. DIRECTOR: expiry, spawning, wave transitions.
	s.direct()

	// 3. FIELD: at most one rebuild, before anything reads it.
	s.refreshField()

	// 4. AI
	s.thinkEnemies()

	// 5. COMBAT
	s.updateProjectiles()
	s.updateGrenades()
	s.applyContact()
	s.collectBonuses()

	// 6. ANIMATION
	s.animate()

	// 7. COMPACTION
	s.compact()

	// 8. GAME OVER
	s.checkGameOver()

	return s.events
}

// refreshField rebuilds the cost field if anything invalidated it.
func (s *Sim) refreshField() {
	if !s.field.Refresh(s.grid, s.core.Pos, s.liveStructures(StructureCryoNode), s.cfg.CostRules()) {
		return
	}
	s.stats.FieldRebuilds++
	s.emit(EventFieldRebuilt, "--", s.core.Pos, float64(s.field.Revision()), "")
}

// invalidateField marks the cost field stale.
func (s *Sim) invalidateField(reason string) {
	if !s.field.Dirty() {
		s.emit(EventFieldDirty, "--", s.core.Pos, 0, reason)
	}
	s.field.MarkDirty()
}

// thinkEnemies runs Decide for every live enemy and resolves the intents.
func (s *Sim) thinkEnemies() {
	ctx := DecisionContext{
		Now:         s.now,
		World:       s.grid,
		Costs:       s.field,
		Player:      s.player.Pos,
		PlayerPixel: s.player.Pixel,
		Cryos:       s.liveStructures(StructureCryoNode),
		Rules:       s.cfg.AIRules(),
	}
	for _, e := range s.enemies {
		if e.dead {
			continue
		}
		in := Decide(e, &ctx)
		if in.Kind != IntentNone && s.simLog != nil {
			s.simLog.AddVerbose(s.tick, e.Label(), "enemy", "ai", in.Kind.String(), in.To.String(), 0)
		}
		s.resolveIntent(e, in)
	}
}

func (s *Sim) resolveIntent(e *Enemy, in Intent) {
	switch in.Kind {
	case IntentMove:
		e.Pos = in.To
		e.startMove(s.grid.TileCenter(in.To))
	case IntentAttack:
		destroyed := s.damageStructure(in.Target, e.Damage*s.cfg.WallAttackFactor, false)
		if destroyed && e.MeleeOnly() {
			s.killEnemy(e, false, "collapsed with "+in.Target.Label())
		}
	case IntentFire:
		s.fireEnemyBullet(e, in.Aim)
	}
}

func (s *Sim) animate() {
	s.player.animate(s.cfg.AnimLerp, s.cfg.AnimSnap)
	for _, e := range s.enemies {
		e.animate(s.cfg.AnimLerp, s.cfg.AnimSnap)
	}
}

// compact drops everything flagged dead or inactive during the tick.
func (s *Sim) compact() {
	s.enemies = keepLive(s.enemies, (*Enemy).Alive)
	s.structures = keepLive(s.structures, (*Structure).Alive)
	s.projectiles = keepLive(s.projectiles, func(p *Projectile) bool { return p.Active })
	s.grenades = keepLive(s.grenades, func(g *Grenade) bool { return g.Active })
	s.bonuses = keepLive(s.bonuses, func(b *Bonus) bool { return !b.gone })
}

func keepLive[T any](xs []T, alive func(T) bool) []T {
	out := xs[:0]
	for _, x := range xs {
		if alive(x) {
			out = append(out, x)
		}
	}
	clear(xs[len(out):])
	return out
}

func (s *Sim) checkGameOver() {
	var cause string
	switch {
	case s.core.HP <= 0:
		cause = "core destroyed"
	case s.player.HP <= 0:
		cause = "player killed"
	default:
		return
	}
	s.wave.Phase = PhaseGameOver
	s.emit(EventGameOver, "--", s.core.Pos, float64(s.wave.Number), cause)
	s.log.WithFields(logrus.Fields{
		"wave":  s.wave.Number,
		"tick":  s.tick,
		"cause": cause,
		"kills": s.stats.Kills,
	}).Info("game over")
}

func (s *Sim) newID() int {
	s.nextID++
	return s.nextID
}

// over reports whether player commands must be refused.
func (s *Sim) over() bool { return s.wave.Phase == PhaseGameOver }

// liveStructures returns the live structures of one kind.
func (s *Sim) liveStructures(kind StructureKind) []*Structure {
	var out []*Structure
	for _, st := range s.structures {
		if st.Kind == kind && !st.dead {
			out = append(out, st)
		}
	}
	return out
}

func (s *Sim) countStructures(kind StructureKind) int {
	n := 0
	for _, st := range s.structures {
		if st.Kind == kind && !st.dead {
			n++
		}
	}
	return n
}

func (s *Sim) liveEnemies() int {
	n := 0
	for _, e := range s.enemies {
		if !e.dead {
			n++
		}
	}
	return n
}

// --- read accessors used by collaborators ---

// Now returns the active simulated time.
func (s *Sim) Now() time.Duration { return s.now }

// Tick returns the number of ticks stepped.
func (s *Sim) Tick() int { return s.tick }

// Balance returns the tuning in use.
func (s *Sim) Balance() Balance { return s.cfg }

// Map exposes the grid for rendering. Callers must not mutate it.
func (s *Sim) Map() *GridMap { return s.grid }

// Field exposes the cost field for overlays. Callers must not mutate it.
func (s *Sim) Field() *CostField { return s.field }

// SimLog returns the attached SimLog, or nil.
func (s *Sim) SimLog() *SimLog { return s.simLog }

// GameOver reports whether the session has ended.
func (s *Sim) GameOver() bool { return s.over() }
