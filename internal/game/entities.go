package game

import (
	"fmt"
	"time"
)

// Faction tells which side fired a projectile.
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	if f == FactionPlayer {
		return "player"
	}
	return "enemy"
}

// mover interpolates a pixel position toward the centre of the tile an
// entity has already moved to logically.
type mover struct {
	Pixel  Vec2
	target Vec2
	moving bool
}

func (m *mover) startMove(to Vec2) {
	m.target = to
	m.moving = true
}

// place snaps the pixel position without animating.
func (m *mover) place(at Vec2) {
	m.Pixel = at
	m.target = at
	m.moving = false
}

// animate moves a fraction of the remaining distance and snaps when close.
func (m *mover) animate(lerp, snap float64) {
	if !m.moving {
		return
	}
	if m.Pixel.Dist(m.target) < snap {
		m.Pixel = m.target
		m.moving = false
		return
	}
	m.Pixel = m.Pixel.Lerp(m.target, lerp)
}

// Moving reports whether the entity is still animating toward its tile.
func (m *mover) Moving() bool { return m.moving }

// Core is the stationary objective the player defends.
type Core struct {
	Pos   Tile
	HP    float64
	MaxHP float64
}

// BuffKind is a permanent player upgrade.
type BuffKind uint8

const (
	BuffDamage BuffKind = iota
	BuffDefense
	BuffSpeed
)

var buffNames = [...]string{
	BuffDamage:  "BUFF_DAMAGE",
	BuffDefense: "BUFF_DEFENSE",
	BuffSpeed:   "BUFF_SPEED",
}

func (b BuffKind) String() string {
	if int(b) < len(buffNames) {
		return buffNames[b]
	}
	return "BUFF_UNKNOWN"
}

// ParseBuffKind is the inverse of String.
func ParseBuffKind(s string) (BuffKind, bool) {
	for i, n := range buffNames {
		if n == s {
			return BuffKind(i), true
		}
	}
	return 0, false
}

// Player is the single player-controlled entity.
type Player struct {
	Pos Tile
	mover
	HP        float64
	MaxHP     float64
	Currency  int
	Grenades  int
	Unlocked  []string
	Purchased []string
	Buffs     []BuffKind

	nextMove        time.Duration
	nextShot        time.Duration
	nextGrenade     time.Duration
	nextOvercharge  time.Duration
	overchargeUntil time.Duration
}

// HasWeapon reports whether id is unlocked.
func (p *Player) HasWeapon(id string) bool {
	for _, w := range p.Unlocked {
		if w == id {
			return true
		}
	}
	return false
}

// BuffStacks counts how many times b has been collected.
func (p *Player) BuffStacks(b BuffKind) int {
	n := 0
	for _, have := range p.Buffs {
		if have == b {
			n++
		}
	}
	return n
}

// EnemyKind identifies an enemy archetype.
type EnemyKind uint8

const (
	EnemyBasic   EnemyKind = iota // Melee, follows the cost field
	EnemyShooter                  // Melee movement plus ranged fire under LOS
	EnemyScout                    // Cheap fast melee produced by spawners
)

var enemyKindNames = [...]string{
	EnemyBasic:   "basic",
	EnemyShooter: "shooter",
	EnemyScout:   "scout",
}

func (k EnemyKind) String() string {
	if int(k) < len(enemyKindNames) {
		return enemyKindNames[k]
	}
	return "unknown"
}

// AIState is the enemy's current decision phase.
type AIState uint8

const (
	AICooling   AIState = iota // Waiting for the decision cooldown
	AIDeciding                 // Cooldown elapsed, choosing a step
	AIMoving                   // Animating toward the chosen tile
	AIAttacking                // Hitting a player structure in its path
	AIFiring                   // Holding still and shooting
)

var aiStateNames = [...]string{
	AICooling:   "cooling",
	AIDeciding:  "deciding",
	AIMoving:    "moving",
	AIAttacking: "attacking",
	AIFiring:    "firing",
}

func (s AIState) String() string {
	if int(s) < len(aiStateNames) {
		return aiStateNames[s]
	}
	return "unknown"
}

// RangedCapability lets an enemy shoot the player when it has line of sight.
type RangedCapability struct {
	ShootDelay time.Duration
	Damage     float64 // per bullet
	HasLOS     bool

	nextShot time.Duration
}

// Enemy is one hostile agent.
type Enemy struct {
	ID   int
	Kind EnemyKind
	Pos  Tile
	mover
	HP               float64
	MaxHP            float64
	Damage           float64
	BaseMoveCooldown time.Duration
	Reward           int
	Slowed           bool
	State            AIState
	Ranged           *RangedCapability // nil for melee-only kinds

	nextDecision time.Duration
	dead         bool
}

// Alive returns false once the enemy has been killed.
func (e *Enemy) Alive() bool { return !e.dead }

// MeleeOnly reports whether the enemy lacks a ranged attack.
func (e *Enemy) MeleeOnly() bool { return e.Ranged == nil }

// Label returns a short log label such as "shooter#12".
func (e *Enemy) Label() string { return fmt.Sprintf("%s#%d", e.Kind, e.ID) }

// Projectile is a bullet in flight.
type Projectile struct {
	Pos      Vec2
	Vel      Vec2
	Origin   Vec2
	Faction  Faction
	Damage   float64
	MaxRange float64
	Active   bool
}

// advance moves the bullet one step and deactivates it past its range, on a
// static wall tile, or outside the world.
func (p *Projectile) advance(m *GridMap) {
	p.Pos = p.Pos.Add(p.Vel)
	switch {
	case p.Pos.Dist(p.Origin) > p.MaxRange:
		p.Active = false
	case m.IsWall(m.TileAt(p.Pos)):
		p.Active = false
	case !m.InWorld(p.Pos):
		p.Active = false
	}
}

// Grenade flies at a fixed speed toward a fixed point and explodes there.
type Grenade struct {
	Pos    Vec2
	Target Vec2
	Speed  float64
	Radius float64
	Damage float64
	Active bool
}

// advance steps toward the target and reports whether it detonated.
func (g *Grenade) advance() bool {
	d := g.Target.Sub(g.Pos)
	dist := d.Len()
	if dist < g.Speed {
		g.Pos = g.Target
		g.Active = false
		return true
	}
	g.Pos = g.Pos.Add(d.Scale(g.Speed / dist))
	return false
}
