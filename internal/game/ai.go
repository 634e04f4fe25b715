package game

import "time"

// WorldView is the read-only slice of the world an enemy decides against.
type WorldView interface {
	IsBlocked(t Tile) bool
	PlayerStructureAt(t Tile) (*Structure, bool)
	LineOfSight(a, b Vec2) bool
}

// CostLookup answers cost-to-objective queries.
type CostLookup interface {
	At(t Tile) int
}

// LineOfSight satisfies WorldView.
func (m *GridMap) LineOfSight(a, b Vec2) bool { return HasLineOfSight(m, a, b) }

// AIRules are the balance values the decision logic reads.
type AIRules struct {
	AggroRange         int
	ShootRange         int
	SlowMoveFactor     float64
	SlowShootFactor    float64
	WallAttackCooldown time.Duration
}

// AIRules extracts the decision parameters.
func (b *Balance) AIRules() AIRules {
	return AIRules{
		AggroRange:         b.AggroRange,
		ShootRange:         b.ShootRange,
		SlowMoveFactor:     b.SlowMoveFactor,
		SlowShootFactor:    b.SlowShootFactor,
		WallAttackCooldown: b.WallAttackCooldown,
	}
}

// DecisionContext is everything an enemy may look at during one tick.
type DecisionContext struct {
	Now         time.Duration
	World       WorldView
	Costs       CostLookup
	Player      Tile
	PlayerPixel Vec2
	Cryos       []*Structure
	Rules       AIRules
}

// IntentKind is what an enemy wants to do this tick.
type IntentKind uint8

const (
	IntentNone   IntentKind = iota // Animating or cooling down
	IntentHold                     // Decided to stay put
	IntentMove                     // Step onto To
	IntentAttack                   // Hit Target, which sits on To
	IntentFire                     // Shoot at Aim
)

var intentNames = [...]string{
	IntentNone:   "none",
	IntentHold:   "hold",
	IntentMove:   "move",
	IntentAttack: "attack",
	IntentFire:   "fire",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return "unknown"
}

// Intent is the output of Decide. The simulation resolves it.
type Intent struct {
	Kind   IntentKind
	To     Tile
	Target *Structure
	Aim    Vec2
}

// Decide runs one tick of an enemy's decision logic. It updates the enemy's
// own bookkeeping (slow flag, LOS, cooldowns, state) and returns the intent
// for the caller to resolve.
func Decide(e *Enemy, ctx *DecisionContext) Intent {
	e.Slowed = inAnyAura(ctx.Cryos, e.Pos)
	dist := e.Pos.Manhattan(ctx.Player)

	// Shooting does not wait for the step animation to finish.
	if r := e.Ranged; r != nil {
		r.HasLOS = dist < ctx.Rules.ShootRange && ctx.World.LineOfSight(e.Pixel, ctx.PlayerPixel)
		if r.HasLOS && ctx.Now >= r.nextShot {
			delay := r.ShootDelay
			if e.Slowed {
				delay = scaleDuration(delay, ctx.Rules.SlowShootFactor)
			}
			r.nextShot = ctx.Now + delay
			e.State = AIFiring
			return Intent{Kind: IntentFire, Aim: ctx.PlayerPixel}
		}
	}

	if e.moving {
		e.State = AIMoving
		return Intent{}
	}

	if ctx.Now < e.nextDecision {
		e.State = AICooling
		return Intent{}
	}
	e.State = AIDeciding

	cooldown := e.BaseMoveCooldown
	if e.Slowed {
		cooldown = scaleDuration(cooldown, ctx.Rules.SlowMoveFactor)
	}
	e.nextDecision = ctx.Now + cooldown

	step, ok := chooseStep(e.Pos, dist, ctx)
	if !ok {
		e.State = AICooling
		return Intent{Kind: IntentHold}
	}
	dest := e.Pos.Add(step.X, step.Y)

	if s, ok := ctx.World.PlayerStructureAt(dest); ok {
		// Never slower than the enemy's own step.
		e.nextDecision = ctx.Now + min(ctx.Rules.WallAttackCooldown, cooldown)
		e.State = AIAttacking
		return Intent{Kind: IntentAttack, To: dest, Target: s}
	}
	if ctx.World.IsBlocked(dest) {
		e.State = AICooling
		return Intent{Kind: IntentHold}
	}
	e.State = AIMoving
	return Intent{Kind: IntentMove, To: dest}
}

// chooseStep picks a unit step: greedy toward the player under aggro,
// otherwise the first strictly cheaper neighbour in scan order.
func chooseStep(pos Tile, distToPlayer int, ctx *DecisionContext) (Tile, bool) {
	cost := ctx.Costs.At(pos)

	if distToPlayer < ctx.Rules.AggroRange && float64(distToPlayer) < float64(cost)/2 {
		p := ctx.Player
		switch {
		case p.X > pos.X:
			return Tile{1, 0}, true
		case p.X < pos.X:
			return Tile{-1, 0}, true
		case p.Y > pos.Y:
			return Tile{0, 1}, true
		case p.Y < pos.Y:
			return Tile{0, -1}, true
		}
		return Tile{}, false
	}

	for _, d := range scanOrder {
		if ctx.Costs.At(pos.Add(d.X, d.Y)) < cost {
			return d, true
		}
	}
	return Tile{}, false
}

func inAnyAura(cryos []*Structure, t Tile) bool {
	for _, c := range cryos {
		if c.Alive() && c.InAura(t) {
			return true
		}
	}
	return false
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
