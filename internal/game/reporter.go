package game

import (
	"fmt"
	"strings"
)

// SessionStats are running totals collected over a session.
type SessionStats struct {
	Spawned       int
	Kills         int
	Cleared       int
	KillsByKind   [len(enemyKindNames)]int
	Earned        int
	Built         int
	ShotsFired    int
	BonusesTaken  int
	FieldRebuilds int
	WavesStarted  int
	WavesCleared  int
	CoreDamage    float64
	PlayerDamage  float64
}

// SessionReport pairs the totals with the state they ended in.
type SessionReport struct {
	Tick    int
	Wave    int
	Phase   Phase
	CoreHP  float64
	Outcome Outcome
	Stats   SessionStats
}

// Report returns the session totals so far.
func (s *Sim) Report() SessionReport {
	return SessionReport{
		Tick:    s.tick,
		Wave:    s.wave.Number,
		Phase:   s.wave.Phase,
		CoreHP:  s.core.HP,
		Outcome: DetermineOutcome(s),
		Stats:   s.stats,
	}
}

// Format renders the report as key=value lines.
func (r SessionReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick=%d wave=%d phase=%s outcome=%s\n", r.Tick, r.Wave, r.Phase, r.Outcome)
	fmt.Fprintf(&sb, "core_hp=%.1f core_damage=%.1f player_damage=%.1f\n",
		r.CoreHP, r.Stats.CoreDamage, r.Stats.PlayerDamage)
	fmt.Fprintf(&sb, "spawned=%d cleared=%d kills=%d", r.Stats.Spawned, r.Stats.Cleared, r.Stats.Kills)
	for k, n := range r.Stats.KillsByKind {
		fmt.Fprintf(&sb, " %s=%d", EnemyKind(k), n)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "earned=%d built=%d shots=%d bonuses=%d\n",
		r.Stats.Earned, r.Stats.Built, r.Stats.ShotsFired, r.Stats.BonusesTaken)
	fmt.Fprintf(&sb, "waves_started=%d waves_cleared=%d field_rebuilds=%d\n",
		r.Stats.WavesStarted, r.Stats.WavesCleared, r.Stats.FieldRebuilds)
	return sb.String()
}
