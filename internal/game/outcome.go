package game

import "strconv"

// Outcome is how a session stands or ended.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCoreDestroyed
	OutcomePlayerKilled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCoreDestroyed:
		return "core_destroyed"
	case OutcomePlayerKilled:
		return "player_killed"
	default:
		return "unknown"
	}
}

// OutcomeReason carries the outcome with the figures that describe it.
type OutcomeReason struct {
	Outcome       Outcome
	WavesSurvived int
	Kills         int
	CoreHP        float64
	PlayerHP      float64
	Description   string
}

// DetermineOutcome classifies the session. A destroyed core takes precedence
// over a dead player when both happen on the same tick.
func DetermineOutcome(s *Sim) Outcome {
	switch {
	case s.core.HP <= 0:
		return OutcomeCoreDestroyed
	case s.player.HP <= 0:
		return OutcomePlayerKilled
	default:
		return OutcomeRunning
	}
}

// Outcome returns the classified outcome with a human readable description.
func (s *Sim) Outcome() OutcomeReason {
	r := OutcomeReason{
		Outcome:  DetermineOutcome(s),
		Kills:    s.stats.Kills,
		CoreHP:   s.core.HP,
		PlayerHP: s.player.HP,
	}
	r.WavesSurvived = s.stats.WavesCleared
	switch r.Outcome {
	case OutcomeCoreDestroyed:
		r.Description = "The core fell"
	case OutcomePlayerKilled:
		r.Description = "The defender fell"
	default:
		r.Description = "Holding"
	}
	if r.Outcome != OutcomeRunning {
		r.Description += " during wave " + strconv.Itoa(s.wave.Number)
	}
	return r
}
