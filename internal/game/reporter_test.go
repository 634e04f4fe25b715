package game

import (
	"strings"
	"testing"
)

func TestReport_CountsAndFormats(t *testing.T) {
	ts := NewTestSim(WithEnemy(EnemyScout, Tile{X: 0, Y: 0}), WithEnemy(EnemyBasic, Tile{X: 0, Y: 1}))
	s := ts.Sim
	for _, e := range s.enemies {
		s.killEnemy(e, true, "test")
	}
	ts.RunTicks(1)

	r := s.Report()
	if r.Stats.Spawned != 2 || r.Stats.Kills != 2 {
		t.Fatalf("unexpected totals %+v", r.Stats)
	}
	if r.Stats.KillsByKind[EnemyScout] != 1 || r.Stats.KillsByKind[EnemyBasic] != 1 {
		t.Fatalf("unexpected kills by kind %v", r.Stats.KillsByKind)
	}
	if r.Stats.Earned != s.cfg.ScoutReward+s.cfg.BasicReward {
		t.Fatalf("unexpected earnings %d", r.Stats.Earned)
	}
	out := r.Format()
	for _, want := range []string{"outcome=running", "kills=2", "scout=1", "field_rebuilds=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestOutcome_Classifies(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	if got := s.Outcome(); got.Outcome != OutcomeRunning || got.Description != "Holding" {
		t.Fatalf("unexpected %+v", got)
	}
	s.player.HP = 0
	if DetermineOutcome(s) != OutcomePlayerKilled {
		t.Fatal("dead player should end the session")
	}
	s.core.HP = 0
	if got := s.Outcome(); got.Outcome != OutcomeCoreDestroyed || !strings.HasPrefix(got.Description, "The core fell") {
		t.Fatalf("core loss should take precedence, got %+v", got)
	}
}

func TestSimLog_MirrorsEvents(t *testing.T) {
	ts := NewTestSim(WithVerbose(true), WithEnemy(EnemyBasic, Tile{X: 5, Y: 0}))
	ts.RunTicks(2)

	if ts.SimLog.CountCategory("enemy", "spawned") != 1 {
		t.Fatal("spawn should be logged")
	}
	if ts.SimLog.CountCategory("field", "rebuilt") != 1 {
		t.Fatal("first tick should rebuild the field once")
	}
	entries := ts.SimLog.FilterActor("basic#1")
	if len(entries) < 2 {
		t.Fatalf("expected spawn and ai entries for basic#1, got %d", len(entries))
	}
	if entries[0].Faction != "enemy" {
		t.Fatalf("expected enemy faction, got %q", entries[0].Faction)
	}
	if last, ok := ts.SimLog.LastOf("ai", "move"); !ok || last.Value != "(5,1)" {
		t.Fatalf("expected first move to (5,1), got %+v", last)
	}
	if !strings.Contains(ts.SimLog.Summary(ts.Snapshot()), "basic=1") {
		t.Fatal("summary should count the live enemy")
	}
}

func TestSimLog_QuietDropsVerbose(t *testing.T) {
	ts := NewTestSim(WithEnemy(EnemyBasic, Tile{X: 5, Y: 0}))
	ts.RunTicks(2)
	if n := len(ts.SimLog.Filter("ai", "")); n != 0 {
		t.Fatalf("quiet log should drop ai entries, got %d", n)
	}
}
