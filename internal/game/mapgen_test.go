package game

import (
	"math/rand"
	"testing"
)

func TestGenerateMap_BorderAndClearings(t *testing.T) {
	cfg := DefaultBalance()
	obj := Tile{X: 32, Y: 32}
	start := obj.Add(3, 3)
	m := GenerateMap(&cfg, obj, start, rand.New(rand.NewSource(3)))

	n := cfg.MapSize
	for i := 0; i < n; i++ {
		for _, tl := range []Tile{{X: i, Y: 0}, {X: i, Y: n - 1}, {X: 0, Y: i}, {X: n - 1, Y: i}} {
			if !m.IsWall(tl) {
				t.Fatalf("border tile %s should be a wall", tl)
			}
		}
	}
	walls := 0
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			tl := Tile{X: x, Y: y}
			if !m.IsWall(tl) {
				continue
			}
			walls++
			if tl.Manhattan(obj) <= cfg.ObjectiveClearRadius {
				t.Fatalf("wall %s inside the objective clearing", tl)
			}
			if tl.Manhattan(start) <= 1 {
				t.Fatalf("wall %s next to the player start", tl)
			}
		}
	}
	if walls == 0 {
		t.Fatal("expected interior walls")
	}
}

func TestGenerateMap_DeterministicPerSeed(t *testing.T) {
	cfg := DefaultBalance()
	obj := Tile{X: 32, Y: 32}
	a := GenerateMap(&cfg, obj, obj.Add(3, 3), rand.New(rand.NewSource(9)))
	b := GenerateMap(&cfg, obj, obj.Add(3, 3), rand.New(rand.NewSource(9)))
	for i := range a.terrain {
		if a.terrain[i] != b.terrain[i] {
			t.Fatalf("maps differ at index %d", i)
		}
	}
}

func TestNewSim_GeneratedMapIsPlayable(t *testing.T) {
	s := NewSim(DefaultBalance(), Seeded(5))
	s.Step(TickDuration, Input{})
	if !s.field.Reachable(s.player.Pos) {
		t.Fatal("player start should reach the core")
	}
	if s.grid.IsBlocked(s.core.Pos) {
		t.Fatal("core tile should be open")
	}
	if s.wave.Phase != PhaseIntermission {
		t.Fatal("a new session starts in an intermission")
	}
}
