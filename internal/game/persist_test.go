package game

import (
	"testing"
	"time"
)

func TestPersist_ExportRestoreRoundTrip(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 5, Y: 8}))
	s := ts.Sim
	s.player.Currency = 500
	s.Purchase("SMG")
	s.BuildWall(Tile{X: 5, Y: 7})
	s.PlaceCryo(Tile{X: 6, Y: 8})
	s.player.Buffs = []BuffKind{BuffDefense, BuffSpeed}
	s.player.HP = 120
	s.core.HP = 321
	s.wave.Number = 4
	ts.AddStructure(StructureSpawner, Tile{X: 1, Y: 1})
	ts.RunTicks(TickRate)

	st := s.ExportState()
	if len(st.Structures) != 3 {
		t.Fatalf("expected 3 saved structures, got %d", len(st.Structures))
	}

	fresh := NewTestSim(WithPlayer(Tile{X: 5, Y: 8}))
	r := fresh.Sim
	r.RestoreState(st)

	if r.wave.Number != 4 || r.wave.Phase != PhaseIntermission {
		t.Fatalf("expected intermission after wave 4, got wave %d %s", r.wave.Number, r.wave.Phase)
	}
	if r.player.Currency != s.player.Currency || r.player.HP != 120 || r.core.HP != 321 {
		t.Fatal("scalar state not restored")
	}
	if !r.player.HasWeapon("SMG") || !r.player.HasWeapon("PISTOL") {
		t.Fatalf("weapons not restored: %v", r.player.Unlocked)
	}
	if r.player.BuffStacks(BuffDefense) != 1 || r.player.BuffStacks(BuffSpeed) != 1 {
		t.Fatal("buffs not restored")
	}
	wall, ok := r.grid.PlayerStructureAt(Tile{X: 5, Y: 7})
	if !ok {
		t.Fatal("wall not restored")
	}
	if left := wall.Remaining(r.now); left >= s.cfg.WallLifetime || left <= 0 {
		t.Fatalf("wall lifetime should carry over, %s left", left)
	}
	if !r.grid.IsBlocked(Tile{X: 1, Y: 1}) {
		t.Fatal("spawner not restored")
	}
	if !r.field.Dirty() {
		t.Fatal("restore should dirty the field")
	}
}

func TestPersist_RestoreSkipsInvalidEntries(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	s.RestoreState(SaveState{
		Wave:     -3,
		Currency: -10,
		PlayerHP: -1,
		CoreHP:   1e9,
		Unlocked: []string{"RIFLE", "BLASTER"},
		Buffs:    []string{"BUFF_SPEED", "BUFF_LUCK"},
		Structures: []SavedStructure{
			{Kind: "player_wall", X: 2, Y: 2, HP: 50, Remaining: time.Second},
			{Kind: "player_wall", X: 2, Y: 2, HP: 50, Remaining: time.Second}, // duplicate tile
			{Kind: "player_wall", X: 3, Y: 3},                                 // expired
			{Kind: "turret", X: 4, Y: 4},
			{Kind: "spawner", X: 50, Y: 50},
			{Kind: "energy_node", X: 5, Y: 5}, // core tile
			{Kind: "spawner", X: 7, Y: 1, Produced: 99},
		},
	})

	if s.wave.Number != 0 || s.player.Currency != 0 {
		t.Fatal("negative values should clamp to zero")
	}
	if s.player.HP != s.player.MaxHP || s.core.HP != s.core.MaxHP {
		t.Fatal("hp should clamp into (0, max]")
	}
	if !s.player.HasWeapon("RIFLE") || s.player.HasWeapon("BLASTER") {
		t.Fatalf("unexpected weapons %v", s.player.Unlocked)
	}
	if len(s.player.Buffs) != 1 {
		t.Fatalf("unknown buffs should be dropped, got %v", s.player.Buffs)
	}
	if len(s.structures) != 2 {
		t.Fatalf("expected 2 valid structures, got %d", len(s.structures))
	}
	wall, _ := s.grid.StructureAt(Tile{X: 2, Y: 2})
	if wall.HP != 50 {
		t.Fatalf("restored hp should carry over, got %.0f", wall.HP)
	}
	sp, _ := s.grid.StructureAt(Tile{X: 7, Y: 1})
	if !sp.Exhausted() || sp.Produced != sp.Quota {
		t.Fatal("produced count should clamp to the quota")
	}
}

func TestPersist_RestoreClearsTransientEntities(t *testing.T) {
	ts := NewTestSim(WithEnemy(EnemyBasic, Tile{X: 0, Y: 0}))
	s := ts.Sim
	s.dropBonus(Tile{X: 1, Y: 1}, BonusHealth)
	pistol, _ := s.cfg.Weapon("PISTOL")
	s.FireWeapon(pistol, Vec2{})
	ts.AddStructure(StructureCryoNode, Tile{X: 3, Y: 3})

	s.RestoreState(SaveState{Wave: 2})
	if len(s.enemies) != 0 || len(s.bonuses) != 0 || len(s.projectiles) != 0 || len(s.structures) != 0 {
		t.Fatal("restore should clear live entities")
	}
	if _, ok := s.grid.StructureAt(Tile{X: 3, Y: 3}); ok {
		t.Fatal("old structures should be vacated")
	}
}
