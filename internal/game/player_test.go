package game

import (
	"testing"
	"time"
)

func TestPlayer_MoveRespectsCooldownAndWalls(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 2, Y: 2}), WithWall(Tile{X: 3, Y: 2}))
	s := ts.Sim

	if s.MovePlayer(1, 0) {
		t.Fatal("move into a wall should be refused")
	}
	if s.MovePlayer(1, 1) {
		t.Fatal("diagonal move should be refused")
	}
	if !s.MovePlayer(0, 1) {
		t.Fatal("move south should succeed")
	}
	if s.player.Pos != (Tile{X: 2, Y: 3}) {
		t.Fatalf("expected player at (2,3), got %s", s.player.Pos)
	}
	if s.MovePlayer(0, 1) {
		t.Fatal("second move inside the cooldown should be refused")
	}
	s.now = s.cfg.PlayerMoveDelay
	if !s.MovePlayer(0, 1) {
		t.Fatal("move after the cooldown should succeed")
	}
}

func TestPlayer_SpeedBuffShortensMoveDelay(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 2, Y: 2}))
	s := ts.Sim
	s.player.Buffs = []BuffKind{BuffSpeed}

	s.MovePlayer(0, 1)
	want := time.Duration(float64(s.cfg.PlayerMoveDelay) * s.cfg.SpeedBuffFactor)
	if s.player.nextMove != want {
		t.Fatalf("expected next move at %s, got %s", want, s.player.nextMove)
	}
}

func TestPlayer_PlayerStandsOnStructures(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 2, Y: 2}), WithStructure(StructurePlayerWall, Tile{X: 2, Y: 3}))
	if !ts.Sim.MovePlayer(0, 1) {
		t.Fatal("player walls should not block the player")
	}
	ts.Sim.now = time.Second
	ts.AddStructure(StructureSpawner, Tile{X: 2, Y: 4})
	if ts.Sim.MovePlayer(0, 1) {
		t.Fatal("spawners should block the player")
	}
}

func TestPlayer_BuildWall(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 5, Y: 8}))
	s := ts.Sim
	start := s.player.Currency

	if !s.BuildWall(Tile{X: 5, Y: 7}) {
		t.Fatal("wall next to the player should be built")
	}
	if got := start - s.player.Currency; got != s.cfg.WallCost {
		t.Fatalf("expected cost %d, got %d", s.cfg.WallCost, got)
	}
	if !s.field.Dirty() {
		t.Fatal("building should dirty the field")
	}
	st, ok := s.grid.PlayerStructureAt(Tile{X: 5, Y: 7})
	if !ok || st.Kind != StructurePlayerWall {
		t.Fatal("wall not registered on the map")
	}
	if st.ExpiresAt != s.cfg.WallLifetime {
		t.Fatalf("expected expiry at %s, got %s", s.cfg.WallLifetime, st.ExpiresAt)
	}

	cases := []struct {
		name string
		at   Tile
	}{
		{"occupied", Tile{X: 5, Y: 7}},
		{"core", s.core.Pos},
		{"out of range", Tile{X: 0, Y: 0}},
		{"off map", Tile{X: 5, Y: 10}},
	}
	for _, tc := range cases {
		if s.BuildWall(tc.at) {
			t.Fatalf("%s: build should be refused", tc.name)
		}
	}

	s.player.Currency = s.cfg.WallCost - 1
	if s.BuildWall(Tile{X: 4, Y: 8}) {
		t.Fatal("build without funds should be refused")
	}
}

func TestPlayer_PlaceCryo(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 5, Y: 8}))
	s := ts.Sim
	if !s.PlaceCryo(Tile{X: 6, Y: 8}) {
		t.Fatal("cryo should be placed")
	}
	cryos := s.liveStructures(StructureCryoNode)
	if len(cryos) != 1 || cryos[0].Radius != s.cfg.CryoRadius {
		t.Fatal("cryo node missing or misconfigured")
	}
	if s.grid.IsBlocked(Tile{X: 6, Y: 8}) {
		t.Fatal("cryo nodes should not block movement")
	}
}

func TestPlayer_Overcharge(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	s.player.Currency = 2 * s.cfg.OverchargeCost

	if !s.Overcharge() {
		t.Fatal("overcharge should activate")
	}
	if s.player.Currency != s.cfg.OverchargeCost {
		t.Fatal("overcharge should be paid for")
	}
	if s.DefenseModifier() != 0 {
		t.Fatal("core should be shielded")
	}
	if s.Overcharge() {
		t.Fatal("overcharge should be on cooldown")
	}
	s.now = s.cfg.OverchargeDuration
	if s.DefenseModifier() == 0 {
		t.Fatal("shield should lapse after its duration")
	}
}

func TestPlayer_Purchase(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	shotgun, _ := s.cfg.Weapon("SHOTGUN")

	if s.Purchase("SHOTGUN") {
		t.Fatal("purchase without funds should be refused")
	}
	s.player.Currency = shotgun.Price
	if !s.Purchase("SHOTGUN") {
		t.Fatal("purchase should succeed")
	}
	if !s.player.HasWeapon("SHOTGUN") || s.player.Currency != 0 {
		t.Fatal("weapon not unlocked or not paid for")
	}
	s.player.Currency = 1000
	for _, id := range []string{"SHOTGUN", "PISTOL", "LASER"} {
		if s.Purchase(id) {
			t.Fatalf("purchase of %s should be refused", id)
		}
	}
}

func TestPlayer_RejectedCommandsEmitEvents(t *testing.T) {
	ts := NewTestSim()
	ts.Queue(BuildWall{At: Tile{X: 0, Y: 0}}, Move{DX: 2})
	ts.RunTicks(1)
	if got := ts.CountEvents(EventCommandRejected); got != 2 {
		t.Fatalf("expected 2 rejections, got %d", got)
	}
	if !ts.SimLog.HasEntry("command", "rejected", "build_wall (0,0)") {
		t.Fatal("rejection should name the command")
	}
}

func TestPlayer_CollectsBonusOnTile(t *testing.T) {
	ts := NewTestSim(WithPlayer(Tile{X: 2, Y: 2}))
	s := ts.Sim
	s.player.HP = 10
	s.core.HP = 10
	s.dropBonus(Tile{X: 2, Y: 2}, BonusHealth)
	s.dropBonus(Tile{X: 2, Y: 3}, BonusCoreRepair)
	s.dropBonus(Tile{X: 2, Y: 4}, BonusGrenadeBox)

	ts.RunTicks(1)
	if s.player.HP != 10+s.cfg.HealthBonus {
		t.Fatalf("expected hp %.0f, got %.0f", 10+s.cfg.HealthBonus, s.player.HP)
	}
	ts.Queue(Move{DY: 1})
	ts.RunTicks(1)
	if s.core.HP != 10+s.cfg.CoreRepairBonus {
		t.Fatalf("expected core hp %.0f, got %.0f", 10+s.cfg.CoreRepairBonus, s.core.HP)
	}
	s.now = time.Second
	ts.Queue(Move{DY: 1})
	ts.RunTicks(1)
	if s.player.Grenades != s.cfg.StartGrenades+s.cfg.GrenadeBoxCount {
		t.Fatalf("expected %d grenades, got %d", s.cfg.StartGrenades+s.cfg.GrenadeBoxCount, s.player.Grenades)
	}
	if s.stats.BonusesTaken != 3 || len(s.bonuses) != 0 {
		t.Fatal("all three pickups should be consumed")
	}
}

func TestPlayer_BuffsStackPermanently(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	s.applyBonus(BonusBuffDamage)
	s.applyBonus(BonusBuffDamage)
	if s.player.BuffStacks(BuffDamage) != 2 {
		t.Fatal("damage buffs should stack")
	}
	pistol, _ := s.cfg.Weapon("PISTOL")
	s.FireWeapon(pistol, Vec2{})
	want := pistol.Damage * s.cfg.DamageBuffFactor * s.cfg.DamageBuffFactor
	if got := s.projectiles[0].Damage; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("expected buffed damage %.3f, got %.3f", want, got)
	}
}

func TestPlayer_WeaponCrate(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	before := len(s.player.Unlocked)

	s.applyBonus(BonusWeaponCrate)
	if len(s.player.Unlocked) != before+1 {
		t.Fatal("crate should unlock a weapon")
	}
	for _, w := range s.cfg.Weapons {
		if !s.player.HasWeapon(w.ID) {
			s.player.Unlocked = append(s.player.Unlocked, w.ID)
		}
	}
	cash := s.player.Currency
	s.applyBonus(BonusWeaponCrate)
	if s.player.Currency != cash+s.cfg.CrateFallbackCash {
		t.Fatal("crate with nothing left to unlock should pay cash")
	}
}

func TestPlayer_BonusExpiryExceptCrates(t *testing.T) {
	ts := NewTestSim(WithBalance(func(b *Balance) { b.BonusLifetime = time.Second }))
	s := ts.Sim
	s.dropBonus(Tile{X: 1, Y: 1}, BonusHealth)
	s.dropBonus(Tile{X: 1, Y: 2}, BonusWeaponCrate)

	ts.RunTicks(2 * TickRate)
	if len(s.bonuses) != 1 || s.bonuses[0].Kind != BonusWeaponCrate {
		t.Fatal("only the crate should remain")
	}
	if ts.CountEvents(EventBonusExpired) != 1 {
		t.Fatal("expected one expiry")
	}
}
