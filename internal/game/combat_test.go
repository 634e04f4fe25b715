package game

import (
	"math"
	"testing"
	"time"
)

// frozenEnemy spawns an enemy that will not decide for the rest of the test.
func frozenEnemy(ts *TestSim, kind EnemyKind, at Tile) *Enemy {
	e := ts.Sim.spawnEnemy(kind, at)
	e.nextDecision = time.Hour
	return e
}

func TestCombat_DamageClampsAndRewardsOnce(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	e := frozenEnemy(ts, EnemyBasic, Tile{X: 1, Y: 1})
	start := s.player.Currency

	if !s.damageEnemy(e, 1000, true, "test") {
		t.Fatal("overkill should kill")
	}
	if e.HP != 0 {
		t.Fatalf("hp should clamp at 0, got %.1f", e.HP)
	}
	if s.damageEnemy(e, 1000, true, "test") {
		t.Fatal("a dead enemy cannot be killed twice")
	}
	if got := s.player.Currency - start; got != s.cfg.BasicReward {
		t.Fatalf("expected one reward of %d, got %d", s.cfg.BasicReward, got)
	}
	if s.stats.Kills != 1 || s.stats.KillsByKind[EnemyBasic] != 1 {
		t.Fatalf("kill stats wrong: %+v", s.stats)
	}
}

func TestCombat_NonPlayerKillPaysNothing(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	e := frozenEnemy(ts, EnemyShooter, Tile{X: 1, Y: 1})
	start := s.player.Currency

	s.killEnemy(e, false, "survival ended")
	if s.player.Currency != start {
		t.Fatalf("currency changed %d -> %d", start, s.player.Currency)
	}
}

func TestCombat_PlayerBulletHitsEnemy(t *testing.T) {
	ts := NewTestSim(WithObjective(Tile{X: 9, Y: 0}), WithPlayer(Tile{X: 2, Y: 5}))
	s := ts.Sim
	e := frozenEnemy(ts, EnemyBasic, Tile{X: 6, Y: 5})
	pistol, _ := s.cfg.Weapon("PISTOL")

	if !s.FireWeapon(pistol, e.Pixel) {
		t.Fatal("pistol should fire")
	}
	ts.RunTicks(30)
	if want := e.MaxHP - pistol.Damage; e.HP != want {
		t.Fatalf("expected enemy hp %.1f, got %.1f", want, e.HP)
	}
	if len(s.projectiles) != 0 {
		t.Fatal("bullet should be spent")
	}
}

func TestCombat_PlayerStructureAbsorbsBullets(t *testing.T) {
	ts := NewTestSim(
		WithObjective(Tile{X: 9, Y: 0}),
		WithPlayer(Tile{X: 2, Y: 5}),
		WithStructure(StructurePlayerWall, Tile{X: 4, Y: 5}),
	)
	s := ts.Sim
	e := frozenEnemy(ts, EnemyBasic, Tile{X: 6, Y: 5})
	wall, _ := s.grid.StructureAt(Tile{X: 4, Y: 5})
	rifle, _ := s.cfg.Weapon("RIFLE")
	s.player.Unlocked = append(s.player.Unlocked, rifle.ID)

	s.FireWeapon(rifle, e.Pixel)
	ts.RunTicks(30)

	if e.HP != e.MaxHP {
		t.Fatalf("enemy behind the wall took damage: %.1f", e.HP)
	}
	if want := wall.MaxHP - s.cfg.StructureChip; wall.HP != want {
		t.Fatalf("wall should take a fixed chip: expected %.1f got %.1f", want, wall.HP)
	}
}

func TestCombat_StaticWallStopsBullet(t *testing.T) {
	ts := NewTestSim(
		WithObjective(Tile{X: 9, Y: 0}),
		WithPlayer(Tile{X: 2, Y: 5}),
		WithWall(Tile{X: 4, Y: 5}),
	)
	s := ts.Sim
	e := frozenEnemy(ts, EnemyBasic, Tile{X: 6, Y: 5})
	pistol, _ := s.cfg.Weapon("PISTOL")

	s.FireWeapon(pistol, e.Pixel)
	ts.RunTicks(30)
	if e.HP != e.MaxHP {
		t.Fatal("bullet passed through a wall")
	}
}

func TestCombat_ShotgunFansPellets(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	shotgun, _ := s.cfg.Weapon("SHOTGUN")
	s.player.Unlocked = append(s.player.Unlocked, shotgun.ID)

	if !s.FireWeapon(shotgun, s.player.Pixel.Add(Vec2{X: -100})) {
		t.Fatal("shotgun should fire")
	}
	if len(s.projectiles) != shotgun.Pellets {
		t.Fatalf("expected %d pellets, got %d", shotgun.Pellets, len(s.projectiles))
	}
	mid := s.projectiles[shotgun.Pellets/2]
	if math.Abs(mid.Vel.Y) > 1e-9 || mid.Vel.X >= 0 {
		t.Fatalf("middle pellet should fly along the aim, vel %+v", mid.Vel)
	}
	if s.FireWeapon(shotgun, Vec2{}) {
		t.Fatal("weapon should be on cooldown")
	}
}

func TestCombat_LockedWeaponRefused(t *testing.T) {
	ts := NewTestSim()
	rifle, _ := ts.Sim.cfg.Weapon("RIFLE")
	if ts.Sim.FireWeapon(rifle, Vec2{}) {
		t.Fatal("locked weapon should not fire")
	}
}

func TestCombat_GrenadeRadiusIsInclusive(t *testing.T) {
	ts := NewTestSim(WithObjective(Tile{X: 9, Y: 9}), WithPlayer(Tile{X: 0, Y: 9}))
	s := ts.Sim
	centre := s.grid.TileCenter(Tile{X: 2, Y: 2})
	edge := frozenEnemy(ts, EnemyBasic, Tile{X: 4, Y: 2})    // 96px
	outside := frozenEnemy(ts, EnemyBasic, Tile{X: 5, Y: 2}) // 144px
	s.grenades = append(s.grenades, &Grenade{
		Pos: centre, Target: centre, Speed: 9, Radius: 96, Damage: 1000, Active: true,
	})

	ts.RunTicks(1)
	if edge.Alive() {
		t.Fatal("enemy exactly on the blast radius should be hit")
	}
	if outside.HP != outside.MaxHP {
		t.Fatal("enemy outside the radius should be untouched")
	}
	if len(s.grenades) != 0 {
		t.Fatal("grenade should be spent")
	}
}

func TestCombat_GrenadeFliesThenExplodes(t *testing.T) {
	ts := NewTestSim(WithObjective(Tile{X: 9, Y: 9}), WithPlayer(Tile{X: 1, Y: 1}))
	s := ts.Sim
	target := s.grid.TileCenter(Tile{X: 5, Y: 1})
	e := frozenEnemy(ts, EnemyBasic, Tile{X: 5, Y: 1})

	if !s.ThrowGrenade(target) {
		t.Fatal("throw should succeed")
	}
	if s.player.Grenades != s.cfg.StartGrenades-1 {
		t.Fatalf("expected grenade stock %d, got %d", s.cfg.StartGrenades-1, s.player.Grenades)
	}
	// 192px at 9px per tick.
	ts.RunTicks(10)
	if !e.Alive() {
		t.Fatal("grenade detonated early")
	}
	ts.RunTicks(15)
	if e.Alive() {
		t.Fatal("grenade should have detonated on the target")
	}
}

func TestCombat_GrenadeThrowLimits(t *testing.T) {
	ts := NewTestSim(WithMapSize(20), WithObjective(Tile{X: 19, Y: 19}), WithPlayer(Tile{X: 0, Y: 0}))
	s := ts.Sim
	if s.ThrowGrenade(s.grid.TileCenter(Tile{X: 15, Y: 0})) {
		t.Fatal("throw beyond max range should be refused")
	}
	s.ThrowGrenade(s.grid.TileCenter(Tile{X: 2, Y: 0}))
	if s.ThrowGrenade(s.grid.TileCenter(Tile{X: 2, Y: 0})) {
		t.Fatal("second throw inside the cooldown should be refused")
	}
	s.player.Grenades = 0
	s.now = time.Minute
	if s.ThrowGrenade(s.grid.TileCenter(Tile{X: 2, Y: 0})) {
		t.Fatal("throw without grenades should be refused")
	}
}

func TestCombat_SpawnerKillPaysAndDrops(t *testing.T) {
	ts := NewTestSim(WithStructure(StructureSpawner, Tile{X: 2, Y: 2}))
	s := ts.Sim
	sp, _ := s.grid.StructureAt(Tile{X: 2, Y: 2})
	ts.RunTicks(1)
	start := s.player.Currency

	if !s.damageStructure(sp, 1e6, true) {
		t.Fatal("spawner should be destroyed")
	}
	if got := s.player.Currency - start; got != s.cfg.SpawnerReward {
		t.Fatalf("expected reward %d, got %d", s.cfg.SpawnerReward, got)
	}
	if s.bonusAt(Tile{X: 2, Y: 2}) == nil {
		t.Fatal("destroyed spawner should leave a bonus")
	}
	if !s.field.Dirty() {
		t.Fatal("destroying a structure should dirty the field")
	}
	if s.grid.IsBlocked(Tile{X: 2, Y: 2}) {
		t.Fatal("spawner tile should be open after destruction")
	}
}

func TestCombat_DefenseModifier(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	if got := s.DefenseModifier(); got != 1 {
		t.Fatalf("baseline modifier: expected 1 got %.3f", got)
	}
	ts.AddStructure(StructureEnergyNode, Tile{X: 1, Y: 1})
	if got := s.DefenseModifier(); got != s.cfg.EnergyNodeDefense {
		t.Fatalf("energy node modifier: expected %.2f got %.3f", s.cfg.EnergyNodeDefense, got)
	}
	for i := 0; i < 10; i++ {
		s.player.Buffs = append(s.player.Buffs, BuffDefense)
	}
	if got := s.DefenseModifier(); got != s.cfg.MinDefenseModifier {
		t.Fatalf("modifier should floor at %.2f, got %.3f", s.cfg.MinDefenseModifier, got)
	}
	s.player.overchargeUntil = s.now + time.Second
	if got := s.DefenseModifier(); got != 0 {
		t.Fatalf("overcharge should zero the modifier, got %.3f", got)
	}
}

func TestCombat_ContactDamageScaled(t *testing.T) {
	ts := NewTestSim()
	s := ts.Sim
	e := frozenEnemy(ts, EnemyBasic, s.core.Pos)
	ts.RunTicks(1)
	want := s.core.MaxHP - e.Damage*s.cfg.CoreContactScale
	if math.Abs(s.core.HP-want) > 1e-9 {
		t.Fatalf("expected core hp %.3f, got %.3f", want, s.core.HP)
	}
}

func TestCombat_EnemyBulletHitsPlayer(t *testing.T) {
	ts := NewTestSim(WithObjective(Tile{X: 9, Y: 9}), WithPlayer(Tile{X: 5, Y: 2}))
	s := ts.Sim
	e := ts.Sim.spawnEnemy(EnemyShooter, Tile{X: 2, Y: 2})

	ts.RunTicks(20)
	if !e.Ranged.HasLOS {
		t.Fatal("shooter should see the player")
	}
	if want := s.player.MaxHP - s.cfg.EnemyBullet; s.player.HP != want {
		t.Fatalf("expected player hp %.1f, got %.1f", want, s.player.HP)
	}
}
