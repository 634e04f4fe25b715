package game

import "time"

const (
	// TickRate is the number of fixed simulation ticks per virtual second.
	TickRate = 60
	// TickDuration is the virtual time covered by one fixed tick.
	TickDuration = time.Second / TickRate
)

// WeaponStats describes one player weapon.
type WeaponStats struct {
	ID       string        `yaml:"id"`
	Damage   float64       `yaml:"damage"`
	Speed    float64       `yaml:"speed"`    // px per tick
	Range    float64       `yaml:"range"`    // px of travel before the bullet fizzles
	Cooldown time.Duration `yaml:"cooldown"` // between shots
	Pellets  int           `yaml:"pellets"`
	Spread   float64       `yaml:"spread"` // radians between adjacent pellets
	Price    int           `yaml:"price"`  // 0 = starting weapon, not sold
}

// Balance holds every tunable number of the simulation. DefaultBalance
// returns the shipped values; internal/config overlays YAML files on top.
type Balance struct {
	// Map.
	MapSize              int     `yaml:"map_size"`
	TileSize             float64 `yaml:"tile_size"`
	MapWallClusters      int     `yaml:"map_wall_clusters"`
	ObjectiveClearRadius int     `yaml:"objective_clear_radius"`

	// Player and core.
	PlayerHP        float64       `yaml:"player_hp"`
	PlayerMoveDelay time.Duration `yaml:"player_move_delay"`
	StartCurrency   int           `yaml:"start_currency"`
	StartGrenades   int           `yaml:"start_grenades"`
	BuildRange      int           `yaml:"build_range"`
	CoreHP          float64       `yaml:"core_hp"`

	// Cost field.
	BaseStepCost  int `yaml:"base_step_cost"`
	WallEntryCost int `yaml:"wall_entry_cost"`
	CryoExtraCost int `yaml:"cryo_extra_cost"`

	// Enemy AI.
	AggroRange         int           `yaml:"aggro_range"`
	ShootRange         int           `yaml:"shoot_range"`
	SlowMoveFactor     float64       `yaml:"slow_move_factor"`
	SlowShootFactor    float64       `yaml:"slow_shoot_factor"`
	WallAttackCooldown time.Duration `yaml:"wall_attack_cooldown"`
	WallAttackFactor   float64       `yaml:"wall_attack_factor"`
	SpawnJitter        time.Duration `yaml:"spawn_jitter"`
	AnimLerp           float64       `yaml:"anim_lerp"`
	AnimSnap           float64       `yaml:"anim_snap"`

	// Wave scaling for Basic and Shooter enemies.
	EnemyBase      int           `yaml:"enemy_base"`
	EnemyGrowth    int           `yaml:"enemy_growth"`
	ShooterPerWave float64       `yaml:"shooter_per_wave"`
	ShooterCap     float64       `yaml:"shooter_cap"`
	HPBase         float64       `yaml:"hp_base"`
	HPGrowth       float64       `yaml:"hp_growth"`
	DamageBase     float64       `yaml:"damage_base"`
	DamageGrowth   float64       `yaml:"damage_growth"`
	MoveBase       time.Duration `yaml:"move_base"`
	MoveStep       time.Duration `yaml:"move_step"`
	MoveFloor      time.Duration `yaml:"move_floor"`
	BasicReward    int           `yaml:"basic_reward"`
	ShooterReward  int           `yaml:"shooter_reward"`
	ShootDelay     time.Duration `yaml:"shoot_delay"`
	EnemyBullet    float64       `yaml:"enemy_bullet_damage"`
	EnemyBulletSpd float64       `yaml:"enemy_bullet_speed"`
	EnemyBulletRng float64       `yaml:"enemy_bullet_range"`

	// Scouts come from spawners and survival trickle.
	ScoutHP           float64       `yaml:"scout_hp"`
	ScoutMoveCooldown time.Duration `yaml:"scout_move_cooldown"`
	ScoutDamage       float64       `yaml:"scout_damage"`
	ScoutReward       int           `yaml:"scout_reward"`

	MinSpawnDistance int `yaml:"min_spawn_distance"`
	SpawnAttempts    int `yaml:"spawn_attempts"`
	NormalCap        int `yaml:"normal_cap"`

	// Structures.
	SpawnerHP          float64       `yaml:"spawner_hp"`
	SpawnerInterval    time.Duration `yaml:"spawner_interval"`
	SpawnerQuota       int           `yaml:"spawner_quota"`
	SpawnerReward      int           `yaml:"spawner_reward"`
	SpawnerMinWave     int           `yaml:"spawner_min_wave"`
	SpawnerChance      float64       `yaml:"spawner_chance"`
	SpawnerMax         int           `yaml:"spawner_max"`
	SpawnerMinDist     int           `yaml:"spawner_min_dist"`
	SpawnerMaxDist     int           `yaml:"spawner_max_dist"`
	EnergyNodeHP       float64       `yaml:"energy_node_hp"`
	EnergyNodeReward   int           `yaml:"energy_node_reward"`
	EnergyNodeMinWave  int           `yaml:"energy_node_min_wave"`
	EnergyNodeChance   float64       `yaml:"energy_node_chance"`
	EnergyNodeMax      int           `yaml:"energy_node_max"`
	EnergyNodeMinDist  int           `yaml:"energy_node_min_dist"`
	EnergyNodeMaxDist  int           `yaml:"energy_node_max_dist"`
	WallHP             float64       `yaml:"wall_hp"`
	WallCost           int           `yaml:"wall_cost"`
	WallLifetime       time.Duration `yaml:"wall_lifetime"`
	CryoHP             float64       `yaml:"cryo_hp"`
	CryoRadius         int           `yaml:"cryo_radius"`
	CryoCost           int           `yaml:"cryo_cost"`
	CryoLifetime       time.Duration `yaml:"cryo_lifetime"`
	PlacementAttempts  int           `yaml:"placement_attempts"`
	StructureChip      float64       `yaml:"structure_chip_damage"`
	StructureInset     float64       `yaml:"structure_inset"`
	ProjectileSize     float64       `yaml:"projectile_size"`
	GrenadeSpeed       float64       `yaml:"grenade_speed"`
	GrenadeRadius      float64       `yaml:"grenade_radius"`
	GrenadeDamage      float64       `yaml:"grenade_damage"`
	GrenadeCooldown    time.Duration `yaml:"grenade_cooldown"`
	GrenadeMaxThrow    float64       `yaml:"grenade_max_throw"`
	CoreContactScale   float64       `yaml:"core_contact_scale"`
	PlayerContactChip  float64       `yaml:"player_contact_chip"`
	EnergyNodeDefense  float64       `yaml:"energy_node_defense"`
	DefenseBuffFactor  float64       `yaml:"defense_buff_factor"`
	MinDefenseModifier float64       `yaml:"min_defense_modifier"`
	OverchargeDuration time.Duration `yaml:"overcharge_duration"`
	OverchargeCost     int           `yaml:"overcharge_cost"`
	OverchargeCooldown time.Duration `yaml:"overcharge_cooldown"`

	// Waves.
	IntermissionDuration time.Duration `yaml:"intermission_duration"`
	SurvivalEvery        int           `yaml:"survival_every"`
	SurvivalDuration     time.Duration `yaml:"survival_duration"`
	SurvivalTrickle      time.Duration `yaml:"survival_trickle"`
	SurvivalCap          int           `yaml:"survival_cap"`
	SurvivalBonus        int           `yaml:"survival_bonus"`

	// Bonuses.
	BonusDropChance   float64       `yaml:"bonus_drop_chance"`
	BonusBuffChance   float64       `yaml:"bonus_buff_chance"`
	BonusLifetime     time.Duration `yaml:"bonus_lifetime"`
	HealthBonus       float64       `yaml:"health_bonus"`
	CoreRepairBonus   float64       `yaml:"core_repair_bonus"`
	GrenadeBoxCount   int           `yaml:"grenade_box_count"`
	DamageBuffFactor  float64       `yaml:"damage_buff_factor"`
	SpeedBuffFactor   float64       `yaml:"speed_buff_factor"`
	CrateMinDist      int           `yaml:"crate_min_dist"`
	CrateMaxDist      int           `yaml:"crate_max_dist"`
	CrateUnlockTarget int           `yaml:"crate_unlock_target"`
	CrateFallbackCash int           `yaml:"crate_fallback_cash"`

	Weapons []WeaponStats `yaml:"weapons"`
}

// DefaultBalance returns the shipped tuning.
func DefaultBalance() Balance {
	return Balance{
		MapSize:              64,
		TileSize:             48,
		MapWallClusters:      35,
		ObjectiveClearRadius: 4,

		PlayerHP:        200,
		PlayerMoveDelay: 130 * time.Millisecond,
		StartCurrency:   100,
		StartGrenades:   3,
		BuildRange:      4,
		CoreHP:          500,

		BaseStepCost:  1,
		WallEntryCost: 30,
		CryoExtraCost: 5,

		AggroRange:         7,
		ShootRange:         8,
		SlowMoveFactor:     1.6,
		SlowShootFactor:    1.3,
		WallAttackCooldown: 300 * time.Millisecond,
		WallAttackFactor:   2,
		SpawnJitter:        400 * time.Millisecond,
		AnimLerp:           0.2,
		AnimSnap:           2,

		EnemyBase:      4,
		EnemyGrowth:    2,
		ShooterPerWave: 0.05,
		ShooterCap:     0.35,
		HPBase:         40,
		HPGrowth:       10,
		DamageBase:     4,
		DamageGrowth:   0.8,
		MoveBase:       900 * time.Millisecond,
		MoveStep:       40 * time.Millisecond,
		MoveFloor:      350 * time.Millisecond,
		BasicReward:    15,
		ShooterReward:  40,
		ShootDelay:     1900 * time.Millisecond,
		EnemyBullet:    10,
		EnemyBulletSpd: 13.5,
		EnemyBulletRng: 1000,

		ScoutHP:           35,
		ScoutMoveCooldown: 450 * time.Millisecond,
		ScoutDamage:       2.5,
		ScoutReward:       10,

		MinSpawnDistance: 10,
		SpawnAttempts:    30,
		NormalCap:        60,

		SpawnerHP:          350,
		SpawnerInterval:    5500 * time.Millisecond,
		SpawnerQuota:       8,
		SpawnerReward:      150,
		SpawnerMinWave:     3,
		SpawnerChance:      0.5,
		SpawnerMax:         4,
		SpawnerMinDist:     12,
		SpawnerMaxDist:     25,
		EnergyNodeHP:       250,
		EnergyNodeReward:   70,
		EnergyNodeMinWave:  2,
		EnergyNodeChance:   0.4,
		EnergyNodeMax:      3,
		EnergyNodeMinDist:  3,
		EnergyNodeMaxDist:  6,
		WallHP:             250,
		WallCost:           25,
		WallLifetime:       60 * time.Second,
		CryoHP:             150,
		CryoRadius:         2,
		CryoCost:           60,
		CryoLifetime:       60 * time.Second,
		PlacementAttempts:  40,
		StructureChip:      10,
		StructureInset:     4,
		ProjectileSize:     8,
		GrenadeSpeed:       9,
		GrenadeRadius:      160,
		GrenadeDamage:      180,
		GrenadeCooldown:    800 * time.Millisecond,
		GrenadeMaxThrow:    400,
		CoreContactScale:   0.05,
		PlayerContactChip:  0.5,
		EnergyNodeDefense:  0.5,
		DefenseBuffFactor:  0.85,
		MinDefenseModifier: 0.25,
		OverchargeDuration: 5 * time.Second,
		OverchargeCost:     100,
		OverchargeCooldown: 30 * time.Second,

		IntermissionDuration: 15 * time.Second,
		SurvivalEvery:        5,
		SurvivalDuration:     60 * time.Second,
		SurvivalTrickle:      2 * time.Second,
		SurvivalCap:          40,
		SurvivalBonus:        300,

		BonusDropChance:   0.06,
		BonusBuffChance:   0.1,
		BonusLifetime:     20 * time.Second,
		HealthBonus:       50,
		CoreRepairBonus:   100,
		GrenadeBoxCount:   2,
		DamageBuffFactor:  1.2,
		SpeedBuffFactor:   0.85,
		CrateMinDist:      20,
		CrateMaxDist:      40,
		CrateUnlockTarget: 3,
		CrateFallbackCash: 100,

		Weapons: []WeaponStats{
			{ID: "PISTOL", Damage: 10, Speed: 13.5, Range: 1000, Cooldown: 350 * time.Millisecond, Pellets: 1},
			{ID: "SHOTGUN", Damage: 8, Speed: 12, Range: 420, Cooldown: 900 * time.Millisecond, Pellets: 5, Spread: 0.12, Price: 250},
			{ID: "SMG", Damage: 6, Speed: 15, Range: 800, Cooldown: 110 * time.Millisecond, Pellets: 1, Price: 300},
			{ID: "RIFLE", Damage: 35, Speed: 20, Range: 1400, Cooldown: 1100 * time.Millisecond, Pellets: 1, Price: 400},
		},
	}
}

// Weapon looks up a catalog entry by id.
func (b *Balance) Weapon(id string) (WeaponStats, bool) {
	for _, w := range b.Weapons {
		if w.ID == id {
			return w, true
		}
	}
	return WeaponStats{}, false
}

// CostRules extracts the cost-field weights.
func (b *Balance) CostRules() CostRules {
	return CostRules{Base: b.BaseStepCost, Wall: b.WallEntryCost, Cryo: b.CryoExtraCost}
}
