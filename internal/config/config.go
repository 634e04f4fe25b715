// Package config loads balance overrides from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Core-Defense/internal/game"
)

// Load reads a YAML balance file over the defaults. Keys absent from the
// file keep their default values; unknown keys are an error. An empty path
// returns the defaults.
func Load(path string) (game.Balance, error) {
	b := game.DefaultBalance()
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("failed to read balance file: %w", err)
	}
	if err := Decode(bytes.NewReader(data), &b); err != nil {
		return b, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return b, nil
}

// Decode overlays YAML from r onto b and validates the result.
func Decode(r io.Reader, b *game.Balance) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(b); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode balance: %w", err)
	}
	return Validate(b)
}

// Write dumps b as YAML, for generating a starting file.
func Write(w io.Writer, b game.Balance) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode balance: %w", err)
	}
	return enc.Close()
}

// Validate checks the values the simulation relies on.
func Validate(b *game.Balance) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(b.MapSize >= 8, "map_size must be at least 8, got %d", b.MapSize)
	check(b.TileSize > 0, "tile_size must be positive")
	check(b.ObjectiveClearRadius >= 0, "objective_clear_radius must not be negative")
	check(b.PlayerHP > 0 && b.CoreHP > 0, "player_hp and core_hp must be positive")
	check(b.BaseStepCost > 0, "base_step_cost must be positive")
	check(b.WallEntryCost >= b.BaseStepCost, "wall_entry_cost must be at least base_step_cost")
	check(b.CryoExtraCost >= 0, "cryo_extra_cost must not be negative")
	check(b.MoveFloor > 0 && b.MoveBase >= b.MoveFloor, "move_base must be at least move_floor > 0")
	check(b.WallAttackCooldown > 0 && b.WallAttackCooldown < b.MoveFloor,
		"wall_attack_cooldown %s must be positive and below move_floor %s", b.WallAttackCooldown, b.MoveFloor)
	check(b.ShooterCap >= 0 && b.ShooterCap <= 1, "shooter_cap must be within [0,1]")
	check(b.SpawnerMinDist <= b.SpawnerMaxDist, "spawner_min_dist exceeds spawner_max_dist")
	check(b.EnergyNodeMinDist <= b.EnergyNodeMaxDist, "energy_node_min_dist exceeds energy_node_max_dist")
	check(b.CrateMinDist <= b.CrateMaxDist, "crate_min_dist exceeds crate_max_dist")
	check(b.MinDefenseModifier >= 0 && b.MinDefenseModifier <= 1, "min_defense_modifier must be within [0,1]")
	check(b.GrenadeSpeed > 0, "grenade_speed must be positive")
	check(b.SurvivalEvery >= 0, "survival_every must not be negative")
	check(b.AnimLerp > 0 && b.AnimLerp <= 1, "anim_lerp must be within (0,1]")
	check(b.SpawnJitter >= 0, "spawn_jitter must not be negative")

	starters := 0
	seen := map[string]bool{}
	for i, w := range b.Weapons {
		check(w.ID != "", "weapons[%d]: id is required", i)
		check(!seen[w.ID], "weapons[%d]: duplicate id %q", i, w.ID)
		check(w.Speed > 0 && w.Range > 0, "weapon %s: speed and range must be positive", w.ID)
		check(w.Pellets >= 1, "weapon %s: pellets must be at least 1", w.ID)
		check(w.Price >= 0, "weapon %s: price must not be negative", w.ID)
		seen[w.ID] = true
		if w.Price == 0 {
			starters++
		}
	}
	check(starters > 0, "at least one weapon must have price 0")

	return errors.Join(errs...)
}
