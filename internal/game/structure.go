package game

import (
	"fmt"
	"time"
)

// StructureKind identifies a tile-bound structure.
type StructureKind uint8

const (
	StructureSpawner    StructureKind = iota // Enemy: produces scouts until its quota runs out
	StructureEnergyNode                      // Enemy: halves core contact damage while alive
	StructurePlayerWall                      // Player: expensive to path through, expires
	StructureCryoNode                        // Player: slows enemies in its aura, expires
)

var structureKindNames = [...]string{
	StructureSpawner:    "spawner",
	StructureEnergyNode: "energy_node",
	StructurePlayerWall: "player_wall",
	StructureCryoNode:   "cryo_node",
}

func (k StructureKind) String() string {
	if int(k) < len(structureKindNames) {
		return structureKindNames[k]
	}
	return "unknown"
}

// ParseStructureKind is the inverse of String.
func ParseStructureKind(s string) (StructureKind, bool) {
	for i, n := range structureKindNames {
		if n == s {
			return StructureKind(i), true
		}
	}
	return 0, false
}

// BlocksTile returns true for structures nothing may walk through.
func (k StructureKind) BlocksTile() bool {
	return k == StructureSpawner || k == StructureEnergyNode
}

// PlayerBuilt returns true for the temporary structures the player places.
func (k StructureKind) PlayerBuilt() bool {
	return k == StructurePlayerWall || k == StructureCryoNode
}

// Structure is a destructible tile-bound object.
type Structure struct {
	ID     int
	Kind   StructureKind
	Pos    Tile
	HP     float64
	MaxHP  float64
	Reward int
	Radius int // cryo aura, Manhattan

	ExpiresAt time.Duration // zero = permanent
	NextSpawn time.Duration
	Produced  int
	Quota     int

	dead bool
}

// Alive returns false once the structure has been destroyed or expired.
func (s *Structure) Alive() bool { return !s.dead }

// Label returns a short log label such as "player_wall#3".
func (s *Structure) Label() string { return fmt.Sprintf("%s#%d", s.Kind, s.ID) }

// Expired reports whether a timed structure has reached its expiry.
func (s *Structure) Expired(now time.Duration) bool {
	return s.ExpiresAt > 0 && now >= s.ExpiresAt
}

// Remaining returns the lifetime left, or zero for permanent structures.
func (s *Structure) Remaining(now time.Duration) time.Duration {
	if s.ExpiresAt == 0 || now >= s.ExpiresAt {
		return 0
	}
	return s.ExpiresAt - now
}

// InAura reports whether t is inside a cryo node's slow radius.
func (s *Structure) InAura(t Tile) bool {
	return s.Kind == StructureCryoNode && s.Pos.Manhattan(t) <= s.Radius
}

// Exhausted reports whether a spawner has produced its whole quota.
func (s *Structure) Exhausted() bool {
	return s.Kind == StructureSpawner && s.Produced >= s.Quota
}

// newStructure builds a structure with its balance stats. Player structures
// get an expiry; spawners start their production timer.
func newStructure(cfg *Balance, id int, kind StructureKind, pos Tile, now time.Duration) *Structure {
	s := &Structure{ID: id, Kind: kind, Pos: pos}
	switch kind {
	case StructureSpawner:
		s.MaxHP = cfg.SpawnerHP
		s.Reward = cfg.SpawnerReward
		s.Quota = cfg.SpawnerQuota
		s.NextSpawn = now + cfg.SpawnerInterval
	case StructureEnergyNode:
		s.MaxHP = cfg.EnergyNodeHP
		s.Reward = cfg.EnergyNodeReward
	case StructurePlayerWall:
		s.MaxHP = cfg.WallHP
		s.ExpiresAt = now + cfg.WallLifetime
	case StructureCryoNode:
		s.MaxHP = cfg.CryoHP
		s.Radius = cfg.CryoRadius
		s.ExpiresAt = now + cfg.CryoLifetime
	}
	s.HP = s.MaxHP
	return s
}
