package game

import "math/rand"

// GenerateMap builds a bordered map with short wall runs scattered over the
// interior. Nothing is placed within ObjectiveClearRadius of the objective
// or next to the player's start tile.
func GenerateMap(cfg *Balance, objective, playerStart Tile, rng *rand.Rand) *GridMap {
	m := NewGridMap(cfg.MapSize, cfg.TileSize)
	n := cfg.MapSize

	for i := 0; i < n; i++ {
		m.SetTerrain(Tile{X: i, Y: 0}, TerrainWall)
		m.SetTerrain(Tile{X: i, Y: n - 1}, TerrainWall)
		m.SetTerrain(Tile{X: 0, Y: i}, TerrainWall)
		m.SetTerrain(Tile{X: n - 1, Y: i}, TerrainWall)
	}
	if n <= 2 {
		return m
	}

	canPlace := func(t Tile) bool {
		if t.X < 1 || t.Y < 1 || t.X > n-2 || t.Y > n-2 {
			return false
		}
		if t.Manhattan(objective) <= cfg.ObjectiveClearRadius {
			return false
		}
		return t.Manhattan(playerStart) > 1
	}

	for i := 0; i < cfg.MapWallClusters; i++ {
		start := Tile{X: 1 + rng.Intn(n-2), Y: 1 + rng.Intn(n-2)}
		length := 1 + rng.Intn(4)
		dx, dy := 1, 0
		if rng.Intn(2) == 0 {
			dx, dy = 0, 1
		}
		for j := 0; j < length; j++ {
			t := start.Add(dx*j, dy*j)
			if canPlace(t) {
				m.SetTerrain(t, TerrainWall)
			}
		}
	}
	return m
}
