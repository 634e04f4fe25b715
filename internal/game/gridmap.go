package game

import "github.com/kamstrup/intmap"

// Terrain identifies the static surface of a tile.
type Terrain uint8

const (
	TerrainFloor Terrain = iota // Open ground
	TerrainWall                 // Static wall, blocks movement and sight
)

// terrainBlocks returns true if the terrain is impassable.
func terrainBlocks(t Terrain) bool {
	switch t {
	case TerrainWall:
		return true
	default:
		return false
	}
}

// GridMap is the authoritative tile grid: static terrain plus the registry of
// structures occupying tiles. Tiles are stored row-major (index = y*Size + x).
type GridMap struct {
	Size     int
	TileSize float64

	terrain   []Terrain
	occupants *intmap.Map[int, *Structure]
}

// NewGridMap creates an all-floor square map.
func NewGridMap(size int, tileSize float64) *GridMap {
	return &GridMap{
		Size:      size,
		TileSize:  tileSize,
		terrain:   make([]Terrain, size*size),
		occupants: intmap.New[int, *Structure](64),
	}
}

// InBounds returns true if t lies on the map.
func (m *GridMap) InBounds(t Tile) bool {
	return t.X >= 0 && t.X < m.Size && t.Y >= 0 && t.Y < m.Size
}

func (m *GridMap) index(t Tile) int {
	return t.Y*m.Size + t.X
}

// TerrainAt returns the terrain at t. Out-of-bounds tiles read as walls.
func (m *GridMap) TerrainAt(t Tile) Terrain {
	if !m.InBounds(t) {
		return TerrainWall
	}
	return m.terrain[m.index(t)]
}

// SetTerrain changes the static terrain of a tile.
func (m *GridMap) SetTerrain(t Tile, tr Terrain) {
	if !m.InBounds(t) {
		return
	}
	m.terrain[m.index(t)] = tr
}

// IsWall returns true for static walls and out-of-bounds tiles.
func (m *GridMap) IsWall(t Tile) bool {
	return terrainBlocks(m.TerrainAt(t))
}

// IsBlocked returns true if nothing may enter t: static walls, out-of-bounds
// tiles, and tiles held by a spawner or energy node.
func (m *GridMap) IsBlocked(t Tile) bool {
	if m.IsWall(t) {
		return true
	}
	if s, ok := m.occupants.Get(m.index(t)); ok {
		return s.Kind.BlocksTile()
	}
	return false
}

// StructureAt returns the structure registered on t, if any.
func (m *GridMap) StructureAt(t Tile) (*Structure, bool) {
	if !m.InBounds(t) {
		return nil, false
	}
	return m.occupants.Get(m.index(t))
}

// PlayerStructureAt returns the player wall or cryo node on t, if any.
func (m *GridMap) PlayerStructureAt(t Tile) (*Structure, bool) {
	s, ok := m.StructureAt(t)
	if !ok || !s.Kind.PlayerBuilt() {
		return nil, false
	}
	return s, true
}

// Occupy registers s on its tile. It fails on walls, out-of-bounds tiles and
// tiles that already hold a structure.
func (m *GridMap) Occupy(s *Structure) bool {
	if m.IsWall(s.Pos) {
		return false
	}
	idx := m.index(s.Pos)
	if m.occupants.Has(idx) {
		return false
	}
	m.occupants.Put(idx, s)
	return true
}

// Vacate removes s from the registry if it still owns its tile.
func (m *GridMap) Vacate(s *Structure) {
	if !m.InBounds(s.Pos) {
		return
	}
	idx := m.index(s.Pos)
	if cur, ok := m.occupants.Get(idx); ok && cur == s {
		m.occupants.Del(idx)
	}
}

// Occupied returns the number of registered structures.
func (m *GridMap) Occupied() int {
	return m.occupants.Len()
}

// ClearOccupants empties the structure registry.
func (m *GridMap) ClearOccupants() {
	m.occupants.Clear()
}

// TileOrigin returns the top-left pixel of t.
func (m *GridMap) TileOrigin(t Tile) Vec2 {
	return Vec2{X: float64(t.X) * m.TileSize, Y: float64(t.Y) * m.TileSize}
}

// TileCenter returns the pixel centre of t.
func (m *GridMap) TileCenter(t Tile) Vec2 {
	half := m.TileSize / 2
	return m.TileOrigin(t).Add(Vec2{X: half, Y: half})
}

// TileAt converts a pixel position to the tile containing it.
func (m *GridMap) TileAt(p Vec2) Tile {
	return Tile{X: floorDiv(p.X, m.TileSize), Y: floorDiv(p.Y, m.TileSize)}
}

// WorldSize returns the map extent in pixels.
func (m *GridMap) WorldSize() float64 {
	return float64(m.Size) * m.TileSize
}

// InWorld returns true if p lies inside the map's pixel bounds.
func (m *GridMap) InWorld(p Vec2) bool {
	w := m.WorldSize()
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < w
}
