package game

import (
	"fmt"
	"math"
)

// Tile is an integer grid coordinate.
type Tile struct {
	X, Y int
}

// Add returns t offset by (dx, dy).
func (t Tile) Add(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Manhattan returns the L1 distance between two tiles.
func (t Tile) Manhattan(o Tile) int {
	return absInt(t.X-o.X) + absInt(t.Y-o.Y)
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// scanOrder is the neighbour order used by both the cost field and the
// gradient follower: south, north, east, west.
var scanOrder = [4]Tile{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Vec2 is a pixel-space point or velocity.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2             { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2             { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2        { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64                { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64         { return v.Sub(o).Len() }
func (v Vec2) Lerp(o Vec2, f float64) Vec2 { return v.Add(o.Sub(v).Scale(f)) }

// aabb is an axis-aligned box in pixel space.
type aabb struct {
	x, y, w, h float64
}

// centredBox returns a size×size box centred on c.
func centredBox(c Vec2, size float64) aabb {
	return aabb{x: c.X - size/2, y: c.Y - size/2, w: size, h: size}
}

func (a aabb) overlaps(b aabb) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// floorDiv divides rounding toward negative infinity so pixels left of the
// map resolve to negative tiles.
func floorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
