package game

import (
	"container/heap"
	"math"
)

// CostUnreachable marks tiles with no path to the objective.
const CostUnreachable = math.MaxInt32

// CostRules are the edge weights of the cost field.
type CostRules struct {
	Base int // entering an ordinary tile
	Wall int // entering a tile held by a player wall (replaces Base)
	Cryo int // added once when the tile lies in any cryo aura
}

// entryCost is the price of stepping onto t.
func (r CostRules) entryCost(m *GridMap, cryos []*Structure, t Tile) int {
	c := r.Base
	if s, ok := m.PlayerStructureAt(t); ok && s.Kind == StructurePlayerWall {
		c = r.Wall
	}
	for _, n := range cryos {
		if n.Alive() && n.InAura(t) {
			c += r.Cryo
			break
		}
	}
	return c
}

// CostField holds, per tile, the weighted shortest distance to the
// objective. It is rebuilt in full whenever it has been marked dirty.
type CostField struct {
	size      int
	costs     []int
	objective Tile
	dirty     bool
	revision  int
	open      costQueue
}

// NewCostField creates a field that starts dirty and fully unreachable.
func NewCostField(size int) *CostField {
	f := &CostField{
		size:  size,
		costs: make([]int, size*size),
		dirty: true,
	}
	for i := range f.costs {
		f.costs[i] = CostUnreachable
	}
	return f
}

// At returns the cost of t, or CostUnreachable off the map.
func (f *CostField) At(t Tile) int {
	if t.X < 0 || t.Y < 0 || t.X >= f.size || t.Y >= f.size {
		return CostUnreachable
	}
	return f.costs[t.Y*f.size+t.X]
}

// Reachable returns true if t has a path to the objective.
func (f *CostField) Reachable(t Tile) bool {
	return f.At(t) != CostUnreachable
}

// MarkDirty schedules a rebuild.
func (f *CostField) MarkDirty() { f.dirty = true }

// Dirty reports whether the field is stale.
func (f *CostField) Dirty() bool { return f.dirty }

// Revision counts completed rebuilds.
func (f *CostField) Revision() int { return f.revision }

// Objective returns the root of the last rebuild.
func (f *CostField) Objective() Tile { return f.objective }

// Rebuild runs Dijkstra from the objective over the 4-neighbour graph.
// Blocked tiles are never entered; ties pop in (x, y) order.
func (f *CostField) Rebuild(m *GridMap, objective Tile, cryos []*Structure, rules CostRules) {
	for i := range f.costs {
		f.costs[i] = CostUnreachable
	}
	f.objective = objective
	f.dirty = false
	f.revision++
	if !m.InBounds(objective) {
		return
	}

	f.costs[objective.Y*f.size+objective.X] = 0
	f.open = f.open[:0]
	heap.Push(&f.open, costNode{tile: objective})

	for f.open.Len() > 0 {
		cur := heap.Pop(&f.open).(costNode)
		if cur.cost > f.At(cur.tile) {
			continue // stale entry
		}
		for _, d := range scanOrder {
			n := cur.tile.Add(d.X, d.Y)
			if m.IsBlocked(n) {
				continue
			}
			nc := cur.cost + rules.entryCost(m, cryos, n)
			idx := n.Y*f.size + n.X
			if nc < f.costs[idx] {
				f.costs[idx] = nc
				heap.Push(&f.open, costNode{tile: n, cost: nc})
			}
		}
	}
}

// Refresh rebuilds the field only if it is dirty and reports whether it did.
func (f *CostField) Refresh(m *GridMap, objective Tile, cryos []*Structure, rules CostRules) bool {
	if !f.dirty {
		return false
	}
	f.Rebuild(m, objective, cryos, rules)
	return true
}

// --- priority queue ---

type costNode struct {
	tile Tile
	cost int
}

type costQueue []costNode

func (q costQueue) Len() int { return len(q) }
func (q costQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	if q[i].tile.X != q[j].tile.X {
		return q[i].tile.X < q[j].tile.X
	}
	return q[i].tile.Y < q[j].tile.Y
}
func (q costQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *costQueue) Push(x interface{}) { *q = append(*q, x.(costNode)) }
func (q *costQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}
