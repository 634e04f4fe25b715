package game

import (
	"math/rand"
	"testing"
)

func defaultRules() CostRules {
	b := DefaultBalance()
	return b.CostRules()
}

// relaxAll computes the same costs by repeated relaxation, as a reference.
func relaxAll(m *GridMap, objective Tile, cryos []*Structure, rules CostRules) []int {
	n := m.Size
	costs := make([]int, n*n)
	for i := range costs {
		costs[i] = CostUnreachable
	}
	costs[objective.Y*n+objective.X] = 0
	for changed := true; changed; {
		changed = false
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := costs[y*n+x]
				if c == CostUnreachable {
					continue
				}
				cur := Tile{X: x, Y: y}
				for _, d := range scanOrder {
					nb := cur.Add(d.X, d.Y)
					if m.IsBlocked(nb) {
						continue
					}
					nc := c + rules.entryCost(m, cryos, nb)
					if nc < costs[nb.Y*n+nb.X] {
						costs[nb.Y*n+nb.X] = nc
						changed = true
					}
				}
			}
		}
	}
	return costs
}

func TestCostField_OpenMapIsManhattan(t *testing.T) {
	m := NewGridMap(9, 48)
	f := NewCostField(9)
	obj := Tile{X: 4, Y: 4}
	f.Rebuild(m, obj, nil, defaultRules())
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			tl := Tile{X: x, Y: y}
			if got, want := f.At(tl), tl.Manhattan(obj); got != want {
				t.Fatalf("cost at %s: expected %d got %d", tl, want, got)
			}
		}
	}
}

func TestCostField_MatchesRelaxation(t *testing.T) {
	rules := defaultRules()
	cfg := DefaultBalance()
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := NewGridMap(12, 48)
		obj := Tile{X: rng.Intn(12), Y: rng.Intn(12)}
		var cryos []*Structure
		id := 0
		for i := 0; i < 30; i++ {
			tl := Tile{X: rng.Intn(12), Y: rng.Intn(12)}
			if tl == obj {
				continue
			}
			id++
			switch rng.Intn(4) {
			case 0:
				m.SetTerrain(tl, TerrainWall)
			case 1:
				m.Occupy(newStructure(&cfg, id, StructurePlayerWall, tl, 0))
			case 2:
				c := newStructure(&cfg, id, StructureCryoNode, tl, 0)
				if m.Occupy(c) {
					cryos = append(cryos, c)
				}
			default:
				m.Occupy(newStructure(&cfg, id, StructureSpawner, tl, 0))
			}
		}

		f := NewCostField(12)
		f.Rebuild(m, obj, cryos, rules)
		want := relaxAll(m, obj, cryos, rules)
		for i, w := range want {
			tl := Tile{X: i % 12, Y: i / 12}
			if got := f.At(tl); got != w {
				t.Fatalf("seed %d: cost at %s: expected %d got %d", seed, tl, w, got)
			}
		}
	}
}

func TestCostField_BlockedTilesUnreachable(t *testing.T) {
	m := NewGridMap(5, 48)
	m.SetTerrain(Tile{X: 2, Y: 0}, TerrainWall)
	m.SetTerrain(Tile{X: 2, Y: 1}, TerrainWall)
	m.SetTerrain(Tile{X: 2, Y: 2}, TerrainWall)
	m.SetTerrain(Tile{X: 2, Y: 3}, TerrainWall)
	m.SetTerrain(Tile{X: 2, Y: 4}, TerrainWall)
	f := NewCostField(5)
	f.Rebuild(m, Tile{X: 0, Y: 2}, nil, defaultRules())

	if f.Reachable(Tile{X: 4, Y: 2}) {
		t.Fatal("tile behind a full wall should be unreachable")
	}
	if f.Reachable(Tile{X: 2, Y: 2}) {
		t.Fatal("wall tile should be unreachable")
	}
	if got := f.At(Tile{X: -1, Y: 0}); got != CostUnreachable {
		t.Fatalf("off-map tile: expected unreachable got %d", got)
	}
}

func TestCostField_PlayerWallCostsWallEntry(t *testing.T) {
	cfg := DefaultBalance()
	m := NewGridMap(3, 48)
	// Single column corridor: x=1 only.
	for y := 0; y < 3; y++ {
		m.SetTerrain(Tile{X: 0, Y: y}, TerrainWall)
		m.SetTerrain(Tile{X: 2, Y: y}, TerrainWall)
	}
	m.Occupy(newStructure(&cfg, 1, StructurePlayerWall, Tile{X: 1, Y: 1}, 0))
	f := NewCostField(3)
	f.Rebuild(m, Tile{X: 1, Y: 2}, nil, defaultRules())

	if got := f.At(Tile{X: 1, Y: 1}); got != 30 {
		t.Fatalf("wall tile: expected 30 got %d", got)
	}
	if got := f.At(Tile{X: 1, Y: 0}); got != 31 {
		t.Fatalf("tile past wall: expected 31 got %d", got)
	}
}

func TestCostField_CryoAuraAddsOnce(t *testing.T) {
	cfg := DefaultBalance()
	m := NewGridMap(7, 48)
	a := newStructure(&cfg, 1, StructureCryoNode, Tile{X: 3, Y: 3}, 0)
	b := newStructure(&cfg, 2, StructureCryoNode, Tile{X: 3, Y: 4}, 0)
	m.Occupy(a)
	m.Occupy(b)
	f := NewCostField(7)
	f.Rebuild(m, Tile{X: 0, Y: 3}, []*Structure{a, b}, defaultRules())

	// (1,3) lies in a's aura only; (2,3) in both. Each costs 1+5.
	if got := f.At(Tile{X: 1, Y: 3}); got != 6 {
		t.Fatalf("(1,3): expected 6 got %d", got)
	}
	if got := f.At(Tile{X: 2, Y: 3}); got != 12 {
		t.Fatalf("(2,3): expected 12 got %d", got)
	}
}

func TestCostField_RemovingWallNeverRaisesCost(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rules := defaultRules()
	m := NewGridMap(10, 48)
	obj := Tile{X: 5, Y: 5}
	var walls []Tile
	for i := 0; i < 25; i++ {
		tl := Tile{X: rng.Intn(10), Y: rng.Intn(10)}
		if tl != obj {
			m.SetTerrain(tl, TerrainWall)
			walls = append(walls, tl)
		}
	}
	f := NewCostField(10)
	f.Rebuild(m, obj, nil, rules)
	before := append([]int(nil), f.costs...)

	m.SetTerrain(walls[0], TerrainFloor)
	f.Rebuild(m, obj, nil, rules)
	for i, c := range f.costs {
		if c > before[i] {
			t.Fatalf("cost at index %d rose from %d to %d", i, before[i], c)
		}
	}
}

func TestCostField_RefreshOnlyWhenDirty(t *testing.T) {
	m := NewGridMap(4, 48)
	f := NewCostField(4)
	if !f.Dirty() {
		t.Fatal("new field should start dirty")
	}
	if !f.Refresh(m, Tile{}, nil, defaultRules()) {
		t.Fatal("first refresh should rebuild")
	}
	if f.Refresh(m, Tile{}, nil, defaultRules()) {
		t.Fatal("clean field should not rebuild")
	}
	f.MarkDirty()
	if !f.Refresh(m, Tile{}, nil, defaultRules()) {
		t.Fatal("dirty field should rebuild")
	}
	if f.Revision() != 2 {
		t.Fatalf("expected revision 2 got %d", f.Revision())
	}
}
