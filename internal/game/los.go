package game

// HasLineOfSight samples the segment a→b at half-tile steps and returns
// false if any interior sample lands on a static wall. Structures never
// block sight.
func HasLineOfSight(m *GridMap, a, b Vec2) bool {
	dist := a.Dist(b)
	if dist == 0 {
		return true
	}
	steps := int(dist / (m.TileSize / 2))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		if m.IsWall(m.TileAt(a.Lerp(b, t))) {
			return false
		}
	}
	return true
}
