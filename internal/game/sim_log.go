package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // label e.g. "scout#4", "player_wall#2", or "--" for global events
	Faction  string  // "player", "enemy", or "--"
	Category string  // enemy, structure, economy, field, wave, bonus, player, command, game, ai
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] scout#4        enemy     killed           by grenade
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-14s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a simulation run.
// Unlike the on-screen event feed, SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick AI intents and
// positions are also recorded (useful for detailed debugging).
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, faction, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Faction:  faction,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, faction, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, faction, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// match reports whether e has the category, key and value substring given.
// Empty arguments match anything.
func (e SimLogEntry) match(category, key, valueSubstr string) bool {
	switch {
	case category != "" && e.Category != category:
		return false
	case key != "" && e.Key != key:
		return false
	case valueSubstr != "" && !strings.Contains(e.Value, valueSubstr):
		return false
	}
	return true
}

// Filter returns entries matching category and key; empty matches any.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.match(category, key, "") {
			out = append(out, e)
		}
	}
	return out
}

// FilterActor returns the entries recorded for one actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory counts entries matching category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.match(category, key, "") {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].match(category, key, "") {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry matches category, key and contains
// valueSubstr in its value.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.match(category, key, valueSubstr) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one entry per line.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the simulation state.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s) ---\n", snap.Tick, snap.Clock)
	fmt.Fprintf(&sb, "Wave %d  mode=%s  phase=%s\n", snap.Wave.Number, snap.Wave.Mode, snap.Wave.Phase)
	fmt.Fprintf(&sb, "Core: %.0f/%.0f  Player: %.0f/%.0f  Currency: %d  Grenades: %d\n",
		snap.Core.HP, snap.Core.MaxHP, snap.Player.HP, snap.Player.MaxHP, snap.Player.Currency, snap.Player.Grenades)

	kinds := map[EnemyKind]int{}
	for _, e := range snap.Enemies {
		kinds[e.Kind]++
	}
	sb.WriteString("Enemies: ")
	for _, k := range []EnemyKind{EnemyBasic, EnemyShooter, EnemyScout} {
		fmt.Fprintf(&sb, "%s=%d  ", k, kinds[k])
	}
	sb.WriteByte('\n')

	structs := map[StructureKind]int{}
	for _, st := range snap.Structures {
		structs[st.Kind]++
	}
	sb.WriteString("Structures: ")
	for _, k := range []StructureKind{StructureSpawner, StructureEnergyNode, StructurePlayerWall, StructureCryoNode} {
		fmt.Fprintf(&sb, "%s=%d  ", k, structs[k])
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Field revision: %d  kills=%d  rebuilds=%d\n",
		snap.FieldRevision, sl.CountCategory("enemy", "killed"), sl.CountCategory("field", "rebuilt"))
	return sb.String()
}
