package game

import (
	"fmt"
	"strings"
)

// EventKind classifies something observable that happened during a tick.
type EventKind uint8

const (
	EventEnemySpawned EventKind = iota
	EventEnemyKilled
	EventStructureBuilt
	EventStructureSpawned
	EventStructureDestroyed
	EventStructureExpired
	EventCurrency // Amount is the signed delta
	EventFieldDirty
	EventFieldRebuilt
	EventWaveStarted
	EventWaveCleared
	EventBonusDropped
	EventBonusCollected
	EventBonusExpired
	EventWeaponUnlocked
	EventOvercharge
	EventCommandRejected
	EventStateRestored
	EventGameOver
	EventEnemyCleared
)

// eventLogKeys maps each kind to its SimLog category and key.
var eventLogKeys = [...][2]string{
	EventEnemySpawned:       {"enemy", "spawned"},
	EventEnemyKilled:        {"enemy", "killed"},
	EventStructureBuilt:     {"structure", "built"},
	EventStructureSpawned:   {"structure", "spawned"},
	EventStructureDestroyed: {"structure", "destroyed"},
	EventStructureExpired:   {"structure", "expired"},
	EventCurrency:           {"economy", "currency"},
	EventFieldDirty:         {"field", "dirty"},
	EventFieldRebuilt:       {"field", "rebuilt"},
	EventWaveStarted:        {"wave", "started"},
	EventWaveCleared:        {"wave", "cleared"},
	EventBonusDropped:       {"bonus", "dropped"},
	EventBonusCollected:     {"bonus", "collected"},
	EventBonusExpired:       {"bonus", "expired"},
	EventWeaponUnlocked:     {"player", "weapon_unlocked"},
	EventOvercharge:         {"player", "overcharge"},
	EventCommandRejected:    {"command", "rejected"},
	EventStateRestored:      {"game", "restored"},
	EventGameOver:           {"game", "over"},
	EventEnemyCleared:       {"enemy", "cleared"},
}

// Category returns the SimLog category for the kind.
func (k EventKind) Category() string {
	if int(k) < len(eventLogKeys) {
		return eventLogKeys[k][0]
	}
	return "unknown"
}

// Key returns the SimLog key for the kind.
func (k EventKind) Key() string {
	if int(k) < len(eventLogKeys) {
		return eventLogKeys[k][1]
	}
	return "unknown"
}

func (k EventKind) String() string {
	return k.Category() + "." + k.Key()
}

// Event is one observable outcome of a tick.
type Event struct {
	Tick   int
	Kind   EventKind
	Actor  string // e.g. "scout#7", "player", "--"
	Tile   Tile
	Amount float64
	Detail string
}

func (e Event) String() string {
	return fmt.Sprintf("[T=%05d] %-22s %-12s %s %s", e.Tick, e.Kind, e.Actor, e.Tile, e.Detail)
}

// emit records an event for the current tick and mirrors it to the SimLog.
func (s *Sim) emit(kind EventKind, actor string, at Tile, amount float64, detail string) {
	ev := Event{Tick: s.tick, Kind: kind, Actor: actor, Tile: at, Amount: amount, Detail: detail}
	s.events = append(s.events, ev)
	if s.simLog != nil {
		s.simLog.Add(s.tick, actor, actorFaction(actor), kind.Category(), kind.Key(), detail, amount)
	}
}

// actorFaction derives the faction column of a SimLog line from an actor label.
func actorFaction(actor string) string {
	switch {
	case actor == "" || actor == "--" || strings.HasPrefix(actor, "bonus"):
		return "--"
	case actor == "player", strings.HasPrefix(actor, "player_"), strings.HasPrefix(actor, "cryo_"):
		return "player"
	default:
		return "enemy"
	}
}
