package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Core-Defense/internal/game"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 12
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    game.EventKind
	Message string
}

// Feed is a ring buffer of recent simulation events rendered beside the map.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// quietKinds never reach the feed.
var quietKinds = map[game.EventKind]bool{
	game.EventFieldDirty:   true,
	game.EventFieldRebuilt: true,
	game.EventCurrency:     true,
}

// Add appends ev unless it is bookkeeping noise. It reports whether the
// event was kept.
func (f *Feed) Add(ev game.Event) bool {
	if quietKinds[ev.Kind] {
		return false
	}
	f.entries[f.head] = FeedEntry{Tick: ev.Tick, Kind: ev.Kind, Message: feedMessage(ev)}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
	return true
}

// Len is the number of buffered entries.
func (f *Feed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func feedMessage(ev game.Event) string {
	switch ev.Kind {
	case game.EventEnemyKilled:
		return fmt.Sprintf("%s down (%s)", ev.Actor, ev.Detail)
	case game.EventWaveStarted:
		return fmt.Sprintf("wave %.0f %s", ev.Amount, ev.Detail)
	case game.EventWaveCleared:
		return fmt.Sprintf("wave %.0f cleared", ev.Amount)
	case game.EventCommandRejected:
		return "refused: " + ev.Detail
	}
	msg := ev.Kind.Key() + " " + ev.Actor
	if ev.Detail != "" {
		msg += " " + ev.Detail
	}
	return msg
}

func feedColor(k game.EventKind) color.RGBA {
	switch k {
	case game.EventEnemyKilled, game.EventWaveCleared:
		return color.RGBA{R: 90, G: 200, B: 90, A: 255}
	case game.EventEnemySpawned, game.EventStructureSpawned, game.EventWaveStarted:
		return color.RGBA{R: 210, G: 80, B: 70, A: 255}
	case game.EventCommandRejected, game.EventGameOver:
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	}
	return color.RGBA{R: 110, G: 130, B: 170, A: 255}
}

// Draw renders the feed panel on the right side of the screen.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 24, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 28, G: 34, B: 46, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, feedColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y-2)
		y += feedLineHeight
	}
}
