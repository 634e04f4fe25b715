// Package save persists game.SaveState as YAML files in a directory.
package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Core-Defense/internal/game"
)

const ext = ".yaml"

// ErrBadName is returned for slot names that are empty or contain a path.
var ErrBadName = errors.New("invalid save slot name")

// Store reads and writes save slots under Dir.
type Store struct {
	Dir string
	Log logrus.FieldLogger
}

// NewStore creates the directory if it does not exist.
func NewStore(dir string, log logrus.FieldLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save dir: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		log = l
	}
	return &Store{Dir: dir, Log: log}, nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return filepath.Join(s.Dir, name+ext), nil
}

// Save writes st to the named slot, replacing it atomically.
func (s *Store) Save(name string, st game.SaveState) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	s.Log.WithFields(logrus.Fields{
		"slot":       name,
		"wave":       st.Wave,
		"structures": len(st.Structures),
	}).Info("game saved")
	return nil
}

// Load reads the named slot and sanitizes it against cfg.
func (s *Store) Load(name string, cfg game.Balance) (game.SaveState, error) {
	path, err := s.path(name)
	if err != nil {
		return game.SaveState{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return game.SaveState{}, fmt.Errorf("failed to read save: %w", err)
	}
	var st game.SaveState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return game.SaveState{}, fmt.Errorf("failed to decode save %s: %w", name, err)
	}
	clean, dropped := Sanitize(st, cfg)
	if dropped > 0 {
		s.Log.WithFields(logrus.Fields{"slot": name, "dropped": dropped}).Warn("save sanitized")
	}
	return clean, nil
}

// List returns the slot names in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Sanitize drops entries cfg does not know and clamps values into range.
// It returns the cleaned state and how many entries were dropped.
func Sanitize(st game.SaveState, cfg game.Balance) (game.SaveState, int) {
	dropped := 0
	out := game.SaveState{
		Wave:     max(0, st.Wave),
		Currency: max(0, st.Currency),
		Grenades: max(0, st.Grenades),
		PlayerHP: clamp(st.PlayerHP, 0, cfg.PlayerHP),
		CoreHP:   clamp(st.CoreHP, 0, cfg.CoreHP),
	}

	keepWeapons := func(ids []string) []string {
		var kept []string
		seen := map[string]bool{}
		for _, id := range ids {
			if _, ok := cfg.Weapon(id); !ok || seen[id] {
				dropped++
				continue
			}
			seen[id] = true
			kept = append(kept, id)
		}
		return kept
	}
	out.Unlocked = keepWeapons(st.Unlocked)
	out.Purchased = keepWeapons(st.Purchased)

	for _, b := range st.Buffs {
		if _, ok := game.ParseBuffKind(b); !ok {
			dropped++
			continue
		}
		out.Buffs = append(out.Buffs, b)
	}

	for _, x := range st.Structures {
		kind, ok := game.ParseStructureKind(x.Kind)
		inMap := x.X >= 0 && x.Y >= 0 && x.X < cfg.MapSize && x.Y < cfg.MapSize
		if !ok || !inMap || (kind.PlayerBuilt() && x.Remaining <= 0) {
			dropped++
			continue
		}
		x.Produced = max(0, x.Produced)
		x.HP = max(0, x.HP)
		out.Structures = append(out.Structures, x)
	}
	return out, dropped
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	return min(max(v, lo), hi)
}
