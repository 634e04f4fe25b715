package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Core-Defense/internal/game"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	b, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultBalance(), b)
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	data := "map_size: 32\nplayer_move_delay: 200ms\naggro_range: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, b.MapSize)
	assert.Equal(t, 200*time.Millisecond, b.PlayerMoveDelay)
	assert.Equal(t, 5, b.AggroRange)
	assert.Equal(t, game.DefaultBalance().CoreHP, b.CoreHP, "untouched keys keep defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_UnknownKeyRejected(t *testing.T) {
	b := game.DefaultBalance()
	err := Decode(strings.NewReader("tower_count: 3\n"), &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tower_count")
}

func TestDecode_EmptyDocumentIsDefaults(t *testing.T) {
	b := game.DefaultBalance()
	require.NoError(t, Decode(strings.NewReader(""), &b))
	assert.Equal(t, game.DefaultBalance(), b)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	b := game.DefaultBalance()
	b.MapSize = 4
	b.WallEntryCost = 0
	b.Weapons = []game.WeaponStats{{ID: "ONLY", Speed: 1, Range: 1, Pellets: 1, Price: 10}}

	err := Validate(&b)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "map_size")
	assert.Contains(t, msg, "wall_entry_cost")
	assert.Contains(t, msg, "price 0")
}

func TestValidate_WallAttackFasterThanMoveFloor(t *testing.T) {
	b := game.DefaultBalance()
	require.NoError(t, Validate(&b))

	b.WallAttackCooldown = b.MoveFloor
	err := Validate(&b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wall_attack_cooldown")
}

func TestWrite_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, game.DefaultBalance()))
	assert.Contains(t, buf.String(), "wall_attack_cooldown: 300ms")

	b := game.DefaultBalance()
	b.MapSize = 99
	require.NoError(t, Decode(&buf, &b))
	assert.Equal(t, game.DefaultBalance(), b)
}
