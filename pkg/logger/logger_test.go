package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", "JSON", &buf)

	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.WithField("wave", 3).Info("wave started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "wave started", line["msg"])
	assert.EqualValues(t, 3, line["wave"])
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	l := New("loud", "", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestInit_ReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "text")
	var buf bytes.Buffer

	l := Init(&buf)
	require.Same(t, Log, l)
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	Log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestDiscard_WritesNothing(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() { l.Error("dropped") })
}
