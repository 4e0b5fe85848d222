package logger_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/plus3/blockfall/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info text", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")

		var buf bytes.Buffer
		log := logger.New(&buf)
		assert.Equal(t, logrus.InfoLevel, log.GetLevel())

		log.Debug("hidden")
		log.WithField("score", 100).Info("piece locked")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "score=100")
	})

	t.Run("json format and level from env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "JSON")

		var buf bytes.Buffer
		log := logger.New(&buf)
		log.WithField("rows", 2).Debug("piece locked")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "piece locked", entry["msg"])
		assert.Equal(t, "debug", entry["level"])
		assert.EqualValues(t, 2, entry["rows"])
	})
}

func TestInit(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger.Init(&buf)

	logger.Log.Info("quiet")
	logger.Log.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestOpenFile(t *testing.T) {
	w, err := logger.OpenFile("")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "blockfall.log")
	w, err = logger.OpenFile(path)
	require.NoError(t, err)
	log := logger.New(w)
	log.Warn("written")
	require.NoError(t, w.Close())
	assert.FileExists(t, path)
}
