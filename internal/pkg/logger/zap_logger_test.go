package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)

	l.Info("Test", "first", nil)
	l.Warn("Test", "second", map[string]interface{}{"n": 2})
	l.Error("Test", "third", map[string]interface{}{"error": errors.New("boom")})
	_ = l.Sync()

	t.Run("newest first", func(t *testing.T) {
		logs, err := l.GetLogs("", 10, 0)
		require.NoError(t, err)
		require.Len(t, logs, 3)
		assert.Equal(t, "third", logs[0].Message)
		assert.Equal(t, "first", logs[2].Message)
		assert.Equal(t, "boom", logs[0].Details["error"])
	})

	t.Run("level filter", func(t *testing.T) {
		logs, err := l.GetLogs("WARN", 10, 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "second", logs[0].Message)
		assert.Equal(t, "Test", logs[0].Module)
	})

	t.Run("pagination", func(t *testing.T) {
		logs, err := l.GetLogs("", 1, 1)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "second", logs[0].Message)

		logs, err = l.GetLogs("", 5, 10)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}

func TestGetLogsMissingFile(t *testing.T) {
	l := &ZapLogger{logger: NewNopLogger().logger, filePath: filepath.Join(t.TempDir(), "none.log")}
	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, statErr := os.Stat(l.filePath)
	assert.True(t, os.IsNotExist(statErr))
}
