package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/config"
	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/logging"
)

func TestStdLogger_RejectsUnknownOutput(t *testing.T) {
	_, err := logging.NewStdLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestStdLogger_WritesJSONLineToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.log")
	l, err := logging.NewStdLogger(config.LoggingConfig{
		Level: "info", Format: "json", Output: "file", FilePath: path,
	})
	require.NoError(t, err)
	defer l.Close()

	l.Log("info", "tube assigned", map[string]interface{}{"tube_number": 1})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `"message":"tube assigned"`)
	assert.Contains(t, line, `"tube_number":1`)
	assert.Contains(t, line, `"level":"info"`)
}

func TestStdLogger_TextFormatIncludesSortedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.log")
	l, err := logging.NewStdLogger(config.LoggingConfig{
		Level: "debug", Format: "text", Output: "file", FilePath: path,
	})
	require.NoError(t, err)
	defer l.Close()

	l.Log("warn", "tube occupied", map[string]interface{}{"b": 2, "a": 1})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "[warn] tube occupied a=1 b=2")
}

func TestStdLogger_FiltersBelowConfiguredLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.log")
	l, err := logging.NewStdLogger(config.LoggingConfig{
		Level: "warn", Format: "text", Output: "file", FilePath: path,
	})
	require.NoError(t, err)
	defer l.Close()

	l.Log("debug", "should be dropped", nil)
	l.Log("info", "should also be dropped", nil)
	l.Log("error", "should appear", nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.False(t, strings.Contains(line, "dropped"))
	assert.True(t, strings.Contains(line, "should appear"))
}

func TestStdLogger_StdoutAndStderrAreAccepted(t *testing.T) {
	_, err := logging.NewStdLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	_, err = logging.NewStdLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"})
	require.NoError(t, err)
}
