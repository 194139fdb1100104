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

func TestStdLogger_RotatesWhenMaxSizeExceeded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.log")
	l, err := logging.NewStdLogger(config.LoggingConfig{
		Level: "info", Format: "text", Output: "file", FilePath: path,
		Rotation: config.RotationConfig{Enabled: true, MaxSize: 1, MaxBackups: 5},
	})
	require.NoError(t, err)
	defer l.Close()

	big := make(map[string]interface{}, 1)
	big["blob"] = strings.Repeat("x", 1100*1024)
	l.Log("info", "first entry forces rotation", big)
	l.Log("info", "second entry goes to a fresh file", nil)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var rotated, fresh bool
	for _, e := range entries {
		if e.Name() == "fleet.log" {
			fresh = true
		}
		if len(e.Name()) > len("fleet.log.") && e.Name()[:len("fleet.log.")] == "fleet.log." {
			rotated = true
		}
	}
	assert.True(t, fresh, "expected the active log file to still exist")
	assert.True(t, rotated, "expected a rotated backup file to have been created")
}

func TestStdLogger_RotationDisabledNeverRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.log")
	l, err := logging.NewStdLogger(config.LoggingConfig{
		Level: "info", Format: "text", Output: "file", FilePath: path,
		Rotation: config.RotationConfig{Enabled: false, MaxSize: 1},
	})
	require.NoError(t, err)
	defer l.Close()

	big := make(map[string]interface{}, 1)
	big["blob"] = strings.Repeat("x", 1100*1024)
	l.Log("info", "large entry", big)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

