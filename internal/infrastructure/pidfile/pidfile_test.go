package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kwonjooeun/weaponctl/internal/infrastructure/pidfile"
)

func TestPIDFile_AcquireWritesOwnPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(string(data[:len(data)-1]))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestPIDFile_AcquireRejectsWhenOwningProcessStillRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644))

	p := pidfile.New(path)
	err := p.Acquire()
	assert.Error(t, err)
}

func TestPIDFile_AcquireReplacesStalePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	// PID 999999 is exceedingly unlikely to be a live process.
	require.NoError(t, os.WriteFile(path, []byte("999999\n"), 0o644))

	p := pidfile.New(path)
	require.NoError(t, p.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(string(data[:len(data)-1]))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestPIDFile_AcquireReplacesMalformedPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	p := pidfile.New(path)
	require.NoError(t, p.Acquire())
}

func TestPIDFile_ReleaseRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	p := pidfile.New(path)
	require.NoError(t, p.Acquire())

	require.NoError(t, p.Release())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPIDFile_ReleaseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	p := pidfile.New(path)
	require.NoError(t, p.Release())
}
