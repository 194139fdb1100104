package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeoPosition_ValidTriple(t *testing.T) {
	pos, err := parseGeoPosition("35.1, 129.0, -20")
	require.NoError(t, err)
	assert.Equal(t, 35.1, pos.Lat)
	assert.Equal(t, 129.0, pos.Lon)
	assert.Equal(t, -20.0, pos.Alt)
}

func TestParseGeoPosition_RejectsWrongFieldCount(t *testing.T) {
	_, err := parseGeoPosition("35.1,129.0")
	assert.Error(t, err)
}

func TestParseGeoPosition_RejectsNonNumericField(t *testing.T) {
	_, err := parseGeoPosition("north,129.0,-20")
	assert.Error(t, err)
}

func runCmd(cmd interface{ Execute() error }) error {
	return cmd.Execute()
}

func TestAssignCommand_RequiresTubeFlag(t *testing.T) {
	cmd := NewAssignCommand()
	cmd.SetArgs([]string{"--kind", "ALM"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := runCmd(cmd)
	assert.ErrorContains(t, err, "--tube flag is required")
}

func TestAssignCommand_RequiresKindFlag(t *testing.T) {
	cmd := NewAssignCommand()
	cmd.SetArgs([]string{"--tube", "1"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := runCmd(cmd)
	assert.ErrorContains(t, err, "--kind flag is required")
}

func TestAssignCommand_RejectsMalformedTargetPoint(t *testing.T) {
	cmd := NewAssignCommand()
	cmd.SetArgs([]string{"--tube", "1", "--kind", "ALM", "--target-point", "bad"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := runCmd(cmd)
	assert.ErrorContains(t, err, "--target-point")
}

func TestControlCommand_RequiresStateFlag(t *testing.T) {
	cmd := NewControlCommand()
	cmd.SetArgs([]string{"--tube", "1"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := runCmd(cmd)
	assert.ErrorContains(t, err, "--state flag is required")
}

func TestWaypointsCommand_RequiresAtLeastOnePoint(t *testing.T) {
	cmd := NewWaypointsCommand()
	cmd.SetArgs([]string{"--tube", "1"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := runCmd(cmd)
	assert.ErrorContains(t, err, "at least one --point is required")
}

func TestUnassignCommand_RequiresTubeFlag(t *testing.T) {
	cmd := NewUnassignCommand()
	cmd.SetArgs([]string{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := runCmd(cmd)
	assert.Error(t, err)
}

func TestNewRootCommand_RegistersAllSubcommands(t *testing.T) {
	root := NewRootCommand()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"assign", "unassign", "control", "waypoints", "status", "estop", "own-ship", "axis-center", "target", "events"} {
		assert.True(t, names[want], "expected subcommand %q to be registered", want)
	}
}

func TestGetDefaultDaemonAddr_UsesEnvWhenSet(t *testing.T) {
	t.Setenv("WPNCTL_DAEMON_ADDR", "unix:///tmp/custom.sock")
	assert.Equal(t, "unix:///tmp/custom.sock", getDefaultDaemonAddr())
}

func TestGetDefaultDaemonAddr_FallsBackToDefault(t *testing.T) {
	t.Setenv("WPNCTL_DAEMON_ADDR", "")
	assert.Equal(t, "/tmp/weaponctl-daemon.sock", getDefaultDaemonAddr())
}
