package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var daemonAddr string

// NewRootCommand creates the root command for the CLI.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weaponctl",
		Short: "weaponctl CLI - control the launch-tube fleet daemon",
		Long: `weaponctl provides commands to assign, control, and monitor weapons
across the fleet's launch tubes via the weaponctl daemon.

Examples:
  weaponctl assign --tube 1 --kind ALM --target-id 42
  weaponctl control --tube 1 --state ON
  weaponctl status --tube 1
  weaponctl waypoints --tube 1 --point 35.1,129.0,-20
  weaponctl estop
  weaponctl events`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&daemonAddr, "addr", getDefaultDaemonAddr(),
		"Daemon address: a Unix socket path or host:port")

	rootCmd.AddCommand(NewAssignCommand())
	rootCmd.AddCommand(NewUnassignCommand())
	rootCmd.AddCommand(NewControlCommand())
	rootCmd.AddCommand(NewWaypointsCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewEmergencyStopCommand())
	rootCmd.AddCommand(NewOwnShipCommand())
	rootCmd.AddCommand(NewAxisCenterCommand())
	rootCmd.AddCommand(NewTargetCommand())
	rootCmd.AddCommand(NewEventsCommand())

	return rootCmd
}

func getDefaultDaemonAddr() string {
	if addr := os.Getenv("WPNCTL_DAEMON_ADDR"); addr != "" {
		return addr
	}
	return "/tmp/weaponctl-daemon.sock"
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
