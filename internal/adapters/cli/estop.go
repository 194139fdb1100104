package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewEmergencyStopCommand creates the estop command.
func NewEmergencyStopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estop",
		Short:   "Stop every assigned weapon: ABORT if launching, otherwise OFF",
		Example: "  weaponctl estop",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.EmergencyStop(ctx, &rpc.EmergencyStopRequest{})
			if err != nil {
				return fmt.Errorf("emergency stop failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("emergency stop rejected: %s", reply.Error)
			}

			fmt.Println("emergency stop issued to all tubes")
			return nil
		},
	}
	return cmd
}
