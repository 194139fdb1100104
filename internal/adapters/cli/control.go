package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewControlCommand creates the control command.
func NewControlCommand() *cobra.Command {
	var (
		tube  int
		state string
	)

	cmd := &cobra.Command{
		Use:   "control",
		Short: "Request a weapon control state transition",
		Long: `Request a tube's weapon transition to a new control state.
Valid states: OFF, ON, RTL, LAUNCH, ABORT.

Example:
  weaponctl control --tube 1 --state ON
  weaponctl control --tube 1 --state ABORT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tube == 0 {
				return fmt.Errorf("--tube flag is required")
			}
			if state == "" {
				return fmt.Errorf("--state flag is required")
			}

			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.Control(ctx, &rpc.ControlRequest{
				TubeNumber:  tube,
				TargetState: weapon.ControlState(strings.ToUpper(state)),
			})
			if err != nil {
				return fmt.Errorf("control failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("control rejected: %s", reply.Error)
			}

			fmt.Printf("tube %d: requested %s\n", tube, strings.ToUpper(state))
			return nil
		},
	}

	cmd.Flags().IntVar(&tube, "tube", 0, "Tube number (required)")
	cmd.Flags().StringVar(&state, "state", "", "Target control state (required)")
	return cmd
}
