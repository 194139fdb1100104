package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewUnassignCommand creates the unassign command.
func NewUnassignCommand() *cobra.Command {
	var tube int

	cmd := &cobra.Command{
		Use:   "unassign",
		Short: "Clear a launch tube's assigned weapon",
		Example: "  weaponctl unassign --tube 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tube == 0 {
				return fmt.Errorf("--tube flag is required")
			}

			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.Unassign(ctx, &rpc.UnassignRequest{TubeNumber: tube})
			if err != nil {
				return fmt.Errorf("unassign failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("unassign rejected: %s", reply.Error)
			}

			fmt.Printf("unassigned tube %d\n", tube)
			return nil
		},
	}

	cmd.Flags().IntVar(&tube, "tube", 0, "Tube number (required)")
	return cmd
}
