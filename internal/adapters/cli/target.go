package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewTargetCommand creates the target command.
func NewTargetCommand() *cobra.Command {
	var (
		targetID uint32
		lat, lon, depth float64
	)

	cmd := &cobra.Command{
		Use:     "target",
		Short:   "Push a target position update into the target cache",
		Example: "  weaponctl target --target-id 42 --lat 35.1 --lon 129.0 --depth -50",
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetID == 0 {
				return fmt.Errorf("--target-id flag is required")
			}

			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.UpdateTarget(ctx, &rpc.TargetUpdateRequest{
				SystemTargetID: targetID,
				Lat:            lat,
				Lon:            lon,
				Depth:          depth,
			})
			if err != nil {
				return fmt.Errorf("target update failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("target update rejected: %s", reply.Error)
			}

			fmt.Printf("target %d updated\n", targetID)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&targetID, "target-id", 0, "System target id (required)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Target latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Target longitude")
	cmd.Flags().Float64Var(&depth, "depth", 0, "Target depth (negative altitude)")
	return cmd
}
