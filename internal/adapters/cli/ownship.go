package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewOwnShipCommand creates the own-ship command.
func NewOwnShipCommand() *cobra.Command {
	var point string

	cmd := &cobra.Command{
		Use:     "own-ship",
		Short:   "Report own-ship position to the fleet",
		Example: "  weaponctl own-ship --point 35.1,129.0,0",
		RunE: func(cmd *cobra.Command, args []string) error {
			if point == "" {
				return fmt.Errorf("--point flag is required")
			}
			pos, err := parseGeoPosition(point)
			if err != nil {
				return fmt.Errorf("--point: %w", err)
			}

			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.UpdateOwnShip(ctx, &rpc.OwnShipRequest{Position: pos})
			if err != nil {
				return fmt.Errorf("own-ship update failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("own-ship update rejected: %s", reply.Error)
			}

			fmt.Println("own-ship position updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&point, "point", "", "Own-ship position as lat,lon,alt (required)")
	return cmd
}
