package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewAxisCenterCommand creates the axis-center command.
func NewAxisCenterCommand() *cobra.Command {
	var point string

	cmd := &cobra.Command{
		Use:     "axis-center",
		Short:   "Set the shared axis-center reference position",
		Example: "  weaponctl axis-center --point 35.1,129.0,0",
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

			reply, err := client.UpdateAxisCenter(ctx, &rpc.AxisCenterRequest{Position: pos})
			if err != nil {
				return fmt.Errorf("axis-center update failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("axis-center update rejected: %s", reply.Error)
			}

			fmt.Println("axis-center position updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&point, "point", "", "Axis-center position as lat,lon,alt (required)")
	return cmd
}
