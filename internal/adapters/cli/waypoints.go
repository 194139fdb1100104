package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewWaypointsCommand creates the waypoints command.
func NewWaypointsCommand() *cobra.Command {
	var (
		tube   int
		points []string
	)

	cmd := &cobra.Command{
		Use:   "waypoints",
		Short: "Replace a tube's engagement waypoints",
		Long: `Replace the ordered waypoint list the tube's engagement planner
routes through before reaching the target. Each --point is a
lat,lon,alt triple; repeat the flag to add more waypoints, in order.

Example:
  weaponctl waypoints --tube 1 --point 35.1,129.0,-20 --point 35.2,129.1,-20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tube == 0 {
				return fmt.Errorf("--tube flag is required")
			}
			if len(points) == 0 {
				return fmt.Errorf("at least one --point is required")
			}

			waypoints := make([]shared.GeoPosition, 0, len(points))
			for _, p := range points {
				pos, err := parseGeoPosition(p)
				if err != nil {
					return fmt.Errorf("--point %q: %w", p, err)
				}
				waypoints = append(waypoints, pos)
			}

			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.UpdateWaypoints(ctx, &rpc.WaypointsRequest{
				TubeNumber: tube,
				Waypoints:  waypoints,
			})
			if err != nil {
				return fmt.Errorf("waypoints update failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("waypoints update rejected: %s", reply.Error)
			}

			fmt.Printf("tube %d: %d waypoint(s) set\n", tube, len(waypoints))
			return nil
		},
	}

	cmd.Flags().IntVar(&tube, "tube", 0, "Tube number (required)")
	cmd.Flags().StringArrayVar(&points, "point", nil, "Waypoint as lat,lon,alt (repeatable, in order)")
	return cmd
}
