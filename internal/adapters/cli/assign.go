package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/internal/domain/shared"
	"github.com/Kwonjooeun/weaponctl/internal/domain/weapon"
	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewAssignCommand creates the assign command.
func NewAssignCommand() *cobra.Command {
	var (
		tube        int
		kind        string
		targetID    uint32
		targetPoint string
		dropList    int
		dropPlan    int
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a weapon to a launch tube",
		Long: `Assign binds a weapon of the given kind to a tube. Missile kinds
(ALM, ASM, AAM) track a live target by --target-id or a fixed
--target-point; MINE kinds resolve a pre-planned drop plan by
--drop-plan-list/--drop-plan-number.

Examples:
  weaponctl assign --tube 1 --kind ALM --target-id 42
  weaponctl assign --tube 2 --kind ASM --target-point 35.1,129.0,-20
  weaponctl assign --tube 3 --kind MINE --drop-plan-list 1 --drop-plan-number 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tube == 0 {
				return fmt.Errorf("--tube flag is required")
			}
			if kind == "" {
				return fmt.Errorf("--kind flag is required")
			}

			req := &rpc.AssignRequest{
				TubeNumber:     tube,
				Kind:           weapon.Kind(strings.ToUpper(kind)),
				SystemTargetID: targetID,
				DropPlanList:   dropList,
				DropPlanNumber: dropPlan,
			}

			if targetPoint != "" {
				pos, err := parseGeoPosition(targetPoint)
				if err != nil {
					return fmt.Errorf("--target-point: %w", err)
				}
				req.TargetPosition = &pos
			}

			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.Assign(ctx, req)
			if err != nil {
				return fmt.Errorf("assign failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("assign rejected: %s", reply.Error)
			}

			fmt.Printf("assigned tube %d\n", reply.TubeNumber)
			return nil
		},
	}

	cmd.Flags().IntVar(&tube, "tube", 0, "Tube number (required)")
	cmd.Flags().StringVar(&kind, "kind", "", "Weapon kind: ALM, ASM, AAM, WGT, MINE (required)")
	cmd.Flags().Uint32Var(&targetID, "target-id", 0, "System target id to track")
	cmd.Flags().StringVar(&targetPoint, "target-point", "", "Fixed target position as lat,lon,alt")
	cmd.Flags().IntVar(&dropList, "drop-plan-list", 0, "Mine drop plan list number")
	cmd.Flags().IntVar(&dropPlan, "drop-plan-number", 0, "Mine drop plan number within the list")

	return cmd
}

// parseGeoPosition parses a "lat,lon,alt" string.
func parseGeoPosition(s string) (shared.GeoPosition, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return shared.GeoPosition{}, fmt.Errorf("expected lat,lon,alt, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return shared.GeoPosition{}, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return shared.GeoPosition{}, fmt.Errorf("invalid lon: %w", err)
	}
	alt, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return shared.GeoPosition{}, fmt.Errorf("invalid alt: %w", err)
	}
	return shared.GeoPosition{Lat: lat, Lon: lon, Alt: alt}, nil
}
