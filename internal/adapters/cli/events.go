package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewEventsCommand creates the events command, streaming fleet
// telemetry until the user interrupts or the daemon closes the stream.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Short:   "Stream state, launch, and engagement-plan events",
		Example: "  weaponctl events",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			stream, err := client.StreamEvents(context.Background(), &rpc.StreamEventsRequest{})
			if err != nil {
				return fmt.Errorf("stream events failed: %w", err)
			}

			for {
				e, err := stream.Recv()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("stream events: %w", err)
				}
				printEvent(e)
			}
		},
	}
	return cmd
}

func printEvent(e *rpc.FleetEvent) {
	switch e.Kind {
	case "state_changed":
		fmt.Printf("[%s tube %d] state %s -> %s\n", e.EventID, e.TubeNumber, e.FromState, e.ToState)
	case "launch_status":
		fmt.Printf("[%s tube %d] launched=%t\n", e.EventID, e.TubeNumber, e.Launched)
	case "plan_changed":
		fmt.Printf("[%s tube %d] plan valid=%t total_time=%.1fs trajectory_points=%d\n",
			e.EventID, e.TubeNumber, e.PlanValid, e.PlanTotalTime, e.PlanTrajLen)
	default:
		fmt.Printf("[%s tube %d] %s\n", e.EventID, e.TubeNumber, e.Kind)
	}
}
