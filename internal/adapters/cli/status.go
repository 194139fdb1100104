package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kwonjooeun/weaponctl/pkg/rpc"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	var tube int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tube assignment and weapon state",
		Long: `Report the current assignment, kind, and control state for one
tube or, with --tube omitted or 0, every tube in the fleet.

Example:
  weaponctl status
  weaponctl status --tube 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, client, err := NewDaemonClient(daemonAddr)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			reply, err := client.Status(ctx, &rpc.StatusRequest{TubeNumber: tube})
			if err != nil {
				return fmt.Errorf("status failed: %w", err)
			}
			if reply.Error != "" {
				return fmt.Errorf("status rejected: %s", reply.Error)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "TUBE\tASSIGNED\tKIND\tSTATE\tLAUNCHED\tFIRE_SOLUTION")
			for _, t := range reply.Tubes {
				fmt.Fprintf(w, "%d\t%t\t%s\t%s\t%t\t%t\n",
					t.TubeNumber, t.Assigned, t.Kind, t.State, t.Launched, t.FireSolutionReady)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&tube, "tube", 0, "Tube number (0 = all tubes)")
	return cmd
}
