package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/codtech/libraryd/pkg/cli/internal/output"
	"github.com/codtech/libraryd/pkg/client"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

var (
	watchResource string
	watchCount    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream catalog changes from a running server",
	Long: `Print every insert, update, delete and reset as it happens.

With --json each event is printed as one JSON document. The stream ends on
Ctrl+C, when the server stops, or after --count events.`,
	Example: `  libraryd watch
  libraryd watch --resource books --json`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchResource, "resource", "r", "", "Only show events for books, authors or categories")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "Stop after this many events (0 = unlimited)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchResource != "" {
		if _, ok := library.ParseKind(watchResource); !ok {
			return fmt.Errorf("unknown resource %q (want books, authors or categories)", watchResource)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w := stdout(cmd)
	seen := 0
	return newClient().Watch(ctx, watchResource, func(ev store.Event) error {
		if jsonOutput {
			if err := output.JSON(w, ev); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(w, formatEvent(ev))
		}

		seen++
		if watchCount > 0 && seen >= watchCount {
			return client.ErrStopWatching
		}
		return nil
	})
}

// formatEvent renders ev as one line of text.
func formatEvent(ev store.Event) string {
	ts := ev.At.Local().Format("15:04:05")
	if ev.Op == store.OpReset {
		return fmt.Sprintf("%s  %-6s %s (%d records)", ts, ev.Op, ev.Resource, ev.Count)
	}
	return fmt.Sprintf("%s  %-6s %s/%s", ts, ev.Op, ev.Resource, ev.ID)
}
