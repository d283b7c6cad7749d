package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codtech/libraryd/pkg/cli/internal/output"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore every collection to its seed data",
	Long: `Restore books, authors and categories to the seed data the server
started with. Records added since are removed; ids already handed out are
not reissued.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := newClient().Reset(cmd.Context())
		if err != nil {
			return err
		}
		w := stdout(cmd)
		return printResult(w, resp, func() {
			fmt.Fprintln(w, resp.Message)
			fmt.Fprintf(w, "  books: %d, authors: %d, categories: %d\n",
				resp.Counts.Books, resp.Counts.Authors, resp.Counts.Categories)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts and mutation counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stats, err := newClient().Stats(cmd.Context())
		if err != nil {
			return err
		}
		w := stdout(cmd)
		return printResult(w, stats, func() {
			tw := output.Table(w)
			fmt.Fprintf(tw, "Books:\t%d\n", stats.Counts.Books)
			fmt.Fprintf(tw, "Authors:\t%d\n", stats.Counts.Authors)
			fmt.Fprintf(tw, "Categories:\t%d\n", stats.Counts.Categories)
			fmt.Fprintf(tw, "Inserts:\t%d\n", stats.Operations.InsertCount)
			fmt.Fprintf(tw, "Updates:\t%d\n", stats.Operations.UpdateCount)
			fmt.Fprintf(tw, "Deletes:\t%d\n", stats.Operations.DeleteCount)
			fmt.Fprintf(tw, "Resets:\t%d\n", stats.Operations.ResetCount)
			fmt.Fprintf(tw, "Watchers:\t%d\n", stats.Events.Subscribers)
			fmt.Fprintf(tw, "Uptime:\t%ds\n", stats.Uptime)
			_ = tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd, statsCmd)
}
