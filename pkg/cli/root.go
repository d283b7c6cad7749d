package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codtech/libraryd/pkg/client"
)

// EnvServer overrides the default --server value.
const EnvServer = "LIBRARYD_SERVER"

var (
	// Persistent flags available to all subcommands
	serverURL  string
	jsonOutput bool
	configFile string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "libraryd",
	Short: "libraryd is an in-memory library catalog service",
	Long: `libraryd keeps a catalog of books, authors and categories in memory and
serves it over a REST API.

Run 'libraryd serve' to start the server, then manage the catalog with the
books, authors and categories commands, or interactively with 'libraryd shell'.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	os.Exit(Main())
}

// Main runs the root command with os.Args and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), formatError(err))
		return 1
	}
	return 0
}

func init() {
	defaultServer := os.Getenv(EnvServer)
	if defaultServer == "" {
		defaultServer = client.DefaultURL
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "libraryd API base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the libraryd YAML configuration file")
}

// newClient returns an API client for --server.
func newClient() *client.Client {
	return client.New(serverURL)
}

// formatError returns a user-friendly message for err.
func formatError(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return "Error: " + err.Error()
	}

	if apiErr.ErrorCode == "connection_error" {
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Start the server: libraryd serve
  • Check the address with --server or %s`, apiErr.Message, EnvServer)
	}

	msg := "Error: " + apiErr.Message
	if apiErr.Hint != "" {
		msg += "\nHint: " + apiErr.Hint
	}
	return msg
}

// stdout returns the command's output stream.
func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
