package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codtech/libraryd/pkg/apidocs"
)

var (
	docsFormat string
	docsRemote bool
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the library API documentation",
	Long: `Show the library API documentation.

The text format lists every endpoint with its parameters and example bodies.
The json and yaml formats print the OpenAPI 3 document. With --remote the
document is fetched from the running server instead of generated locally.`,
	Example: `  libraryd docs
  libraryd docs --format yaml > openapi.yaml
  libraryd docs --format json --remote --server http://catalog:4280`,
	Args: cobra.NoArgs,
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringVarP(&docsFormat, "format", "f", "text", "Output format: text, json, yaml")
	docsCmd.Flags().BoolVar(&docsRemote, "remote", false, "Fetch the OpenAPI document from --server")
}

func runDocs(cmd *cobra.Command, _ []string) error {
	w := stdout(cmd)

	switch docsFormat {
	case "text":
		if docsRemote {
			return fmt.Errorf("--remote requires --format json or yaml")
		}
		return apidocs.WriteText(w, apidocs.Sections())
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", docsFormat)
	}

	var (
		data []byte
		err  error
	)
	if docsRemote {
		data, err = newClient().Docs(cmd.Context(), docsFormat == "yaml")
	} else {
		data, err = localDocs(docsFormat)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = fmt.Fprintln(w)
	}
	return err
}

func localDocs(format string) ([]byte, error) {
	doc, err := apidocs.OpenAPI(apidocs.Info{Version: Version})
	if err != nil {
		return nil, err
	}
	if format == "yaml" {
		return apidocs.YAML(doc)
	}
	return apidocs.JSON(doc)
}
