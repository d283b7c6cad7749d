package cli

import (
	"io"

	"github.com/codtech/libraryd/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to w. textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func()) error {
	if jsonOutput {
		return output.JSON(w, data)
	}
	textFn()
	return nil
}

// printSelected writes the values matched by a JSONPath expression, one
// JSON document per match.
func printSelected(w io.Writer, data any, path string) error {
	matches, err := output.Select(data, path)
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(w, matches)
	}
	for _, m := range matches {
		if s, ok := m.(string); ok {
			if _, err := io.WriteString(w, s+"\n"); err != nil {
				return err
			}
			continue
		}
		if err := output.JSON(w, m); err != nil {
			return err
		}
	}
	return nil
}
