package apidocs

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WriteText writes a plain-text API reference for sections to w.
func WriteText(w io.Writer, sections []Section) error {
	title := cases.Title(language.English)
	var b strings.Builder

	b.WriteString("Library API Documentation\n")
	b.WriteString("Use these endpoints to manage books, authors and categories.\n")

	for _, s := range sections {
		heading := title.String(s.Name) + " API"
		fmt.Fprintf(&b, "\n%s\n%s\n", heading, strings.Repeat("=", len(heading)))

		for _, ep := range s.Endpoints {
			fmt.Fprintf(&b, "\n%-6s %s\n", ep.Method, ep.Path)
			fmt.Fprintf(&b, "  %s\n", ep.Summary)

			if len(ep.Parameters) > 0 {
				b.WriteString("  Parameters:\n")
				for _, p := range ep.Parameters {
					req := ""
					if p.Required {
						req = ", required"
					}
					fmt.Fprintf(&b, "    %s (%s%s): %s\n", p.Name, p.In, req, p.Description)
				}
			}
			if ep.RequestBody != nil {
				if err := writeExample(&b, "Request body", ep.RequestBody); err != nil {
					return err
				}
			}
			if ep.ResponseBody != nil {
				if err := writeExample(&b, fmt.Sprintf("Response (%d)", ep.Status), ep.ResponseBody); err != nil {
					return err
				}
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeExample(b *strings.Builder, label string, body any) error {
	example, err := ExampleJSON(body)
	if err != nil {
		return fmt.Errorf("render %s example: %w", strings.ToLower(label), err)
	}
	fmt.Fprintf(b, "  %s:\n", label)
	for _, line := range strings.Split(example, "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
	return nil
}
