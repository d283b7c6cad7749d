package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/codtech/libraryd/pkg/cli/internal/output"
	"github.com/codtech/libraryd/pkg/cli/internal/parse"
	"github.com/codtech/libraryd/pkg/client"
	"github.com/codtech/libraryd/pkg/library"
)

// recordFlags binds the editable fields of T to command flags.
type recordFlags[T any] interface {
	register(fs *pflag.FlagSet)
	// build returns a record from every flag value, defaults included.
	build() T
	// apply copies the flags set on fs onto rec and reports whether any were.
	apply(fs *pflag.FlagSet, rec *T) bool
}

// resourceDef describes the commands of one catalog kind.
type resourceDef[T any] struct {
	kind       library.Kind
	collection func(*client.Client) *client.Collection[T]
	columns    []string
	row        func(T) []string
	flags      recordFlags[T]
	addExample string
}

// listFlags holds the list command's flag values.
type listFlags struct {
	query  string
	fields string
	filter string
	sel    string
}

// newResourceCmd builds the list, get, add, update and delete commands for a kind.
func newResourceCmd[T any](def resourceDef[T]) *cobra.Command {
	name := string(def.kind)
	noun := strings.ToLower(def.kind.Singular())

	parent := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", name),
		Long: fmt.Sprintf(`Manage %s in the catalog of a running server.

Examples:
  libraryd %s list
  libraryd %s list --query tolkien
  libraryd %s get 1
  libraryd %s delete 1`, name, name, name, name, name),
	}

	var lf listFlags
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "search"},
		Short:   fmt.Sprintf("List or search %s", name),
		Long: fmt.Sprintf(`List %s in insertion order.

--query keeps the %s where any searched field contains the text, ignoring
case. --fields narrows the searched fields. --filter keeps the %s for which
a boolean expression holds. --select prints the values a JSONPath expression
picks out of the result.`, name, name, name),
		Example: fmt.Sprintf(`  libraryd %s list --query the
  libraryd %s list --select '$[*].id'`, name, name),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := def.collection(newClient()).List(cmd.Context(), client.ListOptions{
				Query:  lf.query,
				Fields: parse.SplitTrim(lf.fields, ","),
				Filter: lf.filter,
			})
			if err != nil {
				return err
			}

			w := stdout(cmd)
			if lf.sel != "" {
				return printSelected(w, records, lf.sel)
			}
			return printResult(w, records, func() {
				if len(records) == 0 {
					fmt.Fprintf(w, "No %s found.\n", name)
					return
				}
				writeTable(w, def.columns, records, def.row)
			})
		},
	}
	listCmd.Flags().StringVarP(&lf.query, "query", "q", "", "Case-insensitive text to search for")
	listCmd.Flags().StringVar(&lf.fields, "fields", "", "Comma-separated fields to search (default: server defaults)")
	listCmd.Flags().StringVar(&lf.filter, "filter", "", "Boolean filter expression, e.g. 'publishedYear < 1950'")
	listCmd.Flags().StringVar(&lf.sel, "select", "", "JSONPath expression applied to the result")

	var getSelect string
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := def.collection(newClient()).Get(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, def.kind, args[0])
			}

			w := stdout(cmd)
			if getSelect != "" {
				return printSelected(w, rec, getSelect)
			}
			return printResult(w, rec, func() {
				writeDetail(w, def.columns, def.row(rec))
			})
		},
	}
	getCmd.Flags().StringVar(&getSelect, "select", "", "JSONPath expression applied to the result")

	addCmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"create"},
		Short:   fmt.Sprintf("Add a %s", noun),
		Example: def.addExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := def.collection(newClient()).Create(cmd.Context(), def.flags.build())
			if err != nil {
				return err
			}
			w := stdout(cmd)
			return printResult(w, rec, func() {
				row := def.row(rec)
				fmt.Fprintf(w, "Created %s %s: %s\n", noun, row[0], row[1])
			})
		},
	}
	def.flags.register(addCmd.Flags())

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s", noun),
		Long: fmt.Sprintf(`Update a %s. Only the flags given are changed; the other fields keep
their current values.`, noun),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll := def.collection(newClient())
			rec, err := coll.Get(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, def.kind, args[0])
			}
			if !def.flags.apply(cmd.Flags(), &rec) {
				return errors.New("nothing to update: set at least one field flag")
			}

			updated, err := coll.Update(cmd.Context(), args[0], rec)
			if err != nil {
				return notFound(err, def.kind, args[0])
			}
			w := stdout(cmd)
			return printResult(w, updated, func() {
				fmt.Fprintf(w, "Updated %s %s\n", noun, args[0])
			})
		},
	}
	def.flags.register(updateCmd.Flags())

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", noun),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := def.collection(newClient()).Delete(cmd.Context(), args[0])
			if err != nil {
				return notFound(err, def.kind, args[0])
			}
			w := stdout(cmd)
			return printResult(w, resp, func() {
				fmt.Fprintln(w, resp.Message)
			})
		},
	}

	parent.AddCommand(listCmd, getCmd, addCmd, updateCmd, deleteCmd)
	return parent
}

// notFound rewrites a 404 into a message naming the record.
func notFound(err error, kind library.Kind, id string) error {
	if client.IsNotFound(err) {
		return fmt.Errorf(`%s not found: %s

Suggestions:
  • List the ids with: libraryd %s list`, strings.ToLower(kind.Singular()), id, kind)
	}
	return err
}

func writeTable[T any](w io.Writer, columns []string, records []T, row func(T) []string) {
	tw := output.Table(w)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, r := range records {
		fmt.Fprintln(tw, strings.Join(row(r), "\t"))
	}
	_ = tw.Flush()
}

func writeDetail(w io.Writer, columns, values []string) {
	tw := output.Table(w)
	for i, c := range columns {
		fmt.Fprintf(tw, "%s:\t%s\n", c, values[i])
	}
	_ = tw.Flush()
}

// =============================================================================
// Books
// =============================================================================

type bookFlags struct {
	title     string
	author    string
	isbn      string
	category  string
	year      int
	available bool
}

func (f *bookFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Book title")
	fs.StringVar(&f.author, "author", "", "Author name")
	fs.StringVar(&f.isbn, "isbn", "", "ISBN")
	fs.StringVar(&f.category, "category", "", "Category name")
	fs.IntVar(&f.year, "year", 0, "Publication year")
	fs.BoolVar(&f.available, "available", true, "Whether the book is available")
}

func (f *bookFlags) build() library.Book {
	return library.Book{
		Title:         f.title,
		Author:        f.author,
		ISBN:          f.isbn,
		Category:      f.category,
		PublishedYear: f.year,
		Available:     f.available,
	}
}

func (f *bookFlags) apply(fs *pflag.FlagSet, b *library.Book) bool {
	changed := false
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
			changed = true
		}
	}
	set("title", func() { b.Title = f.title })
	set("author", func() { b.Author = f.author })
	set("isbn", func() { b.ISBN = f.isbn })
	set("category", func() { b.Category = f.category })
	set("year", func() { b.PublishedYear = f.year })
	set("available", func() { b.Available = f.available })
	return changed
}

func bookRow(b library.Book) []string {
	return []string{b.ID, b.Title, b.Author, b.ISBN, b.Category, strconv.Itoa(b.PublishedYear), yesNo(b.Available)}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// =============================================================================
// Authors
// =============================================================================

type authorFlags struct {
	name string
	bio  string
}

func (f *authorFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Author name")
	fs.StringVar(&f.bio, "bio", "", "Short biography")
}

func (f *authorFlags) build() library.Author {
	return library.Author{Name: f.name, Bio: f.bio}
}

func (f *authorFlags) apply(fs *pflag.FlagSet, a *library.Author) bool {
	changed := false
	if fs.Changed("name") {
		a.Name, changed = f.name, true
	}
	if fs.Changed("bio") {
		a.Bio, changed = f.bio, true
	}
	return changed
}

func authorRow(a library.Author) []string {
	return []string{a.ID, a.Name, a.Bio}
}

// =============================================================================
// Categories
// =============================================================================

type categoryFlags struct {
	name        string
	description string
}

func (f *categoryFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Category name")
	fs.StringVar(&f.description, "description", "", "Category description")
}

func (f *categoryFlags) build() library.Category {
	return library.Category{Name: f.name, Description: f.description}
}

func (f *categoryFlags) apply(fs *pflag.FlagSet, c *library.Category) bool {
	changed := false
	if fs.Changed("name") {
		c.Name, changed = f.name, true
	}
	if fs.Changed("description") {
		c.Description, changed = f.description, true
	}
	return changed
}

func categoryRow(c library.Category) []string {
	return []string{c.ID, c.Name, c.Description}
}

func init() {
	rootCmd.AddCommand(
		newResourceCmd(resourceDef[library.Book]{
			kind:       library.KindBooks,
			collection: (*client.Client).Books,
			columns:    []string{"id", "title", "author", "isbn", "category", "year", "available"},
			row:        bookRow,
			flags:      &bookFlags{},
			addExample: `  libraryd books add --title Dune --author "Frank Herbert" --isbn 9780441172719 \
    --category "Science Fiction" --year 1965`,
		}),
		newResourceCmd(resourceDef[library.Author]{
			kind:       library.KindAuthors,
			collection: (*client.Client).Authors,
			columns:    []string{"id", "name", "bio"},
			row:        authorRow,
			flags:      &authorFlags{},
			addExample: `  libraryd authors add --name "Frank Herbert" --bio "American science fiction author"`,
		}),
		newResourceCmd(resourceDef[library.Category]{
			kind:       library.KindCategories,
			collection: (*client.Client).Categories,
			columns:    []string{"id", "name", "description"},
			row:        categoryRow,
			flags:      &categoryFlags{},
			addExample: `  libraryd categories add --name "Science Fiction" --description "Speculative fiction"`,
		}),
	)
}
