package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/codtech/libraryd/pkg/apidocs"
	"github.com/codtech/libraryd/pkg/cli/internal/parse"
	"github.com/codtech/libraryd/pkg/client"
	"github.com/codtech/libraryd/pkg/library"
)

// Shell menu entries.
const (
	menuBooks      = "books"
	menuAddBook    = "add-book"
	menuAuthors    = "authors"
	menuCategories = "categories"
	menuDocs       = "docs"
	menuQuit       = "quit"
)

// Actions offered after a listing.
const (
	actionAdd    = "add"
	actionEdit   = "edit"
	actionToggle = "toggle"
	actionDelete = "delete"
	actionBack   = "back"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse and edit the catalog interactively",
	Long: `Open an interactive session against a running server.

The menu offers Books, Add Book, Authors, Categories and API Documentation.
Each listing can be searched, and records can be added, edited or deleted
from forms. Press Ctrl+C in a form to go back, or in the menu to leave.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func menuOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Books", menuBooks),
		huh.NewOption("Add Book", menuAddBook),
		huh.NewOption("Authors", menuAuthors),
		huh.NewOption("Categories", menuCategories),
		huh.NewOption("API Documentation", menuDocs),
		huh.NewOption("Quit", menuQuit),
	}
}

type shell struct {
	ctx context.Context
	c   *client.Client
	w   io.Writer
}

func runShell(cmd *cobra.Command, _ []string) error {
	s := &shell{ctx: cmd.Context(), c: newClient(), w: stdout(cmd)}
	if _, err := s.c.Health(s.ctx); err != nil {
		return err
	}

	for {
		choice := menuBooks
		err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Library Management").
				Description(s.c.BaseURL()).
				Options(menuOptions()...).
				Value(&choice),
		)).Run()
		if errors.Is(err, huh.ErrUserAborted) || choice == menuQuit {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.open(choice); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(s.w, formatError(err))
		}
	}
}

func (s *shell) open(choice string) error {
	switch choice {
	case menuBooks:
		return s.books()
	case menuAddBook:
		return s.addBook()
	case menuAuthors:
		return browse(s, authorTab(s.c))
	case menuCategories:
		return browse(s, categoryTab(s.c))
	case menuDocs:
		return apidocs.WriteText(s.w, apidocs.Sections())
	}
	return fmt.Errorf("unknown menu entry %q", choice)
}

// =============================================================================
// Books
// =============================================================================

func (s *shell) books() error {
	books := s.c.Books()
	for {
		list, err := s.search(library.KindBooks)
		if err != nil {
			return err
		}
		records, err := books.List(s.ctx, list)
		if err != nil {
			return err
		}
		s.show(library.KindBooks, len(records), func() {
			writeTable(s.w, []string{"id", "title", "author", "isbn", "category", "year", "available"}, records, bookRow)
		})

		action, err := chooseAction(len(records) > 0, actionToggle)
		if err != nil || action == actionBack {
			return err
		}
		if action == actionAdd {
			if err := s.addBook(); err != nil {
				return err
			}
			continue
		}

		book, err := pick(records, bookLabel)
		if err != nil {
			return err
		}
		switch action {
		case actionEdit:
			ed := newBookEditor(book)
			if err := ed.form("Edit Book").Run(); err != nil {
				return err
			}
			updated, err := ed.commit()
			if err != nil {
				return err
			}
			if _, err := books.Update(s.ctx, book.ID, updated); err != nil {
				return err
			}
			fmt.Fprintf(s.w, "Updated book %s\n", book.ID)
		case actionToggle:
			book.Available = !book.Available
			if _, err := books.Update(s.ctx, book.ID, book); err != nil {
				return err
			}
			fmt.Fprintf(s.w, "%s is now %s\n", book.Title, availability(book.Available))
		case actionDelete:
			if err := s.confirmDelete(bookLabel(book), func() (string, error) {
				resp, err := books.Delete(s.ctx, book.ID)
				if err != nil {
					return "", err
				}
				return resp.Message, nil
			}); err != nil {
				return err
			}
		}
	}
}

func (s *shell) addBook() error {
	ed := newBookEditor(library.Book{Available: true})
	if err := ed.form("Add Book").Run(); err != nil {
		return err
	}
	book, err := ed.commit()
	if err != nil {
		return err
	}
	created, err := s.c.Books().Create(s.ctx, book)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.w, "Created book %s: %s\n", created.ID, created.Title)
	return nil
}

// bookEditor holds the form values of a book being added or edited.
type bookEditor struct {
	id        string
	title     string
	author    string
	isbn      string
	category  string
	year      string
	available bool
}

func newBookEditor(b library.Book) *bookEditor {
	ed := &bookEditor{
		id:        b.ID,
		title:     b.Title,
		author:    b.Author,
		isbn:      b.ISBN,
		category:  b.Category,
		available: b.Available,
	}
	if b.PublishedYear != 0 {
		ed.year = strconv.Itoa(b.PublishedYear)
	}
	return ed
}

func (ed *bookEditor) form(title string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title+": Title").Value(&ed.title).Validate(parse.Required("title")),
		huh.NewInput().Title("Author").Value(&ed.author).Validate(parse.Required("author")),
		huh.NewInput().Title("ISBN").Value(&ed.isbn).Validate(parse.Required("isbn")),
		huh.NewInput().Title("Category").Value(&ed.category).Validate(parse.Required("category")),
		huh.NewInput().Title("Published Year").Placeholder("1965").Value(&ed.year).Validate(func(s string) error {
			_, err := parse.Year(s)
			return err
		}),
		huh.NewConfirm().Title("Available").Affirmative("Yes").Negative("No").Value(&ed.available),
	))
}

// commit converts the form values into a book.
func (ed *bookEditor) commit() (library.Book, error) {
	year, err := parse.Year(ed.year)
	if err != nil {
		return library.Book{}, err
	}
	return library.Book{
		ID:            ed.id,
		Title:         ed.title,
		Author:        ed.author,
		ISBN:          ed.isbn,
		Category:      ed.category,
		PublishedYear: year,
		Available:     ed.available,
	}, nil
}

func bookLabel(b library.Book) string {
	return fmt.Sprintf("%s by %s (%d)", b.Title, b.Author, b.PublishedYear)
}

func availability(v bool) string {
	if v {
		return "available"
	}
	return "unavailable"
}

// =============================================================================
// Authors and categories
// =============================================================================

// namedTab describes a listing of records that have a name and one text field.
type namedTab[T any] struct {
	kind    library.Kind
	coll    *client.Collection[T]
	columns []string
	row     func(T) []string
	// textLabel names the second field, e.g. "Bio".
	textLabel string
	get       func(T) (id, name, text string)
	build     func(id, name, text string) T
}

func authorTab(c *client.Client) namedTab[library.Author] {
	return namedTab[library.Author]{
		kind:      library.KindAuthors,
		coll:      c.Authors(),
		columns:   []string{"id", "name", "bio"},
		row:       authorRow,
		textLabel: "Bio",
		get:       func(a library.Author) (string, string, string) { return a.ID, a.Name, a.Bio },
		build: func(id, name, text string) library.Author {
			return library.Author{ID: id, Name: name, Bio: text}
		},
	}
}

func categoryTab(c *client.Client) namedTab[library.Category] {
	return namedTab[library.Category]{
		kind:      library.KindCategories,
		coll:      c.Categories(),
		columns:   []string{"id", "name", "description"},
		row:       categoryRow,
		textLabel: "Description",
		get:       func(c library.Category) (string, string, string) { return c.ID, c.Name, c.Description },
		build: func(id, name, text string) library.Category {
			return library.Category{ID: id, Name: name, Description: text}
		},
	}
}

func browse[T any](s *shell, tab namedTab[T]) error {
	noun := tab.kind.Singular()
	label := func(rec T) string {
		_, name, _ := tab.get(rec)
		return name
	}

	for {
		opts, err := s.search(tab.kind)
		if err != nil {
			return err
		}
		records, err := tab.coll.List(s.ctx, opts)
		if err != nil {
			return err
		}
		s.show(tab.kind, len(records), func() {
			writeTable(s.w, tab.columns, records, tab.row)
		})

		action, err := chooseAction(len(records) > 0)
		if err != nil || action == actionBack {
			return err
		}

		switch action {
		case actionAdd:
			var name, text string
			if err := namedForm("Add "+noun, tab.textLabel, &name, &text).Run(); err != nil {
				return err
			}
			created, err := tab.coll.Create(s.ctx, tab.build("", name, text))
			if err != nil {
				return err
			}
			id, _, _ := tab.get(created)
			fmt.Fprintf(s.w, "Created %s %s: %s\n", noun, id, name)
		case actionEdit:
			rec, err := pick(records, label)
			if err != nil {
				return err
			}
			id, name, text := tab.get(rec)
			if err := namedForm("Edit "+noun, tab.textLabel, &name, &text).Run(); err != nil {
				return err
			}
			if _, err := tab.coll.Update(s.ctx, id, tab.build(id, name, text)); err != nil {
				return err
			}
			fmt.Fprintf(s.w, "Updated %s %s\n", noun, id)
		case actionDelete:
			rec, err := pick(records, label)
			if err != nil {
				return err
			}
			id, _, _ := tab.get(rec)
			if err := s.confirmDelete(label(rec), func() (string, error) {
				resp, err := tab.coll.Delete(s.ctx, id)
				if err != nil {
					return "", err
				}
				return resp.Message, nil
			}); err != nil {
				return err
			}
		}
	}
}

func namedForm(title, textLabel string, name, text *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title+": Name").Value(name).Validate(parse.Required("name")),
		huh.NewText().Title(textLabel).Value(text),
	))
}

// =============================================================================
// Shared prompts
// =============================================================================

// search asks for an optional search query.
func (s *shell) search(kind library.Kind) (client.ListOptions, error) {
	var query string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Search %s", kind)).
			Description("Leave empty to list everything.").
			Value(&query),
	)).Run()
	return client.ListOptions{Query: query}, err
}

func (s *shell) show(kind library.Kind, n int, table func()) {
	if n == 0 {
		fmt.Fprintf(s.w, "No %s found.\n", kind)
		return
	}
	table()
}

func (s *shell) confirmDelete(label string, del func() (string, error)) error {
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(fmt.Sprintf("Delete %s?", label)).Affirmative("Delete").Negative("Cancel").Value(&ok),
	)).Run()
	if err != nil || !ok {
		return err
	}
	msg, err := del()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.w, msg)
	return nil
}

// actionOptions lists the actions for a listing; record actions need records.
func actionOptions(haveRecords bool, extra ...string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Add new", actionAdd)}
	if haveRecords {
		opts = append(opts, huh.NewOption("Edit", actionEdit))
		for _, e := range extra {
			if e == actionToggle {
				opts = append(opts, huh.NewOption("Toggle availability", actionToggle))
			}
		}
		opts = append(opts, huh.NewOption("Delete", actionDelete))
	}
	return append(opts, huh.NewOption("Back to menu", actionBack))
}

func chooseAction(haveRecords bool, extra ...string) (string, error) {
	action := actionBack
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("What next?").Options(actionOptions(haveRecords, extra...)...).Value(&action),
	)).Run()
	return action, err
}

// pick asks the user to choose one of records.
func pick[T any](records []T, label func(T) string) (T, error) {
	idx := 0
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title("Choose").Options(recordOptions(records, label)...).Value(&idx),
	)).Run()
	if err != nil {
		var zero T
		return zero, err
	}
	return records[idx], nil
}

func recordOptions[T any](records []T, label func(T) string) []huh.Option[int] {
	opts := make([]huh.Option[int], len(records))
	for i, r := range records {
		opts[i] = huh.NewOption(label(r), i)
	}
	return opts
}
