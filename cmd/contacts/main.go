package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/contacts"
	"github.com/smileynet/contacts/internal/addressbook"
	"github.com/smileynet/contacts/internal/browse"
	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/menu"
	"github.com/smileynet/contacts/internal/state"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	File  string `help:"Contacts file (overrides config and CONTACTS_FILE)." short:"f" placeholder:"PATH"`
	Debug bool   `help:"Log diagnostics to stderr."`
}

// CLI is the top-level command structure for contacts.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Menu    MenuCmd          `cmd:"" default:"1" help:"Open the numbered contact menu."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	Search  SearchCmd        `cmd:"" help:"Find a contact by name (case-insensitive)."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact by name (case-insensitive)."`
	Browse  BrowseCmd        `cmd:"" help:"Browse contacts in an interactive terminal UI."`
	Seed    SeedCmd          `cmd:"" help:"Add the sample contacts."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		".contacts/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a no-op logger unless debug output is requested.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// session is a loaded book plus the resources that must be released with it.
type session struct {
	cfg    *config.Config
	book   *addressbook.Book
	logger *zap.Logger
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// open resolves config, builds the logger, and loads the book.
// Status lines from the book are written to status.
func (g *Globals) open(status io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if g.File != "" {
		cfg.Store.Path = g.File
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(g.Debug)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	store := state.NewFileStore(cfg.Store.Path)
	logger.Debug("opening contacts", zap.String("path", store.Path()))

	book := addressbook.New(store,
		addressbook.WithOutput(status),
		addressbook.WithLogger(logger),
	)
	book.Load()
	return &session{cfg: cfg, book: book, logger: logger}, nil
}

// MenuCmd runs the numbered interactive menu.
type MenuCmd struct{}

// Run executes the menu command.
func (m *MenuCmd) Run(g *Globals) error {
	s, err := g.open(os.Stdout)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	defer s.close()

	menu.New(s.book, os.Stdin, os.Stdout).Run()
	return nil
}

// AddCmd adds a single contact and saves the book.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number."`
	Email string `arg:"" help:"Email address."`
}

// Run executes the add command.
func (a *AddCmd) Run(g *Globals) error {
	c, err := a.contact()
	if err != nil {
		return err
	}
	s, err := g.open(os.Stderr)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer s.close()

	a.run(s.book, c)
	return nil
}

// contact builds and validates the contact from the arguments.
func (a *AddCmd) contact() (contact.Contact, error) {
	c := contact.Contact{Name: a.Name, Phone: a.Phone, Email: a.Email}
	if err := c.Validate(); err != nil {
		return contact.Contact{}, fmt.Errorf("add: %w", err)
	}
	return c, nil
}

// run appends c and saves. Save failures are reported by the book only.
func (a *AddCmd) run(book bookWriter, c contact.Contact) {
	book.Add(c)
	_ = book.Save()
}

// bookWriter is the subset of the book the mutating commands need.
type bookWriter interface {
	Add(c contact.Contact)
	Delete(name string) bool
	Save() error
}

// bookReader is the subset of the book the read-only commands need.
type bookReader interface {
	Find(name string) (contact.Contact, bool)
	Render(w io.Writer)
}

// ListCmd renders every contact.
type ListCmd struct{}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals) error {
	s, err := g.open(os.Stderr)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer s.close()

	s.book.Render(os.Stdout)
	return nil
}

// SearchCmd prints the first contact matching a name.
type SearchCmd struct {
	Name string `arg:"" help:"Name to search for."`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *Globals) error {
	s, err := g.open(os.Stderr)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	defer s.close()

	return c.run(os.Stdout, s.book)
}

func (c *SearchCmd) run(w io.Writer, book bookReader) error {
	found, ok := book.Find(c.Name)
	if !ok {
		return fmt.Errorf("search: %w: %q", addressbook.ErrNotFound, c.Name)
	}
	_, _ = fmt.Fprintln(w, found)
	return nil
}

// DeleteCmd removes the first contact matching a name and saves the book.
type DeleteCmd struct {
	Name string `arg:"" help:"Name to delete."`
}

// Run executes the delete command.
func (d *DeleteCmd) Run(g *Globals) error {
	s, err := g.open(os.Stderr)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer s.close()

	return d.run(s.book)
}

// run deletes and saves. The book is only rewritten when something was removed.
func (d *DeleteCmd) run(book bookWriter) error {
	if !book.Delete(d.Name) {
		return fmt.Errorf("delete: %w: %q", addressbook.ErrNotFound, d.Name)
	}
	_ = book.Save()
	return nil
}

// SeedCmd appends the sample contacts whose names are not already present.
type SeedCmd struct {
	Dir string `help:"Directory with a contacts.json overriding the built-in samples." default:".contacts/samples" placeholder:"DIR"`
}

// Run executes the seed command.
func (c *SeedCmd) Run(g *Globals) error {
	samples, err := contacts.LoadSamples(contacts.OverlayFS(c.Dir, contacts.Samples))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	s, err := g.open(os.Stderr)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer s.close()

	c.run(os.Stdout, s.book, samples)
	return nil
}

// seedBook is the subset of the book the seed command needs.
type seedBook interface {
	Add(c contact.Contact)
	List() []contact.Contact
	Save() error
}

func (c *SeedCmd) run(w io.Writer, book seedBook, samples []contact.Contact) {
	added := 0
	for _, sample := range samples {
		if hasName(book.List(), sample.Name) {
			continue
		}
		book.Add(sample)
		added++
	}
	if added == 0 {
		_, _ = fmt.Fprintln(w, "All sample contacts already present.")
		return
	}
	_ = book.Save()
	_, _ = fmt.Fprintf(w, "Seeded %d sample contacts.\n", added)
}

// hasName reports whether any contact in list matches name, ignoring case.
func hasName(list []contact.Contact, name string) bool {
	for _, c := range list {
		if c.Matches(name) {
			return true
		}
	}
	return false
}

// BrowseCmd opens the Bubble Tea contact browser.
type BrowseCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the book and launches the browser.
func (b *BrowseCmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("browse: requires a terminal (TTY); use list instead")
	}

	// Book status lines would corrupt the alt screen; the model reports instead.
	s, err := g.open(io.Discard)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer s.close()

	if s.cfg.Display.NoTUI {
		return fmt.Errorf("browse: disabled by display.no_tui; use list instead")
	}

	model := browse.NewModel(s.book, browse.WithConfirmDelete(s.cfg.Display.ConfirmDelete))
	return b.run(tea.NewProgram(model, tea.WithAltScreen()))
}

func (b *BrowseCmd) run(p teaRunner) error {
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess  = 0
	exitNotFound = 1
	exitSetup    = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, addressbook.ErrNotFound) {
		return exitNotFound
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("A single-user address book stored as a JSON file."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
