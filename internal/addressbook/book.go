// Package addressbook holds the in-memory contact list together with its
// persisted JSON mirror, reporting each outcome as a status line.
package addressbook

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/state"
)

// ErrNotFound indicates no contact matched the requested name.
var ErrNotFound = errors.New("addressbook: contact not found")

// Store persists a full contact list.
// Defined here (the consumer) per Go convention: accept interfaces, return structs.
type Store interface {
	// Load returns the persisted list, or found=false if nothing is persisted yet.
	Load() ([]contact.Contact, bool, error)
	// Save overwrites the persisted list.
	Save(list []contact.Contact) error
}

// Compile-time check: state.FileStore satisfies Store.
var _ Store = (*state.FileStore)(nil)

// Book is the contact store: an ordered contact list loaded from and
// written back to a Store. Status lines go to the configured writer.
type Book struct {
	store  Store
	list   *contact.List
	out    io.Writer
	logger *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// New creates an empty Book backed by store. Call Load to populate it.
func New(store Store, opts ...Option) *Book {
	b := &Book{
		store:  store,
		list:   &contact.List{},
		out:    io.Discard,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithOutput sets the writer that receives status lines.
func WithOutput(w io.Writer) Option {
	return func(b *Book) { b.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// Load replaces the in-memory list with the persisted one.
// A missing file starts an empty book. An unreadable or malformed file is
// reported and also leaves the book empty; the error is not propagated.
func (b *Book) Load() {
	b.list = &contact.List{}

	list, found, err := b.store.Load()
	switch {
	case err != nil:
		b.logger.Warn("load failed", zap.Error(err))
		if errors.Is(err, state.ErrMalformed) {
			b.printf("Error: Invalid JSON file.\n")
		} else {
			b.printf("Error loading contacts: %v\n", err)
		}
	case !found:
		b.logger.Debug("no contacts file")
		b.printf("No existing contacts found. Starting fresh.\n")
	default:
		b.list = contact.NewList(list...)
		b.logger.Debug("contacts loaded", zap.Int("count", b.list.Len()))
		b.printf("Loaded %d contacts.\n", b.list.Len())
	}
}

// Save writes the full list to the store, overwriting what was there.
// Failures are reported; the in-memory list is kept either way. The error
// is returned for callers that need to know, but may be ignored.
func (b *Book) Save() error {
	if err := b.store.Save(b.list.All()); err != nil {
		b.logger.Warn("save failed", zap.Error(err))
		b.printf("Error saving contacts: %v\n", err)
		return fmt.Errorf("addressbook: save: %w", err)
	}
	b.logger.Debug("contacts saved", zap.Int("count", b.list.Len()))
	b.printf("Contacts saved successfully.\n")
	return nil
}

// Add appends c to the end of the list. It does not save.
func (b *Book) Add(c contact.Contact) {
	b.list.Add(c)
	b.logger.Debug("contact added", zap.String("name", c.Name))
	b.printf("Contact '%s' added.\n", c.Name)
}

// Find returns the first contact whose name matches, ignoring case.
func (b *Book) Find(name string) (contact.Contact, bool) {
	c, ok := b.list.Find(name)
	if ok {
		b.printf("Contact '%s' found.\n", name)
	} else {
		b.printf("Contact '%s' not found.\n", name)
	}
	return c, ok
}

// Delete removes the first contact whose name matches, ignoring case.
// It reports whether a contact was removed. It does not save.
func (b *Book) Delete(name string) bool {
	if !b.list.Delete(name) {
		b.printf("Contact '%s' not found.\n", name)
		return false
	}
	b.logger.Debug("contact deleted", zap.String("name", name))
	b.printf("Contact '%s' found.\n", name)
	b.printf("Contact '%s' deleted.\n", name)
	return true
}

// Remove deletes the exact record c, leaving other contacts with the same
// name in place. It does not save.
func (b *Book) Remove(c contact.Contact) bool {
	if !b.list.Remove(c) {
		b.printf("Contact '%s' not found.\n", c.Name)
		return false
	}
	b.logger.Debug("contact removed", zap.String("name", c.Name))
	b.printf("Contact '%s' deleted.\n", c.Name)
	return true
}

// List returns the contacts in display order.
func (b *Book) List() []contact.Contact {
	return b.list.All()
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return b.list.Len()
}

// rule frames the contact listing.
var rule = strings.Repeat("-", 40)

// Render writes a numbered listing of every contact to w.
func (b *Book) Render(w io.Writer) {
	if b.list.Len() == 0 {
		_, _ = fmt.Fprintln(w, "No contacts found.")
		return
	}
	_, _ = fmt.Fprintln(w, "\nContacts List")
	_, _ = fmt.Fprintln(w, rule)
	for i, c := range b.list.All() {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, c)
	}
	_, _ = fmt.Fprintln(w, rule)
}

func (b *Book) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(b.out, format, args...)
}
