// Package contact defines the contact record and the ordered in-memory list
// that holds them.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField indicates a required contact field is empty.
var ErrMissingField = errors.New("contact: missing required field")

// Contact is a single address book entry.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Validate checks that every field holds a non-blank value.
func (c Contact) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"phone", c.Phone},
		{"email", c.Email},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// Matches reports whether the contact's name equals name, ignoring case.
func (c Contact) Matches(name string) bool {
	return strings.EqualFold(c.Name, name)
}

func (c Contact) String() string {
	return fmt.Sprintf("Name: %s, Phone: %s, Email: %s", c.Name, c.Phone, c.Email)
}

// List is an ordered sequence of contacts. Insertion order is display order.
// The zero value is an empty list ready to use.
type List struct {
	items []Contact
}

// NewList returns a List holding a copy of cs.
func NewList(cs ...Contact) *List {
	items := make([]Contact, len(cs))
	copy(items, cs)
	return &List{items: items}
}

// Add appends c to the end of the list.
func (l *List) Add(c Contact) {
	l.items = append(l.items, c)
}

// Find returns the first contact whose name matches, ignoring case.
func (l *List) Find(name string) (Contact, bool) {
	if i := l.index(name); i >= 0 {
		return l.items[i], true
	}
	return Contact{}, false
}

// Delete removes the first contact whose name matches, ignoring case.
// It reports whether a contact was removed.
func (l *List) Delete(name string) bool {
	i := l.index(name)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Remove deletes the first contact equal to c on every field.
// It reports whether a contact was removed.
func (l *List) Remove(c Contact) bool {
	for i, item := range l.items {
		if item == c {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the contacts in insertion order.
func (l *List) All() []Contact {
	out := make([]Contact, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of contacts.
func (l *List) Len() int {
	return len(l.items)
}

func (l *List) index(name string) int {
	for i, c := range l.items {
		if c.Matches(name) {
			return i
		}
	}
	return -1
}
