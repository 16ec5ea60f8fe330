// Package state implements contact list persistence to the filesystem.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/contacts/internal/contact"
)

// ErrMalformed indicates the backing file is not a JSON array of contacts.
var ErrMalformed = errors.New("state: malformed contacts file")

// FileStore persists a contact list as a pretty-printed JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the contact list from the backing file.
// Returns (list, true, nil) if found, (nil, false, nil) if the file does not exist.
func (s *FileStore) Load() ([]contact.Contact, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("state: reading %s: %w", s.path, err)
	}

	var raw []*rawContact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrMalformed, s.path, err)
	}

	list := make([]contact.Contact, 0, len(raw))
	for i, r := range raw {
		c, err := r.contact()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s: record %d: %w", ErrMalformed, s.path, i, err)
		}
		list = append(list, c)
	}
	return list, true, nil
}

// Save overwrites the backing file with the full contact list.
// The data is written to a temp file and renamed into place, so a failed
// write leaves the previous file intact. An existing file keeps its
// permissions, and a symlinked path updates the file it points to.
func (s *FileStore) Save(list []contact.Contact) error {
	target := s.path
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		target = resolved
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(target); err == nil {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: creating directory: %w", err)
	}

	if list == nil {
		list = []contact.Contact{}
	}
	data, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	return nil
}

// rawContact mirrors contact.Contact but uses pointers to detect missing keys.
type rawContact struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

func (r *rawContact) contact() (contact.Contact, error) {
	if r == nil {
		return contact.Contact{}, errors.New("expected object, got null")
	}
	switch {
	case r.Name == nil:
		return contact.Contact{}, errors.New(`missing "name"`)
	case r.Phone == nil:
		return contact.Contact{}, errors.New(`missing "phone"`)
	case r.Email == nil:
		return contact.Contact{}, errors.New(`missing "email"`)
	}
	return contact.Contact{Name: *r.Name, Phone: *r.Phone, Email: *r.Email}, nil
}
