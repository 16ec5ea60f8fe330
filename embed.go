// Package contacts provides the embedded sample contact set and an overlay
// filesystem that checks local disk first, falling back to embedded.
package contacts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/smileynet/contacts/internal/contact"
)

//go:embed samples/*.json
var rawSamples embed.FS

// Samples is the embedded samples filesystem with the "samples/" prefix stripped.
var Samples = mustSub(rawSamples, "samples")

// SampleFile is the name of the sample contact set inside Samples.
const SampleFile = "contacts.json"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadSamples decodes the sample contact set from fsys.
func LoadSamples(fsys fs.FS) ([]contact.Contact, error) {
	data, err := fs.ReadFile(fsys, SampleFile)
	if err != nil {
		return nil, fmt.Errorf("samples: reading %s: %w", SampleFile, err)
	}
	var list []contact.Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("samples: parsing %s: %w", SampleFile, err)
	}
	for i, c := range list {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("samples: record %d: %w", i, err)
		}
	}
	return list, nil
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := os.Open(filepath.Join(o.localDir, filepath.FromSlash(name)))
	if err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}
