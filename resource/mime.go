package resource

import "sync"

// MimeTable maps file extensions to mimetypes. It is safe for concurrent
// use; entries added later replace earlier ones.
type MimeTable struct {
	mu    sync.RWMutex
	types map[string]string
}

// NewMimeTable returns a table seeded with the builtin extensions.
func NewMimeTable() *MimeTable {
	return &MimeTable{types: map[string]string{
		".json": "application/json",
		".yaml": "application/yaml",
		".yml":  "application/yaml",
		".csv":  "text/csv",
		".txt":  "text/plain",
		".gob":  "application/gob",
	}}
}

// Add maps an extension (with leading dot) to a mimetype.
func (t *MimeTable) Add(ext, mimetype string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[ext] = mimetype
}

// Remove drops an extension.
func (t *MimeTable) Remove(ext string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.types, ext)
}

// RemoveType drops every extension mapped to the mimetype.
func (t *MimeTable) RemoveType(mimetype string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for ext, mt := range t.types {
		if mt == mimetype {
			delete(t.types, ext)
		}
	}
}

// Guess resolves an extension to a mimetype.
func (t *MimeTable) Guess(ext string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	mt, ok := t.types[ext]
	return mt, ok
}

// DefaultMimeTable is the process-wide table Load consults unless a call
// overrides it.
var DefaultMimeTable = NewMimeTable()
