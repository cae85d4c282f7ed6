package sheet

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// OpenFunc opens a reader for a file.
type OpenFunc func(path string, options Options) (Reader, error)

// Registry maps file extensions to readers.
type Registry struct {
	mu      sync.RWMutex
	openers map[string]OpenFunc // keyed by lower-case extension with dot
}

// DefaultRegistry is the global registry with the built-in readers.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a registry with xlsx and csv readers.
func NewRegistry() *Registry {
	r := &Registry{
		openers: make(map[string]OpenFunc),
	}

	openXLSX := func(path string, options Options) (Reader, error) {
		return OpenXLSX(path, options)
	}
	r.Register(".xlsx", openXLSX)
	r.Register(".xlsm", openXLSX)
	r.Register(".csv", func(path string, options Options) (Reader, error) {
		return OpenCSV(path, options)
	})

	return r
}

// Register adds or replaces the opener for ext.
func (r *Registry) Register(ext string, open OpenFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers[normalizeExt(ext)] = open
}

// Supports reports whether a reader exists for path.
func (r *Registry) Supports(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.openers[normalizeExt(filepath.Ext(path))]
	return ok
}

// Open opens path with the reader registered for its extension.
func (r *Registry) Open(path string, options Options) (Reader, error) {
	r.mu.RLock()
	open, ok := r.openers[normalizeExt(filepath.Ext(path))]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return open(path, options)
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.openers))
	for ext := range r.openers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
