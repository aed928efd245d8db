package versionfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// ErrUnknownFormat indicates a versioned file whose name matches no
// registered format.
var ErrUnknownFormat = errors.New("versionfile: unsupported file")

// Registry maintains known format implementations keyed by base file name.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: map[string]Format{}}
}

// Register installs a format. Returns an error if the file name is already
// claimed.
func (r *Registry) Register(fileName string, format Format) error {
	if fileName == "" {
		return fmt.Errorf("versionfile: file name is required")
	}
	if format == nil {
		return fmt.Errorf("versionfile: format is required for %s", fileName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formats[fileName]; exists {
		return fmt.Errorf("versionfile: %s already registered", fileName)
	}
	r.formats[fileName] = format
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(fileName string, format Format) {
	if err := r.Register(fileName, format); err != nil {
		panic(err)
	}
}

// FormatFor resolves the format owning path by its base file name.
func (r *Registry) FormatFor(path string) (Format, error) {
	base := filepath.Base(path)
	r.mu.RLock()
	format, ok := r.formats[base]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %v)", ErrUnknownFormat, path, r.FileNames())
	}
	return format, nil
}

// FileNames returns the registered file names in sorted order.
func (r *Registry) FileNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the registry holding every built-in format.
var Default = NewRegistry()

func init() {
	Default.MustRegister("package.json", PackageJSON{})
	Default.MustRegister("Cargo.toml", CargoTOML{})
	Default.MustRegister("pubspec.yaml", YAMLFile{name: "pubspec.yaml"})
	Default.MustRegister("Chart.yaml", YAMLFile{name: "Chart.yaml"})
	Default.MustRegister("VERSION", PlainVersion{})
}
