package cardtype

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/joeblew999/plat-titlecard/pkg/log"
)

// VerifyFunc checks that three layer fonts share identical glyph metrics.
// It returns human readable warnings for metric drift, or an error when a
// font cannot be parsed at all.
type VerifyFunc func(fontPaths [3]string) ([]string, error)

// Option configures a Registry.
type Option func(*Registry)

// WithFontVerifier runs fn against every discovered style's fonts and
// stores the warnings on the style.
func WithFontVerifier(fn VerifyFunc) Option {
	return func(r *Registry) {
		r.verify = fn
	}
}

// Registry discovers and indexes installed style packages. Each style
// lives in its own subdirectory of the card type directory and is keyed
// by its manifest identifier.
type Registry struct {
	dir    string
	mu     sync.RWMutex
	styles map[string]*Style
	verify VerifyFunc
}

// NewRegistry creates a registry over a card type directory. Call
// Discover to populate it.
func NewRegistry(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir:    dir,
		styles: make(map[string]*Style),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the directory the registry scans.
func (r *Registry) Dir() string {
	return r.dir
}

// Discover scans the card type directory for style packages and replaces
// the registry contents with what it finds. Packages that fail to load
// are skipped with a warning. When two packages declare the same
// identifier the first one discovered wins.
func (r *Registry) Discover() ([]*Style, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.mu.Lock()
			r.styles = make(map[string]*Style)
			r.mu.Unlock()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read card type directory: %w", err)
	}

	found := make(map[string]*Style)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(r.dir, entry.Name())
		style, err := r.loadPackage(dir)
		if err != nil {
			log.Warn("skipping card type package", "dir", dir, "error", err)
			continue
		}
		if style == nil {
			continue
		}
		if prev, ok := found[style.Identifier]; ok {
			log.Warn("duplicate card type identifier, keeping first",
				"identifier", style.Identifier, "kept", prev.Dir, "skipped", dir)
			continue
		}
		found[style.Identifier] = style
	}

	r.mu.Lock()
	r.styles = found
	r.mu.Unlock()

	styles := r.List()
	log.Info("discovered card types", "count", len(styles), "dir", r.dir)
	return styles, nil
}

// loadPackage loads one style package directory. It returns (nil, nil)
// when the directory holds no manifest, so stray directories are ignored
// silently.
func (r *Registry) loadPackage(dir string) (*Style, error) {
	manifestPath := filepath.Join(dir, ManifestFilename)
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, nil
	}
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	style := &Style{Manifest: *m, Dir: dir}
	for _, l := range Layers() {
		if _, err := os.Stat(style.FontPath(l)); err != nil {
			return nil, fmt.Errorf("%s layer font %s: %w", l, m.Fonts.For(l), err)
		}
	}
	if r.verify != nil {
		warnings, err := r.verify(style.FontPaths())
		if err != nil {
			return nil, fmt.Errorf("font verification: %w", err)
		}
		style.FontWarnings = warnings
		for _, w := range warnings {
			log.Warn("card type font metrics differ", "identifier", m.Identifier, "warning", w)
		}
	}
	return style, nil
}

// Get returns a discovered style by identifier.
func (r *Registry) Get(identifier string) (*Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[identifier]
	return s, ok
}

// Has reports whether a style identifier is registered.
func (r *Registry) Has(identifier string) bool {
	_, ok := r.Get(identifier)
	return ok
}

// List returns all discovered styles sorted by identifier.
func (r *Registry) List() []*Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	styles := make([]*Style, 0, len(r.styles))
	for _, s := range r.styles {
		styles = append(styles, s)
	}
	sort.Slice(styles, func(i, j int) bool {
		return styles[i].Identifier < styles[j].Identifier
	})
	return styles
}

// Count returns the number of discovered styles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.styles)
}
