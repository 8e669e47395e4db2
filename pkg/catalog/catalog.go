// Package catalog holds the named test bodies a run executes.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gobwas/glob"
)

// Body is a test body. It signals failure by returning an error or by
// panicking, usually through a failed check.
type Body func() error

// Entry is one registered test.
type Entry struct {
	Name string
	Body Body
}

var (
	ErrEmptyName = errors.New("test name is empty")
	ErrNilBody   = errors.New("test body is nil")
	ErrDuplicate = errors.New("test already registered")
	ErrSealed    = errors.New("catalog is sealed")
)

// Catalog maps test names to bodies. Entries come back in name order
// regardless of the order they were added in.
type Catalog struct {
	mu      sync.Mutex
	entries map[string]Body
	sealed  bool
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]Body)}
}

// Add registers body under name. A name can be registered once.
func (c *Catalog) Add(name string, body Body) error {
	if name == "" {
		return ErrEmptyName
	}
	if body == nil {
		return fmt.Errorf("%q: %w", name, ErrNilBody)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sealed {
		return fmt.Errorf("%q: %w", name, ErrSealed)
	}
	if _, ok := c.entries[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}
	c.entries[name] = body
	return nil
}

// Seal closes the catalog for registration. Runs seal before iterating.
func (c *Catalog) Seal() {
	c.mu.Lock()
	c.sealed = true
	c.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (c *Catalog) Sealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sealed
}

// Len returns the number of registered tests.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// All returns every entry sorted by name.
func (c *Catalog) All() []Entry {
	c.mu.Lock()
	out := make([]Entry, 0, len(c.entries))
	for name, body := range c.entries {
		out = append(out, Entry{Name: name, Body: body})
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Select returns the entries whose name matches the glob pattern, in name
// order. An empty pattern selects everything.
func (c *Catalog) Select(pattern string) ([]Entry, error) {
	all := c.All()
	if pattern == "" {
		return all, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid test pattern %q: %w", pattern, err)
	}
	out := all[:0]
	for _, e := range all {
		if g.Match(e.Name) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Default is the process-wide catalog filled by Register.
var Default = New()

// Register adds body to Default under name. It is meant to be called from
// init functions and panics on a bad or duplicate registration, since that
// is a mistake in the program rather than a runtime condition.
func Register(name string, body Body) {
	if err := Default.Add(name, body); err != nil {
		panic("catalog: " + err.Error())
	}
}
