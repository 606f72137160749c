package canvas2d

import (
	"fmt"

	"github.com/gogpu/canvas2d/surface"
)

// Host resolves surface ids to native surfaces.
type Host interface {
	Surface(id string) (surface.Native, error)
}

// Page is a Host backed by a fixed set of surfaces.
type Page map[string]surface.Native

// Surface returns the surface registered under id.
func (p Page) Surface(id string) (surface.Native, error) {
	n, ok := p[id]
	if !ok {
		return nil, fmt.Errorf("%w: no surface with id %q", ErrConfiguration, id)
	}
	return n, nil
}

// HostFunc adapts a function to Host.
type HostFunc func(id string) (surface.Native, error)

// Surface calls f(id).
func (f HostFunc) Surface(id string) (surface.Native, error) { return f(id) }

// BackendHost creates a fresh native for every id using the named
// backend of the surface registry, or the best available one when
// backend is empty.
func BackendHost(backend string, width, height int, opts ...surface.Option) Host {
	return HostFunc(func(string) (surface.Native, error) {
		if backend == "" {
			return surface.NewNative(width, height, opts...)
		}
		return surface.NewNativeByName(backend, width, height, opts...)
	})
}

// Manager sets up one Book per surface id.
type Manager struct {
	host  Host
	opts  []BookOption
	books map[string]*Book
	order []string
}

// NewManager returns a manager creating books on host's surfaces with
// the given options.
func NewManager(host Host, opts ...BookOption) *Manager {
	return &Manager{
		host:  host,
		opts:  opts,
		books: make(map[string]*Book),
	}
}

// SetupBook returns the book of surface id, creating it on first use.
func (m *Manager) SetupBook(id string) (*Book, error) {
	if b, ok := m.books[id]; ok {
		return b, nil
	}
	n, err := m.host.Surface(id)
	if err != nil {
		return nil, fmt.Errorf("canvas2d: setup book %q: %w", id, err)
	}
	opts := append(append([]BookOption(nil), m.opts...), WithName(id))
	b, err := NewBook(n, opts...)
	if err != nil {
		return nil, err
	}
	m.books[id] = b
	m.order = append(m.order, id)
	return b, nil
}

// Activate sets up the book of surface id, gives it a new sheet, starts
// every book and returns the sheet.
func (m *Manager) Activate(id string, opts ...SheetOption) (*Sheet, error) {
	b, err := m.SetupBook(id)
	if err != nil {
		return nil, err
	}
	s := b.AddSheet(opts...)
	m.StartAll()
	return s, nil
}

// StartAll starts every book.
func (m *Manager) StartAll() {
	for _, id := range m.order {
		m.books[id].Start()
	}
}

// Book returns the book of surface id.
func (m *Manager) Book(id string) (*Book, bool) {
	b, ok := m.books[id]
	return b, ok
}

// Books returns the books in setup order.
func (m *Manager) Books() []*Book {
	out := make([]*Book, len(m.order))
	for i, id := range m.order {
		out[i] = m.books[id]
	}
	return out
}

// Close closes every book.
func (m *Manager) Close() error {
	var first error
	for _, b := range m.Books() {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
