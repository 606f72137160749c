package canvas2d

import (
	"fmt"
	"sort"
	"sync"
)

// Kind describes a shape type: its names, the libraries it belongs to,
// its properties and how to build it.
type Kind struct {
	// Name is the primary type name.
	Name string
	// Aliases are additional type names resolving to the same kind.
	Aliases []string
	// Libraries the kind is listed under.
	Libraries []string
	// Parent contributes its properties ahead of the kind's own.
	Parent *Kind
	// Properties declared by this kind. Names must not repeat any
	// property of the parent chain.
	Properties []PropertySpec
	// Defaults overrides the defaults of inherited properties.
	Defaults map[string]any
	// Accessors replaces the generated accessor of the named properties.
	Accessors map[string]Accessor
	// New wraps a prepared Base into the concrete shape.
	New func(b *Base) Shape

	specs    []PropertySpec
	index    map[string]int
	resolved map[string]Accessor
}

// Specs returns every property of the kind, inherited ones first.
func (k *Kind) Specs() []PropertySpec {
	return append([]PropertySpec(nil), k.specs...)
}

// Names returns the primary name followed by the aliases.
func (k *Kind) Names() []string {
	return append([]string{k.Name}, k.Aliases...)
}

func (k *Kind) defaultOf(spec PropertySpec) any {
	for c := k; c != nil; c = c.Parent {
		if v, ok := c.Defaults[spec.Name]; ok {
			return v
		}
	}
	return spec.Default
}

// prepare flattens the property chain and installs accessors.
func (k *Kind) prepare() error {
	var chain []*Kind
	for c := k; c != nil; c = c.Parent {
		chain = append(chain, c)
		if len(chain) > 64 {
			return fmt.Errorf("%w: kind %q: parent cycle", ErrConfiguration, k.Name)
		}
	}

	specs := []PropertySpec{}
	index := map[string]int{}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, spec := range chain[i].Properties {
			if spec.Name == "" || spec.Converter == nil {
				return fmt.Errorf("%w: kind %q: incomplete property %q", ErrConfiguration, k.Name, spec.Name)
			}
			if _, dup := index[spec.Name]; dup {
				return fmt.Errorf("%w: kind %q: property %q declared twice", ErrConfiguration, k.Name, spec.Name)
			}
			index[spec.Name] = len(specs)
			specs = append(specs, spec)
		}
	}
	for name := range k.Defaults {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%w: kind %q: default for unknown property %q", ErrConfiguration, k.Name, name)
		}
	}

	resolved := make(map[string]Accessor, len(specs))
	for _, spec := range specs {
		resolved[spec.Name] = generatedAccessor(spec)
	}
	for c := len(chain) - 1; c >= 0; c-- {
		for name, acc := range chain[c].Accessors {
			if _, ok := index[name]; !ok {
				return fmt.Errorf("%w: kind %q: accessor for unknown property %q", ErrConfiguration, k.Name, name)
			}
			gen := resolved[name]
			if acc.Get == nil {
				acc.Get = gen.Get
			}
			if acc.Set == nil {
				acc.Set = gen.Set
			}
			resolved[name] = acc
		}
	}

	k.specs, k.index, k.resolved = specs, index, resolved
	return nil
}

func generatedAccessor(spec PropertySpec) Accessor {
	name := spec.Name
	get := func(p *Props) any { return p.values[name] }
	if f, ok := spec.Converter.(GetterFactory); ok {
		get = f.NewGetter(spec)
	}
	return Accessor{
		Get: get,
		Set: func(p *Props, v any) error { return p.Store(name, v) },
	}
}

// Registry maps type names to shape kinds and groups kinds into
// libraries. Lookups are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	kinds     map[string]*Kind
	libraries map[string][]*Kind
	order     []*Kind
}

// NewRegistry returns a registry holding the built-in kinds, registered
// in this order: rectangle (box), text (label), line, connector.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, k := range builtinKinds() {
		r.MustRegister(k)
	}
	return r
}

// NewEmptyRegistry returns a registry without any kinds.
func NewEmptyRegistry() *Registry {
	return &Registry{
		kinds:     make(map[string]*Kind),
		libraries: make(map[string][]*Kind),
	}
}

// Register adds a kind under all of its names and to each of its
// libraries.
func (r *Registry) Register(k *Kind) error {
	if k == nil || k.Name == "" {
		return fmt.Errorf("%w: kind without a name", ErrConfiguration)
	}
	if k.New == nil {
		return fmt.Errorf("%w: kind %q has no constructor", ErrConfiguration, k.Name)
	}
	if err := k.prepare(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(k.Aliases)+1)
	for _, name := range k.Names() {
		if seen[name] {
			return fmt.Errorf("%w: kind %q lists name %q twice", ErrConfiguration, k.Name, name)
		}
		seen[name] = true
		if _, taken := r.kinds[name]; taken {
			return fmt.Errorf("%w: type name %q already registered", ErrConfiguration, name)
		}
	}
	for _, name := range k.Names() {
		r.kinds[name] = k
	}
	for _, lib := range k.Libraries {
		r.libraries[lib] = append(r.libraries[lib], k)
	}
	r.order = append(r.order, k)
	Logger().Debug("canvas2d: kind registered", "name", k.Name, "aliases", k.Aliases)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(k *Kind) {
	if err := r.Register(k); err != nil {
		panic(err)
	}
}

// Lookup resolves a type name or alias.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// Library returns the kinds of a library in registration order.
func (r *Registry) Library(name string) []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Kind(nil), r.libraries[name]...)
}

// Libraries returns the library names, sorted.
func (r *Registry) Libraries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.libraries))
	for name := range r.libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds returns every registered kind in registration order.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Kind(nil), r.order...)
}

// Create builds a shape of the named kind. The "name" entry of props
// names the shape and defaults to the kind name; every other entry is
// set through the property accessors, in declaration order.
func (r *Registry) Create(kindName string, props map[string]any) (Shape, error) {
	k, ok := r.Lookup(kindName)
	if !ok {
		return nil, &UnknownKindError{Name: kindName}
	}

	name := k.Name
	if v, ok := props["name"]; ok {
		s, isString := v.(string)
		if !isString || s == "" {
			return nil, &PropertyError{Kind: k.Name, Property: "name", Value: v, Err: ErrMalformedInput}
		}
		name = s
	}

	unknown := []string{}
	for key := range props {
		if _, ok := k.index[key]; !ok && key != "name" {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &PropertyError{Kind: k.Name, Property: unknown[0], Value: props[unknown[0]],
			Err: fmt.Errorf("%w: no such property", ErrMalformedInput)}
	}

	b := newBase(name, k)
	for _, spec := range k.specs {
		if v, ok := props[spec.Name]; ok {
			if err := b.props.Set(spec.Name, v); err != nil {
				return nil, err
			}
		}
	}
	return k.New(b), nil
}
