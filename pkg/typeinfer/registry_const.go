package typeinfer

// ConstKind distinguishes a module constant from a class constant.
type ConstKind string

const (
	ConstModule ConstKind = "module"
	ConstClass  ConstKind = "class"
)

// Constant is a declared module or class, keyed by its fully-qualified
// name (e.g. "A::B").
type Constant struct {
	QualifiedName string
	Kind          ConstKind
	Parent        string
	Paths         []string
}

func (c *Constant) addPath(path string) {
	if path == "" {
		return
	}
	for _, p := range c.Paths {
		if p == path {
			return
		}
	}
	c.Paths = append(c.Paths, path)
}

// ConstRegistry maps qualified constant names to their descriptor.
type ConstRegistry struct {
	byName map[string]*Constant
	order  []*Constant
}

func NewConstRegistry() *ConstRegistry {
	return &ConstRegistry{byName: make(map[string]*Constant)}
}

// FindOrAdd returns the existing constant for qualifiedName, or creates
// one. Re-declaring the same constant from a different path records the
// additional declaration path rather than replacing the entry.
func (r *ConstRegistry) FindOrAdd(qualifiedName string, kind ConstKind, parent, path string) *Constant {
	if c, ok := r.byName[qualifiedName]; ok {
		c.addPath(path)
		return c
	}
	c := &Constant{QualifiedName: qualifiedName, Kind: kind, Parent: parent}
	c.addPath(path)
	r.byName[qualifiedName] = c
	r.order = append(r.order, c)
	return c
}

// Find looks up a constant by qualified name without creating it.
func (r *ConstRegistry) Find(qualifiedName string) (*Constant, bool) {
	c, ok := r.byName[qualifiedName]
	return c, ok
}

// All returns every known constant in first-declaration order.
func (r *ConstRegistry) All() []*Constant {
	out := make([]*Constant, len(r.order))
	copy(out, r.order)
	return out
}

// Clear resets the registry for a fresh walk.
func (r *ConstRegistry) Clear() {
	r.byName = make(map[string]*Constant)
	r.order = nil
}
