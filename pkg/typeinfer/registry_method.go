package typeinfer

// Visibility is the scope-stack visibility a method was defined under.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Method is one entry of the method registry, keyed by
// (receiver, name, singleton?, visibility). A method with no declaration
// paths is dangling: it was registered with an empty path, or every
// declaration path has since been removed with RemovePath.
type Method struct {
	Receiver   string
	MethodName string
	Singleton  bool
	Visibility Visibility

	Paths []string

	ArgNames       []string
	Args           map[string]*TypeVertex
	ReturnVertices []*TypeVertex

	DeclaredArgTypes   map[string]Type
	DeclaredReturnType Type
}

func newMethod(receiver, name string, singleton bool, visibility Visibility) *Method {
	return &Method{
		Receiver:   receiver,
		MethodName: name,
		Singleton:  singleton,
		Visibility: visibility,
		Args:       make(map[string]*TypeVertex),
	}
}

// AddPath records a declaration path for this method, idempotently.
func (m *Method) AddPath(path string) {
	if path == "" {
		return
	}
	for _, p := range m.Paths {
		if p == path {
			return
		}
	}
	m.Paths = append(m.Paths, path)
}

// RemovePath drops a declaration path, e.g. when the host re-walks a
// file that no longer defines this method.
func (m *Method) RemovePath(path string) {
	for i, p := range m.Paths {
		if p == path {
			m.Paths = append(m.Paths[:i], m.Paths[i+1:]...)
			return
		}
	}
}

// IsDangling reports whether this method has no remaining declarations.
func (m *Method) IsDangling() bool {
	return len(m.Paths) == 0
}

// AddArg registers an ordered named argument vertex.
func (m *Method) AddArg(name string, v *TypeVertex) {
	if _, exists := m.Args[name]; !exists {
		m.ArgNames = append(m.ArgNames, name)
	}
	m.Args[name] = v
}

// InferArgType returns the declared type for name if present, else the
// named argument vertex's own inference.
func (m *Method) InferArgType(name string, reg *MethodRegistry) Type {
	if t, ok := m.DeclaredArgTypes[name]; ok && t != nil {
		return t
	}
	if v, ok := m.Args[name]; ok {
		return v.Infer(reg)
	}
	return AnyType{}
}

// InferReturnType returns the declared return type if present, else the
// union of every return vertex's inference, widened.
func (m *Method) InferReturnType(reg *MethodRegistry) Type {
	if m.DeclaredReturnType != nil {
		return m.DeclaredReturnType
	}
	if len(m.ReturnVertices) == 0 {
		return AnyType{}
	}
	infers := make([]Type, len(m.ReturnVertices))
	for i, rv := range m.ReturnVertices {
		infers[i] = rv.Infer(reg)
	}
	return widenUnion(infers)
}

type methodKey struct {
	receiver   string
	name       string
	singleton  bool
	visibility Visibility
}

// MethodRegistry maps (receiver, name, singleton?, visibility) to its
// Method, in first-registration order.
type MethodRegistry struct {
	methods map[methodKey]*Method
	order   []*Method
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[methodKey]*Method)}
}

// Add finds or creates the method for this key and records path as one
// of its declarations.
func (r *MethodRegistry) Add(receiver, name string, singleton bool, visibility Visibility, path string) *Method {
	key := methodKey{receiver, name, singleton, visibility}
	m, ok := r.methods[key]
	if !ok {
		m = newMethod(receiver, name, singleton, visibility)
		r.methods[key] = m
		r.order = append(r.order, m)
	}
	m.AddPath(path)
	return m
}

// Find looks up a method without creating it.
func (r *MethodRegistry) Find(receiver, name string, visibility Visibility, singleton bool) (*Method, bool) {
	m, ok := r.methods[methodKey{receiver, name, singleton, visibility}]
	return m, ok
}

// All returns every registered method in first-registration order.
func (r *MethodRegistry) All() []*Method {
	out := make([]*Method, len(r.order))
	copy(out, r.order)
	return out
}

// Clear resets the registry for a fresh walk.
func (r *MethodRegistry) Clear() {
	r.methods = make(map[methodKey]*Method)
	r.order = nil
}
