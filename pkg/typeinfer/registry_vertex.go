package typeinfer

// TypeVertexRegistry is the insertion-ordered collection of every vertex
// produced by one walk. Insertion order is a public observable: golden
// tests assert on positional indices into All().
type TypeVertexRegistry struct {
	vertices []*TypeVertex
	nextID   int
}

func NewTypeVertexRegistry() *TypeVertexRegistry {
	return &TypeVertexRegistry{}
}

// Add creates a fresh vertex, appends it, and returns it. Scope is fixed
// for the lifetime of the vertex, matching the data-model invariant.
func (r *TypeVertexRegistry) Add(name string, kind VertexKind, scope string) *TypeVertex {
	v := &TypeVertex{
		ID:    r.nextID,
		Name:  name,
		Kind:  kind,
		Scope: scope,
	}
	r.nextID++
	r.vertices = append(r.vertices, v)
	return v
}

// AddDependency links dep as a dependency of v. Registering the same
// edge twice is a no-op.
func (r *TypeVertexRegistry) AddDependency(v, dep *TypeVertex) {
	if v == nil {
		return
	}
	v.addDependency(dep)
}

// All returns every vertex in insertion order.
func (r *TypeVertexRegistry) All() []*TypeVertex {
	out := make([]*TypeVertex, len(r.vertices))
	copy(out, r.vertices)
	return out
}

// Clear resets the registry for a fresh walk.
func (r *TypeVertexRegistry) Clear() {
	r.vertices = nil
	r.nextID = 0
}
