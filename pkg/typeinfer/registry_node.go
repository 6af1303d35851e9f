package typeinfer

import "github.com/riseshia/hi-friend/pkg/ast"

// NodeRegistry maps an AST node's identity to the primary vertex the
// visitor created for it, so callers (and later stages) can look a
// vertex up by the syntax it came from without re-walking.
type NodeRegistry struct {
	byNode map[ast.Node]*TypeVertex
}

func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{byNode: make(map[ast.Node]*TypeVertex)}
}

// Set records the primary vertex for node, overwriting any prior entry.
func (r *NodeRegistry) Set(node ast.Node, v *TypeVertex) {
	if node == nil {
		return
	}
	r.byNode[node] = v
}

// Find looks up the primary vertex for node.
func (r *NodeRegistry) Find(node ast.Node) (*TypeVertex, bool) {
	v, ok := r.byNode[node]
	return v, ok
}

// Clear resets the registry for a fresh walk.
func (r *NodeRegistry) Clear() {
	r.byNode = make(map[ast.Node]*TypeVertex)
}
