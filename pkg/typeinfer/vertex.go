package typeinfer

import (
	"fmt"
	"math/big"
)

// VertexKind is the closed set of type-vertex shapes produced by the
// visitor. Each kind has a fixed dependency shape and infer rule.
type VertexKind string

const (
	KindIntegerLit   VertexKind = "integer_lit"
	KindStringLit    VertexKind = "string_lit"
	KindSymbolLit    VertexKind = "symbol_lit"
	KindTrue         VertexKind = "true"
	KindFalse        VertexKind = "false"
	KindNil          VertexKind = "nil"
	KindLvar         VertexKind = "lvar"
	KindLvarRead     VertexKind = "lvar_read"
	KindIvar         VertexKind = "ivar"
	KindIvarRead     VertexKind = "ivar_read"
	KindCall         VertexKind = "call"
	KindIf           VertexKind = "if"
	KindArray        VertexKind = "array"
	KindHash         VertexKind = "hash"
	KindConstRead    VertexKind = "const_read"
	KindStringInterp VertexKind = "string_interp"
	KindReturn       VertexKind = "return"
	KindArg          VertexKind = "arg"
	KindSelf         VertexKind = "self"
)

// ArgKind distinguishes the five non-required parameter shapes from the
// plain required one.
type ArgKind string

const (
	ArgRequired        ArgKind = "required"
	ArgOptional        ArgKind = "optional"
	ArgKeywordRequired ArgKind = "keyword_required"
	ArgKeywordOptional ArgKind = "keyword_optional"
	ArgRest            ArgKind = "rest"
	ArgBlock           ArgKind = "block"
)

// TypeVertex is one node of the dependency graph: one expression or
// binding occurrence, its fixed shape-dependencies, and whoever reads it.
//
// Invariant: v is in u.Dependencies iff u is in v.Dependents. Vertices are
// never removed mid-walk and their Scope is fixed at creation time.
type TypeVertex struct {
	ID           int
	Name         string
	Kind         VertexKind
	Scope        string
	Dependencies []*TypeVertex
	Dependents   []*TypeVertex

	// Payload carries kind-specific immutable data (literal values, the
	// hash entry list, the call receiver and argument vertices, an
	// argument's kind and default vertex, ...).
	Payload any

	// MethodObjs holds the methods this vertex is an argument vertex of
	// (populated for KindArg vertices).
	MethodObjs []*Method
}

func (v *TypeVertex) String() string {
	return fmt.Sprintf("%s#%d(%s)", v.Kind, v.ID, v.Name)
}

// addDependency links dep as a dependency of v, maintaining the
// bidirectional edge invariant. Idempotent: re-adding the same pair is a
// no-op, matching the "edge registration is idempotent" error-handling
// rule.
func (v *TypeVertex) addDependency(dep *TypeVertex) {
	if dep == nil || v == dep {
		return
	}
	for _, existing := range v.Dependencies {
		if existing == dep {
			return
		}
	}
	v.Dependencies = append(v.Dependencies, dep)
	dep.Dependents = append(dep.Dependents, v)
}

// callPayload is the Payload for KindCall vertices.
type callPayload struct {
	ReceiverVertex *TypeVertex
	ReceiverType   Type
	MethodName     string
	ArgVertices    []*TypeVertex
}

// hashEntryPayload is one element of the Payload ([]hashEntryPayload) of
// KindHash vertices: the rendered key beside the value vertex that backs
// each HashEntry.
type hashEntryPayload struct {
	KeyKind  HashKeyKind
	KeyName  string
	ValueVtx *TypeVertex
}

// argPayload is the Payload for KindArg vertices.
type argPayload struct {
	ArgKind      ArgKind
	DeclaredType Type
	Default      *TypeVertex // dependency for optional/keyword-optional defaults
}

// constReadPayload is the Payload for KindConstRead vertices.
type constReadPayload struct {
	Name     string
	Resolved bool
}

// selfPayload is the Payload for KindSelf vertices.
type selfPayload struct {
	Name      string
	Singleton bool
}

// Infer computes this vertex's reported type per the kind table. It never
// mutates the graph and never panics: unresolved shapes fall back to Any.
func (v *TypeVertex) Infer(reg *MethodRegistry) Type {
	switch v.Kind {
	case KindIntegerLit:
		n, _ := v.Payload.(*big.Int)
		return IntegerLiteralType{Value: n}
	case KindStringLit:
		s, _ := v.Payload.(string)
		return StringLiteralType{Value: s}
	case KindSymbolLit:
		s, _ := v.Payload.(string)
		return SymbolLiteralType{Value: s}
	case KindTrue:
		return BoolType{Value: true}
	case KindFalse:
		return BoolType{Value: false}
	case KindNil:
		return NilType{}
	case KindLvar, KindIvar:
		if len(v.Dependencies) == 0 {
			return AnyType{}
		}
		return widenUnion([]Type{v.Dependencies[0].Infer(reg)})
	case KindLvarRead:
		if len(v.Dependencies) == 0 {
			return AnyType{}
		}
		return v.Dependencies[0].Infer(reg)
	case KindIvarRead:
		if len(v.Dependencies) == 0 {
			// An instance variable read before any write to it behaves
			// like an uninitialized Ruby ivar: nil, not unknown.
			return NilType{}
		}
		infers := make([]Type, len(v.Dependencies))
		for i, dep := range v.Dependencies {
			infers[i] = dep.Infer(reg)
		}
		return widenUnion(infers)
	case KindArray:
		if len(v.Dependencies) == 0 {
			return ArrayType{Element: AnyType{}}
		}
		infers := make([]Type, len(v.Dependencies))
		for i, dep := range v.Dependencies {
			infers[i] = dep.Infer(reg)
		}
		return ArrayType{Element: widenUnion(infers)}
	case KindHash:
		entries, _ := v.Payload.([]hashEntryPayload)
		out := make([]HashEntry, len(entries))
		for i, e := range entries {
			var val Type = AnyType{}
			if e.ValueVtx != nil {
				val = widenUnion([]Type{e.ValueVtx.Infer(reg)})
			}
			out[i] = HashEntry{KeyKind: e.KeyKind, KeyName: e.KeyName, Value: val}
		}
		return HashType{Entries: out}
	case KindIf:
		if len(v.Dependencies) == 0 {
			return AnyType{}
		}
		infers := make([]Type, len(v.Dependencies))
		for i, dep := range v.Dependencies {
			infers[i] = dep.Infer(reg)
		}
		return widenUnion(infers)
	case KindConstRead:
		p, _ := v.Payload.(constReadPayload)
		if !p.Resolved {
			return StringLiteralType{Value: p.Name}
		}
		return SingletonType{Name: p.Name}
	case KindSelf:
		p, _ := v.Payload.(selfPayload)
		if p.Singleton {
			return SingletonType{Name: p.Name}
		}
		return InstanceType{Name: p.Name}
	case KindStringInterp:
		return StringType{}
	case KindReturn:
		if len(v.Dependencies) == 0 {
			return AnyType{}
		}
		return v.Dependencies[0].Infer(reg)
	case KindArg:
		p, _ := v.Payload.(argPayload)
		if p.DeclaredType != nil {
			return p.DeclaredType
		}
		if p.Default != nil {
			return widenUnion([]Type{p.Default.Infer(reg)})
		}
		return AnyType{}
	case KindCall:
		return v.inferCall(reg)
	default:
		return AnyType{}
	}
}

// inferCall resolves the narrow, explicitly-in-scope slice of the
// downstream solver: a zero-argument call whose receiver is a known
// singleton or instance and whose target method has no declared return
// type falls through to the union of that method's own return vertices.
// Everything else (binary operators, arbitrary chained calls) is left to
// the solver and reports Any.
func (v *TypeVertex) inferCall(reg *MethodRegistry) Type {
	p, ok := v.Payload.(callPayload)
	if !ok {
		return AnyType{}
	}
	if len(p.ArgVertices) != 0 || reg == nil {
		return AnyType{}
	}
	var qualifiedName string
	var singleton bool
	switch recv := p.ReceiverType.(type) {
	case SingletonType:
		qualifiedName, singleton = recv.Name, true
	case InstanceType:
		qualifiedName, singleton = recv.Name, false
	default:
		return AnyType{}
	}
	method, found := reg.Find(qualifiedName, p.MethodName, VisibilityPublic, singleton)
	if !found {
		return AnyType{}
	}
	if method.DeclaredReturnType != nil {
		return method.DeclaredReturnType
	}
	if len(method.ReturnVertices) == 0 {
		return AnyType{}
	}
	infers := make([]Type, len(method.ReturnVertices))
	for i, rv := range method.ReturnVertices {
		infers[i] = rv.Infer(reg)
	}
	return widenUnion(infers)
}
