package typeinfer

import (
	"fmt"
	"strings"

	"github.com/riseshia/hi-friend/pkg/ast"
)

// StructuralError is raised when the AST shape is broken in a way this
// layer cannot recover from mid-walk (a required child missing, or a
// node kind the visitor has no case for). It is not meant to be caught
// and resumed from within a single walk.
type StructuralError struct {
	Message string
	Node    ast.Node
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("typeinfer: %s", e.Message)
}

// Visitor drives one file's AST walk, populating the four registries as
// it goes. A Visitor is single-use: construct a fresh one per walk, which
// starts from fresh, empty registries.
type Visitor struct {
	path string

	Vertices  *TypeVertexRegistry
	Constants *ConstRegistry
	Methods   *MethodRegistry
	Nodes     *NodeRegistry

	scope *scopeStack

	// ivarWrites accumulates, per "qualifiedName#ivarName", every write
	// vertex seen so far in source order, so IvarRead vertices can union
	// over "all writes seen so far" per the kind table.
	ivarWrites map[string][]*TypeVertex
}

// NewVisitor creates a visitor for one source file, with fresh
// registries.
func NewVisitor(path string) *Visitor {
	return &Visitor{
		path:       path,
		Vertices:   NewTypeVertexRegistry(),
		Constants:  NewConstRegistry(),
		Methods:    NewMethodRegistry(),
		Nodes:      NewNodeRegistry(),
		scope:      newScopeStack(),
		ivarWrites: make(map[string][]*TypeVertex),
	}
}

// VisitProgram walks an entire program, returning the vertex for its
// final statement (if any), matching visitStatements' convention.
func (v *Visitor) VisitProgram(prog *ast.ProgramNode) *TypeVertex {
	if prog == nil || prog.Statements == nil {
		return nil
	}
	return v.visitStatements(prog.Statements)
}

func (v *Visitor) visitStatements(stmts *ast.StatementsNode) *TypeVertex {
	var last *TypeVertex
	for _, stmt := range stmts.Body {
		last = v.visitStatement(stmt)
	}
	return last
}

// visitStatement dispatches on a statement's concrete kind. Call hooks
// and visibility directives are recognized only here, at statement
// position, never from visitExpression's recursive descent into
// sub-expressions — matching "fires only at class/module top level,
// never inside method bodies".
func (v *Visitor) visitStatement(stmt ast.Statement) *TypeVertex {
	switch n := stmt.(type) {
	case *ast.ModuleNode:
		v.visitModule(n)
		return nil
	case *ast.ClassNode:
		v.visitClass(n)
		return nil
	case *ast.SingletonClassNode:
		v.visitSingletonClass(n)
		return nil
	case *ast.DefNode:
		v.visitDef(n)
		return nil
	case *ast.ReturnNode:
		return v.visitReturn(n)
	case *ast.StatementsNode:
		return v.visitStatements(n)
	case *ast.CallNode:
		if v.scope.current().method == nil {
			if handledVisibility := v.tryVisibilityDirective(n); handledVisibility {
				return nil
			}
			if dispatchCallHook(v, n) {
				return nil
			}
		}
		return v.visitExpression(n)
	case ast.Expression:
		return v.visitExpression(n)
	default:
		panic(&StructuralError{Message: fmt.Sprintf("unhandled statement kind %T", stmt), Node: stmt})
	}
}

// tryVisibilityDirective recognizes the bare `private`/`public` call
// shape and mutates scope visibility instead of lowering a Call vertex.
func (v *Visitor) tryVisibilityDirective(call *ast.CallNode) bool {
	if call.Receiver != nil || len(call.Arguments) != 0 {
		return false
	}
	switch call.Name {
	case "private":
		v.scope.setVisibility(VisibilityPrivate)
		return true
	case "public":
		v.scope.setVisibility(VisibilityPublic)
		return true
	}
	return false
}

func (v *Visitor) visitModule(n *ast.ModuleNode) {
	qualified := v.qualify(n.Name)
	v.Constants.FindOrAdd(qualified, ConstModule, v.scope.current().qualifiedName(), v.path)
	v.scope.pushConst(n.Name, false)
	defer v.scope.pop()
	if n.Statements != nil {
		v.visitStatements(n.Statements)
	}
}

func (v *Visitor) visitClass(n *ast.ClassNode) {
	qualified := v.qualify(n.Name)
	v.Constants.FindOrAdd(qualified, ConstClass, v.scope.current().qualifiedName(), v.path)
	if n.Superclass != nil {
		v.visitExpression(n.Superclass)
	}
	v.scope.pushConst(n.Name, false)
	defer v.scope.pop()
	if n.Statements != nil {
		v.visitStatements(n.Statements)
	}
}

func (v *Visitor) visitSingletonClass(n *ast.SingletonClassNode) {
	if n.Expression != nil {
		v.visitExpression(n.Expression)
	}
	v.scope.pushSingletonClass()
	defer v.scope.pop()
	if n.Statements != nil {
		v.visitStatements(n.Statements)
	}
}

func (v *Visitor) visitDef(n *ast.DefNode) {
	frame := v.scope.current()
	singleton := frame.singleton || n.Receiver != nil
	qualified := frame.qualifiedName()
	method := v.Methods.Add(qualified, n.Name, singleton, frame.visibility, v.path)

	v.scope.pushMethod(method, singleton)
	defer v.scope.pop()

	if n.Parameters != nil {
		v.bindParameters(method, n.Parameters)
	}

	var last *TypeVertex
	if n.Statements != nil {
		last = v.visitStatements(n.Statements)
	}
	if last != nil && (len(method.ReturnVertices) == 0 || method.ReturnVertices[len(method.ReturnVertices)-1] != last) {
		method.ReturnVertices = append(method.ReturnVertices, last)
	}
}

func (v *Visitor) bindParameters(method *Method, params *ast.ParametersNode) {
	locals := v.scope.current().locals
	addArg := func(name string, kind ArgKind, def ast.Expression) {
		vtx := v.Vertices.Add(name, KindArg, v.scope.current().qualifiedName())
		payload := argPayload{ArgKind: kind}
		if def != nil {
			payload.Default = v.visitExpression(def)
		}
		vtx.Payload = payload
		vtx.MethodObjs = append(vtx.MethodObjs, method)
		method.AddArg(name, vtx)
		locals.write(name, vtx)
	}
	for _, p := range params.Requireds {
		addArg(p.Name, ArgRequired, nil)
	}
	for _, p := range params.Optionals {
		addArg(p.Name, ArgOptional, p.Default)
	}
	for _, p := range params.Keywords {
		kind := ArgKeywordOptional
		if p.Required {
			kind = ArgKeywordRequired
		}
		addArg(p.Name, kind, p.Default)
	}
	if params.Rest != nil {
		addArg(params.Rest.Name, ArgRest, nil)
	}
	if params.KeywordRest != nil {
		addArg(params.KeywordRest.Name, ArgKeywordRequired, nil)
	}
	if params.Block != nil {
		addArg(params.Block.Name, ArgBlock, nil)
	}
}

// visitExpression lowers one expression node into its vertex, recursing
// into sub-expressions as needed. Every case registers its vertex in
// NodeRegistry before returning it.
func (v *Visitor) visitExpression(expr ast.Expression) *TypeVertex {
	scope := v.scope.current().qualifiedName()
	switch n := expr.(type) {
	case *ast.IntegerNode:
		vtx := v.Vertices.Add("", KindIntegerLit, scope)
		vtx.Payload = n.Value
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.StringNode:
		vtx := v.Vertices.Add("", KindStringLit, scope)
		vtx.Payload = n.Value
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.SymbolNode:
		vtx := v.Vertices.Add("", KindSymbolLit, scope)
		vtx.Payload = n.Value
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.TrueNode:
		vtx := v.Vertices.Add("", KindTrue, scope)
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.FalseNode:
		vtx := v.Vertices.Add("", KindFalse, scope)
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.NilNode:
		vtx := v.Vertices.Add("", KindNil, scope)
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.SelfNode:
		frame := v.scope.current()
		vtx := v.Vertices.Add("self", KindSelf, scope)
		vtx.Payload = selfPayload{Name: frame.qualifiedName(), Singleton: frame.singleton}
		v.Nodes.Set(n, vtx)
		return vtx
	case *ast.LocalVariableWriteNode:
		return v.visitLocalWrite(n)
	case *ast.LocalVariableReadNode:
		return v.visitLocalRead(n)
	case *ast.InstanceVariableWriteNode:
		return v.visitIvarWrite(n)
	case *ast.InstanceVariableReadNode:
		return v.visitIvarRead(n)
	case *ast.ConstantReadNode:
		return v.visitConstRead(n.Name, n)
	case *ast.ConstantPathNode:
		path := v.constantPathText(n)
		return v.visitConstRead(path, n)
	case *ast.CallNode:
		return v.visitCall(n)
	case *ast.ArrayNode:
		return v.visitArray(n)
	case *ast.HashNode:
		return v.visitHash(n)
	case *ast.InterpolatedStringNode:
		return v.visitInterp(n)
	case *ast.IfNode:
		return v.visitIf(n)
	case *ast.MultiWriteNode:
		return v.visitMultiWrite(n)
	default:
		panic(&StructuralError{Message: fmt.Sprintf("unhandled expression kind %T", expr), Node: expr})
	}
}

// visitLocalWrite allocates the write vertex before visiting its RHS, so
// insertion order matches source order ("a = 1" inserts a before 1),
// matching a reassignment's RHS reading the prior binding, not this one.
func (v *Visitor) visitLocalWrite(n *ast.LocalVariableWriteNode) *TypeVertex {
	vtx := v.Vertices.Add(n.Name, KindLvar, v.scope.current().qualifiedName())
	valueVtx := v.visitExpression(n.Value)
	v.Vertices.AddDependency(vtx, valueVtx)
	v.scope.current().locals.write(n.Name, vtx)
	v.Nodes.Set(n, vtx)
	return vtx
}

func (v *Visitor) visitLocalRead(n *ast.LocalVariableReadNode) *TypeVertex {
	vtx := v.Vertices.Add(n.Name, KindLvarRead, v.scope.current().qualifiedName())
	if writeVtx, ok := v.scope.current().locals.read(n.Name); ok {
		v.Vertices.AddDependency(vtx, writeVtx)
	}
	v.Nodes.Set(n, vtx)
	return vtx
}

func (v *Visitor) ivarKey(name string) string {
	frame := v.scope.current()
	return frame.qualifiedName() + "#" + name
}

func (v *Visitor) visitIvarWrite(n *ast.InstanceVariableWriteNode) *TypeVertex {
	valueVtx := v.visitExpression(n.Value)
	vtx := v.Vertices.Add("@"+n.Name, KindIvar, v.scope.current().qualifiedName())
	v.Vertices.AddDependency(vtx, valueVtx)
	key := v.ivarKey(n.Name)
	v.ivarWrites[key] = append(v.ivarWrites[key], vtx)
	v.Nodes.Set(n, vtx)
	return vtx
}

func (v *Visitor) visitIvarRead(n *ast.InstanceVariableReadNode) *TypeVertex {
	vtx := v.Vertices.Add("@"+n.Name, KindIvarRead, v.scope.current().qualifiedName())
	key := v.ivarKey(n.Name)
	for _, w := range v.ivarWrites[key] {
		v.Vertices.AddDependency(vtx, w)
	}
	v.Nodes.Set(n, vtx)
	return vtx
}

// constantPathText renders a ConstantPathNode chain back to source-like
// "A::B::C" text, used both for constant resolution and superclass
// lookups. It never visits anything: it is a pure structural read.
func (v *Visitor) constantPathText(n *ast.ConstantPathNode) string {
	var prefix string
	switch p := n.Parent.(type) {
	case *ast.ConstantReadNode:
		prefix = p.Name
	case *ast.ConstantPathNode:
		prefix = v.constantPathText(p)
	default:
		prefix = ""
	}
	if prefix == "" {
		return n.Name
	}
	return prefix + "::" + n.Name
}

func (v *Visitor) qualify(name string) string {
	parent := v.scope.current().qualifiedName()
	if parent == "" {
		return name
	}
	return parent + "::" + name
}

// resolveConstant tries qualifiedName resolution from the innermost
// enclosing constant path outward, then the bare name, matching ordinary
// lexical constant lookup.
func (v *Visitor) resolveConstant(name string) (string, bool) {
	segs := v.scope.current().constPath
	for i := len(segs); i >= 0; i-- {
		candidate := name
		if i > 0 {
			candidate = strings.Join(segs[:i], "::") + "::" + name
		}
		if _, ok := v.Constants.Find(candidate); ok {
			return candidate, true
		}
	}
	return name, false
}

func (v *Visitor) visitConstRead(name string, node ast.Node) *TypeVertex {
	resolved, ok := v.resolveConstant(name)
	vtx := v.Vertices.Add(name, KindConstRead, v.scope.current().qualifiedName())
	if ok {
		vtx.Payload = constReadPayload{Name: resolved, Resolved: true}
	} else {
		vtx.Payload = constReadPayload{Name: name, Resolved: false}
	}
	v.Nodes.Set(node, vtx)
	return vtx
}

// visitCall allocates the call vertex before visiting its receiver and
// arguments, so insertion order matches source order ("a + 2" inserts the
// call before the receiver read and the argument literal).
func (v *Visitor) visitCall(n *ast.CallNode) *TypeVertex {
	vtx := v.Vertices.Add(n.Name, KindCall, v.scope.current().qualifiedName())

	var receiverVtx *TypeVertex
	var receiverType Type = AnyType{}
	if n.Receiver != nil {
		receiverVtx = v.visitExpression(n.Receiver)
		receiverType = receiverVtx.Infer(v.Methods)
	} else {
		frame := v.scope.current()
		if frame.singleton {
			receiverType = SingletonType{Name: frame.qualifiedName()}
		} else {
			receiverType = InstanceType{Name: frame.qualifiedName()}
		}
	}
	argVtxs := make([]*TypeVertex, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		argVtxs = append(argVtxs, v.visitExpression(arg))
	}
	for _, a := range argVtxs {
		v.Vertices.AddDependency(vtx, a)
	}
	vtx.Payload = callPayload{
		ReceiverVertex: receiverVtx,
		ReceiverType:   receiverType,
		MethodName:     n.Name,
		ArgVertices:    argVtxs,
	}
	v.Nodes.Set(n, vtx)
	return vtx
}

func (v *Visitor) visitArray(n *ast.ArrayNode) *TypeVertex {
	elems := make([]*TypeVertex, 0, len(n.Elements))
	for _, e := range n.Elements {
		elems = append(elems, v.visitExpression(e))
	}
	vtx := v.Vertices.Add(string(ast.NodeArray), KindArray, v.scope.current().qualifiedName())
	for _, e := range elems {
		v.Vertices.AddDependency(vtx, e)
	}
	v.Nodes.Set(n, vtx)
	return vtx
}

func (v *Visitor) visitHash(n *ast.HashNode) *TypeVertex {
	entries := make([]hashEntryPayload, 0, len(n.Elements))
	for _, assoc := range n.Elements {
		keyKind, keyName := v.hashKey(assoc.Key)
		valueVtx := v.visitExpression(assoc.Value)
		entries = append(entries, hashEntryPayload{KeyKind: keyKind, KeyName: keyName, ValueVtx: valueVtx})
	}
	vtx := v.Vertices.Add(string(ast.NodeHash), KindHash, v.scope.current().qualifiedName())
	for _, e := range entries {
		v.Vertices.AddDependency(vtx, e.ValueVtx)
	}
	vtx.Payload = entries
	v.Nodes.Set(n, vtx)
	return vtx
}

// hashKey renders a hash literal key without creating a vertex for it:
// `foo:` shorthand keys are symbols rendered bare, `"bar" =>` keys are
// quoted strings. Any other key expression is visited for its side
// effects (vertex registration) and rendered by best-effort string form.
func (v *Visitor) hashKey(key ast.Expression) (HashKeyKind, string) {
	switch k := key.(type) {
	case *ast.SymbolNode:
		return HashKeySymbol, k.Value
	case *ast.StringNode:
		return HashKeyString, k.Value
	default:
		v.visitExpression(key)
		return HashKeyString, fmt.Sprintf("%v", key)
	}
}

func (v *Visitor) visitInterp(n *ast.InterpolatedStringNode) *TypeVertex {
	parts := make([]*TypeVertex, 0, len(n.Parts))
	for _, p := range n.Parts {
		parts = append(parts, v.visitExpression(p))
	}
	vtx := v.Vertices.Add("", KindStringInterp, v.scope.current().qualifiedName())
	for _, p := range parts {
		v.Vertices.AddDependency(vtx, p)
	}
	v.Nodes.Set(n, vtx)
	return vtx
}

// visitIf allocates the if-vertex before visiting the predicate and
// branches, so insertion order matches source order.
func (v *Visitor) visitIf(n *ast.IfNode) *TypeVertex {
	vtx := v.Vertices.Add("", KindIf, v.scope.current().qualifiedName())

	if n.Predicate != nil {
		// The condition gets its own vertex but is deliberately not a
		// dependency of the if-vertex: only the branch values are.
		v.visitExpression(n.Predicate)
	}
	var thenVtx *TypeVertex
	if n.Statements != nil {
		thenVtx = v.visitStatements(n.Statements)
	}
	var elseVtx *TypeVertex
	if n.Subsequent != nil && n.Subsequent.Statements != nil {
		elseVtx = v.visitStatements(n.Subsequent.Statements)
	} else {
		nilNode := ast.NewNilNode(n.Pos())
		elseVtx = v.visitExpression(nilNode)
	}
	if thenVtx != nil {
		v.Vertices.AddDependency(vtx, thenVtx)
	}
	v.Vertices.AddDependency(vtx, elseVtx)
	v.Nodes.Set(n, vtx)
	return vtx
}

func (v *Visitor) visitReturn(n *ast.ReturnNode) *TypeVertex {
	var argVtx *TypeVertex
	if n.Argument != nil {
		argVtx = v.visitExpression(n.Argument)
	} else {
		argVtx = v.visitExpression(ast.NewNilNode(n.Pos()))
	}
	vtx := v.Vertices.Add("", KindReturn, v.scope.current().qualifiedName())
	v.Vertices.AddDependency(vtx, argVtx)
	v.Nodes.Set(n, vtx)
	if method := v.scope.current().method; method != nil {
		method.ReturnVertices = append(method.ReturnVertices, vtx)
	}
	return vtx
}

func (v *Visitor) visitMultiWrite(n *ast.MultiWriteNode) *TypeVertex {
	valueVtx := v.visitExpression(n.Value)
	var last *TypeVertex
	for _, target := range n.Targets {
		lw, ok := target.(*ast.LocalVariableWriteNode)
		if !ok {
			continue
		}
		vtx := v.Vertices.Add(lw.Name, KindLvar, v.scope.current().qualifiedName())
		v.Vertices.AddDependency(vtx, valueVtx)
		v.scope.current().locals.write(lw.Name, vtx)
		v.Nodes.Set(lw, vtx)
		last = vtx
	}
	return last
}

func (v *Visitor) synthesizeAttrReader(name string) {
	frame := v.scope.current()
	qualified := frame.qualifiedName()
	method := v.Methods.Add(qualified, name, frame.singleton, frame.visibility, v.path)
	readVtx := v.Vertices.Add("@"+name, KindIvarRead, qualified)
	key := v.ivarKey(name)
	for _, w := range v.ivarWrites[key] {
		v.Vertices.AddDependency(readVtx, w)
	}
	method.ReturnVertices = []*TypeVertex{readVtx}
	method.DeclaredReturnType = NilType{}
}

func (v *Visitor) synthesizeAttrWriter(name string) {
	frame := v.scope.current()
	qualified := frame.qualifiedName()
	method := v.Methods.Add(qualified, name+"=", frame.singleton, frame.visibility, v.path)
	argVtx := v.Vertices.Add("value", KindArg, qualified)
	argVtx.Payload = argPayload{ArgKind: ArgRequired}
	argVtx.MethodObjs = append(argVtx.MethodObjs, method)
	method.AddArg("value", argVtx)
	ivarVtx := v.Vertices.Add("@"+name, KindIvar, qualified)
	v.Vertices.AddDependency(ivarVtx, argVtx)
	key := v.ivarKey(name)
	v.ivarWrites[key] = append(v.ivarWrites[key], ivarVtx)
	method.ReturnVertices = []*TypeVertex{ivarVtx}
	method.DeclaredReturnType = NilType{}
}
