package typeinfer

import "github.com/riseshia/hi-friend/pkg/ast"

// hookHandler synthesizes methods for one recognized class/module-level
// call shape (attr_reader, attr_writer, ...) instead of letting the
// visitor lower it as an ordinary Call vertex. It fires only at
// class/module top level, matched by name against the bare method-call
// names the call-hook shapes use.
type hookHandler func(v *Visitor, call *ast.CallNode)

var callHooks = map[string]hookHandler{
	"attr_reader":   handleAttrReader,
	"attr_writer":   handleAttrWriter,
	"attr_accessor": handleAttrAccessor,
}

// dispatchCallHook runs the registered handler for call's method name, if
// any. It reports whether a hook handled the call; the visitor falls back
// to ordinary Call lowering when it returns false.
func dispatchCallHook(v *Visitor, call *ast.CallNode) bool {
	if call == nil {
		return false
	}
	if v.scope.current().qualifiedName() == "" {
		// No enclosing class/module: the call is not a hook site.
		return false
	}
	handler, ok := callHooks[call.Name]
	if !ok {
		return false
	}
	handler(v, call)
	return true
}

func handleAttrReader(v *Visitor, call *ast.CallNode) {
	for _, name := range attrNames(call) {
		v.synthesizeAttrReader(name)
	}
}

func handleAttrWriter(v *Visitor, call *ast.CallNode) {
	for _, name := range attrNames(call) {
		v.synthesizeAttrWriter(name)
	}
}

func handleAttrAccessor(v *Visitor, call *ast.CallNode) {
	for _, name := range attrNames(call) {
		v.synthesizeAttrReader(name)
		v.synthesizeAttrWriter(name)
	}
}

// attrNames extracts the attribute names from attr_reader/writer/accessor
// arguments, which may be symbol or string literals (`attr_accessor :foo,
// "bar"`). Any other argument shape is skipped rather than raised as an
// error: an unresolvable hook argument should never abort the rest of the
// walk.
func attrNames(call *ast.CallNode) []string {
	var names []string
	for _, arg := range call.Arguments {
		switch n := arg.(type) {
		case *ast.SymbolNode:
			names = append(names, n.Value)
		case *ast.StringNode:
			names = append(names, n.Value)
		}
	}
	return names
}
