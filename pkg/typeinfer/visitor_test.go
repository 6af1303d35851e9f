package typeinfer

import (
	"math/big"
	"testing"

	"github.com/riseshia/hi-friend/pkg/ast"
)

// vertexLabel renders a vertex as a short, kind-specific token for
// asserting exact All() insertion sequences against spec.md's golden
// scenarios, which specify creation order as a public observable.
func vertexLabel(vtx *TypeVertex) string {
	switch vtx.Kind {
	case KindIntegerLit:
		if n, ok := vtx.Payload.(*big.Int); ok && n != nil {
			return "int:" + n.String()
		}
		return "int"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindLvar:
		return "lvar:" + vtx.Name
	case KindLvarRead:
		return "lvar_read:" + vtx.Name
	case KindCall:
		return "call:" + vtx.Name
	case KindIf:
		return "if"
	default:
		return string(vtx.Kind)
	}
}

func vertexSequence(v *Visitor) []string {
	all := v.Vertices.All()
	out := make([]string, len(all))
	for i, vtx := range all {
		out[i] = vertexLabel(vtx)
	}
	return out
}

func assertVertexSequence(t *testing.T, v *Visitor, want []string) {
	t.Helper()
	got := vertexSequence(v)
	if len(got) != len(want) {
		t.Fatalf("vertex sequence length mismatch:\n got:  %v\n want: %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("vertex sequence mismatch at %d:\n got:  %v\n want: %v", i, got, want)
		}
	}
}

func TestGoldenScenario1InsertionOrder(t *testing.T) {
	prog := ast.Program(ast.Stmts(ast.LVarW("a", ast.Int(1))))
	v := NewVisitor("scenario1.rb")
	v.VisitProgram(prog)
	assertVertexSequence(t, v, []string{"lvar:a", "int:1"})
}

func TestGoldenScenario2InsertionOrder(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Int(1)),
		ast.LVarW("a", ast.Int(2)),
	))
	v := NewVisitor("scenario2.rb")
	v.VisitProgram(prog)
	assertVertexSequence(t, v, []string{"lvar:a", "int:1", "lvar:a", "int:2"})
}

func TestGoldenScenario3InsertionOrder(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Int(1)),
		ast.LVarW("a", ast.Call(ast.LVarR("a"), "+", ast.Int(2))),
	))
	v := NewVisitor("scenario3.rb")
	v.VisitProgram(prog)
	assertVertexSequence(t, v, []string{
		"lvar:a", "int:1",
		"lvar:a", "call:+", "lvar_read:a", "int:2",
	})
}

func TestGoldenScenario4InsertionOrder(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("ret", ast.If(
			ast.Call(ast.Int(1), ">", ast.Int(2)),
			ast.Stmts(ast.True()),
			ast.Else(ast.Stmts(ast.False())),
		)),
	))
	v := NewVisitor("scenario4.rb")
	v.VisitProgram(prog)
	assertVertexSequence(t, v, []string{
		"lvar:ret", "if", "call:>", "int:1", "int:2", "true", "false",
	})
}

func TestWidenIntegerLiteralAlwaysWidens(t *testing.T) {
	prog := ast.Program(ast.Stmts(ast.LVarW("a", ast.Int(1))))
	v := NewVisitor("hello.rb")
	last := v.VisitProgram(prog)
	if got := last.Infer(v.Methods).ToTS(); got != "Integer" {
		t.Fatalf("a = 1 should infer Integer, got %s", got)
	}
}

func TestWidenStringLiteralStaysLiteralAsSoleContributor(t *testing.T) {
	prog := ast.Program(ast.Stmts(ast.LVarW("a", ast.Str("foo"))))
	v := NewVisitor("hello.rb")
	last := v.VisitProgram(prog)
	if got := last.Infer(v.Methods).ToTS(); got != `"foo"` {
		t.Fatalf(`a = "foo" should infer "foo", got %s`, got)
	}
}

func TestWidenSymbolLiteralStaysLiteralAsSoleContributor(t *testing.T) {
	prog := ast.Program(ast.Stmts(ast.LVarW("a", ast.Sym("hoge"))))
	v := NewVisitor("hello.rb")
	last := v.VisitProgram(prog)
	if got := last.Infer(v.Methods).ToTS(); got != ":hoge" {
		t.Fatalf("a = :hoge should infer :hoge, got %s", got)
	}
}

func TestReassignmentCreatesNewVertexButOldReadsStillResolve(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Int(1)),
		ast.LVarW("b", ast.LVarR("a")),
		ast.LVarW("a", ast.Str("two")),
	))
	v := NewVisitor("reassign.rb")
	v.VisitProgram(prog)

	all := v.Vertices.All()
	var firstWrite, secondWrite, bRead *TypeVertex
	for _, vtx := range all {
		if vtx.Kind == KindLvar && vtx.Name == "a" {
			if firstWrite == nil {
				firstWrite = vtx
			} else {
				secondWrite = vtx
			}
		}
		if vtx.Kind == KindLvarRead && vtx.Name == "a" {
			bRead = vtx
		}
	}
	if firstWrite == nil || secondWrite == nil {
		t.Fatalf("expected two distinct write vertices for a")
	}
	if firstWrite == secondWrite {
		t.Fatalf("reassignment must produce a new vertex, not mutate the old one")
	}
	if bRead == nil {
		t.Fatalf("expected a read vertex for a")
	}
	if got := bRead.Infer(v.Methods).ToTS(); got != "Integer" {
		t.Fatalf("b's read of a should still resolve through the first write, got %s", got)
	}
	if got := firstWrite.Infer(v.Methods).ToTS(); got != "Integer" {
		t.Fatalf("first write to a should remain reachable and Integer, got %s", got)
	}
}

func TestBinaryOperatorCallIsLeftToSolverAsAny(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Call(ast.Int(1), "+", ast.Int(2))),
	))
	v := NewVisitor("plus.rb")
	last := v.VisitProgram(prog)
	if got := last.Infer(v.Methods).ToTS(); got != "any" {
		t.Fatalf("a + 2 should be left to the solver as any, got %s", got)
	}
}

func TestIfExpressionUnionsBranchesIgnoringCondition(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.If(
			ast.True(),
			ast.Stmts(ast.Int(1)),
			ast.Else(ast.Stmts(ast.Str("x"))),
		)),
	))
	v := NewVisitor("if.rb")
	last := v.VisitProgram(prog)
	got := last.Infer(v.Methods).ToTS()
	if got != `Integer | "x"` {
		t.Fatalf(`if/else union should be Integer | "x", got %s`, got)
	}
}

func TestIfExpressionWithoutElseUnionsWithNil(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.If(ast.True(), ast.Stmts(ast.Int(1)), nil)),
	))
	v := NewVisitor("if_no_else.rb")
	last := v.VisitProgram(prog)
	got := last.Infer(v.Methods).ToTS()
	if got != "Integer | nil" {
		t.Fatalf("if without else should union with nil, got %s", got)
	}
}

func TestAttrAccessorSynthesizesNilReturnTypeInIsolation(t *testing.T) {
	body := ast.Stmts(ast.Call(nil, "attr_accessor", ast.Sym("foo")))
	class := ast.Class("Widget", nil, body)
	prog := ast.Program(ast.Stmts(class))

	v := NewVisitor("accessor.rb")
	v.VisitProgram(prog)

	reader, ok := v.Methods.Find("Widget", "foo", VisibilityPublic, false)
	if !ok {
		t.Fatalf("expected synthesized reader method")
	}
	if got := reader.InferReturnType(v.Methods).ToTS(); got != "nil" {
		t.Fatalf("reader in isolation should infer nil, got %s", got)
	}

	writer, ok := v.Methods.Find("Widget", "foo=", VisibilityPublic, false)
	if !ok {
		t.Fatalf("expected synthesized writer method")
	}
	if got := writer.InferReturnType(v.Methods).ToTS(); got != "nil" {
		t.Fatalf("writer in isolation should infer nil, got %s", got)
	}
}

func TestAttrAccessorAcceptsMixedSymbolAndStringArguments(t *testing.T) {
	body := ast.Stmts(ast.Call(nil, "attr_accessor", ast.Sym("foo"), ast.Str("bar")))
	class := ast.Class("C", nil, body)
	prog := ast.Program(ast.Stmts(class))

	v := NewVisitor("mixed_accessor.rb")
	v.VisitProgram(prog)

	for _, name := range []string{"foo", "bar"} {
		if _, ok := v.Methods.Find("C", name, VisibilityPublic, false); !ok {
			t.Fatalf("expected synthesized reader method %s", name)
		}
		if _, ok := v.Methods.Find("C", name+"=", VisibilityPublic, false); !ok {
			t.Fatalf("expected synthesized writer method %s=", name)
		}
	}
}

func TestSingletonSelfCallResolvesThroughNarrowCallSlice(t *testing.T) {
	helloBody := ast.Stmts(ast.LVarW("a", ast.Int(1)))
	singletonBody := ast.Stmts(ast.Def("hello", nil, ast.Params(), helloBody))
	classBody := ast.Stmts(ast.SingletonClass(ast.Self(), singletonBody))
	class := ast.Class("A", nil, classBody)

	useBody := ast.Stmts(ast.LVarW("a", ast.Call(ast.ConstR("A"), "hello")))
	prog := ast.Program(ast.Stmts(class, useBody))

	v := NewVisitor("singleton.rb")
	v.VisitProgram(prog)

	var last *TypeVertex
	for _, vtx := range v.Vertices.All() {
		if vtx.Kind == KindLvar && vtx.Name == "a" {
			last = vtx
		}
	}
	if last == nil {
		t.Fatalf("expected a final a = ... vertex")
	}
	if got := last.Infer(v.Methods).ToTS(); got != "Integer" {
		t.Fatalf("A.hello should resolve to Integer via the narrow call slice, got %s", got)
	}
}

func TestHashLiteralRendersMixedSymbolAndStringKeys(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Hash(
			ast.Assoc(ast.Sym("foo"), ast.Int(1)),
			ast.Assoc(ast.Str("bar"), ast.Int(2)),
		)),
	))
	v := NewVisitor("hash.rb")
	last := v.VisitProgram(prog)
	got := last.Infer(v.Methods).ToTS()
	want := `{ foo: Integer, "bar" => Integer }`
	if got != want {
		t.Fatalf("hash literal rendering mismatch:\n got:  %s\n want: %s", got, want)
	}
}

func TestStringInterpolationPreservesEmbeddedLiteralType(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Str("foo")),
		ast.LVarW("b", ast.Interp(ast.Str("bar"), ast.LVarR("a"))),
	))
	v := NewVisitor("interp.rb")
	last := v.VisitProgram(prog)
	if got := last.Infer(v.Methods).ToTS(); got != "String" {
		t.Fatalf("interpolation result should report String, got %s", got)
	}

	var embedded *TypeVertex
	for _, vtx := range v.Vertices.All() {
		if vtx.Kind == KindLvarRead && vtx.Name == "a" {
			embedded = vtx
		}
	}
	if embedded == nil {
		t.Fatalf("expected the embedded read vertex for a")
	}
	if got := embedded.Infer(v.Methods).ToTS(); got != `"foo"` {
		t.Fatalf(`embedded read should preserve a's literal "foo" type, got %s`, got)
	}
}

func TestVertexRegistryInsertionOrderIsDeterministic(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.LVarW("a", ast.Int(1)),
		ast.LVarW("b", ast.Int(2)),
		ast.LVarW("c", ast.Int(3)),
	))
	v := NewVisitor("order.rb")
	v.VisitProgram(prog)

	var names []string
	for _, vtx := range v.Vertices.All() {
		if vtx.Kind == KindLvar {
			names = append(names, vtx.Name)
		}
	}
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("expected %d lvar writes, got %d (%v)", len(want), len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("insertion order mismatch at %d: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestDependencyEdgeInvariantIsBidirectional(t *testing.T) {
	prog := ast.Program(ast.Stmts(ast.LVarW("a", ast.Int(1))))
	v := NewVisitor("edge.rb")
	v.VisitProgram(prog)

	var writeVtx, litVtx *TypeVertex
	for _, vtx := range v.Vertices.All() {
		if vtx.Kind == KindLvar {
			writeVtx = vtx
		}
		if vtx.Kind == KindIntegerLit {
			litVtx = vtx
		}
	}
	if writeVtx == nil || litVtx == nil {
		t.Fatalf("expected both a write vertex and an integer literal vertex")
	}
	foundDep := false
	for _, d := range writeVtx.Dependencies {
		if d == litVtx {
			foundDep = true
		}
	}
	foundDependent := false
	for _, d := range litVtx.Dependents {
		if d == writeVtx {
			foundDependent = true
		}
	}
	if !foundDep || !foundDependent {
		t.Fatalf("dependency/dependent edge invariant violated: dep=%v dependent=%v", foundDep, foundDependent)
	}
}

func TestMethodRegistryAddIsIdempotentAcrossRepeatedDeclarations(t *testing.T) {
	reg := NewMethodRegistry()
	m1 := reg.Add("Widget", "hello", false, VisibilityPublic, "a.rb")
	m2 := reg.Add("Widget", "hello", false, VisibilityPublic, "b.rb")
	if m1 != m2 {
		t.Fatalf("repeated Add for the same key should return the same Method")
	}
	if len(m1.Paths) != 2 {
		t.Fatalf("expected two declaration paths, got %v", m1.Paths)
	}
	if len(reg.All()) != 1 {
		t.Fatalf("expected exactly one registered method, got %d", len(reg.All()))
	}
}

func TestMultiWriteSharesRHSVertexAcrossTargets(t *testing.T) {
	prog := ast.Program(ast.Stmts(
		ast.MultiWrite(ast.Int(1), ast.LVarW("a", nil), ast.LVarW("b", nil)),
	))
	v := NewVisitor("multi.rb")
	v.VisitProgram(prog)

	var aVtx, bVtx *TypeVertex
	for _, vtx := range v.Vertices.All() {
		if vtx.Kind == KindLvar && vtx.Name == "a" {
			aVtx = vtx
		}
		if vtx.Kind == KindLvar && vtx.Name == "b" {
			bVtx = vtx
		}
	}
	if aVtx == nil || bVtx == nil {
		t.Fatalf("expected both a and b write vertices")
	}
	if len(aVtx.Dependencies) != 1 || len(bVtx.Dependencies) != 1 {
		t.Fatalf("expected exactly one dependency per target")
	}
	if aVtx.Dependencies[0] != bVtx.Dependencies[0] {
		t.Fatalf("multi-write targets should share the same RHS value vertex")
	}
	if got := aVtx.Infer(v.Methods).ToTS(); got != "Integer" {
		t.Fatalf("a should infer Integer, got %s", got)
	}
}

func TestUnresolvedConstantReadFallsBackToStringLiteral(t *testing.T) {
	prog := ast.Program(ast.Stmts(ast.LVarW("a", ast.ConstR("Unknown"))))
	v := NewVisitor("const.rb")
	last := v.VisitProgram(prog)
	if got := last.Infer(v.Methods).ToTS(); got != `"Unknown"` {
		t.Fatalf(`unresolved constant should fall back to its name as a string literal, got %s`, got)
	}
}

func TestIvarReadBeforeAnyWriteInfersNil(t *testing.T) {
	body := ast.Stmts(ast.IVarR("count"))
	def := ast.Def("count", nil, ast.Params(), body)
	class := ast.Class("Counter", nil, ast.Stmts(def))
	prog := ast.Program(ast.Stmts(class))

	v := NewVisitor("ivar.rb")
	v.VisitProgram(prog)

	var readVtx *TypeVertex
	for _, vtx := range v.Vertices.All() {
		if vtx.Kind == KindIvarRead {
			readVtx = vtx
		}
	}
	if readVtx == nil {
		t.Fatalf("expected an ivar read vertex")
	}
	if got := readVtx.Infer(v.Methods).ToTS(); got != "nil" {
		t.Fatalf("ivar read with no prior write should infer nil, got %s", got)
	}
}

func TestToTSRoundTripsUnionRendering(t *testing.T) {
	got := widenUnion([]Type{
		IntegerLiteralType{},
		StringLiteralType{Value: "x"},
	}).ToTS()
	want := `Integer | "x"`
	if got != want {
		t.Fatalf("ToTS union rendering mismatch: got %s, want %s", got, want)
	}
}
