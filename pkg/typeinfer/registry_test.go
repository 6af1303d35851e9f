package typeinfer

import "testing"

func TestConstRegistryFindOrAddMergesRedeclarationPaths(t *testing.T) {
	reg := NewConstRegistry()
	c1 := reg.FindOrAdd("A::B", ConstClass, "A", "a.rb")
	c2 := reg.FindOrAdd("A::B", ConstClass, "A", "b.rb")
	if c1 != c2 {
		t.Fatalf("re-declaring the same qualified name should return the same Constant")
	}
	if len(c1.Paths) != 2 {
		t.Fatalf("expected two declaration paths, got %v", c1.Paths)
	}
	if len(reg.All()) != 1 {
		t.Fatalf("expected exactly one registered constant, got %d", len(reg.All()))
	}
}

func TestConstRegistryFindMissing(t *testing.T) {
	reg := NewConstRegistry()
	if _, ok := reg.Find("Nope"); ok {
		t.Fatalf("expected Find on an unregistered name to report false")
	}
}

func TestVertexRegistryAddDependencyIsIdempotent(t *testing.T) {
	reg := NewTypeVertexRegistry()
	a := reg.Add("a", KindLvar, "")
	b := reg.Add("", KindIntegerLit, "")
	reg.AddDependency(a, b)
	reg.AddDependency(a, b)
	if len(a.Dependencies) != 1 {
		t.Fatalf("expected exactly one dependency after two identical AddDependency calls, got %d", len(a.Dependencies))
	}
	if len(b.Dependents) != 1 {
		t.Fatalf("expected exactly one dependent after two identical AddDependency calls, got %d", len(b.Dependents))
	}
}

func TestVertexRegistryIDsAreSequential(t *testing.T) {
	reg := NewTypeVertexRegistry()
	first := reg.Add("a", KindLvar, "")
	second := reg.Add("b", KindLvar, "")
	if first.ID != 0 || second.ID != 1 {
		t.Fatalf("expected sequential IDs starting at 0, got %d and %d", first.ID, second.ID)
	}
}
